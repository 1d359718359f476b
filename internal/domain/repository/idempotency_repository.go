package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
)

// IdempotencyRepository stores responses of sale-recording requests so retries replay them
type IdempotencyRepository interface {
	// GetByKey returns the user's stored response for key, or nil when there is
	// none that is still valid at now
	GetByKey(ctx context.Context, key string, userID uuid.UUID, now time.Time) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired purges keys that expired before now and reports how many went
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
