package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
)

// SalesReturnRepository defines the interface for sales return data operations
type SalesReturnRepository interface {
	Create(ctx context.Context, ret *entity.SalesReturn) error
	List(ctx context.Context, params *MovementFilterParams) ([]entity.SalesReturn, int64, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.SalesReturn, error)
}
