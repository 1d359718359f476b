package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
)

// PurchaseRepository defines the interface for purchase data operations
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	List(ctx context.Context, params *MovementFilterParams) ([]entity.Purchase, int64, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.Purchase, error)
}

// MovementFilterParams filters purchase and sales-return listings
type MovementFilterParams struct {
	Pagination *pagination.Params
	ProductID  *uuid.UUID
}
