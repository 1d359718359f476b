package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// Create stores the sale and assigns its ID
	Create(ctx context.Context, sale *entity.Sale) error
	// CreateWithinStock stores the sale only if its quantity does not exceed the
	// product's stock at commit time. It fails with *InsufficientStockError or
	// ErrProductNotFound otherwise.
	CreateWithinStock(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// ListAll returns every sale matching the filter, ignoring pagination (for exports)
	ListAll(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.Sale, error)
}

// SaleFilterParams contains filtering parameters for sale queries.
// StartDate and EndDate are inclusive YYYY-MM-DD bounds.
type SaleFilterParams struct {
	Pagination *pagination.Params
	Status     *enum.SaleStatus
	ProductID  *uuid.UUID
	StartDate  string
	EndDate    string
	SortOrder  string
}
