package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/salesdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type salesReturnRepository struct {
	db *gorm.DB
}

// NewSalesReturnRepository creates a new sales return repository
func NewSalesReturnRepository(db *gorm.DB) domainRepo.SalesReturnRepository {
	return &salesReturnRepository{db: db}
}

func (r *salesReturnRepository) Create(ctx context.Context, ret *entity.SalesReturn) error {
	return r.db.WithContext(ctx).Create(ret).Error
}

func (r *salesReturnRepository) List(ctx context.Context, params *domainRepo.MovementFilterParams) ([]entity.SalesReturn, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.SalesReturn{}).Scopes(ForProduct(params.ProductID))
	return findPage[entity.SalesReturn](query, params.Pagination, MovementOrder)
}

func (r *salesReturnRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.SalesReturn, error) {
	var returns []entity.SalesReturn
	err := r.db.WithContext(ctx).Scopes(ForProduct(&productID)).Find(&returns).Error
	return returns, err
}
