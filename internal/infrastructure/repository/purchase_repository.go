package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/salesdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *gorm.DB) domainRepo.PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *purchaseRepository) List(ctx context.Context, params *domainRepo.MovementFilterParams) ([]entity.Purchase, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Purchase{}).Scopes(ForProduct(params.ProductID))
	return findPage[entity.Purchase](query, params.Pagination, MovementOrder)
}

func (r *purchaseRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.Purchase, error) {
	var purchases []entity.Purchase
	err := r.db.WithContext(ctx).Scopes(ForProduct(&productID)).Find(&purchases).Error
	return purchases, err
}
