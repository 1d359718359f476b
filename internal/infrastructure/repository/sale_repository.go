package repository

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/salesdesk-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type saleRepository struct {
	db *gorm.DB
	// per-product locks serialize stock checks within this process; the row
	// lock covers other processes on postgres (sqlite ignores FOR UPDATE)
	productLocks sync.Map
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRepository) CreateWithinStock(ctx context.Context, sale *entity.Sale) error {
	mu, _ := r.productLocks.LoadOrStore(sale.ProductID, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
	defer mu.(*sync.Mutex).Unlock()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product entity.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Take(&product, "id = ?", sale.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainRepo.ErrProductNotFound
		}
		if err != nil {
			return err
		}

		available, err := stockOf(tx, sale.ProductID)
		if err != nil {
			return err
		}
		if sale.Quantity > available {
			return &domainRepo.InsufficientStockError{Available: available, Requested: sale.Quantity}
		}
		return tx.Create(sale).Error
	})
}

// stockOf computes purchases + returns - sales of a product inside tx
func stockOf(tx *gorm.DB, productID uuid.UUID) (int, error) {
	sum := func(model interface{}, column string) (int64, error) {
		var total int64
		err := tx.Model(model).
			Scopes(ForProduct(&productID)).
			Select("COALESCE(SUM(" + column + "), 0)").
			Scan(&total).Error
		return total, err
	}

	purchased, err := sum(&entity.Purchase{}, "quantity")
	if err != nil {
		return 0, err
	}
	returned, err := sum(&entity.SalesReturn{}, "return_quantity")
	if err != nil {
		return 0, err
	}
	sold, err := sum(&entity.Sale{}, "quantity")
	if err != nil {
		return 0, err
	}
	return int(purchased + returned - sold), nil
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

// filtered applies the shared sale filters to a query
func filtered(query *gorm.DB, params *domainRepo.SaleFilterParams) *gorm.DB {
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	query = query.Scopes(ForProduct(params.ProductID))
	// YYYY-MM-DD strings compare in calendar order
	if params.StartDate != "" {
		query = query.Where("date >= ?", params.StartDate)
	}
	if params.EndDate != "" {
		query = query.Where("date <= ?", params.EndDate)
	}
	return query
}

func saleOrder(params *domainRepo.SaleFilterParams) string {
	if strings.EqualFold(params.SortOrder, "asc") {
		return "date ASC, created_at ASC"
	}
	return MovementOrder
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	query := filtered(r.db.WithContext(ctx).Model(&entity.Sale{}), params)
	return findPage[entity.Sale](query, params.Pagination, saleOrder(params))
}

func (r *saleRepository) ListAll(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := filtered(r.db.WithContext(ctx).Model(&entity.Sale{}), params).
		Order(saleOrder(params)).
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).Scopes(ForProduct(&productID)).Find(&sales).Error
	return sales, err
}
