package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
)

// PurchaseService records stock received
type PurchaseService struct {
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	now          func() time.Time
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(purchaseRepo repository.PurchaseRepository, productRepo repository.ProductRepository) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		now:          time.Now,
	}
}

// CreatePurchaseInput represents the create purchase input
type CreatePurchaseInput struct {
	ProductID uuid.UUID
	Quantity  int
	Date      string
	Notes     *string
}

// CreatePurchase records a purchase against an existing product
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.Purchase, error) {
	if input.Quantity <= 0 {
		return nil, apperror.NewFieldError("quantity", "Quantity must be greater than 0")
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	date, err := movementDate(input.Date, s.now())
	if err != nil {
		return nil, err
	}

	purchase := &entity.Purchase{
		ProductID: product.ID,
		Quantity:  input.Quantity,
		Date:      date,
		Notes:     optionalText(input.Notes),
	}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// ListPurchases lists purchases, optionally for one product
func (s *PurchaseService) ListPurchases(ctx context.Context, params *repository.MovementFilterParams) (*pagination.Result[entity.Purchase], error) {
	purchases, total, err := s.purchaseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewResult(purchases, pagination.OrDefault(params.Pagination), total), nil
}
