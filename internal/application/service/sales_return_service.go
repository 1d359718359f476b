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

// SalesReturnService records goods returned by customers
type SalesReturnService struct {
	returnRepo  repository.SalesReturnRepository
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewSalesReturnService creates a new sales return service
func NewSalesReturnService(returnRepo repository.SalesReturnRepository, productRepo repository.ProductRepository) *SalesReturnService {
	return &SalesReturnService{
		returnRepo:  returnRepo,
		productRepo: productRepo,
		now:         time.Now,
	}
}

// CreateSalesReturnInput represents the create sales return input
type CreateSalesReturnInput struct {
	ProductID      uuid.UUID
	ReturnQuantity int
	Reason         *string
	Date           string
}

// CreateSalesReturn records a return against an existing product.
// Returns are not matched against earlier sales.
func (s *SalesReturnService) CreateSalesReturn(ctx context.Context, input *CreateSalesReturnInput) (*entity.SalesReturn, error) {
	if input.ReturnQuantity <= 0 {
		return nil, apperror.NewFieldError("return_quantity", "Return quantity must be greater than 0")
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

	ret := &entity.SalesReturn{
		ProductID:      product.ID,
		ReturnQuantity: input.ReturnQuantity,
		Reason:         optionalText(input.Reason),
		Date:           date,
	}
	if err := s.returnRepo.Create(ctx, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// ListSalesReturns lists returns, optionally for one product
func (s *SalesReturnService) ListSalesReturns(ctx context.Context, params *repository.MovementFilterParams) (*pagination.Result[entity.SalesReturn], error) {
	returns, total, err := s.returnRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewResult(returns, pagination.OrDefault(params.Pagination), total), nil
}
