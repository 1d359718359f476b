package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/internal/domain/saleform"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo repository.ProductRepository
	loader      *SnapshotLoader
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, loader *SnapshotLoader) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		loader:      loader,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name      string
	SellPrice string
}

// CreateProduct creates a new product. The sell price is stored as entered.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{
		Name:      strings.TrimSpace(input.Name),
		SellPrice: strings.TrimSpace(input.SellPrice),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.Result[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewResult(products, pagination.OrDefault(params.Pagination), total), nil
}

// GetStock returns the stock derived from a product's purchases, returns and sales
func (s *ProductService) GetStock(ctx context.Context, id uuid.UUID) (*saleform.StockBreakdown, error) {
	if _, err := s.GetProductByID(ctx, id); err != nil {
		return nil, err
	}

	snap, err := s.loader.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	breakdown := saleform.Breakdown(snap, id)
	return &breakdown, nil
}
