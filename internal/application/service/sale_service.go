package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/internal/domain/saleform"
	"github.com/sangkips/salesdesk-api/internal/infrastructure/export"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
	"go.uber.org/zap"
)

// SaleService reads recorded sales and records one-shot sales
type SaleService struct {
	saleRepo repository.SaleRepository
	loader   *SnapshotLoader
	now      func() time.Time
	log      *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo repository.SaleRepository, loader *SnapshotLoader, log *zap.Logger) *SaleService {
	return &SaleService{
		saleRepo: saleRepo,
		loader:   loader,
		now:      time.Now,
		log:      log,
	}
}

// GetSale retrieves a sale by ID
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.Result[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewResult(sales, pagination.OrDefault(params.Pagination), total), nil
}

// ExportSales writes every sale matching params to w as an xlsx workbook
func (s *SaleService) ExportSales(ctx context.Context, w io.Writer, params *repository.SaleFilterParams) (int, error) {
	sales, err := s.saleRepo.ListAll(ctx, params)
	if err != nil {
		return 0, err
	}
	if err := export.WriteSalesXLSX(w, sales); err != nil {
		return 0, fmt.Errorf("failed to export sales: %w", err)
	}
	return len(sales), nil
}

// QuickSaleInput represents a sale recorded in a single request
type QuickSaleInput struct {
	ProductID    uuid.UUID
	Quantity     int
	UnitPrice    *string // nil uses the product's sell price
	Status       enum.SaleStatus
	CustomerName string
	Notes        string
}

// QuickSale records a sale under the same rules as the sale form. Unlike the
// form, a quantity above the available stock is rejected instead of clamped.
func (s *SaleService) QuickSale(ctx context.Context, userID uuid.UUID, input *QuickSaleInput) (*entity.Sale, error) {
	if input.Quantity < 1 {
		return nil, apperror.NewFieldError("quantity", "Quantity must be at least 1")
	}

	snap, err := s.loader.Load(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if snap.FindProduct(input.ProductID) == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	rec := &saleRecorder{ctx: ctx, repo: s.saleRepo, userID: userID, log: s.log}
	ctrl := saleform.NewController(snap, saleform.Options{
		OnSaleCreated: rec.record,
		Now:           s.now,
	})
	ctrl.SelectProduct(input.ProductID)
	if input.UnitPrice != nil {
		ctrl.ChangePrice(*input.UnitPrice)
	}
	ctrl.ChangeStatus(input.Status)
	ctrl.ChangeCustomer(input.CustomerName)
	ctrl.ChangeNotes(input.Notes)

	if stored := ctrl.ChangeQuantity(strconv.Itoa(input.Quantity)); stored != input.Quantity {
		return nil, apperror.NewFieldError("quantity", stockMessage(ctrl.Derive().AvailableStock))
	}

	d := ctrl.Derive()
	if d.StockInconsistent {
		s.log.Warn("negative stock computed",
			zap.String("product_id", input.ProductID.String()),
			zap.Int("calculated_stock", d.CalculatedStock),
		)
	}

	_, ok, err := ctrl.Submit()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, submitErrors(ctrl.State(), d)
	}
	return rec.saved, nil
}
