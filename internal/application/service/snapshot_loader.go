package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/internal/domain/saleform"
)

// SnapshotLoader reads the collections a sale form needs from the repositories
type SnapshotLoader struct {
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	returnRepo   repository.SalesReturnRepository
}

// NewSnapshotLoader creates a new snapshot loader
func NewSnapshotLoader(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	returnRepo repository.SalesReturnRepository,
) *SnapshotLoader {
	return &SnapshotLoader{
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		returnRepo:   returnRepo,
	}
}

// Load returns all products plus the stock movements of productID.
// Movements are skipped when productID is Nil.
func (l *SnapshotLoader) Load(ctx context.Context, productID uuid.UUID) (saleform.Snapshot, error) {
	var snap saleform.Snapshot

	products, err := l.productRepo.ListAll(ctx)
	if err != nil {
		return snap, fmt.Errorf("failed to load products: %w", err)
	}
	snap.Products = products

	if productID == uuid.Nil {
		return snap, nil
	}

	if snap.Purchases, err = l.purchaseRepo.ListByProduct(ctx, productID); err != nil {
		return snap, fmt.Errorf("failed to load purchases: %w", err)
	}
	if snap.Returns, err = l.returnRepo.ListByProduct(ctx, productID); err != nil {
		return snap, fmt.Errorf("failed to load sales returns: %w", err)
	}
	if snap.Sales, err = l.saleRepo.ListByProduct(ctx, productID); err != nil {
		return snap, fmt.Errorf("failed to load sales: %w", err)
	}
	return snap, nil
}
