package service

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/salesdesk-api/internal/infrastructure/repository"
	"github.com/sangkips/salesdesk-api/internal/infrastructure/session"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

type fixture struct {
	ctx       context.Context
	products  repository.ProductRepository
	purchases repository.PurchaseRepository
	returns   repository.SalesReturnRepository
	sales     repository.SaleRepository
	loader    *SnapshotLoader
	store     *session.FormStore
	log       *zap.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.NewSQLiteDB("file:"+t.Name()+"?mode=memory&cache=shared", false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	f := &fixture{
		ctx:       context.Background(),
		products:  infraRepo.NewProductRepository(db),
		purchases: infraRepo.NewPurchaseRepository(db),
		returns:   infraRepo.NewSalesReturnRepository(db),
		sales:     infraRepo.NewSaleRepository(db),
		store:     session.NewFormStore(session.FormStoreConfig{EntryTTL: time.Hour}),
		log:       zap.NewNop(),
	}
	f.loader = NewSnapshotLoader(f.products, f.sales, f.purchases, f.returns)
	t.Cleanup(f.store.Stop)
	return f
}

// stockedProduct creates a product with 50 purchased, 2 returned and 10 sold
func (f *fixture) stockedProduct(t *testing.T, name, price string) *entity.Product {
	t.Helper()
	p := &entity.Product{Name: name, SellPrice: price}
	require.NoError(t, f.products.Create(f.ctx, p))
	require.NoError(t, f.purchases.Create(f.ctx, &entity.Purchase{ProductID: p.ID, Quantity: 30, Date: "2026-10-01"}))
	require.NoError(t, f.purchases.Create(f.ctx, &entity.Purchase{ProductID: p.ID, Quantity: 20, Date: "2026-10-02"}))
	require.NoError(t, f.returns.Create(f.ctx, &entity.SalesReturn{ProductID: p.ID, ReturnQuantity: 2, Date: "2026-10-03"}))
	require.NoError(t, f.sales.Create(f.ctx, &entity.Sale{
		ProductID: p.ID, ProductName: name, Quantity: 10,
		UnitPrice: "1.00", TotalAmount: "10.00", Date: "2026-10-04",
	}))
	return p
}

func (f *fixture) saleFormService(resetOnCancel bool) *SaleFormService {
	return NewSaleFormService(f.loader, f.sales, f.store, SaleFormServiceConfig{
		ResetOnCancel: resetOnCancel,
		Now:           func() time.Time { return testNow },
	}, f.log)
}

func (f *fixture) saleService() *SaleService {
	svc := NewSaleService(f.sales, f.loader, f.log)
	svc.now = func() time.Time { return testNow }
	return svc
}

func strPtr(s string) *string { return &s }
