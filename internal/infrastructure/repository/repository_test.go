package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
	domainRepo "github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/internal/infrastructure/database"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	db, err := database.NewSQLiteDB("file:"+t.Name()+"?mode=memory&cache=shared", false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func strPtr(s string) *string { return &s }

func TestProductRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(setupTestDB(t))

	rice := &entity.Product{Name: "Rice", SellPrice: "$19.99"}
	oil := &entity.Product{Name: "Sunflower Oil", SellPrice: "৳350"}
	require.NoError(t, repo.Create(ctx, rice))
	require.NoError(t, repo.Create(ctx, oil))
	assert.NotEqual(t, uuid.Nil, rice.ID)

	got, err := repo.GetByID(ctx, oil.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "৳350", got.SellPrice)

	missing, err := repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	products, total, err := repo.List(ctx, &domainRepo.ProductFilterParams{
		Pagination: pagination.Default(),
		Search:     "OIL",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, oil.ID, products[0].ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Rice", all[0].Name)
}

func TestMovementRepositories(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	purchases := NewPurchaseRepository(db)
	returns := NewSalesReturnRepository(db)

	a, b := uuid.New(), uuid.New()
	require.NoError(t, purchases.Create(ctx, &entity.Purchase{ProductID: a, Quantity: 30, Date: "2026-10-01"}))
	require.NoError(t, purchases.Create(ctx, &entity.Purchase{ProductID: a, Quantity: 20, Date: "2026-10-02"}))
	require.NoError(t, purchases.Create(ctx, &entity.Purchase{ProductID: b, Quantity: 5, Date: "2026-10-02"}))
	require.NoError(t, returns.Create(ctx, &entity.SalesReturn{ProductID: a, ReturnQuantity: 2, Date: "2026-10-03", Reason: strPtr("damaged seal")}))

	byA, err := purchases.ListByProduct(ctx, a)
	require.NoError(t, err)
	assert.Len(t, byA, 2)

	list, total, err := purchases.List(ctx, &domainRepo.MovementFilterParams{Pagination: pagination.Default(), ProductID: &a})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	assert.Equal(t, "2026-10-02", list[0].Date)

	allPurchases, total, err := purchases.List(ctx, &domainRepo.MovementFilterParams{Pagination: pagination.Default()})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, allPurchases, 3)

	retA, err := returns.ListByProduct(ctx, a)
	require.NoError(t, err)
	require.Len(t, retA, 1)
	assert.Equal(t, "damaged seal", *retA[0].Reason)

	retList, total, err := returns.List(ctx, &domainRepo.MovementFilterParams{Pagination: pagination.Default(), ProductID: &b})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, retList)
}

func TestSaleRepositoryFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewSaleRepository(setupTestDB(t))
	a, b := uuid.New(), uuid.New()

	seed := []entity.Sale{
		{ProductID: a, ProductName: "A", Quantity: 1, UnitPrice: "1.00", TotalAmount: "1.00", Date: "2026-10-01", Status: enum.SaleStatusCompleted},
		{ProductID: a, ProductName: "A", Quantity: 2, UnitPrice: "1.00", TotalAmount: "2.00", Date: "2026-10-05", Status: enum.SaleStatusPending},
		{ProductID: b, ProductName: "B", Quantity: 3, UnitPrice: "2.00", TotalAmount: "6.00", Date: "2026-10-10", Status: enum.SaleStatusCancelled},
	}
	for i := range seed {
		require.NoError(t, repo.Create(ctx, &seed[i]))
	}

	got, err := repo.GetByID(ctx, seed[1].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, enum.SaleStatusPending, got.Status)
	assert.Equal(t, "2.00", got.TotalAmount)

	pending := enum.SaleStatusPending
	list, total, err := repo.List(ctx, &domainRepo.SaleFilterParams{Pagination: pagination.Default(), Status: &pending})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, seed[1].ID, list[0].ID)

	list, total, err = repo.List(ctx, &domainRepo.SaleFilterParams{
		Pagination: pagination.Default(),
		StartDate:  "2026-10-02",
		EndDate:    "2026-10-10",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	assert.Equal(t, "2026-10-10", list[0].Date)

	all, err := repo.ListAll(ctx, &domainRepo.SaleFilterParams{ProductID: &a, SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "2026-10-01", all[0].Date)

	byB, err := repo.ListByProduct(ctx, b)
	require.NoError(t, err)
	assert.Len(t, byB, 1)
}

func TestIdempotencyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewIdempotencyRepository(setupTestDB(t))
	user := uuid.New()

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "k1", UserID: user, Endpoint: "POST /api/v1/sales", ResponseCode: 201, ResponseBody: `{}`,
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "old", UserID: user, Endpoint: "POST /api/v1/sales", ResponseCode: 201,
		ExpiresAt: time.Now().Add(-time.Hour),
	}))

	now := time.Now()
	got, err := repo.GetByKey(ctx, "k1", user, now)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 201, got.ResponseCode)

	other, err := repo.GetByKey(ctx, "k1", uuid.New(), now)
	require.NoError(t, err)
	assert.Nil(t, other)

	expired, err := repo.GetByKey(ctx, "old", user, now)
	require.NoError(t, err)
	assert.Nil(t, expired, "expired keys are not replayed")

	purged, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	still, err := repo.GetByKey(ctx, "k1", user, now)
	require.NoError(t, err)
	assert.NotNil(t, still)
}

func TestSaleRepositoryCreateWithinStock(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	products := NewProductRepository(db)
	purchases := NewPurchaseRepository(db)
	returns := NewSalesReturnRepository(db)
	sales := NewSaleRepository(db)

	rice := &entity.Product{Name: "Rice", SellPrice: "$19.99"}
	require.NoError(t, products.Create(ctx, rice))
	require.NoError(t, purchases.Create(ctx, &entity.Purchase{ProductID: rice.ID, Quantity: 10, Date: "2026-10-01"}))
	require.NoError(t, returns.Create(ctx, &entity.SalesReturn{ProductID: rice.ID, ReturnQuantity: 1, Date: "2026-10-02"}))

	sale := func(qty int) *entity.Sale {
		return &entity.Sale{ProductID: rice.ID, ProductName: "Rice", Quantity: qty, UnitPrice: "1.00", TotalAmount: "1.00", Date: "2026-10-03"}
	}

	first := sale(6)
	require.NoError(t, sales.CreateWithinStock(ctx, first))
	assert.NotEqual(t, uuid.Nil, first.ID)

	err := sales.CreateWithinStock(ctx, sale(6))
	var short *domainRepo.InsufficientStockError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, 5, short.Available)
	assert.Equal(t, 6, short.Requested)

	require.NoError(t, sales.CreateWithinStock(ctx, sale(5)))

	stored, err := sales.ListByProduct(ctx, rice.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	orphan := sale(1)
	orphan.ProductID = uuid.New()
	assert.ErrorIs(t, sales.CreateWithinStock(ctx, orphan), domainRepo.ErrProductNotFound)
}
