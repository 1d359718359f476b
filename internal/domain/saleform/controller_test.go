package saleform

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSelectProductResetsQuantityAndPrefillsPrice(t *testing.T) {
	c := NewController(fixtureSnapshot(), Options{})
	c.SelectProduct(productA.ID)
	c.ChangeQuantity("7")
	require.Equal(t, 7, c.State().Quantity)

	c.SelectProduct(productB.ID)
	assert.Equal(t, productB.ID, c.State().ProductID)
	assert.Equal(t, 1, c.State().Quantity)
	assert.Equal(t, "120", c.State().UnitPrice)

	c.SelectProduct(productA.ID)
	assert.Equal(t, "19.999", c.State().UnitPrice)

	c.SelectProduct(uuid.New())
	assert.Equal(t, "", c.State().UnitPrice)
	assert.Nil(t, c.Derive().SelectedProduct)
}

func TestChangeQuantityClampsToStock(t *testing.T) {
	c := NewController(fixtureSnapshot(), Options{})
	c.SelectProduct(productA.ID)

	assert.Equal(t, 42, c.ChangeQuantity("100"))
	assert.Equal(t, 42, c.State().Quantity)
	assert.True(t, c.Derive().IsQuantityValid)
}

func TestChangeQuantityProperty(t *testing.T) {
	snap := fixtureSnapshot()
	inputs := []string{"", "0", "1", "5", "41", "42", "43", "100", "abc", " 9", "-3", "7.8"}
	for _, p := range snap.Products {
		for _, in := range inputs {
			c := NewController(snap, Options{})
			c.SelectProduct(p.ID)
			available := c.Derive().AvailableStock

			want := ParseQuantity(in)
			if want > available {
				want = available
			}
			assert.Equal(t, want, c.ChangeQuantity(in), "product %s input %q", p.Name, in)
		}
	}
}

func TestReducersReturnNewState(t *testing.T) {
	s := DefaultFormState()
	next := ChangeNotes(ChangeCustomer(ChangeStatus(ChangePrice(s, "3.50"), enum.SaleStatusPending), "Amina"), "paid cash")

	assert.Equal(t, DefaultFormState(), s)
	assert.Equal(t, "3.50", next.UnitPrice)
	assert.Equal(t, enum.SaleStatusPending, next.Status)
	assert.Equal(t, "Amina", next.CustomerName)
	assert.Equal(t, "paid cash", next.Notes)
}

func TestDeriveTotals(t *testing.T) {
	c := NewController(fixtureSnapshot(), Options{})
	c.SelectProduct(productA.ID)
	c.ChangeQuantity("3")

	d := c.Derive()
	require.NotNil(t, d.SelectedProduct)
	assert.Equal(t, productA.Name, d.SelectedProduct.Name)
	assert.InDelta(t, 19.999, d.UnitPrice, 1e-9)
	assert.InDelta(t, 59.997, d.TotalAmount, 1e-9)
	assert.Equal(t, 42, d.AvailableStock)
	assert.Empty(t, d.QuantityError)
	assert.True(t, d.CanSubmit)

	c.ChangePrice("not a price")
	d = c.Derive()
	assert.Equal(t, 0.0, d.UnitPrice)
	assert.Equal(t, 0.0, d.TotalAmount)
	assert.True(t, d.CanSubmit)
}

func TestDeriveWithoutProduct(t *testing.T) {
	c := NewController(fixtureSnapshot(), Options{})
	d := c.Derive()
	assert.Nil(t, d.SelectedProduct)
	assert.False(t, d.CanSubmit)
	assert.Empty(t, d.QuantityError)
}

func TestDeriveQuantityOvershootFlagged(t *testing.T) {
	s := SelectProduct(DefaultFormState(), fixtureSnapshot().Products, productA.ID)
	s.Quantity = 50

	d := Derive(s, fixtureSnapshot())
	assert.False(t, d.IsQuantityValid)
	assert.False(t, d.CanSubmit)
	assert.Equal(t, "Only 42 in stock", d.QuantityError)

	s.Quantity = -1
	d = Derive(s, fixtureSnapshot())
	assert.False(t, d.IsQuantityValid)
	assert.Equal(t, "Quantity must be at least 1", d.QuantityError)
}

func TestZeroStockNeverSubmittable(t *testing.T) {
	var emitted int
	c := NewController(fixtureSnapshot(), Options{OnSaleCreated: func(entity.Sale) error {
		emitted++
		return nil
	}})
	c.Open()
	c.SelectProduct(productB.ID)

	for _, in := range []string{"", "0", "1", "5", "-2"} {
		c.ChangeQuantity(in)
		d := c.Derive()
		assert.False(t, d.CanSubmit, "input %q", in)
		assert.Equal(t, "Out of stock", d.QuantityError)

		sale, ok, err := c.Submit()
		assert.Nil(t, sale)
		assert.False(t, ok)
		assert.NoError(t, err)
	}
	// a stale state that slipped past clamping is still rejected
	c.state.Quantity = 1
	_, ok, _ := c.Submit()
	assert.False(t, ok)
	assert.Zero(t, emitted)
	assert.True(t, c.IsOpen())
}

func TestNegativeStockIsFlaggedAndFloored(t *testing.T) {
	c := NewController(fixtureSnapshot(), Options{})
	c.SelectProduct(productC.ID)

	assert.Equal(t, -2, c.CalculatedStock(productC.ID))
	d := c.Derive()
	assert.Equal(t, -2, d.CalculatedStock)
	assert.Equal(t, 0, d.AvailableStock)
	assert.True(t, d.StockInconsistent)
	assert.False(t, d.CanSubmit)
	assert.Equal(t, 0, c.ChangeQuantity("3"))
}

func TestSubmitBuildsSaleAndResets(t *testing.T) {
	var got []entity.Sale
	var openEvents []bool
	c := NewController(fixtureSnapshot(), Options{
		OnSaleCreated: func(s entity.Sale) error {
			got = append(got, s)
			return nil
		},
		OnOpenChange: func(open bool) { openEvents = append(openEvents, open) },
		Now:          fixedClock(time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)),
	})
	c.Open()
	c.SelectProduct(productA.ID)
	c.ChangeQuantity("3")
	c.ChangeCustomer("Amina")
	c.ChangeStatus(enum.SaleStatusPending)

	sale, ok, err := c.Submit()
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, sale)
	require.Len(t, got, 1)
	assert.Equal(t, *sale, got[0])

	assert.Equal(t, uuid.Nil, sale.ID)
	assert.Equal(t, productA.ID, sale.ProductID)
	assert.Equal(t, "Rice 5kg", sale.ProductName)
	assert.Equal(t, 3, sale.Quantity)
	assert.Equal(t, "20.00", sale.UnitPrice)
	assert.Equal(t, "60.00", sale.TotalAmount)
	assert.Equal(t, "2026-10-14", sale.Date)
	assert.Equal(t, enum.SaleStatusPending, sale.Status)
	require.NotNil(t, sale.CustomerName)
	assert.Equal(t, "Amina", *sale.CustomerName)
	assert.Nil(t, sale.Notes)

	assert.False(t, c.IsOpen())
	assert.Equal(t, DefaultFormState(), c.State())
	assert.Equal(t, []bool{true, false}, openEvents)
}

func TestSubmitUsesUTCDate(t *testing.T) {
	// 02:00 on the 15th in UTC+14 is still the 14th in UTC
	kiritimati := time.FixedZone("UTC+14", 14*60*60)
	c := NewController(fixtureSnapshot(), Options{Now: fixedClock(time.Date(2026, 10, 15, 2, 0, 0, 0, kiritimati))})
	c.SelectProduct(productA.ID)

	sale, ok, err := c.Submit()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2026-10-14", sale.Date)
}

func TestSubmitRequiresUnitPrice(t *testing.T) {
	c := NewController(fixtureSnapshot(), Options{})
	c.SelectProduct(productA.ID)
	c.ChangePrice("")

	_, ok, err := c.Submit()
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, c.Derive().CanSubmit)
}

func TestSubmitRejectsOverflowingTotal(t *testing.T) {
	c := NewController(fixtureSnapshot(), Options{})
	c.SelectProduct(productA.ID)
	c.ChangePrice(strconv.FormatFloat(math.MaxFloat64, 'g', -1, 64))
	c.ChangeQuantity("2")

	assert.True(t, math.IsInf(c.Derive().TotalAmount, 1))
	_, ok, _ := c.Submit()
	assert.False(t, ok)

	raw, err := json.Marshal(c.Derive())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"total_amount":null`)
	assert.Contains(t, string(raw), `"can_submit":false`)
}

func TestSubmitCallbackErrorKeepsState(t *testing.T) {
	boom := errors.New("db down")
	c := NewController(fixtureSnapshot(), Options{OnSaleCreated: func(entity.Sale) error { return boom }})
	c.Open()
	c.SelectProduct(productA.ID)
	c.ChangeQuantity("2")
	before := c.State()

	sale, ok, err := c.Submit()
	assert.Nil(t, sale)
	assert.True(t, ok)
	assert.ErrorIs(t, err, boom)
	assert.True(t, c.IsOpen())
	assert.Equal(t, before, c.State())
}

func TestCancelKeepsStateByDefault(t *testing.T) {
	var emitted int
	c := NewController(fixtureSnapshot(), Options{OnSaleCreated: func(entity.Sale) error {
		emitted++
		return nil
	}})
	c.Open()
	c.SelectProduct(productA.ID)
	c.ChangeQuantity("5")
	c.ChangeNotes("hold for pickup")
	before := c.State()

	c.Cancel()
	assert.False(t, c.IsOpen())
	assert.Zero(t, emitted)

	c.Open()
	assert.Equal(t, before, c.State())
}

func TestCancelWithResetOnCancel(t *testing.T) {
	c := NewController(fixtureSnapshot(), Options{ResetOnCancel: true})
	c.Open()
	c.SelectProduct(productA.ID)
	c.Cancel()

	assert.Equal(t, DefaultFormState(), c.State())
}

func TestRefreshSeesNewStock(t *testing.T) {
	snap := fixtureSnapshot()
	c := NewController(snap, Options{})
	c.SelectProduct(productB.ID)
	assert.Equal(t, 0, c.ChangeQuantity("4"))

	snap.Purchases = append(snap.Purchases, entity.Purchase{ProductID: productB.ID, Quantity: 10})
	c.Refresh(snap)
	assert.Equal(t, 4, c.ChangeQuantity("4"))
	assert.True(t, c.Derive().CanSubmit)
}

func TestOpenChangeFiresOnTransitionsOnly(t *testing.T) {
	var seen []bool
	c := NewController(fixtureSnapshot(), Options{
		OnOpenChange:  func(open bool) { seen = append(seen, open) },
		OnSaleCreated: func(entity.Sale) error { return nil },
	})

	c.Open()
	c.Open()
	c.Cancel()
	c.Cancel()
	c.Open()
	c.SelectProduct(productA.ID)
	_, ok, err := c.Submit()
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, []bool{true, false, true, false}, seen)
}
