package saleform

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/sangkips/salesdesk-api/internal/domain/entity"
)

// Derived holds every value computed from a FormState and a Snapshot.
type Derived struct {
	SelectedProduct *entity.Product `json:"selected_product,omitempty"`
	UnitPrice       float64         `json:"unit_price"`
	TotalAmount     float64         `json:"total_amount"`
	// CalculatedStock is the raw purchases + returns - sales figure.
	CalculatedStock int `json:"calculated_stock"`
	// AvailableStock is CalculatedStock floored at zero.
	AvailableStock    int    `json:"available_stock"`
	StockInconsistent bool   `json:"stock_inconsistent"`
	IsQuantityValid   bool   `json:"is_quantity_valid"`
	QuantityError     string `json:"quantity_error,omitempty"`
	CanSubmit         bool   `json:"can_submit"`
}

// Derive computes the dialog's derived values. It is a pure function.
func Derive(s FormState, snap Snapshot) Derived {
	d := Derived{
		SelectedProduct: snap.FindProduct(s.ProductID),
		UnitPrice:       ParsePrice(s.UnitPrice),
		CalculatedStock: CalculateStock(snap, s.ProductID),
	}
	d.TotalAmount = d.UnitPrice * float64(s.Quantity)
	d.AvailableStock = d.CalculatedStock
	if d.AvailableStock < 0 {
		d.AvailableStock = 0
		d.StockInconsistent = true
	}
	d.IsQuantityValid = s.Quantity >= 1 && s.Quantity <= d.AvailableStock

	if d.SelectedProduct != nil {
		switch {
		case d.AvailableStock == 0:
			d.QuantityError = "Out of stock"
		case s.Quantity < 1:
			d.QuantityError = "Quantity must be at least 1"
		case s.Quantity > d.AvailableStock:
			d.QuantityError = fmt.Sprintf("Only %d in stock", d.AvailableStock)
		}
	}

	d.CanSubmit = d.SelectedProduct != nil &&
		s.UnitPrice != "" &&
		d.IsQuantityValid &&
		!math.IsInf(d.TotalAmount, 0)
	return d
}

// MarshalJSON encodes non-finite amounts as null.
func (d Derived) MarshalJSON() ([]byte, error) {
	type alias Derived
	return json.Marshal(struct {
		alias
		UnitPrice   *float64 `json:"unit_price"`
		TotalAmount *float64 `json:"total_amount"`
	}{
		alias:       alias(d),
		UnitPrice:   finite(d.UnitPrice),
		TotalAmount: finite(d.TotalAmount),
	})
}

func finite(f float64) *float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}
