package saleform

import (
	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
)

// Snapshot is the read-only view of the collections the form depends on.
// Callers replace it wholesale when fresher data is available.
type Snapshot struct {
	Products  []entity.Product
	Sales     []entity.Sale
	Purchases []entity.Purchase
	Returns   []entity.SalesReturn
}

// FindProduct returns the product with the given ID, or nil.
func (s Snapshot) FindProduct(id uuid.UUID) *entity.Product {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return &s.Products[i]
		}
	}
	return nil
}

// StockBreakdown shows how the available stock of a product was derived
type StockBreakdown struct {
	ProductID uuid.UUID `json:"product_id"`
	Purchased int       `json:"purchased"`
	Returned  int       `json:"returned"`
	Sold      int       `json:"sold"`
	Available int       `json:"available"`
}

// Breakdown sums purchases, returns and sales of one product.
// Available may be negative when the upstream history is inconsistent.
func Breakdown(s Snapshot, productID uuid.UUID) StockBreakdown {
	b := StockBreakdown{ProductID: productID}
	for _, p := range s.Purchases {
		if p.ProductID == productID {
			b.Purchased += p.Quantity
		}
	}
	for _, r := range s.Returns {
		if r.ProductID == productID {
			b.Returned += r.ReturnQuantity
		}
	}
	for _, sale := range s.Sales {
		if sale.ProductID == productID {
			b.Sold += sale.Quantity
		}
	}
	b.Available = b.Purchased - b.Sold + b.Returned
	return b
}

// CalculateStock returns purchases + returns - sales for the product.
func CalculateStock(s Snapshot, productID uuid.UUID) int {
	return Breakdown(s, productID).Available
}
