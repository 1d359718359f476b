package saleform

import (
	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
)

// FormState is the transient input of one sale-entry session.
// UnitPrice is kept as typed; it is only parsed when deriving values.
type FormState struct {
	ProductID    uuid.UUID       `json:"product_id"`
	Quantity     int             `json:"quantity"`
	UnitPrice    string          `json:"unit_price"`
	CustomerName string          `json:"customer_name"`
	Status       enum.SaleStatus `json:"status"`
	Notes        string          `json:"notes"`
}

// DefaultFormState is the state of a freshly opened dialog.
func DefaultFormState() FormState {
	return FormState{
		ProductID: uuid.Nil,
		Quantity:  1,
		Status:    enum.SaleStatusCompleted,
	}
}

// HasProduct reports whether a product has been picked.
func (s FormState) HasProduct() bool {
	return s.ProductID != uuid.Nil
}

// SelectProduct switches the form to another product. Quantity goes back to 1
// and the unit price is pre-filled from the product's sell price, or cleared
// when the product is unknown.
func SelectProduct(s FormState, products []entity.Product, productID uuid.UUID) FormState {
	s.ProductID = productID
	s.Quantity = 1
	s.UnitPrice = ""
	for i := range products {
		if products[i].ID == productID {
			s.UnitPrice = StripCurrency(products[i].SellPrice)
			break
		}
	}
	return s
}

// ChangeQuantity stores the typed quantity capped at availableStock.
func ChangeQuantity(s FormState, raw string, availableStock int) FormState {
	q := ParseQuantity(raw)
	if q > availableStock {
		q = availableStock
	}
	s.Quantity = q
	return s
}

// ChangePrice stores the unit price as typed.
func ChangePrice(s FormState, unitPrice string) FormState {
	s.UnitPrice = unitPrice
	return s
}

// ChangeStatus stores the sale status.
func ChangeStatus(s FormState, status enum.SaleStatus) FormState {
	s.Status = status
	return s
}

// ChangeCustomer stores the customer name.
func ChangeCustomer(s FormState, customerName string) FormState {
	s.CustomerName = customerName
	return s
}

// ChangeNotes stores the free-form notes.
func ChangeNotes(s FormState, notes string) FormState {
	s.Notes = notes
	return s
}
