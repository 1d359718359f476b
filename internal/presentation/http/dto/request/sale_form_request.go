package request

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
)

// TypedInput is text exactly as a user typed it. It decodes from a JSON
// string or a bare JSON number.
type TypedInput string

// UnmarshalJSON implements json.Unmarshaler
func (t *TypedInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = TypedInput(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = TypedInput(n.String())
	return nil
}

// SelectProductRequest picks the product on a sale form
type SelectProductRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// ChangeQuantityRequest carries the quantity field as typed
type ChangeQuantityRequest struct {
	Quantity TypedInput `json:"quantity" binding:"max=32"`
}

// ChangeUnitPriceRequest carries the unit price field as typed
type ChangeUnitPriceRequest struct {
	UnitPrice TypedInput `json:"unit_price" binding:"max=64"`
}

// ChangeStatusRequest sets the sale status
type ChangeStatusRequest struct {
	Status *enum.SaleStatus `json:"status" binding:"required,sale_status"`
}

// ChangeCustomerRequest sets the customer name
type ChangeCustomerRequest struct {
	CustomerName string `json:"customer_name" binding:"max=255"`
}

// ChangeNotesRequest sets the notes
type ChangeNotesRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}
