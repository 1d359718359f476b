package repository

import (
	"errors"
	"fmt"
)

// ErrProductNotFound is returned when a write refers to a product that does not exist
var ErrProductNotFound = errors.New("product not found")

// InsufficientStockError reports that a sale asked for more than is in stock
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, available %d", e.Requested, e.Available)
}
