package request

import "github.com/google/uuid"

// CreatePurchaseRequest represents a purchase creation request
type CreatePurchaseRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"min=1"`
	Date      string    `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Notes     *string   `json:"notes" binding:"omitempty,max=2000"`
}

// CreateSalesReturnRequest represents a sales return creation request
type CreateSalesReturnRequest struct {
	ProductID      uuid.UUID `json:"product_id" binding:"required"`
	ReturnQuantity int       `json:"return_quantity" binding:"min=1"`
	Reason         *string   `json:"reason" binding:"omitempty,max=2000"`
	Date           string    `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// MovementFilterRequest filters purchase and return listings
type MovementFilterRequest struct {
	ProductID string `form:"product_id" binding:"omitempty,uuid"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
