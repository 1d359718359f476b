package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
)

// CreateSaleRequest records a sale in one call
type CreateSaleRequest struct {
	ProductID    uuid.UUID       `json:"product_id" binding:"required"`
	Quantity     int             `json:"quantity" binding:"min=1"`
	UnitPrice    *string         `json:"unit_price" binding:"omitempty,max=64"`
	Status       enum.SaleStatus `json:"status" binding:"sale_status"`
	CustomerName string          `json:"customer_name" binding:"max=255"`
	Notes        string          `json:"notes" binding:"max=2000"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	Status    string `form:"status"`
	ProductID string `form:"product_id" binding:"omitempty,uuid"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
