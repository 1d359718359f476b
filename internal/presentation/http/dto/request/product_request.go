package request

// CreateProductRequest represents a product creation request.
// SellPrice is free text and may carry a currency symbol.
type CreateProductRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=255"`
	SellPrice string `json:"sell_price" binding:"required,max=64"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
