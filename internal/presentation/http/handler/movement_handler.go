package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdesk-api/internal/application/service"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/dto/response"
)

// PurchaseHandler handles purchase-related HTTP requests
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// List handles listing purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	var filter request.MovementFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.purchaseService.ListPurchases(c.Request.Context(), &repository.MovementFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		ProductID:  optionalUUID(filter.ProductID),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Purchases retrieved successfully", result)
}

// Create handles recording a purchase
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req request.CreatePurchaseRequest
	if !bindJSON(c, &req) {
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), &service.CreatePurchaseInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Date:      req.Date,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase recorded successfully", purchase)
}

// SalesReturnHandler handles sales return HTTP requests
type SalesReturnHandler struct {
	returnService *service.SalesReturnService
}

// NewSalesReturnHandler creates a new sales return handler
func NewSalesReturnHandler(returnService *service.SalesReturnService) *SalesReturnHandler {
	return &SalesReturnHandler{returnService: returnService}
}

// List handles listing sales returns
func (h *SalesReturnHandler) List(c *gin.Context) {
	var filter request.MovementFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.returnService.ListSalesReturns(c.Request.Context(), &repository.MovementFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		ProductID:  optionalUUID(filter.ProductID),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales returns retrieved successfully", result)
}

// Create handles recording a sales return
func (h *SalesReturnHandler) Create(c *gin.Context) {
	var req request.CreateSalesReturnRequest
	if !bindJSON(c, &req) {
		return
	}

	ret, err := h.returnService.CreateSalesReturn(c.Request.Context(), &service.CreateSalesReturnInput{
		ProductID:      req.ProductID,
		ReturnQuantity: req.ReturnQuantity,
		Reason:         req.Reason,
		Date:           req.Date,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sales return recorded successfully", ret)
}
