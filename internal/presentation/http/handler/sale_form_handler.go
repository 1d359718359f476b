package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/application/service"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
)

// SaleFormHandler exposes sale-entry dialog sessions
type SaleFormHandler struct {
	formService *service.SaleFormService
}

// NewSaleFormHandler creates a new sale form handler
func NewSaleFormHandler(formService *service.SaleFormService) *SaleFormHandler {
	return &SaleFormHandler{formService: formService}
}

// session resolves the caller and the :id path parameter
func (h *SaleFormHandler) session(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := requireUser(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	id, ok := pathID(c, "id", "sale form")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

func respondView(c *gin.Context, view *service.SaleFormView, err error) {
	if err != nil {
		if view != nil && apperror.IsAppError(err) {
			response.ErrorWithData(c, err, view)
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale form updated", view)
}

// Create opens a new sale form
func (h *SaleFormHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	view, err := h.formService.OpenForm(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale form opened", view)
}

// Get returns the current form state and derived values
func (h *SaleFormHandler) Get(c *gin.Context) {
	userID, id, ok := h.session(c)
	if !ok {
		return
	}

	view, err := h.formService.GetForm(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale form retrieved", view)
}

// Open shows a closed form again
func (h *SaleFormHandler) Open(c *gin.Context) {
	userID, id, ok := h.session(c)
	if !ok {
		return
	}

	view, err := h.formService.ReopenForm(c.Request.Context(), userID, id)
	respondView(c, view, err)
}

// SelectProduct picks the product being sold
func (h *SaleFormHandler) SelectProduct(c *gin.Context) {
	userID, id, ok := h.session(c)
	if !ok {
		return
	}
	var req request.SelectProductRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.formService.SelectProduct(c.Request.Context(), userID, id, req.ProductID)
	respondView(c, view, err)
}

// ChangeQuantity applies typed quantity input
func (h *SaleFormHandler) ChangeQuantity(c *gin.Context) {
	userID, id, ok := h.session(c)
	if !ok {
		return
	}
	var req request.ChangeQuantityRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.formService.ChangeQuantity(c.Request.Context(), userID, id, string(req.Quantity))
	respondView(c, view, err)
}

// ChangeUnitPrice applies typed unit price input
func (h *SaleFormHandler) ChangeUnitPrice(c *gin.Context) {
	userID, id, ok := h.session(c)
	if !ok {
		return
	}
	var req request.ChangeUnitPriceRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.formService.ChangeUnitPrice(c.Request.Context(), userID, id, string(req.UnitPrice))
	respondView(c, view, err)
}

// ChangeStatus sets the sale status
func (h *SaleFormHandler) ChangeStatus(c *gin.Context) {
	userID, id, ok := h.session(c)
	if !ok {
		return
	}
	var req request.ChangeStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.formService.ChangeStatus(c.Request.Context(), userID, id, *req.Status)
	respondView(c, view, err)
}

// ChangeCustomer sets the customer name
func (h *SaleFormHandler) ChangeCustomer(c *gin.Context) {
	userID, id, ok := h.session(c)
	if !ok {
		return
	}
	var req request.ChangeCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.formService.ChangeCustomer(c.Request.Context(), userID, id, req.CustomerName)
	respondView(c, view, err)
}

// ChangeNotes sets the notes
func (h *SaleFormHandler) ChangeNotes(c *gin.Context) {
	userID, id, ok := h.session(c)
	if !ok {
		return
	}
	var req request.ChangeNotesRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.formService.ChangeNotes(c.Request.Context(), userID, id, req.Notes)
	respondView(c, view, err)
}

// Submit records the sale. A form that fails its guard gets a 422 carrying the form.
func (h *SaleFormHandler) Submit(c *gin.Context) {
	userID, id, ok := h.session(c)
	if !ok {
		return
	}

	sale, view, err := h.formService.Submit(c.Request.Context(), userID, id)
	if err != nil {
		respondView(c, view, err)
		return
	}

	response.Created(c, "Sale recorded successfully", gin.H{
		"sale": sale,
		"form": view,
	})
}

// Cancel closes the form without recording anything
func (h *SaleFormHandler) Cancel(c *gin.Context) {
	userID, id, ok := h.session(c)
	if !ok {
		return
	}

	view, err := h.formService.Cancel(c.Request.Context(), userID, id)
	respondView(c, view, err)
}

// Delete discards the form session
func (h *SaleFormHandler) Delete(c *gin.Context) {
	userID, id, ok := h.session(c)
	if !ok {
		return
	}

	if err := h.formService.Discard(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
