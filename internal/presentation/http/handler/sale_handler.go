package handler

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdesk-api/internal/application/service"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/internal/domain/saleform"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SaleHandler handles recorded sales
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

func saleFilterParams(filter *request.SaleFilterRequest) (*repository.SaleFilterParams, error) {
	params := &repository.SaleFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		ProductID:  optionalUUID(filter.ProductID),
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		SortOrder:  filter.SortOrder,
	}
	if filter.Status != "" {
		status, err := enum.ParseSaleStatus(filter.Status)
		if err != nil {
			return nil, apperror.NewFieldError("status", "Must be Completed, Pending or Cancelled")
		}
		params.Status = &status
	}
	return params, nil
}

// List handles listing sales
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if !bindQuery(c, &filter) {
		return
	}
	params, err := saleFilterParams(&filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles getting a single sale
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "sale")
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Create handles recording a sale in one request
func (h *SaleHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req request.CreateSaleRequest
	if !bindJSON(c, &req) {
		return
	}

	sale, err := h.saleService.QuickSale(c.Request.Context(), userID, &service.QuickSaleInput{
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		Status:       req.Status,
		CustomerName: req.CustomerName,
		Notes:        req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale recorded successfully", sale)
}

// Export handles downloading sales as an xlsx workbook
func (h *SaleHandler) Export(c *gin.Context) {
	var filter request.SaleFilterRequest
	if !bindQuery(c, &filter) {
		return
	}
	params, err := saleFilterParams(&filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	var buf bytes.Buffer
	if _, err := h.saleService.ExportSales(c.Request.Context(), &buf, params); err != nil {
		response.Error(c, err)
		return
	}

	filename := "sales-" + time.Now().UTC().Format(saleform.DateLayout) + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, xlsxContentType, buf.Bytes())
}
