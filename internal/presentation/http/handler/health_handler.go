package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdesk-api/internal/infrastructure/session"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/middleware"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"gorm.io/gorm"
)

// HealthHandler reports service liveness
type HealthHandler struct {
	db      *gorm.DB
	appName string
	forms   *session.FormStore
	limiter *middleware.UserRateLimiter
}

// HealthStatus is the body of a healthy response
type HealthStatus struct {
	Service       string                       `json:"service"`
	OpenSaleForms int                          `json:"open_sale_forms"`
	RateLimiter   *middleware.RateLimiterStats `json:"rate_limiter,omitempty"`
}

// NewHealthHandler creates a new health handler. forms and limiter may be nil.
func NewHealthHandler(db *gorm.DB, appName string, forms *session.FormStore, limiter *middleware.UserRateLimiter) *HealthHandler {
	return &HealthHandler{db: db, appName: appName, forms: forms, limiter: limiter}
}

// Check pings the database
func (h *HealthHandler) Check(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		_ = c.Error(err)
		response.Error(c, apperror.ErrUnavailable)
		return
	}

	status := HealthStatus{Service: h.appName}
	if h.forms != nil {
		status.OpenSaleForms = h.forms.Len()
	}
	if h.limiter != nil {
		stats := h.limiter.Stats()
		status.RateLimiter = &stats
	}
	response.OK(c, "OK", status)
}
