package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdesk-api/internal/config"
	domainRepo "github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/handler"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/middleware"
	"github.com/sangkips/salesdesk-api/pkg/utils"
	"go.uber.org/zap"
)

// Permissions checked by the routes
const (
	PermViewProducts    = "view-products"
	PermManageProducts  = "manage-products"
	PermManagePurchases = "manage-purchases"
	PermManageReturns   = "manage-returns"
	PermManageSales     = "manage-sales"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Health      *handler.HealthHandler
	Product     *handler.ProductHandler
	Purchase    *handler.PurchaseHandler
	SalesReturn *handler.SalesReturnHandler
	Sale        *handler.SaleHandler
	SaleForm    *handler.SaleFormHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.UserRateLimiter
	Logger          *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", h.Health.Check)

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}

		registerProductRoutes(protected, h)
		registerMovementRoutes(protected, h)
		registerSaleRoutes(protected, h, deps)
		registerSaleFormRoutes(protected, h, deps)
	}

	return router
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", middleware.RequirePermission(PermViewProducts, PermManageProducts), h.Product.List)
		products.GET("/:id", middleware.RequirePermission(PermViewProducts, PermManageProducts), h.Product.Get)
		products.GET("/:id/stock", middleware.RequirePermission(PermViewProducts, PermManageProducts), h.Product.Stock)
		products.POST("", middleware.RequirePermission(PermManageProducts), h.Product.Create)
	}
}

func registerMovementRoutes(protected *gin.RouterGroup, h *Handlers) {
	purchases := protected.Group("/purchases")
	purchases.Use(middleware.RequirePermission(PermManagePurchases))
	{
		purchases.GET("", h.Purchase.List)
		purchases.POST("", h.Purchase.Create)
	}

	returns := protected.Group("/sales-returns")
	returns.Use(middleware.RequirePermission(PermManageReturns))
	{
		returns.GET("", h.SalesReturn.List)
		returns.POST("", h.SalesReturn.Create)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotencyCfg := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo, Logger: deps.Logger}

	sales := protected.Group("/sales")
	sales.Use(middleware.RequirePermission(PermManageSales))
	{
		sales.GET("", h.Sale.List)
		sales.GET("/export", h.Sale.Export)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("", middleware.IdempotencyRequired(idempotencyCfg), h.Sale.Create)
	}
}

func registerSaleFormRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotencyCfg := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo, Logger: deps.Logger}

	forms := protected.Group("/sale-forms")
	forms.Use(middleware.RequirePermission(PermManageSales))
	{
		forms.POST("", h.SaleForm.Create)
		forms.GET("/:id", h.SaleForm.Get)
		forms.POST("/:id/open", h.SaleForm.Open)
		forms.PUT("/:id/product", h.SaleForm.SelectProduct)
		forms.PUT("/:id/quantity", h.SaleForm.ChangeQuantity)
		forms.PUT("/:id/unit-price", h.SaleForm.ChangeUnitPrice)
		forms.PUT("/:id/status", h.SaleForm.ChangeStatus)
		forms.PUT("/:id/customer", h.SaleForm.ChangeCustomer)
		forms.PUT("/:id/notes", h.SaleForm.ChangeNotes)
		forms.POST("/:id/submit", middleware.Idempotency(idempotencyCfg), h.SaleForm.Submit)
		forms.POST("/:id/cancel", h.SaleForm.Cancel)
		forms.DELETE("/:id", h.SaleForm.Delete)
	}
}
