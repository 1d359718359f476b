package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdesk-api/internal/application/service"
	"github.com/sangkips/salesdesk-api/internal/config"
	"github.com/sangkips/salesdesk-api/internal/infrastructure/database"
	"github.com/sangkips/salesdesk-api/internal/infrastructure/repository"
	"github.com/sangkips/salesdesk-api/internal/infrastructure/session"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/handler"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/middleware"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/routes"
	"github.com/sangkips/salesdesk-api/pkg/logger"
	"github.com/sangkips/salesdesk-api/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, cfgWarning := config.Load()

	log := logger.Must(logger.New(cfg.App.Env))
	defer func() { _ = log.Sync() }()

	if cfgWarning != nil {
		log.Warn("no .env file loaded, using environment only", zap.Error(cfgWarning))
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := request.RegisterValidators(); err != nil {
		log.Fatal("failed to register validators", zap.Error(err))
	}

	// Connect to database
	db, err := database.NewDB(&cfg.Database, cfg.App.Debug, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	if cfg.App.SeedDemo {
		if err := database.SeedDemoData(db, log); err != nil {
			log.Warn("failed to seed demo data", zap.Error(err))
		}
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiry)

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	returnRepo := repository.NewSalesReturnRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	formLog := logger.Named(log, "sale_form")
	formStore := session.NewFormStore(session.FormStoreConfig{
		EntryTTL:        cfg.SaleForm.SessionTTL,
		CleanupInterval: cfg.SaleForm.CleanupInterval,
		OnEvict: func(sess *session.FormSession) {
			formLog.Info("sale form expired",
				zap.String("session_id", sess.ID.String()),
				zap.String("user_id", sess.OwnerID.String()),
			)
		},
	})
	defer formStore.Stop()

	// Initialize services
	loader := service.NewSnapshotLoader(productRepo, saleRepo, purchaseRepo, returnRepo)
	productService := service.NewProductService(productRepo, loader)
	purchaseService := service.NewPurchaseService(purchaseRepo, productRepo)
	returnService := service.NewSalesReturnService(returnRepo, productRepo)
	saleService := service.NewSaleService(saleRepo, loader, logger.Named(log, "sales"))
	formService := service.NewSaleFormService(loader, saleRepo, formStore, service.SaleFormServiceConfig{
		ResetOnCancel: cfg.SaleForm.ResetOnCancel,
	}, formLog)

	rateLimiter := middleware.NewUserRateLimiter(
		middleware.RateLimiterConfigFor(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)
	defer rateLimiter.Stop()

	handlers := &routes.Handlers{
		Health:      handler.NewHealthHandler(db, cfg.App.Name, formStore, rateLimiter),
		Product:     handler.NewProductHandler(productService),
		Purchase:    handler.NewPurchaseHandler(purchaseService),
		SalesReturn: handler.NewSalesReturnHandler(returnService),
		Sale:        handler.NewSaleHandler(saleService),
		SaleForm:    handler.NewSaleFormHandler(formService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
		Logger:          logger.Named(log, "http"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Purge expired idempotency keys
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				purged, err := idempotencyRepo.DeleteExpired(ctx, time.Now())
				if err != nil {
					log.Warn("failed to purge idempotency keys", zap.Error(err))
					continue
				}
				if purged > 0 {
					log.Info("purged idempotency keys", zap.Int64("count", purged))
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server",
			zap.String("app", cfg.App.Name),
			zap.String("port", cfg.App.Port),
			zap.String("env", cfg.App.Env),
			zap.String("db_driver", cfg.Database.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
