package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mkarlsson/storefront-backend/config"
	"github.com/mkarlsson/storefront-backend/internal/app/controller"
	"github.com/mkarlsson/storefront-backend/internal/app/repository"
	"github.com/mkarlsson/storefront-backend/internal/app/service"
	"github.com/mkarlsson/storefront-backend/internal/middleware"
	"github.com/mkarlsson/storefront-backend/internal/router"
	"github.com/mkarlsson/storefront-backend/internal/scheduler"
	"github.com/mkarlsson/storefront-backend/pkg/catalog"
	"github.com/mkarlsson/storefront-backend/pkg/logger"
	"github.com/mkarlsson/storefront-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Storefront Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"catalog":     cfg.Catalog.BaseURL,
		"log_level":   logLevel,
	})

	// Initialize the persisted slot storage
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize the remote catalog client
	catalogClient, err := catalog.NewClient(catalog.Config{
		BaseURL: cfg.Catalog.BaseURL,
		Timeout: cfg.Catalog.Timeout,
	})
	if err != nil {
		logger.Fatal("Failed to initialize catalog client", err)
	}

	// Initialize repositories
	productCatalog := repository.NewCachedCatalog(catalogClient)
	cartRepo := repository.NewCartRepository(redis.GetClient(), cfg.Session.SlotTTL)
	customerRepo := repository.NewCustomerRepository(redis.GetClient(), cfg.Session.SlotTTL)

	// Initialize services
	productService := service.NewProductService(productCatalog)
	pricingService := service.NewPricingService(productCatalog)
	cartService := service.NewCartService(cartRepo, productCatalog, pricingService)
	checkoutService := service.NewCheckoutService(cartRepo, customerRepo, productCatalog)

	// Initialize controllers
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService)
	checkoutController := controller.NewCheckoutController(checkoutService)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(cfg.Session.CookieName, cfg.Session.MaxAge)

	// Start catalog warmup scheduler (optional)
	if cfg.Catalog.WarmupEnabled {
		catalogScheduler := scheduler.NewCatalogScheduler(productCatalog, cfg.Catalog.WarmupSchedule)
		if err := catalogScheduler.Start(); err != nil {
			logger.Warn("Failed to start catalog scheduler", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer catalogScheduler.Stop()
		}
	}

	// Setup router
	r := router.NewRouter(
		productController,
		cartController,
		checkoutController,
		sessionMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
