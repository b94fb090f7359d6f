package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"grantscan/internal/api"
	"grantscan/internal/api/handlers"
	"grantscan/internal/repository"
	"grantscan/internal/service"
	"grantscan/pkg/cache"
	"grantscan/pkg/config"
	"grantscan/pkg/logger"
	"grantscan/pkg/postgres"

	"go.uber.org/zap"
)

// @title GrantScan API
// @version 1.0
// @description Grant eligibility scanning for Irish government grants, schemes, and tax reliefs

// @contact.name API Support
// @contact.email support@grantscan.ie

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting GrantScan service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize cache. The service degrades to database loads when Redis
	// is unreachable, so a failed ping is not fatal.
	redisClient := cache.New(&cfg.Redis)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx); err != nil {
		appLogger.Warn("Redis unavailable, catalog caching disabled", zap.Error(err))
		redisClient = nil
	}

	// Initialize repositories
	grantRepo := repository.NewGrantRepository(db, appLogger)
	scanRepo := repository.NewScanRepository(db, appLogger)

	// Initialize services
	catalogService := service.NewCatalogService(grantRepo, redisClient, cfg.Catalog.CacheTTL, appLogger)
	scanService := service.NewScanService(catalogService, scanRepo, appLogger)
	grantService := service.NewGrantService(grantRepo, appLogger)

	// Initialize handlers
	scanHandler := handlers.NewScanHandler(scanService, appLogger)
	grantHandler := handlers.NewGrantHandler(grantService, appLogger)

	// Setup router
	app := api.SetupRouter(scanHandler, grantHandler)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
