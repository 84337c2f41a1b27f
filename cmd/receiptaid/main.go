package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"receiptai/internal/api"
	"receiptai/internal/api/handlers"
	"receiptai/internal/reconstruct"
	"receiptai/internal/repository"
	"receiptai/internal/service"
	"receiptai/pkg/config"
	"receiptai/pkg/logger"
	"receiptai/pkg/postgres"

	"go.uber.org/zap"
)

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
	appLogger.Info("Starting ReceiptAI service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	receiptRepo := repository.NewReceiptRepository(db, appLogger)

	// Initialize services
	ocrService := service.NewOCRService(cfg.OCR, appLogger)

	var opts []reconstruct.Option
	if cfg.Parser.DayFirstDates {
		opts = append(opts, reconstruct.WithDayFirstDates())
	}
	reconstructor := reconstruct.New(opts...)

	receiptService := service.NewReceiptService(receiptRepo, ocrService, reconstructor, cfg.Storage.UploadDir, appLogger)

	// Initialize handlers
	receiptHandler := handlers.NewReceiptHandler(receiptService, appLogger)

	// Setup router
	app := api.SetupRouter(receiptHandler, cfg.Storage.UploadDir, appLogger)

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
