package api

import (
	"receiptai/internal/api/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	receiptHandler *handlers.ReceiptHandler,
	uploadDir string,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(logger.New())

	appLogger.Info("Serving uploads", zap.String("path", uploadDir))
	app.Static("/uploads", uploadDir)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API routes
	v1 := app.Group("/api/v1")

	receipts := v1.Group("/receipts")
	receipts.Post("/upload", receiptHandler.UploadReceipt)
	receipts.Post("/reconstruct", receiptHandler.ReconstructText)
	receipts.Get("", receiptHandler.ListReceipts)
	receipts.Get("/:id", receiptHandler.GetReceipt)
	receipts.Post("/:id/process", receiptHandler.ProcessReceipt)

	return app
}
