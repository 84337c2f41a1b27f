package handlers

import (
	"strings"

	"receiptai/internal/dto"
	"receiptai/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReceiptHandler struct {
	receiptService *service.ReceiptService
	logger         *zap.Logger
}

func NewReceiptHandler(receiptService *service.ReceiptService, logger *zap.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		logger:         logger,
	}
}

// UploadReceipt accepts a multipart upload (jpg, jpeg, png, pdf) and stores
// it under the given profile. The receipt is not parsed until a process call.
//
// POST /api/v1/receipts/upload
func (h *ReceiptHandler) UploadReceipt(c *fiber.Ctx) error {
	profileID, err := getProfileID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Valid profile_id is required",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is required",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	rec, err := h.receiptService.UploadReceipt(c.Context(), profileID, src, file.Filename)
	if err != nil {
		h.logger.Error("Failed to upload receipt", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload receipt",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(rec)
}

// ProcessReceipt runs OCR and reconstruction on an uploaded receipt and
// persists the extracted fields and line items.
//
// POST /api/v1/receipts/:id/process
func (h *ReceiptHandler) ProcessReceipt(c *fiber.Ctx) error {
	profileID, err := getProfileID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Valid profile_id is required",
		})
	}

	receiptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid receipt ID",
		})
	}

	result, err := h.receiptService.ProcessReceipt(c.Context(), profileID, receiptID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Receipt not found",
			})
		}
		h.logger.Error("Failed to process receipt",
			zap.String("receipt_id", receiptID.String()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process receipt",
		})
	}

	return c.JSON(result)
}

// ReconstructText runs the reconstruction engine on raw OCR text supplied in
// the request body. Nothing is stored.
//
// POST /api/v1/receipts/reconstruct
func (h *ReceiptHandler) ReconstructText(c *fiber.Ctx) error {
	var req dto.ReconstructTextRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Text is required",
		})
	}

	return c.JSON(h.receiptService.ReconstructText(req.Text))
}

// GetReceipt returns a receipt with its line items.
//
// GET /api/v1/receipts/:id
func (h *ReceiptHandler) GetReceipt(c *fiber.Ctx) error {
	profileID, err := getProfileID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Valid profile_id is required",
		})
	}

	receiptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid receipt ID",
		})
	}

	rec, err := h.receiptService.GetReceipt(c.Context(), profileID, receiptID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Receipt not found",
			})
		}
		h.logger.Error("Failed to get receipt", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get receipt",
		})
	}

	return c.JSON(rec)
}

// ListReceipts lists a profile's receipts, newest first.
//
// GET /api/v1/receipts
func (h *ReceiptHandler) ListReceipts(c *fiber.Ctx) error {
	profileID, err := getProfileID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Valid profile_id is required",
		})
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	recs, err := h.receiptService.ListReceipts(c.Context(), profileID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list receipts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list receipts",
		})
	}

	return c.JSON(recs)
}

// getProfileID reads the accounting-firm profile from the form field or
// query parameter, whichever the request carries.
func getProfileID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.FormValue("profile_id")
	if raw == "" {
		raw = c.Query("profile_id")
	}
	return uuid.Parse(raw)
}
