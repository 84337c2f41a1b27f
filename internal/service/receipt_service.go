package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"receiptai/internal/dto"
	"receiptai/internal/models"
	"receiptai/internal/reconstruct"
	"receiptai/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReceiptService struct {
	receiptRepo   *repository.ReceiptRepository
	ocrService    *OCRService
	reconstructor *reconstruct.Reconstructor
	uploadDir     string
	logger        *zap.Logger
}

func NewReceiptService(
	receiptRepo *repository.ReceiptRepository,
	ocrService *OCRService,
	reconstructor *reconstruct.Reconstructor,
	uploadDir string,
	logger *zap.Logger,
) *ReceiptService {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		logger.Warn("Failed to create upload directory", zap.Error(err))
	}

	return &ReceiptService{
		receiptRepo:   receiptRepo,
		ocrService:    ocrService,
		reconstructor: reconstructor,
		uploadDir:     uploadDir,
		logger:        logger,
	}
}

// UploadReceipt saves the uploaded file and creates a receipt record in the
// "uploaded" state. Extraction happens later via ProcessReceipt.
func (s *ReceiptService) UploadReceipt(ctx context.Context, profileID uuid.UUID, file io.Reader, fileName string) (*dto.ReceiptResponse, error) {
	fileID := uuid.New()
	ext := filepath.Ext(fileName)
	storedName := fileID.String() + ext
	filePath := filepath.Join(s.uploadDir, storedName)

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	fileSize, err := io.Copy(dst, file)
	if err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	now := time.Now()
	rec := &models.Receipt{
		ID:        fileID,
		ProfileID: profileID,
		FileName:  fileName,
		FileSize:  fileSize,
		FileURL:   "/uploads/" + storedName,
		Status:    models.ReceiptStatusUploaded,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.receiptRepo.Create(ctx, rec); err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to create receipt record: %w", err)
	}

	return receiptToResponse(rec, nil), nil
}

// ProcessReceipt runs OCR on the stored file, reconstructs the receipt
// structure from the raw text, and persists the result. OCR failure marks
// the receipt failed rather than returning an error: the upload stays and
// can be reprocessed.
func (s *ReceiptService) ProcessReceipt(ctx context.Context, profileID, receiptID uuid.UUID) (*dto.ReceiptResponse, error) {
	rec, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("receipt not found: %w", err)
	}
	if rec.ProfileID != profileID {
		return nil, fmt.Errorf("receipt %s does not belong to profile", receiptID)
	}

	filePath := filepath.Join(s.uploadDir, filepath.Base(rec.FileURL))
	rawText, err := s.ocrService.ExtractText(ctx, filePath)
	if err != nil {
		s.logger.Warn("OCR extraction failed",
			zap.String("receipt_id", receiptID.String()),
			zap.Error(err),
		)
		rec.Status = models.ReceiptStatusFailed
		if updErr := s.receiptRepo.UpdateParsed(ctx, rec, nil); updErr != nil {
			return nil, fmt.Errorf("failed to mark receipt failed: %w", updErr)
		}
		return receiptToResponse(rec, nil), nil
	}

	result := s.reconstructor.Reconstruct(rawText)

	rec.OCRText = sanitizeUTF8(rawText)
	rec.Status = models.ReceiptStatusParsed
	rec.Vendor = sanitizePtr(result.Vendor)
	rec.ReceiptDate = result.Date
	rec.TotalCents = result.TotalCents
	rec.TaxCents = result.TaxCents
	rec.TaxType = result.TaxType

	now := time.Now()
	items := make([]*models.ReceiptItem, len(result.Items))
	for i, it := range result.Items {
		items[i] = &models.ReceiptItem{
			ID:             uuid.New(),
			ReceiptID:      rec.ID,
			Position:       i,
			Description:    sanitizeUTF8(it.Description),
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			TotalCents:     it.TotalCents,
			CreatedAt:      now,
		}
	}

	if err := s.receiptRepo.UpdateParsed(ctx, rec, items); err != nil {
		return nil, fmt.Errorf("failed to persist reconstruction: %w", err)
	}

	s.logger.Info("Receipt processed",
		zap.String("receipt_id", receiptID.String()),
		zap.Int("items", len(items)),
	)

	return receiptToResponse(rec, items), nil
}

// ReconstructText runs the reconstruction engine on already-extracted text.
// It touches neither the filesystem nor the database.
func (s *ReceiptService) ReconstructText(text string) *dto.ReconstructionResponse {
	result := s.reconstructor.Reconstruct(text)

	items := make([]dto.LineItemResponse, len(result.Items))
	for i, it := range result.Items {
		items[i] = dto.LineItemResponse{
			Description:    it.Description,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			TotalCents:     it.TotalCents,
		}
	}

	return &dto.ReconstructionResponse{
		Vendor:     result.Vendor,
		Date:       result.Date,
		TotalCents: result.TotalCents,
		TaxCents:   result.TaxCents,
		TaxType:    result.TaxType,
		Items:      items,
	}
}

// GetReceipt returns one receipt with its line items.
func (s *ReceiptService) GetReceipt(ctx context.Context, profileID, receiptID uuid.UUID) (*dto.ReceiptResponse, error) {
	rec, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("receipt not found: %w", err)
	}
	if rec.ProfileID != profileID {
		return nil, fmt.Errorf("receipt %s does not belong to profile", receiptID)
	}

	items, err := s.receiptRepo.GetItems(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipt items: %w", err)
	}

	return receiptToResponse(rec, items), nil
}

// ListReceipts lists a profile's receipts, newest first, items omitted.
func (s *ReceiptService) ListReceipts(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]*dto.ReceiptResponse, error) {
	recs, err := s.receiptRepo.ListByProfileID(ctx, profileID, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ReceiptResponse, len(recs))
	for i, rec := range recs {
		responses[i] = receiptToResponse(rec, nil)
	}

	return responses, nil
}

func receiptToResponse(rec *models.Receipt, items []*models.ReceiptItem) *dto.ReceiptResponse {
	itemResponses := make([]dto.LineItemResponse, len(items))
	for i, it := range items {
		itemResponses[i] = dto.LineItemResponse{
			Description:    it.Description,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			TotalCents:     it.TotalCents,
		}
	}

	return &dto.ReceiptResponse{
		ID:         rec.ID.String(),
		ProfileID:  rec.ProfileID.String(),
		FileName:   rec.FileName,
		FileSize:   rec.FileSize,
		FileURL:    rec.FileURL,
		Status:     string(rec.Status),
		Vendor:     rec.Vendor,
		Date:       rec.ReceiptDate,
		TotalCents: rec.TotalCents,
		TaxCents:   rec.TaxCents,
		TaxType:    rec.TaxType,
		Items:      itemResponses,
		OCRText:    rec.OCRText,
		CreatedAt:  rec.CreatedAt.Format(time.RFC3339),
	}
}

func sanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := sanitizeUTF8(*s)
	return &clean
}
