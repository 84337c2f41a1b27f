package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"

	"receiptai/pkg/config"
)

// ErrOCRUnavailable signals that text extraction produced nothing usable,
// as opposed to an I/O or engine failure.
var ErrOCRUnavailable = errors.New("ocr produced no text")

type OCRService struct {
	cfg    config.OCRConfig
	logger *zap.Logger
}

func NewOCRService(cfg config.OCRConfig, logger *zap.Logger) *OCRService {
	return &OCRService{
		cfg:    cfg,
		logger: logger,
	}
}

// ExtractText extracts raw text from an image or PDF file.
// PDFs with an embedded text layer are read directly via go-fitz;
// images go through the Tesseract engine.
// Supported formats: .jpg, .jpeg, .png, .pdf
func (s *OCRService) ExtractText(ctx context.Context, filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".pdf":
	default:
		return "", fmt.Errorf("unsupported file format: %s (supported: jpg, jpeg, png, pdf)", ext)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	var text string
	var err error
	if ext == ".pdf" {
		text, err = s.extractTextFromPDF(filePath)
	} else {
		text, err = s.extractTextFromImage(filePath)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)

	s.logger.Info("OCR extraction completed",
		zap.String("file", filePath),
		zap.String("method", extractionMethod(ext)),
		zap.Int("text_length", len(text)),
	)

	if text == "" {
		return "", fmt.Errorf("%w: %s", ErrOCRUnavailable, filePath)
	}

	return text, nil
}

// extractTextFromPDF reads the text layer of every page with go-fitz.
func (s *OCRService) extractTextFromPDF(pdfPath string) (string, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var textBuilder strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			s.logger.Warn("Failed to extract text from page",
				zap.Int("page", i+1),
				zap.String("file", pdfPath),
				zap.Error(err),
			)
			continue
		}
		if pageText != "" {
			textBuilder.WriteString(pageText)
			textBuilder.WriteString("\n")
		}
	}

	return textBuilder.String(), nil
}

// extractTextFromImage runs the image through Tesseract.
func (s *OCRService) extractTextFromImage(imagePath string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if s.cfg.TessdataDir != "" {
		if err := client.SetTessdataPrefix(s.cfg.TessdataDir); err != nil {
			return "", fmt.Errorf("failed to set tessdata prefix: %w", err)
		}
	}
	if langs := splitLanguages(s.cfg.Languages); len(langs) > 0 {
		if err := client.SetLanguage(langs...); err != nil {
			return "", fmt.Errorf("failed to set OCR languages: %w", err)
		}
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("failed to load image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract recognition failed: %w", err)
	}

	return text, nil
}

// splitLanguages turns the OCR_LANGUAGES value ("eng,fra") into the
// language list Tesseract expects.
func splitLanguages(value string) []string {
	var langs []string
	for _, lang := range strings.Split(value, ",") {
		if lang = strings.TrimSpace(lang); lang != "" {
			langs = append(langs, lang)
		}
	}
	return langs
}

func extractionMethod(ext string) string {
	if ext == ".pdf" {
		return "go-fitz"
	}
	return "tesseract"
}
