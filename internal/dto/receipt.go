package dto

// ReconstructTextRequest carries raw OCR text straight into the
// reconstruction engine. Used by the email-ingestion fallback, which
// already has text and skips the upload/OCR stages.
type ReconstructTextRequest struct {
	Text string `json:"text"`
}

type LineItemResponse struct {
	Description    string `json:"description"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	TotalCents     int64  `json:"total_cents"`
}

// ReconstructionResponse mirrors the reconstructor output: null fields were
// not determinable, an empty items list means "unknown", not "no items".
type ReconstructionResponse struct {
	Vendor     *string            `json:"vendor"`
	Date       *string            `json:"date"`
	TotalCents *int64             `json:"total_cents"`
	TaxCents   *int64             `json:"tax_cents"`
	TaxType    *string            `json:"tax_type"`
	Items      []LineItemResponse `json:"items"`
}

type ReceiptResponse struct {
	ID         string             `json:"id"`
	ProfileID  string             `json:"profile_id"`
	FileName   string             `json:"file_name"`
	FileSize   int64              `json:"file_size"`
	FileURL    string             `json:"file_url"`
	Status     string             `json:"status"`
	Vendor     *string            `json:"vendor"`
	Date       *string            `json:"date"`
	TotalCents *int64             `json:"total_cents"`
	TaxCents   *int64             `json:"tax_cents"`
	TaxType    *string            `json:"tax_type"`
	Items      []LineItemResponse `json:"items"`
	OCRText    string             `json:"ocr_text,omitempty"`
	CreatedAt  string             `json:"created_at"`
}
