package models

import (
	"time"

	"github.com/google/uuid"
)

type ReceiptStatus string

const (
	ReceiptStatusUploaded ReceiptStatus = "uploaded"
	ReceiptStatusParsed   ReceiptStatus = "parsed"
	ReceiptStatusFailed   ReceiptStatus = "failed"
)

// Receipt is an uploaded client receipt belonging to an accounting-firm
// profile. Extracted fields are pointers: nil means the reconstructor could
// not determine the value. Money columns are integer cents.
type Receipt struct {
	ID          uuid.UUID     `db:"id"`
	ProfileID   uuid.UUID     `db:"profile_id"`
	FileName    string        `db:"file_name"`
	FileSize    int64         `db:"file_size"`
	FileURL     string        `db:"file_url"`
	OCRText     string        `db:"ocr_text"`
	Status      ReceiptStatus `db:"status"`
	Vendor      *string       `db:"vendor"`
	ReceiptDate *string       `db:"receipt_date"` // YYYY-MM-DD
	TotalCents  *int64        `db:"total_cents"`
	TaxCents    *int64        `db:"tax_cents"`
	TaxType     *string       `db:"tax_type"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

// ReceiptItem is one validated line item of a parsed receipt. Position
// preserves the order the items appeared on the receipt.
type ReceiptItem struct {
	ID             uuid.UUID `db:"id"`
	ReceiptID      uuid.UUID `db:"receipt_id"`
	Position       int       `db:"position"`
	Description    string    `db:"description"`
	Quantity       int       `db:"quantity"`
	UnitPriceCents int64     `db:"unit_price_cents"`
	TotalCents     int64     `db:"total_cents"`
	CreatedAt      time.Time `db:"created_at"`
}
