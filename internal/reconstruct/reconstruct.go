// Package reconstruct turns a raw OCR text blob from a photographed or
// scanned receipt into a structured record: vendor, date, total, tax and a
// validated list of line items. It is a pure computation — no I/O, no shared
// state — so one Reconstructor can serve concurrent callers.
package reconstruct

import (
	"strings"
	"time"
)

// LineItem is a parsed purchase line. All money is in cents.
type LineItem struct {
	Description    string `json:"description"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	TotalCents     int64  `json:"total_cents"`
}

// Receipt is the reconstruction result. Fields the extractors could not
// find are nil; Items is always non-nil but may be empty. An empty Items
// list means "not determinable", not "zero items purchased".
type Receipt struct {
	Vendor     *string    `json:"vendor"`
	Date       *string    `json:"date"` // YYYY-MM-DD
	TotalCents *int64     `json:"total_cents"`
	TaxCents   *int64     `json:"tax_cents"`
	TaxType    *string    `json:"tax_type"` // HST, GST, PST or QST
	Items      []LineItem `json:"items"`
}

// Reconstructor holds parsing options. The zero value is not usable; call New.
type Reconstructor struct {
	dayFirst bool
	now      func() time.Time
}

// Option configures a Reconstructor.
type Option func(*Reconstructor)

// WithDayFirstDates parses ambiguous slash dates as DD/MM instead of the
// default North American MM/DD convention.
func WithDayFirstDates() Option {
	return func(r *Reconstructor) { r.dayFirst = true }
}

// New creates a Reconstructor.
func New(opts ...Option) *Reconstructor {
	r := &Reconstructor{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconstruct parses raw OCR text into a structured receipt. It never fails:
// fields that cannot be extracted are nil and the line-item list is empty.
func (r *Reconstructor) Reconstruct(rawText string) Receipt {
	lines := segmentLines(rawText)

	// Extractors run in a fixed order because the item stage needs the
	// expected subtotal (total - tax) for validation.
	rec := Receipt{
		Vendor: extractVendor(lines),
		Date:   r.extractDate(lines),
	}
	rec.TotalCents = extractTotal(lines)
	rec.TaxCents, rec.TaxType = extractTax(lines)

	items := parseItems(lines)
	if rec.TotalCents != nil && rec.TaxCents != nil && len(items) > 0 {
		expected := *rec.TotalCents - *rec.TaxCents
		if expected > 0 {
			items, _ = filterBySubtotal(items, expected)
		}
	}
	if items == nil {
		items = []LineItem{}
	}
	rec.Items = items
	return rec
}

// segmentLines splits raw text into trimmed, non-empty lines, preserving
// order. Adjacency matters: the multi-line item matchers rely on it.
func segmentLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
