package reconstruct

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Sanity bounds against OCR noise producing absurd values, in cents.
const (
	maxTotalCents = 10_000_000 // $100,000
	maxTaxCents   = 1_000_000  // $10,000
)

var (
	totalLabelLine = regexp.MustCompile(`(?i)^(?:total|order total)$`)
	currencyLine   = regexp.MustCompile(`^\$?\s*(\d{1,3}(?:,\d{3})*\.\d{2}|\d+\.\d{2})$`)
	totalInline    = regexp.MustCompile(`(?i)\b(?:order total|total)\b[:\s]*\$?\s*(\d{1,3}(?:,\d{3})*\.\d{2}|\d+\.\d{2})`)

	taxLabelLine  = regexp.MustCompile(`(?i)^tax$`)
	taxAmountLine = regexp.MustCompile(`^\$?\s*(\d{1,4}\.\d{2})$`)
	taxInline     = regexp.MustCompile(`(?i)\b(hst|gst|pst|qst|tax)\b[:\s]*\$?\s*(\d{1,4}\.\d{2})`)
	taxRateLine   = regexp.MustCompile(`(?i)\d{1,3}(?:\.\d+)?\s*%\s*(hst|gst|pst|qst)\b`)
)

// parseCents parses a decimal currency string into cents, stripping
// thousands separators. Integer cents avoid floating-point drift in the
// subtotal sums downstream.
func parseCents(s string) (int64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int64(math.Round(f * 100)), true
}

// extractTotal finds the receipt total in cents.
//
// Pass 1 looks for a label-on-its-own-line layout (a line that is exactly
// TOTAL or Order Total followed by an amount line). Pass 2 falls back to an
// inline "Total: $12.34" match. First hit within bounds wins.
func extractTotal(lines []string) *int64 {
	for i, line := range lines {
		if !totalLabelLine.MatchString(line) || i+1 >= len(lines) {
			continue
		}
		if m := currencyLine.FindStringSubmatch(lines[i+1]); m != nil {
			if cents, ok := parseCents(m[1]); ok && cents > 0 && cents < maxTotalCents {
				return &cents
			}
		}
	}
	for _, line := range lines {
		if m := totalInline.FindStringSubmatch(line); m != nil {
			if cents, ok := parseCents(m[1]); ok && cents > 0 && cents < maxTotalCents {
				return &cents
			}
		}
	}
	return nil
}

// extractTax finds the tax amount in cents plus the regional label that
// matched (HST, GST, PST or QST). Canadian receipts vary widely in layout,
// so three passes run in order, each only if the previous found nothing:
//
//  1. a line that is exactly "Tax" followed by an amount line
//  2. an inline labelled amount ("HST: 1.30", "Tax 0.65")
//  3. a rate line ("13.000% HST") followed by a bare amount line
//
// The two-line "Tax" form carries no regional label and defaults to HST.
func extractTax(lines []string) (*int64, *string) {
	for i, line := range lines {
		if !taxLabelLine.MatchString(line) || i+1 >= len(lines) {
			continue
		}
		if m := taxAmountLine.FindStringSubmatch(lines[i+1]); m != nil {
			if cents, ok := parseCents(m[1]); ok && cents > 0 && cents < maxTaxCents {
				return &cents, taxType("tax")
			}
		}
	}
	for _, line := range lines {
		if m := taxInline.FindStringSubmatch(line); m != nil {
			if cents, ok := parseCents(m[2]); ok && cents > 0 && cents < maxTaxCents {
				return &cents, taxType(m[1])
			}
		}
	}
	for i, line := range lines {
		m := taxRateLine.FindStringSubmatch(line)
		if m == nil || i+1 >= len(lines) {
			continue
		}
		if am := taxAmountLine.FindStringSubmatch(lines[i+1]); am != nil {
			if cents, ok := parseCents(am[1]); ok && cents > 0 && cents < maxTaxCents {
				return &cents, taxType(m[1])
			}
		}
	}
	return nil, nil
}

func taxType(label string) *string {
	t := strings.ToUpper(label)
	if t == "TAX" {
		t = "HST"
	}
	return &t
}
