package reconstruct

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// amtPat matches a currency amount with optional dollar sign and thousands
// separators, capturing the numeric part.
const amtPat = `\$?\s*(\d{1,3}(?:,\d{3})*\.\d{2}|\d+\.\d{2})`

// Generic description+price fallback bounds, in cents. Guards against
// matching phone numbers or line noise as a price.
const (
	minFallbackPriceCents = 50     // $0.50
	maxFallbackPriceCents = 100000 // $1,000.00
)

// maxItemTotalCents bounds every accepted candidate's line total.
const maxItemTotalCents = 1_000_000 // $10,000

var (
	// Single-line patterns, tried in order; first match per line wins.
	reQtyFirst     = regexp.MustCompile(`^(\d{1,3})\s*[@xX×]\s*(.+?)\s+` + amtPat + `\s*=?\s*` + amtPat + `$`)
	reDescQty      = regexp.MustCompile(`^(.+?)\s+(\d{1,3})\s*[@xX×]\s*` + amtPat + `\s*=?\s*` + amtPat + `$`)
	reDescPrice    = regexp.MustCompile(`^(.{3,60}?)\s+` + amtPat + `$`)
	reQtyDescTotal = regexp.MustCompile(`^(\d{1,2})\s+(.{3,60}?)\s+` + amtPat + `$`)

	// Continuation-line patterns for the multi-line matchers.
	reQtyAtPrice = regexp.MustCompile(`^(\d{1,3})\s*[@xX×]\s*` + amtPat + `$`)
	reQtySpPrice = regexp.MustCompile(`^(\d{1,3})\s+` + amtPat + `$`)
	reBareQty    = regexp.MustCompile(`^(\d{1,2})$`)

	letterRun        = regexp.MustCompile(`[A-Za-z]{2}`)
	metadataPrefixRe = regexp.MustCompile(`(?i)^(` + strings.Join(metadataPrefixes, "|") + `)\b`)
)

// lineMatcher tries to parse one line as an item candidate.
type lineMatcher func(line string) (LineItem, bool)

var singleLineMatchers = []lineMatcher{
	matchQtyFirst,
	matchDescQty,
	matchDescPrice,
	matchQtyDescTotal,
}

// parseItems scans lines for purchase candidates. Lines caught by the skip
// filter are ignored; single-line patterns are tried first, then a
// multi-line window over the next one or two lines. Lines consumed by a
// multi-line match are not re-scanned.
func parseItems(lines []string) []LineItem {
	var items []LineItem
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if shouldSkip(line) {
			continue
		}
		if item, ok := matchSingleLine(line); ok {
			if acceptCandidate(item) {
				items = append(items, item)
			}
			continue
		}
		if item, consumed, ok := matchMultiLine(lines, i); ok && acceptCandidate(item) {
			items = append(items, item)
			i += consumed
		}
	}
	return items
}

// shouldSkip discards lines that cannot be purchases before pattern
// matching: too short, OCR garbage symbols, or boilerplate keywords.
func shouldSkip(line string) bool {
	if utf8.RuneCountInString(line) < 3 {
		return true
	}
	if strings.ContainsAny(line, skipSymbols) {
		return true
	}
	lower := strings.ToLower(line)
	for _, kw := range skipKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func matchSingleLine(line string) (LineItem, bool) {
	for _, match := range singleLineMatchers {
		if item, ok := match(line); ok {
			return item, true
		}
	}
	return LineItem{}, false
}

// matchQtyFirst parses "2 x Muffin $1.50 $3.00" (quantity-prefixed with
// explicit unit price and total).
func matchQtyFirst(line string) (LineItem, bool) {
	m := reQtyFirst.FindStringSubmatch(line)
	if m == nil {
		return LineItem{}, false
	}
	return buildItem(m[2], m[1], m[3], m[4])
}

// matchDescQty parses "Coffee 1 @ $2.50 $2.50" (description-prefixed
// variant of matchQtyFirst).
func matchDescQty(line string) (LineItem, bool) {
	m := reDescQty.FindStringSubmatch(line)
	if m == nil {
		return LineItem{}, false
	}
	return buildItem(m[1], m[2], m[3], m[4])
}

// matchDescPrice parses the generic "description $price" fallback with
// quantity 1. The description must contain a run of letters (which also
// rules out purely numeric matches) and the price must sit inside narrow
// bounds, since this pattern would otherwise match anything.
func matchDescPrice(line string) (LineItem, bool) {
	m := reDescPrice.FindStringSubmatch(line)
	if m == nil {
		return LineItem{}, false
	}
	desc := strings.TrimSpace(m[1])
	if !letterRun.MatchString(desc) {
		return LineItem{}, false
	}
	cents, ok := parseCents(m[2])
	if !ok || cents < minFallbackPriceCents || cents > maxFallbackPriceCents {
		return LineItem{}, false
	}
	return LineItem{Description: desc, Quantity: 1, UnitPriceCents: cents, TotalCents: cents}, true
}

// matchQtyDescTotal parses "2 Bagels 4.00" (quantity-prefixed without an
// explicit unit price). The unit price is back-computed from the total.
func matchQtyDescTotal(line string) (LineItem, bool) {
	m := reQtyDescTotal.FindStringSubmatch(line)
	if m == nil {
		return LineItem{}, false
	}
	qty, err := strconv.Atoi(m[1])
	if err != nil || qty < 1 {
		return LineItem{}, false
	}
	total, ok := parseCents(m[3])
	if !ok {
		return LineItem{}, false
	}
	return LineItem{
		Description:    strings.TrimSpace(m[2]),
		Quantity:       qty,
		UnitPriceCents: int64(math.Round(float64(total) / float64(qty))),
		TotalCents:     total,
	}, true
}

// matchMultiLine stitches an item from the line at index i plus the next
// one or two lines. Returns how many extra lines the match consumed.
//
// Windows tried, in order:
//
//	description / "2 x $3.00"  — quantity and unit price on the next line
//	description / "$4.99"      — bare price, quantity 1, metadata-guarded
//	description / "2" / "6.00" — quantity line then total line
//	description / "2 $3.00"    — like the first window without a separator
func matchMultiLine(lines []string, i int) (LineItem, int, bool) {
	desc := strings.TrimSpace(lines[i])
	if !letterRun.MatchString(desc) {
		return LineItem{}, 0, false
	}
	if i+1 >= len(lines) {
		return LineItem{}, 0, false
	}
	next := lines[i+1]

	if m := reQtyAtPrice.FindStringSubmatch(next); m != nil {
		if item, ok := buildItemFromUnit(desc, m[1], m[2]); ok {
			return item, 1, true
		}
	}

	if m := currencyLine.FindStringSubmatch(next); m != nil {
		// A metadata line followed by a stray amount is not a purchase.
		if metadataPrefixRe.MatchString(desc) {
			return LineItem{}, 0, false
		}
		if cents, ok := parseCents(m[1]); ok {
			return LineItem{Description: desc, Quantity: 1, UnitPriceCents: cents, TotalCents: cents}, 1, true
		}
	}

	if m := reBareQty.FindStringSubmatch(next); m != nil && i+2 < len(lines) {
		if am := currencyLine.FindStringSubmatch(lines[i+2]); am != nil {
			qty, err := strconv.Atoi(m[1])
			total, ok := parseCents(am[1])
			if err == nil && qty >= 1 && ok {
				return LineItem{
					Description:    desc,
					Quantity:       qty,
					UnitPriceCents: int64(math.Round(float64(total) / float64(qty))),
					TotalCents:     total,
				}, 2, true
			}
		}
	}

	if m := reQtySpPrice.FindStringSubmatch(next); m != nil {
		if item, ok := buildItemFromUnit(desc, m[1], m[2]); ok {
			return item, 1, true
		}
	}

	return LineItem{}, 0, false
}

// buildItem assembles a candidate from matched description, quantity, unit
// price and total groups. Each matcher's own arithmetic is the source of
// truth for its candidates.
func buildItem(desc, qtyStr, unitStr, totalStr string) (LineItem, bool) {
	qty, err := strconv.Atoi(qtyStr)
	if err != nil || qty < 1 {
		return LineItem{}, false
	}
	unit, ok := parseCents(unitStr)
	if !ok {
		return LineItem{}, false
	}
	total, ok := parseCents(totalStr)
	if !ok {
		return LineItem{}, false
	}
	return LineItem{
		Description:    strings.TrimSpace(desc),
		Quantity:       qty,
		UnitPriceCents: unit,
		TotalCents:     total,
	}, true
}

// buildItemFromUnit assembles a candidate from a quantity and unit price,
// computing the total.
func buildItemFromUnit(desc, qtyStr, unitStr string) (LineItem, bool) {
	qty, err := strconv.Atoi(qtyStr)
	if err != nil || qty < 1 {
		return LineItem{}, false
	}
	unit, ok := parseCents(unitStr)
	if !ok {
		return LineItem{}, false
	}
	return LineItem{
		Description:    strings.TrimSpace(desc),
		Quantity:       qty,
		UnitPriceCents: unit,
		TotalCents:     unit * int64(qty),
	}, true
}

// acceptCandidate applies the checks every candidate must pass regardless
// of which matcher produced it.
func acceptCandidate(item LineItem) bool {
	if utf8.RuneCountInString(item.Description) < 3 {
		return false
	}
	if item.TotalCents <= 0 || item.TotalCents >= maxItemTotalCents {
		return false
	}
	return item.Quantity > 0 && item.UnitPriceCents > 0
}
