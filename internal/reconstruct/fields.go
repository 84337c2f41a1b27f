package reconstruct

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"
)

var (
	// Year first: 2026-02-13, 2026/2/3.
	dateYearFirst = regexp.MustCompile(`(\d{4})[-/](\d{1,2})[-/](\d{1,2})`)
	// Month (or day) first: 02/13/2026, 2-13-26.
	dateMonthFirst = regexp.MustCompile(`(\d{1,2})[-/](\d{1,2})[-/](\d{2,4})`)
)

// extractVendor takes the first non-trivial line as the vendor name.
// Receipts conventionally print the business name first; this is a
// best-effort heuristic, not a hard contract.
func extractVendor(lines []string) *string {
	for _, line := range lines {
		if utf8.RuneCountInString(line) > 2 {
			v := line
			return &v
		}
	}
	return nil
}

// extractDate returns the first plausible date on the receipt as YYYY-MM-DD.
// Slash/dash dates without a leading 4-digit year are read as MM/DD (or
// DD/MM with WithDayFirstDates). Two-digit years get the current century.
func (r *Reconstructor) extractDate(lines []string) *string {
	for _, line := range lines {
		if m := dateYearFirst.FindStringSubmatch(line); m != nil {
			if d, ok := r.normalizeDate(m[1], m[2], m[3]); ok {
				return &d
			}
		}
		if m := dateMonthFirst.FindStringSubmatch(line); m != nil {
			month, day := m[1], m[2]
			if r.dayFirst {
				month, day = day, month
			}
			if d, ok := r.normalizeDate(m[3], month, day); ok {
				return &d
			}
		}
	}
	return nil
}

// normalizeDate validates the matched components and renders YYYY-MM-DD.
// An impossible month or day means the match doesn't apply, not an error.
func (r *Reconstructor) normalizeDate(yearStr, monthStr, dayStr string) (string, bool) {
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return "", false
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return "", false
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return "", false
	}
	if len(yearStr) == 2 {
		year = (r.now().Year()/100)*100 + year
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}
