package reconstruct

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
}

func newTestReconstructor(opts ...Option) *Reconstructor {
	r := New(opts...)
	r.now = fixedNow
	return r
}

func TestReconstructSimpleReceipt(t *testing.T) {
	raw := strings.Join([]string{
		"Tim Hortons",
		"02/13/2026",
		"Coffee 1 @ $2.50 $2.50",
		"TOTAL",
		"$2.50",
	}, "\n")

	rec := newTestReconstructor().Reconstruct(raw)

	require.NotNil(t, rec.Vendor)
	assert.Equal(t, "Tim Hortons", *rec.Vendor)
	require.NotNil(t, rec.Date)
	assert.Equal(t, "2026-02-13", *rec.Date)
	require.NotNil(t, rec.TotalCents)
	assert.Equal(t, int64(250), *rec.TotalCents)
	assert.Nil(t, rec.TaxCents)
	assert.Nil(t, rec.TaxType)

	// No tax means no expected subtotal, so candidates pass unfiltered.
	require.Len(t, rec.Items, 1)
	assert.Equal(t, LineItem{
		Description:    "Coffee",
		Quantity:       1,
		UnitPriceCents: 250,
		TotalCents:     250,
	}, rec.Items[0])
}

func TestReconstructWithTaxAndConsistentItems(t *testing.T) {
	raw := strings.Join([]string{
		"Corner Cafe",
		"2026-01-15",
		"Sandwich 1 @ $5.00 $5.00",
		"Salad 1 @ $3.70 $3.70",
		"Tax",
		"1.30",
		"TOTAL",
		"$10.00",
	}, "\n")

	rec := newTestReconstructor().Reconstruct(raw)

	require.NotNil(t, rec.Vendor)
	assert.Equal(t, "Corner Cafe", *rec.Vendor)
	require.NotNil(t, rec.Date)
	assert.Equal(t, "2026-01-15", *rec.Date)
	require.NotNil(t, rec.TotalCents)
	assert.Equal(t, int64(1000), *rec.TotalCents)
	require.NotNil(t, rec.TaxCents)
	assert.Equal(t, int64(130), *rec.TaxCents)
	require.NotNil(t, rec.TaxType)
	assert.Equal(t, "HST", *rec.TaxType)

	// Items sum to exactly total - tax, so the whole set is kept.
	require.Len(t, rec.Items, 2)
	var sum int64
	for _, item := range rec.Items {
		sum += item.TotalCents
	}
	assert.Equal(t, int64(870), sum)
}

func TestReconstructNoiseOnlyInput(t *testing.T) {
	raw := strings.Join([]string{
		"asdf qwer",
		"zx",
		"!!!",
	}, "\n")

	rec := newTestReconstructor().Reconstruct(raw)

	require.NotNil(t, rec.Vendor)
	assert.Equal(t, "asdf qwer", *rec.Vendor)
	assert.Nil(t, rec.Date)
	assert.Nil(t, rec.TotalCents)
	assert.Nil(t, rec.TaxCents)
	assert.NotNil(t, rec.Items)
	assert.Empty(t, rec.Items)
}

func TestReconstructEmptyInput(t *testing.T) {
	rec := newTestReconstructor().Reconstruct("")

	assert.Nil(t, rec.Vendor)
	assert.Nil(t, rec.Date)
	assert.Nil(t, rec.TotalCents)
	assert.Nil(t, rec.TaxCents)
	assert.NotNil(t, rec.Items)
	assert.Empty(t, rec.Items)
}

func TestReconstructMultiLineItem(t *testing.T) {
	raw := strings.Join([]string{
		"Notebook",
		"2 x $3.00",
	}, "\n")

	rec := newTestReconstructor().Reconstruct(raw)

	// The continuation line must be consumed, not re-scanned as its own
	// candidate.
	require.Len(t, rec.Items, 1)
	assert.Equal(t, LineItem{
		Description:    "Notebook",
		Quantity:       2,
		UnitPriceCents: 300,
		TotalCents:     600,
	}, rec.Items[0])
}

func TestReconstructIsIdempotent(t *testing.T) {
	raw := strings.Join([]string{
		"Shoppers Drug Mart",
		"03/04/2026",
		"Vitamins $12.99",
		"HST: 1.69",
		"Total: $14.68",
	}, "\n")

	r := newTestReconstructor()
	first := r.Reconstruct(raw)
	second := r.Reconstruct(raw)
	assert.Equal(t, first, second)
}

func TestReconstructInconsistentItemsRejected(t *testing.T) {
	// One absurd candidate ($80 pen) that a single removal cannot fix:
	// with it the sum is 8870 against an expected 870; without it the
	// remaining 370 is still 57% off. The whole list must be dropped.
	raw := strings.Join([]string{
		"Corner Cafe",
		"Salad 1 @ $3.70 $3.70",
		"Pen 1 @ $80.00 $80.00",
		"Tax",
		"1.30",
		"TOTAL",
		"$10.00",
	}, "\n")

	rec := newTestReconstructor().Reconstruct(raw)

	require.NotNil(t, rec.TotalCents)
	require.NotNil(t, rec.TaxCents)
	assert.NotNil(t, rec.Items)
	assert.Empty(t, rec.Items)
}

func TestReconstructValidatorConsistencyInvariant(t *testing.T) {
	// Whenever total and tax are known and items survive, the item sum
	// must be within 10% of total - tax.
	inputs := []string{
		strings.Join([]string{
			"Corner Cafe",
			"Sandwich 1 @ $5.00 $5.00",
			"Salad 1 @ $3.70 $3.70",
			"Tax",
			"1.30",
			"TOTAL",
			"$10.00",
		}, "\n"),
		strings.Join([]string{
			"Hardware Plus",
			"Screwdriver $8.00",
			"Tax",
			"1.04",
			"TOTAL",
			"$9.04",
		}, "\n"),
	}

	r := newTestReconstructor()
	for _, raw := range inputs {
		rec := r.Reconstruct(raw)
		if rec.TotalCents == nil || rec.TaxCents == nil || len(rec.Items) == 0 {
			continue
		}
		expected := *rec.TotalCents - *rec.TaxCents
		require.Greater(t, expected, int64(0))
		var sum int64
		for _, item := range rec.Items {
			sum += item.TotalCents
		}
		assert.LessOrEqual(t, deviationPct(sum, expected), 10.0)
	}
}

func TestSegmentLines(t *testing.T) {
	lines := segmentLines("  Tim Hortons  \n\n\tCoffee $2.50\n   \nTOTAL")
	assert.Equal(t, []string{"Tim Hortons", "Coffee $2.50", "TOTAL"}, lines)

	assert.Nil(t, segmentLines(""))
	assert.Nil(t, segmentLines("\n \n\t\n"))
}
