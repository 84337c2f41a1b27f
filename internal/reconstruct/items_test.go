package reconstruct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldSkip(t *testing.T) {
	skipped := []string{
		"ab",
		"SUBTOTAL 8.70",
		"TOTAL",
		"HST 13%",
		"VISA ************1234",
		"CHANGE DUE 0.00",
		"Cashier: 042",
		"AUTH CODE 123456",
		"Thank you for shopping!",
		"noise <garbage> line",
		"pipe | artifact",
	}
	for _, line := range skipped {
		assert.True(t, shouldSkip(line), line)
	}

	kept := []string{
		"Coffee 1 @ $2.50 $2.50",
		"Blueberry Muffin",
		"2 x Bagel $1.00 $2.00",
	}
	for _, line := range kept {
		assert.False(t, shouldSkip(line), line)
	}
}

func TestSingleLineMatchers(t *testing.T) {
	tests := []struct {
		name string
		line string
		want LineItem
		none bool
	}{
		{
			name: "qty first with unit and total",
			line: "2 x Muffin $1.50 $3.00",
			want: LineItem{Description: "Muffin", Quantity: 2, UnitPriceCents: 150, TotalCents: 300},
		},
		{
			name: "qty first with at sign and equals",
			line: "3 @ Bagel $1.00 = $3.00",
			want: LineItem{Description: "Bagel", Quantity: 3, UnitPriceCents: 100, TotalCents: 300},
		},
		{
			name: "description first",
			line: "Coffee 1 @ $2.50 $2.50",
			want: LineItem{Description: "Coffee", Quantity: 1, UnitPriceCents: 250, TotalCents: 250},
		},
		{
			name: "generic description and price",
			line: "Club Sandwich $12.99",
			want: LineItem{Description: "Club Sandwich", Quantity: 1, UnitPriceCents: 1299, TotalCents: 1299},
		},
		{
			name: "generic leaves quantity prefix in description",
			line: "2 Bagels 4.00",
			want: LineItem{Description: "2 Bagels", Quantity: 1, UnitPriceCents: 400, TotalCents: 400},
		},
		{
			name: "qty desc total when price above generic bounds",
			line: "2 Widgets 1200.00",
			want: LineItem{Description: "Widgets", Quantity: 2, UnitPriceCents: 60000, TotalCents: 120000},
		},
		{name: "generic price too small", line: "Gum 0.25", none: true},
		{name: "generic price too large", line: "Sofa 1500.00", none: true},
		{name: "no letters in description", line: "12345 6.78", none: true},
		{name: "plain text", line: "Blueberry Muffin", none: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := matchSingleLine(tt.line)
			if tt.none {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMultiLineMatchers(t *testing.T) {
	tests := []struct {
		name         string
		lines        []string
		want         LineItem
		wantConsumed int
		none         bool
	}{
		{
			name:         "description then qty at price",
			lines:        []string{"Notebook", "2 x $3.00"},
			want:         LineItem{Description: "Notebook", Quantity: 2, UnitPriceCents: 300, TotalCents: 600},
			wantConsumed: 1,
		},
		{
			name:         "description then bare price",
			lines:        []string{"Blueberry Muffin", "$4.99"},
			want:         LineItem{Description: "Blueberry Muffin", Quantity: 1, UnitPriceCents: 499, TotalCents: 499},
			wantConsumed: 1,
		},
		{
			name:         "three line window",
			lines:        []string{"Organic Apples", "3", "6.00"},
			want:         LineItem{Description: "Organic Apples", Quantity: 3, UnitPriceCents: 200, TotalCents: 600},
			wantConsumed: 2,
		},
		{
			name:         "qty price without separator",
			lines:        []string{"Muffins", "3 4.50"},
			want:         LineItem{Description: "Muffins", Quantity: 3, UnitPriceCents: 450, TotalCents: 1350},
			wantConsumed: 1,
		},
		{name: "metadata line before bare price", lines: []string{"Date: 01/02/2026", "$4.99"}, none: true},
		{name: "store prefix guarded", lines: []string{"Store 1042", "$4.99"}, none: true},
		{name: "no letters in description", lines: []string{"01/02/2026", "$4.99"}, none: true},
		{name: "no continuation", lines: []string{"Blueberry Muffin"}, none: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, consumed, ok := matchMultiLine(tt.lines, 0)
			if tt.none {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantConsumed, consumed)
		})
	}
}

func TestParseItemsSkipsBoilerplateAndConsumesWindows(t *testing.T) {
	lines := []string{
		"Loblaws",
		"Bananas $1.50",
		"Notebook",
		"2 x $3.00",
		"SUBTOTAL 7.50",
		"HST 0.98",
		"TOTAL",
		"$8.48",
		"VISA ************1234",
	}

	items := parseItems(lines)

	require.Len(t, items, 2)
	assert.Equal(t, "Bananas", items[0].Description)
	assert.Equal(t, int64(150), items[0].TotalCents)
	assert.Equal(t, "Notebook", items[1].Description)
	assert.Equal(t, int64(600), items[1].TotalCents)
}
