package reconstruct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"2.50", 250, true},
		{"1,234.56", 123456, true},
		{"0.01", 1, true},
		{"12", 1200, true},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseCents(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestExtractTotal(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  int64
		none  bool
	}{
		{name: "label on own line", lines: []string{"TOTAL", "$2.50"}, want: 250},
		{name: "order total label", lines: []string{"Order Total", "1,234.56"}, want: 123456},
		{name: "label case insensitive", lines: []string{"total", "10.00"}, want: 1000},
		{name: "inline fallback", lines: []string{"Total: $12.34"}, want: 1234},
		{name: "inline without colon", lines: []string{"TOTAL $99.99"}, want: 9999},
		{name: "own line wins over inline", lines: []string{"Total: $5.00", "TOTAL", "$7.00"}, want: 700},
		{name: "absurd amount rejected", lines: []string{"TOTAL", "$150000.00"}, none: true},
		{name: "zero rejected", lines: []string{"TOTAL", "0.00"}, none: true},
		{name: "label without amount line", lines: []string{"TOTAL", "thank you"}, none: true},
		{name: "no total", lines: []string{"Coffee $2.50"}, none: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractTotal(tt.lines)
			if tt.none {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestExtractTax(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		want     int64
		wantType string
		none     bool
	}{
		{name: "label on own line defaults to HST", lines: []string{"Tax", "1.30"}, want: 130, wantType: "HST"},
		{name: "inline hst", lines: []string{"HST: 1.30"}, want: 130, wantType: "HST"},
		{name: "inline gst", lines: []string{"GST 0.25"}, want: 25, wantType: "GST"},
		{name: "inline qst keeps label", lines: []string{"QST: 2.00"}, want: 200, wantType: "QST"},
		{name: "inline generic tax", lines: []string{"Tax: 0.65"}, want: 65, wantType: "HST"},
		{name: "rate then amount", lines: []string{"13.000% HST", "1.30"}, want: 130, wantType: "HST"},
		{name: "rate then amount pst", lines: []string{"7% PST", "0.70"}, want: 70, wantType: "PST"},
		{name: "own line wins over inline", lines: []string{"GST: 0.50", "Tax", "1.30"}, want: 130, wantType: "HST"},
		{name: "zero rejected", lines: []string{"Tax", "0.00"}, none: true},
		{name: "oversized amount not matched", lines: []string{"Tax", "10000.00"}, none: true},
		{name: "no tax", lines: []string{"TOTAL", "$2.50"}, none: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cents, taxType := extractTax(tt.lines)
			if tt.none {
				assert.Nil(t, cents)
				assert.Nil(t, taxType)
				return
			}
			require.NotNil(t, cents)
			assert.Equal(t, tt.want, *cents)
			require.NotNil(t, taxType)
			assert.Equal(t, tt.wantType, *taxType)
		})
	}
}
