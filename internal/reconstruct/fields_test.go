package reconstruct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVendor(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
		none  bool
	}{
		{name: "first line wins", lines: []string{"Tim Hortons", "123 Main St"}, want: "Tim Hortons"},
		{name: "short lines skipped", lines: []string{"ab", "x", "Loblaws"}, want: "Loblaws"},
		{name: "no usable line", lines: []string{"ab", "x"}, none: true},
		{name: "empty", lines: nil, none: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractVendor(tt.lines)
			if tt.none {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		dayFirst bool
		want     string
		none     bool
	}{
		{name: "month first slash", lines: []string{"02/13/2026"}, want: "2026-02-13"},
		{name: "month first dash", lines: []string{"02-13-2026"}, want: "2026-02-13"},
		{name: "year first", lines: []string{"2026/2/3"}, want: "2026-02-03"},
		{name: "two digit year gets current century", lines: []string{"12-31-24"}, want: "2024-12-31"},
		{name: "embedded in line", lines: []string{"Date: 02/13/2026 10:45"}, want: "2026-02-13"},
		{name: "first match wins", lines: []string{"01/02/2026", "03/04/2026"}, want: "2026-01-02"},
		{name: "impossible month skipped", lines: []string{"13/02/2026"}, none: true},
		{name: "day first option", lines: []string{"13/02/2026"}, dayFirst: true, want: "2026-02-13"},
		{name: "no date", lines: []string{"Tim Hortons", "Coffee $2.50"}, none: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.dayFirst {
				opts = append(opts, WithDayFirstDates())
			}
			r := newTestReconstructor(opts...)
			got := r.extractDate(tt.lines)
			if tt.none {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}
