package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseChartStyle(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"7", 7, true},
		{"48", 48, true},
		{"0", 0, false},
		{"49", 0, false},
		{"style7", 7, true},
		{"Style 13", 13, true},
		{"dark-blue", 7, true},
		{"DARK-BLUE", 7, true},
		{"colorful-1", 13, true},
		{"median-4", 44, true},
		{"pie-3d", 10, true},
		{"nonsense", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseChartStyle(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStylePalette(t *testing.T) {
	assert.Equal(t, chartColorSchemes["dark-blue"], StylePalette(7))
	// style 1 maps to the office palette which has no color scheme, so
	// the default scheme is used
	assert.Equal(t, chartColorSchemes["default"], StylePalette(1))
	// out of range styles also fall back to the default scheme
	assert.Equal(t, chartColorSchemes["default"], StylePalette(45))
	assert.Len(t, StylePalette(13), 8)
}
