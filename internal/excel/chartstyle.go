package excel

import (
	"strconv"
	"strings"
)

// Named chart styles resolving to the Excel built-in style numbers 1-48.
var chartStyleNames = map[string]int{
	// Light styles
	"light-1": 1, "light-2": 2, "light-3": 3, "light-4": 4, "light-5": 5, "light-6": 6,
	"office-1": 1, "office-2": 2, "office-3": 3, "office-4": 4, "office-5": 5, "office-6": 6,
	"white": 1, "minimal": 2, "soft": 3, "gradient": 4, "muted": 5, "outlined": 6,

	// Dark styles
	"dark-1": 7, "dark-2": 8, "dark-3": 9, "dark-4": 10, "dark-5": 11, "dark-6": 12,
	"dark-blue": 7, "dark-gray": 8, "dark-green": 9, "dark-red": 10, "dark-purple": 11, "dark-orange": 12,
	"navy": 7, "charcoal": 8, "forest": 9, "burgundy": 10, "indigo": 11, "rust": 12,

	// Colorful styles
	"colorful-1": 13, "colorful-2": 14, "colorful-3": 15, "colorful-4": 16,
	"colorful-5": 17, "colorful-6": 18, "colorful-7": 19, "colorful-8": 20,
	"bright": 13, "vivid": 14, "rainbow": 15, "multi": 16, "contrast": 17, "vibrant": 18,

	// Office themes
	"ion-1": 21, "ion-2": 22, "ion-3": 23, "ion-4": 24,
	"wisp-1": 25, "wisp-2": 26, "wisp-3": 27, "wisp-4": 28,
	"aspect-1": 29, "aspect-2": 30, "aspect-3": 31, "aspect-4": 32,
	"badge-1": 33, "badge-2": 34, "badge-3": 35, "badge-4": 36,
	"gallery-1": 37, "gallery-2": 38, "gallery-3": 39, "gallery-4": 40,
	"median-1": 41, "median-2": 42, "median-3": 43, "median-4": 44,

	// Aliases for specific chart types
	"column-default": 1, "column-dark": 7, "column-colorful": 13,
	"bar-default": 1, "bar-dark": 7, "bar-colorful": 13,
	"line-default": 1, "line-dark": 7, "line-markers": 3, "line-dash": 5,
	"pie-default": 1, "pie-dark": 7, "pie-explosion": 4, "pie-3d": 10,
	"area-default": 1, "area-dark": 7, "area-transparent": 5, "area-stacked": 9,
	"scatter-default": 1, "scatter-dark": 7, "scatter-bubble": 4, "scatter-smooth": 9,
}

// Recommended color palette per style number. Styles without an entry
// fall back to the default palette.
var styleToPalette = map[int]string{
	1: "office", 2: "office", 3: "colorful", 4: "colorful", 5: "pastel", 6: "pastel",
	7: "dark-blue", 8: "dark-gray", 9: "dark-green", 10: "dark-red", 11: "dark-purple", 12: "dark-orange",
	13: "colorful", 14: "colorful", 15: "colorful", 16: "colorful",
	17: "colorful", 18: "colorful", 19: "colorful", 20: "colorful",
}

var chartColorSchemes = map[string][]string{
	"default":     {"4472C4", "ED7D31", "A5A5A5", "FFC000", "5B9BD5", "70AD47", "8549BA", "C55A11"},
	"colorful":    {"5B9BD5", "ED7D31", "A5A5A5", "FFC000", "4472C4", "70AD47", "264478", "9E480E"},
	"pastel":      {"9DC3E6", "FFD966", "C5E0B3", "F4B183", "B4A7D6", "8FBCDB", "D89595", "B7B7B7"},
	"dark-blue":   {"2F5597", "1F3864", "4472C4", "5B9BD5", "8FAADC", "2E75B5", "255E91", "1C4587"},
	"dark-red":    {"952213", "C0504D", "FF8B6B", "EA6B66", "DA3903", "FF4500", "B22222", "8B0000"},
	"dark-green":  {"1E6C41", "375623", "548235", "70AD47", "9BC169", "006400", "228B22", "3CB371"},
	"dark-purple": {"5C3292", "7030A0", "8064A2", "9A7FBA", "B3A2C7", "800080", "9400D3", "8B008B"},
	"dark-orange": {"C55A11", "ED7D31", "F4B183", "FFC000", "FFD966", "FF8C00", "FF7F50", "FF4500"},
}

// ParseChartStyle resolves a chart style given as a number ("7"),
// the "styleN" form ("style7", "Style 7") or a descriptive name
// ("dark-blue"). The second return value reports whether the style
// could be resolved to a valid number between 1 and 48.
func ParseChartStyle(style string) (int, bool) {
	style = strings.TrimSpace(style)
	if style == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(style); err == nil {
		if n >= 1 && n <= 48 {
			return n, true
		}
		return 0, false
	}
	lower := strings.ToLower(style)
	if strings.HasPrefix(lower, "style") {
		digits := strings.Builder{}
		for _, c := range lower[5:] {
			if c >= '0' && c <= '9' {
				digits.WriteRune(c)
			}
		}
		if digits.Len() > 0 {
			if n, err := strconv.Atoi(digits.String()); err == nil && n >= 1 && n <= 48 {
				return n, true
			}
		}
	}
	if n, ok := chartStyleNames[lower]; ok {
		return n, true
	}
	return 0, false
}

// StylePalette returns the series colors recommended for the given
// style number. The colors are RRGGBB hex strings without a leading #.
func StylePalette(style int) []string {
	name, ok := styleToPalette[style]
	if !ok {
		name = "default"
	}
	colors, ok := chartColorSchemes[name]
	if !ok {
		colors = chartColorSchemes["default"]
	}
	return colors
}
