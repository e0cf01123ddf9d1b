package excel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidReference is reported when a cell or range reference
	// cannot be parsed.
	ErrInvalidReference = errors.New("invalid cell reference")
	// ErrInvalidAddress is reported when numeric coordinates cannot be
	// rendered as a cell reference.
	ErrInvalidAddress = errors.New("invalid cell address")
)

// ParseCellRef converts an A1-style cell reference to zero-based
// (row, col) coordinates.
//
// Extraction is deliberately permissive: all ASCII letters form the column
// token and all digits form the row token, in whatever order they appear.
// Anything else ('$' anchors in particular) is ignored, so "$B$5", "b5" and
// "5B" all parse the same way.
func ParseCellRef(ref string) (row, col int, err error) {
	if ref == "" {
		return 0, 0, fmt.Errorf("%w: empty reference", ErrInvalidReference)
	}
	var colToken, rowToken strings.Builder
	for _, c := range ref {
		switch {
		case c >= 'A' && c <= 'Z':
			colToken.WriteRune(c)
		case c >= 'a' && c <= 'z':
			colToken.WriteRune(c - 'a' + 'A')
		case c >= '0' && c <= '9':
			rowToken.WriteRune(c)
		}
	}
	if colToken.Len() == 0 || rowToken.Len() == 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	col = 0
	for _, c := range colToken.String() {
		col = col*26 + int(c-'A') + 1
	}
	rowNum, err := strconv.Atoi(rowToken.String())
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %v", ErrInvalidReference, ref, err)
	}
	return rowNum - 1, col - 1, nil
}

// ParseRangeRef converts an A1-style range reference to zero-based corner
// coordinates. A single cell reference yields a degenerate range whose
// corners are equal. A leading "Sheet!" qualifier is stripped and
// discarded. Corner order is preserved as given; "B5:A1" is not reordered.
func ParseRangeRef(ref string) (startRow, startCol, endRow, endCol int, err error) {
	if ref == "" {
		return 0, 0, 0, 0, fmt.Errorf("%w: empty range", ErrInvalidReference)
	}
	if strings.Contains(ref, "!") {
		parts := strings.Split(ref, "!")
		if len(parts) != 2 {
			return 0, 0, 0, 0, fmt.Errorf("%w: malformed sheet qualifier in %q", ErrInvalidReference, ref)
		}
		ref = parts[1]
	}
	if sep := strings.Index(ref, ":"); sep >= 0 {
		startRow, startCol, err = ParseCellRef(ref[:sep])
		if err != nil {
			return 0, 0, 0, 0, err
		}
		endRow, endCol, err = ParseCellRef(ref[sep+1:])
		if err != nil {
			return 0, 0, 0, 0, err
		}
		return startRow, startCol, endRow, endCol, nil
	}
	startRow, startCol, err = ParseCellRef(ref)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return startRow, startCol, startRow, startCol, nil
}

// FormatCellRef renders zero-based (row, col) coordinates as an A1-style
// reference. Column letters are bijective base-26: there is no zero digit,
// so 25 -> "Z", 26 -> "AA" and 702 -> "AAA".
func FormatCellRef(row, col int) (string, error) {
	if row < 0 || col < 0 {
		return "", fmt.Errorf("%w: row=%d, col=%d", ErrInvalidAddress, row, col)
	}
	var letters []byte
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		letters = append([]byte{byte('A' + (n-1)%26)}, letters...)
	}
	return string(letters) + strconv.Itoa(row+1), nil
}

// FormatRangeRef renders zero-based corner coordinates as an A1-style
// range reference. Corners are rendered in the order given.
func FormatRangeRef(startRow, startCol, endRow, endCol int) (string, error) {
	start, err := FormatCellRef(startRow, startCol)
	if err != nil {
		return "", err
	}
	end, err := FormatCellRef(endRow, endCol)
	if err != nil {
		return "", err
	}
	return start + ":" + end, nil
}

// ParseRange parses a range reference into the 1-based
// (startCol, startRow, endCol, endRow) coordinates excelize works with.
func ParseRange(rangeStr string) (int, int, int, int, error) {
	startRow, startCol, endRow, endCol, err := ParseRangeRef(rangeStr)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return startCol + 1, startRow + 1, endCol + 1, endRow + 1, nil
}

// NormalizeRange reduces a range reference to plain "A1:B2" form, dropping
// sheet qualifiers and '$' anchors.
func NormalizeRange(rangeStr string) string {
	startRow, startCol, endRow, endCol, err := ParseRangeRef(rangeStr)
	if err != nil {
		return rangeStr
	}
	normalized, err := FormatRangeRef(startRow, startCol, endRow, endCol)
	if err != nil {
		return rangeStr
	}
	return normalized
}
