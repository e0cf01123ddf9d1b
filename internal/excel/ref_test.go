package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCellRef(t *testing.T) {
	tests := []struct {
		ref  string
		row  int
		col  int
	}{
		{"A1", 0, 0},
		{"Z1", 0, 25},
		{"AA1", 0, 26},
		{"AB1", 0, 27},
		{"ZZ1", 0, 701},
		{"AAA1", 0, 702},
		{"A100", 99, 0},
		{"B5", 4, 1},
		{"$B$5", 4, 1},
		{"5B", 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			row, col, err := ParseCellRef(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.row, row)
			assert.Equal(t, tt.col, col)
		})
	}
}

func TestParseCellRefCaseInsensitive(t *testing.T) {
	row, col, err := ParseCellRef("a1")
	require.NoError(t, err)
	upperRow, upperCol, err := ParseCellRef("A1")
	require.NoError(t, err)
	assert.Equal(t, upperRow, row)
	assert.Equal(t, upperCol, col)
}

func TestParseCellRefInvalid(t *testing.T) {
	for _, ref := range []string{"", "123", "ABC", "$$"} {
		t.Run(ref, func(t *testing.T) {
			_, _, err := ParseCellRef(ref)
			assert.ErrorIs(t, err, ErrInvalidReference)
		})
	}
}

func TestFormatCellRef(t *testing.T) {
	tests := []struct {
		row  int
		col  int
		want string
	}{
		{0, 0, "A1"},
		{0, 25, "Z1"},
		{0, 26, "AA1"},
		{0, 27, "AB1"},
		{0, 701, "ZZ1"},
		{0, 702, "AAA1"},
		{99, 0, "A100"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := FormatCellRef(tt.row, tt.col)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCellRefNegative(t *testing.T) {
	_, err := FormatCellRef(-1, 0)
	assert.ErrorIs(t, err, ErrInvalidAddress)
	_, err = FormatCellRef(0, -1)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestCellRefRoundTrip(t *testing.T) {
	for _, row := range []int{0, 1, 9, 99, 1048575} {
		for _, col := range []int{0, 1, 25, 26, 27, 701, 702, 703, 16383} {
			ref, err := FormatCellRef(row, col)
			require.NoError(t, err)
			gotRow, gotCol, err := ParseCellRef(ref)
			require.NoError(t, err)
			assert.Equal(t, row, gotRow, "row round-trip via %s", ref)
			assert.Equal(t, col, gotCol, "col round-trip via %s", ref)
		}
	}
}

func TestParseRangeRefSingleCell(t *testing.T) {
	startRow, startCol, endRow, endCol, err := ParseRangeRef("C3")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 2, 2}, []int{startRow, startCol, endRow, endCol})
}

func TestParseRangeRefStripsSheetQualifier(t *testing.T) {
	qualifiedRow, qualifiedCol, _, _, err := ParseRangeRef("Sheet1!A1:B2")
	require.NoError(t, err)
	plainRow, plainCol, _, _, err := ParseRangeRef("A1:B2")
	require.NoError(t, err)
	assert.Equal(t, plainRow, qualifiedRow)
	assert.Equal(t, plainCol, qualifiedCol)
}

func TestParseRangeRefMalformedQualifier(t *testing.T) {
	_, _, _, _, err := ParseRangeRef("Sheet1!A1!B2")
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestParseRangeRefPreservesCornerOrder(t *testing.T) {
	startRow, startCol, endRow, endCol, err := ParseRangeRef("B5:A1")
	require.NoError(t, err)
	assert.Equal(t, 4, startRow)
	assert.Equal(t, 1, startCol)
	assert.Equal(t, 0, endRow)
	assert.Equal(t, 0, endCol)
}

func TestRangeLabelRoundTrip(t *testing.T) {
	startRow, startCol, endRow, endCol, err := ParseRangeRef("A1:B5")
	require.NoError(t, err)
	label, err := FormatRangeRef(startRow, startCol, endRow, endCol)
	require.NoError(t, err)
	assert.Equal(t, "A1:B5", label)
}

func TestParseRange(t *testing.T) {
	startCol, startRow, endCol, endRow, err := ParseRange("A1:C10")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 3, 10}, []int{startCol, startRow, endCol, endRow})

	startCol, startRow, endCol, endRow, err = ParseRange("B2")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 2, 2}, []int{startCol, startRow, endCol, endRow})
}

func TestNormalizeRange(t *testing.T) {
	assert.Equal(t, "A1:C10", NormalizeRange("$A$1:$C$10"))
	assert.Equal(t, "A1:B2", NormalizeRange("Sheet1!A1:B2"))
	assert.Equal(t, "C3:C3", NormalizeRange("C3"))
}
