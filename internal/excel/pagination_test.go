package excel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSheet(t *testing.T, rows, cols int) *Sheet {
	t.Helper()
	workbook, release, err := NewWorkbook(filepath.Join(t.TempDir(), "test.xlsx"))
	require.NoError(t, err)
	t.Cleanup(release)
	sheet, err := workbook.FindSheet("Sheet1")
	require.NoError(t, err)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell, err := FormatCellRef(row, col)
			require.NoError(t, err)
			require.NoError(t, sheet.SetValue(cell, row*cols+col))
		}
	}
	return sheet
}

func TestFixedSizePagingStrategy(t *testing.T) {
	sheet := newTestSheet(t, 10, 2)

	strategy, err := NewFixedSizePagingStrategy(4, sheet)
	require.NoError(t, err)

	ranges := strategy.CalculatePagingRanges()
	assert.Equal(t, []string{"A1:B2", "A3:B4", "A5:B6", "A7:B8", "A9:B10"}, ranges)
}

func TestFixedSizePagingStrategySmallerThanRow(t *testing.T) {
	sheet := newTestSheet(t, 2, 5)

	// page size below the sheet width still yields one row per page
	strategy, err := NewFixedSizePagingStrategy(3, sheet)
	require.NoError(t, err)

	ranges := strategy.CalculatePagingRanges()
	assert.Equal(t, []string{"A1:E1", "A2:E2"}, ranges)
}

func TestPagingRangeService(t *testing.T) {
	sheet := newTestSheet(t, 10, 2)
	strategy, err := NewFixedSizePagingStrategy(4, sheet)
	require.NoError(t, err)
	service := NewPagingRangeService(strategy)

	all := service.GetPagingRanges()
	require.Len(t, all, 5)

	remaining := service.FilterRemainingPagingRanges(all, []string{"A1:B2", "A3:B4"})
	assert.Equal(t, []string{"A5:B6", "A7:B8", "A9:B10"}, remaining)

	assert.Equal(t, "A3:B4", service.FindNextRange(all, "A1:B2"))
	assert.Equal(t, "", service.FindNextRange(all, "A9:B10"))
	assert.Equal(t, "", service.FindNextRange(all, "Z1:Z2"))
}
