package excel

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmptySheet(t *testing.T) *Sheet {
	t.Helper()
	workbook, release, err := NewWorkbook(filepath.Join(t.TempDir(), "sheet.xlsx"))
	require.NoError(t, err)
	t.Cleanup(release)
	sheet, err := workbook.FindSheet("Sheet1")
	require.NoError(t, err)
	return sheet
}

func fillRows(t *testing.T, sheet *Sheet, topLeft string, rows [][]any) {
	t.Helper()
	startRow, startCol, err := ParseCellRef(topLeft)
	require.NoError(t, err)
	for i, row := range rows {
		for j, value := range row {
			cell, err := FormatCellRef(startRow+i, startCol+j)
			require.NoError(t, err)
			require.NoError(t, sheet.SetValue(cell, value))
		}
	}
}

func readColumn(t *testing.T, sheet *Sheet, column string, startRow, endRow int) []string {
	t.Helper()
	var values []string
	for row := startRow; row <= endRow; row++ {
		value, err := sheet.GetValue(column + strconv.Itoa(row))
		require.NoError(t, err)
		values = append(values, value)
	}
	return values
}

func TestSheetFormulas(t *testing.T) {
	sheet := newEmptySheet(t)
	require.NoError(t, sheet.SetValue("A1", 2))
	require.NoError(t, sheet.SetValue("A2", 3))
	require.NoError(t, sheet.SetFormula("A3", "=SUM(A1:A2)"))

	formula, err := sheet.GetFormula("A3")
	require.NoError(t, err)
	assert.Equal(t, "=SUM(A1:A2)", formula)

	// calc fallback evaluates the formula because no cached value exists
	value, err := sheet.GetValue("A3")
	require.NoError(t, err)
	assert.Equal(t, "5", value)
}

func TestSheetSortRange(t *testing.T) {
	sheet := newEmptySheet(t)
	fillRows(t, sheet, "A1", [][]any{
		{"Name", "Score"},
		{"carol", 3},
		{"alice", 10},
		{"bob", 7},
	})

	require.NoError(t, sheet.SortRange("A1:B4", "B", false, true))

	assert.Equal(t, []string{"Score", "3", "7", "10"}, readColumn(t, sheet, "B", 1, 4))
	assert.Equal(t, []string{"Name", "carol", "bob", "alice"}, readColumn(t, sheet, "A", 1, 4))
}

func TestSheetSortRangeDescending(t *testing.T) {
	sheet := newEmptySheet(t)
	fillRows(t, sheet, "A1", [][]any{
		{"carol", 3},
		{"alice", 10},
		{"bob", 7},
	})

	require.NoError(t, sheet.SortRange("A1:B3", "B", true, false))

	assert.Equal(t, []string{"10", "7", "3"}, readColumn(t, sheet, "B", 1, 3))
}

func TestSheetSortRangeColumnOutsideRange(t *testing.T) {
	sheet := newEmptySheet(t)
	fillRows(t, sheet, "A1", [][]any{{1}, {2}})
	err := sheet.SortRange("A1:A2", "C", false, false)
	assert.Error(t, err)
}

func TestSheetFindReplace(t *testing.T) {
	sheet := newEmptySheet(t)
	fillRows(t, sheet, "A1", [][]any{
		{"foo", "Foobar"},
		{"baz", "foo"},
	})

	count, err := sheet.FindReplace("", "foo", "qux", false, false)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	value, err := sheet.GetValue("B1")
	require.NoError(t, err)
	assert.Equal(t, "quxbar", value)
}

func TestSheetFindReplaceMatchEntireCell(t *testing.T) {
	sheet := newEmptySheet(t)
	fillRows(t, sheet, "A1", [][]any{
		{"foo", "foobar"},
	})

	count, err := sheet.FindReplace("A1:B1", "foo", "qux", true, true)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	value, err := sheet.GetValue("B1")
	require.NoError(t, err)
	assert.Equal(t, "foobar", value)
}

func TestSheetMergeAndUnmerge(t *testing.T) {
	sheet := newEmptySheet(t)
	require.NoError(t, sheet.SetValue("A1", "title"))
	require.NoError(t, sheet.MergeCells("A1:C1"))
	require.NoError(t, sheet.UnmergeCells("A1:C1"))
}

func TestSheetInsertDeleteRows(t *testing.T) {
	sheet := newEmptySheet(t)
	fillRows(t, sheet, "A1", [][]any{{"one"}, {"two"}, {"three"}})

	require.NoError(t, sheet.InsertRows(2, 2))
	assert.Equal(t, []string{"one", "", "", "two", "three"}, readColumn(t, sheet, "A", 1, 5))

	require.NoError(t, sheet.DeleteRows(2, 2))
	assert.Equal(t, []string{"one", "two", "three"}, readColumn(t, sheet, "A", 1, 3))
}

func TestSheetInsertDeleteColumns(t *testing.T) {
	sheet := newEmptySheet(t)
	fillRows(t, sheet, "A1", [][]any{{"a", "b"}})

	require.NoError(t, sheet.InsertColumns("B", 1))
	value, err := sheet.GetValue("C1")
	require.NoError(t, err)
	assert.Equal(t, "b", value)

	require.NoError(t, sheet.DeleteColumns("B", 1))
	value, err = sheet.GetValue("B1")
	require.NoError(t, err)
	assert.Equal(t, "b", value)
}

func TestSheetAddTable(t *testing.T) {
	sheet := newEmptySheet(t)
	fillRows(t, sheet, "A1", [][]any{
		{"Name", "Score"},
		{"alice", 10},
	})

	require.NoError(t, sheet.AddTable("A1:B2", "Scores", ""))

	tables, err := sheet.Tables()
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "Scores", tables[0].Name)
	assert.Equal(t, "A1:B2", tables[0].Range)
}

func TestSheetAddChart(t *testing.T) {
	sheet := newEmptySheet(t)
	fillRows(t, sheet, "A1", [][]any{
		{"Month", "Sales"},
		{"Jan", 100},
		{"Feb", 130},
	})

	err := sheet.AddChart("D1", ChartConfig{
		Type:  "col",
		Title: "Sales by month",
		Style: 7,
		Series: []ChartSeries{{
			Name:       "Sales",
			Categories: "Sheet1!A2:A3",
			Values:     "Sheet1!B2:B3",
		}},
	})
	assert.NoError(t, err)

	err = sheet.AddChart("D10", ChartConfig{Type: "nope"})
	assert.Error(t, err)
}

func TestSheetAddDataValidation(t *testing.T) {
	sheet := newEmptySheet(t)

	err := sheet.AddDataValidation(DataValidationConfig{
		Range: "A1:A10",
		Type:  "list",
		List:  []string{"red", "green", "blue"},
	})
	assert.NoError(t, err)

	err = sheet.AddDataValidation(DataValidationConfig{
		Range:    "B1:B10",
		Type:     "whole",
		Operator: "between",
		Formula1: "1",
		Formula2: "100",
	})
	assert.NoError(t, err)

	err = sheet.AddDataValidation(DataValidationConfig{Range: "C1", Type: "bogus"})
	assert.Error(t, err)
}

func TestSheetSetConditionalFormat(t *testing.T) {
	sheet := newEmptySheet(t)
	fillRows(t, sheet, "A1", [][]any{{1}, {5}, {9}})

	err := sheet.SetConditionalFormat(ConditionalFormatConfig{
		Range:     "A1:A3",
		RuleType:  "cellValue",
		Criteria:  ">",
		Value:     "4",
		FillColor: "#FFC7CE",
	})
	assert.NoError(t, err)

	err = sheet.SetConditionalFormat(ConditionalFormatConfig{
		Range:    "A1:A3",
		RuleType: "colorScale",
	})
	assert.NoError(t, err)

	err = sheet.SetConditionalFormat(ConditionalFormatConfig{
		Range:    "A1:A3",
		RuleType: "dataBar",
	})
	assert.NoError(t, err)

	err = sheet.SetConditionalFormat(ConditionalFormatConfig{
		Range:    "A1:A3",
		RuleType: "bogus",
	})
	assert.Error(t, err)
}

func TestSheetPageSetup(t *testing.T) {
	sheet := newEmptySheet(t)

	left := 0.5
	err := sheet.SetPageSetup(PageSetupConfig{
		Orientation: "landscape",
		PaperSize:   "a4",
		Left:        &left,
	})
	assert.NoError(t, err)

	err = sheet.SetPageSetup(PageSetupConfig{Orientation: "diagonal"})
	assert.Error(t, err)

	err = sheet.SetPageSetup(PageSetupConfig{PaperSize: "a9"})
	assert.Error(t, err)
}

func TestSheetFreezePanes(t *testing.T) {
	sheet := newEmptySheet(t)
	assert.NoError(t, sheet.FreezePanes("B2"))
	assert.NoError(t, sheet.FreezePanes("A1"))
}

func TestSheetColumnWidthRowHeight(t *testing.T) {
	sheet := newEmptySheet(t)
	assert.NoError(t, sheet.SetColumnWidth("B", "", 24))
	assert.NoError(t, sheet.SetRowHeight(3, 30))
}

func TestSheetCellStyleRoundTrip(t *testing.T) {
	sheet := newEmptySheet(t)
	require.NoError(t, sheet.SetValue("A1", 3.14159))

	bold := true
	color := "#FF0000"
	require.NoError(t, sheet.SetCellStyle("A1", &CellStyle{
		Font: &FontStyle{Bold: &bold, Color: &color},
		Fill: &FillStyle{
			Type:    FillTypePattern,
			Pattern: FillPatternSolid,
			Color:   []string{"#FFFF00"},
		},
	}))

	style, err := sheet.GetCellStyle("A1")
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, *style.Font.Bold)
	assert.Equal(t, "#FF0000", *style.Font.Color)
	require.NotNil(t, style.Fill)
	assert.Equal(t, FillPatternSolid, style.Fill.Pattern)
}
