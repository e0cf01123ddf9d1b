package tools

import (
	"encoding/json"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetbridge/excel-mcp-server/internal/excel"
)

func newWorkbookFile(t *testing.T, values [][]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.xlsx")
	workbook, release, err := excel.NewWorkbook(path)
	require.NoError(t, err)
	defer release()
	sheet, err := workbook.FindSheet("Sheet1")
	require.NoError(t, err)
	for i, row := range values {
		for j, value := range row {
			cell, err := excel.FormatCellRef(i, j)
			require.NoError(t, err)
			require.NoError(t, sheet.SetValue(cell, value))
		}
	}
	require.NoError(t, workbook.Save())
	return path
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func readColumnValues(t *testing.T, path, sheetName, column string, rows int) []string {
	t.Helper()
	workbook, release, err := excel.OpenWorkbook(path)
	require.NoError(t, err)
	defer release()
	sheet, err := workbook.FindSheet(sheetName)
	require.NoError(t, err)
	values := make([]string, rows)
	for i := 0; i < rows; i++ {
		value, err := sheet.GetValue(column + strconv.Itoa(i+1))
		require.NoError(t, err)
		values[i] = value
	}
	return values
}

func TestDescribeSheets(t *testing.T) {
	path := newWorkbookFile(t, [][]any{
		{"name", "score"},
		{"alice", 10},
		{"bob", 20},
	})

	result, err := describeSheets(path)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var response Response
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))
	assert.Equal(t, "excelize", response.Backend)
	require.Len(t, response.Sheets, 1)
	assert.Equal(t, "Sheet1", response.Sheets[0].Name)
	assert.Equal(t, "A1:B3", response.Sheets[0].UsedRange)
	assert.NotEmpty(t, response.Sheets[0].PagingRanges)
}

func TestDescribeSheetsMissingFile(t *testing.T) {
	_, err := describeSheets(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestReadSheet(t *testing.T) {
	path := newWorkbookFile(t, [][]any{
		{"name", "score"},
		{"alice", 10},
	})

	result, err := readSheet(path, "Sheet1", "", false, false)
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "<td>alice</td>")
	assert.Contains(t, text, "<li>backend: excelize</li>")
	assert.Contains(t, text, "<li>read range: A1:B2</li>")
	assert.Contains(t, text, "This is the last range or no more ranges available.")
}

func TestReadSheetRangeOutsideUsedRange(t *testing.T) {
	path := newWorkbookFile(t, [][]any{
		{"a", "b"},
	})

	result, err := readSheet(path, "Sheet1", "A1:Z100", false, false)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestReadSheetUnknownSheet(t *testing.T) {
	path := newWorkbookFile(t, [][]any{{"a"}})

	result, err := readSheet(path, "NoSuchSheet", "", false, false)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestWriteSheet(t *testing.T) {
	path := newWorkbookFile(t, [][]any{{"placeholder"}})

	result, err := writeSheet(path, "Sheet1", false, "A1:B2", [][]any{
		{"name", "score"},
		{"alice", float64(10)},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Values wrote successfully.")

	values := readColumnValues(t, path, "Sheet1", "A", 2)
	assert.Equal(t, []string{"name", "alice"}, values)
}

func TestWriteSheetFormula(t *testing.T) {
	path := newWorkbookFile(t, [][]any{{"placeholder"}})

	result, err := writeSheet(path, "Sheet1", false, "A1:A3", [][]any{
		{float64(2)},
		{float64(3)},
		{"=SUM(A1:A2)"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	// formulas are echoed back in the report table
	assert.Contains(t, resultText(t, result), "=SUM(A1:A2)")
}

func TestWriteSheetRowCountMismatch(t *testing.T) {
	path := newWorkbookFile(t, [][]any{{"placeholder"}})

	result, err := writeSheet(path, "Sheet1", false, "A1:B2", [][]any{
		{"only", "one"},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestWriteSheetNewSheet(t *testing.T) {
	path := newWorkbookFile(t, [][]any{{"placeholder"}})

	result, err := writeSheet(path, "Extra", true, "A1:A1", [][]any{{"v"}})
	require.NoError(t, err)
	require.False(t, result.IsError)

	workbook, release, err := excel.OpenWorkbook(path)
	require.NoError(t, err)
	defer release()
	assert.Contains(t, workbook.SheetNames(), "Extra")
}

func TestUpdateCell(t *testing.T) {
	path := newWorkbookFile(t, [][]any{{"old"}})

	result, err := updateCell(path, "Sheet1", "A1", "new")
	require.NoError(t, err)
	require.False(t, result.IsError)

	values := readColumnValues(t, path, "Sheet1", "A", 1)
	assert.Equal(t, []string{"new"}, values)
}

func TestCreateWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.xlsx")

	result, err := createWorkbook(path, "Data", false)
	require.NoError(t, err)
	require.False(t, result.IsError)

	workbook, release, err := excel.OpenWorkbook(path)
	require.NoError(t, err)
	defer release()
	assert.Equal(t, []string{"Data"}, workbook.SheetNames())
}

func TestCreateWorkbookExisting(t *testing.T) {
	path := newWorkbookFile(t, [][]any{{"keep"}})

	result, err := createWorkbook(path, "", false)
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = createWorkbook(path, "", true)
	require.NoError(t, err)
	assert.False(t, result.IsError)
}

func TestSortRangeTool(t *testing.T) {
	path := newWorkbookFile(t, [][]any{
		{"name", "score"},
		{"carol", 30},
		{"alice", 10},
		{"bob", 20},
	})

	result, err := sortRange(ExcelSortRangeArguments{
		FileAbsolutePath: path,
		SheetName:        "Sheet1",
		Range:            "A1:B4",
		KeyColumn:        "B",
		HasHeader:        true,
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	values := readColumnValues(t, path, "Sheet1", "A", 4)
	assert.Equal(t, []string{"name", "alice", "bob", "carol"}, values)
}

func TestSortRangeToolKeyOutsideRange(t *testing.T) {
	path := newWorkbookFile(t, [][]any{
		{"a"},
		{"b"},
	})

	_, err := sortRange(ExcelSortRangeArguments{
		FileAbsolutePath: path,
		SheetName:        "Sheet1",
		Range:            "A1:A2",
		KeyColumn:        "C",
	})
	assert.Error(t, err)
}

func TestCreateTableTool(t *testing.T) {
	path := newWorkbookFile(t, [][]any{
		{"name", "score"},
		{"alice", 10},
	})

	result, err := createTable(path, "Sheet1", "A1:B2", "Scores", "")
	require.NoError(t, err)
	require.False(t, result.IsError)

	workbook, release, err := excel.OpenWorkbook(path)
	require.NoError(t, err)
	defer release()
	sheet, err := workbook.FindSheet("Sheet1")
	require.NoError(t, err)
	tables, err := sheet.Tables()
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "Scores", tables[0].Name)
}

func TestFindReplaceTool(t *testing.T) {
	path := newWorkbookFile(t, [][]any{
		{"foo"},
		{"foobar"},
		{"baz"},
	})

	result, err := findReplace(ExcelFindReplaceArguments{
		FileAbsolutePath: path,
		SheetName:        "Sheet1",
		Find:             "foo",
		Replace:          "qux",
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "2 cell(s)")

	values := readColumnValues(t, path, "Sheet1", "A", 3)
	assert.Equal(t, []string{"qux", "quxbar", "baz"}, values)
}

func TestMergeCellsTool(t *testing.T) {
	path := newWorkbookFile(t, [][]any{
		{"title", ""},
	})

	result, err := mergeCells(path, "Sheet1", "A1:B1")
	require.NoError(t, err)
	assert.False(t, result.IsError)
}

func TestFormatRangeTool(t *testing.T) {
	path := newWorkbookFile(t, [][]any{
		{"header"},
	})

	bold := true
	style := &excel.CellStyle{Font: &excel.FontStyle{Bold: &bold}}
	result, err := formatRange(path, "Sheet1", "A1:A1", [][]*excel.CellStyle{{style}})
	require.NoError(t, err)
	require.False(t, result.IsError)

	workbook, release, err := excel.OpenWorkbook(path)
	require.NoError(t, err)
	defer release()
	sheet, err := workbook.FindSheet("Sheet1")
	require.NoError(t, err)
	read, err := sheet.GetCellStyle("A1")
	require.NoError(t, err)
	require.NotNil(t, read.Font)
	require.NotNil(t, read.Font.Bold)
	assert.True(t, *read.Font.Bold)
}

func TestFormatRangeToolSizeMismatch(t *testing.T) {
	path := newWorkbookFile(t, [][]any{{"a"}})

	result, err := formatRange(path, "Sheet1", "A1:A2", [][]*excel.CellStyle{{nil}})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestExportPDFWithoutExcel(t *testing.T) {
	path := newWorkbookFile(t, [][]any{{"a"}})

	// without a running Excel instance the ordered fallback surfaces
	// the primary error
	_, err := exportPDF(path, filepath.Join(t.TempDir(), "out.pdf"))
	assert.Error(t, err)
}

func TestStyleRegistryDeduplicates(t *testing.T) {
	registry := NewStyleRegistry()

	bold := true
	a := &excel.CellStyle{Font: &excel.FontStyle{Bold: &bold}}
	b := &excel.CellStyle{Font: &excel.FontStyle{Bold: &bold}}

	idA := registry.RegisterStyle(a)
	idB := registry.RegisterStyle(b)
	assert.Equal(t, idA, idB)
	assert.Equal(t, "s1", idA)

	assert.Empty(t, registry.RegisterStyle(&excel.CellStyle{}))
	assert.Empty(t, registry.RegisterStyle(nil))
}

func TestValidateRangeWithinUsedRange(t *testing.T) {
	assert.NoError(t, validateRangeWithinUsedRange("B2:C3", "A1:D4"))
	assert.Error(t, validateRangeWithinUsedRange("A1:E4", "A1:D4"))
	assert.Error(t, validateRangeWithinUsedRange("bogus", "A1:D4"))
}
