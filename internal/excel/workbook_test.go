package excel

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkbookSaveAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")

	workbook, release, err := NewWorkbook(path)
	require.NoError(t, err)
	sheet, err := workbook.FindSheet("Sheet1")
	require.NoError(t, err)
	require.NoError(t, sheet.SetValue("B2", "hello"))
	require.NoError(t, workbook.Save())
	release()

	reopened, release, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer release()
	sheet, err = reopened.FindSheet("Sheet1")
	require.NoError(t, err)
	value, err := sheet.GetValue("B2")
	require.NoError(t, err)
	assert.Equal(t, "hello", value)

	dimension, err := sheet.Dimension()
	require.NoError(t, err)
	assert.Equal(t, "A1:B2", dimension)
}

func TestWorkbookSheetManagement(t *testing.T) {
	workbook, release, err := NewWorkbook(filepath.Join(t.TempDir(), "book.xlsx"))
	require.NoError(t, err)
	defer release()

	_, err = workbook.AddSheet("Data")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sheet1", "Data"}, workbook.SheetNames())

	_, err = workbook.AddSheet("Data")
	assert.Error(t, err)

	require.NoError(t, workbook.RenameSheet("Data", "Numbers"))
	assert.Equal(t, []string{"Sheet1", "Numbers"}, workbook.SheetNames())

	require.NoError(t, workbook.CopySheet("Numbers", "Numbers (2)"))
	assert.Contains(t, workbook.SheetNames(), "Numbers (2)")

	require.NoError(t, workbook.DeleteSheet("Numbers (2)"))
	require.NoError(t, workbook.DeleteSheet("Numbers"))
	err = workbook.DeleteSheet("Sheet1")
	assert.Error(t, err, "the last sheet must not be deletable")
}

func TestWorkbookFindSheetMissing(t *testing.T) {
	workbook, release, err := NewWorkbook(filepath.Join(t.TempDir(), "book.xlsx"))
	require.NoError(t, err)
	defer release()

	_, err = workbook.FindSheet("Nope")
	assert.Error(t, err)
}

func TestWorkbookAutomationOnlyOperations(t *testing.T) {
	workbook, release, err := NewWorkbook(filepath.Join(t.TempDir(), "book.xlsx"))
	require.NoError(t, err)
	defer release()

	err = workbook.ExportPDF(filepath.Join(t.TempDir(), "out.pdf"))
	assert.True(t, errors.Is(err, ErrNeedsAutomation))

	err = workbook.AddVBAMacro("Module1", "Sub Hello()\nEnd Sub")
	assert.True(t, errors.Is(err, ErrNeedsAutomation))

	sheet, err := workbook.FindSheet("Sheet1")
	require.NoError(t, err)
	_, err = sheet.CapturePicture("A1:B2")
	assert.True(t, errors.Is(err, ErrNeedsAutomation))
}

func TestWorkbookSetDefinedName(t *testing.T) {
	workbook, release, err := NewWorkbook(filepath.Join(t.TempDir(), "book.xlsx"))
	require.NoError(t, err)
	defer release()

	err = workbook.SetDefinedName("SalesData", "Sheet1!$A$1:$C$10", "")
	assert.NoError(t, err)
}
