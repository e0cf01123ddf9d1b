package excel

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ErrNeedsAutomation marks operations the excelize backend cannot
// perform on its own. Callers retry them through the automation
// bridge when one is available.
var ErrNeedsAutomation = errors.New("operation requires a running Excel instance")

// Workbook wraps an open excelize file.
type Workbook struct {
	file *excelize.File
}

// OpenWorkbook opens an existing xlsx file. The returned release
// function closes the underlying file.
func OpenWorkbook(absoluteFilePath string) (*Workbook, func(), error) {
	file, err := excelize.OpenFile(absoluteFilePath)
	if err != nil {
		return nil, func() {}, err
	}
	workbook := &Workbook{file: file}
	return workbook, func() {
		file.Close()
	}, nil
}

// NewWorkbook creates an empty workbook that will be saved to the
// given path. The file is not written until Save is called.
func NewWorkbook(absoluteFilePath string) (*Workbook, func(), error) {
	file := excelize.NewFile()
	file.Path = absoluteFilePath
	workbook := &Workbook{file: file}
	return workbook, func() {
		file.Close()
	}, nil
}

func (w *Workbook) BackendName() string {
	return "excelize"
}

func (w *Workbook) Path() string {
	return w.file.Path
}

// SheetNames returns the worksheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

func (w *Workbook) FindSheet(sheetName string) (*Sheet, error) {
	index, err := w.file.GetSheetIndex(sheetName)
	if err != nil || index < 0 {
		return nil, fmt.Errorf("sheet not found: %s", sheetName)
	}
	return &Sheet{file: w.file, name: sheetName}, nil
}

func (w *Workbook) AddSheet(sheetName string) (*Sheet, error) {
	if index, err := w.file.GetSheetIndex(sheetName); err == nil && index >= 0 {
		return nil, fmt.Errorf("sheet already exists: %s", sheetName)
	}
	if _, err := w.file.NewSheet(sheetName); err != nil {
		return nil, fmt.Errorf("failed to create new sheet: %w", err)
	}
	return &Sheet{file: w.file, name: sheetName}, nil
}

// CopySheet duplicates srcSheetName as destSheetName, placing the copy
// right after the source.
func (w *Workbook) CopySheet(srcSheetName, destSheetName string) error {
	srcIndex, err := w.file.GetSheetIndex(srcSheetName)
	if err != nil {
		return err
	}
	if srcIndex < 0 {
		return fmt.Errorf("source sheet not found: %s", srcSheetName)
	}
	destIndex, err := w.file.NewSheet(destSheetName)
	if err != nil {
		return fmt.Errorf("failed to create destination sheet: %w", err)
	}
	if err := w.file.CopySheet(srcIndex, destIndex); err != nil {
		return fmt.Errorf("failed to copy sheet: %w", err)
	}
	sheetList := w.file.GetSheetList()
	if srcIndex+1 < len(sheetList) {
		srcNext := sheetList[srcIndex+1]
		if srcNext != srcSheetName && srcNext != destSheetName {
			w.file.MoveSheet(destSheetName, srcNext)
		}
	}
	return nil
}

func (w *Workbook) DeleteSheet(sheetName string) error {
	index, err := w.file.GetSheetIndex(sheetName)
	if err != nil || index < 0 {
		return fmt.Errorf("sheet not found: %s", sheetName)
	}
	if len(w.file.GetSheetList()) == 1 {
		return fmt.Errorf("cannot delete the only sheet: %s", sheetName)
	}
	if err := w.file.DeleteSheet(sheetName); err != nil {
		return fmt.Errorf("failed to delete sheet: %w", err)
	}
	return nil
}

func (w *Workbook) RenameSheet(oldName, newName string) error {
	index, err := w.file.GetSheetIndex(oldName)
	if err != nil || index < 0 {
		return fmt.Errorf("sheet not found: %s", oldName)
	}
	if err := w.file.SetSheetName(oldName, newName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	return nil
}

// SetDefinedName registers a workbook-scoped defined name, or a
// sheet-scoped one when scope is a sheet name.
func (w *Workbook) SetDefinedName(name, refersTo, scope string) error {
	definedName := &excelize.DefinedName{
		Name:     name,
		RefersTo: refersTo,
	}
	if scope != "" {
		definedName.Scope = scope
	}
	if err := w.file.SetDefinedName(definedName); err != nil {
		return fmt.Errorf("failed to set defined name: %w", err)
	}
	return nil
}

// Save writes the workbook back to its path. Excelize's own Save
// method restricts the file path length to 207 characters, but since
// this limitation has been relaxed in some environments, we ignore
// this restriction.
// https://github.com/qax-os/excelize/blob/v2.9.0/file.go#L71-L73
func (w *Workbook) Save() error {
	file, err := os.OpenFile(filepath.Clean(w.file.Path), os.O_WRONLY|os.O_TRUNC|os.O_CREATE, os.ModePerm)
	if err != nil {
		return err
	}
	defer file.Close()
	return w.file.Write(file)
}

// ExportPDF is not supported by the excelize backend.
func (w *Workbook) ExportPDF(outputPath string) error {
	return fmt.Errorf("export PDF: %w", ErrNeedsAutomation)
}

// AddVBAMacro is not supported by the excelize backend. Injecting VBA
// source needs the VBIDE object model of a running Excel instance.
func (w *Workbook) AddVBAMacro(moduleName, code string) error {
	return fmt.Errorf("add VBA macro: %w", ErrNeedsAutomation)
}
