package excel

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/skanehira/clipboard-image"
)

// Bridge automates a running Excel instance over OLE for the
// operations the excelize backend cannot perform: native range sort,
// PDF export, VBA macro injection and range screenshots. It attaches
// to an already running instance when the workbook is open there, and
// starts a hidden instance otherwise.
type Bridge struct {
	application *ole.IDispatch
	workbook    *ole.IDispatch
}

// OpenBridge connects to Excel and locates the workbook at the given
// path. The returned release function closes what OpenBridge opened
// and must be called on the same goroutine; the OS thread stays locked
// for COM apartment affinity in between.
func OpenBridge(absolutePath string) (*Bridge, func(), error) {
	bridge, release, err := attachBridge(absolutePath)
	if err == nil {
		return bridge, release, nil
	}
	return startBridge(absolutePath)
}

// attachBridge joins a running Excel instance that already has the
// workbook open.
func attachBridge(absolutePath string) (*Bridge, func(), error) {
	runtime.LockOSThread()
	ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED)

	unknown, err := oleutil.GetActiveObject("Excel.Application")
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, func() {}, err
	}
	application, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, func() {}, err
	}
	oleutil.MustPutProperty(application, "ScreenUpdating", false)
	oleutil.MustPutProperty(application, "EnableEvents", false)
	workbooks := oleutil.MustGetProperty(application, "Workbooks").ToIDispatch()
	count := int(oleutil.MustGetProperty(workbooks, "Count").Val)
	for i := 1; i <= count; i++ {
		workbook := oleutil.MustGetProperty(workbooks, "Item", i).ToIDispatch()
		fullName := oleutil.MustGetProperty(workbook, "FullName").ToString()
		name := oleutil.MustGetProperty(workbook, "Name").ToString()
		// A workbook opened through a WOPI URL has no retrievable file
		// path. When the local file is locked against writes, assume
		// it is this workbook.
		wopiMatch := strings.HasPrefix(fullName, "https:") &&
			name == filepath.Base(absolutePath) && FileIsNotWritable(absolutePath)
		if wopiMatch || normalizePath(fullName) == normalizePath(absolutePath) {
			return &Bridge{application: application, workbook: workbook}, func() {
				oleutil.MustPutProperty(application, "EnableEvents", true)
				oleutil.MustPutProperty(application, "ScreenUpdating", true)
				workbook.Release()
				workbooks.Release()
				application.Release()
				ole.CoUninitialize()
				runtime.UnlockOSThread()
			}, nil
		}
		workbook.Release()
	}
	workbooks.Release()
	application.Release()
	ole.CoUninitialize()
	runtime.UnlockOSThread()
	return nil, func() {}, fmt.Errorf("workbook not open in Excel: %s", absolutePath)
}

// startBridge launches a fresh Excel instance and opens the workbook
// in it. The instance is closed again by the release function.
func startBridge(absolutePath string) (*Bridge, func(), error) {
	runtime.LockOSThread()
	ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED)

	unknown, err := oleutil.CreateObject("Excel.Application")
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, func() {}, err
	}
	application, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, func() {}, err
	}
	oleutil.MustPutProperty(application, "DisplayAlerts", false)
	workbooks := oleutil.MustGetProperty(application, "Workbooks").ToIDispatch()
	workbookVariant, err := oleutil.CallMethod(workbooks, "Open", absolutePath)
	if err != nil {
		workbooks.Release()
		application.Release()
		oleutil.CallMethod(application, "Quit")
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, func() {}, err
	}
	workbook := workbookVariant.ToIDispatch()
	return &Bridge{application: application, workbook: workbook}, func() {
		oleutil.CallMethod(workbook, "Close", false)
		workbook.Release()
		workbooks.Release()
		oleutil.CallMethod(application, "Quit")
		application.Release()
		ole.CoUninitialize()
		runtime.UnlockOSThread()
	}, nil
}

func (b *Bridge) BackendName() string {
	return "ole"
}

func (b *Bridge) Save() error {
	_, err := oleutil.CallMethod(b.workbook, "Save")
	return err
}

func (b *Bridge) findWorksheet(sheetName string) (*ole.IDispatch, error) {
	worksheets := oleutil.MustGetProperty(b.workbook, "Worksheets").ToIDispatch()
	defer worksheets.Release()

	count := int(oleutil.MustGetProperty(worksheets, "Count").Val)
	for i := 1; i <= count; i++ {
		worksheet := oleutil.MustGetProperty(worksheets, "Item", i).ToIDispatch()
		name := oleutil.MustGetProperty(worksheet, "Name").ToString()
		if name == sheetName {
			return worksheet, nil
		}
		worksheet.Release()
	}
	return nil, fmt.Errorf("sheet not found: %s", sheetName)
}

// SortRange sorts a range in place with Excel's native Range.Sort.
// keyColumn is an absolute column letter inside the range.
func (b *Bridge) SortRange(sheetName, sortRange, keyColumn string, descending, hasHeader bool) error {
	worksheet, err := b.findWorksheet(sheetName)
	if err != nil {
		return err
	}
	defer worksheet.Release()

	_, startRow, _, _, err := ParseRange(sortRange)
	if err != nil {
		return err
	}
	keyCell := fmt.Sprintf("%s%d", keyColumn, startRow)

	rng := oleutil.MustGetProperty(worksheet, "Range", sortRange).ToIDispatch()
	defer rng.Release()
	key := oleutil.MustGetProperty(worksheet, "Range", keyCell).ToIDispatch()
	defer key.Release()

	order := 1 // xlAscending
	if descending {
		order = 2 // xlDescending
	}
	header := 2 // xlNo
	if hasHeader {
		header = 1 // xlYes
	}
	_, err = oleutil.CallMethod(rng, "Sort", key, order, nil, nil, nil, nil, nil, header)
	if err != nil {
		return fmt.Errorf("failed to sort range: %w", err)
	}
	return nil
}

// ExportPDF writes the workbook as a PDF file.
func (b *Bridge) ExportPDF(outputPath string) error {
	_, err := oleutil.CallMethod(
		b.workbook,
		"ExportAsFixedFormat",
		int(0), // xlTypePDF
		outputPath,
	)
	if err != nil {
		return fmt.Errorf("failed to export PDF: %w", err)
	}
	return nil
}

// AddVBAMacro adds a standard module with the given VBA source to the
// workbook's VBA project. Requires "Trust access to the VBA project
// object model" to be enabled in Excel.
func (b *Bridge) AddVBAMacro(moduleName, code string) error {
	vbProjectVariant, err := oleutil.GetProperty(b.workbook, "VBProject")
	if err != nil {
		return fmt.Errorf("VBA project access is disabled in Excel trust settings: %w", err)
	}
	vbProject := vbProjectVariant.ToIDispatch()
	defer vbProject.Release()

	components := oleutil.MustGetProperty(vbProject, "VBComponents").ToIDispatch()
	defer components.Release()

	componentVariant, err := oleutil.CallMethod(components, "Add", int(1)) // vbext_ct_StdModule
	if err != nil {
		return fmt.Errorf("failed to add VBA module: %w", err)
	}
	component := componentVariant.ToIDispatch()
	defer component.Release()

	if moduleName != "" {
		if _, err := oleutil.PutProperty(component, "Name", moduleName); err != nil {
			return fmt.Errorf("failed to name VBA module: %w", err)
		}
	}
	codeModule := oleutil.MustGetProperty(component, "CodeModule").ToIDispatch()
	defer codeModule.Release()
	if _, err := oleutil.CallMethod(codeModule, "AddFromString", code); err != nil {
		return fmt.Errorf("failed to add VBA source: %w", err)
	}
	return nil
}

// RunMacro runs a macro by name in the automated instance.
func (b *Bridge) RunMacro(macroName string) error {
	if _, err := oleutil.CallMethod(b.application, "Run", macroName); err != nil {
		return fmt.Errorf("failed to run macro: %w", err)
	}
	return nil
}

// CapturePicture renders a range as a bitmap through the clipboard and
// returns it base64 encoded.
func (b *Bridge) CapturePicture(sheetName, captureRange string) (string, error) {
	worksheet, err := b.findWorksheet(sheetName)
	if err != nil {
		return "", err
	}
	defer worksheet.Release()

	rng := oleutil.MustGetProperty(worksheet, "Range", captureRange).ToIDispatch()
	defer rng.Release()
	_, err = oleutil.CallMethod(
		rng,
		"CopyPicture",
		int(1), // xlScreen
		int(2), // xlBitmap
	)
	if err != nil {
		return "", err
	}
	buf := new(bytes.Buffer)
	bufWriter := bufio.NewWriter(buf)
	clipboardReader, err := clipboard.ReadFromClipboard()
	if err != nil {
		return "", fmt.Errorf("failed to read from clipboard: %w", err)
	}
	if _, err := io.Copy(bufWriter, clipboardReader); err != nil {
		return "", fmt.Errorf("failed to copy clipboard data: %w", err)
	}
	if err := bufWriter.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush buffer: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Dimension returns the used range of a sheet, normalized.
func (b *Bridge) Dimension(sheetName string) (string, error) {
	worksheet, err := b.findWorksheet(sheetName)
	if err != nil {
		return "", err
	}
	defer worksheet.Release()

	rng := oleutil.MustGetProperty(worksheet, "UsedRange").ToIDispatch()
	defer rng.Release()
	address := oleutil.MustGetProperty(rng, "Address").ToString()
	return NormalizeRange(address), nil
}
