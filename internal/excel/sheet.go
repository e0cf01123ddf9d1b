package excel

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet is a view over one worksheet of an open Workbook.
type Sheet struct {
	file *excelize.File
	name string
}

type Table struct {
	Name  string
	Range string
}

type PivotTable struct {
	Name  string
	Range string
}

func (s *Sheet) Name() string {
	return s.name
}

func (s *Sheet) Tables() ([]Table, error) {
	tables, err := s.file.GetTables(s.name)
	if err != nil {
		return nil, fmt.Errorf("failed to get tables: %w", err)
	}
	tableList := make([]Table, len(tables))
	for i, table := range tables {
		tableList[i] = Table{
			Name:  table.Name,
			Range: NormalizeRange(table.Range),
		}
	}
	return tableList, nil
}

func (s *Sheet) PivotTables() ([]PivotTable, error) {
	pivotTables, err := s.file.GetPivotTables(s.name)
	if err != nil {
		return nil, fmt.Errorf("failed to get pivot tables: %w", err)
	}
	pivotTableList := make([]PivotTable, len(pivotTables))
	for i, pivotTable := range pivotTables {
		pivotTableList[i] = PivotTable{
			Name:  pivotTable.Name,
			Range: NormalizeRange(pivotTable.PivotTableRange),
		}
	}
	return pivotTableList, nil
}

func (s *Sheet) SetValue(cell string, value any) error {
	if err := s.file.SetCellValue(s.name, cell, value); err != nil {
		return err
	}
	if err := s.updateDimension(cell); err != nil {
		return fmt.Errorf("failed to update dimension: %w", err)
	}
	return nil
}

func (s *Sheet) SetFormula(cell string, formula string) error {
	if err := s.file.SetCellFormula(s.name, cell, formula); err != nil {
		return err
	}
	if err := s.updateDimension(cell); err != nil {
		return fmt.Errorf("failed to update dimension: %w", err)
	}
	return nil
}

func (s *Sheet) GetValue(cell string) (string, error) {
	value, err := s.file.GetCellValue(s.name, cell)
	if err != nil {
		return "", err
	}
	if value == "" {
		// try to get calculated value
		formula, err := s.file.GetCellFormula(s.name, cell)
		if err != nil {
			return "", fmt.Errorf("failed to get formula: %w", err)
		}
		if formula != "" {
			return s.file.CalcCellValue(s.name, cell)
		}
	}
	return value, nil
}

func (s *Sheet) GetFormula(cell string) (string, error) {
	formula, err := s.file.GetCellFormula(s.name, cell)
	if err != nil {
		return "", fmt.Errorf("failed to get formula: %w", err)
	}
	if formula == "" {
		// fallback
		return s.GetValue(cell)
	}
	if !strings.HasPrefix(formula, "=") {
		formula = "=" + formula
	}
	return formula, nil
}

func (s *Sheet) Dimension() (string, error) {
	return s.file.GetSheetDimension(s.name)
}

func (s *Sheet) GetPagingStrategy(pageSize int) (PagingStrategy, error) {
	return NewFixedSizePagingStrategy(pageSize, s)
}

// CapturePicture is not supported by the excelize backend.
func (s *Sheet) CapturePicture(captureRange string) (string, error) {
	return "", fmt.Errorf("capture picture: %w", ErrNeedsAutomation)
}

func (s *Sheet) AddTable(tableRange, tableName, styleName string) error {
	if styleName == "" {
		styleName = "TableStyleMedium2"
	}
	enable := true
	if err := s.file.AddTable(s.name, &excelize.Table{
		Range:             tableRange,
		Name:              tableName,
		StyleName:         styleName,
		ShowColumnStripes: true,
		ShowFirstColumn:   false,
		ShowHeaderRow:     &enable,
		ShowLastColumn:    false,
		ShowRowStripes:    &enable,
	}); err != nil {
		return err
	}
	return nil
}

func (s *Sheet) GetCellStyle(cell string) (*CellStyle, error) {
	styleID, err := s.file.GetCellStyle(s.name, cell)
	if err != nil {
		return nil, fmt.Errorf("failed to get cell style: %w", err)
	}
	style, err := s.file.GetStyle(styleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get style details: %w", err)
	}
	return CellStyleFromExcelize(style), nil
}

func (s *Sheet) SetCellStyle(cell string, style *CellStyle) error {
	styleID, err := s.file.NewStyle(style.ToExcelize())
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	if err := s.file.SetCellStyle(s.name, cell, cell, styleID); err != nil {
		return fmt.Errorf("failed to set cell style: %w", err)
	}
	return nil
}

// ChartSeries describes one data series of a chart. Categories and
// Values are sheet-qualified range references.
type ChartSeries struct {
	Name       string
	Categories string
	Values     string
}

type ChartConfig struct {
	Type       string
	Series     []ChartSeries
	Title      string
	XAxisTitle string
	YAxisTitle string
	// Style is an Excel chart style number between 1 and 48, or 0 for
	// no styling. The matching color palette is applied to the series.
	Style int
}

var chartTypes = map[string]excelize.ChartType{
	"area":                excelize.Area,
	"areaStacked":         excelize.AreaStacked,
	"areaPercentStacked":  excelize.AreaPercentStacked,
	"bar":                 excelize.Bar,
	"barStacked":          excelize.BarStacked,
	"barPercentStacked":   excelize.BarPercentStacked,
	"col":                 excelize.Col,
	"column":              excelize.Col,
	"colStacked":          excelize.ColStacked,
	"colPercentStacked":   excelize.ColPercentStacked,
	"doughnut":            excelize.Doughnut,
	"line":                excelize.Line,
	"pie":                 excelize.Pie,
	"pie3D":               excelize.Pie3D,
	"radar":               excelize.Radar,
	"scatter":             excelize.Scatter,
	"bubble":              excelize.Bubble,
}

// ChartTypeNames returns the accepted chart type identifiers.
func ChartTypeNames() []string {
	names := make([]string, 0, len(chartTypes))
	for name := range chartTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddChart draws a chart anchored at the given top-left cell.
func (s *Sheet) AddChart(positionCell string, config ChartConfig) error {
	chartType, ok := chartTypes[config.Type]
	if !ok {
		return fmt.Errorf("unsupported chart type: %s", config.Type)
	}
	palette := StylePalette(config.Style)
	series := make([]excelize.ChartSeries, len(config.Series))
	for i, sr := range config.Series {
		series[i] = excelize.ChartSeries{
			Name:       sr.Name,
			Categories: sr.Categories,
			Values:     sr.Values,
		}
		if config.Style > 0 {
			series[i].Fill = excelize.Fill{
				Type:    "pattern",
				Pattern: 1,
				Color:   []string{palette[i%len(palette)]},
			}
		}
	}
	chart := &excelize.Chart{
		Type:   chartType,
		Series: series,
		Legend: excelize.ChartLegend{Position: "bottom"},
	}
	if config.Title != "" {
		chart.Title = []excelize.RichTextRun{{Text: config.Title}}
	}
	if config.XAxisTitle != "" {
		chart.XAxis = excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: config.XAxisTitle}}}
	}
	if config.YAxisTitle != "" {
		chart.YAxis = excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: config.YAxisTitle}}}
	}
	if err := s.file.AddChart(s.name, positionCell, chart); err != nil {
		return fmt.Errorf("failed to add chart: %w", err)
	}
	return nil
}

type PivotDataField struct {
	Field    string
	Function string
}

type PivotTableConfig struct {
	// DataRange is the source range, sheet-qualified or local to this
	// sheet.
	DataRange string
	// TargetRange is where the pivot table is placed.
	TargetRange string
	Rows        []string
	Columns     []string
	Data        []PivotDataField
}

var pivotSubtotals = map[string]string{
	"sum":     "Sum",
	"count":   "Count",
	"average": "Average",
	"max":     "Max",
	"min":     "Min",
	"product": "Product",
	"stdev":   "StdDev",
	"var":     "Var",
}

func (s *Sheet) AddPivotTable(config PivotTableConfig) error {
	options := &excelize.PivotTableOptions{
		DataRange:       s.qualifyRange(config.DataRange),
		PivotTableRange: s.qualifyRange(config.TargetRange),
		RowGrandTotals:  true,
		ColGrandTotals:  true,
		ShowRowHeaders:  true,
		ShowColHeaders:  true,
		ShowLastColumn:  true,
	}
	for _, field := range config.Rows {
		options.Rows = append(options.Rows, excelize.PivotTableField{Data: field, DefaultSubtotal: true})
	}
	for _, field := range config.Columns {
		options.Columns = append(options.Columns, excelize.PivotTableField{Data: field, DefaultSubtotal: true})
	}
	for _, data := range config.Data {
		subtotal, ok := pivotSubtotals[strings.ToLower(data.Function)]
		if !ok {
			subtotal = "Sum"
		}
		options.Data = append(options.Data, excelize.PivotTableField{
			Data:     data.Field,
			Name:     fmt.Sprintf("%s of %s", subtotal, data.Field),
			Subtotal: subtotal,
		})
	}
	if err := s.file.AddPivotTable(options); err != nil {
		return fmt.Errorf("failed to add pivot table: %w", err)
	}
	return nil
}

// qualifyRange prefixes a bare range with this sheet's name. Already
// qualified ranges pass through.
func (s *Sheet) qualifyRange(rangeRef string) string {
	if strings.Contains(rangeRef, "!") {
		return rangeRef
	}
	return s.name + "!" + rangeRef
}

type DataValidationConfig struct {
	Range string
	// Type is one of list, whole, decimal, date, time, textLength.
	Type string
	// Operator applies to the non-list types: between, notBetween,
	// equal, notEqual, greaterThan, lessThan, greaterThanOrEqual,
	// lessThanOrEqual.
	Operator   string
	Formula1   string
	Formula2   string
	List       []string
	AllowBlank bool
	ErrorTitle string
	ErrorBody  string
	InputTitle string
	InputBody  string
}

var validationTypes = map[string]excelize.DataValidationType{
	"whole":      excelize.DataValidationTypeWhole,
	"decimal":    excelize.DataValidationTypeDecimal,
	"date":       excelize.DataValidationTypeDate,
	"time":       excelize.DataValidationTypeTime,
	"textLength": excelize.DataValidationTypeTextLength,
}

var validationOperators = map[string]excelize.DataValidationOperator{
	"between":            excelize.DataValidationOperatorBetween,
	"notBetween":         excelize.DataValidationOperatorNotBetween,
	"equal":              excelize.DataValidationOperatorEqual,
	"notEqual":           excelize.DataValidationOperatorNotEqual,
	"greaterThan":        excelize.DataValidationOperatorGreaterThan,
	"lessThan":           excelize.DataValidationOperatorLessThan,
	"greaterThanOrEqual": excelize.DataValidationOperatorGreaterThanOrEqual,
	"lessThanOrEqual":    excelize.DataValidationOperatorLessThanOrEqual,
}

func (s *Sheet) AddDataValidation(config DataValidationConfig) error {
	dv := excelize.NewDataValidation(true)
	dv.Sqref = config.Range
	dv.AllowBlank = config.AllowBlank

	if config.Type == "list" {
		if err := dv.SetDropList(config.List); err != nil {
			return fmt.Errorf("failed to set drop list: %w", err)
		}
	} else {
		validationType, ok := validationTypes[config.Type]
		if !ok {
			return fmt.Errorf("unsupported validation type: %s", config.Type)
		}
		operator, ok := validationOperators[config.Operator]
		if !ok {
			operator = excelize.DataValidationOperatorBetween
		}
		if err := dv.SetRange(config.Formula1, config.Formula2, validationType, operator); err != nil {
			return fmt.Errorf("failed to set validation range: %w", err)
		}
	}
	if config.ErrorTitle != "" || config.ErrorBody != "" {
		dv.SetError(excelize.DataValidationErrorStyleStop, config.ErrorTitle, config.ErrorBody)
	}
	if config.InputTitle != "" || config.InputBody != "" {
		dv.SetInput(config.InputTitle, config.InputBody)
	}
	if err := s.file.AddDataValidation(s.name, dv); err != nil {
		return fmt.Errorf("failed to add data validation: %w", err)
	}
	return nil
}

type ConditionalFormatConfig struct {
	Range string
	// RuleType is one of cellValue, colorScale, dataBar, duplicate,
	// unique.
	RuleType string
	// Criteria is the comparison for cellValue rules, e.g. ">", "<",
	// "between", "==".
	Criteria  string
	Value     string
	Value2    string
	FontColor string
	FillColor string
	// BarColor applies to dataBar rules.
	BarColor string
}

func (s *Sheet) SetConditionalFormat(config ConditionalFormatConfig) error {
	var options excelize.ConditionalFormatOptions
	switch config.RuleType {
	case "cellValue":
		style := &excelize.Style{}
		if config.FontColor != "" {
			style.Font = &excelize.Font{Color: strings.TrimPrefix(config.FontColor, "#")}
		}
		if config.FillColor != "" {
			style.Fill = excelize.Fill{
				Type:    "pattern",
				Pattern: 1,
				Color:   []string{strings.TrimPrefix(config.FillColor, "#")},
			}
		}
		formatID, err := s.file.NewConditionalStyle(style)
		if err != nil {
			return fmt.Errorf("failed to create conditional style: %w", err)
		}
		options = excelize.ConditionalFormatOptions{
			Type:     "cell",
			Criteria: config.Criteria,
			Value:    config.Value,
			Format:   &formatID,
		}
		if config.Criteria == "between" || config.Criteria == "not between" {
			options.MinValue = config.Value
			options.MaxValue = config.Value2
		}
	case "colorScale":
		options = excelize.ConditionalFormatOptions{
			Type:     "3_color_scale",
			Criteria: "=",
			MinType:  "min",
			MidType:  "percentile",
			MaxType:  "max",
			MinColor: "#F8696B",
			MidColor: "#FFEB84",
			MaxColor: "#63BE7B",
		}
	case "dataBar":
		barColor := config.BarColor
		if barColor == "" {
			barColor = "#638EC6"
		}
		options = excelize.ConditionalFormatOptions{
			Type:     "data_bar",
			Criteria: "=",
			MinType:  "min",
			MaxType:  "max",
			BarColor: barColor,
		}
	case "duplicate", "unique":
		style := &excelize.Style{}
		if config.FillColor != "" {
			style.Fill = excelize.Fill{
				Type:    "pattern",
				Pattern: 1,
				Color:   []string{strings.TrimPrefix(config.FillColor, "#")},
			}
		}
		formatID, err := s.file.NewConditionalStyle(style)
		if err != nil {
			return fmt.Errorf("failed to create conditional style: %w", err)
		}
		options = excelize.ConditionalFormatOptions{
			Type:   config.RuleType,
			Format: &formatID,
		}
	default:
		return fmt.Errorf("unsupported conditional format rule: %s", config.RuleType)
	}
	if err := s.file.SetConditionalFormat(s.name, config.Range, []excelize.ConditionalFormatOptions{options}); err != nil {
		return fmt.Errorf("failed to set conditional format: %w", err)
	}
	return nil
}

func (s *Sheet) SetAutoFilter(filterRange string) error {
	if err := s.file.AutoFilter(s.name, filterRange, nil); err != nil {
		return fmt.Errorf("failed to set auto filter: %w", err)
	}
	return nil
}

// SortRange sorts the rows of a range in place by one of its columns.
// Cell values are read, ordered and written back, so formulas inside
// the range are replaced by their current values. keyColumn is an
// absolute column letter that must fall inside the range. When
// hasHeader is true the first row keeps its position.
func (s *Sheet) SortRange(sortRange, keyColumn string, descending, hasHeader bool) error {
	startCol, startRow, endCol, endRow, err := ParseRange(sortRange)
	if err != nil {
		return err
	}
	_, keyColZero, err := ParseCellRef(keyColumn + "1")
	if err != nil {
		return fmt.Errorf("invalid sort column: %s", keyColumn)
	}
	keyCol := keyColZero + 1
	if keyCol < startCol || keyCol > endCol {
		return fmt.Errorf("sort column %s is outside range %s", keyColumn, sortRange)
	}

	dataStart := startRow
	if hasHeader {
		dataStart++
	}
	if dataStart >= endRow+1 {
		return nil
	}

	type rowValues struct {
		key   string
		cells []string
	}
	rows := make([]rowValues, 0, endRow-dataStart+1)
	for row := dataStart; row <= endRow; row++ {
		cells := make([]string, 0, endCol-startCol+1)
		for col := startCol; col <= endCol; col++ {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return err
			}
			value, err := s.file.GetCellValue(s.name, cell)
			if err != nil {
				return err
			}
			cells = append(cells, value)
		}
		rows = append(rows, rowValues{key: cells[keyCol-startCol], cells: cells})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		less := compareCellValues(rows[i].key, rows[j].key)
		if descending {
			return !less && rows[i].key != rows[j].key
		}
		return less
	})

	for i, rv := range rows {
		row := dataStart + i
		for j, value := range rv.cells {
			cell, err := excelize.CoordinatesToCellName(startCol+j, row)
			if err != nil {
				return err
			}
			if err := s.file.SetCellValue(s.name, cell, coerceCellValue(value)); err != nil {
				return err
			}
		}
	}
	return nil
}

// compareCellValues orders numerically when both values parse as
// numbers, lexically otherwise. Empty values sort last.
func compareCellValues(a, b string) bool {
	if a == "" {
		return false
	}
	if b == "" {
		return true
	}
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}

// coerceCellValue writes numbers back as numbers so sorting does not
// turn numeric cells into text.
func coerceCellValue(value string) any {
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return n
	}
	return value
}

func (s *Sheet) MergeCells(mergeRange string) error {
	startCol, startRow, endCol, endRow, err := ParseRange(mergeRange)
	if err != nil {
		return err
	}
	topLeft, err := excelize.CoordinatesToCellName(startCol, startRow)
	if err != nil {
		return err
	}
	bottomRight, err := excelize.CoordinatesToCellName(endCol, endRow)
	if err != nil {
		return err
	}
	if err := s.file.MergeCell(s.name, topLeft, bottomRight); err != nil {
		return fmt.Errorf("failed to merge cells: %w", err)
	}
	return nil
}

func (s *Sheet) UnmergeCells(mergeRange string) error {
	startCol, startRow, endCol, endRow, err := ParseRange(mergeRange)
	if err != nil {
		return err
	}
	topLeft, err := excelize.CoordinatesToCellName(startCol, startRow)
	if err != nil {
		return err
	}
	bottomRight, err := excelize.CoordinatesToCellName(endCol, endRow)
	if err != nil {
		return err
	}
	if err := s.file.UnmergeCell(s.name, topLeft, bottomRight); err != nil {
		return fmt.Errorf("failed to unmerge cells: %w", err)
	}
	return nil
}

func (s *Sheet) InsertRows(startRow, count int) error {
	if err := s.file.InsertRows(s.name, startRow, count); err != nil {
		return fmt.Errorf("failed to insert rows: %w", err)
	}
	return nil
}

func (s *Sheet) DeleteRows(startRow, count int) error {
	for i := 0; i < count; i++ {
		if err := s.file.RemoveRow(s.name, startRow); err != nil {
			return fmt.Errorf("failed to delete row %d: %w", startRow, err)
		}
	}
	return nil
}

func (s *Sheet) InsertColumns(startColumn string, count int) error {
	if err := s.file.InsertCols(s.name, startColumn, count); err != nil {
		return fmt.Errorf("failed to insert columns: %w", err)
	}
	return nil
}

func (s *Sheet) DeleteColumns(startColumn string, count int) error {
	for i := 0; i < count; i++ {
		if err := s.file.RemoveCol(s.name, startColumn); err != nil {
			return fmt.Errorf("failed to delete column %s: %w", startColumn, err)
		}
	}
	return nil
}

func (s *Sheet) SetColumnWidth(startColumn, endColumn string, width float64) error {
	if endColumn == "" {
		endColumn = startColumn
	}
	if err := s.file.SetColWidth(s.name, startColumn, endColumn, width); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	return nil
}

func (s *Sheet) SetRowHeight(row int, height float64) error {
	if err := s.file.SetRowHeight(s.name, row, height); err != nil {
		return fmt.Errorf("failed to set row height: %w", err)
	}
	return nil
}

// FreezePanes freezes all rows above and all columns left of the
// given cell. "A1" clears the freeze.
func (s *Sheet) FreezePanes(cell string) error {
	col, row, err := excelize.CellNameToCoordinates(cell)
	if err != nil {
		return err
	}
	panes := &excelize.Panes{
		Freeze:      col > 1 || row > 1,
		XSplit:      col - 1,
		YSplit:      row - 1,
		TopLeftCell: cell,
		ActivePane:  "bottomRight",
	}
	if err := s.file.SetPanes(s.name, panes); err != nil {
		return fmt.Errorf("failed to freeze panes: %w", err)
	}
	return nil
}

// FindReplace substitutes occurrences of find inside searchRange and
// returns the number of replaced cells. An empty searchRange scans
// the whole used area.
func (s *Sheet) FindReplace(searchRange, find, replace string, matchCase, matchEntireCell bool) (int, error) {
	if searchRange == "" {
		dimension, err := s.Dimension()
		if err != nil {
			return 0, err
		}
		searchRange = dimension
	}
	startCol, startRow, endCol, endRow, err := ParseRange(searchRange)
	if err != nil {
		return 0, err
	}
	count := 0
	for row := startRow; row <= endRow; row++ {
		for col := startCol; col <= endCol; col++ {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return count, err
			}
			value, err := s.file.GetCellValue(s.name, cell)
			if err != nil {
				return count, err
			}
			replaced, changed := replaceCellValue(value, find, replace, matchCase, matchEntireCell)
			if !changed {
				continue
			}
			if err := s.file.SetCellValue(s.name, cell, coerceCellValue(replaced)); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func replaceCellValue(value, find, replace string, matchCase, matchEntireCell bool) (string, bool) {
	if matchEntireCell {
		if matchCase {
			if value == find {
				return replace, true
			}
			return value, false
		}
		if strings.EqualFold(value, find) {
			return replace, true
		}
		return value, false
	}
	if matchCase {
		if !strings.Contains(value, find) {
			return value, false
		}
		return strings.ReplaceAll(value, find, replace), true
	}
	lowerValue := strings.ToLower(value)
	lowerFind := strings.ToLower(find)
	if !strings.Contains(lowerValue, lowerFind) {
		return value, false
	}
	var builder strings.Builder
	for {
		index := strings.Index(lowerValue, lowerFind)
		if index < 0 {
			builder.WriteString(value)
			break
		}
		builder.WriteString(value[:index])
		builder.WriteString(replace)
		value = value[index+len(find):]
		lowerValue = lowerValue[index+len(lowerFind):]
	}
	return builder.String(), true
}

type PageSetupConfig struct {
	// Orientation is portrait or landscape; empty leaves it unchanged.
	Orientation string
	// PaperSize accepts letter, legal, a3, a4 and a5.
	PaperSize string
	// Margins are in inches; nil fields are left unchanged.
	Left   *float64
	Right  *float64
	Top    *float64
	Bottom *float64
	Header *float64
	Footer *float64
}

var paperSizes = map[string]int{
	"letter": 1,
	"legal":  5,
	"a3":     8,
	"a4":     9,
	"a5":     11,
}

func (s *Sheet) SetPageSetup(config PageSetupConfig) error {
	layout := &excelize.PageLayoutOptions{}
	if config.Orientation != "" {
		orientation := strings.ToLower(config.Orientation)
		if orientation != "portrait" && orientation != "landscape" {
			return fmt.Errorf("unsupported orientation: %s", config.Orientation)
		}
		layout.Orientation = &orientation
	}
	if config.PaperSize != "" {
		size, ok := paperSizes[strings.ToLower(config.PaperSize)]
		if !ok {
			return fmt.Errorf("unsupported paper size: %s", config.PaperSize)
		}
		layout.Size = &size
	}
	if layout.Orientation != nil || layout.Size != nil {
		if err := s.file.SetPageLayout(s.name, layout); err != nil {
			return fmt.Errorf("failed to set page layout: %w", err)
		}
	}
	margins := &excelize.PageLayoutMarginsOptions{
		Left:   config.Left,
		Right:  config.Right,
		Top:    config.Top,
		Bottom: config.Bottom,
		Header: config.Header,
		Footer: config.Footer,
	}
	if config.Left != nil || config.Right != nil || config.Top != nil ||
		config.Bottom != nil || config.Header != nil || config.Footer != nil {
		if err := s.file.SetPageMargins(s.name, margins); err != nil {
			return fmt.Errorf("failed to set page margins: %w", err)
		}
	}
	return nil
}

// updateDimension widens the sheet dimension to cover a freshly
// written cell. Excelize does not maintain the dimension on writes.
func (s *Sheet) updateDimension(updatedCell string) error {
	dimension, err := s.file.GetSheetDimension(s.name)
	if err != nil {
		return err
	}
	startCol, startRow, endCol, endRow, err := ParseRange(dimension)
	if err != nil {
		return err
	}
	updatedCol, updatedRow, err := excelize.CellNameToCoordinates(updatedCell)
	if err != nil {
		return err
	}
	if startCol > updatedCol {
		startCol = updatedCol
	}
	if endCol < updatedCol {
		endCol = updatedCol
	}
	if startRow > updatedRow {
		startRow = updatedRow
	}
	if endRow < updatedRow {
		endRow = updatedRow
	}
	startRange, err := excelize.CoordinatesToCellName(startCol, startRow)
	if err != nil {
		return err
	}
	endRange, err := excelize.CoordinatesToCellName(endCol, endRow)
	if err != nil {
		return err
	}
	updatedDimension := fmt.Sprintf("%s:%s", startRange, endRange)
	return s.file.SetSheetDimension(s.name, updatedDimension)
}
