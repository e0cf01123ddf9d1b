package tools

import (
	"context"
	"crypto/md5"
	"fmt"
	"html"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xuri/excelize/v2"

	"github.com/sheetbridge/excel-mcp-server/internal/excel"

	z "github.com/Oudwins/zog"
)

// WithRecovery absorbs panics from a tool handler and reports them as
// tool errors instead of tearing down the stdio server.
func WithRecovery(handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("tool", request.Params.Name).Errorf("recovered from panic: %v", r)
				result = mcp.NewToolResultError(fmt.Sprintf("panic recovered in %s tool handler: %v", request.Params.Name, r))
				err = nil
			}
		}()
		return handler(ctx, request)
	}
}

type StyleRegistry struct {
	styles   map[string]*excel.CellStyle // styleID -> CellStyle
	hashToID map[string]string           // styleHash -> styleID
	counter  int
}

func NewStyleRegistry() *StyleRegistry {
	return &StyleRegistry{
		styles:   make(map[string]*excel.CellStyle),
		hashToID: make(map[string]string),
		counter:  0,
	}
}

func (sr *StyleRegistry) RegisterStyle(cellStyle *excel.CellStyle) string {
	if cellStyle == nil || sr.isEmptyStyle(cellStyle) {
		return ""
	}

	styleHash := sr.calculateStyleHash(cellStyle)

	if existingID, exists := sr.hashToID[styleHash]; exists {
		return existingID
	}

	sr.counter++
	styleID := fmt.Sprintf("s%d", sr.counter)
	sr.styles[styleID] = cellStyle
	sr.hashToID[styleHash] = styleID

	return styleID
}

func (sr *StyleRegistry) isEmptyStyle(style *excel.CellStyle) bool {
	if len(style.Border) > 0 || style.Font != nil || style.Alignment != nil {
		return false
	}
	if style.NumFmt != nil && *style.NumFmt != "" {
		return false
	}
	if style.DecimalPlaces != nil && *style.DecimalPlaces != 0 {
		return false
	}
	if style.Fill != nil && style.Fill.Type != "" {
		return false
	}
	return true
}

func (sr *StyleRegistry) calculateStyleHash(cellStyle *excel.CellStyle) string {
	yamlBytes, err := yaml.MarshalWithOptions(cellStyle, yaml.Flow(true), yaml.OmitEmpty())
	if err != nil {
		return ""
	}

	hash := md5.Sum(yamlBytes)
	return fmt.Sprintf("%x", hash)[:8]
}

func (sr *StyleRegistry) GenerateStyleDefinitions() string {
	if len(sr.styles) == 0 {
		return ""
	}

	var result strings.Builder
	result.WriteString("<h2>Style Definitions</h2>\n")
	result.WriteString("<div class=\"style-definitions\">\n")

	var styleIDs []string
	for styleID := range sr.styles {
		styleIDs = append(styleIDs, styleID)
	}
	slices.SortFunc(styleIDs, func(a, b string) int {
		// styleID must have number suffix
		ai, _ := strconv.Atoi(a[1:])
		bi, _ := strconv.Atoi(b[1:])
		return ai - bi
	})

	for _, styleID := range styleIDs {
		cellStyle := sr.styles[styleID]
		yamlStr := convertCellStyleToYAMLFlow(cellStyle)
		if yamlStr != "" {
			result.WriteString(fmt.Sprintf("<code class=\"style language-yaml\" id=\"%s\">%s</code>\n", styleID, html.EscapeString(yamlStr)))
		}
	}

	result.WriteString("</div>\n\n")
	return result.String()
}

func CreateHTMLTableOfValues(sheet *excel.Sheet, startCol int, startRow int, endCol int, endRow int) (*string, error) {
	return createHTMLTable(startCol, startRow, endCol, endRow, func(cellRange string) (string, error) {
		return sheet.GetValue(cellRange)
	})
}

func CreateHTMLTableOfFormula(sheet *excel.Sheet, startCol int, startRow int, endCol int, endRow int) (*string, error) {
	return createHTMLTable(startCol, startRow, endCol, endRow, func(cellRange string) (string, error) {
		return sheet.GetFormula(cellRange)
	})
}

// createHTMLTable creates a table data in HTML format
func createHTMLTable(startCol int, startRow int, endCol int, endRow int, extractor func(cellRange string) (string, error)) (*string, error) {
	return createHTMLTableWithStyle(startCol, startRow, endCol, endRow, extractor, nil)
}

func CreateHTMLTableOfValuesWithStyle(sheet *excel.Sheet, startCol int, startRow int, endCol int, endRow int) (*string, error) {
	return createHTMLTableWithStyle(startCol, startRow, endCol, endRow,
		func(cellRange string) (string, error) {
			return sheet.GetValue(cellRange)
		},
		func(cellRange string) (*excel.CellStyle, error) {
			return sheet.GetCellStyle(cellRange)
		})
}

func CreateHTMLTableOfFormulaWithStyle(sheet *excel.Sheet, startCol int, startRow int, endCol int, endRow int) (*string, error) {
	return createHTMLTableWithStyle(startCol, startRow, endCol, endRow,
		func(cellRange string) (string, error) {
			return sheet.GetFormula(cellRange)
		},
		func(cellRange string) (*excel.CellStyle, error) {
			return sheet.GetCellStyle(cellRange)
		})
}

func createHTMLTableWithStyle(startCol int, startRow int, endCol int, endRow int, extractor func(cellRange string) (string, error), styleExtractor func(cellRange string) (*excel.CellStyle, error)) (*string, error) {
	registry := NewStyleRegistry()

	var result strings.Builder
	result.WriteString("<table>\n<tr><th></th>")

	for col := startCol; col <= endCol; col++ {
		name, _ := excelize.ColumnNumberToName(col)
		result.WriteString(fmt.Sprintf("<th>%s</th>", name))
	}
	result.WriteString("</tr>\n")

	for row := startRow; row <= endRow; row++ {
		result.WriteString("<tr>")
		result.WriteString(fmt.Sprintf("<th>%d</th>", row))

		for col := startCol; col <= endCol; col++ {
			axis, _ := excelize.CoordinatesToCellName(col, row)
			value, _ := extractor(axis)

			tdTag := "<td>"
			if styleExtractor != nil {
				cellStyle, err := styleExtractor(axis)
				if err == nil && cellStyle != nil {
					if styleID := registry.RegisterStyle(cellStyle); styleID != "" {
						tdTag = fmt.Sprintf("<td style-ref=\"%s\">", styleID)
					}
				}
			}

			result.WriteString(fmt.Sprintf("%s%s</td>", tdTag, strings.ReplaceAll(html.EscapeString(value), "\n", "<br>")))
		}
		result.WriteString("</tr>\n")
	}

	result.WriteString("</table>")

	var finalResult strings.Builder
	styleDefinitions := registry.GenerateStyleDefinitions()
	if styleDefinitions != "" {
		finalResult.WriteString(styleDefinitions)
	}

	finalResult.WriteString("<h2>Sheet Data</h2>\n")
	finalResult.WriteString(result.String())

	finalResultStr := finalResult.String()
	return &finalResultStr, nil
}

func AbsolutePathTest() z.Test[*string] {
	return z.Test[*string]{
		Func: func(path *string, ctx z.Ctx) {
			if !filepath.IsAbs(*path) {
				ctx.AddIssue(ctx.Issue().SetMessage(fmt.Sprintf("Path '%s' is not absolute", *path)))
			}
		},
	}
}

func convertCellStyleToYAMLFlow(cellStyle *excel.CellStyle) string {
	if cellStyle == nil {
		return ""
	}
	yamlBytes, err := yaml.MarshalWithOptions(cellStyle, yaml.Flow(true), yaml.OmitEmpty())
	if err != nil {
		return ""
	}
	yamlStr := strings.TrimSpace(strings.ReplaceAll(string(yamlBytes), "\"", ""))
	return yamlStr
}

// metadataSection renders the trailing metadata list shared by the
// editing tools.
func metadataSection(backend, sheetName, rangeStr string) string {
	result := "<h2>Metadata</h2>\n"
	result += "<ul>\n"
	result += fmt.Sprintf("<li>backend: %s</li>\n", backend)
	if sheetName != "" {
		result += fmt.Sprintf("<li>sheet name: %s</li>\n", html.EscapeString(sheetName))
	}
	if rangeStr != "" {
		result += fmt.Sprintf("<li>range: %s</li>\n", rangeStr)
	}
	result += "</ul>\n"
	return result
}

func isFormula(value string) bool {
	return len(value) > 0 && value[0] == '='
}
