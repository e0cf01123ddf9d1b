package tools

import (
	"context"
	"fmt"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sheetbridge/excel-mcp-server/internal/excel"
	imcp "github.com/sheetbridge/excel-mcp-server/internal/mcp"
)

type ExcelAddPivotTableArguments struct {
	FileAbsolutePath string                `zog:"fileAbsolutePath"`
	SheetName        string                `zog:"sheetName"`
	DataRange        string                `zog:"dataRange"`
	TargetRange      string                `zog:"targetRange"`
	Rows             []string              `zog:"rows"`
	Columns          []string              `zog:"columns"`
	Data             []ExcelPivotDataField `zog:"data"`
}

type ExcelPivotDataField struct {
	Field    string `zog:"field"`
	Function string `zog:"function"`
}

var excelAddPivotTableArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"dataRange":        z.String().Required(),
	"targetRange":      z.String().Required(),
	"rows":             z.Slice(z.String()),
	"columns":          z.Slice(z.String()),
	"data": z.Slice(z.Struct(z.Shape{
		"field":    z.String().Required(),
		"function": z.String(),
	})).Required(),
})

func AddExcelAddPivotTableTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_add_pivot_table",
		mcp.WithDescription("Add a pivot table to the Excel sheet"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Sheet name where the pivot table is placed"),
		),
		mcp.WithString("dataRange",
			mcp.Required(),
			mcp.Description("Source data range (e.g., \"A1:D100\" or \"Data!A1:D100\")"),
		),
		mcp.WithString("targetRange",
			mcp.Required(),
			mcp.Description("Range where the pivot table is placed (e.g., \"F1:K20\")"),
		),
		mcp.WithArray("rows",
			mcp.Description("Field names used as row labels"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("columns",
			mcp.Description("Field names used as column labels"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("data",
			mcp.Required(),
			mcp.Description("Value fields to aggregate"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"field": map[string]any{
						"type":        "string",
						"description": "Field name to aggregate",
					},
					"function": map[string]any{
						"type":        "string",
						"description": "Aggregation function: sum, count, average, max, min, product, stdev, var [default: sum]",
					},
				},
				"required": []any{"field"},
			}),
		),
	), WithRecovery(handleAddPivotTable))
}

func handleAddPivotTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelAddPivotTableArguments{}
	issues := excelAddPivotTableArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return addPivotTable(args)
}

func addPivotTable(args ExcelAddPivotTableArguments) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenWorkbook(args.FileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	worksheet, err := workbook.FindSheet(args.SheetName)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	config := excel.PivotTableConfig{
		DataRange:   args.DataRange,
		TargetRange: args.TargetRange,
		Rows:        args.Rows,
		Columns:     args.Columns,
	}
	for _, data := range args.Data {
		config.Data = append(config.Data, excel.PivotDataField{
			Field:    data.Field,
			Function: data.Function,
		})
	}

	if err := worksheet.AddPivotTable(config); err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "<h2>Added Pivot Table</h2>\n"
	result += fmt.Sprintf("<p>source %s</p>\n", args.DataRange)
	result += metadataSection(workbook.BackendName(), args.SheetName, args.TargetRange)

	return mcp.NewToolResultText(result), nil
}
