package tools

import (
	"context"
	"fmt"
	"html"
	"strings"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sheetbridge/excel-mcp-server/internal/excel"
	imcp "github.com/sheetbridge/excel-mcp-server/internal/mcp"
)

type ExcelAddChartArguments struct {
	FileAbsolutePath string                `zog:"fileAbsolutePath"`
	SheetName        string                `zog:"sheetName"`
	Cell             string                `zog:"cell"`
	ChartType        string                `zog:"chartType"`
	Series           []ExcelAddChartSeries `zog:"series"`
	Title            string                `zog:"title"`
	XAxisTitle       string                `zog:"xAxisTitle"`
	YAxisTitle       string                `zog:"yAxisTitle"`
	Style            string                `zog:"style"`
}

type ExcelAddChartSeries struct {
	Name       string `zog:"name"`
	Categories string `zog:"categories"`
	Values     string `zog:"values"`
}

var excelAddChartArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"cell":             z.String().Required(),
	"chartType":        z.String().Required(),
	"series": z.Slice(z.Struct(z.Shape{
		"name":       z.String(),
		"categories": z.String(),
		"values":     z.String().Required(),
	})).Required(),
	"title":      z.String(),
	"xAxisTitle": z.String(),
	"yAxisTitle": z.String(),
	"style":      z.String(),
})

func AddExcelAddChartTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_add_chart",
		mcp.WithDescription("Add a chart to the Excel sheet"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Sheet name in the Excel file"),
		),
		mcp.WithString("cell",
			mcp.Required(),
			mcp.Description("Top-left cell where the chart is anchored (e.g., \"E1\")"),
		),
		mcp.WithString("chartType",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Chart type. One of: %s", strings.Join(excel.ChartTypeNames(), ", "))),
		),
		mcp.WithArray("series",
			mcp.Required(),
			mcp.Description("Data series to plot"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{
						"type":        "string",
						"description": "Series name or a cell reference (e.g., \"Sheet1!$A$1\")",
					},
					"categories": map[string]any{
						"type":        "string",
						"description": "Range of the category axis (e.g., \"Sheet1!$A$2:$A$10\")",
					},
					"values": map[string]any{
						"type":        "string",
						"description": "Range of the series values (e.g., \"Sheet1!$B$2:$B$10\")",
					},
				},
				"required": []any{"values"},
			}),
		),
		mcp.WithString("title",
			mcp.Description("Chart title"),
		),
		mcp.WithString("xAxisTitle",
			mcp.Description("Title of the X axis"),
		),
		mcp.WithString("yAxisTitle",
			mcp.Description("Title of the Y axis"),
		),
		mcp.WithString("style",
			mcp.Description("Chart style: a number between 1 and 48, or a style name (e.g., \"dark-blue\", \"colorful-1\")"),
		),
	), WithRecovery(handleAddChart))
}

func handleAddChart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelAddChartArguments{}
	issues := excelAddChartArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return addChart(args)
}

func addChart(args ExcelAddChartArguments) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenWorkbook(args.FileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	worksheet, err := workbook.FindSheet(args.SheetName)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	style := 0
	if args.Style != "" {
		parsed, ok := excel.ParseChartStyle(args.Style)
		if !ok {
			return imcp.NewToolResultInvalidArgumentError(fmt.Sprintf("unknown chart style: %s", args.Style)), nil
		}
		style = parsed
	}

	config := excel.ChartConfig{
		Type:       args.ChartType,
		Title:      args.Title,
		XAxisTitle: args.XAxisTitle,
		YAxisTitle: args.YAxisTitle,
		Style:      style,
	}
	for _, s := range args.Series {
		config.Series = append(config.Series, excel.ChartSeries{
			Name:       s.Name,
			Categories: s.Categories,
			Values:     s.Values,
		})
	}

	if err := worksheet.AddChart(args.Cell, config); err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "<h2>Added Chart</h2>\n"
	result += fmt.Sprintf("<p>%s chart at %s</p>\n", html.EscapeString(args.ChartType), args.Cell)
	result += metadataSection(workbook.BackendName(), args.SheetName, args.Cell)

	return mcp.NewToolResultText(result), nil
}
