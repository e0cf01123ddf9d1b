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

type ExcelSetColumnWidthArguments struct {
	FileAbsolutePath string  `zog:"fileAbsolutePath"`
	SheetName        string  `zog:"sheetName"`
	StartColumn      string  `zog:"startColumn"`
	EndColumn        string  `zog:"endColumn"`
	Width            float64 `zog:"width"`
}

var excelSetColumnWidthArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"startColumn":      z.String().Required(),
	"endColumn":        z.String(),
	"width":            z.Float64().GT(0).LTE(255).Required(),
})

func AddExcelSetColumnWidthTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_set_column_width",
		mcp.WithDescription("Set the width of one or more columns of the Excel sheet"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Sheet name in the Excel file"),
		),
		mcp.WithString("startColumn",
			mcp.Required(),
			mcp.Description("First column letter (e.g., \"B\")"),
		),
		mcp.WithString("endColumn",
			mcp.Description("Last column letter [default: startColumn]"),
		),
		mcp.WithNumber("width",
			mcp.Required(),
			mcp.Description("Column width in character units"),
		),
	), WithRecovery(handleSetColumnWidth))
}

func handleSetColumnWidth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelSetColumnWidthArguments{}
	issues := excelSetColumnWidthArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return setColumnWidth(args.FileAbsolutePath, args.SheetName, args.StartColumn, args.EndColumn, args.Width)
}

func setColumnWidth(fileAbsolutePath string, sheetName string, startColumn string, endColumn string, width float64) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenWorkbook(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	worksheet, err := workbook.FindSheet(sheetName)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := worksheet.SetColumnWidth(startColumn, endColumn, width); err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := workbook.Save(); err != nil {
		return nil, err
	}

	if endColumn == "" {
		endColumn = startColumn
	}
	result := "<h2>Set Column Width</h2>\n"
	result += fmt.Sprintf("<p>columns %s:%s width %g</p>\n", startColumn, endColumn, width)
	result += metadataSection(workbook.BackendName(), sheetName, "")

	return mcp.NewToolResultText(result), nil
}
