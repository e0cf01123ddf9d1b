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

type ExcelInsertRowsArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	StartRow         int    `zog:"startRow"`
	Count            int    `zog:"count"`
}

var excelInsertRowsArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"startRow":         z.Int().GTE(1).Required(),
	"count":            z.Int().GTE(1).Default(1),
})

func AddExcelInsertRowsTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_insert_rows",
		mcp.WithDescription("Insert empty rows into the Excel sheet"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Sheet name in the Excel file"),
		),
		mcp.WithNumber("startRow",
			mcp.Required(),
			mcp.Description("Row number where the insertion starts (1-based)"),
		),
		mcp.WithNumber("count",
			mcp.Description("Number of rows to insert [default: 1]"),
		),
	), WithRecovery(handleInsertRows))
}

func handleInsertRows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelInsertRowsArguments{}
	issues := excelInsertRowsArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return insertRows(args.FileAbsolutePath, args.SheetName, args.StartRow, args.Count)
}

func insertRows(fileAbsolutePath string, sheetName string, startRow int, count int) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenWorkbook(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	worksheet, err := workbook.FindSheet(sheetName)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := worksheet.InsertRows(startRow, count); err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "<h2>Inserted Rows</h2>\n"
	result += fmt.Sprintf("<p>%d row(s) at row %d</p>\n", count, startRow)
	result += metadataSection(workbook.BackendName(), sheetName, "")

	return mcp.NewToolResultText(result), nil
}
