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

type ExcelDeleteRowsArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	StartRow         int    `zog:"startRow"`
	Count            int    `zog:"count"`
}

var excelDeleteRowsArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"startRow":         z.Int().GTE(1).Required(),
	"count":            z.Int().GTE(1).Default(1),
})

func AddExcelDeleteRowsTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_delete_rows",
		mcp.WithDescription("Delete rows from the Excel sheet"),
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
			mcp.Description("Row number where the deletion starts (1-based)"),
		),
		mcp.WithNumber("count",
			mcp.Description("Number of rows to delete [default: 1]"),
		),
	), WithRecovery(handleDeleteRows))
}

func handleDeleteRows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelDeleteRowsArguments{}
	issues := excelDeleteRowsArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return deleteRows(args.FileAbsolutePath, args.SheetName, args.StartRow, args.Count)
}

func deleteRows(fileAbsolutePath string, sheetName string, startRow int, count int) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenWorkbook(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	worksheet, err := workbook.FindSheet(sheetName)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := worksheet.DeleteRows(startRow, count); err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "<h2>Deleted Rows</h2>\n"
	result += fmt.Sprintf("<p>%d row(s) from row %d</p>\n", count, startRow)
	result += metadataSection(workbook.BackendName(), sheetName, "")

	return mcp.NewToolResultText(result), nil
}
