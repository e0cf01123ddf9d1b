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

type ExcelDeleteColumnsArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	StartColumn      string `zog:"startColumn"`
	Count            int    `zog:"count"`
}

var excelDeleteColumnsArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"startColumn":      z.String().Required(),
	"count":            z.Int().GTE(1).Default(1),
})

func AddExcelDeleteColumnsTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_delete_columns",
		mcp.WithDescription("Delete columns from the Excel sheet"),
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
			mcp.Description("Column letter where the deletion starts (e.g., \"C\")"),
		),
		mcp.WithNumber("count",
			mcp.Description("Number of columns to delete [default: 1]"),
		),
	), WithRecovery(handleDeleteColumns))
}

func handleDeleteColumns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelDeleteColumnsArguments{}
	issues := excelDeleteColumnsArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return deleteColumns(args.FileAbsolutePath, args.SheetName, args.StartColumn, args.Count)
}

func deleteColumns(fileAbsolutePath string, sheetName string, startColumn string, count int) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenWorkbook(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	worksheet, err := workbook.FindSheet(sheetName)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := worksheet.DeleteColumns(startColumn, count); err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "<h2>Deleted Columns</h2>\n"
	result += fmt.Sprintf("<p>%d column(s) from column %s</p>\n", count, startColumn)
	result += metadataSection(workbook.BackendName(), sheetName, "")

	return mcp.NewToolResultText(result), nil
}
