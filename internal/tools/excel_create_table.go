package tools

import (
	"context"
	"fmt"
	"html"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sheetbridge/excel-mcp-server/internal/excel"
	imcp "github.com/sheetbridge/excel-mcp-server/internal/mcp"
)

type ExcelCreateTableArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	Range            string `zog:"range"`
	TableName        string `zog:"tableName"`
	StyleName        string `zog:"styleName"`
}

var excelCreateTableArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"range":            z.String().Required(),
	"tableName":        z.String().Required(),
	"styleName":        z.String(),
})

func AddExcelCreateTableTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_create_table",
		mcp.WithDescription("Create a table in the Excel sheet"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Sheet name where the table is created"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("Range to be a table (e.g., \"A1:C10\")"),
		),
		mcp.WithString("tableName",
			mcp.Required(),
			mcp.Description("Table name to be created"),
		),
		mcp.WithString("styleName",
			mcp.Description("Table style name (e.g., \"TableStyleMedium2\") [default: TableStyleMedium2]"),
		),
	), WithRecovery(handleCreateTable))
}

func handleCreateTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelCreateTableArguments{}
	issues := excelCreateTableArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return createTable(args.FileAbsolutePath, args.SheetName, args.Range, args.TableName, args.StyleName)
}

func createTable(fileAbsolutePath string, sheetName string, tableRange string, tableName string, styleName string) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenWorkbook(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	worksheet, err := workbook.FindSheet(sheetName)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := worksheet.AddTable(tableRange, tableName, styleName); err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "<h2>Created Table</h2>\n"
	result += fmt.Sprintf("<p>%s</p>\n", html.EscapeString(tableName))
	result += metadataSection(workbook.BackendName(), sheetName, tableRange)

	return mcp.NewToolResultText(result), nil
}
