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

type ExcelRenameSheetArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	NewName          string `zog:"newName"`
}

var excelRenameSheetArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"newName":          z.String().Required(),
})

func AddExcelRenameSheetTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_rename_sheet",
		mcp.WithDescription("Rename a sheet of an Excel workbook"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Current name of the sheet"),
		),
		mcp.WithString("newName",
			mcp.Required(),
			mcp.Description("New name of the sheet"),
		),
	), WithRecovery(handleRenameSheet))
}

func handleRenameSheet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelRenameSheetArguments{}
	issues := excelRenameSheetArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return renameSheet(args.FileAbsolutePath, args.SheetName, args.NewName)
}

func renameSheet(fileAbsolutePath string, sheetName string, newName string) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenWorkbook(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := workbook.RenameSheet(sheetName, newName); err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "<h2>Renamed Sheet</h2>\n"
	result += fmt.Sprintf("<p>%s to %s</p>\n", html.EscapeString(sheetName), html.EscapeString(newName))
	result += metadataSection(workbook.BackendName(), newName, "")

	return mcp.NewToolResultText(result), nil
}
