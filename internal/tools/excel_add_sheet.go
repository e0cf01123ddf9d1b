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

type ExcelAddSheetArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
}

var excelAddSheetArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
})

func AddExcelAddSheetTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_add_sheet",
		mcp.WithDescription("Add a new sheet to an existing Excel workbook"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Name of the sheet to add"),
		),
	), WithRecovery(handleAddSheet))
}

func handleAddSheet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelAddSheetArguments{}
	issues := excelAddSheetArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return addSheet(args.FileAbsolutePath, args.SheetName)
}

func addSheet(fileAbsolutePath string, sheetName string) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenWorkbook(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	if _, err := workbook.AddSheet(sheetName); err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "<h2>Added Sheet</h2>\n"
	result += fmt.Sprintf("<p>%s</p>\n", html.EscapeString(sheetName))
	result += metadataSection(workbook.BackendName(), sheetName, "")

	return mcp.NewToolResultText(result), nil
}
