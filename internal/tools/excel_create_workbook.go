package tools

import (
	"context"
	"fmt"
	"os"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sheetbridge/excel-mcp-server/internal/excel"
	imcp "github.com/sheetbridge/excel-mcp-server/internal/mcp"
)

type ExcelCreateWorkbookArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	Overwrite        bool   `zog:"overwrite"`
}

var excelCreateWorkbookArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String(),
	"overwrite":        z.Bool().Default(false),
})

func AddExcelCreateWorkbookTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_create_workbook",
		mcp.WithDescription("Create a new Excel workbook"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path for the new Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Description("Name of the first sheet [default: Sheet1]"),
		),
		mcp.WithBoolean("overwrite",
			mcp.Description("Overwrite the file if it already exists"),
		),
	), WithRecovery(handleCreateWorkbook))
}

func handleCreateWorkbook(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelCreateWorkbookArguments{}
	issues := excelCreateWorkbookArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return createWorkbook(args.FileAbsolutePath, args.SheetName, args.Overwrite)
}

func createWorkbook(fileAbsolutePath string, sheetName string, overwrite bool) (*mcp.CallToolResult, error) {
	if _, err := os.Stat(fileAbsolutePath); err == nil && !overwrite {
		return imcp.NewToolResultInvalidArgumentError(fmt.Sprintf("file already exists: %s", fileAbsolutePath)), nil
	}

	workbook, release, err := excel.NewWorkbook(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	if sheetName != "" && sheetName != "Sheet1" {
		if err := workbook.RenameSheet("Sheet1", sheetName); err != nil {
			return nil, err
		}
	}

	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "<h2>Created Workbook</h2>\n"
	result += fmt.Sprintf("<p>%s</p>\n", fileAbsolutePath)
	result += metadataSection(workbook.BackendName(), workbook.SheetNames()[0], "")

	return mcp.NewToolResultText(result), nil
}
