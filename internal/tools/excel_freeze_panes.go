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

type ExcelFreezePanesArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	Cell             string `zog:"cell"`
}

var excelFreezePanesArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"cell":             z.String().Required(),
})

func AddExcelFreezePanesTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_freeze_panes",
		mcp.WithDescription("Freeze rows and columns above and left of a cell"),
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
			mcp.Description("Top-left cell of the scrollable area (e.g., \"B2\" freezes row 1 and column A). \"A1\" removes the freeze"),
		),
	), WithRecovery(handleFreezePanes))
}

func handleFreezePanes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelFreezePanesArguments{}
	issues := excelFreezePanesArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return freezePanes(args.FileAbsolutePath, args.SheetName, args.Cell)
}

func freezePanes(fileAbsolutePath string, sheetName string, cell string) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenWorkbook(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	worksheet, err := workbook.FindSheet(sheetName)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := worksheet.FreezePanes(cell); err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "<h2>Froze Panes</h2>\n"
	result += fmt.Sprintf("<p>%s</p>\n", cell)
	result += metadataSection(workbook.BackendName(), sheetName, cell)

	return mcp.NewToolResultText(result), nil
}
