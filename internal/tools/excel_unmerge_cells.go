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

type ExcelUnmergeCellsArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	Range            string `zog:"range"`
}

var excelUnmergeCellsArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"range":            z.String().Required(),
})

func AddExcelUnmergeCellsTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_unmerge_cells",
		mcp.WithDescription("Unmerge a previously merged range of cells"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Sheet name in the Excel file"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("Range to unmerge (e.g., \"A1:C1\")"),
		),
	), WithRecovery(handleUnmergeCells))
}

func handleUnmergeCells(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelUnmergeCellsArguments{}
	issues := excelUnmergeCellsArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return unmergeCells(args.FileAbsolutePath, args.SheetName, args.Range)
}

func unmergeCells(fileAbsolutePath string, sheetName string, mergeRange string) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenWorkbook(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	worksheet, err := workbook.FindSheet(sheetName)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := worksheet.UnmergeCells(mergeRange); err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "<h2>Unmerged Cells</h2>\n"
	result += fmt.Sprintf("<p>%s</p>\n", mergeRange)
	result += metadataSection(workbook.BackendName(), sheetName, mergeRange)

	return mcp.NewToolResultText(result), nil
}
