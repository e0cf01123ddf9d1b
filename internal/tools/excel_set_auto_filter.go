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

type ExcelSetAutoFilterArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	Range            string `zog:"range"`
}

var excelSetAutoFilterArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"range":            z.String().Required(),
})

func AddExcelSetAutoFilterTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_set_auto_filter",
		mcp.WithDescription("Add an auto filter to a range of the Excel sheet"),
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
			mcp.Description("Range the filter applies to, including the header row (e.g., \"A1:D100\")"),
		),
	), WithRecovery(handleSetAutoFilter))
}

func handleSetAutoFilter(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelSetAutoFilterArguments{}
	issues := excelSetAutoFilterArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return setAutoFilter(args.FileAbsolutePath, args.SheetName, args.Range)
}

func setAutoFilter(fileAbsolutePath string, sheetName string, filterRange string) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenWorkbook(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	worksheet, err := workbook.FindSheet(sheetName)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := worksheet.SetAutoFilter(filterRange); err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "<h2>Set Auto Filter</h2>\n"
	result += fmt.Sprintf("<p>%s</p>\n", filterRange)
	result += metadataSection(workbook.BackendName(), sheetName, filterRange)

	return mcp.NewToolResultText(result), nil
}
