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

type ExcelFindReplaceArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	Range            string `zog:"range"`
	Find             string `zog:"find"`
	Replace          string `zog:"replace"`
	MatchCase        bool   `zog:"matchCase"`
	MatchEntireCell  bool   `zog:"matchEntireCell"`
}

var excelFindReplaceArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"range":            z.String(),
	"find":             z.String().Min(1).Required(),
	"replace":          z.String(),
	"matchCase":        z.Bool().Default(false),
	"matchEntireCell":  z.Bool().Default(false),
})

func AddExcelFindReplaceTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_find_replace",
		mcp.WithDescription("Find and replace cell values in the Excel sheet"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Sheet name in the Excel file"),
		),
		mcp.WithString("range",
			mcp.Description("Range to search (e.g., \"A1:D100\") [default: used range]"),
		),
		mcp.WithString("find",
			mcp.Required(),
			mcp.Description("Text to find"),
		),
		mcp.WithString("replace",
			mcp.Description("Replacement text [default: empty string]"),
		),
		mcp.WithBoolean("matchCase",
			mcp.Description("Match case when searching"),
		),
		mcp.WithBoolean("matchEntireCell",
			mcp.Description("Replace only cells whose whole value matches"),
		),
	), WithRecovery(handleFindReplace))
}

func handleFindReplace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelFindReplaceArguments{}
	issues := excelFindReplaceArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return findReplace(args)
}

func findReplace(args ExcelFindReplaceArguments) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenWorkbook(args.FileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	worksheet, err := workbook.FindSheet(args.SheetName)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	replaced, err := worksheet.FindReplace(args.Range, args.Find, args.Replace, args.MatchCase, args.MatchEntireCell)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if replaced > 0 {
		if err := workbook.Save(); err != nil {
			return nil, err
		}
	}

	result := "<h2>Find and Replace</h2>\n"
	result += fmt.Sprintf("<p>Replaced %q with %q in %d cell(s)</p>\n", html.EscapeString(args.Find), html.EscapeString(args.Replace), replaced)
	result += metadataSection(workbook.BackendName(), args.SheetName, args.Range)

	return mcp.NewToolResultText(result), nil
}
