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

type ExcelSetDefinedNameArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	Name             string `zog:"name"`
	RefersTo         string `zog:"refersTo"`
	Scope            string `zog:"scope"`
}

var excelSetDefinedNameArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"name":             z.String().Min(1).Required(),
	"refersTo":         z.String().Min(1).Required(),
	"scope":            z.String(),
})

func AddExcelSetDefinedNameTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_set_defined_name",
		mcp.WithDescription("Define a named range in an Excel workbook"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name to define (e.g., \"SalesData\")"),
		),
		mcp.WithString("refersTo",
			mcp.Required(),
			mcp.Description("Range the name refers to (e.g., \"Sheet1!$A$1:$D$100\")"),
		),
		mcp.WithString("scope",
			mcp.Description("Sheet name the definition is scoped to [default: workbook]"),
		),
	), WithRecovery(handleSetDefinedName))
}

func handleSetDefinedName(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelSetDefinedNameArguments{}
	issues := excelSetDefinedNameArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return setDefinedName(args.FileAbsolutePath, args.Name, args.RefersTo, args.Scope)
}

func setDefinedName(fileAbsolutePath string, name string, refersTo string, scope string) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenWorkbook(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := workbook.SetDefinedName(name, refersTo, scope); err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "<h2>Set Defined Name</h2>\n"
	result += fmt.Sprintf("<p>%s = %s</p>\n", html.EscapeString(name), html.EscapeString(refersTo))
	result += metadataSection(workbook.BackendName(), scope, refersTo)

	return mcp.NewToolResultText(result), nil
}
