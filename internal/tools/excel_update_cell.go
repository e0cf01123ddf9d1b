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

type ExcelUpdateCellArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	Cell             string `zog:"cell"`
}

var excelUpdateCellArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"cell":             z.String().Required(),
})

func AddExcelUpdateCellTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_update_cell",
		mcp.WithDescription("Update a single cell of the Excel sheet"),
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
			mcp.Description("Cell to update (e.g., \"B5\")"),
		),
		mcp.WithString("value",
			mcp.Required(),
			mcp.Description("Value to write. If the value is a formula, it should start with \"=\""),
		),
	), WithRecovery(handleUpdateCell))
}

func handleUpdateCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelUpdateCellArguments{}
	issues := excelUpdateCellArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	// the value can be a string, number, boolean or null
	value := request.GetArguments()["value"]

	return updateCell(args.FileAbsolutePath, args.SheetName, args.Cell, value)
}

func updateCell(fileAbsolutePath string, sheetName string, cell string, value any) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenWorkbook(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	if _, _, err := excel.ParseCellRef(cell); err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	worksheet, err := workbook.FindSheet(sheetName)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	wroteFormula := false
	if cellStr, ok := value.(string); ok && isFormula(cellStr) {
		err = worksheet.SetFormula(cell, cellStr)
		wroteFormula = true
	} else {
		err = worksheet.SetValue(cell, value)
	}
	if err != nil {
		return nil, err
	}

	if err := workbook.Save(); err != nil {
		return nil, err
	}

	var written string
	if wroteFormula {
		written, err = worksheet.GetFormula(cell)
	} else {
		written, err = worksheet.GetValue(cell)
	}
	if err != nil {
		return nil, err
	}

	result := "<h2>Updated Cell</h2>\n"
	result += fmt.Sprintf("<p>%s = %s</p>\n", cell, html.EscapeString(written))
	result += metadataSection(workbook.BackendName(), sheetName, cell)

	return mcp.NewToolResultText(result), nil
}
