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

type ExcelSetPageSetupArguments struct {
	FileAbsolutePath string   `zog:"fileAbsolutePath"`
	SheetName        string   `zog:"sheetName"`
	Orientation      string   `zog:"orientation"`
	PaperSize        string   `zog:"paperSize"`
	MarginLeft       *float64 `zog:"marginLeft"`
	MarginRight      *float64 `zog:"marginRight"`
	MarginTop        *float64 `zog:"marginTop"`
	MarginBottom     *float64 `zog:"marginBottom"`
	MarginHeader     *float64 `zog:"marginHeader"`
	MarginFooter     *float64 `zog:"marginFooter"`
}

var excelSetPageSetupArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"orientation":      z.String(),
	"paperSize":        z.String(),
	"marginLeft":       z.Ptr(z.Float64().GTE(0)),
	"marginRight":      z.Ptr(z.Float64().GTE(0)),
	"marginTop":        z.Ptr(z.Float64().GTE(0)),
	"marginBottom":     z.Ptr(z.Float64().GTE(0)),
	"marginHeader":     z.Ptr(z.Float64().GTE(0)),
	"marginFooter":     z.Ptr(z.Float64().GTE(0)),
})

func AddExcelSetPageSetupTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_set_page_setup",
		mcp.WithDescription("Configure page layout and margins of the Excel sheet for printing"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Sheet name in the Excel file"),
		),
		mcp.WithString("orientation",
			mcp.Description("Page orientation: portrait or landscape"),
		),
		mcp.WithString("paperSize",
			mcp.Description("Paper size: letter, legal, a3, a4, a5"),
		),
		mcp.WithNumber("marginLeft",
			mcp.Description("Left margin in inches"),
		),
		mcp.WithNumber("marginRight",
			mcp.Description("Right margin in inches"),
		),
		mcp.WithNumber("marginTop",
			mcp.Description("Top margin in inches"),
		),
		mcp.WithNumber("marginBottom",
			mcp.Description("Bottom margin in inches"),
		),
		mcp.WithNumber("marginHeader",
			mcp.Description("Header margin in inches"),
		),
		mcp.WithNumber("marginFooter",
			mcp.Description("Footer margin in inches"),
		),
	), WithRecovery(handleSetPageSetup))
}

func handleSetPageSetup(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelSetPageSetupArguments{}
	issues := excelSetPageSetupArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return setPageSetup(args)
}

func setPageSetup(args ExcelSetPageSetupArguments) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenWorkbook(args.FileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	worksheet, err := workbook.FindSheet(args.SheetName)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	config := excel.PageSetupConfig{
		Orientation: args.Orientation,
		PaperSize:   args.PaperSize,
		Left:        args.MarginLeft,
		Right:       args.MarginRight,
		Top:         args.MarginTop,
		Bottom:      args.MarginBottom,
		Header:      args.MarginHeader,
		Footer:      args.MarginFooter,
	}
	if err := worksheet.SetPageSetup(config); err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "<h2>Set Page Setup</h2>\n"
	result += fmt.Sprintf("<p>orientation=%s paperSize=%s</p>\n", args.Orientation, args.PaperSize)
	result += metadataSection(workbook.BackendName(), args.SheetName, "")

	return mcp.NewToolResultText(result), nil
}
