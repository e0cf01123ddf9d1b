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

type ExcelSortRangeArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	Range            string `zog:"range"`
	KeyColumn        string `zog:"keyColumn"`
	Descending       bool   `zog:"descending"`
	HasHeader        bool   `zog:"hasHeader"`
}

var excelSortRangeArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"range":            z.String().Required(),
	"keyColumn":        z.String().Required(),
	"descending":       z.Bool().Default(false),
	"hasHeader":        z.Bool().Default(false),
})

func AddExcelSortRangeTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_sort_range",
		mcp.WithDescription("Sort rows of a range by one of its columns"),
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
			mcp.Description("Range to sort (e.g., \"A1:D100\")"),
		),
		mcp.WithString("keyColumn",
			mcp.Required(),
			mcp.Description("Column letter to sort by. Must be inside the range (e.g., \"B\")"),
		),
		mcp.WithBoolean("descending",
			mcp.Description("Sort in descending order"),
		),
		mcp.WithBoolean("hasHeader",
			mcp.Description("Keep the first row of the range in place"),
		),
	), WithRecovery(handleSortRange))
}

func handleSortRange(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelSortRangeArguments{}
	issues := excelSortRangeArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return sortRange(args)
}

func sortRange(args ExcelSortRangeArguments) (*mcp.CallToolResult, error) {
	backend, primaryErr := sortRangeWithFile(args)
	if primaryErr != nil {
		// a running Excel instance can sort ranges the library cannot,
		// like workbooks locked by another process
		bridgeBackend, bridgeErr := sortRangeWithBridge(args)
		if bridgeErr != nil {
			log.WithField("tool", "excel_sort_range").Debugf("bridge fallback failed: %v", bridgeErr)
			return nil, primaryErr
		}
		backend = bridgeBackend
	}

	result := "<h2>Sorted Range</h2>\n"
	result += fmt.Sprintf("<p>Sorted %s by column %s</p>\n", args.Range, args.KeyColumn)
	result += metadataSection(backend, args.SheetName, args.Range)

	return mcp.NewToolResultText(result), nil
}

func sortRangeWithFile(args ExcelSortRangeArguments) (string, error) {
	workbook, release, err := excel.OpenWorkbook(args.FileAbsolutePath)
	if err != nil {
		return "", err
	}
	defer release()

	worksheet, err := workbook.FindSheet(args.SheetName)
	if err != nil {
		return "", err
	}

	if err := worksheet.SortRange(args.Range, args.KeyColumn, args.Descending, args.HasHeader); err != nil {
		return "", err
	}

	if err := workbook.Save(); err != nil {
		return "", err
	}
	return workbook.BackendName(), nil
}

func sortRangeWithBridge(args ExcelSortRangeArguments) (string, error) {
	bridge, release, err := excel.OpenBridge(args.FileAbsolutePath)
	if err != nil {
		return "", err
	}
	defer release()

	if err := bridge.SortRange(args.SheetName, args.Range, args.KeyColumn, args.Descending, args.HasHeader); err != nil {
		return "", err
	}
	if err := bridge.Save(); err != nil {
		return "", err
	}
	return bridge.BackendName(), nil
}
