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

type ExcelScreenCaptureArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	Range            string `zog:"range"`
}

var excelScreenCaptureArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"range":            z.String(),
})

func AddExcelScreenCaptureTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_screen_capture",
		mcp.WithDescription("[Windows only] Take a screenshot of the Excel sheet with pagination."),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("sheetName",
			mcp.Required(),
			mcp.Description("Sheet name in the Excel file"),
		),
		mcp.WithString("range",
			mcp.Description("Range of cells to read in the Excel sheet (e.g., \"A1:C10\"). [default: first paging range]"),
		),
	), WithRecovery(handleScreenCapture))
}

func handleScreenCapture(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelScreenCaptureArguments{}
	issues := excelScreenCaptureArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return captureSheetImage(args.FileAbsolutePath, args.SheetName, args.Range)
}

func captureSheetImage(fileAbsolutePath string, sheetName string, rangeStr string) (*mcp.CallToolResult, error) {
	config, issues := LoadConfig()
	if issues != nil {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}

	bridge, release, err := excel.OpenBridge(fileAbsolutePath)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(fmt.Errorf("failed to open workbook: %w", err).Error()), nil
	}
	defer release()

	// paging ranges come from the saved file so the same ranges are
	// reported by excel_describe_sheets
	workbook, releaseWorkbook, err := excel.OpenWorkbook(fileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer releaseWorkbook()

	worksheet, err := workbook.FindSheet(sheetName)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	pagingStrategy, err := worksheet.GetPagingStrategy(config.EXCEL_MCP_PAGING_CELLS_LIMIT)
	if err != nil {
		return nil, err
	}
	pagingService := excel.NewPagingRangeService(pagingStrategy)

	allRanges := pagingService.GetPagingRanges()
	if len(allRanges) == 0 {
		return imcp.NewToolResultInvalidArgumentError("no range available to read"), nil
	}

	currentRange := rangeStr
	if currentRange == "" && len(allRanges) > 0 {
		currentRange = allRanges[0]
	}
	// Find next paging range if current range matches a paging range
	nextRange := pagingService.FindNextRange(allRanges, currentRange)

	base64image, err := bridge.CapturePicture(sheetName, currentRange)
	if err != nil {
		return nil, fmt.Errorf("failed to copy range to image: %w", err)
	}

	text := "# Metadata\n"
	text += fmt.Sprintf("- backend: %s\n", bridge.BackendName())
	text += fmt.Sprintf("- sheet name: %s\n", sheetName)
	text += fmt.Sprintf("- read range: %s\n", currentRange)
	text += "# Notice\n"
	if nextRange != "" {
		text += "This sheet has more ranges.\n"
		text += "To read the next range, you should specify 'range' argument as follows.\n"
		text += fmt.Sprintf("`{ \"range\": \"%s\" }`", nextRange)
	} else {
		text += "This is the last range or no more ranges available.\n"
	}

	return mcp.NewToolResultImage(
		text,
		base64image,
		"image/png",
	), nil
}
