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

type ExcelExportPDFArguments struct {
	FileAbsolutePath   string `zog:"fileAbsolutePath"`
	OutputAbsolutePath string `zog:"outputAbsolutePath"`
}

var excelExportPDFArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath":   z.String().Test(AbsolutePathTest()).Required(),
	"outputAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
})

func AddExcelExportPDFTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_export_pdf",
		mcp.WithDescription("Export an Excel workbook as a PDF file. Requires a running Excel instance"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("outputAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path of the PDF file to create"),
		),
	), WithRecovery(handleExportPDF))
}

func handleExportPDF(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelExportPDFArguments{}
	issues := excelExportPDFArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return exportPDF(args.FileAbsolutePath, args.OutputAbsolutePath)
}

func exportPDF(fileAbsolutePath string, outputAbsolutePath string) (*mcp.CallToolResult, error) {
	backend, primaryErr := exportPDFWithFile(fileAbsolutePath, outputAbsolutePath)
	if primaryErr != nil {
		bridge, release, err := excel.OpenBridge(fileAbsolutePath)
		if err != nil {
			return nil, primaryErr
		}
		defer release()
		if err := bridge.ExportPDF(outputAbsolutePath); err != nil {
			log.WithField("tool", "excel_export_pdf").Debugf("bridge fallback failed: %v", err)
			return nil, primaryErr
		}
		backend = bridge.BackendName()
	}

	result := "<h2>Exported PDF</h2>\n"
	result += fmt.Sprintf("<p>%s</p>\n", outputAbsolutePath)
	result += metadataSection(backend, "", "")

	return mcp.NewToolResultText(result), nil
}

func exportPDFWithFile(fileAbsolutePath string, outputAbsolutePath string) (string, error) {
	workbook, release, err := excel.OpenWorkbook(fileAbsolutePath)
	if err != nil {
		return "", err
	}
	defer release()

	if err := workbook.ExportPDF(outputAbsolutePath); err != nil {
		return "", err
	}
	return workbook.BackendName(), nil
}
