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

type ExcelAddVBAMacroArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	ModuleName       string `zog:"moduleName"`
	Code             string `zog:"code"`
	RunMacro         string `zog:"runMacro"`
}

var excelAddVBAMacroArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"moduleName":       z.String(),
	"code":             z.String().Min(1).Required(),
	"runMacro":         z.String(),
})

func AddExcelAddVBAMacroTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_add_vba_macro",
		mcp.WithDescription("Add a VBA macro module to an Excel workbook. Requires a running Excel instance with access to the VBA project object model"),
		mcp.WithString("fileAbsolutePath",
			mcp.Required(),
			mcp.Description("Absolute path to the Excel file"),
		),
		mcp.WithString("moduleName",
			mcp.Description("Name of the VBA module to create [default: assigned by Excel]"),
		),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("VBA source code of the module"),
		),
		mcp.WithString("runMacro",
			mcp.Description("Name of a macro to run after the module is added (e.g., \"Module1.Main\")"),
		),
	), WithRecovery(handleAddVBAMacro))
}

func handleAddVBAMacro(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelAddVBAMacroArguments{}
	issues := excelAddVBAMacroArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return addVBAMacro(args)
}

func addVBAMacro(args ExcelAddVBAMacroArguments) (*mcp.CallToolResult, error) {
	backend, primaryErr := addVBAMacroWithFile(args)
	if primaryErr != nil {
		bridgeBackend, bridgeErr := addVBAMacroWithBridge(args)
		if bridgeErr != nil {
			log.WithField("tool", "excel_add_vba_macro").Debugf("bridge fallback failed: %v", bridgeErr)
			return nil, primaryErr
		}
		backend = bridgeBackend
	}

	result := "<h2>Added VBA Macro</h2>\n"
	if args.ModuleName != "" {
		result += fmt.Sprintf("<p>module %s</p>\n", html.EscapeString(args.ModuleName))
	}
	if args.RunMacro != "" {
		result += fmt.Sprintf("<p>ran %s</p>\n", html.EscapeString(args.RunMacro))
	}
	result += metadataSection(backend, "", "")

	return mcp.NewToolResultText(result), nil
}

func addVBAMacroWithFile(args ExcelAddVBAMacroArguments) (string, error) {
	workbook, release, err := excel.OpenWorkbook(args.FileAbsolutePath)
	if err != nil {
		return "", err
	}
	defer release()

	if err := workbook.AddVBAMacro(args.ModuleName, args.Code); err != nil {
		return "", err
	}
	return workbook.BackendName(), nil
}

func addVBAMacroWithBridge(args ExcelAddVBAMacroArguments) (string, error) {
	bridge, release, err := excel.OpenBridge(args.FileAbsolutePath)
	if err != nil {
		return "", err
	}
	defer release()

	if err := bridge.AddVBAMacro(args.ModuleName, args.Code); err != nil {
		return "", err
	}
	if args.RunMacro != "" {
		if err := bridge.RunMacro(args.RunMacro); err != nil {
			return "", err
		}
	}
	if err := bridge.Save(); err != nil {
		return "", err
	}
	return bridge.BackendName(), nil
}
