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

type ExcelSetConditionalFormatArguments struct {
	FileAbsolutePath string `zog:"fileAbsolutePath"`
	SheetName        string `zog:"sheetName"`
	Range            string `zog:"range"`
	RuleType         string `zog:"ruleType"`
	Criteria         string `zog:"criteria"`
	Value            string `zog:"value"`
	Value2           string `zog:"value2"`
	FontColor        string `zog:"fontColor"`
	FillColor        string `zog:"fillColor"`
	BarColor         string `zog:"barColor"`
}

var excelSetConditionalFormatArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"range":            z.String().Required(),
	"ruleType":         z.String().Required(),
	"criteria":         z.String(),
	"value":            z.String(),
	"value2":           z.String(),
	"fontColor":        z.String(),
	"fillColor":        z.String(),
	"barColor":         z.String(),
})

func AddExcelSetConditionalFormatTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_set_conditional_format",
		mcp.WithDescription("Apply a conditional format rule to a range of the Excel sheet"),
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
			mcp.Description("Range the rule applies to (e.g., \"B2:B100\")"),
		),
		mcp.WithString("ruleType",
			mcp.Required(),
			mcp.Description("Rule type: cellValue, colorScale, dataBar, duplicate, unique"),
		),
		mcp.WithString("criteria",
			mcp.Description("Comparison for cellValue rules (e.g., \">\", \"<\", \"==\", \"between\")"),
		),
		mcp.WithString("value",
			mcp.Description("Comparison value for cellValue rules"),
		),
		mcp.WithString("value2",
			mcp.Description("Upper bound when criteria is \"between\""),
		),
		mcp.WithString("fontColor",
			mcp.Description("Font color applied by the rule (e.g., \"#9C0006\")"),
		),
		mcp.WithString("fillColor",
			mcp.Description("Fill color applied by the rule (e.g., \"#FFC7CE\")"),
		),
		mcp.WithString("barColor",
			mcp.Description("Bar color for dataBar rules [default: #638EC6]"),
		),
	), WithRecovery(handleSetConditionalFormat))
}

func handleSetConditionalFormat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelSetConditionalFormatArguments{}
	issues := excelSetConditionalFormatArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return setConditionalFormat(args)
}

func setConditionalFormat(args ExcelSetConditionalFormatArguments) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenWorkbook(args.FileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	worksheet, err := workbook.FindSheet(args.SheetName)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	config := excel.ConditionalFormatConfig{
		Range:     args.Range,
		RuleType:  args.RuleType,
		Criteria:  args.Criteria,
		Value:     args.Value,
		Value2:    args.Value2,
		FontColor: args.FontColor,
		FillColor: args.FillColor,
		BarColor:  args.BarColor,
	}
	if err := worksheet.SetConditionalFormat(config); err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "<h2>Set Conditional Format</h2>\n"
	result += fmt.Sprintf("<p>%s rule on %s</p>\n", args.RuleType, args.Range)
	result += metadataSection(workbook.BackendName(), args.SheetName, args.Range)

	return mcp.NewToolResultText(result), nil
}
