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

type ExcelAddDataValidationArguments struct {
	FileAbsolutePath string   `zog:"fileAbsolutePath"`
	SheetName        string   `zog:"sheetName"`
	Range            string   `zog:"range"`
	Type             string   `zog:"type"`
	Operator         string   `zog:"operator"`
	Formula1         string   `zog:"formula1"`
	Formula2         string   `zog:"formula2"`
	List             []string `zog:"list"`
	AllowBlank       bool     `zog:"allowBlank"`
	ErrorTitle       string   `zog:"errorTitle"`
	ErrorBody        string   `zog:"errorBody"`
	InputTitle       string   `zog:"inputTitle"`
	InputBody        string   `zog:"inputBody"`
}

var excelAddDataValidationArgumentsSchema = z.Struct(z.Shape{
	"fileAbsolutePath": z.String().Test(AbsolutePathTest()).Required(),
	"sheetName":        z.String().Required(),
	"range":            z.String().Required(),
	"type":             z.String().Required(),
	"operator":         z.String(),
	"formula1":         z.String(),
	"formula2":         z.String(),
	"list":             z.Slice(z.String()),
	"allowBlank":       z.Bool().Default(true),
	"errorTitle":       z.String(),
	"errorBody":        z.String(),
	"inputTitle":       z.String(),
	"inputBody":        z.String(),
})

func AddExcelAddDataValidationTool(server *server.MCPServer) {
	server.AddTool(mcp.NewTool("excel_add_data_validation",
		mcp.WithDescription("Add data validation rules to a range of the Excel sheet"),
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
			mcp.Description("Range the validation applies to (e.g., \"A1:A10\")"),
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Validation type: list, whole, decimal, date, time, textLength"),
		),
		mcp.WithString("operator",
			mcp.Description("Comparison operator for non-list types: between, notBetween, equal, notEqual, greaterThan, lessThan, greaterThanOrEqual, lessThanOrEqual [default: between]"),
		),
		mcp.WithString("formula1",
			mcp.Description("First bound or formula of the validation"),
		),
		mcp.WithString("formula2",
			mcp.Description("Second bound of the validation (between and notBetween)"),
		),
		mcp.WithArray("list",
			mcp.Description("Allowed values for the list type"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithBoolean("allowBlank",
			mcp.Description("Allow blank cells [default: true]"),
		),
		mcp.WithString("errorTitle",
			mcp.Description("Title of the error alert shown on invalid input"),
		),
		mcp.WithString("errorBody",
			mcp.Description("Body of the error alert shown on invalid input"),
		),
		mcp.WithString("inputTitle",
			mcp.Description("Title of the input prompt"),
		),
		mcp.WithString("inputBody",
			mcp.Description("Body of the input prompt"),
		),
	), WithRecovery(handleAddDataValidation))
}

func handleAddDataValidation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := ExcelAddDataValidationArguments{}
	issues := excelAddDataValidationArgumentsSchema.Parse(request.Params.Arguments, &args)
	if len(issues) != 0 {
		return imcp.NewToolResultZogIssueMap(issues), nil
	}
	return addDataValidation(args)
}

func addDataValidation(args ExcelAddDataValidationArguments) (*mcp.CallToolResult, error) {
	workbook, release, err := excel.OpenWorkbook(args.FileAbsolutePath)
	if err != nil {
		return nil, err
	}
	defer release()

	worksheet, err := workbook.FindSheet(args.SheetName)
	if err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	config := excel.DataValidationConfig{
		Range:      args.Range,
		Type:       args.Type,
		Operator:   args.Operator,
		Formula1:   args.Formula1,
		Formula2:   args.Formula2,
		List:       args.List,
		AllowBlank: args.AllowBlank,
		ErrorTitle: args.ErrorTitle,
		ErrorBody:  args.ErrorBody,
		InputTitle: args.InputTitle,
		InputBody:  args.InputBody,
	}
	if err := worksheet.AddDataValidation(config); err != nil {
		return imcp.NewToolResultInvalidArgumentError(err.Error()), nil
	}

	if err := workbook.Save(); err != nil {
		return nil, err
	}

	result := "<h2>Added Data Validation</h2>\n"
	result += fmt.Sprintf("<p>%s validation on %s</p>\n", args.Type, args.Range)
	result += metadataSection(workbook.BackendName(), args.SheetName, args.Range)

	return mcp.NewToolResultText(result), nil
}
