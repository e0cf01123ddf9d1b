package server

import (
	"runtime"

	"github.com/mark3labs/mcp-go/server"

	"github.com/sheetbridge/excel-mcp-server/internal/tools"
)

type ExcelServer struct {
	server *server.MCPServer
}

func New(version string) *ExcelServer {
	s := &ExcelServer{}
	s.server = server.NewMCPServer(
		"excel-mcp-server",
		version,
	)
	tools.AddExcelDescribeSheetsTool(s.server)
	tools.AddExcelReadSheetTool(s.server)
	if runtime.GOOS == "windows" {
		tools.AddExcelScreenCaptureTool(s.server)
	}
	tools.AddExcelWriteToSheetTool(s.server)
	tools.AddExcelUpdateCellTool(s.server)
	tools.AddExcelCreateWorkbookTool(s.server)
	tools.AddExcelAddSheetTool(s.server)
	tools.AddExcelDeleteSheetTool(s.server)
	tools.AddExcelRenameSheetTool(s.server)
	tools.AddExcelCopySheetTool(s.server)
	tools.AddExcelCreateTableTool(s.server)
	tools.AddExcelAddChartTool(s.server)
	tools.AddExcelAddPivotTableTool(s.server)
	tools.AddExcelFormatRangeTool(s.server)
	tools.AddExcelAddDataValidationTool(s.server)
	tools.AddExcelSetConditionalFormatTool(s.server)
	tools.AddExcelSetAutoFilterTool(s.server)
	tools.AddExcelSortRangeTool(s.server)
	tools.AddExcelMergeCellsTool(s.server)
	tools.AddExcelUnmergeCellsTool(s.server)
	tools.AddExcelInsertRowsTool(s.server)
	tools.AddExcelDeleteRowsTool(s.server)
	tools.AddExcelInsertColumnsTool(s.server)
	tools.AddExcelDeleteColumnsTool(s.server)
	tools.AddExcelSetColumnWidthTool(s.server)
	tools.AddExcelSetRowHeightTool(s.server)
	tools.AddExcelFreezePanesTool(s.server)
	tools.AddExcelFindReplaceTool(s.server)
	tools.AddExcelSetPageSetupTool(s.server)
	tools.AddExcelSetDefinedNameTool(s.server)
	tools.AddExcelExportPDFTool(s.server)
	tools.AddExcelAddVBAMacroTool(s.server)
	return s
}

func (s *ExcelServer) Start() error {
	return server.ServeStdio(s.server)
}
