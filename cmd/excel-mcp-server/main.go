// Package main provides the CLI entry point for excel-mcp-server.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sheetbridge/excel-mcp-server/internal/server"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "excel-mcp-server",
		Short: "MCP server for manipulating Excel workbooks",
		Long: `excel-mcp-server exposes Excel workbook operations as MCP tools
over stdio: reading and writing sheets, tables, charts, pivot tables,
formatting and more.`,
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.New(version).Start()
		},
	}
	// stdout carries the MCP protocol
	rootCmd.SetOut(os.Stderr)

	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("failed to start the server")
		os.Exit(1)
	}
}
