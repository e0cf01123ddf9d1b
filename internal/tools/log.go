package tools

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = newLogger()

// newLogger writes to stderr so stdout stays reserved for the MCP
// stdio transport.
func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(os.Getenv("EXCEL_MCP_LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	return l
}
