// Package logger configures the process-wide logrus logger.
//
// The TUI owns the terminal, so log output goes to a file when one is
// configured and is discarded otherwise.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Setup points logrus at the given file. An empty path disables logging.
func Setup(path string) error {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
		DisableColors:   true,
	})

	if path == "" {
		logrus.SetOutput(io.Discard)
		return nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(file)
	return nil
}
