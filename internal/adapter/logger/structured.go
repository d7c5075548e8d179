// Package logger configures the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Setup points logrus at stderr with the given level, optionally
// teeing into a log file. Unknown level strings fall back to info.
func Setup(level, filePath string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	if filePath == "" {
		logrus.SetOutput(os.Stderr)
		return
	}
	if dir := filepath.Dir(filePath); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	if file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666); err == nil {
		logrus.SetOutput(io.MultiWriter(os.Stderr, file))
	} else {
		logrus.SetOutput(os.Stderr)
		logrus.WithError(err).Error("Could not open log file")
	}
}
