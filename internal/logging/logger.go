// Package logging builds the application logger: a charmbracelet/log
// handler behind the standard slog front end.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"

	"github.com/llehouerou/wavelet/internal/config"
)

const defaultLogFile = "wavelet/wavelet.log"

// New returns a logger writing to w with the configured level and format.
func New(w io.Writer, cfg config.LogConfig) *slog.Logger {
	var formatter log.Formatter
	switch cfg.Format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		formatter = log.TextFormatter
	}

	level := log.InfoLevel
	switch cfg.Level {
	case "debug":
		level = log.DebugLevel
	case "warn":
		level = log.WarnLevel
	case "error":
		level = log.ErrorLevel
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "wavelet",
		Formatter:       formatter,
		Level:           level,
	})

	return slog.New(handler)
}

// Open creates the log file (cfg.File, or the XDG state default) and
// returns a logger writing to it. The terminal belongs to the UI, so
// nothing is logged to stderr. The caller closes the returned file.
func Open(cfg config.LogConfig) (*slog.Logger, io.Closer, error) {
	path := cfg.File
	if path == "" {
		var err error
		path, err = xdg.StateFile(defaultLogFile)
		if err != nil {
			return nil, nil, err
		}
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	logger := New(f, cfg)
	logger.Info("Logger initialized", "time", time.Now().Format(time.RFC3339))
	return logger, f, nil
}
