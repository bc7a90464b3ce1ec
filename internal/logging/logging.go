// Package logging installs the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/johnwards/colombomap/internal/config"
)

// TimeFormat is used by the text handler.
const TimeFormat = "2006-01-02 15:04:05"

// New builds a logger writing to w. Text output goes through tint, json
// through slog's JSON handler.
func New(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	default:
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  level == slog.LevelDebug,
			TimeFormat: TimeFormat,
			NoColor:    cfg.NoColor,
		})
	}
	return slog.New(handler), nil
}

// Setup installs a stderr logger as the slog default.
func Setup(cfg config.LogConfig) error {
	logger, err := New(cfg, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}
