// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type logger struct{}

// FileConfig configures the optional rotating log file.
type FileConfig struct {
	// Path is the log file path. An empty path disables file logging.
	Path string `yaml:"path" mapstructure:"path"`
	// MaxSize is the maximum size in megabytes before the file is rotated.
	MaxSize int `yaml:"maxSize" mapstructure:"maxSize"`
	// MaxAge is the maximum number of days to retain rotated files.
	MaxAge int `yaml:"maxAge" mapstructure:"maxAge"`
	// MaxBackups is the maximum number of rotated files to keep.
	MaxBackups int `yaml:"maxBackups" mapstructure:"maxBackups"`
}

// Enabled returns true if a log file path is configured
func (c FileConfig) Enabled() bool {
	return c.Path != ""
}

// NewLogger creates a new slog.Logger instance.
// If handlers are provided, the first handler in the slice is used; otherwise,
// a default handler writing to stderr is used. Stdout is reserved for trace output.
func NewLogger(h ...slog.Handler) *slog.Logger {
	var handler slog.Handler
	if len(h) > 0 {
		handler = h[0]
	} else {
		handler = newHandler()
	}
	return slog.New(handler)
}

// IntoContext embeds the provided slog.Logger into the given context and returns the modified context.
func IntoContext(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, logger{}, log)
}

// FromContext extracts the slog.Logger from the provided context.
// If the context does not have a logger, it returns a new logger with the default configuration.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(logger{}).(*slog.Logger); ok {
			return log
		}
	}
	return NewLogger()
}

// NewFileHandler returns a JSON handler writing into a size-rotated log file.
// The returned closer must be closed once logging is done.
func NewFileHandler(cfg FileConfig, level string) (slog.Handler, io.Closer) {
	w := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSize,
		MaxAge:     cfg.MaxAge,
		MaxBackups: cfg.MaxBackups,
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: true,
		Level:     getLevel(level),
	}), w
}

// NewHandler returns a handler writing to stderr with the given format and level.
// Empty values fall back to the LOG_FORMAT and LOG_LEVEL environment variables.
func NewHandler(format, level string) slog.Handler {
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	return handlerFor(os.Stderr, format, level)
}

// newHandler creates a new slog.Handler configured through the
// LOG_FORMAT and LOG_LEVEL environment variables.
func newHandler() slog.Handler {
	return NewHandler("", "")
}

func handlerFor(w io.Writer, format, level string) slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     getLevel(level),
	}
	if strings.EqualFold(format, "TEXT") {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// getLevel takes a level string and maps it to the corresponding slog.Level
// Returns the level if no mapped level is found it returns info level
func getLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO", "":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
