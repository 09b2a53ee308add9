// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("uses the given handler", func(t *testing.T) {
		var buf bytes.Buffer
		h := slog.NewTextHandler(&buf, nil)

		log := NewLogger(h)
		assert.Same(t, h, log.Handler())
	})

	t.Run("falls back to the environment", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("LOG_FORMAT", "TEXT")

		log := NewLogger()
		assert.IsType(t, &slog.TextHandler{}, log.Handler())
		assert.True(t, log.Enabled(t.Context(), slog.LevelDebug))
	})
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := IntoContext(t.Context(), log)
	assert.Same(t, log, FromContext(ctx))

	assert.NotNil(t, FromContext(t.Context()), "a default logger is returned")
	assert.NotNil(t, FromContext(nil)) //nolint:staticcheck // nil context is handled
}

func TestHandlerFor(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		level     string
		wantText  bool
		wantLevel slog.Level
	}{
		{name: "defaults", wantLevel: slog.LevelInfo},
		{name: "text in any case", format: "text", level: "debug", wantText: true, wantLevel: slog.LevelDebug},
		{name: "json", format: "JSON", level: "WARN", wantLevel: slog.LevelWarn},
		{name: "unknown level", format: "TEXT", level: "LOUD", wantText: true, wantLevel: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := handlerFor(&buf, tt.format, tt.level)

			if tt.wantText {
				assert.IsType(t, &slog.TextHandler{}, h)
			} else {
				assert.IsType(t, &slog.JSONHandler{}, h)
			}
			assert.True(t, h.Enabled(t.Context(), tt.wantLevel))
			assert.False(t, h.Enabled(t.Context(), tt.wantLevel-1), "lower levels are dropped")
		})
	}
}

func TestNewHandler(t *testing.T) {
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_LEVEL", "ERROR")

	t.Run("explicit values win over the environment", func(t *testing.T) {
		h := NewHandler("text", "debug")
		assert.IsType(t, &slog.TextHandler{}, h)
		assert.True(t, h.Enabled(t.Context(), slog.LevelDebug))
	})

	t.Run("empty values use the environment", func(t *testing.T) {
		h := NewHandler("", "")
		assert.IsType(t, &slog.JSONHandler{}, h)
		assert.False(t, h.Enabled(t.Context(), slog.LevelWarn))
	})
}

func TestNewFileHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rawtrace.log")
	handler, closer := NewFileHandler(FileConfig{Path: path, MaxSize: 1}, "DEBUG")
	t.Cleanup(func() { _ = closer.Close() })

	NewLogger(handler).Debug("Probe sent", "ttl", 3)

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(b), &entry))
	assert.Equal(t, "Probe sent", entry["msg"])
	assert.Equal(t, "DEBUG", entry["level"])
	assert.InDelta(t, 3, entry["ttl"], 0)
}

func TestFileConfig_Enabled(t *testing.T) {
	assert.False(t, FileConfig{}.Enabled())
	assert.True(t, FileConfig{Path: "/var/log/rawtrace.log"}.Enabled())
}

func TestGetLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"Warn":    slog.LevelWarn,
		"WARNING": slog.LevelWarn,
		"ERROR":   slog.LevelError,
		"TRACE":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, getLevel(in), "level %q", in)
	}
}
