// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/rawtrace/internal/logger"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestWrapError(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.NoError(t, wrapError(t.Context(), nil, "failed to probe hop with ttl %d", 3))
	})

	t.Run("wraps, logs and records", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := logger.IntoContext(t.Context(), slog.New(slog.NewJSONHandler(&buf, nil)))

		recorder := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
		ctx, span := tp.Tracer("test").Start(ctx, "hop")

		cause := errors.New("sendto: operation not permitted")
		err := wrapError(ctx, cause, "failed to probe hop with ttl %d", 3)
		span.End()

		require.ErrorIs(t, err, cause)
		assert.Equal(t, "failed to probe hop with ttl 3: sendto: operation not permitted", err.Error())
		assert.Contains(t, buf.String(), `"msg":"Failed To Probe Hop With Ttl 3"`)

		ended := recorder.Ended()
		require.Len(t, ended, 1)
		assert.Equal(t, codes.Error, ended[0].Status().Code)
		assert.Equal(t, "failed to probe hop with ttl 3", ended[0].Status().Description)
		require.Len(t, ended[0].Events(), 1)
		assert.Equal(t, "exception", ended[0].Events()[0].Name)
	})
}

func TestLogHops(t *testing.T) {
	var buf bytes.Buffer
	ctx := logger.IntoContext(context.Background(), slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	logHops(ctx, []Hop{
		{TTL: 1, Number: 1, Addr: testSource, Name: "gateway.local"},
		{TTL: 2, Number: 2, Addr: testDestination, Name: "*", Reached: true},
	})

	out := buf.String()
	assert.Contains(t, out, "hop 1 - [gateway.local]: 10.0.0.5")
	assert.Contains(t, out, "hop 2 - [*]: 93.184.216.34")
	assert.Contains(t, out, "reached=true")
}
