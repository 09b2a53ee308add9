// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"google.golang.org/grpc/credentials"
)

// Exporter is the span exporter used for tracing
type Exporter string

const (
	// NOOP drops all spans
	NOOP Exporter = ""
	// STDOUT writes spans as JSON. Stdout carries the trace output, so spans go to stderr.
	STDOUT Exporter = "stdout"
	// GRPC exports spans to an OTLP collector via gRPC
	GRPC Exporter = "grpc"
	// HTTP exports spans to an OTLP collector via HTTP
	HTTP Exporter = "http"
)

// ErrInvalidExporter is returned for unsupported exporters
var ErrInvalidExporter = errors.New("unsupported exporter")

// stdoutWriter is where the stdout exporter writes to.
var stdoutWriter io.Writer = os.Stderr

func (e Exporter) String() string {
	if e == NOOP {
		return "noop"
	}
	return string(e)
}

// Validate checks if the exporter is supported
func (e Exporter) Validate() error {
	if !slices.Contains([]Exporter{NOOP, STDOUT, GRPC, HTTP}, e) {
		return fmt.Errorf("%w: %q", ErrInvalidExporter, string(e))
	}
	return nil
}

// IsExporting returns true if the exporter sends spans to a collector
func (e Exporter) IsExporting() bool {
	return e == GRPC || e == HTTP
}

// Create creates a new span exporter for the given configuration
func (e Exporter) Create(ctx context.Context, config *Config) (sdktrace.SpanExporter, error) {
	switch e {
	case NOOP:
		return tracetest.NewNoopExporter(), nil
	case STDOUT:
		return stdouttrace.New(stdouttrace.WithWriter(stdoutWriter))
	case GRPC:
		return newGRPCExporter(ctx, config)
	case HTTP:
		return newHTTPExporter(ctx, config)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidExporter, string(e))
	}
}

func newGRPCExporter(ctx context.Context, config *Config) (sdktrace.SpanExporter, error) {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpointURL(config.URL)}
	if config.Token != "" {
		opts = append(opts, otlptracegrpc.WithHeaders(authHeader(config.Token)))
	}

	if !config.TLS.Enabled {
		opts = append(opts, otlptracegrpc.WithInsecure())
		return otlptracegrpc.New(ctx, opts...)
	}

	creds := credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	if config.TLS.CertPath != "" {
		var err error
		creds, err = credentials.NewClientTLSFromFile(config.TLS.CertPath, "")
		if err != nil {
			return nil, fmt.Errorf("failed to load tls certificate: %w", err)
		}
	}
	opts = append(opts, otlptracegrpc.WithTLSCredentials(creds))
	return otlptracegrpc.New(ctx, opts...)
}

func newHTTPExporter(ctx context.Context, config *Config) (sdktrace.SpanExporter, error) {
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpointURL(config.URL)}
	if config.Token != "" {
		opts = append(opts, otlptracehttp.WithHeaders(authHeader(config.Token)))
	}

	if !config.TLS.Enabled {
		opts = append(opts, otlptracehttp.WithInsecure())
		return otlptracehttp.New(ctx, opts...)
	}

	tlsConfig, err := loadTLSConfig(config.TLS.CertPath)
	if err != nil {
		return nil, err
	}
	opts = append(opts, otlptracehttp.WithTLSClientConfig(tlsConfig))
	return otlptracehttp.New(ctx, opts...)
}

// loadTLSConfig returns a tls config trusting the certificate at path in
// addition to the system roots.
func loadTLSConfig(path string) (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if path == "" {
		return cfg, nil
	}

	pem, err := os.ReadFile(path) // #nosec G304 // path is set by the operator
	if err != nil {
		return nil, fmt.Errorf("failed to load tls certificate: %w", err)
	}

	pool, err := x509.SystemCertPool()
	if err != nil {
		pool = x509.NewCertPool()
	}
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("failed to load tls certificate: no certificates found in %s", path)
	}
	cfg.RootCAs = pool
	return cfg, nil
}

func authHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
