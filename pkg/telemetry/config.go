// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/telekom/rawtrace/internal/logger"
)

var (
	// ErrMissingURL is returned if an otlp exporter has no collector url
	ErrMissingURL = errors.New("collector url is required for otlp exporters")
	// ErrInvalidURL is returned if the collector url cannot be parsed
	ErrInvalidURL = errors.New("invalid collector url")
	// ErrMissingCert is returned if the configured certificate file does not exist
	ErrMissingCert = errors.New("tls certificate not found")
)

// Config configures where the spans of a trace run are exported to
type Config struct {
	// Enabled turns tracing on. Without it no spans leave the process.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Exporter is one of stdout, grpc or http. Empty disables exporting.
	Exporter Exporter `yaml:"exporter" mapstructure:"exporter"`
	// URL is the collector endpoint, e.g. https://collector:4317
	URL string `yaml:"url" mapstructure:"url"`
	// Token is sent as bearer token to the collector
	Token string `yaml:"token" mapstructure:"token"`
	TLS   TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// TLSConfig configures the connection to the collector
type TLSConfig struct {
	// Enabled switches from plaintext to tls
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// CertPath is a PEM file with the CA of the collector.
	// The system roots are used if empty.
	CertPath string `yaml:"certPath" mapstructure:"certPath"`
}

// Validate checks the exporter settings. A disabled config is always valid.
func (c *Config) Validate(ctx context.Context) error {
	if !c.Enabled {
		return nil
	}
	log := logger.FromContext(ctx)

	if err := c.Exporter.Validate(); err != nil {
		log.ErrorContext(ctx, "Invalid exporter", "error", err)
		return err
	}
	if !c.Exporter.IsExporting() {
		return nil
	}

	var errs []error
	if c.URL == "" {
		errs = append(errs, fmt.Errorf("%w: %q", ErrMissingURL, c.Exporter))
	} else if u, err := url.Parse(c.URL); err != nil || u.Host == "" {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidURL, c.URL))
	}
	if c.TLS.Enabled && c.TLS.CertPath != "" {
		if _, err := os.Stat(c.TLS.CertPath); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrMissingCert, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		log.ErrorContext(ctx, "Invalid telemetry configuration", "exporter", c.Exporter, "error", err)
		return err
	}
	return nil
}
