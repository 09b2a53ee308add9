// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/telekom/rawtrace/internal/logger"
)

// Validate validates the startup config
func (c *Config) Validate(ctx context.Context) (err error) {
	log := logger.FromContext(ctx)
	if !isInterfaceName(c.Interface) {
		log.Error("The networking interface name is invalid", "interface", c.Interface)
		err = errors.Join(err, fmt.Errorf("%w: %q", ErrInvalidInterface, c.Interface))
	}

	if !c.Output.IsValid() {
		log.Error("The output format is unknown", "output", c.Output)
		err = errors.Join(err, fmt.Errorf("%w: %q", ErrInvalidOutput, c.Output))
	}

	if vErr := c.Trace.Validate(); vErr != nil {
		log.Error("The trace configuration is invalid")
		err = errors.Join(err, vErr)
	}

	if vErr := c.Log.Validate(); vErr != nil {
		log.Error("The log configuration is invalid")
		err = errors.Join(err, vErr)
	}

	if vErr := c.Metrics.Validate(); vErr != nil {
		log.Error("The metrics configuration is invalid")
		err = errors.Join(err, vErr)
	}

	if c.HasTelemetry() {
		if vErr := c.Telemetry.Validate(ctx); vErr != nil {
			log.Error("The telemetry configuration is invalid")
			err = errors.Join(err, vErr)
		}
	}

	if err != nil {
		return fmt.Errorf("validation of configuration failed: %w", err)
	}
	return nil
}

// Validate validates the log configuration
func (c *LogConfig) Validate() error {
	var err error
	if !slices.Contains([]string{"", "debug", "info", "warn", "warning", "error"}, strings.ToLower(c.Level)) {
		err = errors.Join(err, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Level))
	}
	if !slices.Contains([]string{"", "json", "text"}, strings.ToLower(c.Format)) {
		err = errors.Join(err, fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Format))
	}
	return err
}

// Validate validates the metrics configuration.
// The node exporter textfile collector only picks up *.prom files.
func (c *MetricsConfig) Validate() error {
	if c.Textfile == "" {
		return nil
	}
	if filepath.Ext(c.Textfile) != ".prom" {
		return fmt.Errorf("%w: %q must have the .prom extension", ErrInvalidMetricsTextfile, c.Textfile)
	}
	return nil
}

// isInterfaceName checks if the given string is a valid linux interface name
func isInterfaceName(s string) bool {
	re := regexp.MustCompile(`^[^\s/:]{1,15}$`)
	return re.MatchString(s) && s != "." && s != ".."
}
