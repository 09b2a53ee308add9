// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"github.com/telekom/rawtrace/internal/logger"
	"github.com/telekom/rawtrace/internal/report"
	"github.com/telekom/rawtrace/internal/traceroute"
	"github.com/telekom/rawtrace/pkg/telemetry"
)

type Config struct {
	// Interface is the networking interface the source address is taken from
	Interface string `yaml:"interface" mapstructure:"interface"`
	// Output is the report format
	Output report.Format `yaml:"output" mapstructure:"output"`
	// Trace is the configuration of the traceroute itself
	Trace traceroute.Options `yaml:"trace" mapstructure:"trace"`
	// Log is the configuration for logging
	Log LogConfig `yaml:"log" mapstructure:"log"`
	// Metrics is the configuration for the prometheus textfile
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	// Telemetry is the configuration for the telemetry
	Telemetry telemetry.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// LogConfig is the configuration for logging
type LogConfig struct {
	// Level is one of debug, info, warn or error
	Level string `yaml:"level" mapstructure:"level"`
	// Format is either json or text
	Format string `yaml:"format" mapstructure:"format"`
	// File sends the logs to a rotating file instead of stderr
	File logger.FileConfig `yaml:"file" mapstructure:"file"`
}

// MetricsConfig is the configuration for the prometheus textfile
type MetricsConfig struct {
	// Textfile is the path the metrics are written to once the trace ended
	Textfile string `yaml:"textfile" mapstructure:"textfile"`
	// Runtime adds the go runtime and process collectors
	Runtime bool `yaml:"runtime" mapstructure:"runtime"`
}

// HasTelemetry returns true if the config has telemetry enabled
func (c *Config) HasTelemetry() bool {
	return c.Telemetry.Enabled
}

// HasMetrics returns true if the metrics should be written to a textfile
func (c *Config) HasMetrics() bool {
	return c.Metrics.Textfile != ""
}

// Target returns the trace target for the given destination
func (c *Config) Target(destination string) traceroute.Target {
	return traceroute.Target{Host: destination, Interface: c.Interface}
}
