// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/telekom/rawtrace/internal/logger"
	"github.com/telekom/rawtrace/internal/report"
	"github.com/telekom/rawtrace/internal/traceroute"
	"github.com/telekom/rawtrace/pkg/config"
	"github.com/telekom/rawtrace/pkg/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// shutdownTimeout bounds flushing the pending spans on exit
const shutdownTimeout = 5 * time.Second

// traceFlags maps the flags of the trace command to their config keys
var traceFlags = map[string]string{
	"timeout":          "trace.timeout",
	"max-hops":         "trace.maxHops",
	"retry-count":      "trace.retry.count",
	"retry-delay":      "trace.retry.delay",
	"match":            "trace.match",
	"output":           "output",
	"metrics-textfile": "metrics.textfile",
	"log-file":         "log.file.path",
	"log-level":        "log.level",
	"log-format":       "log.format",
}

// NewCmdTrace creates the trace command
func NewCmdTrace(version string) *cobra.Command {
	defaults := traceroute.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "trace <destination> [interface]",
		Short: "Trace the path to a destination",
		Long: "Trace the path to a destination hostname or IPv4 address.\n" +
			"Probes are sent with the first IPv4 address of the networking interface\n" +
			"as source address. The interface defaults to " + traceroute.DefaultInterface + ".",
		Example: "  rawtrace trace example.com\n" +
			"  rawtrace trace 93.184.216.34 wlan0 --output table",
		Args: cobra.RangeArgs(1, 2), //nolint:mnd // destination and optional interface
		RunE: runTrace(version),
	}

	f := cmd.Flags()
	f.Duration("timeout", defaults.Timeout, "time to wait for the reply of a hop per attempt")
	f.Int("max-hops", defaults.MaxHops, "maximum number of hops to probe")
	f.Int("retry-count", defaults.Retry.Count, "number of additional attempts for hops that do not answer in time")
	f.Duration("retry-delay", defaults.Retry.Delay, "initial delay between attempts, doubled for each further attempt")
	f.String("match", string(defaults.Match), "reply matching mode, one of loose or strict")
	f.StringP("output", "o", string(report.Text), "output format, one of text, json, yaml or table")
	f.String("metrics-textfile", "", "write prometheus metrics to this .prom file once the trace ended")
	f.String("log-file", "", "write logs to this rotating file instead of stderr")
	f.String("log-level", "", "log level, one of debug, info, warn or error (default is $LOG_LEVEL or info)")
	f.String("log-format", "", "log format, one of json or text (default is $LOG_FORMAT or json)")

	for flag, key := range traceFlags {
		cobra.CheckErr(viper.BindPFlag(key, f.Lookup(flag)))
	}
	viper.SetDefault("interface", traceroute.DefaultInterface)

	return cmd
}

// runTrace is the entry point of the trace command
func runTrace(version string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		// Usage is only printed for argument errors
		cmd.SilenceUsage = true

		cfg := &config.Config{}
		if err := viper.Unmarshal(cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
		if len(args) > 1 {
			cfg.Interface = args[1]
		}

		handler, closer := newLogHandler(cfg.Log)
		if closer != nil {
			defer func() { _ = closer.Close() }()
		}
		ctx := logger.IntoContext(cmd.Context(), logger.NewLogger(handler))
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate(ctx); err != nil {
			return err
		}

		client := traceroute.NewClient()
		cs := client.GetCollectors()
		if cfg.Metrics.Runtime {
			cs = append(cs,
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}
		tel, err := telemetry.New(cfg.Telemetry, version, cs...)
		if err != nil {
			return err
		}

		return run(ctx, cfg, args[0], client, tel, cmd.OutOrStdout())
	}
}

// run traces destination, renders the report to out and writes the metrics textfile.
func run(ctx context.Context, cfg *config.Config, destination string, client traceroute.Client, tel telemetry.Provider, out io.Writer) error {
	log := logger.FromContext(ctx)

	rep, err := report.New(cfg.Output, out)
	if err != nil {
		return err
	}

	if err = tel.InitTracing(ctx); err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if sErr := tel.Shutdown(sctx); sErr != nil {
			log.ErrorContext(ctx, "Failed to shutdown telemetry", "error", sErr)
		}
	}()

	ctx, span := otel.Tracer("rawtrace").Start(ctx, "trace", trace.WithAttributes(
		attribute.String("traceroute.target.host", destination),
		attribute.String("traceroute.target.interface", cfg.Interface),
	))
	defer span.End()

	res, err := client.Run(ctx, cfg.Target(destination), &cfg.Trace, rep)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Trace failed")
	}

	if rErr := rep.Finish(res, err); rErr != nil {
		err = errors.Join(err, rErr)
	}

	if cfg.HasMetrics() {
		if mErr := tel.WriteTextfile(cfg.Metrics.Textfile); mErr != nil {
			log.ErrorContext(ctx, "Failed to write metrics textfile", "error", mErr)
			err = errors.Join(err, mErr)
		}
	}
	return err
}

// newLogHandler returns the rotating file handler if a log file is configured,
// otherwise a handler writing to stderr.
func newLogHandler(cfg config.LogConfig) (slog.Handler, io.Closer) {
	if cfg.File.Enabled() {
		return logger.NewFileHandler(cfg.File, cfg.Level)
	}
	return logger.NewHandler(cfg.Format, cfg.Level), nil
}
