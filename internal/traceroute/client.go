// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"errors"
	"fmt"
	"net/netip"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/rawtrace/internal/discovery"
	"github.com/telekom/rawtrace/internal/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	_ Client = (*genericClient)(nil)
)

// Client is able to run a traceroute to a target.
//
//go:generate go tool moq -out client_moq.go . Client
type Client interface {
	// Run executes the traceroute for the given target with the specified options.
	// The observer is notified about every reported hop while the trace runs.
	// The returned Result is populated as far as the trace got, also when an error is returned.
	Run(ctx context.Context, target Target, opts *Options, obs Observer) (*Result, error)
	// GetCollectors returns the metric collectors updated by Run.
	GetCollectors() []prometheus.Collector
}

type genericClient struct {
	interfaceAddr func(name string) (netip.Addr, error)
	resolver      discovery.Resolver
	openSession   func(src, dst netip.Addr, match MatchMode) (*session, error)
	metrics       metrics
}

// NewClient creates a client sending raw probes from the given networking interface.
// It requires NET_RAW capabilities to run a trace.
func NewClient() Client {
	return &genericClient{
		interfaceAddr: discovery.InterfaceAddr,
		resolver:      discovery.NewResolver(),
		openSession:   openSession,
		metrics:       newMetrics(),
	}
}

func (c *genericClient) Run(ctx context.Context, target Target, opts *Options, obs Observer) (*Result, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if opts == nil {
		o := DefaultOptions()
		opts = &o
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	if obs == nil {
		obs = noopObserver{}
	}

	otelTracer := trace.SpanFromContext(ctx).TracerProvider().Tracer("traceroute.genericClient")
	ctx, sp := otelTracer.Start(ctx, "Run", trace.WithAttributes(
		attribute.String("traceroute.target.host", target.Host),
		attribute.String("traceroute.target.interface", target.Interface),
		attribute.Int("traceroute.options.max_hops", opts.MaxHops),
		attribute.Stringer("traceroute.options.timeout", opts.Timeout),
		attribute.String("traceroute.options.match", string(opts.Match)),
	))
	defer sp.End()
	log := logger.FromContext(ctx).With("destination", target.Host, "interface", target.Interface)
	ctx = logger.IntoContext(ctx, log)

	src, err := c.interfaceAddr(target.Interface)
	if err != nil {
		return nil, wrapError(ctx, fmt.Errorf("%w: %w", ErrInterfaceLookup, err), "failed to look up networking interface %s", target.Interface)
	}

	dst, err := discovery.ResolveHost(ctx, c.resolver, target.Host)
	if err != nil {
		return nil, wrapError(ctx, fmt.Errorf("%w: %w", ErrHostnameResolution, err), "failed to resolve %s", target.Host)
	}
	sp.SetAttributes(
		attribute.Stringer("traceroute.source.address", src),
		attribute.Stringer("traceroute.target.address", dst),
	)

	res := &Result{
		Destination:     target.Host,
		DestinationAddr: dst,
		Interface:       target.Interface,
		SourceAddr:      src,
		Hops:            []Hop{},
	}

	sess, err := c.openSession(src, dst, opts.Match)
	if err != nil {
		return nil, wrapError(ctx, err, "failed to open raw sockets")
	}
	defer func() {
		if cErr := sess.Close(); cErr != nil {
			log.ErrorContext(ctx, "Failed to close raw sockets", "error", cErr)
		}
	}()

	log.DebugContext(ctx, "Starting trace", "source", src, "destinationAddr", dst)
	obs.Started(res)

	h := &hopper{
		session:    sess,
		resolver:   c.resolver,
		otelTracer: otelTracer,
		metrics:    &c.metrics,
		observer:   obs,
		opts:       *opts,
	}
	err = h.run(ctx, res)
	res.Ignored = sess.ignored
	c.metrics.setResult(res)
	logHops(ctx, res.Hops)

	switch {
	case errors.Is(err, ErrHopsExhausted):
		sp.AddEvent("Destination not reached", trace.WithAttributes(attribute.Int("traceroute.hops", len(res.Hops))))
		return res, fmt.Errorf("%w: %s after %d hops", ErrHopsExhausted, target.Host, opts.MaxHops)
	case err != nil:
		return res, err
	}

	sp.SetAttributes(attribute.Int("traceroute.hops", len(res.Hops)))
	return res, nil
}

func (c *genericClient) GetCollectors() []prometheus.Collector {
	return c.metrics.GetCollectors()
}
