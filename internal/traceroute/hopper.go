// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"net/netip"

	"github.com/telekom/rawtrace/internal/discovery"
	"github.com/telekom/rawtrace/internal/helper"
	"github.com/telekom/rawtrace/internal/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// loopback is the responder address of hops that are skipped.
var loopback = netip.AddrFrom4([4]byte{127, 0, 0, 1})

// Observer is notified while a trace is running.
//
//go:generate go tool moq -out observer_moq.go . Observer
type Observer interface {
	// Started is called once the source and destination addresses are known,
	// before the first probe is sent.
	Started(res *Result)
	// Observed is called for every reported hop in TTL order.
	// Skipped loopback hops are not reported.
	Observed(hop Hop)
}

type noopObserver struct{}

func (noopObserver) Started(*Result) {}
func (noopObserver) Observed(Hop)    {}

// hopper drives the TTL sweep of a single trace.
type hopper struct {
	session    *session
	resolver   discovery.Resolver
	otelTracer trace.Tracer
	metrics    *metrics
	observer   Observer
	opts       Options
}

// run probes TTL 1 to MaxHops until the destination answers.
// Reported hops are appended to res. It returns [ErrHopsExhausted]
// if the destination did not answer within MaxHops.
func (h *hopper) run(ctx context.Context, res *Result) error {
	log := logger.FromContext(ctx)
	span := h.session.span(1)
	for ttl := 1; ttl <= h.opts.MaxHops; ttl++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		hop, err := h.hop(ctx, span)
		if err != nil {
			return err
		}
		h.metrics.observeHop(res.Destination, hop)
		span = span.next()

		if hop.Loopback {
			log.DebugContext(ctx, "Ignoring loopback hop", "ttl", hop.TTL, "ignored", h.session.ignored)
			continue
		}

		res.Hops = append(res.Hops, hop)
		h.observer.Observed(hop)
		if hop.Reached {
			res.Reached = true
			return nil
		}
	}
	return ErrHopsExhausted
}

// hop probes a single TTL, retrying the probe while it times out.
func (h *hopper) hop(ctx context.Context, span Span) (Hop, error) {
	ctx, hopSpan := h.otelTracer.Start(ctx, "hop", trace.WithAttributes(
		attribute.Stringer("traceroute.target.address", span.Destination),
		attribute.Int("traceroute.target.ttl", int(span.TTL)),
	))
	defer hopSpan.End()

	var rep reply
	probe := helper.RetryIf(func(ctx context.Context) (err error) {
		rep, err = h.session.probe(ctx, span, h.opts.Timeout)
		return err
	}, h.opts.Retry, isTimeout)

	hop := Hop{TTL: int(span.TTL)}
	err := probe(ctx)
	switch {
	case err == nil:
	case isTimeout(err) && ctx.Err() == nil:
		hop.Timeout = true
		hop.Name = discovery.Placeholder
		hop.Number = hop.TTL - h.session.ignored
		hopSpan.AddEvent("No reply received", trace.WithAttributes(
			attribute.Int("traceroute.target.attempts", h.opts.Retry.Attempts()),
		))
		return hop, nil
	default:
		return Hop{}, wrapError(ctx, err, "failed to probe hop with ttl %d", span.TTL)
	}

	hop.Addr = rep.responder
	hop.Latency = rep.latency
	switch rep.responder {
	case span.Destination:
		hop.Reached = true
	case loopback:
		h.session.ignored++
		hop.Loopback = true
		hopSpan.AddEvent("Loopback hop ignored")
		return hop, nil
	}

	hop.Number = hop.TTL - h.session.ignored
	hop.Name = discovery.ReverseName(ctx, h.resolver, hop.Addr)
	hopSpan.AddEvent("Reply received", trace.WithAttributes(
		attribute.Stringer("traceroute.target.hop", hop),
		attribute.Bool("traceroute.target.reached", hop.Reached),
	))
	hopSpan.SetStatus(codes.Ok, "")
	return hop, nil
}
