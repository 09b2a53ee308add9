// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"time"

	"github.com/telekom/rawtrace/internal/logger"
)

// session owns the raw sockets of a single trace and the counters kept across hops.
type session struct {
	sender   packetSender
	listener icmpListener
	// source and destination are written into every probe.
	source      netip.Addr
	destination netip.Addr
	match       MatchMode
	// ignored is the number of loopback hops seen so far.
	ignored int
}

// reply is the accepted answer to a probe.
type reply struct {
	responder netip.Addr
	latency   time.Duration
}

// openSession opens the outbound and inbound raw sockets.
func openSession(src, dst netip.Addr, match MatchMode) (*session, error) {
	sender, err := newRawSender()
	if err != nil {
		return nil, err
	}

	listener, err := newRawListener()
	if err != nil {
		_ = sender.Close()
		return nil, err
	}

	return &session{
		sender:      sender,
		listener:    listener,
		source:      src,
		destination: dst,
		match:       match,
	}, nil
}

// span returns the span for the given TTL.
func (s *session) span(ttl uint8) Span {
	return Span{TTL: ttl, Source: s.source, Destination: s.destination}
}

// probe sends the packet for span and blocks until a reply is accepted or
// timeout passes. In strict mode datagrams that do not answer our probe are
// skipped, otherwise the first decodable datagram is taken.
func (s *session) probe(ctx context.Context, span Span, timeout time.Duration) (reply, error) {
	log := logger.FromContext(ctx)

	pkt, err := BuildPacket(span)
	if err != nil {
		return reply{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	if err = s.sender.Send(pkt, span.Destination); err != nil {
		return reply{}, err
	}
	log.DebugContext(ctx, "Probe sent", "ttl", span.TTL, "destination", span.Destination)

	for {
		in, err := s.listener.Read(ctx)
		if err != nil {
			return reply{}, err
		}

		if s.match == MatchStrict && !matchReply(in.raw, Identification) {
			log.DebugContext(ctx, "Skipping ICMP datagram not answering our probe", "from", in.from)
			continue
		}

		responder, err := decodeResponder(in.raw)
		if err != nil {
			log.DebugContext(ctx, "Skipping undecodable datagram", "from", in.from, "error", err)
			continue
		}

		return reply{responder: responder, latency: time.Since(start)}, nil
	}
}

// Close closes both sockets.
func (s *session) Close() error {
	var err error
	if cErr := s.sender.Close(); cErr != nil {
		err = errors.Join(err, fmt.Errorf("failed to close sender: %w", cErr))
	}
	if cErr := s.listener.Close(); cErr != nil {
		err = errors.Join(err, fmt.Errorf("failed to close listener: %w", cErr))
	}
	return err
}
