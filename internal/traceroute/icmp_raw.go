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
	"golang.org/x/sys/unix"
)

var _ icmpListener = (*rawListener)(nil)

// These wrap the socket syscalls so tests can replace them.
var (
	unixSocket            = unix.Socket
	unixSetsockoptInt     = unix.SetsockoptInt
	unixSetsockoptTimeval = unix.SetsockoptTimeval
	unixRecvfrom          = unix.Recvfrom
	unixSendto            = unix.Sendto
	unixClose             = unix.Close
)

// rawListener reads ICMP datagrams from a raw IPPROTO_ICMP socket.
// The kernel hands over every inbound ICMP datagram including its IPv4 header.
// It requires NET_RAW capabilities to be created successfully.
type rawListener struct {
	fd int
}

// newRawListener opens the raw ICMP socket.
func newRawListener() (*rawListener, error) {
	fd, err := unixSocket(unix.AF_INET, unix.SOCK_RAW, unix.IPPROTO_ICMP)
	if err != nil {
		return nil, fmt.Errorf("%w: icmp: %w", ErrSocketCreation, err)
	}
	return &rawListener{fd: fd}, nil
}

// Read receives the next datagram. The deadline of ctx is applied as receive
// timeout on the socket, so a silent hop does not block forever.
func (l *rawListener) Read(ctx context.Context) (icmpPacket, error) {
	log := logger.FromContext(ctx)
	deadline, ok := ctx.Deadline()
	if !ok || deadline.IsZero() {
		return icmpPacket{}, errNoDeadline
	}

	for {
		select {
		case <-ctx.Done():
			return icmpPacket{}, ctx.Err()
		default:
		}

		wait := time.Until(deadline)
		if wait <= 0 {
			return icmpPacket{}, context.DeadlineExceeded
		}
		if err := l.setReadTimeout(wait); err != nil {
			return icmpPacket{}, err
		}

		buf := make([]byte, mtuSize)
		n, from, err := unixRecvfrom(l.fd, buf, 0)
		switch {
		case errors.Is(err, unix.EAGAIN), errors.Is(err, unix.EWOULDBLOCK):
			log.DebugContext(ctx, "No ICMP message received before the deadline")
			return icmpPacket{}, context.DeadlineExceeded
		case errors.Is(err, unix.EINTR):
			continue
		case err != nil:
			return icmpPacket{}, fmt.Errorf("failed to read from ICMP socket: %w", err)
		}

		pkt := icmpPacket{raw: buf[:n]}
		if sa, ok := from.(*unix.SockaddrInet4); ok {
			pkt.from = netip.AddrFrom4(sa.Addr)
		}
		log.DebugContext(ctx, "Received ICMP datagram", "bytes", n, "from", pkt.from)
		return pkt, nil
	}
}

// setReadTimeout sets SO_RCVTIMEO. A zero timeval would block forever,
// so the timeout is at least one microsecond.
func (l *rawListener) setReadTimeout(d time.Duration) error {
	tv := unix.NsecToTimeval(d.Nanoseconds())
	if tv.Sec == 0 && tv.Usec == 0 {
		tv.Usec = 1
	}
	if err := unixSetsockoptTimeval(l.fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
		return fmt.Errorf("%w: SO_RCVTIMEO: %w", ErrSocketOption, err)
	}
	return nil
}

// Close closes the socket.
func (l *rawListener) Close() error {
	return unixClose(l.fd)
}
