// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"fmt"
	"net/netip"

	"golang.org/x/sys/unix"
)

var _ packetSender = (*rawSender)(nil)

// rawSender injects probes through a raw IPPROTO_RAW socket with IP_HDRINCL set,
// so the kernel sends the IPv4 header we built instead of prepending its own.
type rawSender struct {
	fd int
}

// newRawSender opens the raw IP socket and enables header inclusion.
func newRawSender() (*rawSender, error) {
	fd, err := unixSocket(unix.AF_INET, unix.SOCK_RAW, unix.IPPROTO_RAW)
	if err != nil {
		return nil, fmt.Errorf("%w: ip: %w", ErrSocketCreation, err)
	}

	if err := unixSetsockoptInt(fd, unix.IPPROTO_IP, unix.IP_HDRINCL, 1); err != nil {
		_ = unixClose(fd)
		return nil, fmt.Errorf("%w: IP_HDRINCL: %w", ErrSocketOption, err)
	}
	return &rawSender{fd: fd}, nil
}

// Send writes pkt to dst.
func (s *rawSender) Send(pkt []byte, dst netip.Addr) error {
	if !dst.Is4() {
		return fmt.Errorf("invalid destination address: %s", dst)
	}
	if err := unixSendto(s.fd, pkt, 0, &unix.SockaddrInet4{Addr: dst.As4()}); err != nil {
		return fmt.Errorf("failed to send probe: %w", err)
	}
	return nil
}

// Close closes the socket.
func (s *rawSender) Close() error {
	return unixClose(s.fd)
}
