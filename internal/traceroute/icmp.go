// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"net/netip"
)

// icmpListener is an interface for reading inbound ICMP datagrams.
//
//go:generate go tool moq -out icmp_moq.go . icmpListener
type icmpListener interface {
	// Read blocks until a datagram arrives or the deadline of ctx passes.
	// A passed deadline is reported as [context.DeadlineExceeded].
	Read(ctx context.Context) (icmpPacket, error)
	Close() error
}

// packetSender is an interface for injecting fully built IPv4 packets.
//
//go:generate go tool moq -out sender_moq.go . packetSender
type packetSender interface {
	Send(pkt []byte, dst netip.Addr) error
	Close() error
}

// icmpPacket represents a received ICMP datagram.
type icmpPacket struct {
	// raw is the datagram including its IPv4 header.
	raw []byte
	// from is the peer address reported by the kernel.
	from netip.Addr
}

// mtuSize is the read buffer size for inbound datagrams.
const mtuSize = 1500
