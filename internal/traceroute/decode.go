// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"fmt"
	"net/netip"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

// protocolICMP is the IANA protocol number of ICMP for IPv4.
const protocolICMP = 1

// decodeResponder returns the source address of the IPv4 header at the start of raw.
// Neither the header checksum nor the carried ICMP message are validated.
func decodeResponder(raw []byte) (netip.Addr, error) {
	h, err := ipv4.ParseHeader(raw)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("failed to parse IPv4 header: %w", err)
	}

	addr, ok := netip.AddrFromSlice(h.Src.To4())
	if !ok {
		return netip.Addr{}, fmt.Errorf("invalid source address: %v", h.Src)
	}
	return addr, nil
}

// matchReply reports whether raw answers a probe sent with the given identification.
// Time Exceeded messages must quote an IPv4 header carrying id, Echo Replies
// must carry id as echo identifier. Everything else is rejected.
func matchReply(raw []byte, id uint16) bool {
	h, err := ipv4.ParseHeader(raw)
	if err != nil || h.Protocol != protocolICMP || h.Len > len(raw) {
		return false
	}

	msg, err := icmp.ParseMessage(protocolICMP, raw[h.Len:])
	if err != nil {
		return false
	}

	switch msg.Type {
	case ipv4.ICMPTypeTimeExceeded:
		body, ok := msg.Body.(*icmp.TimeExceeded)
		if !ok {
			return false
		}
		quoted, err := ipv4.ParseHeader(body.Data)
		if err != nil {
			return false
		}
		return quoted.ID == int(id)
	case ipv4.ICMPTypeEchoReply:
		body, ok := msg.Body.(*icmp.Echo)
		if !ok {
			return false
		}
		return body.ID == int(id)
	default:
		return false
	}
}
