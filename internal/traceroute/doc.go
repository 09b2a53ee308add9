// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package traceroute implements a raw socket IPv4 traceroute.
//
// Every probe is a 36 byte datagram built by [BuildPacket]: an IPv4 header,
// an ICMP echo request header and a trailing UDP header. Probes are sent
// through an IPPROTO_RAW socket with IP_HDRINCL set, one TTL at a time,
// and the first ICMP datagram received on an IPPROTO_ICMP socket is taken
// as the answer for that TTL. With [MatchStrict] only Time Exceeded
// messages quoting our probe and Echo Replies carrying [Identification]
// are accepted.
//
// The sweep stops when the destination itself answers. Hops answered from
// 127.0.0.1 are skipped and do not count towards the displayed hop number.
// Hops that stay silent after all retries are reported with a placeholder.
// If the destination does not answer within [Options.MaxHops], [Client.Run]
// returns [ErrHopsExhausted].
//
// Typical usage:
//
//	client := traceroute.NewClient()
//	opts   := traceroute.DefaultOptions()
//	res, err := client.Run(ctx, traceroute.Target{Host: "example.com", Interface: "eth0"}, &opts, observer)
//
// Sending raw packets requires the NET_RAW capability.
package traceroute
