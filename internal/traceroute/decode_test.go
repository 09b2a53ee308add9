// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"net/netip"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

// craftReply wraps msg into an IPv4 datagram sent by from, the way a raw ICMP socket returns it.
func craftReply(t *testing.T, from netip.Addr, proto layers.IPProtocol, msg *icmp.Message) []byte {
	t.Helper()
	body, err := msg.Marshal(nil)
	require.NoError(t, err)

	ip := &layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		Protocol: proto,
		SrcIP:    from.AsSlice(),
		DstIP:    testSource.AsSlice(),
	}
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	require.NoError(t, gopacket.SerializeLayers(buf, opts, ip, gopacket.Payload(body)))
	return buf.Bytes()
}

// quotedProbe returns the first bytes of a probe carrying the given identification,
// as a router quotes it in a Time Exceeded message.
func quotedProbe(t *testing.T, id uint16) []byte {
	t.Helper()
	pkt, err := BuildPacket(Span{TTL: 3, Source: testSource, Destination: testDestination})
	require.NoError(t, err)
	q := append([]byte(nil), pkt[:totalLength]...)
	q[4], q[5] = byte(id>>8), byte(id)
	return q
}

func TestDecodeResponder(t *testing.T) {
	router := netip.MustParseAddr("192.168.1.1")

	t.Run("time exceeded", func(t *testing.T) {
		raw := craftReply(t, router, layers.IPProtocolICMPv4, &icmp.Message{
			Type: ipv4.ICMPTypeTimeExceeded,
			Body: &icmp.TimeExceeded{Data: quotedProbe(t, Identification)},
		})
		got, err := decodeResponder(raw)
		require.NoError(t, err)
		assert.Equal(t, router, got)
	})

	t.Run("short buffer", func(t *testing.T) {
		_, err := decodeResponder([]byte{0x45, 0x00, 0x00})
		assert.Error(t, err)
	})

	t.Run("empty buffer", func(t *testing.T) {
		_, err := decodeResponder(nil)
		assert.Error(t, err)
	})
}

func TestMatchReply(t *testing.T) {
	router := netip.MustParseAddr("10.0.0.1")

	tests := []struct {
		name  string
		proto layers.IPProtocol
		msg   *icmp.Message
		want  bool
	}{
		{
			name:  "time exceeded quoting our probe",
			proto: layers.IPProtocolICMPv4,
			msg: &icmp.Message{
				Type: ipv4.ICMPTypeTimeExceeded,
				Body: &icmp.TimeExceeded{Data: quotedProbe(t, Identification)},
			},
			want: true,
		},
		{
			name:  "time exceeded quoting a foreign probe",
			proto: layers.IPProtocolICMPv4,
			msg: &icmp.Message{
				Type: ipv4.ICMPTypeTimeExceeded,
				Body: &icmp.TimeExceeded{Data: quotedProbe(t, 4711)},
			},
			want: false,
		},
		{
			name:  "echo reply with our identifier",
			proto: layers.IPProtocolICMPv4,
			msg: &icmp.Message{
				Type: ipv4.ICMPTypeEchoReply,
				Body: &icmp.Echo{ID: int(Identification), Seq: 4},
			},
			want: true,
		},
		{
			name:  "echo reply of another pinger",
			proto: layers.IPProtocolICMPv4,
			msg: &icmp.Message{
				Type: ipv4.ICMPTypeEchoReply,
				Body: &icmp.Echo{ID: 1, Seq: 4},
			},
			want: false,
		},
		{
			name:  "destination unreachable",
			proto: layers.IPProtocolICMPv4,
			msg: &icmp.Message{
				Type: ipv4.ICMPTypeDestinationUnreachable,
				Body: &icmp.DstUnreach{Data: quotedProbe(t, Identification)},
			},
			want: false,
		},
		{
			name:  "not carrying icmp",
			proto: layers.IPProtocolUDP,
			msg: &icmp.Message{
				Type: ipv4.ICMPTypeEchoReply,
				Body: &icmp.Echo{ID: int(Identification), Seq: 4},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := craftReply(t, router, tt.proto, tt.msg)
			assert.Equal(t, tt.want, matchReply(raw, Identification))
		})
	}
}

func TestMatchReply_truncated(t *testing.T) {
	raw := craftReply(t, netip.MustParseAddr("10.0.0.1"), layers.IPProtocolICMPv4, &icmp.Message{
		Type: ipv4.ICMPTypeEchoReply,
		Body: &icmp.Echo{ID: int(Identification), Seq: 1},
	})

	assert.False(t, matchReply(raw[:ipv4HeaderLen+2], Identification))
	assert.False(t, matchReply(raw[:10], Identification))
}
