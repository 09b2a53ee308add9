// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"encoding/binary"
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

const (
	// Identification is written into the IPv4 identification field and the
	// ICMP echo identifier of every probe.
	Identification uint16 = 35897

	ipv4HeaderLen = 20
	icmpHeaderLen = 8
	udpHeaderLen  = 8
	// PacketLen is the size of a probe on the wire.
	PacketLen = ipv4HeaderLen + icmpHeaderLen + udpHeaderLen

	// totalLength is the value of the IPv4 total length field. It only accounts
	// for the IPv4 and ICMP headers, the UDP trailer is not included.
	totalLength = ipv4HeaderLen + icmpHeaderLen

	udpSourcePort uint16 = 50000
	udpDestPort   uint16 = 63000

	ipChecksumOffset   = 10
	icmpChecksumOffset = ipv4HeaderLen + 2
	udpChecksumOffset  = ipv4HeaderLen + icmpHeaderLen + 6
)

// hostOrderDestPort is the UDP destination port as it ends up on the wire when it is
// stored in host byte order rather than network byte order.
var hostOrderDestPort = binary.BigEndian.Uint16(binary.NativeEndian.AppendUint16(nil, udpDestPort))

// BuildPacket serializes the probe for span: an IPv4 header, an ICMP echo
// request header and a trailing UDP header, 36 bytes in total.
//
// The layers are laid out without gopacket fixing lengths or checksums, then
// the checksums are filled in: ICMP over the ICMP header, IPv4 over the IPv4
// and ICMP headers, UDP over the UDP header alone.
func BuildPacket(span Span) ([]byte, error) {
	if span.TTL == 0 {
		return nil, fmt.Errorf("%w: ttl must be greater than 0", ErrInvalidSpan)
	}
	if !span.Source.Is4() || !span.Destination.Is4() {
		return nil, fmt.Errorf("%w: source %s and destination %s must be IPv4", ErrInvalidSpan, span.Source, span.Destination)
	}

	src, dst := span.Source.As4(), span.Destination.As4()
	ip := &layers.IPv4{
		Version:  4,
		IHL:      5,
		TOS:      0,
		Length:   totalLength,
		Id:       Identification,
		TTL:      span.TTL,
		Protocol: layers.IPProtocolICMPv4,
		SrcIP:    src[:],
		DstIP:    dst[:],
	}
	icmp := &layers.ICMPv4{
		TypeCode: layers.CreateICMPv4TypeCode(layers.ICMPv4TypeEchoRequest, 0),
		Id:       Identification,
		Seq:      uint16(span.TTL),
	}
	udp := &layers.UDP{
		SrcPort: layers.UDPPort(udpSourcePort),
		DstPort: layers.UDPPort(hostOrderDestPort),
		Length:  udpHeaderLen,
	}

	buf := gopacket.NewSerializeBufferExpectedSize(PacketLen, 0)
	if err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, ip, icmp, udp); err != nil {
		return nil, fmt.Errorf("failed to serialize probe: %w", err)
	}

	pkt := buf.Bytes()
	if len(pkt) != PacketLen {
		return nil, fmt.Errorf("unexpected probe size: %d bytes", len(pkt))
	}

	binary.BigEndian.PutUint16(pkt[icmpChecksumOffset:], Checksum(pkt[ipv4HeaderLen:ipv4HeaderLen+icmpHeaderLen]))
	binary.BigEndian.PutUint16(pkt[ipChecksumOffset:], Checksum(pkt[:totalLength]))
	binary.BigEndian.PutUint16(pkt[udpChecksumOffset:], Checksum(pkt[ipv4HeaderLen+icmpHeaderLen:]))

	return pkt, nil
}
