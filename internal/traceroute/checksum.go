// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

// Checksum computes the 16-bit one's complement Internet checksum of b.
//
// b is read as big-endian 16-bit words; a trailing odd byte is ignored, so
// callers must pass even-length regions. The carry is folded exactly once,
// which differs from RFC 1071 for sums that produce a second carry.
// The result is meant to be written back in network byte order.
func Checksum(b []byte) uint16 {
	var sum uint32
	for i := 0; i+1 < len(b); i += 2 {
		sum += uint32(b[i])<<8 | uint32(b[i+1])
	}
	sum = (sum & 0xffff) + (sum >> 16)
	return ^uint16(sum)
}
