// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package discovery resolves the local source address of a network
// interface and the addresses and names of remote hosts.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"

	"github.com/vishvananda/netlink"
)

// Placeholder is reported instead of a hostname when a reverse lookup fails.
const Placeholder = "*"

var (
	// ErrInterfaceNotFound is returned when the interface does not exist or has no IPv4 address.
	ErrInterfaceNotFound = errors.New("networking interface not found")
	// ErrHostNotFound is returned when a hostname has no IPv4 address records.
	ErrHostNotFound = errors.New("host not found")
)

// Resolver performs forward and reverse DNS lookups.
// [net.Resolver] satisfies this interface.
//
//go:generate go tool moq -out resolver_moq.go . Resolver
type Resolver interface {
	LookupIP(ctx context.Context, network, host string) ([]net.IP, error)
	LookupAddr(ctx context.Context, addr string) ([]string, error)
}

// NewResolver returns the system resolver.
func NewResolver() Resolver {
	return net.DefaultResolver
}

// linkByName and addrList wrap the netlink calls so tests can replace them.
var (
	linkByName = netlink.LinkByName
	addrList   = netlink.AddrList
)

// InterfaceAddr returns the first IPv4 address bound to the named interface.
func InterfaceAddr(name string) (netip.Addr, error) {
	link, err := linkByName(name)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %s: %w", ErrInterfaceNotFound, name, err)
	}

	addrs, err := addrList(link, netlink.FAMILY_V4)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %s: listing addresses: %w", ErrInterfaceNotFound, name, err)
	}

	for _, a := range addrs {
		if a.IPNet == nil {
			continue
		}
		if ip, ok := netip.AddrFromSlice(a.IP.To4()); ok {
			return ip, nil
		}
	}
	return netip.Addr{}, fmt.Errorf("%w: %s has no IPv4 address", ErrInterfaceNotFound, name)
}

// ResolveHost returns the first IPv4 address of host.
// Literal addresses are returned as they are.
func ResolveHost(ctx context.Context, r Resolver, host string) (netip.Addr, error) {
	if ip, err := netip.ParseAddr(host); err == nil {
		if !ip.Is4() {
			return netip.Addr{}, fmt.Errorf("%w: %s is not an IPv4 address", ErrHostNotFound, host)
		}
		return ip, nil
	}

	ips, err := r.LookupIP(ctx, "ip4", host)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %s: %w", ErrHostNotFound, host, err)
	}
	for _, ip := range ips {
		if addr, ok := netip.AddrFromSlice(ip.To4()); ok {
			return addr, nil
		}
	}
	return netip.Addr{}, fmt.Errorf("%w: %s has no IPv4 records", ErrHostNotFound, host)
}

// ReverseName returns the first name registered for addr, without the
// trailing dot. It returns [Placeholder] if the lookup fails.
func ReverseName(ctx context.Context, r Resolver, addr netip.Addr) string {
	if !addr.IsValid() {
		return Placeholder
	}

	names, err := r.LookupAddr(ctx, addr.String())
	if err != nil || len(names) == 0 {
		return Placeholder
	}

	name := strings.TrimSuffix(names[0], ".")
	if name == "" {
		return Placeholder
	}
	return name
}
