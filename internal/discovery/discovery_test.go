// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package discovery

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vishvananda/netlink"
)

func stubNetlink(t *testing.T, links map[string][]netlink.Addr) {
	t.Helper()
	origLink, origAddr := linkByName, addrList
	t.Cleanup(func() {
		linkByName, addrList = origLink, origAddr
	})

	linkByName = func(name string) (netlink.Link, error) {
		if _, ok := links[name]; !ok {
			return nil, errors.New("Link not found")
		}
		return &netlink.Dummy{LinkAttrs: netlink.LinkAttrs{Name: name}}, nil
	}
	addrList = func(link netlink.Link, _ int) ([]netlink.Addr, error) {
		return links[link.Attrs().Name], nil
	}
}

func ipNet(t *testing.T, cidr string) *net.IPNet {
	t.Helper()
	ip, n, err := net.ParseCIDR(cidr)
	require.NoError(t, err)
	n.IP = ip
	return n
}

func TestInterfaceAddr(t *testing.T) {
	stubNetlink(t, map[string][]netlink.Addr{
		"eth0":  {{IPNet: ipNet(t, "10.0.0.5/24")}},
		"eth1":  {{IPNet: ipNet(t, "fe80::1/64")}, {IPNet: ipNet(t, "192.168.1.20/24")}},
		"dummy": {},
	})

	tests := []struct {
		name    string
		iface   string
		want    netip.Addr
		wantErr bool
	}{
		{name: "single address", iface: "eth0", want: netip.MustParseAddr("10.0.0.5")},
		{name: "skips non ipv4", iface: "eth1", want: netip.MustParseAddr("192.168.1.20")},
		{name: "no ipv4 address", iface: "dummy", wantErr: true},
		{name: "unknown interface", iface: "wlan9", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InterfaceAddr(tt.iface)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInterfaceNotFound)
				assert.Contains(t, err.Error(), tt.iface)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveHost(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		lookup   func(ctx context.Context, network, host string) ([]net.IP, error)
		want     netip.Addr
		wantErr  bool
		wantCall bool
	}{
		{
			name:     "ipv4 literal",
			host:     "93.184.216.34",
			want:     netip.MustParseAddr("93.184.216.34"),
			wantCall: false,
		},
		{
			name:     "ipv6 literal",
			host:     "2001:db8::1",
			wantErr:  true,
			wantCall: false,
		},
		{
			name: "first ipv4 record",
			host: "example.com",
			lookup: func(_ context.Context, network, _ string) ([]net.IP, error) {
				assert.Equal(t, "ip4", network)
				return []net.IP{net.ParseIP("93.184.216.34"), net.ParseIP("93.184.216.35")}, nil
			},
			want:     netip.MustParseAddr("93.184.216.34"),
			wantCall: true,
		},
		{
			name: "lookup failure",
			host: "does-not-exist.invalid",
			lookup: func(context.Context, string, string) ([]net.IP, error) {
				return nil, &net.DNSError{Err: "no such host", Name: "does-not-exist.invalid", IsNotFound: true}
			},
			wantErr:  true,
			wantCall: true,
		},
		{
			name: "no records",
			host: "empty.example",
			lookup: func(context.Context, string, string) ([]net.IP, error) {
				return nil, nil
			},
			wantErr:  true,
			wantCall: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &ResolverMock{LookupIPFunc: tt.lookup}

			got, err := ResolveHost(t.Context(), r, tt.host)
			assert.Equal(t, tt.wantCall, len(r.LookupIPCalls()) == 1)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrHostNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReverseName(t *testing.T) {
	tests := []struct {
		name  string
		addr  netip.Addr
		names []string
		err   error
		want  string
	}{
		{"strips trailing dot", netip.MustParseAddr("10.0.0.1"), []string{"gateway.local."}, nil, "gateway.local"},
		{"first name wins", netip.MustParseAddr("10.0.0.1"), []string{"a.example", "b.example"}, nil, "a.example"},
		{"lookup error", netip.MustParseAddr("203.0.113.1"), nil, errors.New("nxdomain"), Placeholder},
		{"no names", netip.MustParseAddr("203.0.113.1"), []string{}, nil, Placeholder},
		{"invalid address", netip.Addr{}, nil, nil, Placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &ResolverMock{
				LookupAddrFunc: func(_ context.Context, addr string) ([]string, error) {
					assert.Equal(t, tt.addr.String(), addr)
					return tt.names, tt.err
				},
			}
			assert.Equal(t, tt.want, ReverseName(t.Context(), r, tt.addr))
		})
	}
}
