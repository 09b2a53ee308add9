// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/netip"
	"slices"
	"time"

	"github.com/telekom/rawtrace/internal/discovery"
	"github.com/telekom/rawtrace/internal/helper"
)

const (
	// DefaultMaxHops is the number of TTLs probed before giving up.
	DefaultMaxHops = 30
	// DefaultTimeout is the default time to wait for a reply per attempt.
	DefaultTimeout = 3 * time.Second
	// DefaultInterface is used when no networking interface is given.
	DefaultInterface = "eth0"
)

// MatchMode controls which inbound ICMP datagrams are accepted as the answer for a hop.
type MatchMode string

const (
	// MatchLoose accepts any inbound ICMP datagram as the answer for the current hop.
	MatchLoose MatchMode = "loose"
	// MatchStrict only accepts Time Exceeded messages quoting our probe and
	// Echo Replies carrying our identifier.
	MatchStrict MatchMode = "strict"
)

func (m MatchMode) IsValid() bool {
	return slices.Contains([]MatchMode{MatchLoose, MatchStrict}, m)
}

// Options contains the optional configuration for the traceroute.
type Options struct {
	// Retry is the retry configuration applied when a hop does not answer in time.
	Retry helper.RetryConfig `json:"retry" yaml:"retry" mapstructure:"retry"`
	// MaxHops is the maximum TTL to probe.
	MaxHops int `json:"maxHops" yaml:"maxHops" mapstructure:"maxHops"`
	// Timeout is the time to wait for a reply per attempt.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	// Match is the reply matching mode.
	Match MatchMode `json:"match" yaml:"match" mapstructure:"match"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Retry:   helper.RetryConfig{Count: 2, Delay: 100 * time.Millisecond},
		MaxHops: DefaultMaxHops,
		Timeout: DefaultTimeout,
		Match:   MatchLoose,
	}
}

func (o *Options) Validate() error {
	var err error
	if o.MaxHops < 1 || o.MaxHops > 255 {
		err = errors.Join(err, fmt.Errorf("invalid max hops: %d, must be between 1 and 255", o.MaxHops))
	}
	if o.Timeout <= 0 {
		err = errors.Join(err, fmt.Errorf("invalid timeout: %s, must be greater than 0", o.Timeout))
	}
	if o.Retry.Count < 0 {
		err = errors.Join(err, fmt.Errorf("invalid retry count: %d, must not be negative", o.Retry.Count))
	}
	if o.Retry.Delay < 0 {
		err = errors.Join(err, fmt.Errorf("invalid retry delay: %s, must not be negative", o.Retry.Delay))
	}
	if !o.Match.IsValid() {
		err = errors.Join(err, fmt.Errorf("invalid match mode: %q", o.Match))
	}
	return err
}

// Target represents a target for the traceroute.
type Target struct {
	// Host is the destination hostname or literal IPv4 address.
	Host string `json:"host" yaml:"host" mapstructure:"host"`
	// Interface is the local networking interface the source address is taken from.
	Interface string `json:"interface" yaml:"interface" mapstructure:"interface"`
}

func (t Target) String() string {
	return t.Host
}

func (t Target) Validate() error {
	if t.Host == "" {
		return fmt.Errorf("%w: destination cannot be empty", ErrInvalidTarget)
	}
	if t.Interface == "" {
		return fmt.Errorf("%w: networking interface cannot be empty", ErrInvalidTarget)
	}
	return nil
}

// Span is a single probe: the TTL and the addresses written into the IPv4 header.
type Span struct {
	TTL         uint8
	Source      netip.Addr
	Destination netip.Addr
}

// next returns the span for the following hop.
func (s Span) next() Span {
	return Span{TTL: s.TTL + 1, Source: s.Source, Destination: s.Destination}
}

// Hop is the observation made for a single TTL.
type Hop struct {
	Latency time.Duration `json:"-" yaml:"-"`
	// Addr is the responder address. It is invalid if the hop timed out.
	Addr netip.Addr `json:"addr" yaml:"addr"`
	// Name is the reverse resolved hostname or [discovery.Placeholder].
	Name string `json:"name" yaml:"name"`
	// TTL is the TTL the probe was sent with.
	TTL int `json:"ttl" yaml:"ttl"`
	// Number is the displayed hop number, the TTL minus the loopback hops seen so far.
	Number   int  `json:"number" yaml:"number"`
	Loopback bool `json:"loopback,omitempty" yaml:"loopback,omitempty"`
	Timeout  bool `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Reached  bool `json:"reached" yaml:"reached"`
}

type hopAlias Hop

type hopDocument struct {
	Latency  string `json:"latency" yaml:"latency"`
	hopAlias `yaml:",inline"`
}

func (h Hop) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Latency string `json:"latency"`
		hopAlias
	}{
		Latency:  h.Latency.String(),
		hopAlias: hopAlias(h),
	})
}

func (h Hop) MarshalYAML() (any, error) {
	return hopDocument{Latency: h.Latency.String(), hopAlias: hopAlias(h)}, nil
}

// AddrString returns the responder address or the placeholder for hops without reply.
func (h Hop) AddrString() string {
	if !h.Addr.IsValid() {
		return discovery.Placeholder
	}
	return h.Addr.String()
}

// String renders the hop the way it is printed to the terminal.
func (h Hop) String() string {
	name := h.Name
	if name == "" {
		name = discovery.Placeholder
	}
	return fmt.Sprintf("hop %d - [%s]: %s", h.Number, name, h.AddrString())
}

// Result is the outcome of a traceroute to a single destination.
type Result struct {
	// Destination is the requested destination host.
	Destination string `json:"destination" yaml:"destination"`
	// DestinationAddr is the resolved destination address.
	DestinationAddr netip.Addr `json:"destinationAddr" yaml:"destinationAddr"`
	// Interface is the networking interface the source address was taken from.
	Interface string `json:"interface" yaml:"interface"`
	// SourceAddr is the source address written into each probe.
	SourceAddr netip.Addr `json:"sourceAddr" yaml:"sourceAddr"`
	// Hops holds every reported hop in TTL order. Loopback hops are not included.
	Hops []Hop `json:"hops" yaml:"hops"`
	// Ignored is the number of loopback hops that were skipped.
	Ignored int `json:"ignored" yaml:"ignored"`
	// Reached is true if the destination answered.
	Reached bool `json:"reached" yaml:"reached"`
}

// Last returns the last reported hop, if any.
func (r *Result) Last() (Hop, bool) {
	if r == nil || len(r.Hops) == 0 {
		return Hop{}, false
	}
	return r.Hops[len(r.Hops)-1], true
}
