// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"errors"
)

var (
	// ErrInvalidTarget is returned when the target is missing its destination or interface.
	ErrInvalidTarget = errors.New("invalid trace target")
	// ErrInvalidOptions is returned when the trace options fail validation.
	ErrInvalidOptions = errors.New("invalid trace options")
	// ErrInvalidSpan is returned when a probe cannot be built from a span.
	ErrInvalidSpan = errors.New("invalid trace span")
	// ErrInterfaceLookup is returned when the networking interface cannot be found
	// or has no IPv4 address.
	ErrInterfaceLookup = errors.New("cannot find networking interface")
	// ErrHostnameResolution is returned when the destination hostname has no IPv4 address.
	ErrHostnameResolution = errors.New("unable to resolve destination host")
	// ErrSocketCreation is returned when a raw socket cannot be created.
	// This typically occurs when the process lacks NET_RAW capabilities.
	ErrSocketCreation = errors.New("error creating raw socket")
	// ErrSocketOption is returned when a raw socket option cannot be set.
	ErrSocketOption = errors.New("error setting socket options")
	// ErrHopsExhausted is returned when the destination did not answer within the maximum number of hops.
	ErrHopsExhausted = errors.New("destination not reached")
)

// errNoDeadline is returned by listeners when a read is attempted without a deadline.
var errNoDeadline = errors.New("no deadline set for ICMP read")

// isTimeout checks if the error means that no reply arrived in time,
// which is the only error a hop is retried for.
func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// IsFatal reports whether err aborted the trace before any hop could be probed.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInvalidTarget) ||
		errors.Is(err, ErrInvalidOptions) ||
		errors.Is(err, ErrInterfaceLookup) ||
		errors.Is(err, ErrHostnameResolution) ||
		errors.Is(err, ErrSocketCreation) ||
		errors.Is(err, ErrSocketOption)
}
