// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package report renders the outcome of a trace.
package report

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/telekom/rawtrace/internal/traceroute"
)

// Format is the output format of a report
type Format string

const (
	// Text streams one line per hop while the trace runs
	Text Format = "text"
	// JSON writes the result as a single JSON document
	JSON Format = "json"
	// YAML writes the result as a single YAML document
	YAML Format = "yaml"
	// Table writes the hops as a table once the trace ended
	Table Format = "table"
)

// ErrUnknownFormat is returned for unsupported output formats
var ErrUnknownFormat = errors.New("unknown output format")

// Formats returns all supported output formats
func Formats() []Format {
	return []Format{Text, JSON, YAML, Table}
}

func (f Format) IsValid() bool {
	return slices.Contains(Formats(), f)
}

// Reporter renders a trace. It observes hops while the trace is running
// and is finished once the trace returned.
type Reporter interface {
	traceroute.Observer
	// Finish writes whatever is left to write. err is the error the trace
	// returned, res may be nil if the trace failed before probing.
	Finish(res *traceroute.Result, err error) error
}

// New returns the reporter for the given format writing to w
func New(f Format, w io.Writer) (Reporter, error) {
	switch f {
	case Text, "":
		return &textReporter{w: w}, nil
	case JSON:
		return &documentReporter{w: w, encode: encodeJSON}, nil
	case YAML:
		return &documentReporter{w: w, encode: encodeYAML}, nil
	case Table:
		return &tableReporter{w: w}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}
