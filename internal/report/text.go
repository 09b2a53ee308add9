// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"io"

	"github.com/telekom/rawtrace/internal/traceroute"
)

var _ Reporter = (*textReporter)(nil)

// textReporter prints the classic traceroute lines as they happen.
type textReporter struct {
	w io.Writer
	// err is the first write error
	err error
}

func (r *textReporter) Started(res *traceroute.Result) {
	r.printf("Using networking interface %s\n", res.Interface)
	r.printf("tracing down '%s' on '%s'..\n", res.Destination, res.DestinationAddr)
}

func (r *textReporter) Observed(hop traceroute.Hop) {
	r.printf("%s\n", hop)
}

// Finish prints the completion line if the destination was reached.
// Failures are left to the caller.
func (r *textReporter) Finish(res *traceroute.Result, err error) error {
	if err == nil && res != nil && res.Reached {
		last, _ := res.Last()
		r.printf("reached '%s' (%s) in %d hops\n", res.Destination, res.DestinationAddr, last.Number)
	}
	return r.err
}

func (r *textReporter) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	if _, err := fmt.Fprintf(r.w, format, args...); err != nil {
		r.err = fmt.Errorf("failed to write report: %w", err)
	}
}
