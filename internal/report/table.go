// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/telekom/rawtrace/internal/discovery"
	"github.com/telekom/rawtrace/internal/traceroute"
)

var _ Reporter = (*tableReporter)(nil)

// tableReporter renders all hops as a table once the trace ended.
type tableReporter struct {
	w io.Writer
}

func (r *tableReporter) Started(*traceroute.Result) {}

func (r *tableReporter) Observed(traceroute.Hop) {}

func (r *tableReporter) Finish(res *traceroute.Result, err error) error {
	if res == nil {
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetTitle(fmt.Sprintf("%s (%s) via %s", res.Destination, res.DestinationAddr, res.Interface))
	t.AppendHeader(table.Row{"Hop", "TTL", "Name", "Address", "Latency", "Reached"})
	for _, hop := range res.Hops {
		t.AppendRow(table.Row{hop.Number, hop.TTL, hopName(hop), hop.AddrString(), latency(hop), hop.Reached})
	}

	status := "reached"
	if err != nil {
		status = err.Error()
	}
	t.AppendFooter(table.Row{"", "", "Ignored", res.Ignored, "Status", status})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.SetStyle(table.StyleLight)
	t.Render()
	return nil
}

func hopName(hop traceroute.Hop) string {
	if hop.Name == "" {
		return discovery.Placeholder
	}
	return hop.Name
}

func latency(hop traceroute.Hop) string {
	if hop.Timeout {
		return discovery.Placeholder
	}
	return hop.Latency.Round(time.Microsecond).String()
}
