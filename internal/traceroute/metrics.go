// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics defines the metric collectors of the traceroute client
type metrics struct {
	hops     *prometheus.GaugeVec
	reached  *prometheus.GaugeVec
	rtt      *prometheus.HistogramVec
	timeouts *prometheus.CounterVec
	ignored  *prometheus.CounterVec
}

// newMetrics initializes metric collectors of the traceroute client
func newMetrics() metrics {
	return metrics{
		hops: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "rawtrace_hops",
				Help: "Number of hops reported on the path to the destination.",
			},
			[]string{"destination"},
		),
		reached: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "rawtrace_destination_reached",
				Help: "Specifies if the destination answered within the maximum number of hops.",
			},
			[]string{"destination"},
		),
		rtt: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rawtrace_hop_rtt_seconds",
				Help:    "Round trip time from sending a probe to receiving the reply of a hop in seconds.",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
			},
			[]string{"destination", "ttl"},
		),
		timeouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rawtrace_hop_timeouts_total",
				Help: "Total number of hops that did not answer in time after all retries.",
			},
			[]string{"destination"},
		),
		ignored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rawtrace_loopback_hops_ignored_total",
				Help: "Total number of hops answered from the loopback address and skipped.",
			},
			[]string{"destination"},
		),
	}
}

// GetCollectors returns all metric collectors
func (m *metrics) GetCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.hops,
		m.reached,
		m.rtt,
		m.timeouts,
		m.ignored,
	}
}

// observeHop records a single hop
func (m *metrics) observeHop(destination string, hop Hop) {
	switch {
	case hop.Loopback:
		m.ignored.WithLabelValues(destination).Inc()
	case hop.Timeout:
		m.timeouts.WithLabelValues(destination).Inc()
	default:
		m.rtt.WithLabelValues(destination, strconv.Itoa(hop.TTL)).Observe(hop.Latency.Seconds())
	}
}

// setResult sets the metrics of a finished trace
func (m *metrics) setResult(res *Result) {
	m.hops.WithLabelValues(res.Destination).Set(float64(len(res.Hops)))
	reached := 0.0
	if res.Reached {
		reached = 1
	}
	m.reached.WithLabelValues(res.Destination).Set(reached)
}
