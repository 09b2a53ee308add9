// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	buildInfoMetricName = "rawtrace_build_info"
	buildInfoHelp       = "Build metadata of the rawtrace binary that produced these metrics."
)

// RegisterBuildInfo registers the rawtrace_build_info info-style metric on the given registry.
// It sets the gauge to 1 with labels version and goversion. An empty version is reported as "dev".
func RegisterBuildInfo(registry *prometheus.Registry, version string) error {
	if version == "" {
		version = "dev"
	}
	info := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: buildInfoMetricName,
			Help: buildInfoHelp,
		},
		[]string{"version", "goversion"},
	)
	info.WithLabelValues(version, runtime.Version()).Set(1)
	return registry.Register(info)
}
