// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"runtime"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRegisterBuildInfo(t *testing.T) {
	tests := []struct {
		name        string
		version     string
		wantVersion string
	}{
		{name: "release build", version: "v1.0.0", wantVersion: "v1.0.0"},
		{name: "development build", version: "", wantVersion: "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := prometheus.NewRegistry()
			if err := RegisterBuildInfo(registry, tt.version); err != nil {
				t.Fatalf("RegisterBuildInfo() error = %v", err)
			}

			metrics, err := registry.Gather()
			if err != nil {
				t.Fatalf("Gather() error = %v", err)
			}

			var found bool
			for _, mf := range metrics {
				if mf.GetName() != buildInfoMetricName {
					continue
				}
				found = true
				if len(mf.GetMetric()) != 1 {
					t.Fatalf("expected 1 metric, got %d", len(mf.GetMetric()))
				}
				m := mf.GetMetric()[0]
				if m.GetGauge().GetValue() != 1 {
					t.Errorf("expected value 1, got %v", m.GetGauge().GetValue())
				}
				labels := make(map[string]string)
				for _, lp := range m.GetLabel() {
					labels[lp.GetName()] = lp.GetValue()
				}
				if labels["version"] != tt.wantVersion || labels["goversion"] != runtime.Version() {
					t.Errorf("unexpected labels: %v", labels)
				}
			}
			if !found {
				t.Errorf("%s metric not found in registry", buildInfoMetricName)
			}
		})
	}
}

func TestRegisterBuildInfo_twice(t *testing.T) {
	registry := prometheus.NewRegistry()
	if err := RegisterBuildInfo(registry, "v1.0.0"); err != nil {
		t.Fatalf("RegisterBuildInfo() error = %v", err)
	}
	if err := RegisterBuildInfo(registry, "v1.0.0"); err == nil {
		t.Error("RegisterBuildInfo() expected error on duplicate registration")
	}
}
