// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/telekom/rawtrace/internal/traceroute"
	"gopkg.in/yaml.v3"
)

var _ Reporter = (*documentReporter)(nil)

// document is the serialized form of a finished trace
type document struct {
	traceroute.Result `yaml:",inline"`
	// Error is the reason the trace did not reach the destination
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// documentReporter writes a single document once the trace ended.
type documentReporter struct {
	w      io.Writer
	encode func(w io.Writer, doc document) error
}

func (r *documentReporter) Started(*traceroute.Result) {}

func (r *documentReporter) Observed(traceroute.Hop) {}

// Finish writes the result. Nothing is written if the trace
// failed before a result was available.
func (r *documentReporter) Finish(res *traceroute.Result, err error) error {
	if res == nil {
		return nil
	}
	doc := document{Result: *res}
	if err != nil {
		doc.Error = err.Error()
	}
	if eErr := r.encode(r.w, doc); eErr != nil {
		return fmt.Errorf("failed to write report: %w", eErr)
	}
	return nil
}

func encodeJSON(w io.Writer, doc document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func encodeYAML(w io.Writer, doc document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
