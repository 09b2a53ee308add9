// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/rawtrace/internal/traceroute"
	"gopkg.in/yaml.v3"
)

func gatewayResult() *traceroute.Result {
	return &traceroute.Result{
		Destination:     "example.com",
		DestinationAddr: netip.MustParseAddr("93.184.216.34"),
		Interface:       "eth0",
		SourceAddr:      netip.MustParseAddr("10.0.0.5"),
		Hops: []traceroute.Hop{
			{Latency: 1200 * time.Microsecond, Addr: netip.MustParseAddr("10.0.0.1"), Name: "gateway.local", TTL: 1, Number: 1},
			{Latency: 9 * time.Millisecond, Addr: netip.MustParseAddr("93.184.216.34"), Name: "*", TTL: 2, Number: 2, Reached: true},
		},
		Reached: true,
	}
}

// replay feeds res through r the way a client run does.
func replay(t *testing.T, r Reporter, res *traceroute.Result, err error) {
	t.Helper()
	r.Started(res)
	for _, hop := range res.Hops {
		r.Observed(hop)
	}
	require.NoError(t, r.Finish(res, err))
}

func TestNew(t *testing.T) {
	for _, f := range append(Formats(), "") {
		r, err := New(f, &bytes.Buffer{})
		require.NoError(t, err, "format %q", f)
		assert.NotNil(t, r)
	}

	_, err := New("xml", &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormat_IsValid(t *testing.T) {
	assert.True(t, JSON.IsValid())
	assert.False(t, Format("").IsValid())
	assert.False(t, Format("TEXT").IsValid())
}

func TestTextReporter(t *testing.T) {
	t.Run("destination reached", func(t *testing.T) {
		var buf bytes.Buffer
		replay(t, &textReporter{w: &buf}, gatewayResult(), nil)

		want := strings.Join([]string{
			"Using networking interface eth0",
			"tracing down 'example.com' on '93.184.216.34'..",
			"hop 1 - [gateway.local]: 10.0.0.1",
			"hop 2 - [*]: 93.184.216.34",
			"reached 'example.com' (93.184.216.34) in 2 hops",
		}, "\n") + "\n"
		assert.Equal(t, want, buf.String())
	})

	t.Run("hop count excludes ignored hops", func(t *testing.T) {
		res := gatewayResult()
		res.Ignored = 1
		res.Hops[1].TTL = 3

		var buf bytes.Buffer
		replay(t, &textReporter{w: &buf}, res, nil)
		assert.Contains(t, buf.String(), "in 2 hops")
	})

	t.Run("exhausted", func(t *testing.T) {
		res := gatewayResult()
		res.Reached = false
		res.Hops[1].Reached = false

		var buf bytes.Buffer
		replay(t, &textReporter{w: &buf}, res, traceroute.ErrHopsExhausted)
		assert.NotContains(t, buf.String(), "reached")
		assert.Contains(t, buf.String(), "hop 2 - [*]: 93.184.216.34")
	})

	t.Run("write error", func(t *testing.T) {
		r := &textReporter{w: failingWriter{}}
		r.Started(gatewayResult())
		assert.Error(t, r.Finish(gatewayResult(), nil))
	})
}

func TestDocumentReporter_JSON(t *testing.T) {
	var buf bytes.Buffer
	r, err := New(JSON, &buf)
	require.NoError(t, err)
	replay(t, r, gatewayResult(), nil)

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "example.com", got["destination"])
	assert.Equal(t, "93.184.216.34", got["destinationAddr"])
	assert.Equal(t, "10.0.0.5", got["sourceAddr"])
	assert.Equal(t, true, got["reached"])
	assert.NotContains(t, got, "error")

	hops, ok := got["hops"].([]any)
	require.True(t, ok)
	require.Len(t, hops, 2)
	first := hops[0].(map[string]any)
	assert.Equal(t, "gateway.local", first["name"])
	assert.Equal(t, "1.2ms", first["latency"])
}

func TestDocumentReporter_YAML(t *testing.T) {
	res := gatewayResult()
	res.Reached = false
	res.Hops = res.Hops[:1]

	var buf bytes.Buffer
	r, err := New(YAML, &buf)
	require.NoError(t, err)
	replay(t, r, res, fmt.Errorf("%w: example.com after 30 hops", traceroute.ErrHopsExhausted))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "eth0", got["interface"])
	assert.Equal(t, false, got["reached"])
	assert.Equal(t, "destination not reached: example.com after 30 hops", got["error"])
	hops, ok := got["hops"].([]any)
	require.True(t, ok)
	require.Len(t, hops, 1)
	assert.Equal(t, "10.0.0.1", hops[0].(map[string]any)["addr"])
}

func TestDocumentReporter_noResult(t *testing.T) {
	var buf bytes.Buffer
	r, err := New(JSON, &buf)
	require.NoError(t, err)

	require.NoError(t, r.Finish(nil, errors.New("socket failure")))
	assert.Empty(t, buf.String())
}

func TestTableReporter(t *testing.T) {
	res := gatewayResult()
	res.Hops = append([]traceroute.Hop{{TTL: 1, Number: 1, Name: "*", Timeout: true}}, res.Hops...)

	var buf bytes.Buffer
	r, err := New(Table, &buf)
	require.NoError(t, err)
	replay(t, r, res, nil)

	out := buf.String()
	assert.Contains(t, strings.ToLower(out), "example.com (93.184.216.34) via eth0")
	assert.Contains(t, out, "gateway.local")
	assert.Contains(t, out, "10.0.0.1")
	assert.Contains(t, out, "1.2ms")
	assert.Contains(t, strings.ToUpper(out), "REACHED")
	assert.Equal(t, 1, strings.Count(out, "true"), "only the last hop reached the destination")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}
