// Copyright 2026 The Waypath Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// newTestRecorder returns a recorder backed by a manual reader so tests
// can collect data points deterministically.
func newTestRecorder(t *testing.T, opts ...Option) (*Recorder, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	opts = append([]Option{WithMeterProvider(provider)}, opts...)
	recorder, err := New(opts...)
	require.NoError(t, err)

	return recorder, reader
}

// collectMetricNames gathers the names of all exported metrics.
func collectMetricNames(t *testing.T, reader *sdkmetric.ManualReader) map[string]bool {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	names := make(map[string]bool)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			names[m.Name] = true
		}
	}

	return names
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []Option
	}{
		{
			name: "conflicting providers",
			opts: []Option{WithStdout(), WithOTLP("http://localhost:4318")},
		},
		{
			name: "empty service name",
			opts: []Option{WithStdout(), WithServiceName("")},
		},
		{
			name: "empty service version",
			opts: []Option{WithStdout(), WithServiceVersion("")},
		},
		{
			name: "zero custom metrics limit",
			opts: []Option{WithStdout(), WithMaxCustomMetrics(0)},
		},
		{
			name: "prometheus without port",
			opts: []Option{WithPrometheus("", "/metrics")},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.opts...)
			assert.Error(t, err)
		})
	}
}

func TestMustNewPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		MustNew(WithStdout(), WithServiceName(""))
	})
}

func TestPrometheusHandler(t *testing.T) {
	t.Parallel()

	recorder, err := New(
		WithPrometheus(":9090", "/metrics"),
		WithServerDisabled(),
	)
	require.NoError(t, err)

	handler, err := recorder.Handler()
	require.NoError(t, err)
	assert.NotNil(t, handler)

	assert.Equal(t, PrometheusProvider, recorder.Provider())
	assert.Equal(t, "/metrics", recorder.Path())
	assert.Equal(t, "", recorder.ServerAddress()) // server disabled
}

func TestHandlerUnavailableForPushProviders(t *testing.T) {
	t.Parallel()

	recorder, reader := newTestRecorder(t)
	_ = reader

	_, err := recorder.Handler()
	assert.Error(t, err)
}

func TestRecordMatchAndGenerate(t *testing.T) {
	t.Parallel()

	recorder, reader := newTestRecorder(t,
		WithServiceName("test-service"),
		WithServiceVersion("0.1.0"),
	)

	recorder.RecordMatch("matched", "user", 150*time.Microsecond)
	recorder.RecordMatch("no_match", "", time.Microsecond)
	recorder.RecordGenerate("generated", "user", 20*time.Microsecond)
	recorder.RecordVariantRegistered("user", 2)

	names := collectMetricNames(t, reader)
	assert.True(t, names["route_matches_total"])
	assert.True(t, names["route_match_duration_seconds"])
	assert.True(t, names["route_generates_total"])
	assert.True(t, names["route_generate_duration_seconds"])
	assert.True(t, names["route_variants_registered_total"])
}

func TestCustomMetrics(t *testing.T) {
	t.Parallel()

	recorder, reader := newTestRecorder(t)
	ctx := context.Background()

	require.NoError(t, recorder.IncrementCounter(ctx, "redirects_issued",
		attribute.String("reason", "legacy_path")))
	require.NoError(t, recorder.AddCounter(ctx, "redirects_issued", 2))
	require.NoError(t, recorder.RecordHistogram(ctx, "table_rebuild_duration", 0.25))
	require.NoError(t, recorder.SetGauge(ctx, "active_tables", 3))

	assert.Equal(t, 3, recorder.CustomMetricCount())

	names := collectMetricNames(t, reader)
	assert.True(t, names["redirects_issued"])
	assert.True(t, names["table_rebuild_duration"])
	assert.True(t, names["active_tables"])
}

func TestCustomMetricNameValidation(t *testing.T) {
	t.Parallel()

	recorder, _ := newTestRecorder(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		metricName string
	}{
		{name: "empty", metricName: ""},
		{name: "starts with digit", metricName: "1_requests"},
		{name: "illegal characters", metricName: "requests total"},
		{name: "reserved prometheus prefix", metricName: "__internal"},
		{name: "reserved route prefix", metricName: "route_custom"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := recorder.IncrementCounter(ctx, tt.metricName)
			assert.Error(t, err)
		})
	}

	assert.Equal(t, int64(len(tests)), recorder.getAtomicCustomMetricFailures())
}

func TestCustomMetricLimit(t *testing.T) {
	t.Parallel()

	recorder, _ := newTestRecorder(t, WithMaxCustomMetrics(2))
	ctx := context.Background()

	require.NoError(t, recorder.IncrementCounter(ctx, "first"))
	require.NoError(t, recorder.IncrementCounter(ctx, "second"))

	err := recorder.IncrementCounter(ctx, "third")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics limit reached")

	// Existing metrics keep working at the limit.
	assert.NoError(t, recorder.IncrementCounter(ctx, "first"))
}

func TestShutdownIdempotent(t *testing.T) {
	t.Parallel()

	recorder, err := New(
		WithPrometheus(":9090", "/metrics"),
		WithServerDisabled(),
	)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, recorder.Shutdown(ctx))
	require.NoError(t, recorder.Shutdown(ctx))

	// Recording after shutdown must not panic.
	recorder.RecordMatch("matched", "user", time.Microsecond)
}

func TestForceFlushWithCustomProvider(t *testing.T) {
	t.Parallel()

	recorder, _ := newTestRecorder(t)
	// Custom providers are not flushed by the recorder; still a no-op success.
	assert.NoError(t, recorder.ForceFlush(context.Background()))
}

func TestDefaultEventHandlerNilLogger(t *testing.T) {
	t.Parallel()

	handler := DefaultEventHandler(nil)
	assert.NotPanics(t, func() {
		handler(Event{Type: EventError, Message: "boom"})
	})
}

func TestEventHandlerReceivesEvents(t *testing.T) {
	t.Parallel()

	var events []Event
	_, err := New(
		WithStdout(),
		WithExportInterval(time.Hour),
		WithEventHandler(func(e Event) { events = append(events, e) }),
		WithOTLP(""),
		WithStdout(),
	)
	// Conflicting providers: validation fails, but the warning path is
	// not what we assert here.
	assert.Error(t, err)

	events = nil
	recorder, err := New(
		WithStdout(),
		WithExportInterval(500*time.Millisecond),
		WithEventHandler(func(e Event) { events = append(events, e) }),
	)
	require.NoError(t, err)
	defer recorder.Shutdown(context.Background())

	// Sub-second export interval draws a warning during validation.
	require.NotEmpty(t, events)
	assert.Equal(t, EventWarning, events[0].Type)
}
