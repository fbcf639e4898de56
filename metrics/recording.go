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
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// metricNameRegex validates metric names according to OpenTelemetry
// conventions: start with a letter, then alphanumerics, underscores,
// dots, and hyphens.
var metricNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.-]*$`)

// maxMetricNameLength is the maximum allowed length for metric names.
const maxMetricNameLength = 255

// Reserved metric name prefixes that custom metrics may not use.
// These prefixes are claimed by Prometheus or by this package's
// built-in instruments.
var reservedPrefixes = []string{
	"__",     // Reserved by Prometheus for internal use
	"route_", // Reserved by this package for route metrics
}

// limitError is returned when the custom metrics limit is reached.
type limitError struct {
	metricName string
	limit      int
	current    int
}

func (e *limitError) Error() string {
	return fmt.Sprintf("metrics limit reached: cannot create '%s' (current: %d, limit: %d)",
		e.metricName, e.current, e.limit)
}

// validateMetricName validates that a metric name conforms to
// OpenTelemetry conventions.
func validateMetricName(name string) error {
	if name == "" {
		return fmt.Errorf("metric name cannot be empty")
	}
	if len(name) > maxMetricNameLength {
		return fmt.Errorf("metric name too long: %d characters (max %d)", len(name), maxMetricNameLength)
	}
	if !metricNameRegex.MatchString(name) {
		return fmt.Errorf("invalid metric name '%s': must start with letter and contain only alphanumeric, underscore, dot, or hyphen", name)
	}

	for _, prefix := range reservedPrefixes {
		if strings.HasPrefix(name, prefix) {
			return fmt.Errorf("metric name '%s' uses reserved prefix '%s': reserved prefixes are %v",
				name, prefix, reservedPrefixes)
		}
	}

	return nil
}

// initializeInstruments creates the built-in metric instruments.
func (r *Recorder) initializeInstruments() error {
	var err error

	r.matchDuration, err = r.meter.Float64Histogram(
		"route_match_duration_seconds",
		metric.WithDescription("Duration of route match operations in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(r.durationBuckets...),
	)
	if err != nil {
		return fmt.Errorf("failed to create match duration histogram: %w", err)
	}

	r.matchCount, err = r.meter.Int64Counter(
		"route_matches_total",
		metric.WithDescription("Total number of route match operations"),
	)
	if err != nil {
		return fmt.Errorf("failed to create match counter: %w", err)
	}

	r.generateDuration, err = r.meter.Float64Histogram(
		"route_generate_duration_seconds",
		metric.WithDescription("Duration of URL generation operations in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(r.durationBuckets...),
	)
	if err != nil {
		return fmt.Errorf("failed to create generate duration histogram: %w", err)
	}

	r.generateCount, err = r.meter.Int64Counter(
		"route_generates_total",
		metric.WithDescription("Total number of URL generation operations"),
	)
	if err != nil {
		return fmt.Errorf("failed to create generate counter: %w", err)
	}

	r.variantCount, err = r.meter.Int64Counter(
		"route_variants_registered_total",
		metric.WithDescription("Total number of route variants registered"),
	)
	if err != nil {
		return fmt.Errorf("failed to create variant counter: %w", err)
	}

	r.customMetricFailures, err = r.meter.Int64Counter(
		"custom_metric_failures_total",
		metric.WithDescription("Total number of custom metric creation failures"),
	)
	if err != nil {
		return fmt.Errorf("failed to create custom metric failures counter: %w", err)
	}

	return nil
}

// RecordMatch records one match operation: its outcome ("matched",
// "no_match" or "error"), the winning variant name (empty when none),
// and the elapsed time.
func (r *Recorder) RecordMatch(outcome, variant string, elapsed time.Duration) {
	if !r.enabled {
		return
	}

	ctx := context.Background()
	attrs := r.operationAttributes(outcome, variant)

	r.matchCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	r.matchDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attrs...))
}

// RecordGenerate records one URL generation: its outcome ("generated"
// or "error"), the requested variant name, and the elapsed time.
func (r *Recorder) RecordGenerate(outcome, variant string, elapsed time.Duration) {
	if !r.enabled {
		return
	}

	ctx := context.Background()
	attrs := r.operationAttributes(outcome, variant)

	r.generateCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	r.generateDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attrs...))
}

// RecordVariantRegistered counts a variant accepted at set construction
// together with its number of path alternatives.
func (r *Recorder) RecordVariantRegistered(variant string, alternatives int) {
	if !r.enabled {
		return
	}

	r.variantCount.Add(context.Background(), 1, metric.WithAttributes(
		r.serviceNameAttr,
		r.serviceVersionAttr,
		attribute.String("route.variant", variant),
		attribute.Int("route.alternatives", alternatives),
	))
}

func (r *Recorder) operationAttributes(outcome, variant string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 3, 4)
	attrs[0] = r.serviceNameAttr
	attrs[1] = r.serviceVersionAttr
	attrs[2] = attribute.String("route.outcome", outcome)
	if variant != "" {
		attrs = append(attrs, attribute.String("route.variant", variant))
	}

	return attrs
}

// RecordHistogram records a custom histogram metric with the given name
// and value. Returns an error if the metric name is invalid or creation
// fails.
//
// Example:
//
//	err := recorder.RecordHistogram(ctx, "table_rebuild_duration", 1.5,
//	    attribute.String("table", "admin"))
func (r *Recorder) RecordHistogram(ctx context.Context, name string, value float64, attributes ...attribute.KeyValue) error {
	if !r.enabled {
		return nil
	}

	histogram, err := r.getOrCreateHistogram(name)
	if err != nil {
		atomic.AddInt64(&r.atomicCustomMetricFailures, 1)
		r.customMetricFailures.Add(ctx, 1)

		return fmt.Errorf("record histogram %q: %w", name, err)
	}

	histogram.Record(ctx, value, metric.WithAttributes(attributes...))

	return nil
}

// IncrementCounter increments a custom counter metric by 1.
// Returns an error if the metric name is invalid or creation fails.
func (r *Recorder) IncrementCounter(ctx context.Context, name string, attributes ...attribute.KeyValue) error {
	return r.AddCounter(ctx, name, 1, attributes...)
}

// AddCounter adds a value to a custom counter metric.
// Returns an error if the metric name is invalid or creation fails.
//
// Example:
//
//	err := recorder.AddCounter(ctx, "redirects_issued", 1,
//	    attribute.String("reason", "legacy_path"))
func (r *Recorder) AddCounter(ctx context.Context, name string, value int64, attributes ...attribute.KeyValue) error {
	if !r.enabled {
		return nil
	}

	counter, err := r.getOrCreateCounter(name)
	if err != nil {
		atomic.AddInt64(&r.atomicCustomMetricFailures, 1)
		r.customMetricFailures.Add(ctx, 1)

		return fmt.Errorf("add counter %q: %w", name, err)
	}

	counter.Add(ctx, value, metric.WithAttributes(attributes...))

	return nil
}

// SetGauge sets a custom gauge metric with the given name and value.
// Returns an error if the metric name is invalid or creation fails.
func (r *Recorder) SetGauge(ctx context.Context, name string, value float64, attributes ...attribute.KeyValue) error {
	if !r.enabled {
		return nil
	}

	gauge, err := r.getOrCreateGauge(name)
	if err != nil {
		atomic.AddInt64(&r.atomicCustomMetricFailures, 1)
		r.customMetricFailures.Add(ctx, 1)

		return fmt.Errorf("set gauge %q: %w", name, err)
	}

	gauge.Record(ctx, value, metric.WithAttributes(attributes...))

	return nil
}

// getOrCreateCounter gets or creates a custom counter metric.
// Safe for concurrent use.
func (r *Recorder) getOrCreateCounter(name string) (metric.Int64Counter, error) {
	// Fast path: read lock
	r.customMu.RLock()
	if counter, exists := r.customCounters[name]; exists {
		r.customMu.RUnlock()
		return counter, nil
	}
	r.customMu.RUnlock()

	// Validate only when creating a new metric
	if err := validateMetricName(name); err != nil {
		return nil, err
	}

	r.customMu.Lock()
	defer r.customMu.Unlock()

	// Double-check after acquiring write lock
	if counter, exists := r.customCounters[name]; exists {
		return counter, nil
	}

	if r.customMetricCount >= r.maxCustomMetrics {
		return nil, &limitError{
			metricName: name,
			limit:      r.maxCustomMetrics,
			current:    r.customMetricCount,
		}
	}

	counter, err := r.meter.Int64Counter(
		name,
		metric.WithDescription("Custom counter metric"),
	)
	if err != nil {
		return nil, err
	}

	r.customCounters[name] = counter
	r.customMetricCount++

	return counter, nil
}

// getOrCreateHistogram gets or creates a custom histogram metric.
// Safe for concurrent use.
func (r *Recorder) getOrCreateHistogram(name string) (metric.Float64Histogram, error) {
	r.customMu.RLock()
	if histogram, exists := r.customHistograms[name]; exists {
		r.customMu.RUnlock()
		return histogram, nil
	}
	r.customMu.RUnlock()

	if err := validateMetricName(name); err != nil {
		return nil, err
	}

	r.customMu.Lock()
	defer r.customMu.Unlock()

	if histogram, exists := r.customHistograms[name]; exists {
		return histogram, nil
	}

	if r.customMetricCount >= r.maxCustomMetrics {
		return nil, &limitError{
			metricName: name,
			limit:      r.maxCustomMetrics,
			current:    r.customMetricCount,
		}
	}

	histogram, err := r.meter.Float64Histogram(
		name,
		metric.WithDescription("Custom histogram metric"),
	)
	if err != nil {
		return nil, err
	}

	r.customHistograms[name] = histogram
	r.customMetricCount++

	return histogram, nil
}

// getOrCreateGauge gets or creates a custom gauge metric.
// Safe for concurrent use.
func (r *Recorder) getOrCreateGauge(name string) (metric.Float64Gauge, error) {
	r.customMu.RLock()
	if gauge, exists := r.customGauges[name]; exists {
		r.customMu.RUnlock()
		return gauge, nil
	}
	r.customMu.RUnlock()

	if err := validateMetricName(name); err != nil {
		return nil, err
	}

	r.customMu.Lock()
	defer r.customMu.Unlock()

	if gauge, exists := r.customGauges[name]; exists {
		return gauge, nil
	}

	if r.customMetricCount >= r.maxCustomMetrics {
		return nil, &limitError{
			metricName: name,
			limit:      r.maxCustomMetrics,
			current:    r.customMetricCount,
		}
	}

	gauge, err := r.meter.Float64Gauge(
		name,
		metric.WithDescription("Custom gauge metric"),
	)
	if err != nil {
		return nil, err
	}

	r.customGauges[name] = gauge
	r.customMetricCount++

	return gauge, nil
}

// getAtomicCustomMetricFailures returns the failure counter (for testing).
func (r *Recorder) getAtomicCustomMetricFailures() int64 {
	return atomic.LoadInt64(&r.atomicCustomMetricFailures)
}

// CustomMetricCount returns the number of custom metrics created.
func (r *Recorder) CustomMetricCount() int {
	r.customMu.RLock()
	defer r.customMu.RUnlock()

	return r.customMetricCount
}
