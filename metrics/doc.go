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

// Package metrics records route matching and URL generation metrics
// through OpenTelemetry.
//
// A Recorder owns the instruments (match/generate counters and duration
// histograms, variant registrations) and one of three export providers:
// Prometheus (pull, with an optional dedicated scrape server), OTLP
// HTTP (push), or stdout (development). No global OpenTelemetry state
// is touched unless WithGlobalMeterProvider is used.
//
//	rec := metrics.MustNew(
//	    metrics.WithPrometheus(":9090", "/metrics"),
//	    metrics.WithServiceName("link-service"),
//	    metrics.WithLogger(slog.Default()),
//	)
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//	_ = rec.Start(ctx)
//	defer rec.Shutdown(context.Background())
//
// Attach the recorder to a route set with routes.WithMetrics; every
// Match and URL call is then recorded with outcome and variant
// attributes.
//
// # Custom metrics
//
// Beyond the built-in instruments, AddCounter, RecordHistogram and
// SetGauge create application metrics on demand. Names are validated
// against OpenTelemetry conventions and capped by WithMaxCustomMetrics
// to prevent unbounded instrument creation.
package metrics
