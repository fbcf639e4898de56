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

package routes

import "waypath.dev/routes/metrics"

// Option configures a Set at construction.
type Option func(*Set)

// WithDiagnostics sets a diagnostic handler for the set.
//
// Diagnostic events are optional informational events that may indicate
// configuration issues. The set functions correctly whether diagnostics
// are collected or not.
//
// Example with logging:
//
//	import "log/slog"
//
//	handler := routes.DiagnosticHandlerFunc(func(e routes.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	set := routes.MustNewSet(variants, routes.WithDiagnostics(handler))
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(s *Set) {
		s.diagnostics = handler
	}
}

// WithMetrics attaches a metrics recorder. Match and URL outcomes on
// this set are recorded on it; nested sets record nothing unless given
// their own recorder.
//
// Example:
//
//	rec := metrics.MustNew(metrics.WithPrometheus())
//	set := routes.MustNewSet(variants, routes.WithMetrics(rec))
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(s *Set) {
		s.recorder = recorder
	}
}

// WithoutParamDecoding disables percent-decoding of captured parameter
// values on match. Captures are then returned exactly as they appear in
// the path. Decoding is on by default.
func WithoutParamDecoding() Option {
	return func(s *Set) {
		s.decodeParams = false
	}
}

// WithoutParamEncoding disables percent-encoding of parameter values on
// URL generation. The caller is then responsible for supplying
// path-safe values. Encoding is on by default.
func WithoutParamEncoding() Option {
	return func(s *Set) {
		s.encodeParams = false
	}
}
