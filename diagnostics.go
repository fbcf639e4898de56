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

// DiagnosticEvent represents a route-set diagnostic or anomaly.
// These are informational events that may indicate configuration issues.
//
// Diagnostic events are optional - the set functions correctly whether
// they are collected or not. They provide visibility into edge cases and
// potential issues for observability systems.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // Structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagVariantRegistered is emitted for every variant accepted at
	// construction.
	DiagVariantRegistered DiagnosticKind = "variant_registered"

	// DiagShadowedAlternative is emitted when an alternative can never
	// match because an earlier alternative of the same set accepts every
	// path it accepts.
	DiagShadowedAlternative DiagnosticKind = "alternative_shadowed"

	// DiagHighParamCount is emitted when an alternative declares an
	// unusually high number of parameters.
	DiagHighParamCount DiagnosticKind = "pattern_param_count_high"

	// DiagLocaleUnreachable is emitted when an alternative's locale list
	// is fully covered by earlier alternatives of the same variant.
	DiagLocaleUnreachable DiagnosticKind = "alternative_locale_unreachable"
)

// DiagnosticHandler receives diagnostic events from set construction.
// Implementations may log, emit metrics, or ignore them.
//
// This interface is optional - if not provided, diagnostics are silently
// dropped. Matching and generation behave identically either way.
//
// Example with logging:
//
//	import "log/slog"
//
//	handler := routes.DiagnosticHandlerFunc(func(e routes.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	set := routes.MustNewSet(variants, routes.WithDiagnostics(handler))
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}

// diag emits an event when a handler is configured.
func (s *Set) diag(kind DiagnosticKind, msg string, fields map[string]any) {
	if s.diagnostics == nil {
		return
	}
	s.diagnostics.OnDiagnostic(DiagnosticEvent{Kind: kind, Message: msg, Fields: fields})
}
