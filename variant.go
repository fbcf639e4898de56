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

import (
	"slices"

	"waypath.dev/routes/query"
)

// BuildFunc turns the captures of a structurally matched variant into a
// caller-defined value, stored on Result.Value. Returning an error
// rejects the captures and aborts the whole match; it is not treated as
// "try the next alternative".
type BuildFunc func(*Result) (any, error)

// Variant declares one named route shape: its path alternatives
// (optionally per locale), its query fields, an optional nested set to
// delegate to, and an optional build function.
//
// A Variant is a builder. Its methods mutate and return the receiver
// for chaining; it becomes part of an immutable Set only through
// NewSet, which snapshots it, so a builder may be reused afterwards.
//
//	routes.NewVariant("user").
//	    Path("/users/:id").
//	    Query(query.Default("tab", "profile"))
type Variant struct {
	name   string
	alts   []altSpec
	fields []query.Field
	sub    *Set
	build  BuildFunc
}

// altSpec is one declared path alternative, compiled at NewSet time.
type altSpec struct {
	locales []string
	source  string
}

// NewVariant starts a variant declaration with the given name. The name
// identifies the variant on match results and in URL generation.
func NewVariant(name string) *Variant {
	return &Variant{name: name}
}

// Path adds a path alternative that applies to every locale.
// Alternatives are tried in declaration order.
func (v *Variant) Path(source string) *Variant {
	v.alts = append(v.alts, altSpec{source: source})
	return v
}

// PathFor adds a path alternative restricted to the given locales.
// Locale codes are matched as exact strings ("en", "en-US").
func (v *Variant) PathFor(locales []string, source string) *Variant {
	v.alts = append(v.alts, altSpec{locales: slices.Clone(locales), source: source})
	return v
}

// Query declares the query-string fields this variant consumes on match
// and serializes on generation, in the given order.
func (v *Variant) Query(fields ...query.Field) *Variant {
	v.fields = append(v.fields, fields...)
	return v
}

// Sub attaches the nested set this variant delegates to. At least one
// alternative must end in a ".." sub-route segment.
func (v *Variant) Sub(set *Set) *Variant {
	v.sub = set
	return v
}

// Build sets the function that converts captures into Result.Value.
func (v *Variant) Build(fn BuildFunc) *Variant {
	v.build = fn
	return v
}

// Name returns the variant's name.
func (v *Variant) Name() string {
	return v.name
}
