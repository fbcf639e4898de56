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
	"fmt"
	"slices"

	"waypath.dev/routes/metrics"
	"waypath.dev/routes/pattern"
	"waypath.dev/routes/query"
)

// highParamCount is the parameter count above which a pattern draws a
// diagnostic. Deep capture lists usually mean a sub-route was intended.
const highParamCount = 8

// Set is an ordered table of route variants. It matches paths against
// the variants (first structural match wins) and generates paths from
// variant names and values.
//
// A Set is immutable after NewSet and safe for concurrent use.
type Set struct {
	variants []*compiledVariant
	byName   map[string]*compiledVariant

	diagnostics  DiagnosticHandler
	recorder     *metrics.Recorder
	decodeParams bool
	encodeParams bool
}

// compiledVariant is the immutable snapshot of a Variant builder.
type compiledVariant struct {
	name   string
	alts   []alternative
	fields []query.Field
	sub    *Set
	build  BuildFunc
}

// alternative is one compiled path alternative of a variant.
type alternative struct {
	locales []string
	pattern *pattern.Pattern
}

// NewSet compiles the variants into an immutable set. Variants and
// their alternatives keep declaration order; that order is the match
// priority. All patterns are compiled here, so every grammar mistake
// surfaces at construction rather than at match time.
func NewSet(variants []*Variant, opts ...Option) (*Set, error) {
	s := &Set{
		byName:       make(map[string]*compiledVariant, len(variants)),
		decodeParams: true,
		encodeParams: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, v := range variants {
		cv, err := s.compileVariant(v)
		if err != nil {
			return nil, err
		}
		if _, dup := s.byName[cv.name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateVariant, cv.name)
		}
		s.variants = append(s.variants, cv)
		s.byName[cv.name] = cv

		s.diag(DiagVariantRegistered, "variant registered", map[string]any{
			"variant":      cv.name,
			"alternatives": len(cv.alts),
		})
		if s.recorder != nil {
			s.recorder.RecordVariantRegistered(cv.name, len(cv.alts))
		}
	}

	return s, nil
}

// MustNewSet is like NewSet but panics on error. Use it for route
// tables declared at startup.
func MustNewSet(variants []*Variant, opts ...Option) *Set {
	s, err := NewSet(variants, opts...)
	if err != nil {
		panic(fmt.Sprintf("routes: NewSet: %v", err))
	}

	return s
}

func (s *Set) compileVariant(v *Variant) (*compiledVariant, error) {
	if v.name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrVariantName)
	}
	if len(v.alts) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoAlternatives, v.name)
	}

	cv := &compiledVariant{
		name:   v.name,
		fields: slices.Clone(v.fields),
		sub:    v.sub,
		build:  v.build,
	}

	delegates := false
	for _, spec := range v.alts {
		p, err := pattern.Compile(spec.source)
		if err != nil {
			return nil, fmt.Errorf("variant %q: %w", v.name, err)
		}
		if p.HasSubRoute() {
			delegates = true
		}
		if n := len(p.ParamNames()) + p.AnonymousParams(); n > highParamCount {
			s.diag(DiagHighParamCount, "pattern declares many parameters", map[string]any{
				"variant": v.name,
				"pattern": spec.source,
				"params":  n,
			})
		}
		s.checkShadowed(cv, spec, p)

		cv.alts = append(cv.alts, alternative{
			locales: slices.Clone(spec.locales),
			pattern: p,
		})
	}

	if delegates && cv.sub == nil {
		return nil, fmt.Errorf("%w: variant %q", ErrSubSetMissing, v.name)
	}
	if !delegates && cv.sub != nil {
		return nil, fmt.Errorf("%w: variant %q", ErrSubSetUnused, v.name)
	}

	return cv, nil
}

// checkShadowed flags an alternative that repeats an earlier
// alternative's pattern while the earlier one already covers its
// locales: the later one can never win.
func (s *Set) checkShadowed(cv *compiledVariant, spec altSpec, p *pattern.Pattern) {
	if s.diagnostics == nil {
		return
	}

	for _, prev := range cv.alts {
		if !prev.pattern.Equal(p) {
			continue
		}
		if len(prev.locales) == 0 || coversLocales(prev.locales, spec.locales) {
			s.diag(DiagShadowedAlternative, "alternative can never match", map[string]any{
				"variant": cv.name,
				"pattern": spec.source,
				"shadow":  prev.pattern.Source(),
			})
			return
		}
	}
}

// coversLocales reports whether every locale of b is also in a. An
// empty b (any locale) is only covered by an empty a, handled by the
// caller.
func coversLocales(a, b []string) bool {
	if len(b) == 0 {
		return false
	}
	for _, l := range b {
		if !slices.Contains(a, l) {
			return false
		}
	}

	return true
}

// Variants returns the variant names in declaration order.
func (s *Set) Variants() []string {
	out := make([]string, len(s.variants))
	for i, v := range s.variants {
		out[i] = v.name
	}

	return out
}

// Has reports whether the set declares a variant with the given name.
func (s *Set) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}
