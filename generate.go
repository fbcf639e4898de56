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
	"time"

	"waypath.dev/routes/pattern"
	"waypath.dev/routes/query"
)

// Params supplies the values for generating a URL: named path
// parameters, anonymous path parameters in pattern order, query field
// values by name, and, for delegating variants, the nested call.
type Params struct {
	Named      map[string]string
	Positional []string
	Query      map[string]string
	Sub        *SubParams
}

// SubParams names the variant to render in the nested set and carries
// its values.
type SubParams struct {
	Variant string
	Params  Params
}

// URLOption configures one URL call.
type URLOption func(*urlConfig)

type urlConfig struct {
	locale string
}

// ForLocale selects the alternative to render: the first one declared
// for the given locale, or the first one declared for every locale.
// The same locale applies at every nesting level. Without ForLocale,
// only alternatives declared for every locale are usable.
func ForLocale(locale string) URLOption {
	return func(c *urlConfig) {
		c.locale = locale
	}
}

// URL generates the URL of the named variant: the rendered path of its
// selected alternative, plus a query string when any level of the call
// declares query fields. It is the inverse of Match: matching a
// generated URL yields the variant and values it was generated from.
//
// Query fields resolve per level in declaration order; a declared field
// absent from Params.Query falls back to its default, errors when
// required, and is omitted when optional. All levels share one query
// string, outer fields first.
func (s *Set) URL(variant string, p Params, opts ...URLOption) (string, error) {
	start := time.Now()

	var cfg urlConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var qv query.Values
	path, err := s.buildPath(variant, p, cfg.locale, &qv)
	if err != nil {
		s.recordGenerate("error", variant, start)
		return "", err
	}

	if qs := qv.Encode(); qs != "" {
		path += "?" + qs
	}
	s.recordGenerate("generated", variant, start)

	return path, nil
}

func (s *Set) buildPath(variant string, p Params, locale string, qv *query.Values) (string, error) {
	v, ok := s.byName[variant]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}

	alt, ok := v.pickAlternative(locale)
	if !ok {
		return "", fmt.Errorf("%w: variant %q, locale %q", ErrNoAlternative, variant, locale)
	}

	for _, f := range v.fields {
		if val, ok := p.Query[f.Name()]; ok {
			qv.Add(f.Name(), val)
			continue
		}
		if def, ok := f.DefaultValue(); ok {
			qv.Add(f.Name(), def)
			continue
		}
		if f.IsRequired() {
			return "", fmt.Errorf("%w: variant %q, field %q", ErrMissingQueryField, variant, f.Name())
		}
	}

	var sub string
	if alt.pattern.HasSubRoute() {
		if p.Sub == nil {
			return "", fmt.Errorf("%w: variant %q", ErrMissingSubValue, variant)
		}
		var err error
		sub, err = v.sub.buildPath(p.Sub.Variant, p.Sub.Params, locale, qv)
		if err != nil {
			return "", err
		}
	}

	values := pattern.Values{Named: p.Named, Positional: p.Positional, Sub: sub}

	var (
		rendered string
		err      error
	)
	if s.encodeParams {
		rendered, err = alt.pattern.Render(values)
	} else {
		rendered, err = alt.pattern.RenderRaw(values)
	}
	if err != nil {
		return "", fmt.Errorf("variant %q: %w", variant, err)
	}

	return rendered, nil
}

// pickAlternative returns the first alternative usable for the locale:
// unrestricted alternatives always qualify, localized ones only when
// the locale is declared for them.
func (v *compiledVariant) pickAlternative(locale string) (alternative, bool) {
	for _, alt := range v.alts {
		if len(alt.locales) == 0 {
			return alt, true
		}
		if locale == "" {
			continue
		}
		for _, l := range alt.locales {
			if l == locale {
				return alt, true
			}
		}
	}

	return alternative{}, false
}

func (s *Set) recordGenerate(outcome, variant string, start time.Time) {
	if s.recorder == nil {
		return
	}
	s.recorder.RecordGenerate(outcome, variant, time.Since(start))
}
