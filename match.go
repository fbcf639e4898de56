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
	"errors"
	"fmt"
	"strings"
	"time"

	"waypath.dev/routes/pattern"
	"waypath.dev/routes/query"
)

// Result is the outcome of a successful match. Params and Positional
// hold the path captures of the winning alternative, Fields the
// resolved query fields, and Sub the nested result when the alternative
// delegated through a sub-route.
//
// Locales is the set of locales the matched URL belongs to; nil means
// every locale.
type Result struct {
	Variant    string
	Value      any
	Params     map[string]string
	Positional []string
	Fields     map[string]string
	Locales    []string
	Sub        *Result
	Query      query.Values
}

// Param returns the named path capture, or the empty string when the
// winning alternative has no such parameter.
func (r *Result) Param(name string) string {
	return r.Params[name]
}

// Field returns the resolved query field, or the empty string when the
// variant declares no such field or an optional field was absent.
func (r *Result) Field(name string) string {
	return r.Fields[name]
}

// Leaf follows the Sub chain to the innermost result.
func (r *Result) Leaf() *Result {
	for r.Sub != nil {
		r = r.Sub
	}

	return r
}

// Match matches a URL (path plus optional query string) against the
// set. Variants and their alternatives are tried in declaration order
// and the first structural match wins.
//
// Three error classes can come back: ErrNoMatch when no alternative
// accepts the path shape; parse errors (query.ErrBadEscape,
// pattern.ErrParamDecode) when the URL itself is malformed; and
// rejection errors (ErrBuild, query.ErrRequiredMissing) when a
// structurally matched URL carries unusable values. Rejections abort
// the match rather than falling through to later alternatives, so a
// variant cannot mask bad input by shape-matching elsewhere.
func (s *Set) Match(url string) (*Result, error) {
	return s.matchURL(url, acceptAny())
}

// MatchLocales is Match restricted to the given locales: localized
// alternatives declared for none of them are skipped, and the Result's
// Locales is the intersection of accepted and declared locales.
func (s *Set) MatchLocales(url string, locales []string) (*Result, error) {
	return s.matchURL(url, acceptOnly(locales))
}

func (s *Set) matchURL(url string, accepted acceptedLocales) (*Result, error) {
	start := time.Now()

	pathPart, queryPart, _ := strings.Cut(url, "?")

	qv, err := query.Parse(queryPart)
	if err != nil {
		s.recordMatch("error", "", start)
		return nil, err
	}

	res, err := s.matchPath(pattern.SplitPath(pathPart), accepted, qv)
	if err != nil {
		outcome := "error"
		if errors.Is(err, ErrNoMatch) {
			outcome = "no_match"
		}
		s.recordMatch(outcome, "", start)

		return nil, err
	}

	s.recordMatch("matched", res.Variant, start)

	return res, nil
}

// matchPath runs the ordered walk over variants and alternatives.
// Structural mismatches move on to the next alternative; malformed
// captures and rejected values abort.
func (s *Set) matchPath(p pattern.Path, accepted acceptedLocales, qv query.Values) (*Result, error) {
	for _, v := range s.variants {
		for _, alt := range v.alts {
			if !accepted.accept(alt.locales) {
				continue
			}

			var (
				m   *pattern.Match
				err error
			)
			if s.decodeParams {
				m, err = alt.pattern.Match(p)
			} else {
				m, err = alt.pattern.MatchRaw(p)
			}
			if err != nil {
				if errors.Is(err, pattern.ErrParamDecode) {
					return nil, fmt.Errorf("variant %q: %w", v.name, err)
				}
				continue
			}

			res := &Result{
				Variant:    v.name,
				Params:     m.Params,
				Positional: m.Positional,
				Query:      qv,
			}

			if m.HasRest {
				sub, err := v.sub.matchPath(m.Rest, accepted.forSubRoute(alt.locales), qv)
				if err != nil {
					if errors.Is(err, ErrNoMatch) {
						continue
					}
					return nil, err
				}
				res.Sub = sub
				res.Locales = sub.Locales
			} else {
				res.Locales = accepted.resulting(alt.locales)
			}

			if len(v.fields) > 0 {
				fields, err := query.Resolve(v.fields, qv)
				if err != nil {
					return nil, fmt.Errorf("variant %q: %w", v.name, err)
				}
				res.Fields = fields
			}

			if v.build != nil {
				value, err := v.build(res)
				if err != nil {
					return nil, fmt.Errorf("%w: variant %q: %v", ErrBuild, v.name, err)
				}
				res.Value = value
			}

			return res, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrNoMatch, p.String())
}

func (s *Set) recordMatch(outcome, variant string, start time.Time) {
	if s.recorder == nil {
		return
	}
	s.recorder.RecordMatch(outcome, variant, time.Since(start))
}
