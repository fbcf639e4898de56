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

package pattern

import (
	"fmt"
	"net/url"
)

// Match holds the captures of a successful match: named parameters by
// field name, anonymous parameters in pattern order, and, when the
// pattern ends in a sub-route, the leftover path to delegate.
type Match struct {
	Params     map[string]string
	Positional []string
	Rest       Path
	HasRest    bool
}

// Match walks the path against the pattern and returns the captured
// parameters, percent-decoded. All returned errors wrap one of the
// runtime sentinels; ErrSegmentCount, ErrLiteralMismatch and
// ErrTrailingSlash mean the path simply is not this shape, while
// ErrParamDecode means a captured segment carried a malformed escape.
func (p *Pattern) Match(path Path) (*Match, error) {
	return p.match(path, true)
}

// MatchRaw is Match without percent-decoding the captures. Use it when
// the caller owns decoding, or when raw captures must be re-rendered
// byte for byte.
func (p *Pattern) MatchRaw(path Path) (*Match, error) {
	return p.match(path, false)
}

func (p *Pattern) match(path Path, decode bool) (*Match, error) {
	if p.subRoute == nil {
		if len(path.Segments) != len(p.segments) {
			return nil, fmt.Errorf("%w: pattern %q wants %d segments, path has %d",
				ErrSegmentCount, p.source, len(p.segments), len(path.Segments))
		}
		if path.TrailingSlash != p.trailingSlash {
			return nil, fmt.Errorf("%w: pattern %q, path %q", ErrTrailingSlash, p.source, path)
		}
	} else if len(path.Segments) < len(p.segments) {
		return nil, fmt.Errorf("%w: pattern %q wants at least %d segments, path has %d",
			ErrSegmentCount, p.source, len(p.segments), len(path.Segments))
	}

	m := &Match{}

	for i, seg := range p.segments {
		got := path.Segments[i]

		switch seg.Kind {
		case KindLiteral:
			if got != seg.Value {
				return nil, fmt.Errorf("%w: pattern %q expects %q, path has %q",
					ErrLiteralMismatch, p.source, seg.Value, got)
			}

		case KindParam:
			if decode {
				dec, err := url.PathUnescape(got)
				if err != nil {
					return nil, fmt.Errorf("%w: segment %q: %v", ErrParamDecode, got, err)
				}
				got = dec
			}
			if seg.Value == "" {
				m.Positional = append(m.Positional, got)
			} else {
				if m.Params == nil {
					m.Params = make(map[string]string, p.namedParams)
				}
				m.Params[seg.Value] = got
			}
		}
	}

	if p.subRoute != nil {
		m.HasRest = true
		m.Rest = Path{
			Segments:      path.Segments[len(p.segments):],
			TrailingSlash: path.TrailingSlash,
		}
	}

	return m, nil
}
