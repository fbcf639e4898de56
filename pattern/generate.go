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
	"strings"
)

// Values supplies the data for rendering a pattern back into a path:
// named parameters by field name, anonymous parameters in pattern order,
// and, for patterns ending in a sub-route, the already-rendered path to
// append at the delegation point.
type Values struct {
	Named      map[string]string
	Positional []string
	Sub        string
}

// Render produces the path this pattern describes, filling parameters
// from v. Parameter values are percent-encoded so that rendering and
// matching round-trip: matching the rendered path against the same
// pattern recovers the original values byte for byte.
//
// A named parameter absent from v.Named, or fewer positional values
// than anonymous parameters, yields ErrMissingParam. A pattern ending
// in a sub-route requires v.Sub to be non-empty or ErrMissingSubPath
// is returned.
func (p *Pattern) Render(v Values) (string, error) {
	return p.render(v, true)
}

// RenderRaw is Render without percent-encoding the parameter values.
// The caller is responsible for supplying path-safe values.
func (p *Pattern) RenderRaw(v Values) (string, error) {
	return p.render(v, false)
}

func (p *Pattern) render(v Values, encode bool) (string, error) {
	if p.IsRoot() {
		return "/", nil
	}

	var b strings.Builder
	next := 0 // next positional value

	for _, seg := range p.segments {
		b.WriteByte('/')

		switch seg.Kind {
		case KindLiteral:
			b.WriteString(seg.Value)

		case KindParam:
			var val string
			if seg.Value == "" {
				if next >= len(v.Positional) {
					return "", fmt.Errorf("%w: anonymous parameter %d of pattern %q",
						ErrMissingParam, next, p.source)
				}
				val = v.Positional[next]
				next++
			} else {
				var ok bool
				val, ok = v.Named[seg.Value]
				if !ok {
					return "", fmt.Errorf("%w: %q in pattern %q", ErrMissingParam, seg.Value, p.source)
				}
			}
			if encode {
				val = escapeParam(val)
			}
			b.WriteString(val)
		}
	}

	if p.subRoute != nil {
		if v.Sub == "" {
			return "", fmt.Errorf("%w: pattern %q", ErrMissingSubPath, p.source)
		}
		b.WriteString(v.Sub)
	} else if p.trailingSlash {
		b.WriteByte('/')
	}

	return b.String(), nil
}

const upperhex = "0123456789ABCDEF"

// escapeParam percent-encodes every byte outside the unreserved set
// [A-Za-z0-9._~-]. This is stricter than url.PathEscape: sub-delims are
// encoded too, so a matched value can never be confused with pattern
// structure when rendered back.
func escapeParam(s string) string {
	hex := 0
	for i := 0; i < len(s); i++ {
		if !isUnreservedByte(s[i]) {
			hex++
		}
	}
	if hex == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*hex)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreservedByte(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xf])
	}

	return b.String()
}

func isUnreservedByte(b byte) bool {
	switch {
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z', '0' <= b && b <= '9':
		return true
	case b == '.' || b == '_' || b == '~' || b == '-':
		return true
	}

	return false
}
