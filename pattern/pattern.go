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

// Kind identifies the structural role of a Segment within a Pattern.
type Kind uint8

const (
	// KindLiteral is a static path segment that must match exactly.
	KindLiteral Kind = iota

	// KindParam is a dynamic segment captured by name, or positionally
	// when the name is empty (an anonymous parameter).
	KindParam

	// KindTrailingSlash marks a pattern that requires the matched path to
	// end with a slash. It can only be the final segment.
	KindTrailingSlash

	// KindSubRoute marks a delegation point: everything after the
	// preceding segments is handed to a nested pattern set. It can only
	// be the final segment.
	KindSubRoute
)

// String returns the segment kind name for diagnostics and tests.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindParam:
		return "param"
	case KindTrailingSlash:
		return "trailing-slash"
	case KindSubRoute:
		return "sub-route"
	default:
		return "unknown"
	}
}

// Segment is one structural unit of a compiled pattern.
//
// Value holds the literal text for KindLiteral, the field name for
// KindParam and KindSubRoute (empty for anonymous forms), and is always
// empty for KindTrailingSlash.
type Segment struct {
	Kind  Kind
	Value string
}

// Pattern is the compiled, immutable form of one route-shape string.
// Patterns are created by Compile and never mutated afterward, so they
// may be read concurrently without synchronization.
type Pattern struct {
	source        string
	segments      []Segment // KindLiteral and KindParam only, in order
	subRoute      *Segment  // terminal KindSubRoute, nil if absent
	trailingSlash bool
	namedParams   int // count of named KindParam segments
	anonParams    int // count of anonymous KindParam segments
}

// Source returns the pattern string this Pattern was compiled from.
func (p *Pattern) Source() string {
	return p.source
}

// Segments returns the full segment sequence, including the terminal
// KindTrailingSlash or KindSubRoute segment when present. The returned
// slice is a copy; callers may not mutate the Pattern through it.
func (p *Pattern) Segments() []Segment {
	out := make([]Segment, 0, len(p.segments)+1)
	out = append(out, p.segments...)

	switch {
	case p.subRoute != nil:
		out = append(out, *p.subRoute)
	case p.trailingSlash:
		out = append(out, Segment{Kind: KindTrailingSlash})
	}

	return out
}

// HasSubRoute reports whether the pattern ends with a sub-route
// delegation segment.
func (p *Pattern) HasSubRoute() bool {
	return p.subRoute != nil
}

// SubRouteName returns the sub-route field name and whether a sub-route
// segment is present. The name is empty for an anonymous sub-route.
func (p *Pattern) SubRouteName() (string, bool) {
	if p.subRoute == nil {
		return "", false
	}

	return p.subRoute.Value, true
}

// TrailingSlash reports whether the pattern requires the matched path to
// end with a slash.
func (p *Pattern) TrailingSlash() bool {
	return p.trailingSlash
}

// ParamNames returns the named parameter fields in capture order.
// Anonymous parameters are not included; see AnonymousParams.
func (p *Pattern) ParamNames() []string {
	if p.namedParams == 0 {
		return nil
	}

	names := make([]string, 0, p.namedParams)
	for _, seg := range p.segments {
		if seg.Kind == KindParam && seg.Value != "" {
			names = append(names, seg.Value)
		}
	}

	return names
}

// AnonymousParams returns the number of anonymous parameter segments.
// Anonymous captures bind positionally, in segment order.
func (p *Pattern) AnonymousParams() int {
	return p.anonParams
}

// IsRoot reports whether this is the root pattern, which matches only
// the path "/".
func (p *Pattern) IsRoot() bool {
	return len(p.segments) == 0 && p.subRoute == nil && p.trailingSlash
}

// Equal reports whether two compiled patterns are structurally equal,
// ignoring the source string they were compiled from.
func (p *Pattern) Equal(other *Pattern) bool {
	if other == nil {
		return false
	}
	if p.trailingSlash != other.trailingSlash {
		return false
	}
	if (p.subRoute == nil) != (other.subRoute == nil) {
		return false
	}
	if p.subRoute != nil && p.subRoute.Value != other.subRoute.Value {
		return false
	}
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i, seg := range p.segments {
		if seg != other.segments[i] {
			return false
		}
	}

	return true
}
