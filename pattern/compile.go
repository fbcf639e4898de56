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

// Compile parses a pattern source string into a compiled Pattern.
//
// The grammar, segment by segment after the mandatory leading slash:
//
//   - a token starting with ":" is a parameter; the remainder is the
//     field name, or empty for an anonymous (positional) parameter
//   - a token starting with ".." is a sub-route delegation point and
//     must be the final token; the remainder is the optional field name
//   - an empty final token (the source ends in "/") requires a trailing
//     slash on matched paths
//   - anything else is a literal, restricted to ASCII alphanumerics and
//     . - _ ~ ! $ & ' ( ) * + , ; = : @
//
// The sources "" and "/" both compile to the root pattern, which matches
// only the root path "/". Compiling the same source twice yields
// structurally equal patterns.
//
// Compile errors are configuration-time failures: they are returned for
// malformed sources and are never encountered while matching.
func Compile(source string) (*Pattern, error) {
	if source == "" || source == "/" {
		return &Pattern{source: source, trailingSlash: true}, nil
	}

	if source[0] != '/' {
		return nil, fmt.Errorf("%w: %q", ErrLeadingSlash, source)
	}

	p := &Pattern{source: source}
	tokens := strings.Split(source[1:], "/")
	fields := make(map[string]struct{})

	bindField := func(name string) error {
		if name == "" {
			return nil // anonymous forms bind positionally, never collide
		}
		if _, dup := fields[name]; dup {
			return fmt.Errorf("%w: %q in %q", ErrDuplicateField, name, source)
		}
		fields[name] = struct{}{}

		return nil
	}

	for i, tok := range tokens {
		last := i == len(tokens)-1

		switch {
		case strings.HasPrefix(tok, ".."):
			if !last {
				return nil, fmt.Errorf("%w: %q in %q", ErrMisplacedSubRoute, tok, source)
			}
			name := tok[2:]
			if err := bindField(name); err != nil {
				return nil, err
			}
			p.subRoute = &Segment{Kind: KindSubRoute, Value: name}

		case strings.HasPrefix(tok, ":"):
			name := tok[1:]
			if err := bindField(name); err != nil {
				return nil, err
			}
			p.segments = append(p.segments, Segment{Kind: KindParam, Value: name})
			if name == "" {
				p.anonParams++
			} else {
				p.namedParams++
			}

		case tok == "":
			if !last {
				return nil, fmt.Errorf("%w: empty segment at position %d in %q", ErrMisplacedTrailingSlash, i, source)
			}
			p.trailingSlash = true

		default:
			if bad, ok := disallowedByte(tok); ok {
				return nil, fmt.Errorf("%w: %q in segment %q of %q", ErrIllegalCharacter, bad, tok, source)
			}
			p.segments = append(p.segments, Segment{Kind: KindLiteral, Value: tok})
		}
	}

	return p, nil
}

// MustCompile is like Compile but panics on error. Use it for pattern
// literals known at startup, the way regexp.MustCompile is used.
func MustCompile(source string) *Pattern {
	p, err := Compile(source)
	if err != nil {
		panic(fmt.Sprintf("pattern: Compile(%q): %v", source, err))
	}

	return p
}

// disallowedByte returns the first byte of s outside the allowed
// static-path character set, if any.
func disallowedByte(s string) (byte, bool) {
	for i := 0; i < len(s); i++ {
		if !isLiteralByte(s[i]) {
			return s[i], true
		}
	}

	return 0, false
}

// isLiteralByte reports whether b may appear in a literal segment:
// ASCII alphanumerics plus the URL path characters that never require
// percent-encoding in a segment.
func isLiteralByte(b byte) bool {
	switch {
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z', '0' <= b && b <= '9':
		return true
	}

	switch b {
	case '.', '-', '_', '~', '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=', ':', '@':
		return true
	}

	return false
}
