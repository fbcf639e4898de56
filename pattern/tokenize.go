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

import "strings"

// Path is a tokenized request path: the raw (still percent-encoded)
// segments between slashes, plus whether the path ended with a slash.
//
// The root path "/" and the empty string both tokenize to the root Path:
// no segments and TrailingSlash set.
type Path struct {
	Segments      []string
	TrailingSlash bool
}

// SplitPath tokenizes a raw path string. The query string, if any, must
// already have been stripped by the caller. Segments are not decoded;
// decoding happens per-parameter during matching so that encoded slashes
// inside a segment cannot change the path shape.
func SplitPath(raw string) Path {
	if raw == "" || raw == "/" {
		return Path{TrailingSlash: true}
	}

	raw = strings.TrimPrefix(raw, "/")

	var trailing bool
	if strings.HasSuffix(raw, "/") {
		trailing = true
		raw = raw[:len(raw)-1]
	}

	return Path{Segments: strings.Split(raw, "/"), TrailingSlash: trailing}
}

// IsRoot reports whether p is the root path "/".
func (p Path) IsRoot() bool {
	return len(p.Segments) == 0 && p.TrailingSlash
}

// IsEmpty reports whether p has no segments and no trailing slash. An
// empty Path is the leftover of delegating a path that ended exactly at
// the sub-route boundary without a slash; no pattern matches it.
func (p Path) IsEmpty() bool {
	return len(p.Segments) == 0 && !p.TrailingSlash
}

// String renders the path back to its textual form. The empty Path
// renders as "" and the root as "/"; SplitPath(p.String()) reproduces p
// for every non-empty Path.
func (p Path) String() string {
	if len(p.Segments) == 0 {
		if p.TrailingSlash {
			return "/"
		}

		return ""
	}

	var b strings.Builder
	for _, seg := range p.Segments {
		b.WriteByte('/')
		b.WriteString(seg)
	}
	if p.TrailingSlash {
		b.WriteByte('/')
	}

	return b.String()
}
