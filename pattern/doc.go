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

// Package pattern compiles URL path patterns and matches and renders
// paths against them.
//
// A pattern is a slash-separated template. Each segment is either a
// literal, a parameter introduced by ":", or, in final position only,
// a sub-route delegation point introduced by "..":
//
//	p := pattern.MustCompile("/users/:id/posts")
//
//	m, err := p.Match(pattern.SplitPath("/users/42/posts"))
//	// m.Params["id"] == "42"
//
// Matching and rendering are inverses: Render with the captures of a
// successful Match reproduces the matched path, and Match on a rendered
// path recovers the values passed to Render.
//
// # Grammar
//
//   - "/users" matches exactly /users
//   - "/users/" matches exactly /users/ (trailing slash is significant)
//   - "/users/:id" captures the second segment under the field "id"
//   - "/users/:" captures it anonymously, bound by position
//   - "/api/.." matches any path under /api/ and exposes the leftover
//     for the caller to match against nested patterns
//   - "" and "/" compile to the root pattern, matching only "/"
//
// Parameter values are percent-decoded on match and percent-encoded on
// render; literals are compared verbatim. MatchRaw and RenderRaw skip
// the codec for callers that manage encoding themselves.
package pattern
