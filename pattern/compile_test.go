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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		source        string
		segments      []Segment
		trailingSlash bool
		subRoute      string
		hasSubRoute   bool
	}{
		{
			name:          "root empty",
			source:        "",
			trailingSlash: true,
		},
		{
			name:          "root slash",
			source:        "/",
			trailingSlash: true,
		},
		{
			name:     "single literal",
			source:   "/users",
			segments: []Segment{{Kind: KindLiteral, Value: "users"}},
		},
		{
			name:   "literal with trailing slash",
			source: "/users/",
			segments: []Segment{
				{Kind: KindLiteral, Value: "users"},
			},
			trailingSlash: true,
		},
		{
			name:   "named parameter",
			source: "/users/:id",
			segments: []Segment{
				{Kind: KindLiteral, Value: "users"},
				{Kind: KindParam, Value: "id"},
			},
		},
		{
			name:     "anonymous parameter",
			source:   "/:",
			segments: []Segment{{Kind: KindParam, Value: ""}},
		},
		{
			name:   "mixed parameters",
			source: "/:/docs/:slug",
			segments: []Segment{
				{Kind: KindParam, Value: ""},
				{Kind: KindLiteral, Value: "docs"},
				{Kind: KindParam, Value: "slug"},
			},
		},
		{
			name:        "anonymous sub-route",
			source:      "/api/..",
			segments:    []Segment{{Kind: KindLiteral, Value: "api"}},
			hasSubRoute: true,
		},
		{
			name:        "named sub-route",
			source:      "/api/..rest",
			segments:    []Segment{{Kind: KindLiteral, Value: "api"}},
			subRoute:    "rest",
			hasSubRoute: true,
		},
		{
			name:   "literal punctuation",
			source: "/v1.2/~user/a+b",
			segments: []Segment{
				{Kind: KindLiteral, Value: "v1.2"},
				{Kind: KindLiteral, Value: "~user"},
				{Kind: KindLiteral, Value: "a+b"},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := Compile(tt.source)
			require.NoError(t, err)

			assert.Equal(t, tt.source, p.Source())
			assert.Equal(t, tt.trailingSlash, p.TrailingSlash())
			assert.Equal(t, tt.hasSubRoute, p.HasSubRoute())

			if tt.hasSubRoute {
				name, named := p.SubRouteName()
				assert.Equal(t, tt.subRoute, name)
				assert.Equal(t, tt.subRoute != "", named)
			}

			var want []Segment
			want = append(want, tt.segments...)
			if tt.hasSubRoute {
				want = append(want, Segment{Kind: KindSubRoute, Value: tt.subRoute})
			} else if tt.trailingSlash {
				want = append(want, Segment{Kind: KindTrailingSlash})
			}
			assert.Equal(t, want, p.Segments())
		})
	}
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		wantErr error
	}{
		{
			name:    "missing leading slash",
			source:  "users",
			wantErr: ErrLeadingSlash,
		},
		{
			name:    "space in literal",
			source:  "/a b",
			wantErr: ErrIllegalCharacter,
		},
		{
			name:    "percent in literal",
			source:  "/a%20b",
			wantErr: ErrIllegalCharacter,
		},
		{
			name:    "sub-route not last",
			source:  "/a/../b",
			wantErr: ErrMisplacedSubRoute,
		},
		{
			name:    "empty interior segment",
			source:  "/a//b",
			wantErr: ErrMisplacedTrailingSlash,
		},
		{
			name:    "duplicate named parameter",
			source:  "/:id/:id",
			wantErr: ErrDuplicateField,
		},
		{
			name:    "parameter and sub-route share a name",
			source:  "/:rest/..rest",
			wantErr: ErrDuplicateField,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Compile(tt.source)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCompileDeterministic(t *testing.T) {
	t.Parallel()

	sources := []string{"", "/", "/users/:id", "/api/..rest", "/docs/:/"}
	for _, src := range sources {
		a := MustCompile(src)
		b := MustCompile(src)
		assert.True(t, a.Equal(b), "Compile(%q) should be deterministic", src)
	}
}

func TestCompileParamAccounting(t *testing.T) {
	t.Parallel()

	p := MustCompile("/:/a/:x/:/b/:y")
	assert.Equal(t, []string{"x", "y"}, p.ParamNames())
	assert.Equal(t, 2, p.AnonymousParams())
}

func TestMustCompilePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustCompile("no-slash") })
}
