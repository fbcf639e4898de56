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

func TestPatternRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		values Values
		want   string
	}{
		{
			name:   "root",
			source: "/",
			want:   "/",
		},
		{
			name:   "literal only",
			source: "/users",
			want:   "/users",
		},
		{
			name:   "named parameter",
			source: "/users/:id",
			values: Values{Named: map[string]string{"id": "42"}},
			want:   "/users/42",
		},
		{
			name:   "parameter encoding",
			source: "/hello/:name",
			values: Values{Named: map[string]string{"name": "John Doe"}},
			want:   "/hello/John%20Doe",
		},
		{
			name:   "slash inside value is encoded",
			source: "/files/:path",
			values: Values{Named: map[string]string{"path": "a/b"}},
			want:   "/files/a%2Fb",
		},
		{
			name:   "anonymous parameters in order",
			source: "/:/x/:",
			values: Values{Positional: []string{"a", "b"}},
			want:   "/a/x/b",
		},
		{
			name:   "trailing slash",
			source: "/users/",
			want:   "/users/",
		},
		{
			name:   "sub-route append",
			source: "/api/..",
			values: Values{Sub: "/v1/users"},
			want:   "/api/v1/users",
		},
		{
			name:   "sub-route to nested root",
			source: "/api/..",
			values: Values{Sub: "/"},
			want:   "/api/",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := MustCompile(tt.source)
			got, err := p.Render(tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPatternRenderErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		values  Values
		wantErr error
	}{
		{
			name:    "missing named parameter",
			source:  "/users/:id",
			wantErr: ErrMissingParam,
		},
		{
			name:    "missing positional parameter",
			source:  "/:/:",
			values:  Values{Positional: []string{"only-one"}},
			wantErr: ErrMissingParam,
		},
		{
			name:    "missing sub path",
			source:  "/api/..",
			wantErr: ErrMissingSubPath,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := MustCompile(tt.source)
			_, err := p.Render(tt.values)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPatternRenderRaw(t *testing.T) {
	t.Parallel()

	p := MustCompile("/hello/:name")
	got, err := p.RenderRaw(Values{Named: map[string]string{"name": "John Doe"}})
	require.NoError(t, err)
	assert.Equal(t, "/hello/John Doe", got)
}

func TestRenderMatchRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		values Values
	}{
		{
			name:   "plain value",
			source: "/users/:id",
			values: Values{Named: map[string]string{"id": "42"}},
		},
		{
			name:   "value needing encoding",
			source: "/search/:q",
			values: Values{Named: map[string]string{"q": "a/b c%d?e"}},
		},
		{
			name:   "positional values",
			source: "/:/:",
			values: Values{Positional: []string{"x y", "z"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := MustCompile(tt.source)
			rendered, err := p.Render(tt.values)
			require.NoError(t, err)

			m, err := p.Match(SplitPath(rendered))
			require.NoError(t, err)

			for name, want := range tt.values.Named {
				assert.Equal(t, want, m.Params[name])
			}
			assert.Equal(t, tt.values.Positional, m.Positional)
		})
	}
}

func TestEscapeParam(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc-XYZ_0.9~", escapeParam("abc-XYZ_0.9~"))
	assert.Equal(t, "a%20b", escapeParam("a b"))
	assert.Equal(t, "a%2Fb", escapeParam("a/b"))
	assert.Equal(t, "%2B", escapeParam("+"))
	assert.Equal(t, "%25", escapeParam("%"))
	assert.Equal(t, "%C3%A9", escapeParam("é"))
}
