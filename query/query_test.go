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

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		raw   string
		pairs []Pair
	}{
		{
			name: "empty",
			raw:  "",
		},
		{
			name:  "single pair",
			raw:   "a=1",
			pairs: []Pair{{Key: "a", Value: "1"}},
		},
		{
			name:  "order preserved",
			raw:   "b=2&a=1&c=3",
			pairs: []Pair{{Key: "b", Value: "2"}, {Key: "a", Value: "1"}, {Key: "c", Value: "3"}},
		},
		{
			name:  "key without equals",
			raw:   "flag",
			pairs: []Pair{{Key: "flag", Value: ""}},
		},
		{
			name:  "plus decodes to space",
			raw:   "q=hello+world",
			pairs: []Pair{{Key: "q", Value: "hello world"}},
		},
		{
			name:  "percent escapes",
			raw:   "q=a%26b&k%3D=v",
			pairs: []Pair{{Key: "q", Value: "a&b"}, {Key: "k=", Value: "v"}},
		},
		{
			name:  "leading question mark stripped",
			raw:   "?a=1",
			pairs: []Pair{{Key: "a", Value: "1"}},
		},
		{
			name:  "empty chunks skipped",
			raw:   "a=1&&b=2&",
			pairs: []Pair{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}},
		},
		{
			name:  "duplicate keys kept",
			raw:   "tag=go&tag=http",
			pairs: []Pair{{Key: "tag", Value: "go"}, {Key: "tag", Value: "http"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.pairs, v.Pairs())
		})
	}
}

func TestParseBadEscape(t *testing.T) {
	t.Parallel()

	_, err := Parse("a=%zz")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadEscape)

	_, err = Parse("%zz=1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadEscape)
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	var v Values
	v.Add("b", "2").Add("a", "hello world").Add("q", "a&b=c").Add("a", "again")

	encoded := v.Encode()
	assert.Equal(t, "b=2&a=hello+world&q=a%26b%3Dc&a=again", encoded)

	back, err := Parse(encoded)
	require.NoError(t, err)
	assert.Equal(t, v.Pairs(), back.Pairs())
}

func TestValuesAccessors(t *testing.T) {
	t.Parallel()

	v := MustParse("a=1&b=2&a=3")

	assert.Equal(t, "1", v.Get("a"))
	assert.Equal(t, []string{"1", "3"}, v.GetAll("a"))
	assert.True(t, v.Has("b"))
	assert.False(t, v.Has("missing"))

	val, ok := v.Lookup("b")
	assert.True(t, ok)
	assert.Equal(t, "2", val)

	_, ok = v.Lookup("missing")
	assert.False(t, ok)
	assert.Equal(t, "", v.Get("missing"))
}

func TestValuesMutation(t *testing.T) {
	t.Parallel()

	v := MustParse("a=1&b=2&a=3")

	// Set replaces the first occurrence and drops duplicates.
	v.Set("a", "9")
	assert.Equal(t, []Pair{{Key: "a", Value: "9"}, {Key: "b", Value: "2"}}, v.Pairs())

	// Set on an absent key appends.
	v.Set("c", "7")
	assert.Equal(t, "7", v.Get("c"))
	assert.Equal(t, 3, v.Len())

	v.Del("a")
	assert.False(t, v.Has("a"))
	assert.Equal(t, 2, v.Len())
}

func TestResolve(t *testing.T) {
	t.Parallel()

	fields := []Field{
		Required("q"),
		Default("page", "1"),
		Optional("sort"),
	}

	tests := []struct {
		name    string
		raw     string
		want    map[string]string
		wantErr error
	}{
		{
			name: "all present",
			raw:  "q=golang&page=3&sort=desc",
			want: map[string]string{"q": "golang", "page": "3", "sort": "desc"},
		},
		{
			name: "default applied and optional omitted",
			raw:  "q=golang",
			want: map[string]string{"q": "golang", "page": "1"},
		},
		{
			name: "unknown keys ignored",
			raw:  "q=golang&debug=1",
			want: map[string]string{"q": "golang", "page": "1"},
		},
		{
			name: "present empty value wins over default",
			raw:  "q=golang&page=",
			want: map[string]string{"q": "golang", "page": ""},
		},
		{
			name:    "required missing",
			raw:     "page=3",
			wantErr: ErrRequiredMissing,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Resolve(fields, MustParse(tt.raw))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveNoFields(t *testing.T) {
	t.Parallel()

	got, err := Resolve(nil, MustParse("a=1"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTypedGetters(t *testing.T) {
	t.Parallel()

	v := MustParse("page=3&limit=bogus&debug=yes&ratio=0.5&wait=5s")

	assert.Equal(t, 3, v.Int("page", 1))
	assert.Equal(t, 10, v.Int("limit", 10))
	assert.Equal(t, 10, v.Int("missing", 10))
	assert.Equal(t, int64(3), v.Int64("page", 1))
	assert.True(t, v.Bool("debug", false))
	assert.True(t, v.Bool("missing", true))
	assert.InDelta(t, 0.5, v.Float64("ratio", 0), 1e-9)
	assert.Equal(t, "5s", v.Get("wait"))
	assert.Equal(t, 5.0, v.Duration("wait", 0).Seconds())
}

func TestStrictGetters(t *testing.T) {
	t.Parallel()

	v := MustParse("page=3&limit=bogus")

	n, err := v.IntStrict("page")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = v.IntStrict("limit")
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = v.IntStrict("missing")
	assert.ErrorIs(t, err, ErrRequiredMissing)

	_, err = v.BoolStrict("limit")
	assert.ErrorIs(t, err, ErrInvalidValue)
}
