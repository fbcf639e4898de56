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
	"fmt"
	"net/url"
	"strings"
)

// Pair is one key/value entry of a query string. A key that appeared
// without "=" parses to a Pair with an empty Value.
type Pair struct {
	Key   string
	Value string
}

// Values is an ordered multiset of query pairs. Unlike url.Values it
// preserves insertion order, so Encode reproduces the pair order the
// string was parsed or built with. The zero Values is empty and ready
// to use.
type Values struct {
	pairs []Pair
}

// Parse decodes a raw query string into ordered Values. A single
// leading "?" is tolerated and stripped. Keys and values are
// percent-decoded and "+" decodes to a space; a malformed escape yields
// an error wrapping ErrBadEscape. Empty chunks between "&" are skipped.
func Parse(raw string) (Values, error) {
	raw = strings.TrimPrefix(raw, "?")

	var v Values
	if raw == "" {
		return v, nil
	}

	for _, chunk := range strings.Split(raw, "&") {
		if chunk == "" {
			continue
		}

		key, val, _ := strings.Cut(chunk, "=")

		key, err := url.QueryUnescape(key)
		if err != nil {
			return Values{}, fmt.Errorf("%w: key %q: %v", ErrBadEscape, chunk, err)
		}
		val, err = url.QueryUnescape(val)
		if err != nil {
			return Values{}, fmt.Errorf("%w: value %q: %v", ErrBadEscape, chunk, err)
		}

		v.pairs = append(v.pairs, Pair{Key: key, Value: val})
	}

	return v, nil
}

// MustParse is like Parse but panics on error. Use it for query strings
// known at startup.
func MustParse(raw string) Values {
	v, err := Parse(raw)
	if err != nil {
		panic(fmt.Sprintf("query: Parse(%q): %v", raw, err))
	}

	return v
}

// Encode renders the pairs back into a query string in insertion order,
// percent-encoding keys and values with spaces written as "+". It is
// the inverse of Parse: Parse(v.Encode()) reproduces v. The result has
// no leading "?".
func (v Values) Encode() string {
	if len(v.pairs) == 0 {
		return ""
	}

	var b strings.Builder
	for i, p := range v.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}

	return b.String()
}

// Get returns the value of the first pair with the given key, or the
// empty string when absent. Use Lookup to distinguish an absent key
// from an empty value.
func (v Values) Get(key string) string {
	s, _ := v.Lookup(key)
	return s
}

// Lookup returns the value of the first pair with the given key and
// whether such a pair exists.
func (v Values) Lookup(key string) (string, bool) {
	for _, p := range v.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}

	return "", false
}

// Has reports whether at least one pair with the given key exists.
func (v Values) Has(key string) bool {
	_, ok := v.Lookup(key)
	return ok
}

// GetAll returns the values of every pair with the given key, in order.
func (v Values) GetAll(key string) []string {
	var out []string
	for _, p := range v.pairs {
		if p.Key == key {
			out = append(out, p.Value)
		}
	}

	return out
}

// Add appends a pair, keeping any existing pairs with the same key.
func (v *Values) Add(key, value string) *Values {
	v.pairs = append(v.pairs, Pair{Key: key, Value: value})
	return v
}

// Set replaces the first pair with the given key, removing any further
// duplicates, or appends when the key is absent.
func (v *Values) Set(key, value string) *Values {
	seen := false
	out := v.pairs[:0]
	for _, p := range v.pairs {
		if p.Key == key {
			if !seen {
				p.Value = value
				out = append(out, p)
				seen = true
			}
			continue
		}
		out = append(out, p)
	}
	if !seen {
		out = append(out, Pair{Key: key, Value: value})
	}
	v.pairs = out

	return v
}

// Del removes every pair with the given key.
func (v *Values) Del(key string) *Values {
	out := v.pairs[:0]
	for _, p := range v.pairs {
		if p.Key != key {
			out = append(out, p)
		}
	}
	v.pairs = out

	return v
}

// Len returns the number of pairs.
func (v Values) Len() int {
	return len(v.pairs)
}

// Pairs returns a copy of the pairs in order.
func (v Values) Pairs() []Pair {
	if len(v.pairs) == 0 {
		return nil
	}

	out := make([]Pair, len(v.pairs))
	copy(out, v.pairs)

	return out
}
