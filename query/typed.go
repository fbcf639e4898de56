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
	"strconv"
	"strings"
	"time"
)

// Int parses the field as an int, returning the default value if not present or invalid.
//
// Example:
//
//	v := query.MustParse("page=3&limit=bogus")
//	page := v.Int("page", 1)   // 3
//	limit := v.Int("limit", 10) // 10
func (v Values) Int(name string, def int) int {
	q, ok := v.Lookup(name)
	if !ok {
		return def
	}

	if n, err := strconv.Atoi(q); err == nil {
		return n
	}

	return def
}

// Int64 parses the field as an int64, returning the default value if not present or invalid.
func (v Values) Int64(name string, def int64) int64 {
	q, ok := v.Lookup(name)
	if !ok {
		return def
	}

	if n, err := strconv.ParseInt(q, 10, 64); err == nil {
		return n
	}

	return def
}

// Bool parses the field as a bool, returning the default value if not present.
// Valid values: "true", "1", "yes", "on" (case-insensitive) = true; "false", "0",
// "no", "off" = false; anything else = the default.
func (v Values) Bool(name string, def bool) bool {
	q, ok := v.Lookup(name)
	if !ok {
		return def
	}

	switch strings.ToLower(strings.TrimSpace(q)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return def
	}
}

// Float64 parses the field as a float64, returning the default value if not present or invalid.
func (v Values) Float64(name string, def float64) float64 {
	q, ok := v.Lookup(name)
	if !ok {
		return def
	}

	if f, err := strconv.ParseFloat(q, 64); err == nil {
		return f
	}

	return def
}

// Duration parses the field as a time.Duration, returning the default value if
// not present or invalid. Supports standard Go duration format (e.g., "5s",
// "10m", "1h").
func (v Values) Duration(name string, def time.Duration) time.Duration {
	q, ok := v.Lookup(name)
	if !ok {
		return def
	}

	if d, err := time.ParseDuration(q); err == nil {
		return d
	}

	return def
}

// IntStrict parses the field as an int. A missing field yields
// ErrRequiredMissing and an unparseable value yields ErrInvalidValue,
// both wrapped with the field name.
func (v Values) IntStrict(name string) (int, error) {
	q, ok := v.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrRequiredMissing, name)
	}

	n, err := strconv.Atoi(q)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (%w)", ErrInvalidValue, name, err)
	}

	return n, nil
}

// Int64Strict parses the field as an int64, with the same error contract
// as IntStrict.
func (v Values) Int64Strict(name string) (int64, error) {
	q, ok := v.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrRequiredMissing, name)
	}

	n, err := strconv.ParseInt(q, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (%w)", ErrInvalidValue, name, err)
	}

	return n, nil
}

// BoolStrict parses the field as a bool using the same vocabulary as
// Bool, with the same error contract as IntStrict.
func (v Values) BoolStrict(name string) (bool, error) {
	q, ok := v.Lookup(name)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrRequiredMissing, name)
	}

	switch strings.ToLower(strings.TrimSpace(q)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q (%q is not a boolean)", ErrInvalidValue, name, q)
	}
}

// Float64Strict parses the field as a float64, with the same error
// contract as IntStrict.
func (v Values) Float64Strict(name string) (float64, error) {
	q, ok := v.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrRequiredMissing, name)
	}

	f, err := strconv.ParseFloat(q, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (%w)", ErrInvalidValue, name, err)
	}

	return f, nil
}

// DurationStrict parses the field as a time.Duration, with the same
// error contract as IntStrict.
func (v Values) DurationStrict(name string) (time.Duration, error) {
	q, ok := v.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrRequiredMissing, name)
	}

	d, err := time.ParseDuration(q)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (%w)", ErrInvalidValue, name, err)
	}

	return d, nil
}
