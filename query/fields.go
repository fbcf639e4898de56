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

import "fmt"

// Field declares one expected query-string key: whether it must be
// present and what value stands in when it is absent. Fields are built
// with Required, Optional and Default.
type Field struct {
	name       string
	required   bool
	def        string
	hasDefault bool
}

// Required declares a field that must be present; Resolve fails with
// ErrRequiredMissing when it is absent.
func Required(name string) Field {
	return Field{name: name, required: true}
}

// Optional declares a field that may be absent. An absent optional
// field simply does not appear in the resolved map.
func Optional(name string) Field {
	return Field{name: name}
}

// Default declares an optional field that resolves to def when absent.
func Default(name, def string) Field {
	return Field{name: name, def: def, hasDefault: true}
}

// Name returns the query-string key this field binds to.
func (f Field) Name() string {
	return f.name
}

// IsRequired reports whether the field must be present.
func (f Field) IsRequired() bool {
	return f.required
}

// DefaultValue returns the declared default and whether one exists.
func (f Field) DefaultValue() (string, bool) {
	return f.def, f.hasDefault
}

// Resolve evaluates the declared fields against parsed values. Present
// fields resolve to their first value, absent defaulted fields to their
// default, and absent optional fields are omitted. An absent required
// field yields an error wrapping ErrRequiredMissing. Keys in v that no
// field declares are ignored.
func Resolve(fields []Field, v Values) (map[string]string, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	out := make(map[string]string, len(fields))
	for _, f := range fields {
		if val, ok := v.Lookup(f.name); ok {
			out[f.name] = val
			continue
		}
		if f.hasDefault {
			out[f.name] = f.def
			continue
		}
		if f.required {
			return nil, fmt.Errorf("%w: %q", ErrRequiredMissing, f.name)
		}
	}

	return out, nil
}
