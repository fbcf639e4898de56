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

import "errors"

var (
	// ErrBadEscape is returned by Parse when a key or value carries a
	// malformed percent escape.
	ErrBadEscape = errors.New("malformed percent escape")

	// ErrRequiredMissing is returned when a required field has no pair in
	// the parsed values.
	ErrRequiredMissing = errors.New("required field missing")

	// ErrInvalidValue is returned by the strict typed getters when a
	// present value cannot be converted to the requested type.
	ErrInvalidValue = errors.New("invalid field value")
)
