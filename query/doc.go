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

// Package query is an order-preserving query-string codec with declared
// field sets and typed accessors.
//
// Parse and Encode are inverses and keep pair order, so a query string
// survives a decode/encode round trip byte for byte (modulo equivalent
// escapes):
//
//	v, err := query.Parse("page=3&tags=go&tags=http")
//	v.Get("page")     // "3"
//	v.GetAll("tags")  // ["go", "http"]
//	v.Encode()        // "page=3&tags=go&tags=http"
//
// # Declared fields
//
// Resolve checks parsed values against a declared shape: Required fields
// must be present, Default fields fill in when absent, Optional fields
// may be missing. Undeclared keys are ignored, so adding new keys to a
// URL never breaks existing consumers.
//
//	fields := []query.Field{
//	    query.Required("q"),
//	    query.Default("page", "1"),
//	    query.Optional("sort"),
//	}
//	resolved, err := query.Resolve(fields, v)
//
// # Typed accessors
//
// Int, Bool, Float64 and Duration return a caller-supplied default for
// absent or unparseable values; the Strict variants surface conversion
// failures as errors wrapping ErrInvalidValue instead.
package query
