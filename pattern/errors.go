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

import "errors"

// Compile-time errors, returned by Compile. A pattern that fails to
// compile must be treated as a configuration defect; these errors never
// occur while matching or rendering.
var (
	// ErrLeadingSlash indicates the pattern source does not start with "/".
	ErrLeadingSlash = errors.New("pattern must start with a slash")

	// ErrIllegalCharacter indicates a literal segment contains a character
	// outside the allowed static-path character set.
	ErrIllegalCharacter = errors.New("illegal character in literal segment")

	// ErrMisplacedSubRoute indicates a ".." segment appears before the
	// final position of the pattern.
	ErrMisplacedSubRoute = errors.New("sub-route segment must be the final segment")

	// ErrMisplacedTrailingSlash indicates an empty segment (a "//" run)
	// appears before the final position of the pattern.
	ErrMisplacedTrailingSlash = errors.New("trailing slash must be the final segment")

	// ErrDuplicateField indicates the same field name is bound more than
	// once within a single pattern, across parameters and the sub-route.
	ErrDuplicateField = errors.New("duplicate field name in pattern")
)

// Runtime errors, returned by Match and Render. These are ordinary
// recoverable results: a failed alternative simply means the caller
// moves on to the next one.
var (
	// ErrSegmentCount indicates the path has a different number of
	// segments than the pattern requires.
	ErrSegmentCount = errors.New("segment count mismatch")

	// ErrLiteralMismatch indicates a static segment did not match.
	ErrLiteralMismatch = errors.New("literal segment mismatch")

	// ErrTrailingSlash indicates the path's trailing-slash state differs
	// from what the pattern requires.
	ErrTrailingSlash = errors.New("trailing slash mismatch")

	// ErrParamDecode indicates a captured parameter could not be
	// percent-decoded.
	ErrParamDecode = errors.New("cannot decode parameter")

	// ErrMissingParam indicates a required parameter value was not
	// supplied to Render.
	ErrMissingParam = errors.New("missing required parameter")

	// ErrMissingSubPath indicates a pattern ends with a sub-route segment
	// but Render was given no nested path to append.
	ErrMissingSubPath = errors.New("missing sub-route path")
)
