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

package routes

import "errors"

var (
	// ErrNoMatch indicates that no variant of the set matches the path.
	ErrNoMatch = errors.New("no variant matches path")

	// ErrUnknownVariant indicates that the named variant is not in the set.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrDuplicateVariant indicates that two variants share a name.
	ErrDuplicateVariant = errors.New("duplicate variant name")

	// ErrVariantName indicates an empty or otherwise unusable variant name.
	ErrVariantName = errors.New("invalid variant name")

	// ErrNoAlternatives indicates a variant declared without any path alternative.
	ErrNoAlternatives = errors.New("variant has no path alternatives")

	// ErrNoAlternative indicates that no alternative of the variant is
	// declared for the requested locale.
	ErrNoAlternative = errors.New("no alternative for locale")

	// ErrSubSetMissing indicates a variant whose pattern delegates to a
	// sub-route but that declared no nested set.
	ErrSubSetMissing = errors.New("sub-route pattern without nested set")

	// ErrSubSetUnused indicates a variant with a nested set but no
	// alternative that delegates to it.
	ErrSubSetUnused = errors.New("nested set never delegated to")

	// ErrMissingSubValue indicates that generation reached a sub-route
	// delegation point without nested values to render.
	ErrMissingSubValue = errors.New("missing nested route values")

	// ErrMissingQueryField indicates that a required query field value was
	// not supplied for generation.
	ErrMissingQueryField = errors.New("missing required query field")

	// ErrBuild indicates that a variant's build function rejected the
	// captures of a structurally matched path.
	ErrBuild = errors.New("variant build failed")
)
