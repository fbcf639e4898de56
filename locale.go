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

import "slices"

// acceptedLocales is the set of locales a match is allowed to resolve
// in. The zero value accepts any locale; a non-nil set restricts the
// walk, and the set narrows through each localized alternative it
// passes on the way down a sub-route chain.
//
// Locale codes are compared as exact strings ("en", "en-US", "fr").
type acceptedLocales struct {
	any bool
	set []string
}

func acceptAny() acceptedLocales {
	return acceptedLocales{any: true}
}

func acceptOnly(locales []string) acceptedLocales {
	return acceptedLocales{set: locales}
}

// accept reports whether an alternative declared for routeLocales is
// admissible. An alternative with no locales is admissible everywhere.
func (a acceptedLocales) accept(routeLocales []string) bool {
	if a.any || len(routeLocales) == 0 {
		return true
	}

	return slices.ContainsFunc(routeLocales, func(l string) bool {
		return slices.Contains(a.set, l)
	})
}

// forSubRoute narrows the accepted set for the nested match after
// passing through an alternative declared for routeLocales.
func (a acceptedLocales) forSubRoute(routeLocales []string) acceptedLocales {
	if a.any {
		if len(routeLocales) == 0 {
			return acceptAny()
		}
		return acceptOnly(routeLocales)
	}
	if len(routeLocales) == 0 {
		return acceptOnly(a.set)
	}

	return acceptOnly(intersectLocales(a.set, routeLocales))
}

// resulting returns the locales a completed match resolves in: nil
// means every locale. Order follows the alternative's declaration.
func (a acceptedLocales) resulting(routeLocales []string) []string {
	if len(routeLocales) == 0 {
		if a.any {
			return nil
		}
		return slices.Clone(a.set)
	}
	if a.any {
		return slices.Clone(routeLocales)
	}

	return intersectLocales(a.set, routeLocales)
}

// intersectLocales keeps the route locales present in the accepted set,
// preserving route order.
func intersectLocales(accepted, routeLocales []string) []string {
	var out []string
	for _, l := range routeLocales {
		if slices.Contains(accepted, l) {
			out = append(out, l)
		}
	}

	return out
}
