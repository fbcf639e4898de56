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

// Package routes maps URLs to named route variants and back.
//
// A Set is an ordered table of variants, each declaring one or more
// path alternatives in a small pattern grammar. The same table drives
// both directions: Match extracts a variant name and its captures from
// a URL, and URL renders a variant name and values back into a URL, so
// links can never drift out of sync with the routes that serve them.
//
//	set := routes.MustNewSet([]*routes.Variant{
//	    routes.NewVariant("home").Path("/"),
//	    routes.NewVariant("user").Path("/users/:id"),
//	    routes.NewVariant("search").Path("/search").
//	        Query(query.Required("q"), query.Default("page", "1")),
//	})
//
//	res, err := set.Match("/users/42")
//	// res.Variant == "user", res.Param("id") == "42"
//
//	u, err := set.URL("user", routes.Params{
//	    Named: map[string]string{"id": "42"},
//	})
//	// u == "/users/42"
//
// Variants are tried in declaration order and the first alternative
// whose shape fits the path wins, so more specific variants belong
// before catch-alls.
//
// # Sub-routes
//
// An alternative ending in ".." delegates the rest of the path to a
// nested Set attached with Sub. Nesting composes: the nested set may
// itself delegate. All levels of a match share the URL's single query
// string, and generation assembles one query string from every level's
// declared fields.
//
//	api := routes.MustNewSet([]*routes.Variant{
//	    routes.NewVariant("list").Path("/users"),
//	    routes.NewVariant("user").Path("/users/:id"),
//	})
//	root := routes.MustNewSet([]*routes.Variant{
//	    routes.NewVariant("api").Path("/api/..").Sub(api),
//	})
//
//	res, _ := root.Match("/api/users/7")
//	// res.Variant == "api", res.Sub.Variant == "user"
//
// # Localized alternatives
//
// PathFor declares an alternative for specific locale codes. Match
// reports the locales a URL belongs to, MatchLocales restricts matching
// to an accepted list, and ForLocale selects the alternative rendered
// by URL. Locale restrictions narrow through sub-route delegation.
//
// # Observability
//
// WithDiagnostics surfaces construction-time anomalies (shadowed
// alternatives, heavy parameter lists) and WithMetrics records match
// and generation outcomes through the metrics subpackage's
// OpenTelemetry recorder. Both are optional and change no behavior.
package routes
