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

package routes_test

import (
	"fmt"

	"waypath.dev/routes"
	"waypath.dev/routes/query"
)

// ExampleNewSet demonstrates declaring a set of route variants and
// matching a URL against them.
func ExampleNewSet() {
	set := routes.MustNewSet([]*routes.Variant{
		routes.NewVariant("home").Path("/"),
		routes.NewVariant("user").Path("/users/:id"),
	})

	res, err := set.Match("/users/42")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(res.Variant, res.Param("id"))
	// Output: user 42
}

// ExampleSet_URL demonstrates reverse routing: generating the URL of a
// variant from its parameter values.
func ExampleSet_URL() {
	set := routes.MustNewSet([]*routes.Variant{
		routes.NewVariant("hello").Path("/hello/:name"),
	})

	u, err := set.URL("hello", routes.Params{
		Named: map[string]string{"name": "John Doe"},
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(u)
	// Output: /hello/John%20Doe
}

// ExampleSet_Match_queryFields demonstrates declared query fields with
// required and defaulted values.
func ExampleSet_Match_queryFields() {
	set := routes.MustNewSet([]*routes.Variant{
		routes.NewVariant("search").Path("/search").Query(
			query.Required("q"),
			query.Default("page", "1"),
		),
	})

	res, err := set.Match("/search?q=routing")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(res.Field("q"), res.Field("page"))
	// Output: routing 1
}

// ExampleSet_Match_subRoutes demonstrates delegating the remainder of a
// path to a nested set.
func ExampleSet_Match_subRoutes() {
	api := routes.MustNewSet([]*routes.Variant{
		routes.NewVariant("item").Path("/items/:id"),
	})
	set := routes.MustNewSet([]*routes.Variant{
		routes.NewVariant("api").Path("/api/v1/..").Sub(api),
	})

	res, err := set.Match("/api/v1/items/7")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	leaf := res.Leaf()
	fmt.Println(res.Variant, leaf.Variant, leaf.Param("id"))
	// Output: api item 7
}

// ExampleSet_MatchLocales demonstrates localized alternatives.
func ExampleSet_MatchLocales() {
	set := routes.MustNewSet([]*routes.Variant{
		routes.NewVariant("about").
			PathFor([]string{"en"}, "/about").
			PathFor([]string{"fr"}, "/a-propos"),
	})

	res, err := set.MatchLocales("/a-propos", []string{"en", "fr"})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(res.Variant, res.Locales)
	// Output: about [fr]
}
