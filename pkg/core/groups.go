/*
Copyright 2025 David Arnold
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at
    http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package core

import (
	"strings"
)

var groupIntFields = map[string]bool{
	FieldNodeCount:      true,
	FieldRootVolumeSize: true,
}

// ParseGroupDefinitions parses the value of --instance-groups. Groups are
// separated by whitespace and hold comma separated key=value pairs; values
// therefore cannot contain spaces. The returned records keep command order.
func ParseGroupDefinitions(region string) ([]GroupRecord, Diagnostics) {
	var diags Diagnostics
	groups := []GroupRecord{}

	for i, def := range strings.Fields(region) {
		g := parseGroup(def, &diags)
		if _, ok := GroupName(g); !ok {
			diags.Addf(componentGroups, "group definition %d has no %s and will not match any instance group", i+1, FieldInstanceGroupName)
		}
		groups = append(groups, g)
	}
	return groups, diags
}

func parseGroup(def string, diags *Diagnostics) GroupRecord {
	g := GroupRecord{}

	marker := FieldAttachedVolumes + "="
	i := strings.Index(def, marker)
	if i < 0 {
		parsePairs(def, g, diags)
		return g
	}

	before := def[:i]
	rest := def[i+len(marker):]

	var value, after string
	if n, closed := ScanBracketed(rest); n > 0 {
		value, after = rest[:n], rest[n:]
		if !closed {
			diags.Addf(componentGroups, "unbalanced brackets in %s, closing at end of group", FieldAttachedVolumes)
			value += strings.Repeat("]", openBrackets(value))
		}
	} else {
		// Not a bracketed list: the value runs to the next comma.
		value, after, _ = strings.Cut(rest, ",")
	}

	parsePairs(before, g, diags)
	parsePairs(after, g, diags)

	volumes, volDiags := ParseVolumeList(value)
	diags.Append(volDiags)
	list := make([]interface{}, 0, len(volumes))
	for _, v := range volumes {
		list = append(list, v)
	}
	g[FieldAttachedVolumes] = list
	return g
}

// parsePairs adds the comma separated key=value pairs in s to g. A piece
// without '=' that follows a recipeNames pair is taken as another recipe.
// When more pairs follow such pieces the reading is ambiguous and is
// reported.
func parsePairs(s string, g GroupRecord, diags *Diagnostics) {
	var recipes []interface{}
	var continued []string
	inRecipes := false

	for _, piece := range strings.Split(s, ",") {
		if strings.TrimSpace(piece) == "" {
			continue
		}
		k, v, ok := strings.Cut(piece, "=")
		if !ok {
			if inRecipes {
				recipe := strings.TrimSpace(piece)
				continued = append(continued, recipe)
				recipes = append(recipes, recipe)
				continue
			}
			diags.Addf(componentGroups, "skipping malformed pair %q", piece)
			continue
		}

		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if len(continued) > 0 {
			diags.Addf(componentGroups, "bare entries %q were read as %s before %s", continued, FieldRecipeNames, k)
			continued = nil
		}
		inRecipes = k == FieldRecipeNames
		if inRecipes {
			recipes = splitList(v)
			g[k] = recipes
			continue
		}
		g[k] = coerceInt(k, v, groupIntFields, diags, componentGroups)
	}

	if recipes != nil {
		g[FieldRecipeNames] = recipes
	}
}

// openBrackets returns how many '[' in s are left without a matching ']'.
func openBrackets(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		}
	}
	return depth
}

func splitList(v string) []interface{} {
	out := []interface{}{}
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
