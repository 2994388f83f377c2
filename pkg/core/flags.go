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
	"regexp"
	"strings"
)

var (
	tagPairRe         = regexp.MustCompile(`key="([^"]+)",value="([^"]+)"`)
	subnetIDRe        = regexp.MustCompile(`(?:^|\s)--subnet-id\s+(\S+)`)
	datahubDatabaseRe = regexp.MustCompile(`(?:^|\s)--datahub-database\s+(\S+)`)
	lineContinuation  = strings.NewReplacer("\\\r\n", " ", "\\\n", " ")
)

// toggle describes a boolean flag with a positive and a negative marker.
type toggle struct {
	positive string
	negative string
}

var (
	multiAZToggle      = toggle{positive: "--multi-az", negative: "--no-multi-az"}
	loadBalancerToggle = toggle{positive: "--enable-load-balancer", negative: "--no-enable-load-balancer"}
)

// ExtractFlags parses a create command into a FlagSet. Missing markers
// leave the corresponding field at its default; nothing here fails.
func ExtractFlags(command string) (*FlagSet, Diagnostics) {
	var diags Diagnostics
	fs := NewFlagSet()

	command = normalizeCommand(command)

	fs.Tags = extractTags(command)
	if m := subnetIDRe.FindStringSubmatch(command); m != nil {
		fs.SubnetID = m[1]
	}
	if m := datahubDatabaseRe.FindStringSubmatch(command); m != nil {
		fs.DatahubDatabase = m[1]
	}
	fs.MultiAZ = resolveToggle(command, multiAZToggle, &diags)
	fs.EnableLoadBalancer = resolveToggle(command, loadBalancerToggle, &diags)

	if region, ok := flagRegion(command, instanceGroupsFlagMarker); ok {
		groups, groupDiags := ParseGroupDefinitions(region)
		diags.Append(groupDiags)

		fs.InstanceGroups = groups
		for _, g := range groups {
			name, ok := GroupName(g)
			if !ok {
				continue
			}
			if _, dup := fs.Overrides[name]; dup {
				diags.Addf(componentFlags, "instance group %q defined more than once, last definition wins", name)
			}
			fs.Overrides[name] = g
		}
		fs.GroupIndex = IndexCommandGroups(region)
	}

	return fs, diags
}

// normalizeCommand folds shell line continuations and the doubled quoting
// produced by exported commands ("" -> ").
func normalizeCommand(command string) string {
	command = lineContinuation.Replace(command)
	return strings.ReplaceAll(command, `""`, `"`)
}

func extractTags(command string) map[string]string {
	tags := map[string]string{}
	region, ok := flagRegion(command, "--tags")
	if !ok {
		return tags
	}
	for _, m := range tagPairRe.FindAllStringSubmatch(region, -1) {
		tags[m[1]] = m[2]
	}
	return tags
}

// resolveToggle checks the negative marker first so an explicit negative
// always wins; the positive marker only applies when no negative is given.
func resolveToggle(command string, t toggle, diags *Diagnostics) bool {
	neg := hasFlag(command, t.negative)
	pos := hasFlag(command, t.positive)
	switch {
	case neg && pos:
		diags.Addf(componentFlags, "both %s and %s given, using %s", t.positive, t.negative, t.negative)
		return false
	case neg:
		return false
	case pos:
		return true
	}
	return false
}

// IndexCommandGroups splits an --instance-groups region into raw key/value
// strings per group without coercion or bracket handling. Groups without
// an instanceGroupName are indexed as "unknown".
func IndexCommandGroups(region string) CommandGroupIndex {
	idx := CommandGroupIndex{}
	for _, def := range strings.Fields(region) {
		raw := map[string]string{}
		for _, pair := range strings.Split(def, ",") {
			k, v, ok := strings.Cut(pair, "=")
			if !ok {
				continue
			}
			raw[k] = v
		}
		name := raw[FieldInstanceGroupName]
		if name == "" {
			name = unknownGroupName
		}
		idx[name] = raw
	}
	return idx
}
