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

// Package core contains the command-string parser and the override merge
// engine used to build request templates. Nothing in this package performs
// I/O; callers are responsible for reading command files and cluster
// descriptions and for reporting the returned Diagnostics.
package core

// Field names accepted in an --instance-groups definition.
const (
	FieldInstanceGroupName   = "instanceGroupName"
	FieldNodeCount           = "nodeCount"
	FieldInstanceGroupType   = "instanceGroupType"
	FieldInstanceType        = "instanceType"
	FieldAttachedVolumes     = "attachedVolumeConfiguration"
	FieldRootVolumeSize      = "rootVolumeSize"
	FieldRecipeNames         = "recipeNames"
	FieldRecoveryMode        = "recoveryMode"
	defaultDatahubDatabase   = "NONE"
	unknownGroupName         = "unknown"
	componentFlags           = "flags"
	componentVolumes         = "volumes"
	componentGroups          = "groups"
	componentMerge           = "merge"
	instanceGroupsFlagMarker = "--instance-groups"
)

// VolumeRecord describes one attached volume entry. Keys are "size",
// "count" and "type"; absent keys are omitted. Size and count hold int64
// values unless the command carried a non-numeric value, which is kept as
// the original string.
type VolumeRecord = map[string]interface{}

// GroupRecord is one parsed instance group definition. Values are strings,
// int64 (nodeCount, rootVolumeSize), []interface{} of strings (recipeNames)
// or []interface{} of VolumeRecord (attachedVolumeConfiguration).
type GroupRecord = map[string]interface{}

// InstanceGroup is a template-shaped instance group entry. All values must
// be JSON-compatible (string, bool, int64, float64, nil, []interface{},
// map[string]interface{}).
type InstanceGroup = map[string]interface{}

// CommandGroupIndex maps an instance group name to the raw key/value
// strings found for it in the command, without any type coercion.
type CommandGroupIndex map[string]map[string]string

// FlagSet holds everything extracted from a single create command.
type FlagSet struct {
	Tags               map[string]string
	SubnetID           string
	MultiAZ            bool
	EnableLoadBalancer bool
	DatahubDatabase    string

	// InstanceGroups keeps the parsed groups in command order.
	InstanceGroups []GroupRecord
	// Overrides indexes InstanceGroups by instanceGroupName. Groups without
	// a name are not indexed.
	Overrides  map[string]GroupRecord
	GroupIndex CommandGroupIndex
}

// NewFlagSet returns a FlagSet holding the declared defaults.
func NewFlagSet() *FlagSet {
	return &FlagSet{
		Tags:            map[string]string{},
		DatahubDatabase: defaultDatahubDatabase,
		InstanceGroups:  []GroupRecord{},
		Overrides:       map[string]GroupRecord{},
		GroupIndex:      CommandGroupIndex{},
	}
}

// Override returns the override record for the named group, if any.
func (f *FlagSet) Override(name string) (GroupRecord, bool) {
	if f == nil {
		return nil, false
	}
	g, ok := f.Overrides[name]
	return g, ok
}

// GroupName returns the instanceGroupName of a record.
func GroupName(g GroupRecord) (string, bool) {
	name, ok := g[FieldInstanceGroupName].(string)
	return name, ok && name != ""
}
