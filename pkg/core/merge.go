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
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
)

// overridePaths maps override keys to their destination in an
// InstanceGroup. Every key owns a distinct path, so the order in which
// keys are applied does not change the result.
var overridePaths = map[string][]string{
	FieldInstanceGroupName: {"name"},
	FieldNodeCount:         {"nodeCount"},
	FieldInstanceGroupType: {"type"},
	FieldInstanceType:      {"template", "instanceType"},
	FieldAttachedVolumes:   {"template", "attachedVolumes"},
	FieldRootVolumeSize:    {"template", "rootVolume", "size"},
	FieldRecipeNames:       {"recipeNames"},
	FieldRecoveryMode:      {"recoveryMode"},
}

// OverridePath returns the destination path of an override key.
func OverridePath(key string) ([]string, bool) {
	p, ok := overridePaths[key]
	return p, ok
}

// MergeOverride returns a copy of baseline with the mapped fields of
// override written over it. Keys without a mapping are skipped and
// reported. The baseline is never modified.
func MergeOverride(baseline InstanceGroup, override GroupRecord) (InstanceGroup, Diagnostics) {
	var diags Diagnostics

	merged := InstanceGroup{}
	if baseline != nil {
		merged = runtime.DeepCopyJSON(jsonValue(map[string]interface{}(baseline)).(map[string]interface{}))
	}

	keys := make([]string, 0, len(override))
	for k := range override {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		path, ok := overridePaths[k]
		if !ok {
			diags.Addf(componentMerge, "override key %q is not supported and was dropped", k)
			continue
		}
		setPath(merged, path, jsonValue(override[k]), &diags)
	}
	return merged, diags
}

// setPath writes value at path, creating missing intermediate maps and
// replacing intermediate values that are not maps.
func setPath(obj map[string]interface{}, path []string, value interface{}, diags *Diagnostics) {
	for i := 1; i < len(path); i++ {
		existing, found, err := unstructured.NestedFieldNoCopy(obj, path[:i]...)
		if err != nil || !found {
			continue
		}
		if _, isMap := existing.(map[string]interface{}); !isMap {
			diags.Addf(componentMerge, "replacing non-object value at %v", path[:i])
			unstructured.RemoveNestedField(obj, path[:i]...)
		}
	}

	if err := unstructured.SetNestedField(obj, value, path...); err != nil {
		diags.Addf(componentMerge, "unable to set %v: %v", path, err)
	}
}

// jsonValue converts the Go types a caller may hand in to the JSON value
// forms accepted by the unstructured helpers. Values with no JSON form are
// kept as their text.
func jsonValue(v interface{}) interface{} {
	switch t := v.(type) {
	case nil, string, bool, int64, float64, json.Number:
		return v
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case uint:
		return int64(t)
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return int64(t)
	case float32:
		return float64(t)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = jsonValue(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(t))
		for _, e := range t {
			out = append(out, jsonValue(e))
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]interface{}, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out = append(out, jsonValue(rv.Index(i).Interface()))
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		out := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = jsonValue(iter.Value().Interface())
		}
		return out
	case reflect.Ptr:
		if rv.IsNil() {
			return nil
		}
		return jsonValue(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}
