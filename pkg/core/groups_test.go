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
	"reflect"
	"testing"
)

func TestParseGroupDefinitions_Full(t *testing.T) {
	input := "nodeCount=3,instanceGroupName=core,instanceType=m6i.4xlarge," +
		"attachedVolumeConfiguration=[{volumeSize=256,volumeCount=2,volumeType=gp3}]," +
		"rootVolumeSize=200,recipeNames=recipe1,recipe2"

	groups, diags := ParseGroupDefinitions(input)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}

	want := GroupRecord{
		"nodeCount":         int64(3),
		"instanceGroupName": "core",
		"instanceType":      "m6i.4xlarge",
		"attachedVolumeConfiguration": []interface{}{
			map[string]interface{}{"size": int64(256), "count": int64(2), "type": "gp3"},
		},
		"rootVolumeSize": int64(200),
		"recipeNames":    []interface{}{"recipe1", "recipe2"},
	}
	if !reflect.DeepEqual(groups[0], want) {
		t.Errorf("group = %#v\nwant %#v", groups[0], want)
	}
	if !diags.Empty() {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
}

func TestParseGroupDefinitions_Order(t *testing.T) {
	groups, _ := ParseGroupDefinitions("instanceGroupName=a instanceGroupName=b  instanceGroupName=c")

	var names []string
	for _, g := range groups {
		n, _ := GroupName(g)
		names = append(names, n)
	}
	if !reflect.DeepEqual(names, []string{"a", "b", "c"}) {
		t.Errorf("names = %v, want [a b c]", names)
	}
}

func TestParseGroupDefinitions_Cases(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  GroupRecord
	}{
		{
			name:  "volumes in the middle",
			input: "instanceGroupName=w,attachedVolumeConfiguration=[{volumeSize=10,volumeCount=1,volumeType=gp3},{volumeSize=20,volumeCount=2,volumeType=st1}],nodeCount=2",
			want: GroupRecord{
				"instanceGroupName": "w",
				"nodeCount":         int64(2),
				"attachedVolumeConfiguration": []interface{}{
					map[string]interface{}{"size": int64(10), "count": int64(1), "type": "gp3"},
					map[string]interface{}{"size": int64(20), "count": int64(2), "type": "st1"},
				},
			},
		},
		{
			name:  "volumes first",
			input: "attachedVolumeConfiguration=[{volumeSize=10}],instanceGroupName=w",
			want: GroupRecord{
				"instanceGroupName": "w",
				"attachedVolumeConfiguration": []interface{}{
					map[string]interface{}{"size": int64(10)},
				},
			},
		},
		{
			name:  "empty volume list",
			input: "instanceGroupName=w,attachedVolumeConfiguration=[]",
			want: GroupRecord{
				"instanceGroupName":           "w",
				"attachedVolumeConfiguration": []interface{}{},
			},
		},
		{
			name:  "unclosed volume list closed at end of group",
			input: "instanceGroupName=w,attachedVolumeConfiguration=[{volumeSize=10,volumeCount=2,volumeType=gp3}",
			want: GroupRecord{
				"instanceGroupName": "w",
				"attachedVolumeConfiguration": []interface{}{
					map[string]interface{}{"size": int64(10), "count": int64(2), "type": "gp3"},
				},
			},
		},
		{
			name:  "unbracketed volume value",
			input: "instanceGroupName=w,attachedVolumeConfiguration=none,nodeCount=1",
			want: GroupRecord{
				"instanceGroupName":           "w",
				"nodeCount":                   int64(1),
				"attachedVolumeConfiguration": []interface{}{},
			},
		},
		{
			name:  "non-numeric nodeCount kept as text",
			input: "instanceGroupName=w,nodeCount=three",
			want: GroupRecord{
				"instanceGroupName": "w",
				"nodeCount":         "three",
			},
		},
		{
			name:  "unknown keys pass through",
			input: "instanceGroupName=w,recoveryMode=AUTO,customKey=x=y",
			want: GroupRecord{
				"instanceGroupName": "w",
				"recoveryMode":      "AUTO",
				"customKey":         "x=y",
			},
		},
		{
			name:  "recipes followed by another key",
			input: "recipeNames=a,b,,c,instanceGroupName=w",
			want: GroupRecord{
				"instanceGroupName": "w",
				"recipeNames":       []interface{}{"a", "b", "c"},
			},
		},
		{
			name:  "empty recipes",
			input: "instanceGroupName=w,recipeNames=",
			want: GroupRecord{
				"instanceGroupName": "w",
				"recipeNames":       []interface{}{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, _ := ParseGroupDefinitions(tt.input)
			if len(groups) != 1 {
				t.Fatalf("expected 1 group, got %d", len(groups))
			}
			if !reflect.DeepEqual(groups[0], tt.want) {
				t.Errorf("group = %#v\nwant %#v", groups[0], tt.want)
			}
		})
	}
}

func TestParseGroupDefinitions_UnclosedVolumesReported(t *testing.T) {
	groups, diags := ParseGroupDefinitions("instanceGroupName=w,attachedVolumeConfiguration=[{volumeSize=10,volumeType=gp3")
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	want := []interface{}{map[string]interface{}{"size": int64(10), "type": "gp3"}}
	if !reflect.DeepEqual(groups[0][FieldAttachedVolumes], want) {
		t.Errorf("volumes = %#v, want %#v", groups[0][FieldAttachedVolumes], want)
	}
	if len(diags) != 1 || diags[0].Component != componentGroups {
		t.Errorf("expected one groups diagnostic for the unclosed list, got %v", diags)
	}
}

func TestParseGroupDefinitions_RecipeContinuation(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		recipes   []interface{}
		wantDiags int
	}{
		{
			name:      "recipes last",
			input:     "instanceGroupName=w,recipeNames=a,b",
			recipes:   []interface{}{"a", "b"},
			wantDiags: 0,
		},
		{
			name:      "bare piece before another key",
			input:     "instanceGroupName=w,recipeNames=a,garbage,nodeCount=2",
			recipes:   []interface{}{"a", "garbage"},
			wantDiags: 1,
		},
		{
			name:      "single recipe before another key",
			input:     "recipeNames=a,nodeCount=2,instanceGroupName=w",
			recipes:   []interface{}{"a"},
			wantDiags: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, diags := ParseGroupDefinitions(tt.input)
			if len(groups) != 1 {
				t.Fatalf("expected 1 group, got %d", len(groups))
			}
			if !reflect.DeepEqual(groups[0][FieldRecipeNames], tt.recipes) {
				t.Errorf("recipes = %#v, want %#v", groups[0][FieldRecipeNames], tt.recipes)
			}
			if len(diags) != tt.wantDiags {
				t.Errorf("expected %d diagnostics, got %d: %v", tt.wantDiags, len(diags), diags)
			}
		})
	}
}

func TestParseGroupDefinitions_MissingName(t *testing.T) {
	groups, diags := ParseGroupDefinitions("nodeCount=2")
	if len(groups) != 1 {
		t.Fatalf("record without a name should still be emitted, got %d groups", len(groups))
	}
	if diags.Empty() {
		t.Errorf("expected a diagnostic for the unnamed group")
	}
}

func TestParseGroupDefinitions_Blank(t *testing.T) {
	groups, diags := ParseGroupDefinitions("   ")
	if len(groups) != 0 {
		t.Errorf("expected no groups, got %v", groups)
	}
	if !diags.Empty() {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
}
