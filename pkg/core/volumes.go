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
	"strconv"
	"strings"
)

// volumeFields maps command keys to VolumeRecord keys.
var volumeFields = map[string]string{
	"volumeSize":  "size",
	"volumeCount": "count",
	"volumeType":  "type",
}

var volumeIntFields = map[string]bool{
	"volumeSize":  true,
	"volumeCount": true,
}

// ParseVolumeList parses a value of the form
// [{volumeSize=256,volumeCount=2,volumeType=gp3},{...}] into volume records.
// Anything that is not wrapped in brackets yields an empty list.
func ParseVolumeList(value string) ([]VolumeRecord, Diagnostics) {
	var diags Diagnostics
	volumes := []VolumeRecord{}

	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "[") || !strings.HasSuffix(value, "]") {
		if value != "" {
			diags.Addf(componentVolumes, "volume list %q is not bracketed, ignoring", value)
		}
		return volumes, diags
	}

	inner := strings.TrimSpace(value[1 : len(value)-1])
	if inner == "" {
		return volumes, diags
	}

	for _, raw := range strings.Split(inner, "},{") {
		raw = strings.Trim(raw, "{}")
		vol := VolumeRecord{}
		for _, pair := range strings.Split(raw, ",") {
			k, v, ok := strings.Cut(pair, "=")
			if !ok {
				if strings.TrimSpace(pair) != "" {
					diags.Addf(componentVolumes, "skipping malformed volume pair %q", pair)
				}
				continue
			}
			k = strings.Trim(strings.TrimSpace(k), "{}")
			v = strings.Trim(strings.TrimSpace(v), "{}")
			field, known := volumeFields[k]
			if !known {
				diags.Addf(componentVolumes, "dropping unknown volume key %q", k)
				continue
			}
			vol[field] = coerceInt(k, v, volumeIntFields, &diags, componentVolumes)
		}
		if len(vol) == 0 {
			continue
		}
		volumes = append(volumes, vol)
	}
	return volumes, diags
}

// coerceInt returns v as int64 when key is one of the integer fields and v
// parses; otherwise v is returned unchanged.
func coerceInt(key, v string, intFields map[string]bool, diags *Diagnostics, component string) interface{} {
	if !intFields[key] {
		return v
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		diags.Addf(component, "%s=%q is not an integer, keeping it as text", key, v)
		return v
	}
	return n
}
