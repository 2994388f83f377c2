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

// Package source retrieves cluster descriptions, either from a JSON file
// or from the CDP CLI.
package source

import "context"

// Describer is implemented by sources capable of returning the raw
// describe-cluster JSON for a reference (a file path or a cluster name).
type Describer interface {
	Describe(ctx context.Context, ref string) ([]byte, error)
}

// DescriberFactory creates a new Describer instance.
type DescriberFactory func() Describer

// Source names used by the CLI and in output file names.
const (
	SourceFile = "file"
	SourceCDP  = "cdp"
)

var describerRegistry = map[string]DescriberFactory{}

// RegisterDescriber registers a describer factory under the given name.
// It is typically called from init() functions in source-specific files.
func RegisterDescriber(name string, factory DescriberFactory) {
	describerRegistry[name] = factory
}

// LookupDescriber returns the Describer registered under name.
// Unknown names return nil.
func LookupDescriber(name string) Describer {
	if factory, ok := describerRegistry[name]; ok {
		return factory()
	}
	return nil
}

// TypeLabel returns the label used for a source in output file names.
func TypeLabel(name string) string {
	switch name {
	case SourceCDP:
		return "running-cluster"
	case SourceFile:
		return "json-file"
	}
	return name
}
