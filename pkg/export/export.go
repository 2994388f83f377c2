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

package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"sigs.k8s.io/yaml"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultDir is used when neither an output directory nor an input file is
// given.
const DefaultDir = "/tmp"

// OutputDir picks the directory templates are written under: the explicit
// output directory, else the directory holding the input file, else
// DefaultDir.
func OutputDir(output, inputFile string) string {
	switch {
	case output != "":
		return output
	case inputFile != "":
		return filepath.Dir(inputFile)
	default:
		return DefaultDir
	}
}

// Encode renders v in the given format. JSON is indented with two spaces.
func Encode(v interface{}, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal template: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML, "yml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal template: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (expected json or yaml)", format)
	}
}

// Extension returns the file extension for format.
func Extension(format string) string {
	switch strings.ToLower(format) {
	case FormatYAML, "yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Save writes v to
// <dir>/request-template-<ts>/<cluster>_<source>_template_<ts>.<ext>
// and returns the file path.
func Save(v interface{}, dir, clusterName, sourceType, format, ts string) (string, error) {
	data, err := Encode(v, format)
	if err != nil {
		return "", err
	}

	target := filepath.Join(dir, "request-template-"+ts)
	if err := os.MkdirAll(target, 0750); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", target, err)
	}

	name := fmt.Sprintf("%s_%s_template_%s.%s", clusterName, sourceType, ts, Extension(format))
	path := filepath.Join(target, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("write template %s: %w", path, err)
	}

	log.Infof("template saved to: %s", path)
	return path, nil
}
