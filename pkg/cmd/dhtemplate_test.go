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

package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	v "gitlab.com/davidxarnold/dhtemplate/version"
)

func TestNewDHTemplateCmdNotNil(t *testing.T) {
	cmd := NewDHTemplateCmd()

	if cmd.Use != "dhtemplate" {
		t.Errorf("NewDHTemplateCmd() Use = %q, want %q", cmd.Use, "dhtemplate")
	}

	if cmd.Short == "" {
		t.Errorf("NewDHTemplateCmd() Short is empty")
	}

	if cmd.Long == "" {
		t.Errorf("NewDHTemplateCmd() Long is empty")
	}
}

func TestNewDHTemplateCmdFlags(t *testing.T) {
	cmd := NewDHTemplateCmd()

	for _, name := range []string{"config", "log-format", "verbose"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag %q not found", name)
		}
	}

	shorthands := map[string]string{
		"cluster-name":     "c",
		"input-file":       "f",
		"environment-name": "e",
		"cli-command-file": "l",
		"output":           "o",
	}
	for name, short := range shorthands {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			t.Errorf("flag %q not found", name)
			continue
		}
		if f.Shorthand != short {
			t.Errorf("flag %q shorthand = %q, want %q", name, f.Shorthand, short)
		}
	}

	for _, name := range []string{"format", "resolve-vpc", "aws-region", "no-cache", "cache-ttl", "timeout"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("flag %q not found", name)
		}
	}
}

func TestSourceFlagsValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"neither source", []string{}},
		{"both sources", []string{"-c", "dh-01", "-f", "cluster.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewDHTemplateCmd()
			cmd.SetArgs(tt.args)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			if err := cmd.Execute(); err == nil {
				t.Errorf("expected error for args %v", tt.args)
			}
		})
	}
}

func TestGenerateFromInputFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "cluster.json")
	if err := os.WriteFile(input, []byte(describeOutput), 0600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(viper.Reset)

	var out bytes.Buffer
	cmd := NewDHTemplateCmd()
	cmd.SetArgs([]string{"--config", filepath.Join(dir, "none.yaml"), "-f", input, "-e", "cli-env"})
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if !strings.Contains(out.String(), "dh-sales-01") {
		t.Errorf("summary missing cluster name:\n%s", out.String())
	}

	matches, err := filepath.Glob(filepath.Join(dir, "request-template-*", "dh-sales-01_json-file_template_*.json"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one generated template, got %v (%v)", matches, err)
	}
	tmpl := readTemplate(t, matches[0])
	if tmpl["environmentName"] != "cli-env" {
		t.Errorf("environmentName = %v, want cli-env", tmpl["environmentName"])
	}
}

func TestLoadDefaultsFromConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("defaults", map[string]interface{}{
		"instance-type": "m5.xlarge",
		"volume-size":   512,
	})

	d, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults returned error: %v", err)
	}
	if d.InstanceType != "m5.xlarge" {
		t.Errorf("InstanceType = %q, want m5.xlarge", d.InstanceType)
	}
	if d.VolumeSize != 512 {
		t.Errorf("VolumeSize = %d, want 512", d.VolumeSize)
	}
	if d.VolumeType != "gp3" {
		t.Errorf("VolumeType = %q, want the stock default gp3", d.VolumeType)
	}
}

func TestParseCmdFromStdin(t *testing.T) {
	var out bytes.Buffer
	cmd := NewDHTemplateCmd()
	cmd.SetArgs([]string{"parse", "-o", "json"})
	cmd.SetIn(strings.NewReader(sampleCommand))
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	var report ParseReport
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("parse output is not valid JSON: %v\n%s", err, out.String())
	}
	if report.SubnetID != "subnet-123" {
		t.Errorf("SubnetID = %q, want subnet-123", report.SubnetID)
	}
	if len(report.InstanceGroups) != 1 {
		t.Errorf("expected 1 instance group, got %d", len(report.InstanceGroups))
	}
}

func TestParseCmdFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "create.txt")
	if err := os.WriteFile(path, []byte(sampleCommand), 0600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	cmd := NewDHTemplateCmd()
	cmd.SetArgs([]string{"parse", path})
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !strings.Contains(out.String(), "subnet-123") {
		t.Errorf("parse table missing subnet:\n%s", out.String())
	}
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := NewDHTemplateCmd()
	cmd.SetArgs([]string{"version"})
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if strings.TrimSpace(out.String()) != v.Version {
		t.Errorf("version output = %q, want %q", out.String(), v.Version)
	}
}
