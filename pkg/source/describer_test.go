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

package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFileDescriber(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "cluster.json")
	bad := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(good, []byte(`{"cluster":{"clusterName":"dh-01"}}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(`{"cluster":`), 0600); err != nil {
		t.Fatal(err)
	}

	d := LookupDescriber(SourceFile)

	data, err := d.Describe(context.Background(), good)
	if err != nil {
		t.Fatalf("Describe(%s) returned error: %v", good, err)
	}
	if string(data) != `{"cluster":{"clusterName":"dh-01"}}` {
		t.Errorf("unexpected data: %s", data)
	}

	if _, err := d.Describe(context.Background(), bad); err == nil {
		t.Errorf("expected error for invalid JSON")
	}
	if _, err := d.Describe(context.Background(), filepath.Join(dir, "missing.json")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestCDPDescriber(t *testing.T) {
	var gotName string
	var gotArgs []string
	run := func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		return []byte(`{"cluster":{"clusterName":"dh-02"}}`), nil
	}

	d := NewCDPDescriber("", run)
	data, err := d.Describe(context.Background(), "dh-02")
	if err != nil {
		t.Fatalf("Describe returned error: %v", err)
	}
	if string(data) != `{"cluster":{"clusterName":"dh-02"}}` {
		t.Errorf("unexpected data: %s", data)
	}

	if gotName != "cdp" {
		t.Errorf("binary = %q, want cdp", gotName)
	}
	wantArgs := []string{"datahub", "describe-cluster", "--cluster-name", "dh-02"}
	if !reflect.DeepEqual(gotArgs, wantArgs) {
		t.Errorf("args = %v, want %v", gotArgs, wantArgs)
	}
}

func TestCDPDescriberErrors(t *testing.T) {
	tests := []struct {
		name string
		run  Runner
	}{
		{
			name: "runner failure",
			run: func(context.Context, string, ...string) ([]byte, error) {
				return nil, errors.New("cdp exited with code 1: not authorized")
			},
		},
		{
			name: "invalid output",
			run: func(context.Context, string, ...string) ([]byte, error) {
				return []byte("Usage: cdp ..."), nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewCDPDescriber("/opt/cdp/bin/cdp", tt.run)
			if _, err := d.Describe(context.Background(), "dh-03"); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}
