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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Runner executes a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// cdpDescriber runs `cdp datahub describe-cluster` for a cluster name.
type cdpDescriber struct {
	binary string
	run    Runner
}

// NewCDPDescriber returns a Describer that shells out to the cdp binary
// through run.
func NewCDPDescriber(binary string, run Runner) Describer {
	if binary == "" {
		binary = "cdp"
	}
	if run == nil {
		run = execRunner
	}
	return &cdpDescriber{binary: binary, run: run}
}

func (d *cdpDescriber) Describe(ctx context.Context, clusterName string) ([]byte, error) {
	log.Infof("fetching cluster data for %q using CDP CLI", clusterName)

	out, err := d.run(ctx, d.binary, "datahub", "describe-cluster", "--cluster-name", clusterName)
	if err != nil {
		return nil, fmt.Errorf("describe cluster %s: %w", clusterName, err)
	}
	if !json.Valid(out) {
		return nil, fmt.Errorf("describe cluster %s: CLI output is not valid JSON", clusterName)
	}

	log.Debugf("retrieved %d bytes of cluster data for %q", len(out), clusterName)
	return out, nil
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer

	// #nosec G204 - arguments are fixed apart from the cluster name
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return nil, fmt.Errorf("%s exited with code %d: %s", name, ee.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// nolint:gochecknoinits // registration-style init keeps source wiring local to this file.
func init() {
	RegisterDescriber(SourceCDP, func() Describer { return NewCDPDescriber("", nil) })
}
