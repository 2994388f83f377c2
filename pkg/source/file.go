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
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

// fileDescriber reads a describe-cluster JSON document from disk.
type fileDescriber struct{}

func (d *fileDescriber) Describe(_ context.Context, path string) ([]byte, error) {
	log.Infof("reading cluster data from file: %s", path)

	// #nosec G304 - the path is supplied by the operator on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cluster description %s: %w", path, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("cluster description %s is not valid JSON", path)
	}
	return data, nil
}

// nolint:gochecknoinits // registration-style init keeps source wiring local to this file.
func init() {
	RegisterDescriber(SourceFile, func() Describer { return &fileDescriber{} })
}
