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

import "gitlab.com/davidxarnold/dhtemplate/pkg/core"

// Summary describes one generated template
type Summary struct {
	Source         string
	Cluster        string
	Environment    string
	Output         string
	Timestamp      string
	InstanceGroups int
	Warnings       int
}

// ParseReport is the machine readable result of the parse command
type ParseReport struct {
	Tags               map[string]string  `json:"tags"`
	SubnetID           string             `json:"subnetId"`
	MultiAZ            bool               `json:"multiAz"`
	EnableLoadBalancer bool               `json:"enableLoadBalancer"`
	DatahubDatabase    string             `json:"datahubDatabase"`
	InstanceGroups     []core.GroupRecord `json:"instanceGroups"`
	Diagnostics        core.Diagnostics   `json:"diagnostics"`
}

func newParseReport(fs *core.FlagSet, diags core.Diagnostics) *ParseReport {
	if diags == nil {
		diags = core.Diagnostics{}
	}
	return &ParseReport{
		Tags:               fs.Tags,
		SubnetID:           fs.SubnetID,
		MultiAZ:            fs.MultiAZ,
		EnableLoadBalancer: fs.EnableLoadBalancer,
		DatahubDatabase:    fs.DatahubDatabase,
		InstanceGroups:     fs.InstanceGroups,
		Diagnostics:        diags,
	}
}
