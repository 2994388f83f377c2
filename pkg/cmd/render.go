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
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	pt "github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"

	"gitlab.com/davidxarnold/dhtemplate/pkg/core"
	"gitlab.com/davidxarnold/dhtemplate/pkg/export"
)

const outputTable = "table"

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// newTable returns a table writer mirrored to w. Terminals get the coloured
// style, everything else the plain borderless layout.
func newTable(w io.Writer) pt.Writer {
	t := pt.NewWriter()
	t.SetOutputMirror(w)
	if isTerminal(w) {
		t.SetStyle(pt.StyleColoredBright)
		return t
	}
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateFooter = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateRows = false
	return t
}

func renderSummary(w io.Writer, s *Summary) {
	t := newTable(w)
	t.SetTitle("Template Generation Summary")
	t.AppendRows([]pt.Row{
		{"Source", s.Source},
		{"Cluster", s.Cluster},
		{"Environment", s.Environment},
		{"Output", s.Output},
		{"Timestamp", s.Timestamp},
		{"Instance Groups", s.InstanceGroups},
		{"Warnings", s.Warnings},
	})
	t.Render()
}

func renderParseReport(w io.Writer, r *ParseReport, format string) error {
	switch strings.ToLower(format) {
	case "", outputTable:
		renderParseTable(w, r)
		return nil
	default:
		data, err := export.Encode(r, format)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
}

func renderParseTable(w io.Writer, r *ParseReport) {
	t := newTable(w)
	t.SetTitle("Command Flags")
	t.AppendRows([]pt.Row{
		{"Subnet", r.SubnetID},
		{"Multi AZ", r.MultiAZ},
		{"Load Balancer", r.EnableLoadBalancer},
		{"Datahub Database", r.DatahubDatabase},
	})
	for _, k := range sortedKeys(r.Tags) {
		t.AppendRow(pt.Row{"Tag " + k, r.Tags[k]})
	}
	t.Render()

	if len(r.InstanceGroups) > 0 {
		g := newTable(w)
		g.SetTitle("Instance Groups")
		g.AppendHeader(pt.Row{"Name", "Settings"})
		for _, group := range r.InstanceGroups {
			name, ok := core.GroupName(group)
			if !ok {
				name = "<unnamed>"
			}
			g.AppendRow(pt.Row{name, formatGroup(group)})
		}
		g.Render()
	}

	if len(r.Diagnostics) > 0 {
		d := newTable(w)
		d.SetTitle("Warnings")
		d.AppendHeader(pt.Row{"Component", "Message"})
		for _, warning := range r.Diagnostics {
			d.AppendRow(pt.Row{warning.Component, warning.Message})
		}
		d.Render()
	}
}

// formatGroup lists the settings of a group except its name, sorted by key.
func formatGroup(g core.GroupRecord) string {
	keys := make([]string, 0, len(g))
	for k := range g {
		if k != core.FieldInstanceGroupName {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, g[k]))
	}
	return strings.Join(parts, " ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
