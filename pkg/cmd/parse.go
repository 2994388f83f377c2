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

	"github.com/spf13/cobra"

	"gitlab.com/davidxarnold/dhtemplate/pkg/core"
)

func newParseCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "parse [FILE]",
		Short: "Show what a cdp create command contributes to a template.",
		Long: `parse extracts tags, network settings and instance group definitions
from a cdp datahub create command. The command is read from FILE, or from
standard input when FILE is omitted or "-".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				fs    *core.FlagSet
				diags core.Diagnostics
				err   error
			)
			if len(args) == 0 || args[0] == "-" {
				data, readErr := io.ReadAll(cmd.InOrStdin())
				if readErr != nil {
					return fmt.Errorf("read command from stdin: %w", readErr)
				}
				fs, diags = core.ExtractFlags(string(data))
			} else {
				fs, diags, err = loadCommandFile(args[0])
				if err != nil {
					return err
				}
			}

			return renderParseReport(cmd.OutOrStdout(), newParseReport(fs, diags), output)
		},
	}

	cmd.Flags().StringVarP(
		&output, "output", "o", outputTable,
		"-o, --output='': Output format. One of: table|json|yaml")

	return cmd
}
