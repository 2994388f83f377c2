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
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gitlab.com/davidxarnold/dhtemplate/pkg/template"
	"gitlab.com/davidxarnold/dhtemplate/pkg/util"
	v "gitlab.com/davidxarnold/dhtemplate/version"
)

const envPrefix = "DHTEMPLATE"

var cfgFile string

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			log.Fatalln(err)
		}

		// Search config in home directory with name ".dhtemplate" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".dhtemplate")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Debugln("Using config file:", viper.ConfigFileUsed())
	}
}

// loadDefaults returns the stock defaults overlaid with the "defaults"
// section of the configuration.
func loadDefaults() (template.Defaults, error) {
	d := template.DefaultDefaults()
	if err := viper.UnmarshalKey("defaults", &d); err != nil {
		return d, fmt.Errorf("invalid defaults configuration: %w", err)
	}
	return d, nil
}

// NewDHTemplateCmd provides the root cobra command. Running it generates a
// request template; parse and version are subcommands.
func NewDHTemplateCmd() *cobra.Command {
	var opts GenerateOptions

	cmd := &cobra.Command{
		Use:   "dhtemplate",
		Short: "Generate DataHub request templates from running clusters or JSON files.",
		Long: `dhtemplate builds a DistroX create request template from a DataHub
describe-cluster document, optionally refined by the cdp create command the
cluster was built with.`,
		Example: `  # Generate from running cluster
  dhtemplate --cluster-name dh-sales-01 --output ./templates

  # Generate from JSON file with the original create command
  dhtemplate --input-file cluster.json --cli-command-file create.txt`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return util.SetupLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := loadDefaults()
			if err != nil {
				return err
			}
			opts.Format = viper.GetString("format")
			opts.Output = viper.GetString("output")
			opts.ResolveVPC = viper.GetBool("resolve-vpc")
			opts.Region = viper.GetString("aws-region")
			opts.NoCache = viper.GetBool("no-cache")
			opts.CacheTTL = viper.GetDuration("cache-ttl")

			ctx := cmd.Context()
			if timeout := viper.GetDuration("timeout"); timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			g := newGenerator(defaults)
			summary, err := g.Run(ctx, opts)
			if err != nil {
				return fmt.Errorf("template generation failed: %w", err)
			}
			renderSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Version = v.Version

	cmd.PersistentFlags().StringVar(
		&cfgFile, "config", "",
		"config file (default is $HOME/.dhtemplate.yaml)")
	cmd.PersistentFlags().String(
		"log-format", "text",
		"--log-format='': Log format. One of: text|json")
	cmd.PersistentFlags().BoolP(
		"verbose", "v", false,
		"-v, --verbose  Enable debug logging. true|false")
	_ = viper.BindPFlag("log-format", cmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))

	cmd.Flags().StringVarP(
		&opts.ClusterName, "cluster-name", "c", "",
		"-c, --cluster-name='': Name of the running cluster to describe")
	cmd.Flags().StringVarP(
		&opts.InputFile, "input-file", "f", "",
		"-f, --input-file='': Path to JSON file containing cluster description data")
	cmd.Flags().StringVarP(
		&opts.EnvironmentName, "environment-name", "e", "",
		"-e, --environment-name='': Override environment name in the generated template")
	cmd.Flags().StringVarP(
		&opts.CommandFile, "cli-command-file", "l", "",
		"-l, --cli-command-file='': Path to file containing the cdp create command for additional configuration")
	cmd.Flags().StringP(
		"output", "o", "",
		"-o, --output='': Output directory for generated templates (default: input file directory or /tmp)")
	cmd.Flags().String(
		"format", "json",
		"--format='': Template format. One of: json|yaml")
	cmd.Flags().Bool(
		"resolve-vpc", false,
		"--resolve-vpc  Look up the VPC of the template subnets in AWS. true|false")
	cmd.Flags().String(
		"aws-region", "",
		"--aws-region='': AWS region used with --resolve-vpc (default from AWS config)")
	cmd.Flags().Bool(
		"no-cache", false,
		"--no-cache  Always run describe-cluster instead of using the cached result. true|false")
	cmd.Flags().Duration(
		"cache-ttl", 10*time.Minute,
		"--cache-ttl=10m: How long cached describe-cluster output stays valid")
	cmd.Flags().Duration(
		"timeout", 2*time.Minute,
		"--timeout=2m: Limit for cluster lookups")

	cmd.MarkFlagsMutuallyExclusive("cluster-name", "input-file")
	cmd.MarkFlagsOneRequired("cluster-name", "input-file")

	for _, name := range []string{"output", "format", "resolve-vpc", "aws-region", "no-cache", "cache-ttl", "timeout"} {
		_ = viper.BindPFlag(name, cmd.Flags().Lookup(name))
	}

	cmd.AddCommand(newParseCmd(), newVersionCmd())
	cobra.OnInitialize(initConfig)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the dhtemplate version.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), v.Version)
		},
	}
}
