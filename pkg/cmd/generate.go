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
	"errors"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"gitlab.com/davidxarnold/dhtemplate/pkg/cloud"
	"gitlab.com/davidxarnold/dhtemplate/pkg/core"
	"gitlab.com/davidxarnold/dhtemplate/pkg/export"
	"gitlab.com/davidxarnold/dhtemplate/pkg/source"
	"gitlab.com/davidxarnold/dhtemplate/pkg/template"
)

const unknownCluster = "unknown-cluster"

// GenerateOptions holds the inputs of a single template generation.
type GenerateOptions struct {
	ClusterName     string
	InputFile       string
	EnvironmentName string
	CommandFile     string
	Output          string
	Format          string
	Region          string
	ResolveVPC      bool
	NoCache         bool
	CacheTTL        time.Duration
}

type vpcResolver interface {
	ResolveVPC(ctx context.Context, subnetIDs []string) (string, error)
}

type describeFunc func(ctx context.Context, sourceName, ref string) ([]byte, error)

// generator ties the sources, the assembler and the exporter together.
type generator struct {
	defaults template.Defaults
	now      func() time.Time

	// describe overrides the registered source describers when set.
	describe    describeFunc
	newResolver func(ctx context.Context, region string) (vpcResolver, error)
}

func newGenerator(defaults template.Defaults) *generator {
	return &generator{
		defaults: defaults,
		now:      time.Now,
		newResolver: func(ctx context.Context, region string) (vpcResolver, error) {
			return cloud.NewDefaultSubnetResolver(ctx, region)
		},
	}
}

// Run fetches the cluster description, builds the template and saves it.
func (g *generator) Run(ctx context.Context, opts GenerateOptions) (*Summary, error) {
	sourceName, ref := source.SourceFile, opts.InputFile
	if opts.ClusterName != "" {
		sourceName, ref = source.SourceCDP, opts.ClusterName
	}
	if ref == "" {
		return nil, errors.New("either a cluster name or an input file is required")
	}

	var (
		data  []byte
		flags *core.FlagSet
		diags core.Diagnostics
	)

	// The description and the create command are independent; load both
	// before assembling.
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		log.Infof("generating template from %s: %s", source.TypeLabel(sourceName), ref)
		data, err = g.describeCluster(egCtx, sourceName, ref, opts)
		return err
	})
	if opts.CommandFile != "" {
		eg.Go(func() error {
			fs, cmdDiags, err := loadCommandFile(opts.CommandFile)
			if err != nil {
				log.Warnf("failed to load CLI command file: %v", err)
				log.Warn("continuing without CLI command data")
				return nil
			}
			flags, diags = fs, cmdDiags
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	desc, err := template.DecodeDescription(data)
	if err != nil {
		return nil, err
	}

	clusterName := opts.ClusterName
	if clusterName == "" {
		clusterName = desc.Cluster.ClusterName
	}
	if clusterName == "" {
		clusterName = unknownCluster
	}

	asm := template.NewAssembler(g.defaults, flags)
	asm.Now = g.now

	log.Info("generating request template")
	tmpl, genDiags := asm.Generate(desc, template.Options{
		ClusterName:     clusterName,
		EnvironmentName: opts.EnvironmentName,
	})
	diags.Append(genDiags)

	if opts.ResolveVPC {
		g.resolveVPC(ctx, tmpl, opts.Region)
	}
	logDiagnostics(diags)

	ts := asm.Timestamp()
	sourceType := source.TypeLabel(sourceName)
	path, err := export.Save(tmpl, export.OutputDir(opts.Output, opts.InputFile), clusterName, sourceType, opts.Format, ts)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Source:         sourceType,
		Cluster:        clusterName,
		Environment:    tmpl.EnvironmentName,
		Output:         path,
		Timestamp:      ts,
		InstanceGroups: len(tmpl.InstanceGroups),
		Warnings:       len(diags),
	}, nil
}

func (g *generator) describeCluster(ctx context.Context, sourceName, ref string, opts GenerateOptions) ([]byte, error) {
	if g.describe != nil {
		return g.describe(ctx, sourceName, ref)
	}

	if sourceName == source.SourceCDP && !opts.NoCache {
		path, err := source.DefaultCachePath()
		if err != nil {
			log.Debugf("describe cache disabled: %v", err)
		}
		return source.NewCache(opts.CacheTTL, path).GetOrDescribe(ctx, sourceName, ref)
	}

	d := source.LookupDescriber(sourceName)
	if d == nil {
		return nil, fmt.Errorf("unknown cluster description source %q", sourceName)
	}
	return d.Describe(ctx, ref)
}

// resolveVPC fills network.aws.vpcId. Failures are logged and leave the
// field null.
func (g *generator) resolveVPC(ctx context.Context, tmpl *template.RequestTemplate, region string) {
	subnets := tmpl.Network.AWS.SubnetIds
	if len(subnets) == 0 {
		log.Warn("no subnets in template, skipping VPC lookup")
		return
	}

	r, err := g.newResolver(ctx, region)
	if err != nil {
		log.Warnf("VPC lookup unavailable: %v", err)
		return
	}
	vpc, err := r.ResolveVPC(ctx, subnets)
	if err != nil {
		log.Warnf("VPC lookup failed: %v", err)
		return
	}

	log.Infof("resolved VPC %s from subnets %v", vpc, subnets)
	tmpl.Network.AWS.VpcID = &vpc
}

// loadCommandFile reads a cdp create command from path and extracts its
// flags.
func loadCommandFile(path string) (*core.FlagSet, core.Diagnostics, error) {
	// #nosec G304 - the path is supplied by the operator on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read command file %s: %w", path, err)
	}

	fs, diags := core.ExtractFlags(string(data))
	log.Infof("loaded CLI command data from: %s", path)
	if len(fs.Tags) > 0 {
		log.Infof("found %d tags in CLI command", len(fs.Tags))
	} else {
		log.Warn("no tags found in CLI command data")
	}
	return fs, diags, nil
}

func logDiagnostics(diags core.Diagnostics) {
	for _, w := range diags {
		log.WithFields(log.Fields{"component": w.Component}).Warn(w.Message)
	}
}
