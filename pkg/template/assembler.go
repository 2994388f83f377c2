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

// Package template assembles DataHub request templates from a cluster
// description, the configured Defaults and an optional parsed create
// command.
package template

import (
	"time"

	log "github.com/sirupsen/logrus"
	"gitlab.com/davidxarnold/dhtemplate/pkg/core"
	"gitlab.com/davidxarnold/dhtemplate/pkg/util"
)

const (
	componentAssembler  = "assembler"
	gatewayPrimary      = "GATEWAY_PRIMARY"
	groupTypeGateway    = "GATEWAY"
	ephemeralVolumeType = "ephemeral"
	noDatabase          = "NONE"
)

// Options carries names given on the command line. Empty values fall back
// to the cluster description and then to Defaults.
type Options struct {
	ClusterName     string
	EnvironmentName string
}

// Assembler builds request templates.
type Assembler struct {
	Defaults Defaults
	// Flags is the parsed create command; nil when none was supplied.
	Flags *core.FlagSet
	Now   func() time.Time

	timestamp string
}

// NewAssembler returns an Assembler stamped with the current time.
func NewAssembler(defaults Defaults, flags *core.FlagSet) *Assembler {
	return &Assembler{
		Defaults: defaults,
		Flags:    flags,
		Now:      time.Now,
	}
}

// Timestamp returns the generation timestamp. It is fixed on first use so
// the template tags and the output file names agree.
func (a *Assembler) Timestamp() string {
	if a.timestamp == "" {
		now := time.Now
		if a.Now != nil {
			now = a.Now
		}
		a.timestamp = util.Timestamp(now())
	}
	return a.timestamp
}

// Generate builds the request template for desc. Overrides from the create
// command are merged into the matching instance groups in command order.
func (a *Assembler) Generate(desc *ClusterDescription, opts Options) (*RequestTemplate, core.Diagnostics) {
	var diags core.Diagnostics
	cluster := desc.Cluster

	groups := make([]core.InstanceGroup, 0, len(cluster.InstanceGroups))
	seen := map[string]bool{}
	for i := range cluster.InstanceGroups {
		g := a.baselineGroup(&cluster.InstanceGroups[i])
		name, _ := g["name"].(string)
		seen[name] = true

		if override, ok := a.Flags.Override(name); ok {
			merged, mergeDiags := core.MergeOverride(g, override)
			diags.Append(mergeDiags)
			log.Debugf("applied command override to instance group %s", name)
			g = merged
		}
		groups = append(groups, g)
	}
	a.reportUnmatched(seen, &diags)

	tmpl := &RequestTemplate{
		EnvironmentName:    firstNonEmpty(opts.EnvironmentName, cluster.EnvironmentName, a.Defaults.EnvironmentName),
		InstanceGroups:     groups,
		Image:              a.image(cluster.ImageDetails),
		Network:            a.network(cluster),
		Cluster:            ClusterDetails{BlueprintName: cluster.WorkloadType},
		ExternalDatabase:   a.externalDatabase(),
		Tags:               a.tags(firstNonEmpty(cluster.ClusterName, "unknown")),
		Inputs:             map[string]interface{}{},
		EnableLoadBalancer: a.Flags != nil && a.Flags.EnableLoadBalancer,
		EnableMultiAz:      a.multiAZ(cluster),
		Security:           SecurityDetails{SeLinux: a.Defaults.SeLinux},
	}
	if cluster.Security != nil && cluster.Security.SeLinux != "" {
		tmpl.Security.SeLinux = cluster.Security.SeLinux
	}
	return tmpl, diags
}

// ClusterName resolves the name the template is generated for.
func (a *Assembler) ClusterName(desc *ClusterDescription, opts Options) string {
	return firstNonEmpty(opts.ClusterName, desc.Cluster.ClusterName, a.Defaults.ClusterName)
}

func (a *Assembler) baselineGroup(g *InstanceGroup) core.InstanceGroup {
	d := a.Defaults

	var first Instance
	if len(g.Instances) > 0 {
		first = g.Instances[0]
	}

	name := firstNonEmpty(g.Name, d.GroupName)
	return core.InstanceGroup{
		"name":              name,
		"nodeCount":         int64(len(g.Instances)),
		"type":              a.groupType(name, first),
		"recoveryMode":      d.RecoveryMode,
		"minimumNodeCount":  d.MinimumNodeCount,
		"scalabilityOption": d.ScalabilityOption,
		"template": map[string]interface{}{
			"aws": map[string]interface{}{
				"encryption": map[string]interface{}{
					"type": d.EncryptionType,
					"key":  nil,
				},
				"placementGroup": map[string]interface{}{
					"strategy": d.PlacementStrategy,
				},
			},
			"instanceType": firstNonEmpty(first.InstanceVMType, d.InstanceType),
			"rootVolume": map[string]interface{}{
				"size": d.RootVolumeSize,
			},
			"attachedVolumes": a.volumes(first.AttachedVolumes),
			"cloudPlatform":   d.CloudPlatform,
		},
		"recipeNames":       stringList(g.Recipes),
		"subnetIds":         stringList(g.SubnetIds),
		"availabilityZones": stringList(g.AvailabilityZones),
	}
}

func (a *Assembler) volumes(raw []AttachedVolume) []interface{} {
	d := a.Defaults
	if len(raw) == 0 {
		return []interface{}{
			map[string]interface{}{"size": d.VolumeSize, "count": d.FallbackVolumes, "type": d.VolumeType},
		}
	}

	out := make([]interface{}, 0, len(raw))
	for _, v := range raw {
		vt := d.VolumeType
		if v.VolumeType != nil && *v.VolumeType != ephemeralVolumeType {
			vt = *v.VolumeType
		}
		size := d.VolumeSize
		if v.Size != nil {
			size = *v.Size
		}
		count := d.VolumeCount
		if v.Count != nil {
			count = *v.Count
		}
		out = append(out, map[string]interface{}{"size": size, "count": count, "type": vt})
	}
	return out
}

// groupType prefers the instanceGroupType given in the create command and
// otherwise classifies the group by its first instance.
func (a *Assembler) groupType(name string, first Instance) string {
	if a.Flags != nil {
		if t := a.Flags.GroupIndex[name][core.FieldInstanceGroupType]; t != "" {
			log.Debugf("using instanceGroupType %s from create command for group %s", t, name)
			return t
		}
	}
	if first.InstanceType == gatewayPrimary {
		return groupTypeGateway
	}
	return a.Defaults.GroupType
}

func (a *Assembler) reportUnmatched(seen map[string]bool, diags *core.Diagnostics) {
	if a.Flags == nil {
		return
	}
	reported := map[string]bool{}
	for _, g := range a.Flags.InstanceGroups {
		name, ok := core.GroupName(g)
		if !ok || seen[name] || reported[name] {
			continue
		}
		reported[name] = true
		diags.Addf(componentAssembler, "override for instance group %q matches no instance group in the cluster", name)
	}
}

func (a *Assembler) image(details *ImageDetails) *Image {
	if details == nil {
		return nil
	}
	return &Image{
		CatalogName: firstNonEmpty(details.CatalogName, a.Defaults.CatalogName),
		ID:          details.ID,
	}
}

func (a *Assembler) network(cluster Cluster) Network {
	var subnets []string
	if a.Flags != nil && a.Flags.SubnetID != "" {
		subnets = []string{a.Flags.SubnetID}
	} else {
		for _, g := range cluster.InstanceGroups {
			subnets = append(subnets, g.SubnetIds...)
		}
		subnets = util.UniqueStrings(subnets)
	}
	if subnets == nil {
		subnets = []string{}
	}
	return Network{AWS: AWSNetwork{SubnetIds: subnets}}
}

func (a *Assembler) externalDatabase() *ExternalDatabase {
	if a.Flags == nil || a.Flags.DatahubDatabase == "" || a.Flags.DatahubDatabase == noDatabase {
		return nil
	}
	return &ExternalDatabase{AvailabilityType: a.Flags.DatahubDatabase}
}

func (a *Assembler) tags(sourceCluster string) Tags {
	userDefined := map[string]string{
		"generated-date": a.Timestamp(),
		"source-cluster": sourceCluster,
	}
	if a.Flags != nil {
		for k, v := range a.Flags.Tags {
			userDefined[k] = v
		}
	}
	return Tags{UserDefined: userDefined}
}

func (a *Assembler) multiAZ(cluster Cluster) bool {
	if a.Flags != nil {
		return a.Flags.MultiAZ
	}
	return cluster.MultiAz
}

func stringList(in []string) []interface{} {
	out := make([]interface{}, 0, len(in))
	for _, s := range in {
		out = append(out, s)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
