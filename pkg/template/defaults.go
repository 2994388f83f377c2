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

package template

// Defaults holds every fallback value used while assembling a template.
// It is loaded from the "defaults" configuration section.
type Defaults struct {
	InstanceType      string `mapstructure:"instance-type"`
	VolumeType        string `mapstructure:"volume-type"`
	VolumeSize        int64  `mapstructure:"volume-size"`
	VolumeCount       int64  `mapstructure:"volume-count"`
	FallbackVolumes   int64  `mapstructure:"fallback-volume-count"`
	RootVolumeSize    int64  `mapstructure:"root-volume-size"`
	GroupType         string `mapstructure:"group-type"`
	RecoveryMode      string `mapstructure:"recovery-mode"`
	ScalabilityOption string `mapstructure:"scalability-option"`
	MinimumNodeCount  int64  `mapstructure:"minimum-node-count"`
	EncryptionType    string `mapstructure:"encryption-type"`
	PlacementStrategy string `mapstructure:"placement-strategy"`
	CloudPlatform     string `mapstructure:"cloud-platform"`
	CatalogName       string `mapstructure:"catalog-name"`
	SeLinux           string `mapstructure:"selinux"`
	ClusterName       string `mapstructure:"cluster-name"`
	EnvironmentName   string `mapstructure:"environment-name"`
	GroupName         string `mapstructure:"group-name"`
}

// DefaultDefaults returns the stock fallback values.
func DefaultDefaults() Defaults {
	return Defaults{
		InstanceType:      "m6i.4xlarge",
		VolumeType:        "gp3",
		VolumeSize:        256,
		VolumeCount:       1,
		FallbackVolumes:   2,
		RootVolumeSize:    100,
		GroupType:         "CORE",
		RecoveryMode:      "MANUAL",
		ScalabilityOption: "ALLOWED",
		MinimumNodeCount:  0,
		EncryptionType:    "DEFAULT",
		PlacementStrategy: "PARTITION",
		CloudPlatform:     "AWS",
		CatalogName:       "cdp-default",
		SeLinux:           "PERMISSIVE",
		ClusterName:       "generated-cluster",
		EnvironmentName:   "default-environment",
		GroupName:         "default",
	}
}
