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

import (
	"encoding/json"
	"fmt"
)

// ClusterDescription is the subset of `cdp datahub describe-cluster`
// output used to build a request template.
type ClusterDescription struct {
	Cluster Cluster `json:"cluster"`
}

// Cluster holds the described DataHub cluster.
type Cluster struct {
	ClusterName     string          `json:"clusterName,omitempty"`
	EnvironmentName string          `json:"environmentName,omitempty"`
	WorkloadType    *string         `json:"workloadType,omitempty"`
	MultiAz         bool            `json:"multiAz,omitempty"`
	InstanceGroups  []InstanceGroup `json:"instanceGroups,omitempty"`
	ImageDetails    *ImageDetails   `json:"imageDetails,omitempty"`
	Security        *Security       `json:"security,omitempty"`
}

// InstanceGroup is a described instance group with its running instances.
type InstanceGroup struct {
	Name              string     `json:"name,omitempty"`
	Instances         []Instance `json:"instances,omitempty"`
	Recipes           []string   `json:"recipes,omitempty"`
	SubnetIds         []string   `json:"subnetIds,omitempty"`
	AvailabilityZones []string   `json:"availabilityZones,omitempty"`
}

// Instance is a single described node.
type Instance struct {
	InstanceVMType  string           `json:"instanceVmType,omitempty"`
	InstanceType    string           `json:"instanceType,omitempty"` // GATEWAY_PRIMARY, CORE, ...
	AttachedVolumes []AttachedVolume `json:"attachedVolumes,omitempty"`
}

// AttachedVolume is a volume attached to a described instance. Nil fields
// were absent in the description.
type AttachedVolume struct {
	VolumeType *string `json:"volumeType,omitempty"`
	Size       *int64  `json:"size,omitempty"`
	Count      *int64  `json:"count,omitempty"`
}

// ImageDetails identifies the image the cluster runs.
type ImageDetails struct {
	CatalogName string  `json:"catalogName,omitempty"`
	ID          *string `json:"id,omitempty"`
}

// Security holds the cluster security settings.
type Security struct {
	SeLinux string `json:"seLinux,omitempty"`
}

// DecodeDescription parses describe-cluster JSON.
func DecodeDescription(data []byte) (*ClusterDescription, error) {
	var d ClusterDescription
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse cluster description: %w", err)
	}
	return &d, nil
}
