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

import "gitlab.com/davidxarnold/dhtemplate/pkg/core"

// RequestTemplate is a DistroX create request. Fields without a value are
// serialized as null so the template lists every settable key.
type RequestTemplate struct {
	EnvironmentName         string                 `json:"environmentName"`
	InstanceGroups          []core.InstanceGroup   `json:"instanceGroups"`
	Image                   *Image                 `json:"image"`
	Network                 Network                `json:"network"`
	Cluster                 ClusterDetails         `json:"cluster"`
	Sdx                     interface{}            `json:"sdx"`
	ExternalDatabase        *ExternalDatabase      `json:"externalDatabase"`
	Tags                    Tags                   `json:"tags"`
	Inputs                  map[string]interface{} `json:"inputs"`
	GatewayPort             *int                   `json:"gatewayPort"`
	EnableLoadBalancer      bool                   `json:"enableLoadBalancer"`
	Variant                 *string                `json:"variant"`
	JavaVersion             *int                   `json:"javaVersion"`
	EnableMultiAz           bool                   `json:"enableMultiAz"`
	Architecture            *string                `json:"architecture"`
	DisableDbSslEnforcement bool                   `json:"disableDbSslEnforcement"`
	Security                SecurityDetails        `json:"security"`
}

// Image references the image catalog entry.
type Image struct {
	CatalogName string  `json:"catalogName"`
	ID          *string `json:"id"`
}

// Network holds the cloud specific network settings.
type Network struct {
	AWS AWSNetwork `json:"aws"`
}

// AWSNetwork holds the VPC and subnets of an AWS DataHub.
type AWSNetwork struct {
	VpcID     *string  `json:"vpcId"`
	SubnetIds []string `json:"subnetIds"`
}

// ClusterDetails holds the cluster definition reference.
type ClusterDetails struct {
	BlueprintName *string `json:"blueprintName"`
}

// ExternalDatabase selects the availability of the DataHub database.
type ExternalDatabase struct {
	AvailabilityType string `json:"availabilityType"`
}

// Tags holds the user defined resource tags.
type Tags struct {
	UserDefined map[string]string `json:"userDefined"`
}

// SecurityDetails holds the template security settings.
type SecurityDetails struct {
	SeLinux string `json:"seLinux"`
}
