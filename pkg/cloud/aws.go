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

package cloud

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/smithy-go"
	log "github.com/sirupsen/logrus"
)

// SubnetAPI is the subset of the EC2 client used to look up subnets.
type SubnetAPI interface {
	DescribeSubnets(ctx context.Context, params *ec2.DescribeSubnetsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error)
}

// SubnetResolver maps subnet IDs to the VPC that contains them.
type SubnetResolver struct {
	client SubnetAPI
}

// NewSubnetResolver wraps an existing EC2 client.
func NewSubnetResolver(client SubnetAPI) *SubnetResolver {
	return &SubnetResolver{client: client}
}

// NewDefaultSubnetResolver builds a resolver from the default AWS config
// chain (environment, shared config, instance role). region overrides the
// configured region when set.
func NewDefaultSubnetResolver(ctx context.Context, region string) (*SubnetResolver, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return NewSubnetResolver(ec2.NewFromConfig(cfg)), nil
}

// ResolveVPC returns the VPC shared by all subnetIDs. It fails when no
// subnet is given, when a subnet is unknown, or when the subnets span more
// than one VPC.
func (r *SubnetResolver) ResolveVPC(ctx context.Context, subnetIDs []string) (string, error) {
	if len(subnetIDs) == 0 {
		return "", errors.New("no subnets to resolve")
	}

	result, err := r.client.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{
		SubnetIds: subnetIDs,
	})
	if err != nil {
		var ae smithy.APIError
		if errors.As(err, &ae) {
			return "", fmt.Errorf("describe subnets %v: %s", subnetIDs, ae.ErrorCode())
		}
		return "", fmt.Errorf("describe subnets %v: %w", subnetIDs, err)
	}

	vpcs := make(map[string]bool)
	for _, subnet := range result.Subnets {
		vpc := aws.ToString(subnet.VpcId)
		if vpc == "" {
			continue
		}
		log.Debugf("subnet %s belongs to %s", aws.ToString(subnet.SubnetId), vpc)
		vpcs[vpc] = true
	}

	switch len(vpcs) {
	case 0:
		return "", fmt.Errorf("no vpc information found for subnets %v", subnetIDs)
	case 1:
		for vpc := range vpcs {
			return vpc, nil
		}
	}

	ids := make([]string, 0, len(vpcs))
	for vpc := range vpcs {
		ids = append(ids, vpc)
	}
	sort.Strings(ids)
	return "", fmt.Errorf("subnets %v span multiple vpcs: %v", subnetIDs, ids)
}
