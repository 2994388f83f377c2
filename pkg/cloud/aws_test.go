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
	"reflect"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
)

type fakeSubnetAPI struct {
	subnets []types.Subnet
	err     error
	gotIDs  []string
}

func (f *fakeSubnetAPI) DescribeSubnets(_ context.Context, in *ec2.DescribeSubnetsInput, _ ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error) {
	f.gotIDs = in.SubnetIds
	if f.err != nil {
		return nil, f.err
	}
	return &ec2.DescribeSubnetsOutput{Subnets: f.subnets}, nil
}

func subnet(id, vpc string) types.Subnet {
	return types.Subnet{SubnetId: aws.String(id), VpcId: aws.String(vpc)}
}

func TestResolveVPC(t *testing.T) {
	api := &fakeSubnetAPI{subnets: []types.Subnet{
		subnet("subnet-a", "vpc-1"),
		subnet("subnet-b", "vpc-1"),
	}}
	r := NewSubnetResolver(api)

	vpc, err := r.ResolveVPC(context.Background(), []string{"subnet-a", "subnet-b"})
	if err != nil {
		t.Fatalf("ResolveVPC returned error: %v", err)
	}
	if vpc != "vpc-1" {
		t.Errorf("ResolveVPC = %q, want vpc-1", vpc)
	}
	if !reflect.DeepEqual(api.gotIDs, []string{"subnet-a", "subnet-b"}) {
		t.Errorf("DescribeSubnets called with %v", api.gotIDs)
	}
}

func TestResolveVPCErrors(t *testing.T) {
	tests := []struct {
		name    string
		api     *fakeSubnetAPI
		subnets []string
		wantErr string
	}{
		{
			name:    "no subnets",
			api:     &fakeSubnetAPI{},
			wantErr: "no subnets",
		},
		{
			name:    "api error code",
			api:     &fakeSubnetAPI{err: &smithy.GenericAPIError{Code: "InvalidSubnetID.NotFound", Message: "missing"}},
			subnets: []string{"subnet-x"},
			wantErr: "InvalidSubnetID.NotFound",
		},
		{
			name:    "transport error",
			api:     &fakeSubnetAPI{err: errors.New("dial tcp: timeout")},
			subnets: []string{"subnet-x"},
			wantErr: "dial tcp",
		},
		{
			name:    "no vpc returned",
			api:     &fakeSubnetAPI{subnets: []types.Subnet{{SubnetId: aws.String("subnet-a")}}},
			subnets: []string{"subnet-a"},
			wantErr: "no vpc information",
		},
		{
			name: "multiple vpcs",
			api: &fakeSubnetAPI{subnets: []types.Subnet{
				subnet("subnet-a", "vpc-2"),
				subnet("subnet-b", "vpc-1"),
			}},
			subnets: []string{"subnet-a", "subnet-b"},
			wantErr: "[vpc-1 vpc-2]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSubnetResolver(tt.api).ResolveVPC(context.Background(), tt.subnets)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
