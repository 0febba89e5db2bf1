/*
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

package fake

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/samber/lo"

	sdk "github.com/ecscale/ecscale/pkg/aws"
)

// ECSBehavior must be reset between tests otherwise tests will
// pollute each other.
type ECSBehavior struct {
	DescribeServicesBehavior MockedFunction[ecs.DescribeServicesInput, ecs.DescribeServicesOutput]
	UpdateServiceBehavior    MockedFunction[ecs.UpdateServiceInput, ecs.UpdateServiceOutput]
}

type ECSAPI struct {
	sdk.ECSAPI
	ECSBehavior

	// RunningCount and DesiredCount steer the default DescribeServices
	// transformer.
	RunningCount int
	DesiredCount int
}

// Reset must be called between tests otherwise tests will pollute
// each other.
func (e *ECSAPI) Reset() {
	e.DescribeServicesBehavior.Reset()
	e.UpdateServiceBehavior.Reset()
	e.RunningCount = 0
	e.DesiredCount = 0
}

func (e *ECSAPI) DescribeServices(_ context.Context, input *ecs.DescribeServicesInput, _ ...func(*ecs.Options)) (*ecs.DescribeServicesOutput, error) {
	return e.DescribeServicesBehavior.Invoke(input, func(input *ecs.DescribeServicesInput) (*ecs.DescribeServicesOutput, error) {
		return &ecs.DescribeServicesOutput{
			Services: []types.Service{
				{
					ServiceName:  aws.String(input.Services[0]),
					ClusterArn:   input.Cluster,
					DesiredCount: int32(e.DesiredCount),
					RunningCount: int32(e.RunningCount),
					PendingCount: 0,
					Status:       aws.String("ACTIVE"),
				},
			},
		}, nil
	})
}

func (e *ECSAPI) UpdateService(_ context.Context, input *ecs.UpdateServiceInput, _ ...func(*ecs.Options)) (*ecs.UpdateServiceOutput, error) {
	return e.UpdateServiceBehavior.Invoke(input, func(input *ecs.UpdateServiceInput) (*ecs.UpdateServiceOutput, error) {
		e.DesiredCount = int(lo.FromPtr(input.DesiredCount))
		return &ecs.UpdateServiceOutput{
			Service: &types.Service{
				ServiceName:  input.Service,
				DesiredCount: lo.FromPtr(input.DesiredCount),
			},
		}, nil
	})
}
