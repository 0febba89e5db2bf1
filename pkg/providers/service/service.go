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

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/samber/lo"

	sdk "github.com/ecscale/ecscale/pkg/aws"
)

// ErrServiceNotFound is returned when DescribeServices yields no matching
// service in the cluster.
var ErrServiceNotFound = errors.New("ecs service not found")

type Result string

const (
	// Updated means an UpdateService call was issued.
	Updated Result = "updated"
	// Unchanged means the service already ran at the desired count and no
	// update call was made.
	Unchanged Result = "unchanged"
)

// Status is a point-in-time snapshot of the service's task counts.
type Status struct {
	DesiredCount int
	RunningCount int
	PendingCount int
	Status       string
}

type Provider interface {
	Describe(context.Context) (*Status, error)
	RunningCount(context.Context) (int, error)
	Scale(ctx context.Context, desired int, current int) (Result, error)
}

type DefaultProvider struct {
	client sdk.ECSAPI

	clusterName string
	serviceName string
}

func NewDefaultProvider(client sdk.ECSAPI, clusterName, serviceName string) *DefaultProvider {
	return &DefaultProvider{
		client:      client,
		clusterName: clusterName,
		serviceName: serviceName,
	}
}

func (p *DefaultProvider) Describe(ctx context.Context) (*Status, error) {
	out, err := p.client.DescribeServices(ctx, &ecs.DescribeServicesInput{
		Cluster:  aws.String(p.clusterName),
		Services: []string{p.serviceName},
	})
	if err != nil {
		return nil, fmt.Errorf("describing ecs service, %w", err)
	}
	if len(out.Services) == 0 {
		return nil, fmt.Errorf("service %q in cluster %q, %w", p.serviceName, p.clusterName, ErrServiceNotFound)
	}
	svc := out.Services[0]
	return &Status{
		DesiredCount: int(svc.DesiredCount),
		RunningCount: int(svc.RunningCount),
		PendingCount: int(svc.PendingCount),
		Status:       lo.FromPtr(svc.Status),
	}, nil
}

func (p *DefaultProvider) RunningCount(ctx context.Context) (int, error) {
	status, err := p.Describe(ctx)
	if err != nil {
		return 0, err
	}
	return status.RunningCount, nil
}

// Scale sets the service's desired count. The update is skipped when the
// service is already at the desired count, which keeps repeated triggers for
// the same state from issuing redundant control-plane calls.
func (p *DefaultProvider) Scale(ctx context.Context, desired int, current int) (Result, error) {
	if current == desired {
		return Unchanged, nil
	}
	if _, err := p.client.UpdateService(ctx, &ecs.UpdateServiceInput{
		Cluster:      aws.String(p.clusterName),
		Service:      aws.String(p.serviceName),
		DesiredCount: lo.ToPtr(int32(desired)),
	}); err != nil {
		return "", fmt.Errorf("updating ecs service desired count, %w", err)
	}
	return Updated, nil
}
