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

package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	sdk "github.com/ecscale/ecscale/pkg/aws"
	awserrors "github.com/ecscale/ecscale/pkg/errors"
)

type Provider interface {
	Name() string
	Depth(context.Context) (int, error)
	Exists(context.Context) (bool, error)
	SendMessage(context.Context, interface{}) (string, error)
	Purge(context.Context) error
}

type DefaultProvider struct {
	client sdk.SQSAPI

	queueURL string
}

func NewDefaultProvider(client sdk.SQSAPI, queueURL string) *DefaultProvider {
	return &DefaultProvider{
		client:   client,
		queueURL: queueURL,
	}
}

func (p *DefaultProvider) Name() string {
	ss := strings.Split(p.queueURL, "/")
	return ss[len(ss)-1]
}

// Depth returns the approximate number of undelivered messages in the queue.
// The value is read fresh on every call; SQS only guarantees it is eventually
// consistent.
func (p *DefaultProvider) Depth(ctx context.Context) (int, error) {
	out, err := p.client.GetQueueAttributes(ctx, &sqs.GetQueueAttributesInput{
		QueueUrl:       aws.String(p.queueURL),
		AttributeNames: []types.QueueAttributeName{types.QueueAttributeNameApproximateNumberOfMessages},
	})
	if err != nil {
		return 0, fmt.Errorf("getting queue attributes, %w", err)
	}
	raw, ok := out.Attributes[string(types.QueueAttributeNameApproximateNumberOfMessages)]
	if !ok {
		return 0, fmt.Errorf("queue attributes response missing %s", types.QueueAttributeNameApproximateNumberOfMessages)
	}
	depth, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing queue depth %q, %w", raw, err)
	}
	return depth, nil
}

func (p *DefaultProvider) Exists(ctx context.Context) (bool, error) {
	_, err := p.Depth(ctx)
	if err != nil {
		if awserrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (p *DefaultProvider) SendMessage(ctx context.Context, body interface{}) (string, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling the passed body as json, %w", err)
	}
	result, err := p.client.SendMessage(ctx, &sqs.SendMessageInput{
		MessageBody: aws.String(string(raw)),
		QueueUrl:    aws.String(p.queueURL),
	})
	if err != nil {
		return "", fmt.Errorf("sending messages to sqs queue, %w", err)
	}
	return aws.ToString(result.MessageId), nil
}

func (p *DefaultProvider) Purge(ctx context.Context) error {
	if _, err := p.client.PurgeQueue(ctx, &sqs.PurgeQueueInput{
		QueueUrl: aws.String(p.queueURL),
	}); err != nil {
		return fmt.Errorf("purging sqs queue, %w", err)
	}
	return nil
}
