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
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/google/uuid"

	sdk "github.com/ecscale/ecscale/pkg/aws"
)

// SQSBehavior must be reset between tests otherwise tests will
// pollute each other.
type SQSBehavior struct {
	GetQueueAttributesBehavior MockedFunction[sqs.GetQueueAttributesInput, sqs.GetQueueAttributesOutput]
	SendMessageBehavior        MockedFunction[sqs.SendMessageInput, sqs.SendMessageOutput]
	PurgeQueueBehavior         MockedFunction[sqs.PurgeQueueInput, sqs.PurgeQueueOutput]
}

type SQSAPI struct {
	sdk.SQSAPI
	SQSBehavior

	// QueueDepth is returned by the default GetQueueAttributes transformer.
	QueueDepth int
}

// Reset must be called between tests otherwise tests will pollute
// each other.
func (s *SQSAPI) Reset() {
	s.GetQueueAttributesBehavior.Reset()
	s.SendMessageBehavior.Reset()
	s.PurgeQueueBehavior.Reset()
	s.QueueDepth = 0
}

func (s *SQSAPI) GetQueueAttributes(_ context.Context, input *sqs.GetQueueAttributesInput, _ ...func(*sqs.Options)) (*sqs.GetQueueAttributesOutput, error) {
	return s.GetQueueAttributesBehavior.Invoke(input, func(_ *sqs.GetQueueAttributesInput) (*sqs.GetQueueAttributesOutput, error) {
		return &sqs.GetQueueAttributesOutput{
			Attributes: map[string]string{
				string(types.QueueAttributeNameApproximateNumberOfMessages): fmt.Sprintf("%d", s.QueueDepth),
			},
		}, nil
	})
}

func (s *SQSAPI) SendMessage(_ context.Context, input *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	return s.SendMessageBehavior.Invoke(input, func(_ *sqs.SendMessageInput) (*sqs.SendMessageOutput, error) {
		return &sqs.SendMessageOutput{
			MessageId: aws.String(uuid.NewString()),
		}, nil
	})
}

func (s *SQSAPI) PurgeQueue(_ context.Context, input *sqs.PurgeQueueInput, _ ...func(*sqs.Options)) (*sqs.PurgeQueueOutput, error) {
	return s.PurgeQueueBehavior.Invoke(input, func(_ *sqs.PurgeQueueInput) (*sqs.PurgeQueueOutput, error) {
		return &sqs.PurgeQueueOutput{}, nil
	})
}
