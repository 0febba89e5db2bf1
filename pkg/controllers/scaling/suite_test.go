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

package scaling_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/smithy-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/ecscale/ecscale/pkg/apis/config/settings"
	awscache "github.com/ecscale/ecscale/pkg/cache"
	"github.com/ecscale/ecscale/pkg/controllers/scaling"
	"github.com/ecscale/ecscale/pkg/fake"
	"github.com/ecscale/ecscale/pkg/providers/queue"
	"github.com/ecscale/ecscale/pkg/providers/service"
	"github.com/ecscale/ecscale/pkg/scaler"
)

const (
	testQueueURL    = "https://sqs.us-east-1.amazonaws.com/123456789012/test-queue"
	testClusterName = "test-cluster"
	testServiceName = "test-service"
)

var ctx context.Context
var sqsapi *fake.SQSAPI
var ecsapi *fake.ECSAPI
var controller *scaling.Controller

func TestScaling(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Scaling")
}

var _ = BeforeSuite(func() {
	sqsapi = &fake.SQSAPI{}
	ecsapi = &fake.ECSAPI{}
})

var _ = BeforeEach(func() {
	ctx = settings.ToContext(context.Background(), settings.Settings{
		QueueURL:      testQueueURL,
		ClusterName:   testClusterName,
		ServiceName:   testServiceName,
		ScaleUpTarget: 2,
	})
	controller = scaling.NewController(
		queue.NewDefaultProvider(sqsapi, testQueueURL),
		service.NewDefaultProvider(ecsapi, testClusterName, testServiceName),
		awscache.NewValidation(),
		zap.NewNop().Sugar(),
	)
})

var _ = AfterEach(func() {
	sqsapi.Reset()
	ecsapi.Reset()
})

var _ = Describe("Scaling", func() {
	Context("Queue Trigger", func() {
		It("should scale up to the target when below it", func() {
			sqsapi.QueueDepth = 5
			ecsapi.RunningCount = 0

			resp, err := controller.Handle(ctx, queueEvent())
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			body := responseBody(resp)
			Expect(body.TriggerSource).To(Equal("sqs"))
			Expect(body.ActionTaken).To(Equal(string(scaler.ActionScaleUp)))
			Expect(body.QueueDepth).To(Equal(5))
			Expect(body.CurrentTasks).To(Equal(0))

			Expect(ecsapi.UpdateServiceBehavior.SuccessfulCalls()).To(Equal(1))
			input := ecsapi.UpdateServiceBehavior.CalledWithInput.At(0)
			Expect(lo.FromPtr(input.DesiredCount)).To(Equal(int32(2)))
			Expect(lo.FromPtr(input.Cluster)).To(Equal(testClusterName))
			Expect(lo.FromPtr(input.Service)).To(Equal(testServiceName))
		})
		It("should scale up even when the sampled depth lags at zero", func() {
			sqsapi.QueueDepth = 0
			ecsapi.RunningCount = 0

			resp, _ := controller.Handle(ctx, queueEvent())
			Expect(responseBody(resp).ActionTaken).To(Equal(string(scaler.ActionScaleUp)))
			Expect(ecsapi.UpdateServiceBehavior.SuccessfulCalls()).To(Equal(1))
		})
		It("should not scale when already at target capacity", func() {
			sqsapi.QueueDepth = 5
			ecsapi.RunningCount = 2

			resp, _ := controller.Handle(ctx, queueEvent())
			Expect(responseBody(resp).ActionTaken).To(Equal(string(scaler.ActionNoScaleNeeded)))
			Expect(ecsapi.UpdateServiceBehavior.Calls()).To(BeZero())
		})
		It("should report a failed scale-up with a 200 when the update call errors", func() {
			sqsapi.QueueDepth = 5
			ecsapi.RunningCount = 0
			ecsapi.UpdateServiceBehavior.Error.Set(fmt.Errorf("throttled"))

			resp, err := controller.Handle(ctx, queueEvent())
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(responseBody(resp).ActionTaken).To(Equal(string(scaler.ActionScaleUpFailed)))
		})
	})
	Context("Scheduled Trigger", func() {
		It("should scale up when messages are waiting below target", func() {
			sqsapi.QueueDepth = 3
			ecsapi.RunningCount = 1

			resp, _ := controller.Handle(ctx, scheduleEvent())
			body := responseBody(resp)
			Expect(body.TriggerSource).To(Equal("eventbridge"))
			Expect(body.ActionTaken).To(Equal(string(scaler.ActionScaleUp)))
			Expect(lo.FromPtr(ecsapi.UpdateServiceBehavior.CalledWithInput.At(0).DesiredCount)).To(Equal(int32(2)))
		})
		It("should scale down to zero when the queue is empty", func() {
			sqsapi.QueueDepth = 0
			ecsapi.RunningCount = 2

			resp, _ := controller.Handle(ctx, scheduleEvent())
			Expect(responseBody(resp).ActionTaken).To(Equal(string(scaler.ActionScaleDown)))
			Expect(lo.FromPtr(ecsapi.UpdateServiceBehavior.CalledWithInput.At(0).DesiredCount)).To(BeZero())
		})
		It("should do nothing in steady state", func() {
			sqsapi.QueueDepth = 0
			ecsapi.RunningCount = 0

			resp, _ := controller.Handle(ctx, scheduleEvent())
			Expect(responseBody(resp).ActionTaken).To(Equal(string(scaler.ActionNone)))
			Expect(ecsapi.UpdateServiceBehavior.Calls()).To(BeZero())
		})
		It("should do nothing when the backlog is already being worked at target", func() {
			sqsapi.QueueDepth = 7
			ecsapi.RunningCount = 2

			resp, _ := controller.Handle(ctx, scheduleEvent())
			Expect(responseBody(resp).ActionTaken).To(Equal(string(scaler.ActionNone)))
			Expect(ecsapi.UpdateServiceBehavior.Calls()).To(BeZero())
		})
		It("should report a failed scale-down with a 200 when the update call errors", func() {
			sqsapi.QueueDepth = 0
			ecsapi.RunningCount = 1
			ecsapi.UpdateServiceBehavior.Error.Set(fmt.Errorf("throttled"))

			resp, _ := controller.Handle(ctx, scheduleEvent())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(responseBody(resp).ActionTaken).To(Equal(string(scaler.ActionScaleDownFailed)))
		})
	})
	Context("Unknown Trigger", func() {
		It("should take no action on an unrecognized payload", func() {
			sqsapi.QueueDepth = 5
			ecsapi.RunningCount = 0

			resp, _ := controller.Handle(ctx, json.RawMessage(`{"detail-type":"something else"}`))
			body := responseBody(resp)
			Expect(body.TriggerSource).To(Equal("unknown"))
			Expect(body.ActionTaken).To(Equal(string(scaler.ActionNone)))
			Expect(ecsapi.UpdateServiceBehavior.Calls()).To(BeZero())
		})
	})
	Context("Failures", func() {
		It("should return a 500 when the queue depth cannot be read", func() {
			// Two calls fail: the target validation probe and the depth read
			sqsapi.GetQueueAttributesBehavior.Error.Set(fmt.Errorf("sqs unavailable"), fake.MaxCalls(2))

			resp, err := controller.Handle(ctx, scheduleEvent())
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusInternalServerError))

			errBody := errorBody(resp)
			Expect(errBody.Error).To(ContainSubstring("getting queue depth"))
			Expect(errBody.Timestamp).ToNot(BeEmpty())
			Expect(ecsapi.UpdateServiceBehavior.Calls()).To(BeZero())
		})
		It("should return a 500 when the service does not exist", func() {
			ecsapi.DescribeServicesBehavior.Output.Set(&ecs.DescribeServicesOutput{})

			resp, _ := controller.Handle(ctx, scheduleEvent())
			Expect(resp.StatusCode).To(Equal(http.StatusInternalServerError))
			Expect(errorBody(resp).Error).To(ContainSubstring("not found"))
		})
		It("should not block the invocation when the queue validation probe reports not found", func() {
			sqsapi.GetQueueAttributesBehavior.Error.Set(&smithy.GenericAPIError{
				Code:    "AWS.SimpleQueueService.NonExistentQueue",
				Message: "queue does not exist",
			})
			sqsapi.QueueDepth = 5
			ecsapi.RunningCount = 0

			// Validation consumes the not-found error; the depth read succeeds
			resp, _ := controller.Handle(ctx, queueEvent())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(responseBody(resp).ActionTaken).To(Equal(string(scaler.ActionScaleUp)))
		})
	})
})

func queueEvent() json.RawMessage {
	return lo.Must(json.Marshal(events.SQSEvent{
		Records: []events.SQSMessage{{
			EventSource: "aws:sqs",
			Body:        `{"test":"message"}`,
		}},
	}))
}

func scheduleEvent() json.RawMessage {
	return json.RawMessage(`{"source":"aws.events","detail-type":"Scheduled Event"}`)
}

func responseBody(resp scaling.Response) scaling.Body {
	body, ok := resp.Body.(scaling.Body)
	Expect(ok).To(BeTrue(), "expected a success body, got %T", resp.Body)
	return body
}

func errorBody(resp scaling.Response) scaling.ErrorBody {
	body, ok := resp.Body.(scaling.ErrorBody)
	Expect(ok).To(BeTrue(), "expected an error body, got %T", resp.Body)
	return body
}
