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

package options_test

import (
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ecscale/ecscale/pkg/operator/options"
)

const testQueueURL = "https://sqs.us-east-1.amazonaws.com/123456789012/test-queue"

var envVars = []string{"SQS_QUEUE_URL", "ECS_CLUSTER_NAME", "ECS_SERVICE_NAME", "SCALE_UP_TARGET", "SCALE_DOWN_THRESHOLD"}

func TestOptions(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Options")
}

var _ = BeforeEach(func() {
	for _, v := range envVars {
		Expect(os.Unsetenv(v)).To(Succeed())
	}
})

var _ = Describe("Options", func() {
	Context("Env Vars", func() {
		It("should populate fields from the environment", func() {
			Expect(os.Setenv("SQS_QUEUE_URL", testQueueURL)).To(Succeed())
			Expect(os.Setenv("ECS_CLUSTER_NAME", "test-cluster")).To(Succeed())
			Expect(os.Setenv("ECS_SERVICE_NAME", "test-service")).To(Succeed())
			Expect(os.Setenv("SCALE_UP_TARGET", "3")).To(Succeed())
			Expect(os.Setenv("SCALE_DOWN_THRESHOLD", "5")).To(Succeed())

			opts := options.New()
			Expect(opts.QueueURL).To(Equal(testQueueURL))
			Expect(opts.ClusterName).To(Equal("test-cluster"))
			Expect(opts.ServiceName).To(Equal("test-service"))
			Expect(opts.ScaleUpTarget).To(Equal(3))
			Expect(opts.ScaleDownThreshold).To(Equal(5))
		})
		It("should default the scaling knobs", func() {
			opts := options.New()
			Expect(opts.ScaleUpTarget).To(Equal(1))
			Expect(opts.ScaleDownThreshold).To(Equal(2))
		})
		It("should prefer flags over the environment", func() {
			Expect(os.Setenv("SCALE_UP_TARGET", "3")).To(Succeed())

			opts := options.New()
			Expect(opts.Parse([]string{"--scale-up-target", "5"})).To(Succeed())
			Expect(opts.ScaleUpTarget).To(Equal(5))
		})
	})
	Context("Validation", func() {
		var opts *options.Options
		BeforeEach(func() {
			opts = options.New()
			opts.QueueURL = testQueueURL
			opts.ClusterName = "test-cluster"
			opts.ServiceName = "test-service"
		})
		It("should accept a complete configuration", func() {
			Expect(opts.Validate()).To(Succeed())
		})
		It("should reject a missing or relative queue URL", func() {
			for _, queueURL := range []string{"", "test-queue", "sqs.us-east-1.amazonaws.com/123456789012/test-queue"} {
				opts.QueueURL = queueURL
				Expect(opts.Validate()).To(MatchError(ContainSubstring("SQS_QUEUE_URL")))
			}
		})
		It("should reject a missing cluster name", func() {
			opts.ClusterName = ""
			Expect(opts.Validate()).To(MatchError(ContainSubstring("ECS_CLUSTER_NAME")))
		})
		It("should reject a missing service name", func() {
			opts.ServiceName = ""
			Expect(opts.Validate()).To(MatchError(ContainSubstring("ECS_SERVICE_NAME")))
		})
		It("should reject a scale-up target below one", func() {
			opts.ScaleUpTarget = 0
			Expect(opts.Validate()).To(MatchError(ContainSubstring("SCALE_UP_TARGET")))
		})
		It("should reject a negative scale-down threshold", func() {
			opts.ScaleDownThreshold = -1
			Expect(opts.Validate()).To(MatchError(ContainSubstring("SCALE_DOWN_THRESHOLD")))
		})
		It("should combine multiple validation failures", func() {
			opts.QueueURL = ""
			opts.ClusterName = ""
			err := opts.Validate()
			Expect(err).To(MatchError(ContainSubstring("SQS_QUEUE_URL")))
			Expect(err).To(MatchError(ContainSubstring("ECS_CLUSTER_NAME")))
		})
	})
	Context("Settings", func() {
		It("should convert the scale-down threshold to a duration", func() {
			opts := options.New()
			opts.QueueURL = testQueueURL
			opts.ClusterName = "test-cluster"
			opts.ServiceName = "test-service"
			opts.ScaleUpTarget = 2
			opts.ScaleDownThreshold = 5

			s := opts.Settings()
			Expect(s.QueueURL).To(Equal(testQueueURL))
			Expect(s.ScaleUpTarget).To(Equal(2))
			Expect(s.ScaleDownGrace).To(Equal(5 * time.Minute))
		})
	})
})
