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

package cache_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	awscache "github.com/ecscale/ecscale/pkg/cache"
)

var validation *awscache.Validation
var target awscache.Target

func TestCache(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Cache")
}

var _ = BeforeEach(func() {
	validation = awscache.NewValidation()
	target = awscache.Target{
		QueueURL:    "https://sqs.us-east-1.amazonaws.com/123456789012/test-queue",
		ClusterName: "test-cluster",
		ServiceName: "test-service",
	}
})

var _ = Describe("Validation", func() {
	It("should miss for an unseen target", func() {
		_, ok := validation.Get(target)
		Expect(ok).To(BeFalse())
	})
	It("should remember a successful validation as an empty reason", func() {
		validation.SetSuccess(target)
		reason, ok := validation.Get(target)
		Expect(ok).To(BeTrue())
		Expect(reason).To(BeEmpty())
	})
	It("should remember a failed validation with its reason", func() {
		validation.SetFailure(target, "queue does not exist")
		reason, ok := validation.Get(target)
		Expect(ok).To(BeTrue())
		Expect(reason).To(Equal("queue does not exist"))
	})
	It("should key targets independently", func() {
		validation.SetSuccess(target)
		other := target
		other.ServiceName = "another-service"
		_, ok := validation.Get(other)
		Expect(ok).To(BeFalse())
	})
	It("should overwrite an earlier result for the same target", func() {
		validation.SetFailure(target, "queue does not exist")
		validation.SetSuccess(target)
		reason, ok := validation.Get(target)
		Expect(ok).To(BeTrue())
		Expect(reason).To(BeEmpty())
	})
})
