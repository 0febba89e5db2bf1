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

package settings_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ecscale/ecscale/pkg/apis/config/settings"
)

func TestSettings(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Settings")
}

var _ = Describe("Settings", func() {
	It("should round-trip through the context", func() {
		in := settings.Settings{
			QueueURL:       "https://sqs.us-east-1.amazonaws.com/123456789012/test-queue",
			ClusterName:    "test-cluster",
			ServiceName:    "test-service",
			ScaleUpTarget:  2,
			ScaleDownGrace: 5 * time.Minute,
		}
		ctx := settings.ToContext(context.Background(), in)
		Expect(settings.FromContext(ctx)).To(Equal(in))
	})
	It("should panic when settings are absent from the context", func() {
		Expect(func() { settings.FromContext(context.Background()) }).To(Panic())
	})
})
