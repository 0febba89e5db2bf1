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

package scaling

import (
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"

	"github.com/ecscale/ecscale/pkg/scaler"
)

const scheduleSource = "aws.events"

// envelope is the union of the two event shapes this function is subscribed
// to: an SQS record batch and an EventBridge scheduled tick.
type envelope struct {
	Records []events.SQSMessage `json:"Records"`
	Source  string              `json:"source"`
}

// ParseTrigger classifies a raw invocation payload. Payloads that match
// neither envelope are reported as unknown rather than rejected; the caller
// decides what to do with them.
func ParseTrigger(raw []byte) scaler.Trigger {
	var e envelope
	if err := json.Unmarshal(raw, &e); err != nil {
		return scaler.TriggerUnknown
	}
	if len(e.Records) > 0 {
		return scaler.TriggerQueue
	}
	if e.Source == scheduleSource {
		return scaler.TriggerSchedule
	}
	return scaler.TriggerUnknown
}
