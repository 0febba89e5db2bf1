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

// Package scaler decides whether an ECS service should change size given the
// trigger that fired, the observed queue depth, and the running task count.
package scaler

import "fmt"

// Trigger identifies what kind of event started the invocation.
type Trigger string

const (
	// TriggerQueue is a queue-message notification; the queue delivered at
	// least one message, so demand exists regardless of the sampled depth.
	TriggerQueue Trigger = "sqs"
	// TriggerSchedule is a scheduled tick used to evaluate both directions.
	TriggerSchedule Trigger = "eventbridge"
	// TriggerUnknown is any payload that matches neither envelope.
	TriggerUnknown Trigger = "unknown"
)

// Action is the scaling outcome reported for an invocation.
type Action string

const (
	ActionScaleUp         Action = "scale_up"
	ActionScaleDown       Action = "scale_down"
	ActionScaleUpFailed   Action = "scale_up_failed"
	ActionScaleDownFailed Action = "scale_down_failed"
	ActionNoScaleNeeded   Action = "no_scale_needed"
	ActionNone            Action = "none"
)

// Failed returns the failure variant of an apply action.
func (a Action) Failed() Action {
	switch a {
	case ActionScaleUp:
		return ActionScaleUpFailed
	case ActionScaleDown:
		return ActionScaleDownFailed
	default:
		return a
	}
}

// Decision is the outcome of evaluating one invocation. TargetCount is only
// meaningful when Action is ActionScaleUp or ActionScaleDown.
type Decision struct {
	Action      Action
	TargetCount int
	Reason      string
}

// ShouldScaleUp reports whether the service should grow: messages are waiting
// and the service runs below the scale-up target.
func ShouldScaleUp(queueDepth, runningTasks, scaleUpTarget int) bool {
	return queueDepth > 0 && runningTasks < scaleUpTarget
}

// ShouldScaleDown reports whether the service should shrink to zero: the
// queue is empty but tasks are still running.
func ShouldScaleDown(queueDepth, runningTasks int) bool {
	return queueDepth == 0 && runningTasks > 0
}

// Decide maps the trigger and observed state to a scaling decision.
//
// A queue trigger proves a message arrived, so it scales up whenever the
// service is below target without consulting the sampled depth. A scheduled
// trigger evaluates both predicates. Anything else is left alone.
func Decide(trigger Trigger, queueDepth, runningTasks, scaleUpTarget int) Decision {
	switch trigger {
	case TriggerQueue:
		if runningTasks < scaleUpTarget {
			return Decision{
				Action:      ActionScaleUp,
				TargetCount: scaleUpTarget,
				Reason:      fmt.Sprintf("message arrived with %d/%d tasks running", runningTasks, scaleUpTarget),
			}
		}
		return Decision{
			Action: ActionNoScaleNeeded,
			Reason: fmt.Sprintf("already at target capacity, %d tasks", runningTasks),
		}
	case TriggerSchedule:
		if ShouldScaleUp(queueDepth, runningTasks, scaleUpTarget) {
			return Decision{
				Action:      ActionScaleUp,
				TargetCount: scaleUpTarget,
				Reason:      fmt.Sprintf("queue depth %d with %d/%d tasks running", queueDepth, runningTasks, scaleUpTarget),
			}
		}
		if ShouldScaleDown(queueDepth, runningTasks) {
			return Decision{
				Action:      ActionScaleDown,
				TargetCount: 0,
				Reason:      fmt.Sprintf("queue empty with %d tasks running", runningTasks),
			}
		}
		return Decision{Action: ActionNone}
	default:
		return Decision{Action: ActionNone}
	}
}
