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
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ecscale/ecscale/pkg/apis/config/settings"
	awscache "github.com/ecscale/ecscale/pkg/cache"
	"github.com/ecscale/ecscale/pkg/providers/queue"
	"github.com/ecscale/ecscale/pkg/providers/service"
	"github.com/ecscale/ecscale/pkg/scaler"
)

// Controller reacts to a single trigger event: it reads the queue depth and
// the service's running task count fresh, decides, and applies the decision.
// It keeps no state between invocations and never retries; the queue trigger
// and the scheduled tick will both fire again.
type Controller struct {
	queue      queue.Provider
	service    service.Provider
	validation *awscache.Validation
	log        *zap.SugaredLogger
}

func NewController(queueProvider queue.Provider, serviceProvider service.Provider,
	validation *awscache.Validation, log *zap.SugaredLogger) *Controller {

	return &Controller{
		queue:      queueProvider,
		service:    serviceProvider,
		validation: validation,
		log:        log,
	}
}

// Response is the invocation result envelope.
type Response struct {
	StatusCode int         `json:"statusCode"`
	Body       interface{} `json:"body"`
}

// Body reports the action taken on a successful invocation.
type Body struct {
	TriggerSource string `json:"trigger_source"`
	QueueDepth    int    `json:"queue_depth"`
	CurrentTasks  int    `json:"current_tasks"`
	ActionTaken   string `json:"action_taken"`
	Timestamp     string `json:"timestamp"`
}

// ErrorBody reports an invocation that failed before a decision was applied.
type ErrorBody struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

// Handle implements the function entrypoint. Failures reading queue or
// service state surface as a 500 response; failures applying a decision are
// reported in the action itself with a 200, since the state read succeeded.
// The returned error is always nil so the platform does not retry.
func (c *Controller) Handle(ctx context.Context, raw json.RawMessage) (Response, error) {
	s := settings.FromContext(ctx)
	trigger := ParseTrigger(raw)
	log := c.log.With("queue", c.queue.Name(), "trigger", string(trigger))
	log.Infow("handling trigger")

	c.validateTarget(ctx, s, log)

	queueDepth, err := c.queue.Depth(ctx)
	if err != nil {
		log.Errorw("getting queue depth", "error", err)
		return errorResponse(fmt.Errorf("getting queue depth, %w", err)), nil
	}
	runningTasks, err := c.service.RunningCount(ctx)
	if err != nil {
		log.Errorw("getting running task count", "error", err)
		return errorResponse(fmt.Errorf("getting running task count, %w", err)), nil
	}
	log.Infow("observed state", "queue_depth", queueDepth, "running_tasks", runningTasks)

	decision := scaler.Decide(trigger, queueDepth, runningTasks, s.ScaleUpTarget)
	action := c.apply(ctx, decision, runningTasks, log)

	invocationsTotal.WithLabelValues(string(trigger), string(action)).Inc()
	queueDepthGauge.WithLabelValues(c.queue.Name()).Set(float64(queueDepth))
	runningTasksGauge.WithLabelValues(s.ClusterName, s.ServiceName).Set(float64(runningTasks))

	log.Infow("scaling complete", "action", string(action))
	return Response{
		StatusCode: http.StatusOK,
		Body: Body{
			TriggerSource: string(trigger),
			QueueDepth:    queueDepth,
			CurrentTasks:  runningTasks,
			ActionTaken:   string(action),
			Timestamp:     timestamp(),
		},
	}, nil
}

// apply issues the update call for scale decisions and maps apply failures to
// the failed action variant.
func (c *Controller) apply(ctx context.Context, decision scaler.Decision, runningTasks int, log *zap.SugaredLogger) scaler.Action {
	switch decision.Action {
	case scaler.ActionScaleUp, scaler.ActionScaleDown:
		result, err := c.service.Scale(ctx, decision.TargetCount, runningTasks)
		if err != nil {
			log.Errorw("scaling service", "error", err, "desired", decision.TargetCount)
			return decision.Action.Failed()
		}
		if result == service.Unchanged {
			log.Infow("service already at desired count", "desired", decision.TargetCount)
		} else {
			log.Infow("scaled service", "from", runningTasks, "to", decision.TargetCount, "reason", decision.Reason)
		}
		return decision.Action
	default:
		return decision.Action
	}
}

// validateTarget probes the queue once per execution environment. A failed
// probe is logged but never blocks the invocation; the state reads below
// produce the authoritative error.
func (c *Controller) validateTarget(ctx context.Context, s settings.Settings, log *zap.SugaredLogger) {
	target := awscache.Target{QueueURL: s.QueueURL, ClusterName: s.ClusterName, ServiceName: s.ServiceName}
	if reason, ok := c.validation.Get(target); ok {
		if reason != "" {
			log.Warnw("scale target previously failed validation", "reason", reason)
		}
		return
	}
	exists, err := c.queue.Exists(ctx)
	if err != nil {
		// Inconclusive, leave uncached so the next invocation probes again
		log.Warnw("validating queue", "error", err)
		return
	}
	if !exists {
		c.validation.SetFailure(target, fmt.Sprintf("queue %q does not exist", s.QueueURL))
		log.Warnw("queue does not exist", "queue_url", s.QueueURL)
		return
	}
	c.validation.SetSuccess(target)
}

func errorResponse(err error) Response {
	return Response{
		StatusCode: http.StatusInternalServerError,
		Body: ErrorBody{
			Error:     err.Error(),
			Timestamp: timestamp(),
		},
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
