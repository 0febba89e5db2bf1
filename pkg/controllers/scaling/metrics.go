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

import "github.com/prometheus/client_golang/prometheus"

const (
	metricNamespace = "ecscale"
	metricSubsystem = "scaling"
)

var (
	invocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: metricSubsystem,
			Name:      "invocations_total",
			Help:      "Number of scaling invocations, partitioned by trigger source and action taken.",
		},
		[]string{"trigger", "action"},
	)
	queueDepthGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: metricSubsystem,
			Name:      "queue_depth",
			Help:      "Approximate number of undelivered messages observed on the last invocation.",
		},
		[]string{"queue"},
	)
	runningTasksGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: metricSubsystem,
			Name:      "running_tasks",
			Help:      "Running task count of the scaled service observed on the last invocation.",
		},
		[]string{"cluster", "service"},
	)
)

func init() {
	prometheus.MustRegister(invocationsTotal)
	prometheus.MustRegister(queueDepthGauge)
	prometheus.MustRegister(runningTasksGauge)
}
