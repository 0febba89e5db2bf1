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

package options

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"time"

	"go.uber.org/multierr"

	"github.com/ecscale/ecscale/pkg/apis/config/settings"
	"github.com/ecscale/ecscale/pkg/utils/env"
)

// Options for running this binary
type Options struct {
	*flag.FlagSet

	QueueURL           string
	ClusterName        string
	ServiceName        string
	ScaleUpTarget      int
	ScaleDownThreshold int
}

// New creates an Options struct and registers CLI flags and environment variables to fill-in the Options struct fields
func New() *Options {
	opts := &Options{}
	f := flag.NewFlagSet("ecscale", flag.ContinueOnError)
	opts.FlagSet = f

	f.StringVar(&opts.QueueURL, "queue-url", env.WithDefaultString("SQS_QUEUE_URL", ""), "The URL of the SQS queue whose depth drives scaling")
	f.StringVar(&opts.ClusterName, "cluster-name", env.WithDefaultString("ECS_CLUSTER_NAME", ""), "The ECS cluster containing the service to scale")
	f.StringVar(&opts.ServiceName, "service-name", env.WithDefaultString("ECS_SERVICE_NAME", ""), "The ECS service whose desired count is adjusted")
	f.IntVar(&opts.ScaleUpTarget, "scale-up-target", env.WithDefaultInt("SCALE_UP_TARGET", 1), "The desired task count applied when scaling up")
	f.IntVar(&opts.ScaleDownThreshold, "scale-down-threshold", env.WithDefaultInt("SCALE_DOWN_THRESHOLD", 2), "Minutes the queue must stay empty before scaling down to zero. Enforced by the scheduled trigger rate.")
	return opts
}

// MustParse reads the user passed flags, environment variables, and default values.
// Options are validated and panics if an error is returned
func (o *Options) MustParse() *Options {
	err := o.Parse(os.Args[1:])

	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		panic(err)
	}
	if err := o.Validate(); err != nil {
		panic(err)
	}
	return o
}

func (o Options) Validate() (err error) {
	err = multierr.Append(err, o.validateQueueURL())
	if o.ClusterName == "" {
		err = multierr.Append(err, fmt.Errorf("ECS_CLUSTER_NAME is required"))
	}
	if o.ServiceName == "" {
		err = multierr.Append(err, fmt.Errorf("ECS_SERVICE_NAME is required"))
	}
	if o.ScaleUpTarget < 1 {
		err = multierr.Append(err, fmt.Errorf("SCALE_UP_TARGET must be at least 1, got %d", o.ScaleUpTarget))
	}
	if o.ScaleDownThreshold < 0 {
		err = multierr.Append(err, fmt.Errorf("SCALE_DOWN_THRESHOLD may not be negative, got %d", o.ScaleDownThreshold))
	}
	return err
}

func (o Options) validateQueueURL() error {
	queueURL, err := url.Parse(o.QueueURL)
	// url.Parse() will accept a lot of input without error; make
	// sure it's a real URL
	if err != nil || !queueURL.IsAbs() || queueURL.Hostname() == "" {
		return fmt.Errorf("%q not a valid SQS_QUEUE_URL", o.QueueURL)
	}
	return nil
}

// Settings converts the parsed options into the Settings carried on the
// invocation context.
func (o Options) Settings() settings.Settings {
	return settings.Settings{
		QueueURL:       o.QueueURL,
		ClusterName:    o.ClusterName,
		ServiceName:    o.ServiceName,
		ScaleUpTarget:  o.ScaleUpTarget,
		ScaleDownGrace: time.Duration(o.ScaleDownThreshold) * time.Minute,
	}
}
