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

package settings

import (
	"context"
	"time"
)

type settingsKeyType struct{}

// ContextKey stores Settings on the context
var ContextKey = settingsKeyType{}

// Settings is the resolved scaling target configuration carried through a
// single invocation.
type Settings struct {
	QueueURL    string
	ClusterName string
	ServiceName string
	// ScaleUpTarget is the desired task count applied on scale-up.
	ScaleUpTarget int
	// ScaleDownGrace is how long the queue must stay empty before the service
	// is scaled to zero. The scheduled trigger rate enforces it; the decision
	// itself only looks at the current queue depth.
	ScaleDownGrace time.Duration
}

func ToContext(ctx context.Context, s Settings) context.Context {
	return context.WithValue(ctx, ContextKey, s)
}

func FromContext(ctx context.Context) Settings {
	data := ctx.Value(ContextKey)
	if data == nil {
		// This is developer error if this happens, so we should panic
		panic("settings doesn't exist in context")
	}
	return data.(Settings)
}
