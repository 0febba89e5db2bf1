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

package cache

import "time"

const (
	// ValidationTTL is how long a scale target validation result is trusted
	// before the queue and service are probed again. Execution environments
	// are reused across invocations, so this bounds repeat probes per
	// environment rather than per invocation.
	ValidationTTL = 10 * time.Minute
	// DefaultCleanupInterval triggers cache cleanup (lazy eviction) at this interval
	DefaultCleanupInterval = time.Minute
)
