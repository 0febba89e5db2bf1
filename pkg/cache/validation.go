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

import (
	"fmt"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"
)

// Target identifies one queue/service scaling pair.
type Target struct {
	QueueURL    string
	ClusterName string
	ServiceName string
}

// Validation caches the result of probing a scale target's queue and service
// so that reused execution environments don't re-validate on every invocation.
type Validation struct {
	// key: hash of target, value: failure reason or empty string on success
	validationCache *cache.Cache
}

func NewValidation() *Validation {
	return &Validation{
		validationCache: cache.New(ValidationTTL, DefaultCleanupInterval),
	}
}

// SetSuccess marks validation as successful (i.e. value in cache as empty string)
func (v *Validation) SetSuccess(target Target) {
	v.validationCache.SetDefault(v.key(target), "")
}

// SetFailure marks validation as a failure (i.e. value in cache not an empty string)
func (v *Validation) SetFailure(target Target, failureReason string) {
	v.validationCache.SetDefault(v.key(target), failureReason)
}

func (v *Validation) Get(target Target) (string, bool) {
	got, ok := v.validationCache.Get(v.key(target))
	if !ok {
		return "", false
	}
	return got.(string), true
}

func (v *Validation) key(target Target) string {
	hash := lo.Must(hashstructure.Hash(target, hashstructure.FormatV2, nil))
	return fmt.Sprintf("%016x", hash)
}
