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

package errors

import (
	"errors"

	"github.com/aws/smithy-go"
)

const (
	AccessDeniedCode          = "AccessDenied"
	AccessDeniedExceptionCode = "AccessDeniedException"

	queueDoesNotExistCode     = "AWS.SimpleQueueService.NonExistentQueue"
	queueDoesNotExistJSONCode = "QueueDoesNotExist"
	serviceNotFoundCode       = "ServiceNotFoundException"
	clusterNotFoundCode       = "ClusterNotFoundException"
)

var (
	// This is not an exhaustive list, add to it as needed
	notFoundErrorCodes = map[string]bool{
		queueDoesNotExistCode:     true,
		queueDoesNotExistJSONCode: true,
		serviceNotFoundCode:       true,
		clusterNotFoundCode:       true,
	}
	accessDeniedErrorCodes = map[string]bool{
		AccessDeniedCode:          true,
		AccessDeniedExceptionCode: true,
	}
)

// IsNotFound returns true if the err is an AWS error (even if it's
// wrapped) and is known to mean "not found" (as opposed to a more
// serious or unexpected error)
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return notFoundErrorCodes[apiErr.ErrorCode()]
	}
	return false
}

// IsAccessDenied returns true if the error is an AWS error (even if it's
// wrapped) and is known to mean "access denied" (as opposed to a more
// serious or unexpected error)
func IsAccessDenied(err error) bool {
	if err == nil {
		return false
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return accessDeniedErrorCodes[apiErr.ErrorCode()]
	}
	return false
}
