package cloud

import (
	"errors"

	"github.com/aws/smithy-go"
)

// Not-found codes of the EC2-compatible API surface. Eucalyptus returns
// the same codes as EC2 for these lookups.
const (
	codeKeypairNotFound       = "InvalidKeyPair.NotFound"
	codeSecurityGroupNotFound = "InvalidGroup.NotFound"
	codeInstanceNotFound      = "InvalidInstanceID.NotFound"
)

// IsNotFound checks if an error indicates the looked-up resource does not
// exist.
func IsNotFound(err error) bool {
	return isAPIErrorCode(err,
		codeKeypairNotFound,
		codeSecurityGroupNotFound,
		codeInstanceNotFound,
	)
}

// isAPIErrorCode checks if the error is an API error with one of the
// given codes.
func isAPIErrorCode(err error, codes ...string) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		for _, code := range codes {
			if apiErr.ErrorCode() == code {
				return true
			}
		}
	}
	return false
}
