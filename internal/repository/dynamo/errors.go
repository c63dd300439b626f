package dynamo

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"hirebase/internal/domain"
)

// isConditionalCheckFailed reports whether a write was rejected by its
// condition expression, which for our updates means the item does not exist.
func isConditionalCheckFailed(err error) bool {
	var cond *types.ConditionalCheckFailedException
	return errors.As(err, &cond)
}

// isResourceNotFound reports whether the target table or index is missing.
func isResourceNotFound(err error) bool {
	var rnf *types.ResourceNotFoundException
	return errors.As(err, &rnf)
}

// storeError wraps an SDK call failure that survived the client's retries.
func storeError(op string, err error) error {
	return &domain.StoreUnavailableError{Op: op, Err: err}
}
