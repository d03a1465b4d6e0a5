package assignments

import (
	"errors"
	"fmt"
)

// RejectionError is a business-rule rejection: reported to the caller as a
// plain message, never retried, nothing mutated.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return e.Reason
}

func reject(format string, args ...interface{}) error {
	return &RejectionError{Reason: fmt.Sprintf(format, args...)}
}

func IsRejection(err error) bool {
	var re *RejectionError
	return errors.As(err, &re)
}
