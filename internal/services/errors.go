package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	// ErrDuplicateReport is a soft rejection: the same reporter already
	// reported the comment within the dedup window.
	ErrDuplicateReport = errors.New("already reported")
)

// ValidationError rejects a mutation before any state is touched.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
