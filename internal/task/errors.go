package task

import (
	"errors"
	"fmt"
)

// ErrPrecondition reports a task rejected before it started.
var ErrPrecondition = errors.New("task precondition failed")

func precondition(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...))
}

func preconditionErr(err error) error {
	return fmt.Errorf("%w: %w", ErrPrecondition, err)
}
