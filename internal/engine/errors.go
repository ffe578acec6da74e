package engine

import (
	"errors"
	"fmt"
)

// ErrDependencyNotMet rejects completing a task whose prerequisite is
// still unfinished. A deleted prerequisite counts as satisfied.
var ErrDependencyNotMet = errors.New("task dependency not completed")

// ErrNoActiveTask is returned by stop/complete when nothing is running.
var ErrNoActiveTask = errors.New("no active task")

// ErrTaskNotFound is returned when an operation names a missing task.
var ErrTaskNotFound = errors.New("task not found")

// RollUnavailableError tells the caller why a roll cannot run right now.
// It is expected during normal operation, not a fault.
type RollUnavailableError struct {
	Reason string
}

func (e *RollUnavailableError) Error() string {
	return e.Reason
}

// NewRollUnavailable builds a RollUnavailableError with a formatted reason.
func NewRollUnavailable(format string, args ...any) error {
	return &RollUnavailableError{Reason: fmt.Sprintf(format, args...)}
}

// IsRollUnavailable reports whether err is a roll-availability rejection.
func IsRollUnavailable(err error) bool {
	var target *RollUnavailableError
	return errors.As(err, &target)
}
