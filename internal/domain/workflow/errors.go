package workflow

import (
	"errors"
	"fmt"
)

// ErrWorkflowCompleted is returned when an operation targets a workflow that
// has already finished.
var ErrWorkflowCompleted = errors.New("workflow is already completed")

// InvalidTransitionError reports an attempted phase change the state machine
// does not allow.
type InvalidTransitionError struct {
	From Phase
	To   Phase
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid workflow transition from %s to %s", e.From, e.To)
}

func IsInvalidTransition(err error) bool {
	var e *InvalidTransitionError
	return errors.As(err, &e)
}
