package agents

import "fmt"

// ClassificationError means the classifier produced no usable category.
// The orchestrator answers it with the fallback reply; it is never shown
// to the customer directly.
type ClassificationError struct {
	Err error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classification failed: %v", e.Err)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// ExecutionError means the specialist run produced no usable reply:
// generation failed, the round cap was hit, or the final text was empty.
type ExecutionError struct {
	Agent string
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("agent %q execution failed: %v", e.Agent, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
