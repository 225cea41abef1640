package solve

import (
	"errors"
	"fmt"
)

// Domain errors for solver operations.
var (
	// ErrDiverged indicates the state left the finite range (NaN or Inf).
	ErrDiverged = errors.New("solve: state diverged (NaN or Inf detected)")

	// ErrAccuracy indicates a step whose local error estimate exceeds the
	// requested tolerance.
	ErrAccuracy = errors.New("solve: local error above tolerance")

	// ErrGrid indicates an output grid that is too short, unordered, or
	// does not start at zero.
	ErrGrid = errors.New("solve: invalid time grid")

	// ErrDimension indicates mismatched state/system dimensions.
	ErrDimension = errors.New("solve: dimension mismatch between state and system")
)

// StepError wraps a solver failure with the step and time it occurred at.
type StepError struct {
	Step int
	Time float64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("solve: step %d (t=%.4f): %v", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
