package terrasim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameters wraps every parameter-validation failure; no
	// timestep executes once it is returned.
	ErrInvalidParameters = errors.New("terrasim: invalid parameters")

	// ErrNonFinite indicates a NaN or Inf entered a field during a step.
	ErrNonFinite = errors.New("terrasim: non-finite field value")

	// ErrRunCanceled indicates the run was deliberately aborted, either by
	// the progress callback or by context cancellation. Distinguishable
	// from numerical failure with errors.Is.
	ErrRunCanceled = errors.New("terrasim: run canceled")
)

// StepError reports a failure at a step boundary, wrapping the cause.
// Snapshots produced before the failing step remain valid.
type StepError struct {
	Step int
	Time float64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%g yr): %v", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
