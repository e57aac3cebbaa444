package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrNumericalDivergence indicates the integrated state left the finite
	// (or physically admissible) region.
	ErrNumericalDivergence = errors.New("dynamo: numerical divergence (state not finite or out of domain)")

	// ErrStepLimit indicates the requested grid needs more steps than allowed.
	ErrStepLimit = errors.New("dynamo: step limit exceeded")

	// ErrStepTooSmall indicates adaptive timestep became too small.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")

	// ErrStepRejected is returned by adaptive integrators for a step whose
	// error estimate is above tolerance. Solvers retry it with a smaller dt.
	ErrStepRejected = errors.New("dynamo: step rejected by error control")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrInvalidGrid indicates an empty or non-increasing sample grid.
	ErrInvalidGrid = errors.New("dynamo: invalid time grid")

	// ErrInvalidConfig indicates solver settings that cannot be honored.
	ErrInvalidConfig = errors.New("dynamo: invalid solver configuration")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
