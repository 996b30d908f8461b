package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for trajectory operations.
var (
	// ErrInvalidState indicates a state vector with invalid dimensions or values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a field parameter outside its valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrInvalidInitialConditions indicates launch conditions with no real
	// geodesic through them (e.g. a negative square-root argument).
	ErrInvalidInitialConditions = errors.New("dynamo: invalid initial conditions")

	// ErrIncompatible indicates an integrator that cannot step the given field.
	ErrIncompatible = errors.New("dynamo: integrator incompatible with field")

	// ErrInvalidConfig indicates a malformed run configuration.
	ErrInvalidConfig = errors.New("dynamo: invalid run configuration")

	// ErrDimensionMismatch indicates a state whose length differs from the field's.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// SimulationError wraps an error with run context.
type SimulationError struct {
	Step    int
	T       float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.T, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
