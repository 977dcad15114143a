package ode

import "errors"

// Domain errors for integration runs.
var (
	// ErrInvalidState indicates a state vector with invalid dimensions or values.
	ErrInvalidState = errors.New("ode: invalid state (NaN or Inf detected)")

	// ErrBadConfig indicates a run configuration that cannot be executed.
	ErrBadConfig = errors.New("ode: invalid run configuration")

	// ErrStepTooSmall indicates the adaptive timestep collapsed below its floor.
	ErrStepTooSmall = errors.New("ode: adaptive timestep below minimum")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("ode: dimension mismatch between state and system")
)
