// Package ode provides core primitives for integrating ordinary
// differential equations.
//
// The package defines the fundamental interfaces and types shared by the
// oscillator pipeline:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical stepping interface
//   - [Simulator]: advances a system and records samples at a fixed rate
//
// # Example
//
//	sys := pendulum.New()
//	integ := integrators.NewRK45()
//	sim := ode.NewSimulator(sys, integ)
//	result, _ := sim.Run(ctx, x0, cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. Run independent configurations
// on separate Simulator values; the sweep package does this for batches.
package ode
