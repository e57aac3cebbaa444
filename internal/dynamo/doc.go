// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical integrator interface
//   - [Solve]: initial value problem solver sampled on a caller grid
//   - [ParallelMap]: ordered fan-out over independent work items
//
// # Example
//
//	grid := []float64{0, 0.1, 0.2, 0.3}
//	traj, err := dynamo.Solve(ctx, dyn, integrators.NewRK4(), x0, grid, dynamo.DefaultConfig())
//
// # Thread Safety
//
// Integrators may keep scratch buffers and are NOT thread-safe. Give
// every goroutine its own instance.
package dynamo
