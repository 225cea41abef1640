// Package solve provides the numerical core for integrating ordinary
// differential equations onto a fixed output grid.
//
// The package defines the primitives shared by every simulation in this
// repository:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE right-hand sides (dX/dt = f(X, t))
//   - [Integrator]: single-step numerical scheme
//   - [AdaptiveIntegrator]: error-controlled scheme with step suggestion
//   - [Solver]: drives a stepper between grid times, records a [Trajectory]
//
// # Example
//
//	grid, _ := solve.UniformGrid(50, 500)
//	sv := solve.New(solve.NewRK45(), solve.DefaultOptions())
//	traj, err := sv.Run(ctx, sys, x0, grid)
//
// # Thread Safety
//
// Solver instances are NOT thread-safe. For concurrent simulations use a
// separate Solver per goroutine; see the compare package.
package solve
