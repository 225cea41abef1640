// Package dose defines the intake patterns that drive a simulation.
//
// A [Pattern] is a pure, deterministic intake rate u(t) in mg per hour:
//
//   - [None]: zero intake (single-dose runs start loaded instead)
//   - [Constant]: steady intake at a fixed rate
//   - [Linear]: intake ramping up proportionally with time
//   - [Periodic]: tolerance-matched impulse train
//
// Patterns are immutable values and safe for concurrent use. The solver
// evaluates Rate at internal times of its own choosing, so patterns must
// be total functions of t with no memory of previous calls.
package dose
