// Package kinetics implements the two-state consumption model: substance
// concentration C cleared at rate ke, and tolerance T built up by intake
// and decaying at rate beta.
//
//	dC/dt = -ke*C + u(t)
//	dT/dt = alpha*u(t) - beta*T
//
// [Model] binds a [Params] value to a dose.Pattern and satisfies
// solve.System. The pattern is evaluated inside the derivative, so the
// solver's internal evaluation times decide which parts of a
// discontinuous pattern the run actually sees.
package kinetics
