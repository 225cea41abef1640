package solve

// System describes an ODE right-hand side dX/dt = f(X, t). Derive must not
// mutate x and must return a vector of length Dim. Implementations are
// expected to be pure: the solver evaluates the derivative at times of its
// own choosing, including retried and intermediate stage times.
type System interface {
	Derive(x State, t float64) State
	Dim() int
}

// Integrator advances a state by a single step of size dt.
type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// AdaptiveIntegrator additionally estimates the local error of a step
// against tol and suggests the next step size. When the estimate exceeds
// tol the step returns ErrAccuracy along with the shrunken suggestion;
// the caller decides whether to retry or to accept anyway.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, t, dt, tol float64) (State, float64, error)
}
