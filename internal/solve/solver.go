package solve

import (
	"context"
	"fmt"
	"math"
)

// Options control the stepping between grid points. Zero fields take
// defaults derived from the grid at run time: Tol 1e-6, MaxStep one grid
// interval, InitStep a quarter interval, MinStep 1e-10. Fixed steppers
// advance at InitStep throughout.
type Options struct {
	Tol      float64
	InitStep float64
	MaxStep  float64
	MinStep  float64
}

func DefaultOptions() Options {
	return Options{Tol: 1e-6, MinStep: 1e-10}
}

func (o Options) withGrid(g Grid) Options {
	if o.Tol == 0 {
		o.Tol = 1e-6
	}
	if o.MaxStep == 0 {
		o.MaxStep = g.Spacing()
	}
	if o.InitStep == 0 {
		o.InitStep = o.MaxStep / 4
	}
	if o.MinStep == 0 {
		o.MinStep = 1e-10
	}
	return o
}

// Solver drives a stepper across an output grid.
type Solver struct {
	stepper Integrator
	opts    Options
}

func New(stepper Integrator, opts Options) *Solver {
	return &Solver{stepper: stepper, opts: opts}
}

// Run integrates sys from x0 and records the state at every grid time.
// Row 0 of the result is x0 itself; internal steps never overshoot the
// next grid time. Identical inputs produce identical trajectories. On
// failure the returned error wraps the cause in a *StepError and no
// trajectory is returned.
func (s *Solver) Run(ctx context.Context, sys System, x0 State, grid Grid) (*Trajectory, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if len(x0) != sys.Dim() {
		return nil, fmt.Errorf("%w: state has %d components, system wants %d", ErrDimension, len(x0), sys.Dim())
	}
	if !x0.IsValid() {
		return nil, fmt.Errorf("initial state: %w", ErrDiverged)
	}

	opts := s.opts.withGrid(grid)
	counted := &countingSystem{System: sys}
	adaptive, isAdaptive := s.stepper.(AdaptiveIntegrator)

	tr := &Trajectory{
		Times:  make([]float64, len(grid)),
		States: make([]State, 0, len(grid)),
	}
	copy(tr.Times, grid)

	x := x0.Clone()
	tr.States = append(tr.States, x.Clone())

	t := 0.0
	dt := opts.InitStep
	for i := 1; i < len(grid); i++ {
		target := grid[i]
		for t < target {
			select {
			case <-ctx.Done():
				return nil, &StepError{Step: tr.Steps, Time: t, Err: ctx.Err()}
			default:
			}

			h := math.Min(dt, target-t)
			var next State
			if isAdaptive {
				var dtNext float64
				var err error
				next, dtNext, err = adaptive.StepAdaptive(counted, x, t, h, opts.Tol)
				if err != nil && h > opts.MinStep {
					dt = math.Max(dtNext, opts.MinStep)
					tr.Rejected++
					continue
				}
				// at the floor the error estimate is ignored
				dt = math.Min(math.Max(dtNext, opts.MinStep), opts.MaxStep)
			} else {
				next = s.stepper.Step(counted, x, t, h)
			}

			if !next.IsValid() {
				return nil, &StepError{Step: tr.Steps, Time: t, Err: ErrDiverged}
			}
			x = next
			t += h
			tr.Steps++

			if target-t < opts.MinStep {
				t = target
			}
		}
		tr.States = append(tr.States, x.Clone())
	}

	tr.Evals = counted.evals
	return tr, nil
}

type countingSystem struct {
	System
	evals int
}

func (c *countingSystem) Derive(x State, t float64) State {
	c.evals++
	return c.System.Derive(x, t)
}
