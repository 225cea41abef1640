package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/lpaez/dosim/internal/dose"
)

// ErrBounds indicates a configuration value outside its tunable range.
var ErrBounds = errors.New("config: value out of bounds")

// Range is a closed tunable interval with the increment used by the
// interactive surfaces.
type Range struct {
	Min, Max, Step float64
}

func (r Range) Contains(v float64) bool {
	return !math.IsNaN(v) && v >= r.Min && v <= r.Max
}

func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Bounds delimit every tunable of a run. Callers pass the value around
// rather than reading package state, so a narrowed copy works the same
// way.
type Bounds struct {
	Ke       Range
	Alpha    Range
	Beta     Range
	Horizon  Range
	Rate     Range
	Slope    Range
	Dose     Range
	Interval Range

	MinPoints int
	MaxPoints int
}

func DefaultBounds() Bounds {
	return Bounds{
		Ke:        Range{Min: 0.1, Max: 1.0, Step: 0.05},
		Alpha:     Range{Min: 0.0, Max: 1.0, Step: 0.05},
		Beta:      Range{Min: 0.0, Max: 1.0, Step: 0.05},
		Horizon:   Range{Min: 10, Max: 100, Step: 1},
		Rate:      Range{Min: 0.1, Max: 5.0, Step: 0.1},
		Slope:     Range{Min: 0.01, Max: 1.0, Step: 0.01},
		Dose:      Range{Min: 1, Max: 10, Step: 1},
		Interval:  Range{Min: 1, Max: 20, Step: 1},
		MinPoints: 50,
		MaxPoints: 5000,
	}
}

// Check validates a config against the bounds. Pattern parameters are
// checked only for the selected pattern kind.
func (b Bounds) Check(cfg *Config) error {
	kind, err := dose.ParseKind(cfg.Pattern.Kind)
	if err != nil {
		return err
	}

	type check struct {
		name  string
		value float64
		r     Range
	}
	checks := []check{
		{"ke", cfg.Ke, b.Ke},
		{"alpha", cfg.Alpha, b.Alpha},
		{"beta", cfg.Beta, b.Beta},
		{"horizon", cfg.Horizon, b.Horizon},
	}
	switch kind {
	case dose.KindConstant:
		checks = append(checks, check{"rate", cfg.Pattern.Rate, b.Rate})
	case dose.KindLinear:
		checks = append(checks, check{"slope", cfg.Pattern.Slope, b.Slope})
	case dose.KindPeriodic:
		checks = append(checks,
			check{"dose", cfg.Pattern.Dose, b.Dose},
			check{"interval", cfg.Pattern.Interval, b.Interval})
	}

	for _, c := range checks {
		if !c.r.Contains(c.value) {
			return fmt.Errorf("%w: %s=%g outside [%g, %g]", ErrBounds, c.name, c.value, c.r.Min, c.r.Max)
		}
	}

	if cfg.Points < b.MinPoints || cfg.Points > b.MaxPoints {
		return fmt.Errorf("%w: points=%d outside [%d, %d]", ErrBounds, cfg.Points, b.MinPoints, b.MaxPoints)
	}

	if cfg.Init != nil {
		if math.IsNaN(cfg.Init.Conc) || cfg.Init.Conc < 0 {
			return fmt.Errorf("%w: initial concentration must be non-negative, got %g", ErrBounds, cfg.Init.Conc)
		}
		if math.IsNaN(cfg.Init.Tol) || cfg.Init.Tol < 0 {
			return fmt.Errorf("%w: initial tolerance must be non-negative, got %g", ErrBounds, cfg.Init.Tol)
		}
	}

	return nil
}
