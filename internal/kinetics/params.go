package kinetics

import (
	"errors"
	"fmt"
	"math"
)

// ErrParams indicates a kinetic parameter outside its valid range.
var ErrParams = errors.New("kinetics: parameter out of valid range")

// Params are the rate constants of the model: Ke the elimination rate
// (1/h), Alpha the tolerance gain per unit intake, Beta the tolerance
// decay rate (1/h). A Params value is immutable for the length of a run.
type Params struct {
	Ke    float64 `yaml:"ke"`
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`
}

func (p Params) Validate() error {
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"ke", p.Ke},
		{"alpha", p.Alpha},
		{"beta", p.Beta},
	} {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %g", ErrParams, c.name, c.value)
		}
	}
	if p.Ke <= 0 {
		return fmt.Errorf("%w: ke must be positive, got %g", ErrParams, p.Ke)
	}
	if p.Alpha < 0 {
		return fmt.Errorf("%w: alpha must be non-negative, got %g", ErrParams, p.Alpha)
	}
	if p.Beta < 0 {
		return fmt.Errorf("%w: beta must be non-negative, got %g", ErrParams, p.Beta)
	}
	return nil
}
