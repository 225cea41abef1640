package dose

import (
	"fmt"
	"math"
)

// Linear is intake ramping as a*t mg per hour. The ramp grows without
// bound over the simulated horizon; there is no saturation.
type Linear struct {
	Slope float64
}

func NewLinear(slope float64) (Linear, error) {
	if math.IsNaN(slope) || math.IsInf(slope, 0) || slope <= 0 {
		return Linear{}, fmt.Errorf("%w: slope must be positive and finite, got %g", ErrPattern, slope)
	}
	return Linear{Slope: slope}, nil
}

func (l Linear) Rate(t float64) float64 { return l.Slope * t }

func (l Linear) Kind() Kind { return KindLinear }

func (l Linear) String() string { return fmt.Sprintf("linear(%.2f mg/h per h)", l.Slope) }
