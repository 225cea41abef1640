package dose

import (
	"fmt"
	"math"
)

// Constant is steady intake at R0 mg per hour.
type Constant struct {
	R0 float64
}

func NewConstant(r0 float64) (Constant, error) {
	if math.IsNaN(r0) || math.IsInf(r0, 0) || r0 <= 0 {
		return Constant{}, fmt.Errorf("%w: rate must be positive and finite, got %g", ErrPattern, r0)
	}
	return Constant{R0: r0}, nil
}

func (c Constant) Rate(t float64) float64 { return c.R0 }

func (c Constant) Kind() Kind { return KindConstant }

func (c Constant) String() string { return fmt.Sprintf("constant(%.2f mg/h)", c.R0) }
