package solve

import (
	"fmt"
	"math"
)

// Grid is the ordered set of output times for a run. A valid grid starts
// at zero, is strictly increasing, and has at least two points.
type Grid []float64

// UniformGrid builds an n-point grid from 0 to tMax inclusive,
// t[i] = tMax*i/(n-1).
func UniformGrid(tMax float64, n int) (Grid, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrGrid, n)
	}
	if tMax <= 0 || math.IsNaN(tMax) || math.IsInf(tMax, 0) {
		return nil, fmt.Errorf("%w: horizon must be positive and finite, got %g", ErrGrid, tMax)
	}
	g := make(Grid, n)
	for i := range g {
		g[i] = tMax * float64(i) / float64(n-1)
	}
	g[n-1] = tMax
	return g, nil
}

func (g Grid) Validate() error {
	if len(g) < 2 {
		return fmt.Errorf("%w: need at least 2 points, got %d", ErrGrid, len(g))
	}
	if g[0] != 0 {
		return fmt.Errorf("%w: must start at t=0, got %g", ErrGrid, g[0])
	}
	for i := 1; i < len(g); i++ {
		if math.IsNaN(g[i]) || math.IsInf(g[i], 0) || g[i] <= g[i-1] {
			return fmt.Errorf("%w: times must be finite and strictly increasing (index %d)", ErrGrid, i)
		}
	}
	return nil
}

// Spacing returns the first interval width, which for a uniform grid is
// the spacing everywhere.
func (g Grid) Spacing() float64 {
	if len(g) < 2 {
		return 0
	}
	return g[1] - g[0]
}

func (g Grid) End() float64 { return g[len(g)-1] }
