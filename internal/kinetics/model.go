package kinetics

import (
	"github.com/lpaez/dosim/internal/dose"
	"github.com/lpaez/dosim/internal/solve"
)

// State component indices.
const (
	IndexConc = 0
	IndexTol  = 1
)

// Model couples concentration and tolerance to an intake pattern and
// satisfies solve.System.
type Model struct {
	params  Params
	pattern dose.Pattern
}

func New(params Params, pattern dose.Pattern) (*Model, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if pattern == nil {
		pattern = dose.None{}
	}
	return &Model{params: params, pattern: pattern}, nil
}

func (m *Model) Dim() int { return 2 }

func (m *Model) Derive(x solve.State, t float64) solve.State {
	u := m.pattern.Rate(t)
	return solve.State{
		-m.params.Ke*x[IndexConc] + u,
		m.params.Alpha*u - m.params.Beta*x[IndexTol],
	}
}

func (m *Model) Params() Params { return m.params }

func (m *Model) Pattern() dose.Pattern { return m.pattern }

// DefaultInitialState returns the conventional starting point for a
// pattern: a single dose already absorbed for None (C=10 mg, T=2), an
// empty system for everything else.
func DefaultInitialState(p dose.Pattern) solve.State {
	if p == nil || p.Kind() == dose.KindNone {
		return solve.State{10, 2}
	}
	return solve.State{0, 0}
}
