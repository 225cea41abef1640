package solve

// Trajectory holds the state recorded at every grid time of a completed
// run, plus stepping statistics. Callers must treat it as read-only; a
// failed run returns no trajectory at all.
type Trajectory struct {
	Times    []float64
	States   []State
	Steps    int // accepted internal steps
	Rejected int // steps retried after a failed error estimate
	Evals    int // right-hand side evaluations
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

// Component extracts column i across all recorded states.
func (tr *Trajectory) Component(i int) []float64 {
	out := make([]float64, len(tr.States))
	for j, s := range tr.States {
		out[j] = s[i]
	}
	return out
}

func (tr *Trajectory) Final() State { return tr.States[len(tr.States)-1] }

func (tr *Trajectory) End() float64 { return tr.Times[len(tr.Times)-1] }
