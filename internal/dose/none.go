package dose

// None is the zero-intake pattern used for single-dose runs, where the
// dose enters through the initial state instead of the rate function.
type None struct{}

func (None) Rate(t float64) float64 { return 0 }

func (None) Kind() Kind { return KindNone }

func (None) String() string { return "none" }
