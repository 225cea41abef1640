package dose

import (
	"fmt"
	"math"
)

// matchWindow is the absolute tolerance for recognizing a burst time.
const matchWindow = 0.1

// Periodic emits a burst of Dose mg/h around every integer multiple of
// Interval, including t=0. The match is one-sided: t counts as a burst
// time when t - n*Interval lies in [0, 0.1] for n = floor(t/Interval),
// so only evaluation times at or just past a multiple see the burst.
// Whether a given burst registers therefore depends on which times the
// solver happens to evaluate; this is a tolerance-matched impulse train,
// not an event-exact dose schedule.
type Periodic struct {
	Dose     float64
	Interval float64
}

func NewPeriodic(dose, interval float64) (Periodic, error) {
	if math.IsNaN(dose) || math.IsInf(dose, 0) || dose <= 0 {
		return Periodic{}, fmt.Errorf("%w: dose must be positive and finite, got %g", ErrPattern, dose)
	}
	if math.IsNaN(interval) || math.IsInf(interval, 0) || interval <= matchWindow {
		return Periodic{}, fmt.Errorf("%w: interval must exceed the %.1f h match window, got %g",
			ErrPattern, matchWindow, interval)
	}
	return Periodic{Dose: dose, Interval: interval}, nil
}

func (p Periodic) Rate(t float64) float64 {
	if t < 0 {
		return 0
	}
	n := math.Floor(t / p.Interval)
	if t-n*p.Interval <= matchWindow {
		return p.Dose
	}
	return 0
}

func (p Periodic) Kind() Kind { return KindPeriodic }

func (p Periodic) String() string {
	return fmt.Sprintf("periodic(%.2f mg/h every %.2f h)", p.Dose, p.Interval)
}
