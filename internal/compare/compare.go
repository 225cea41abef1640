// Package compare runs related simulations side by side.
package compare

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"

	"github.com/lpaez/dosim/internal/config"
	"github.com/lpaez/dosim/internal/experiment"
)

// Pair holds two runs over the same horizon.
type Pair struct {
	A *experiment.Result
	B *experiment.Result
}

// Run executes both configurations concurrently.
func Run(ctx context.Context, a, b *config.Config, bounds config.Bounds) (*Pair, error) {
	cfgs := []*config.Config{a, b}
	results := make([]*experiment.Result, 2)
	errs := make([]error, 2)

	var wg sync.WaitGroup
	for i := range cfgs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = experiment.Run(ctx, cfgs[idx], bounds)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return &Pair{A: results[0], B: results[1]}, nil
}

// Render writes a side-by-side table of the two summaries.
func Render(w io.Writer, p *Pair) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\t%s\t%s\tdiff\n", p.A.Label, p.B.Label)

	row := func(name string, a, b float64) {
		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%+.3f\n", name, a, b, b-a)
	}
	row("Final concentration", p.A.Summary.FinalConc, p.B.Summary.FinalConc)
	row("Final tolerance", p.A.Summary.FinalTol, p.B.Summary.FinalTol)
	row("Peak concentration", p.A.Summary.PeakConc, p.B.Summary.PeakConc)
	row("Peak tolerance", p.A.Summary.PeakTol, p.B.Summary.PeakTol)

	tw.Flush()
}

var sweepable = map[string]func(*config.Config, float64){
	"ke":       func(c *config.Config, v float64) { c.Ke = v },
	"alpha":    func(c *config.Config, v float64) { c.Alpha = v },
	"beta":     func(c *config.Config, v float64) { c.Beta = v },
	"rate":     func(c *config.Config, v float64) { c.Pattern.Rate = v },
	"slope":    func(c *config.Config, v float64) { c.Pattern.Slope = v },
	"dose":     func(c *config.Config, v float64) { c.Pattern.Dose = v },
	"interval": func(c *config.Config, v float64) { c.Pattern.Interval = v },
	"horizon":  func(c *config.Config, v float64) { c.Horizon = v },
}

// SweepParams lists the parameters Sweep accepts, sorted.
func SweepParams() []string {
	names := make([]string, 0, len(sweepable))
	for name := range sweepable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Values builds n evenly spaced sweep values from lo to hi inclusive.
func Values(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	vals := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range vals {
		vals[i] = lo + float64(i)*step
	}
	vals[n-1] = hi
	return vals
}

// Sweep runs the base configuration once per value of the named
// parameter, in parallel. The base carries final rate constants; only
// the swept parameter differs between runs.
func Sweep(ctx context.Context, base *config.Config, param string, values []float64, bounds config.Bounds) ([]*experiment.Result, error) {
	set, ok := sweepable[param]
	if !ok {
		return nil, fmt.Errorf("unknown sweep parameter: %s", param)
	}

	results := make([]*experiment.Result, len(values))
	errs := make([]error, len(values))

	var wg sync.WaitGroup
	for i := range values {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := base.Clone()
			set(cfg, values[idx])

			res, err := experiment.Run(ctx, cfg, bounds)
			if err != nil {
				errs[idx] = fmt.Errorf("%s=%g: %w", param, values[idx], err)
				return
			}
			res.Label = fmt.Sprintf("%s=%g", param, values[idx])
			results[idx] = res
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// RenderSweep writes one summary line per swept run.
func RenderSweep(w io.Writer, results []*experiment.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "run\tfinal conc\tfinal tol\tpeak conc\tpeak tol")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%.3f\t%.3f\n",
			r.Label, r.Summary.FinalConc, r.Summary.FinalTol, r.Summary.PeakConc, r.Summary.PeakTol)
	}
	tw.Flush()
}
