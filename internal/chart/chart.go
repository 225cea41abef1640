// Package chart renders trajectories to image files with gonum/plot.
package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/lpaez/dosim/internal/compare"
	"github.com/lpaez/dosim/internal/experiment"
	"github.com/lpaez/dosim/internal/kinetics"
)

const (
	width  = 10 * vg.Inch
	height = 5 * vg.Inch
)

var (
	concColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	tolColor  = color.RGBA{R: 214, G: 39, B: 40, A: 255}

	dashed = []vg.Length{vg.Points(6), vg.Points(2)}
)

// Save renders a single run to path. The extension picks the format:
// .png, .svg, or .pdf.
func Save(path string, res *experiment.Result) error {
	p := newPlot(fmt.Sprintf("%s, %s", res.Label, res.Pattern))

	conc, err := line(res, kinetics.IndexConc, concColor, nil)
	if err != nil {
		return err
	}
	tol, err := line(res, kinetics.IndexTol, tolColor, nil)
	if err != nil {
		return err
	}

	p.Add(conc, tol)
	p.Legend.Add("concentration", conc)
	p.Legend.Add("tolerance", tol)

	return p.Save(width, height, path)
}

// SaveComparison overlays two runs, the first dashed and the second
// solid.
func SaveComparison(path string, pair *compare.Pair) error {
	p := newPlot(fmt.Sprintf("%s vs %s", pair.A.Label, pair.B.Label))

	for _, run := range []struct {
		res    *experiment.Result
		dashes []vg.Length
	}{
		{pair.A, dashed},
		{pair.B, nil},
	} {
		conc, err := line(run.res, kinetics.IndexConc, concColor, run.dashes)
		if err != nil {
			return err
		}
		tol, err := line(run.res, kinetics.IndexTol, tolColor, run.dashes)
		if err != nil {
			return err
		}
		p.Add(conc, tol)
		p.Legend.Add(run.res.Label+" conc", conc)
		p.Legend.Add(run.res.Label+" tol", tol)
	}

	return p.Save(width, height, path)
}

// SaveSweep overlays the concentration curves of all swept runs.
func SaveSweep(path string, results []*experiment.Result) error {
	p := newPlot("Parameter sweep")

	for i, res := range results {
		conc, err := line(res, kinetics.IndexConc, plotutil.Color(i), nil)
		if err != nil {
			return err
		}
		p.Add(conc)
		p.Legend.Add(res.Label, conc)
	}

	return p.Save(width, height, path)
}

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (h)"
	p.Y.Label.Text = "level (mg)"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

func line(res *experiment.Result, idx int, col color.Color, dashes []vg.Length) (*plotter.Line, error) {
	pts := make(plotter.XYs, res.Traj.Len())
	for i, t := range res.Traj.Times {
		pts[i].X = t
		pts[i].Y = res.Traj.States[i][idx]
	}

	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.LineStyle.Width = vg.Points(1.5)
	l.LineStyle.Color = col
	l.LineStyle.Dashes = dashes
	return l, nil
}
