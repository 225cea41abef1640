package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/lpaez/dosim/internal/kinetics"
	"github.com/lpaez/dosim/internal/solve"
)

// Summary condenses a finished run into the values the CLI and TUI
// report: the state at the end of the horizon plus the peaks along the
// way.
type Summary struct {
	FinalConc    float64 `json:"final_conc"`
	FinalTol     float64 `json:"final_tol"`
	PeakConc     float64 `json:"peak_conc"`
	PeakConcTime float64 `json:"peak_conc_time"`
	PeakTol      float64 `json:"peak_tol"`
	PeakTolTime  float64 `json:"peak_tol_time"`
	Steps        int     `json:"steps"`
	Rejected     int     `json:"rejected"`
	Evals        int     `json:"evals"`
}

// Summarize scans a trajectory once for its final and peak values.
func Summarize(traj *solve.Trajectory) Summary {
	s := Summary{
		FinalConc:    traj.Final()[kinetics.IndexConc],
		FinalTol:     traj.Final()[kinetics.IndexTol],
		PeakConc:     traj.States[0][kinetics.IndexConc],
		PeakConcTime: traj.Times[0],
		PeakTol:      traj.States[0][kinetics.IndexTol],
		PeakTolTime:  traj.Times[0],
		Steps:        traj.Steps,
		Rejected:     traj.Rejected,
		Evals:        traj.Evals,
	}

	for i := 1; i < len(traj.States); i++ {
		if c := traj.States[i][kinetics.IndexConc]; c > s.PeakConc {
			s.PeakConc = c
			s.PeakConcTime = traj.Times[i]
		}
		if v := traj.States[i][kinetics.IndexTol]; v > s.PeakTol {
			s.PeakTol = v
			s.PeakTolTime = traj.Times[i]
		}
	}

	return s
}

// Render writes the summary block printed after a run.
func Render(w io.Writer, s Summary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Final concentration:\t%.2f mg\n", s.FinalConc)
	fmt.Fprintf(tw, "Final tolerance:\t%.2f\n", s.FinalTol)
	fmt.Fprintf(tw, "Peak concentration:\t%.2f mg at %.1f h\n", s.PeakConc, s.PeakConcTime)
	fmt.Fprintf(tw, "Peak tolerance:\t%.2f at %.1f h\n", s.PeakTol, s.PeakTolTime)
	fmt.Fprintf(tw, "Solver steps:\t%d accepted, %d rejected, %d evaluations\n",
		s.Steps, s.Rejected, s.Evals)
	tw.Flush()
}
