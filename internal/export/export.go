package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/lpaez/dosim/internal/experiment"
	"github.com/lpaez/dosim/internal/kinetics"
	"github.com/lpaez/dosim/internal/report"
)

// CSV writes the trajectory as time, concentration, tolerance rows.
func CSV(w io.Writer, res *experiment.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"time", "conc", "tol"}); err != nil {
		return err
	}
	for i, t := range res.Traj.Times {
		row := []string{
			strconv.FormatFloat(t, 'f', 6, 64),
			strconv.FormatFloat(res.Traj.States[i][kinetics.IndexConc], 'f', 6, 64),
			strconv.FormatFloat(res.Traj.States[i][kinetics.IndexTol], 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSV saves the trajectory to a file at path.
func WriteCSV(path string, res *experiment.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return CSV(file, res)
}

type runData struct {
	Label   string         `json:"label"`
	Ke      float64        `json:"ke"`
	Alpha   float64        `json:"alpha"`
	Beta    float64        `json:"beta"`
	Pattern string         `json:"pattern"`
	Init    []float64      `json:"init_state"`
	Samples int            `json:"samples"`
	Times   []float64      `json:"times"`
	Conc    []float64      `json:"conc"`
	Tol     []float64      `json:"tol"`
	Summary report.Summary `json:"summary"`
}

// JSON writes the run with its parameters and summary attached.
func JSON(w io.Writer, res *experiment.Result) error {
	data := runData{
		Label:   res.Label,
		Ke:      res.Params.Ke,
		Alpha:   res.Params.Alpha,
		Beta:    res.Params.Beta,
		Pattern: res.Pattern.String(),
		Init:    res.Init,
		Samples: res.Traj.Len(),
		Times:   res.Traj.Times,
		Conc:    res.Traj.Component(kinetics.IndexConc),
		Tol:     res.Traj.Component(kinetics.IndexTol),
		Summary: res.Summary,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// WriteJSON saves the run to a file at path.
func WriteJSON(path string, res *experiment.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return JSON(file, res)
}
