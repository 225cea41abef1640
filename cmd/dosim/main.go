package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/lpaez/dosim/internal/analysis"
	"github.com/lpaez/dosim/internal/chart"
	"github.com/lpaez/dosim/internal/compare"
	"github.com/lpaez/dosim/internal/config"
	"github.com/lpaez/dosim/internal/experiment"
	"github.com/lpaez/dosim/internal/export"
	"github.com/lpaez/dosim/internal/kinetics"
	"github.com/lpaez/dosim/internal/report"
	"github.com/lpaez/dosim/internal/tui"
)

var (
	substance  string
	ke         float64
	alpha      float64
	beta       float64
	configFile string

	pattern  string
	rate     float64
	slope    float64
	doseRate float64
	interval float64
	horizon  float64
	points   int
	initConc float64
	initTol  float64

	stepper   string
	tolerance float64

	csvPath   string
	jsonPath  string
	chartPath string
	ascii     bool

	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int

	popTrials int
	popJitter float64
	popSeed   int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dosim",
		Short: "substance kinetics simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive explorer when no command given
			return tui.Run()
		},
	}

	runCmd := &cobra.Command{
		Use:   "run [substance]",
		Short: "run a simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addKineticFlags(runCmd)
	addRegimenFlags(runCmd)
	addSolverFlags(runCmd)
	runCmd.Flags().BoolVar(&ascii, "ascii", false, "plot trajectories in the terminal")
	runCmd.Flags().StringVar(&csvPath, "csv", "", "export trajectory to CSV file")
	runCmd.Flags().StringVar(&jsonPath, "json", "", "export run to JSON file")
	runCmd.Flags().StringVar(&chartPath, "chart", "", "render chart to file (.png, .svg, .pdf)")

	compareCmd := &cobra.Command{
		Use:   "compare [substance] [substance]",
		Short: "run two substances under the same regimen",
		Args:  cobra.ExactArgs(2),
		RunE:  comparePair,
	}
	addRegimenFlags(compareCmd)
	addSolverFlags(compareCmd)
	compareCmd.Flags().BoolVar(&ascii, "ascii", false, "plot concentration overlay in the terminal")
	compareCmd.Flags().StringVar(&chartPath, "chart", "", "render overlay chart to file")

	sweepCmd := &cobra.Command{
		Use:   "sweep [substance]",
		Short: "vary one parameter across a range",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addKineticFlags(sweepCmd)
	addRegimenFlags(sweepCmd)
	addSolverFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "ke",
		"parameter to sweep ("+strings.Join(compare.SweepParams(), "|")+")")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.1, "first sweep value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1.0, "last sweep value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of sweep values")
	sweepCmd.Flags().StringVar(&chartPath, "chart", "", "render overlay chart to file")

	populationCmd := &cobra.Command{
		Use:   "population [substance]",
		Short: "simulate individual variability around a substance",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPopulation,
	}
	addKineticFlags(populationCmd)
	addRegimenFlags(populationCmd)
	addSolverFlags(populationCmd)
	populationCmd.Flags().IntVar(&popTrials, "trials", 100, "number of simulated individuals")
	populationCmd.Flags().Float64Var(&popJitter, "jitter", 0.2, "relative spread of the rate constants")
	populationCmd.Flags().Int64Var(&popSeed, "seed", 0, "random seed (0 seeds from the clock)")

	substancesCmd := &cobra.Command{
		Use:   "substances",
		Short: "list substance presets",
		RunE:  listSubstances,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [substance]",
		Short: "frequency analysis of a simulated run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeSpectrum,
	}
	addKineticFlags(analyzeCmd)
	addRegimenFlags(analyzeCmd)
	addSolverFlags(analyzeCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run()
		},
	}

	rootCmd.AddCommand(runCmd, compareCmd, sweepCmd, populationCmd, substancesCmd, batchCmd, analyzeCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addKineticFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&substance, "substance", "", "substance preset (see 'dosim substances')")
	f.Float64Var(&ke, "ke", config.DefaultKe, "elimination rate constant (1/h)")
	f.Float64Var(&alpha, "alpha", config.DefaultAlpha, "tolerance buildup rate")
	f.Float64Var(&beta, "beta", config.DefaultBeta, "tolerance decay rate (1/h)")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
}

func addRegimenFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&pattern, "pattern", "none", "dose pattern (none|constant|linear|periodic)")
	f.Float64Var(&rate, "rate", config.DefaultRate, "constant intake rate (mg/h)")
	f.Float64Var(&slope, "slope", config.DefaultSlope, "linear ramp slope (mg/h per h)")
	f.Float64Var(&doseRate, "dose", config.DefaultDose, "periodic dose rate (mg/h)")
	f.Float64Var(&interval, "interval", config.DefaultInterval, "hours between periodic doses")
	f.Float64Var(&horizon, "tmax", config.DefaultHorizon, "simulation horizon (hours)")
	f.IntVar(&points, "points", config.DefaultPoints, "output samples")
	f.Float64Var(&initConc, "c0", 0, "initial concentration (mg)")
	f.Float64Var(&initTol, "t0", 0, "initial tolerance")
}

func addSolverFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&stepper, "stepper", "rk45",
		"stepping scheme ("+strings.Join(experiment.ListSteppers(), "|")+")")
	f.Float64Var(&tolerance, "tol", 0, "solver error tolerance (0 uses the default)")
}

// buildConfig layers the run configuration: defaults, then the config
// file, then the substance preset, then any explicitly set flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()

	if len(args) > 0 {
		cfg.Substance = args[0]
	}
	if flags.Changed("substance") {
		cfg.Substance = substance
	}
	if err := cfg.ApplySubstance(); err != nil {
		return nil, err
	}

	if flags.Changed("ke") {
		cfg.Ke = ke
	}
	if flags.Changed("alpha") {
		cfg.Alpha = alpha
	}
	if flags.Changed("beta") {
		cfg.Beta = beta
	}
	if flags.Changed("pattern") {
		cfg.Pattern.Kind = pattern
	}
	if flags.Changed("rate") {
		cfg.Pattern.Rate = rate
	}
	if flags.Changed("slope") {
		cfg.Pattern.Slope = slope
	}
	if flags.Changed("dose") {
		cfg.Pattern.Dose = doseRate
	}
	if flags.Changed("interval") {
		cfg.Pattern.Interval = interval
	}
	if flags.Changed("tmax") {
		cfg.Horizon = horizon
	}
	if flags.Changed("points") {
		cfg.Points = points
	}
	if flags.Changed("stepper") {
		cfg.Stepper = stepper
	}
	if flags.Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("c0") || flags.Changed("t0") {
		cfg.Init = &config.InitConfig{Conc: initConc, Tol: initTol}
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	label := cfg.Substance
	if label == "" {
		label = "custom"
	}
	fmt.Printf("simulating %s (%s) over %.0f h...\n", label, cfg.Pattern.Kind, cfg.Horizon)
	start := time.Now()

	res, err := experiment.Run(context.Background(), cfg, config.DefaultBounds())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))
	report.Render(os.Stdout, res.Summary)

	if ascii {
		fmt.Println()
		conc := asciigraph.Plot(res.Traj.Component(kinetics.IndexConc),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("concentration (mg)"),
		)
		fmt.Println(conc)
		fmt.Println()
		tol := asciigraph.Plot(res.Traj.Component(kinetics.IndexTol),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("tolerance"),
		)
		fmt.Println(tol)
	}

	if csvPath != "" {
		if err := export.WriteCSV(csvPath, res); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", csvPath)
	}
	if jsonPath != "" {
		if err := export.WriteJSON(jsonPath, res); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonPath)
	}
	if chartPath != "" {
		if err := chart.Save(chartPath, res); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", chartPath)
	}

	return nil
}

func comparePair(cmd *cobra.Command, args []string) error {
	base, err := buildConfig(cmd, nil)
	if err != nil {
		return err
	}

	// Comparisons default to a shared steady intake regimen
	if !cmd.Flags().Changed("pattern") {
		base.Pattern.Kind = "constant"
	}

	side := func(name string) (*config.Config, error) {
		cfg := base.Clone()
		cfg.Substance = name
		if err := cfg.ApplySubstance(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	a, err := side(args[0])
	if err != nil {
		return err
	}
	b, err := side(args[1])
	if err != nil {
		return err
	}

	pair, err := compare.Run(context.Background(), a, b, config.DefaultBounds())
	if err != nil {
		return err
	}

	compare.Render(os.Stdout, pair)

	if ascii {
		fmt.Println()
		graph := asciigraph.PlotMany(
			[][]float64{
				pair.A.Traj.Component(kinetics.IndexConc),
				pair.B.Traj.Component(kinetics.IndexConc),
			},
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
			asciigraph.SeriesLegends(pair.A.Label, pair.B.Label),
			asciigraph.Caption("concentration (mg)"),
		)
		fmt.Println(graph)
	}

	if chartPath != "" {
		if err := chart.SaveComparison(chartPath, pair); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", chartPath)
	}

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	values := compare.Values(sweepFrom, sweepTo, sweepSteps)
	fmt.Printf("sweeping %s across %d values...\n\n", sweepParam, len(values))

	results, err := compare.Sweep(context.Background(), base, sweepParam, values, config.DefaultBounds())
	if err != nil {
		return err
	}

	compare.RenderSweep(os.Stdout, results)

	if chartPath != "" {
		if err := chart.SaveSweep(chartPath, results); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", chartPath)
	}

	return nil
}

func runPopulation(cmd *cobra.Command, args []string) error {
	base, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	pcfg := compare.PopulationConfig{Trials: popTrials, Jitter: popJitter, Seed: popSeed}
	fmt.Printf("simulating %d individuals (±%.0f%% kinetics)...\n\n", popTrials, popJitter*100)

	pop, err := compare.RunPopulation(context.Background(), base, pcfg, config.DefaultBounds())
	if err != nil {
		return err
	}

	compare.RenderPopulation(os.Stdout, pop)
	return nil
}

func listSubstances(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKE\tALPHA\tBETA")

	for _, name := range config.ListSubstances() {
		p, err := config.GetSubstance(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\n", name, p.Ke, p.Alpha, p.Beta)
	}

	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := experiment.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}
	fmt.Println()

	results, err := experiment.RunScenario(context.Background(), sc, config.DefaultBounds())
	if err != nil {
		return err
	}

	for _, sr := range results {
		if sr.Step.CSV != "" {
			if err := export.WriteCSV(sr.Step.CSV, sr.Result); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", sr.Step.CSV)
		}
		if sr.Step.JSON != "" {
			if err := export.WriteJSON(sr.Step.JSON, sr.Result); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", sr.Step.JSON)
		}
		if sr.Step.Chart != "" {
			if err := chart.Save(sr.Step.Chart, sr.Result); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", sr.Step.Chart)
		}
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tFINAL CONC\tFINAL TOL\tPEAK CONC")
	for _, sr := range results {
		s := sr.Result.Summary
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\n", sr.Result.Label, s.FinalConc, s.FinalTol, s.PeakConc)
	}
	return w.Flush()
}

func analyzeSpectrum(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	res, err := experiment.Run(context.Background(), cfg, config.DefaultBounds())
	if err != nil {
		return err
	}

	conc := res.Traj.Component(kinetics.IndexConc)
	dt := res.Traj.Times[1] - res.Traj.Times[0]

	spectrum := analysis.PowerSpectrum(conc, dt)
	if len(spectrum.Power) == 0 {
		return fmt.Errorf("trajectory too short for analysis")
	}

	fmt.Printf("frequency analysis: %s, %s\n\n", res.Label, res.Pattern)

	graph := asciigraph.Plot(spectrum.Power[:len(spectrum.Power)/4],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("concentration amplitude spectrum"),
	)
	fmt.Println(graph)
	fmt.Println()

	if period := spectrum.DominantPeriod(); period > 0 {
		fmt.Printf("dominant period: %.2f h (%.4f cycles/h)\n", period, 1/period)
	} else {
		fmt.Println("no dominant oscillation found")
	}

	return nil
}
