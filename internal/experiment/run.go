package experiment

import (
	"context"
	"fmt"

	"github.com/lpaez/dosim/internal/config"
	"github.com/lpaez/dosim/internal/dose"
	"github.com/lpaez/dosim/internal/kinetics"
	"github.com/lpaez/dosim/internal/report"
	"github.com/lpaez/dosim/internal/solve"
)

// Result is a finished run bundled with everything needed to report,
// plot, or export it.
type Result struct {
	Label   string
	Params  kinetics.Params
	Pattern dose.Pattern
	Init    solve.State
	Traj    *solve.Trajectory
	Summary report.Summary
}

// Run validates cfg against bounds, builds the model, and integrates
// it over the configured horizon. The rate constants are used exactly
// as given: a substance preset must already be applied (the CLI, TUI,
// and scenario runner all do this when the substance is chosen), so
// Substance only labels the result here. cfg is never mutated.
func Run(ctx context.Context, cfg *config.Config, bounds config.Bounds) (*Result, error) {
	if err := bounds.Check(cfg); err != nil {
		return nil, err
	}

	pattern, err := cfg.BuildPattern()
	if err != nil {
		return nil, err
	}
	model, err := kinetics.New(cfg.KineticParams(), pattern)
	if err != nil {
		return nil, err
	}
	grid, err := solve.UniformGrid(cfg.Horizon, cfg.Points)
	if err != nil {
		return nil, err
	}
	stepper, err := GetStepper(cfg.Stepper)
	if err != nil {
		return nil, err
	}

	opts := solve.DefaultOptions()
	if cfg.Tolerance > 0 {
		opts.Tol = cfg.Tolerance
	}

	x0 := cfg.InitialState(pattern)
	traj, err := solve.New(stepper, opts).Run(ctx, model, x0, grid)
	if err != nil {
		return nil, fmt.Errorf("simulation failed: %w", err)
	}

	return &Result{
		Label:   label(cfg),
		Params:  cfg.KineticParams(),
		Pattern: pattern,
		Init:    x0,
		Traj:    traj,
		Summary: report.Summarize(traj),
	}, nil
}

func label(c *config.Config) string {
	if c.Substance != "" {
		return c.Substance
	}
	return "custom"
}
