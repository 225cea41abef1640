package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lpaez/dosim/internal/dose"
	"github.com/lpaez/dosim/internal/kinetics"
	"github.com/lpaez/dosim/internal/solve"
)

const (
	DefaultKe       = 0.5
	DefaultAlpha    = 0.3
	DefaultBeta     = 0.1
	DefaultHorizon  = 50.0
	DefaultPoints   = 500
	DefaultRate     = 1.0
	DefaultSlope    = 0.2
	DefaultDose     = 5.0
	DefaultInterval = 5.0
)

type Config struct {
	// Substance names a preset for the three rate constants. The
	// surface that selects it (CLI, TUI, scenario runner) applies the
	// preset via ApplySubstance before any individual overrides, so by
	// run time the field is just a label.
	Substance string `yaml:"substance,omitempty"`

	Ke    float64 `yaml:"ke"`
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`

	Pattern PatternConfig `yaml:"pattern"`

	Horizon float64 `yaml:"horizon"`
	Points  int     `yaml:"points"`

	// Init pins the starting state. When absent the run starts from the
	// pattern's conventional state: loaded for single-dose, empty else.
	Init *InitConfig `yaml:"init_state,omitempty"`

	Stepper   string  `yaml:"stepper,omitempty"`
	Tolerance float64 `yaml:"tolerance,omitempty"`
}

type PatternConfig struct {
	Kind     string  `yaml:"kind"`
	Rate     float64 `yaml:"rate"`
	Slope    float64 `yaml:"slope"`
	Dose     float64 `yaml:"dose"`
	Interval float64 `yaml:"interval"`
}

type InitConfig struct {
	Conc float64 `yaml:"conc"`
	Tol  float64 `yaml:"tol"`
}

func DefaultConfig() *Config {
	return &Config{
		Ke:      DefaultKe,
		Alpha:   DefaultAlpha,
		Beta:    DefaultBeta,
		Horizon: DefaultHorizon,
		Points:  DefaultPoints,
		Pattern: PatternConfig{
			Kind:     string(dose.KindNone),
			Rate:     DefaultRate,
			Slope:    DefaultSlope,
			Dose:     DefaultDose,
			Interval: DefaultInterval,
		},
		Stepper: "rk45",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	out := *c
	if c.Init != nil {
		init := *c.Init
		out.Init = &init
	}
	return &out
}

// ApplySubstance copies the named preset's rate constants into the
// config. A config without a substance is left untouched.
func (c *Config) ApplySubstance() error {
	if c.Substance == "" {
		return nil
	}
	p, err := GetSubstance(c.Substance)
	if err != nil {
		return err
	}
	c.Ke, c.Alpha, c.Beta = p.Ke, p.Alpha, p.Beta
	return nil
}

func (c *Config) KineticParams() kinetics.Params {
	return kinetics.Params{Ke: c.Ke, Alpha: c.Alpha, Beta: c.Beta}
}

func (c *Config) BuildPattern() (dose.Pattern, error) {
	kind, err := dose.ParseKind(c.Pattern.Kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case dose.KindConstant:
		p, err := dose.NewConstant(c.Pattern.Rate)
		if err != nil {
			return nil, err
		}
		return p, nil
	case dose.KindLinear:
		p, err := dose.NewLinear(c.Pattern.Slope)
		if err != nil {
			return nil, err
		}
		return p, nil
	case dose.KindPeriodic:
		p, err := dose.NewPeriodic(c.Pattern.Dose, c.Pattern.Interval)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return dose.None{}, nil
	}
}

// InitialState resolves the starting state for a built pattern.
func (c *Config) InitialState(pattern dose.Pattern) solve.State {
	if c.Init != nil {
		return solve.State{c.Init.Conc, c.Init.Tol}
	}
	return kinetics.DefaultInitialState(pattern)
}
