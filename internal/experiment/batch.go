package experiment

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lpaez/dosim/internal/config"
)

// Scenario is a scripted sequence of runs loaded from a YAML file.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Steps       []Step `yaml:"steps"`
}

// Step is one run of a scenario plus its export destinations.
type Step struct {
	Name   string         `yaml:"name"`
	Config *config.Config `yaml:"config"`
	CSV    string         `yaml:"csv,omitempty"`
	JSON   string         `yaml:"json,omitempty"`
	Chart  string         `yaml:"chart,omitempty"`
}

// UnmarshalYAML seeds the step's config with the defaults before
// decoding, so partial step configs merge the same way Load does.
func (s *Step) UnmarshalYAML(value *yaml.Node) error {
	type rawStep Step
	raw := rawStep{Config: config.DefaultConfig()}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*s = Step(raw)
	return nil
}

// StepResult pairs a scenario step with its run.
type StepResult struct {
	Step   Step
	Result *Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}
	return &sc, nil
}

// RunScenario executes all steps in order, stopping at the first
// failure and returning the results gathered so far.
func RunScenario(ctx context.Context, sc *Scenario, bounds config.Bounds) ([]StepResult, error) {
	results := make([]StepResult, 0, len(sc.Steps))

	for i, step := range sc.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step %d", i+1)
		}
		fmt.Printf("Running step %d/%d: %s\n", i+1, len(sc.Steps), name)

		cfg := config.DefaultConfig()
		if step.Config != nil {
			cfg = step.Config.Clone()
		}
		if err := cfg.ApplySubstance(); err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, name, err)
		}
		res, err := Run(ctx, cfg, bounds)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, name, err)
		}
		if step.Name != "" {
			res.Label = step.Name
		}
		results = append(results, StepResult{Step: step, Result: res})
	}

	return results, nil
}
