package experiment

import (
	"fmt"
	"sort"

	"github.com/lpaez/dosim/internal/solve"
)

var steppers = map[string]func() solve.Integrator{
	"rk45": func() solve.Integrator { return solve.NewRK45() },
	"rk4":  func() solve.Integrator { return solve.NewRK4() },
}

// GetStepper builds the named stepping scheme. The empty name selects
// the adaptive default.
func GetStepper(name string) (solve.Integrator, error) {
	if name == "" {
		name = "rk45"
	}
	fn, ok := steppers[name]
	if !ok {
		return nil, fmt.Errorf("unknown stepper: %s", name)
	}
	return fn(), nil
}

func ListSteppers() []string {
	names := make([]string, 0, len(steppers))
	for name := range steppers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
