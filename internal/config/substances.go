package config

import (
	"fmt"
	"sort"

	"github.com/lpaez/dosim/internal/kinetics"
)

// Substances maps preset names to kinetic rate constants. The table is
// read-only.
var Substances = map[string]kinetics.Params{
	"general":  {Ke: 0.5, Alpha: 0.3, Beta: 0.1},
	"alcohol":  {Ke: 0.3, Alpha: 0.2, Beta: 0.05},
	"nicotine": {Ke: 0.7, Alpha: 0.4, Beta: 0.15},
	"cannabis": {Ke: 0.4, Alpha: 0.25, Beta: 0.1},
}

func GetSubstance(name string) (kinetics.Params, error) {
	p, ok := Substances[name]
	if !ok {
		return kinetics.Params{}, fmt.Errorf("unknown substance %q (see 'dosim substances')", name)
	}
	return p, nil
}

func ListSubstances() []string {
	names := make([]string, 0, len(Substances))
	for name := range Substances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
