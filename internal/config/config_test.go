package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lpaez/dosim/internal/dose"
	"github.com/lpaez/dosim/internal/solve"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 0.5, cfg.Ke)
	assert.Equal(t, 0.3, cfg.Alpha)
	assert.Equal(t, 0.1, cfg.Beta)
	assert.Equal(t, 50.0, cfg.Horizon)
	assert.Equal(t, 500, cfg.Points)
	assert.Equal(t, "none", cfg.Pattern.Kind)
	assert.Equal(t, 1.0, cfg.Pattern.Rate)
	assert.Equal(t, 5.0, cfg.Pattern.Interval)
	assert.Nil(t, cfg.Init)

	require.NoError(t, DefaultBounds().Check(cfg))
}

func TestGetSubstance(t *testing.T) {
	p, err := GetSubstance("alcohol")
	require.NoError(t, err)
	assert.Equal(t, 0.3, p.Ke)
	assert.Equal(t, 0.2, p.Alpha)
	assert.Equal(t, 0.05, p.Beta)

	_, err = GetSubstance("caffeine")
	assert.ErrorContains(t, err, "unknown substance")
}

func TestListSubstances(t *testing.T) {
	names := ListSubstances()
	assert.Equal(t, []string{"alcohol", "cannabis", "general", "nicotine"}, names)
}

func TestSubstancesPassBounds(t *testing.T) {
	b := DefaultBounds()
	for name, p := range Substances {
		cfg := DefaultConfig()
		cfg.Ke, cfg.Alpha, cfg.Beta = p.Ke, p.Alpha, p.Beta
		assert.NoError(t, b.Check(cfg), "substance %s", name)
	}
}

func TestApplySubstance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Substance = "nicotine"
	require.NoError(t, cfg.ApplySubstance())
	assert.Equal(t, 0.7, cfg.Ke)
	assert.Equal(t, 0.4, cfg.Alpha)
	assert.Equal(t, 0.15, cfg.Beta)

	cfg = DefaultConfig()
	require.NoError(t, cfg.ApplySubstance())
	assert.Equal(t, 0.5, cfg.Ke)

	cfg.Substance = "unobtainium"
	assert.Error(t, cfg.ApplySubstance())
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Substance = "cannabis"
	cfg.Pattern.Kind = "periodic"
	cfg.Pattern.Dose = 3
	cfg.Horizon = 72
	cfg.Init = &InitConfig{Conc: 1.5, Tol: 0.2}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ke: 0.9\npattern:\n  kind: constant\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.9, cfg.Ke)
	assert.Equal(t, "constant", cfg.Pattern.Kind)
	// untouched fields keep their defaults
	assert.Equal(t, 0.3, cfg.Alpha)
	assert.Equal(t, 50.0, cfg.Horizon)
	assert.Equal(t, 1.0, cfg.Pattern.Rate)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestBuildPattern(t *testing.T) {
	tests := []struct {
		kind string
		want dose.Kind
	}{
		{"none", dose.KindNone},
		{"single", dose.KindNone},
		{"constant", dose.KindConstant},
		{"linear", dose.KindLinear},
		{"periodic", dose.KindPeriodic},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Pattern.Kind = tt.kind
			p, err := cfg.BuildPattern()
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Kind())
		})
	}

	cfg := DefaultConfig()
	cfg.Pattern.Kind = "hourly"
	_, err := cfg.BuildPattern()
	assert.ErrorIs(t, err, dose.ErrPattern)

	cfg = DefaultConfig()
	cfg.Pattern.Kind = "constant"
	cfg.Pattern.Rate = -1
	_, err = cfg.BuildPattern()
	assert.ErrorIs(t, err, dose.ErrPattern)
}

func TestInitialState(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, solve.State{10, 2}, cfg.InitialState(dose.None{}))

	constant, err := dose.NewConstant(1)
	require.NoError(t, err)
	assert.Equal(t, solve.State{0, 0}, cfg.InitialState(constant))

	cfg.Init = &InitConfig{Conc: 4, Tol: 1}
	assert.Equal(t, solve.State{4, 1}, cfg.InitialState(dose.None{}))
	assert.Equal(t, solve.State{4, 1}, cfg.InitialState(constant))
}

func TestBoundsCheck(t *testing.T) {
	mutate := func(f func(*Config)) *Config {
		cfg := DefaultConfig()
		f(cfg)
		return cfg
	}

	tests := []struct {
		name string
		cfg  *Config
		ok   bool
	}{
		{"defaults", DefaultConfig(), true},
		{"ke at floor", mutate(func(c *Config) { c.Ke = 0.1 }), true},
		{"ke below floor", mutate(func(c *Config) { c.Ke = 0.05 }), false},
		{"ke above ceiling", mutate(func(c *Config) { c.Ke = 1.5 }), false},
		{"alpha zero", mutate(func(c *Config) { c.Alpha = 0 }), true},
		{"alpha negative", mutate(func(c *Config) { c.Alpha = -0.1 }), false},
		{"horizon floor", mutate(func(c *Config) { c.Horizon = 10 }), true},
		{"horizon too short", mutate(func(c *Config) { c.Horizon = 5 }), false},
		{"horizon too long", mutate(func(c *Config) { c.Horizon = 200 }), false},
		{"points too few", mutate(func(c *Config) { c.Points = 10 }), false},
		{"points too many", mutate(func(c *Config) { c.Points = 100000 }), false},
		{"rate out of range for constant", mutate(func(c *Config) {
			c.Pattern.Kind = "constant"
			c.Pattern.Rate = 9
		}), false},
		{"rate ignored for none", mutate(func(c *Config) { c.Pattern.Rate = 9 }), true},
		{"interval out of range", mutate(func(c *Config) {
			c.Pattern.Kind = "periodic"
			c.Pattern.Interval = 48
		}), false},
		{"negative initial conc", mutate(func(c *Config) { c.Init = &InitConfig{Conc: -1} }), false},
		{"custom init ok", mutate(func(c *Config) { c.Init = &InitConfig{Conc: 2, Tol: 0.5} }), true},
		{"unknown pattern", mutate(func(c *Config) { c.Pattern.Kind = "weekly" }), false},
	}

	b := DefaultBounds()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.Check(tt.cfg)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRange(t *testing.T) {
	r := Range{Min: 0.1, Max: 1.0, Step: 0.05}

	assert.True(t, r.Contains(0.1))
	assert.True(t, r.Contains(1.0))
	assert.False(t, r.Contains(0.05))
	assert.False(t, r.Contains(1.05))

	assert.Equal(t, 0.1, r.Clamp(0))
	assert.Equal(t, 1.0, r.Clamp(2))
	assert.Equal(t, 0.5, r.Clamp(0.5))
}
