package dose

import (
	"errors"
	"math"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name string
		want Kind
		ok   bool
	}{
		{"none", KindNone, true},
		{"single", KindNone, true},
		{"constant", KindConstant, true},
		{"linear", KindLinear, true},
		{"periodic", KindPeriodic, true},
		{"weekly", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := ParseKind(tt.name)
			if tt.ok && err != nil {
				t.Fatalf("ParseKind(%q): %v", tt.name, err)
			}
			if !tt.ok {
				if !errors.Is(err, ErrPattern) {
					t.Fatalf("expected ErrPattern, got %v", err)
				}
				return
			}
			if k != tt.want {
				t.Errorf("expected %q, got %q", tt.want, k)
			}
		})
	}
}

func TestNone(t *testing.T) {
	p := None{}
	for _, tm := range []float64{0, 1, 17.3, 50} {
		if p.Rate(tm) != 0 {
			t.Errorf("expected zero rate at t=%g, got %g", tm, p.Rate(tm))
		}
	}
	if p.Kind() != KindNone {
		t.Errorf("unexpected kind %q", p.Kind())
	}
}

func TestConstant(t *testing.T) {
	p, err := NewConstant(1.5)
	if err != nil {
		t.Fatalf("NewConstant: %v", err)
	}
	if p.Rate(0) != 1.5 || p.Rate(42) != 1.5 {
		t.Error("constant rate varies with time")
	}

	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewConstant(bad); !errors.Is(err, ErrPattern) {
			t.Errorf("NewConstant(%g): expected ErrPattern, got %v", bad, err)
		}
	}
}

func TestLinear(t *testing.T) {
	p, err := NewLinear(0.2)
	if err != nil {
		t.Fatalf("NewLinear: %v", err)
	}
	if p.Rate(0) != 0 {
		t.Errorf("expected zero rate at t=0, got %g", p.Rate(0))
	}
	if math.Abs(p.Rate(10)-2.0) > 1e-12 {
		t.Errorf("expected rate 2 at t=10, got %g", p.Rate(10))
	}

	for _, bad := range []float64{0, -0.2, math.NaN()} {
		if _, err := NewLinear(bad); !errors.Is(err, ErrPattern) {
			t.Errorf("NewLinear(%g): expected ErrPattern, got %v", bad, err)
		}
	}
}

func TestPeriodic_Window(t *testing.T) {
	p, err := NewPeriodic(5, 5)
	if err != nil {
		t.Fatalf("NewPeriodic: %v", err)
	}

	tests := []struct {
		t    float64
		want float64
	}{
		{0, 5},
		{0.05, 5},
		{0.1, 5},
		{0.11, 0},
		{2.5, 0},
		{4.95, 0}, // just before a multiple: the window is one-sided
		{5.0, 5},
		{5.05, 5},
		{5.1, 5},
		{5.2, 0},
		{10.04, 5},
		{49.99, 0},
		{50.0, 5},
		{-1, 0},
	}

	for _, tt := range tests {
		if got := p.Rate(tt.t); got != tt.want {
			t.Errorf("Rate(%g): expected %g, got %g", tt.t, tt.want, got)
		}
	}
}

func TestPeriodic_UniformGridSampling(t *testing.T) {
	p, _ := NewPeriodic(5, 5)

	// 500 samples over 50 h puts t[50] at 5.0100..., inside the window,
	// while t[49] at 4.9098 falls outside it.
	at := func(i int) float64 { return 50.0 * float64(i) / 499.0 }

	if got := p.Rate(at(50)); got != 5 {
		t.Errorf("expected burst at sample 50 (t=%.6f), got %g", at(50), got)
	}
	if got := p.Rate(at(49)); got != 0 {
		t.Errorf("expected no burst at sample 49 (t=%.6f), got %g", at(49), got)
	}

	bursts := 0
	for i := 0; i < 500; i++ {
		if p.Rate(at(i)) > 0 {
			bursts++
		}
	}
	// one sample per multiple of 5 in [0, 50], including both endpoints
	if bursts != 11 {
		t.Errorf("expected 11 burst samples, got %d", bursts)
	}
}

func TestPeriodic_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		dose     float64
		interval float64
	}{
		{"zero dose", 0, 5},
		{"negative dose", -5, 5},
		{"zero interval", 5, 0},
		{"interval inside window", 5, 0.05},
		{"nan interval", 5, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPeriodic(tt.dose, tt.interval); !errors.Is(err, ErrPattern) {
				t.Errorf("expected ErrPattern, got %v", err)
			}
		})
	}
}
