package metrics

import (
	"math"
	"testing"

	"github.com/kswierk/physlab/internal/ode"
)

type testOscillator struct{}

func (o *testOscillator) Energy(x ode.State) float64 {
	return 0.5*x[1]*x[1] + (1 - math.Cos(x[0]))
}

func TestMeanEnergy(t *testing.T) {
	m := NewMeanEnergy(&testOscillator{})

	theta := math.Pi / 4
	x := ode.State{theta, 0}
	expected := 1 - math.Cos(theta)

	m.Observe(x, 0)
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}

	m.Observe(x, 0)
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected energy %f after reset, got %f", expected, m.Value())
	}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift(&testOscillator{})

	m.Observe(ode.State{math.Pi / 2, 0}, 0) // E = 1
	m.Observe(ode.State{math.Pi / 2, 0}, 1)
	if m.Value() != 0 {
		t.Errorf("constant energy should have zero drift, got %f", m.Value())
	}

	m.Observe(ode.State{math.Pi / 2, 1}, 2) // E = 1.5
	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected drift 0.5, got %f", m.Value())
	}

	// Drift records the worst excursion, not the last.
	m.Observe(ode.State{math.Pi / 2, 0}, 3)
	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("max drift should persist, got %f", m.Value())
	}
}

func TestDriveWork(t *testing.T) {
	// With Ω=0 the drive is constant F, so work over [0,1] at ω=2 is 2F.
	m := NewDriveWork(1.5, 0)

	m.Observe(ode.State{0, 2}, 0)
	m.Observe(ode.State{0, 2}, 0.5)
	m.Observe(ode.State{0, 2}, 1.0)

	if math.Abs(m.Value()-3.0) > 1e-12 {
		t.Errorf("expected work 3.0, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero work after reset")
	}
}

func TestDriveWorkBalanced(t *testing.T) {
	// ω in phase with cos(Ωt): positive net work.
	m := NewDriveWork(1.0, 2*math.Pi)
	n := 1000
	for i := 0; i <= n; i++ {
		tm := float64(i) / float64(n)
		m.Observe(ode.State{0, math.Cos(2 * math.Pi * tm)}, tm)
	}
	if math.Abs(m.Value()-0.5) > 1e-3 {
		t.Errorf("in-phase work over one cycle = %f, want 0.5", m.Value())
	}
}

func TestTurnovers(t *testing.T) {
	m := NewTurnovers()

	// Oscillation within a branch: no turnovers.
	for _, th := range []float64{0, 1, 2, 1, 0, -1, -2, -1, 0} {
		m.Observe(ode.State{th, 0}, 0)
	}
	if m.Value() != 0 {
		t.Errorf("oscillation counted %v turnovers", m.Value())
	}

	m.Reset()

	// Steady rotation: each 2π advance is one turnover.
	for i := 0; i < 50; i++ {
		m.Observe(ode.State{float64(i) * 0.5, 0}, 0)
	}
	// θ climbs to 24.5 rad, crossing branch edges at π, 3π, 5π and 7π.
	if m.Value() != 4 {
		t.Errorf("rotation counted %v turnovers, want 4", m.Value())
	}
}
