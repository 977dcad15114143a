package pendulum_test

import (
	"context"
	"math"
	"testing"

	"github.com/kswierk/physlab/internal/analysis"
	"github.com/kswierk/physlab/internal/integrators"
	"github.com/kswierk/physlab/internal/ode"
	"github.com/kswierk/physlab/internal/pendulum"
)

func TestSmallAngleTrajectoryMatch(t *testing.T) {
	p := pendulum.New()
	sim := ode.NewSimulator(p, integrators.NewRK45())

	cfg := ode.DefaultConfig()
	cfg.Duration = 20.0
	cfg.Tolerance = 1e-10

	x0 := p.DefaultState()
	res, err := sim.Run(context.Background(), x0, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Flagged() {
		t.Fatalf("run flagged: %v", res.Flags)
	}

	sol := p.SmallAngle(x0)
	worst := 0.0
	for i, tm := range res.Times {
		if d := math.Abs(res.States[i][0] - sol(tm)); d > worst {
			worst = d
		}
	}

	// At θ0=0.01 the nonlinear frequency shift is ~θ0²/16, which over
	// 20 s accumulates to a deflection mismatch of order 1e-6.
	if worst > 5e-6 {
		t.Errorf("max deviation from small-angle solution %e", worst)
	}
}

func TestMeasuredPeriodMatchesElliptic(t *testing.T) {
	p := pendulum.New()
	sim := ode.NewSimulator(p, integrators.NewRK45())

	cfg := ode.DefaultConfig()
	cfg.Duration = 40.0

	res, err := sim.Run(context.Background(), ode.State{math.Pi / 2, 0.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Flagged() {
		t.Fatalf("run flagged: %v", res.Flags)
	}

	est := analysis.EstimatePeriod(res.Component(1), cfg.SampleRate)
	if !est.OK {
		t.Fatalf("period extraction rejected a clean oscillation: %+v", est)
	}
	want := p.ExactPeriod(math.Pi / 2)
	if math.Abs(est.Period-want) > 1e-6 {
		t.Errorf("measured period %.9f, elliptic integral gives %.9f", est.Period, want)
	}
}

func TestUndampedEnergyDrift(t *testing.T) {
	p := pendulum.New()
	sim := ode.NewSimulator(p, integrators.NewRK45())

	cfg := ode.DefaultConfig()
	cfg.Duration = 60.0

	res, err := sim.Run(context.Background(), ode.State{1.0, 0.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if res.EnergyDrift > 1e-6 {
		t.Errorf("undamped energy drift %e", res.EnergyDrift)
	}
}

func TestDampedEnergyMonotone(t *testing.T) {
	p := pendulum.New()
	p.Damping = 1.0
	sim := ode.NewSimulator(p, integrators.NewRK45())

	cfg := ode.DefaultConfig()
	cfg.Duration = 20.0

	res, err := sim.Run(context.Background(), ode.State{1.0, 0.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	frac := p.EnergyFraction(res)
	for i := 1; i < len(frac); i++ {
		// Damping only ever removes energy; tiny integrator noise aside,
		// the fraction must not grow.
		if frac[i] > frac[i-1]+1e-9 {
			t.Fatalf("energy fraction grew at sample %d: %v -> %v", i, frac[i-1], frac[i])
		}
	}
	if frac[len(frac)-1] > 0.01 {
		t.Errorf("energy fraction after 20s of q=1 damping still %f", frac[len(frac)-1])
	}
}
