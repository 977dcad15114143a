package analysis

import (
	"math"
	"testing"

	"github.com/kswierk/physlab/internal/integrators"
	"github.com/kswierk/physlab/internal/ode"
	"github.com/kswierk/physlab/internal/pendulum"
)

func TestBifurcationDampedSettlesToRest(t *testing.T) {
	p := pendulum.New()
	x0 := ode.State{0.5, 0}

	points := Bifurcation(p, integrators.NewRK4(), x0,
		"damping", []float64{1.0, 2.0}, 0,
		0.002, 15.0, 1.0, 4.0)

	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	for _, pt := range points {
		if len(pt.Samples) == 0 {
			t.Fatalf("q=%g recorded no strobe samples", pt.Param)
		}
		for _, th := range pt.Samples {
			if math.Abs(th) > 1e-3 {
				t.Errorf("q=%g settled sample |θ| = %g, want ~0", pt.Param, math.Abs(th))
			}
		}
	}
}

func TestBifurcationUnknownParam(t *testing.T) {
	points := Bifurcation(pendulum.New(), integrators.NewRK4(), ode.State{0.1, 0},
		"mass", []float64{1, 2}, 0,
		0.01, 0.1, 0.05, 0.1)
	if len(points) != 0 {
		t.Errorf("unknown parameter produced %d points", len(points))
	}
}

type rigid struct{}

func (rigid) Derive(x ode.State, t float64) ode.State { return ode.State{0, 0} }
func (rigid) StateDim() int                           { return 2 }

func TestBifurcationRequiresConfigurable(t *testing.T) {
	points := Bifurcation(rigid{}, integrators.NewRK4(), ode.State{0, 0},
		"k", []float64{1}, 0, 0.01, 0, 0.05, 0.1)
	if points != nil {
		t.Errorf("non-configurable system produced %v", points)
	}
}
