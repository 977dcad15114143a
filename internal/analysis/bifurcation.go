package analysis

import (
	"math"

	"github.com/kswierk/physlab/internal/ode"
)

// BifurcationPoint holds the post-transient stroboscopic samples of one
// state component for one parameter value.
type BifurcationPoint struct {
	Param   float64
	Samples []float64
}

// Bifurcation sweeps a named parameter and records the settled motion at
// each value: the system integrates through a transient window, then one
// sample of x[stateIndex] is taken per strobe interval for the record
// window. A single settled sample value per strobe means periodic motion;
// bands of values mean period doubling or chaos.
//
// The system must implement ode.Configurable; it is mutated in place and
// left holding the final swept value.
func Bifurcation(
	sys ode.System,
	integ ode.Integrator,
	x0 ode.State,
	param string,
	values []float64,
	stateIndex int,
	dt, transient, strobe, record float64,
) []BifurcationPoint {
	tunable, ok := sys.(ode.Configurable)
	if !ok || stateIndex >= len(x0) || dt <= 0 || strobe <= 0 {
		return nil
	}

	stepsPerStrobe := int(math.Round(strobe / dt))
	if stepsPerStrobe < 1 {
		stepsPerStrobe = 1
	}

	results := make([]BifurcationPoint, 0, len(values))
	for _, v := range values {
		if err := tunable.SetParam(param, v); err != nil {
			continue
		}

		x := x0.Clone()
		t := 0.0
		for t < transient {
			x = integ.Step(sys, x, t, dt)
			t += dt
		}

		point := BifurcationPoint{Param: v}
		steps := 0
		for t < transient+record && x.IsValid() {
			x = integ.Step(sys, x, t, dt)
			t += dt
			steps++
			if steps%stepsPerStrobe == 0 {
				point.Samples = append(point.Samples, x[stateIndex])
			}
		}
		results = append(results, point)
	}
	return results
}
