package pendulum

import (
	"fmt"
	"math"

	"github.com/kswierk/physlab/internal/ode"
)

// Pendulum is a driven, damped pendulum in dimensionless form,
//
//	θ'' = -ω0² sin θ - q θ' + F cos(Ω t)
//
// with state {θ, ω}. Zero damping and zero drive recover the free
// pendulum; there is no separate linearized model, the small-angle
// solution lives in [Pendulum.SmallAngle].
type Pendulum struct {
	Omega0    float64 // natural frequency √(g/l)
	Damping   float64 // q
	Drive     float64 // F
	DriveFreq float64 // Ω
}

func New() *Pendulum {
	return &Pendulum{
		Omega0:    1.0,
		Damping:   0.0,
		Drive:     0.0,
		DriveFreq: 2.0 / 3.0,
	}
}

func (p *Pendulum) StateDim() int {
	return 2
}

func (p *Pendulum) Derive(x ode.State, t float64) ode.State {
	theta := x[0]
	omega := x[1]

	alpha := -p.Omega0*p.Omega0*math.Sin(theta) - p.Damping*omega
	if p.Drive != 0 {
		alpha += p.Drive * math.Cos(p.DriveFreq*t)
	}

	return ode.State{omega, alpha}
}

// Energy is the per-unit-inertia energy ω²/2 + ω0²(1-cos θ). For the
// driven or damped pendulum it is not conserved; the bookkeeping is the
// point.
func (p *Pendulum) Energy(x ode.State) float64 {
	ke := 0.5 * x[1] * x[1]
	pe := p.Omega0 * p.Omega0 * (1.0 - math.Cos(x[0]))
	return ke + pe
}

// EnergyFraction returns E(t)/E(0) per sample. A run started at the rest
// equilibrium has no reference energy; absolute energies are returned
// instead.
func (p *Pendulum) EnergyFraction(res *ode.Result) []float64 {
	out := make([]float64, len(res.States))
	if len(res.States) == 0 {
		return out
	}
	e0 := p.Energy(res.States[0])
	for i, s := range res.States {
		if e0 != 0 {
			out[i] = p.Energy(s) / e0
		} else {
			out[i] = p.Energy(s)
		}
	}
	return out
}

// DefaultState is the stock initial condition: a small deflection at rest.
func (p *Pendulum) DefaultState() ode.State { return ode.State{0.01, 0.0} }

func (p *Pendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"omega0":     p.Omega0,
		"damping":    p.Damping,
		"drive":      p.Drive,
		"drive_freq": p.DriveFreq,
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "omega0":
		p.Omega0 = value
	case "damping":
		p.Damping = value
	case "drive":
		p.Drive = value
	case "drive_freq":
		p.DriveFreq = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

// Wrap maps an angle into [-π, π). Rotating solutions accumulate full
// turns in θ; phase portraits want the wrapped angle.
func Wrap(theta float64) float64 {
	w := math.Mod(theta+math.Pi, 2*math.Pi)
	if w < 0 {
		w += 2 * math.Pi
	}
	return w - math.Pi
}

// WrapSeries maps Wrap over a sampled deflection series.
func WrapSeries(thetas []float64) []float64 {
	out := make([]float64, len(thetas))
	for i, th := range thetas {
		out[i] = Wrap(th)
	}
	return out
}
