package pendulum

import (
	"math"

	"gonum.org/v1/gonum/mathext"

	"github.com/kswierk/physlab/internal/ode"
)

// SmallAngle returns the closed-form small-angle solution
//
//	θ(t) = θ0 cos(ω0 t) + (ω(0)/ω0) sin(ω0 t)
//
// for the free pendulum started at x0. Valid as a reference only while
// sin θ ≈ θ; the growing mismatch at larger amplitudes is what the
// comparison plots show.
func (p *Pendulum) SmallAngle(x0 ode.State) func(t float64) float64 {
	theta0, v0 := x0[0], x0[1]
	return func(t float64) float64 {
		return theta0*math.Cos(p.Omega0*t) + (v0/p.Omega0)*math.Sin(p.Omega0*t)
	}
}

// LinearPeriod is the small-angle limit 2π/ω0.
func (p *Pendulum) LinearPeriod() float64 {
	return 2 * math.Pi / p.Omega0
}

// ExactPeriod is the free pendulum period for release from rest at
// deflection theta0,
//
//	T = 4 K(sin²(θ0/2)) / ω0
//
// with K the complete elliptic integral of the first kind. Diverges as
// |θ0| approaches π, the unstable equilibrium.
func (p *Pendulum) ExactPeriod(theta0 float64) float64 {
	s := math.Sin(theta0 / 2)
	return 4 / p.Omega0 * mathext.CompleteK(s*s)
}
