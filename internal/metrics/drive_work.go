package metrics

import (
	"math"

	"github.com/kswierk/physlab/internal/ode"
)

// DriveWork accumulates the work done by a sinusoidal drive,
// ∫ F cos(Ω t) ω dt, by trapezoidal quadrature over observed samples.
// Over one settled drive cycle it balances the energy lost to damping.
type DriveWork struct {
	name      string
	amplitude float64
	freq      float64
	work      float64
	lastT     float64
	lastPower float64
	samples   int
}

func NewDriveWork(amplitude, freq float64) *DriveWork {
	return &DriveWork{
		name:      "drive_work",
		amplitude: amplitude,
		freq:      freq,
	}
}

func (d *DriveWork) Name() string { return d.name }

func (d *DriveWork) Observe(x ode.State, t float64) {
	if len(x) < 2 {
		return
	}
	power := d.amplitude * math.Cos(d.freq*t) * x[1]
	if d.samples > 0 {
		d.work += 0.5 * (power + d.lastPower) * (t - d.lastT)
	}
	d.lastT = t
	d.lastPower = power
	d.samples++
}

func (d *DriveWork) Value() float64 {
	return d.work
}

func (d *DriveWork) Reset() {
	d.work = 0
	d.lastT = 0
	d.lastPower = 0
	d.samples = 0
}
