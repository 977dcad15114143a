package metrics

import (
	"math"

	"github.com/kswierk/physlab/internal/ode"
)

// Turnovers counts how often the deflection leaves its ±π branch, i.e.
// full rotations over the top. Oscillating solutions score zero; a
// non-zero count marks a rotating or chaotic regime where period
// extraction on the deflection is meaningless.
type Turnovers struct {
	name    string
	count   int
	lastRev float64
	samples int
}

func NewTurnovers() *Turnovers {
	return &Turnovers{name: "turnovers"}
}

func (c *Turnovers) Name() string { return c.name }

func (c *Turnovers) Observe(x ode.State, t float64) {
	rev := math.Floor((x[0] + math.Pi) / (2 * math.Pi))
	if c.samples > 0 && rev != c.lastRev {
		c.count++
	}
	c.lastRev = rev
	c.samples++
}

func (c *Turnovers) Value() float64 {
	return float64(c.count)
}

func (c *Turnovers) Reset() {
	c.count = 0
	c.lastRev = 0
	c.samples = 0
}
