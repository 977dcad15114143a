// Package geom discretizes current-loop geometry into straight segments.
//
// A circular coil becomes 2×Resolution tangent elements anchored on the
// circle at the arc midpoints. Elements are generated in antipodal pairs
// so that on-axis transverse field contributions cancel exactly, and each
// element's length is the arc it stands in for; with equal weights the
// on-axis field sum telescopes to the closed form and the remaining error
// is pure roundoff from the accumulated rotations.
package geom

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrBadGeometry marks coil parameters that cannot be discretized.
var ErrBadGeometry = errors.New("geom: degenerate coil geometry")

// Segment is a straight current element: node R0 on the source curve,
// tangent element DL whose magnitude is the arc length it replaces, and
// the carried current.
type Segment struct {
	R0      r3.Vec
	DL      r3.Vec
	Current float64
}

// Coil is a circular loop with its normal along +z. Resolution is the
// half-count: the loop is split into 2×Resolution segments placed on a
// regular 2×Resolution-gon.
type Coil struct {
	Radius     float64
	Current    float64
	Center     r3.Vec
	Resolution int
}

// DefaultResolution is the empirically good half-count; finer splits gain
// nothing on axis and accumulate rotation roundoff.
const DefaultResolution = 1 << 6

func NewCoil(radius, current float64, center r3.Vec, resolution int) (*Coil, error) {
	c := &Coil{
		Radius:     radius,
		Current:    current,
		Center:     center,
		Resolution: resolution,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Coil) validate() error {
	if c.Resolution < 3 {
		return fmt.Errorf("%w: resolution %d below 3", ErrBadGeometry, c.Resolution)
	}
	if !(c.Radius > 0) || math.IsInf(c.Radius, 0) {
		return fmt.Errorf("%w: radius %g", ErrBadGeometry, c.Radius)
	}
	if c.Current == 0 || math.IsNaN(c.Current) || math.IsInf(c.Current, 0) {
		return fmt.Errorf("%w: current %g", ErrBadGeometry, c.Current)
	}
	if math.IsNaN(c.Center.X) || math.IsNaN(c.Center.Y) || math.IsNaN(c.Center.Z) {
		return fmt.Errorf("%w: center %v", ErrBadGeometry, c.Center)
	}
	return nil
}

// Segments splits the loop into its 2×Resolution tangent elements.
//
// Antipodal pairs are emitted together rather than walking the circle in
// succession, so the transverse parts of an on-axis field sum cancel
// pairwise in float arithmetic, not merely in the limit.
func (c *Coil) Segments() []Segment {
	theta := math.Pi / float64(c.Resolution)
	rot := r3.NewRotation(theta, r3.Vec{Z: 1})

	normal := r3.Vec{Y: c.Radius}
	element := r3.Vec{X: -c.Radius * theta}

	segments := make([]Segment, 0, 2*c.Resolution)
	for i := 0; i < c.Resolution; i++ {
		segments = append(segments,
			Segment{R0: r3.Add(c.Center, normal), DL: element, Current: c.Current},
			Segment{R0: r3.Sub(c.Center, normal), DL: r3.Scale(-1, element), Current: c.Current},
		)
		element = rot.Rotate(element)
		normal = rot.Rotate(normal)
	}
	return segments
}

// Assembly is an ordered set of coaxial coils.
type Assembly struct {
	Coils []*Coil
}

// Segments concatenates the member coils' segments.
func (a *Assembly) Segments() []Segment {
	var all []Segment
	for _, c := range a.Coils {
		all = append(all, c.Segments()...)
	}
	return all
}

// Single is one loop centered at the origin.
func Single(radius, current float64, resolution int) (*Assembly, error) {
	c, err := NewCoil(radius, current, r3.Vec{}, resolution)
	if err != nil {
		return nil, err
	}
	return &Assembly{Coils: []*Coil{c}}, nil
}

// HelmholtzPair places two identical loops at z = ±separation/2. The
// Helmholtz condition is separation == radius; other separations are
// legal and show the single-peak to double-hump transition.
func HelmholtzPair(radius, current, separation float64, resolution int) (*Assembly, error) {
	if !(separation > 0) {
		return nil, fmt.Errorf("%w: separation %g", ErrBadGeometry, separation)
	}
	lo, err := NewCoil(radius, current, r3.Vec{Z: -separation / 2}, resolution)
	if err != nil {
		return nil, err
	}
	hi, err := NewCoil(radius, current, r3.Vec{Z: separation / 2}, resolution)
	if err != nil {
		return nil, err
	}
	return &Assembly{Coils: []*Coil{lo, hi}}, nil
}

// Stack spreads n identical loops evenly over z ∈ [-halfSpan, halfSpan].
func Stack(n int, halfSpan, radius, current float64, resolution int) (*Assembly, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: stack of %d coils", ErrBadGeometry, n)
	}
	if !(halfSpan > 0) && n > 1 {
		return nil, fmt.Errorf("%w: stack half-span %g", ErrBadGeometry, halfSpan)
	}
	coils := make([]*Coil, n)
	for i := 0; i < n; i++ {
		z := 0.0
		if n > 1 {
			z = -halfSpan + 2*halfSpan*float64(i)/float64(n-1)
		}
		c, err := NewCoil(radius, current, r3.Vec{Z: z}, resolution)
		if err != nil {
			return nil, err
		}
		coils[i] = c
	}
	return &Assembly{Coils: coils}, nil
}
