package bfield

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/kswierk/physlab/internal/geom"
)

// AxialLoop is the closed-form on-axis field of a single loop in μ0 = 1
// units:
//
//	Bz(z) = I R² / (2 (R² + (z − z0)²)^{3/2})
func AxialLoop(c *geom.Coil, z float64) float64 {
	dz := z - c.Center.Z
	d := c.Radius*c.Radius + dz*dz
	return c.Current * c.Radius * c.Radius / (2 * d * math.Sqrt(d))
}

// Axial sums the member loops' closed forms. On-axis fields of coaxial
// loops superpose component-free, so the sum stays scalar.
func Axial(a *geom.Assembly, z float64) float64 {
	var b float64
	for _, c := range a.Coils {
		b += AxialLoop(c, z)
	}
	return b
}

// AxialProfile evaluates Axial at each z.
func AxialProfile(a *geom.Assembly, zs []float64) []float64 {
	out := make([]float64, len(zs))
	for i, z := range zs {
		out[i] = Axial(a, z)
	}
	return out
}

// HelmholtzCenter is the midpoint field of an ideal Helmholtz pair,
// (4/5)^{3/2} · I/R.
func HelmholtzCenter(radius, current float64) float64 {
	return math.Pow(4.0/5.0, 1.5) * current / radius
}

// Residuals returns (theory − numeric)/theory per sample, the relative
// disagreement of a computed profile against its closed form.
func Residuals(theory, numeric []float64) []float64 {
	res := make([]float64, len(theory))
	floats.SubTo(res, theory, numeric)
	floats.DivTo(res, res, theory)
	return res
}

// MaxAbs is the worst-case magnitude in a residual series.
func MaxAbs(xs []float64) float64 {
	var worst float64
	for _, x := range xs {
		if a := math.Abs(x); a > worst {
			worst = a
		}
	}
	return worst
}
