// Package bfield evaluates magnetic fields of segmented wires by
// Biot-Savart superposition, in μ0 = 1 units.
//
// Query points are independent of each other, so multi-point sampling
// fans out across a bounded worker pool. Per-point summation stays
// sequential and in segment order: the discretizer interleaves antipodal
// elements precisely so that on-axis transverse contributions cancel in
// float arithmetic, and reordering would forfeit that.
package bfield

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kswierk/physlab/internal/geom"
	"github.com/kswierk/physlab/internal/sweep"
)

// Sample pairs a query point with the field evaluated there.
type Sample struct {
	At r3.Vec
	B  r3.Vec
}

// minPointsPerChunk keeps tiny sample sets on the calling goroutine;
// each point already costs a full pass over the segments.
const minPointsPerChunk = 4

// Contribution is the field of one straight current element at a point:
//
//	B = I · (dl × r) / (4π |r|³),  r = at − R0
//
// The zero vector is returned when the query point coincides with the
// element, the only tolerated degenerate query.
func Contribution(seg geom.Segment, at r3.Vec) r3.Vec {
	dr := r3.Sub(at, seg.R0)
	mod := r3.Norm(dr)
	if mod == 0 {
		return r3.Vec{}
	}
	return r3.Scale(seg.Current/(4*math.Pi*mod*mod*mod), r3.Cross(seg.DL, dr))
}

// Superpose sums the segment contributions at one point, in order.
func Superpose(segments []geom.Segment, at r3.Vec) r3.Vec {
	var b r3.Vec
	for _, seg := range segments {
		b = r3.Add(b, Contribution(seg, at))
	}
	return b
}

// SampleAll evaluates the field at every query point, fanning the points
// out across workers that each own a disjoint slice of the results.
func SampleAll(segments []geom.Segment, points []r3.Vec) []Sample {
	samples := make([]Sample, len(points))
	sweep.ParallelFor(len(points), minPointsPerChunk, func(start, end int) {
		for i := start; i < end; i++ {
			samples[i] = Sample{At: points[i], B: Superpose(segments, points[i])}
		}
	})
	return samples
}

// SampleLine evaluates the field at n points spaced evenly along the z
// axis from low to high.
func SampleLine(segments []geom.Segment, low, high float64, n int) []Sample {
	if n < 2 {
		return SampleAll(segments, []r3.Vec{{Z: low}})
	}
	zs := make([]float64, n)
	floats.Span(zs, low, high)

	points := make([]r3.Vec, n)
	for i, z := range zs {
		points[i] = r3.Vec{Z: z}
	}
	return SampleAll(segments, points)
}

// Grid is a square field section through the x = 0 plane, stored
// row-major with y varying slowest.
type Grid struct {
	N       int
	Samples []Sample
}

// At returns the sample at row iy (the y index) and column iz.
func (g *Grid) At(iy, iz int) Sample {
	return g.Samples[iy*g.N+iz]
}

// SampleGrid evaluates the field over an n×n section of the x = 0 plane
// with y and z both spanning [low, high].
func SampleGrid(segments []geom.Segment, low, high float64, n int) *Grid {
	ys := make([]float64, n)
	zs := make([]float64, n)
	floats.Span(ys, low, high)
	floats.Span(zs, low, high)

	points := make([]r3.Vec, 0, n*n)
	for _, y := range ys {
		for _, z := range zs {
			points = append(points, r3.Vec{Y: y, Z: z})
		}
	}
	return &Grid{N: n, Samples: SampleAll(segments, points)}
}

// Bz extracts the axial component of each sample, the quantity the
// closed forms predict.
func Bz(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.B.Z
	}
	return out
}

// Zs extracts the axial coordinate of each query point.
func Zs(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.At.Z
	}
	return out
}

// MaxDeviation reports the largest |B − ref| over the samples. With ref
// the field at a region's reference point, this is the homogeneity
// figure for the region.
func MaxDeviation(samples []Sample, ref r3.Vec) float64 {
	var worst float64
	for _, s := range samples {
		if d := r3.Norm(r3.Sub(s.B, ref)); d > worst {
			worst = d
		}
	}
	return worst
}
