package analysis

import (
	"math"
	"testing"
)

func TestPortrait(t *testing.T) {
	points := Portrait([]float64{1, 2, 3}, []float64{4, 5, 6})
	if len(points) != 3 || points[1] != (Point{2, 5}) {
		t.Errorf("Portrait = %v", points)
	}

	// Shorter series bounds the result.
	if got := Portrait([]float64{1, 2, 3}, []float64{4}); len(got) != 1 {
		t.Errorf("mismatched lengths gave %d points, want 1", len(got))
	}
}

func TestPoincareStrobesPeriodicOrbit(t *testing.T) {
	// Unit circle traversed once per second, sampled at 100 Hz. Strobing
	// at the traversal period must pin every point at (1, 0).
	const dt = 0.01
	n := 1001
	times := make([]float64, n)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		times[i] = float64(i) * dt
		xs[i] = math.Cos(2 * math.Pi * times[i])
		ys[i] = math.Sin(2 * math.Pi * times[i])
	}

	points := Poincare(times, xs, ys, 1.0, 0)
	if len(points) != 10 {
		t.Fatalf("got %d strobe points, want 10", len(points))
	}
	for i, p := range points {
		if math.Abs(p.X-1) > 1e-3 || math.Abs(p.Y) > 1e-3 {
			t.Errorf("strobe %d = (%g, %g), want (1, 0)", i, p.X, p.Y)
		}
	}
}

func TestPoincareSkipsTransient(t *testing.T) {
	n := 1001
	times := make([]float64, n)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		times[i] = float64(i) * 0.01
	}

	points := Poincare(times, xs, ys, 1.0, 5.0)
	if len(points) != 6 {
		t.Errorf("got %d points after skip, want 6 (t = 5..10)", len(points))
	}
}

func TestPoincareInterpolates(t *testing.T) {
	times := []float64{0, 1}
	xs := []float64{0, 10}
	ys := []float64{0, -2}

	points := Poincare(times, xs, ys, 0.5, 0)
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if points[0] != (Point{5, -1}) {
		t.Errorf("interpolated strobe = %v, want {5 -1}", points[0])
	}
	if points[1] != (Point{10, -2}) {
		t.Errorf("endpoint strobe = %v, want {10 -2}", points[1])
	}
}

func TestPoincareDegenerate(t *testing.T) {
	times := []float64{0, 1, 2}
	if got := Poincare(times, times, times, 0, 0); got != nil {
		t.Errorf("zero period gave %v", got)
	}
	if got := Poincare([]float64{0}, []float64{1}, []float64{1}, 1, 0); got != nil {
		t.Errorf("single sample gave %v", got)
	}
}
