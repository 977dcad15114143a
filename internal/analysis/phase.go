package analysis

// Point is one phase-plane sample.
type Point struct {
	X, Y float64
}

// Split unzips points into coordinate slices.
func Split(points []Point) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return xs, ys
}

// Portrait pairs two sampled components into phase-plane points. The
// shorter series bounds the result.
func Portrait(xs, ys []float64) []Point {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	points := make([]Point, n)
	for i := 0; i < n; i++ {
		points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return points
}

// Poincare samples a trajectory stroboscopically at integer multiples of
// period, starting after skip, interpolating linearly between the
// bracketing samples. Strobing a driven system at its drive period
// collapses periodic motion to a few points and spreads chaotic motion
// into a dusted set.
//
// Interpolation runs on the raw series; wrap angles afterwards, or the
// branch cut corrupts the interpolated values.
func Poincare(times, xs, ys []float64, period, skip float64) []Point {
	n := len(times)
	if len(xs) < n {
		n = len(xs)
	}
	if len(ys) < n {
		n = len(ys)
	}
	if n < 2 || period <= 0 {
		return nil
	}

	var points []Point
	k := 1.0
	if skip > 0 {
		for k*period < skip {
			k++
		}
	}
	for i := 0; i+1 < n; {
		target := k * period
		switch {
		case target < times[i]:
			k++
		case target > times[i+1]:
			i++
		default:
			frac := 0.5
			if dt := times[i+1] - times[i]; dt > 0 {
				frac = (target - times[i]) / dt
			}
			points = append(points, Point{
				X: xs[i] + frac*(xs[i+1]-xs[i]),
				Y: ys[i] + frac*(ys[i+1]-ys[i]),
			})
			k++
		}
	}
	return points
}
