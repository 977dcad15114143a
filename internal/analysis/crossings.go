package analysis

import "gonum.org/v1/gonum/stat"

// maxJitterFraction rejects period estimates whose crossing spacings
// scatter too widely to describe one repeating cycle.
const maxJitterFraction = 0.1

// Crossings returns the fractional sample indices where the series goes
// from negative to non-negative, linearly interpolated between the
// bracketing samples.
func Crossings(data []float64) []float64 {
	var indices []float64
	for i := 0; i+1 < len(data); i++ {
		if data[i] < 0 && data[i+1] >= 0 {
			indices = append(indices, float64(i)-data[i]/(data[i+1]-data[i]))
		}
	}
	return indices
}

// PeriodEstimate is a zero-crossing period measurement.
type PeriodEstimate struct {
	Period float64 // mean spacing of successive crossings, seconds
	Jitter float64 // standard deviation of the spacings, seconds
	Count  int     // crossings found
	OK     bool
}

// EstimatePeriod measures the repeat time of a uniformly sampled series.
// Angular velocity is the series of choice for a pendulum: it oscillates
// about zero even when the deflection acquires an offset.
//
// OK is false when fewer than two crossings exist or when the spacings
// are inconsistent, as happens for rotating and chaotic regimes.
func EstimatePeriod(data []float64, rate float64) PeriodEstimate {
	crossings := Crossings(data)
	est := PeriodEstimate{Count: len(crossings)}
	if len(crossings) < 2 || rate <= 0 {
		return est
	}

	spacings := make([]float64, len(crossings)-1)
	for i := range spacings {
		spacings[i] = (crossings[i+1] - crossings[i]) / rate
	}

	est.Period = stat.Mean(spacings, nil)
	if len(spacings) > 1 {
		est.Jitter = stat.StdDev(spacings, nil)
	}
	est.OK = est.Period > 0 && est.Jitter <= maxJitterFraction*est.Period
	return est
}
