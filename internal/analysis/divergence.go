package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/kswierk/physlab/internal/ode"
)

// Separation measures the state-space gap between twin runs sample by
// sample. The shorter run bounds the series; a flagged run that ended
// early still yields its available stretch.
func Separation(a, b *ode.Result) (times, sep []float64) {
	n := len(a.Times)
	if len(b.Times) < n {
		n = len(b.Times)
	}
	times = make([]float64, n)
	sep = make([]float64, n)
	for i := 0; i < n; i++ {
		times[i] = a.Times[i]
		sep[i] = a.States[i].Sub(b.States[i]).Norm()
	}
	return times, sep
}

// minFitPoints is the least number of samples a credible exponential fit
// can rest on.
const minFitPoints = 10

// LyapunovRate fits an exponential growth rate to a separation series:
// the slope of ln(sep) against time, over the stretch where the gap is
// positive but below saturation. Chaotic twin runs saturate near the
// attractor size, so samples past saturation carry no rate information.
//
// A positive rate with ok=true indicates exponential divergence.
func LyapunovRate(times, sep []float64, saturation float64) (rate float64, ok bool) {
	n := len(times)
	if len(sep) < n {
		n = len(sep)
	}

	var ts, logs []float64
	for i := 0; i < n; i++ {
		if sep[i] > 0 && sep[i] < saturation {
			ts = append(ts, times[i])
			logs = append(logs, math.Log(sep[i]))
		}
	}
	if len(ts) < minFitPoints {
		return 0, false
	}

	_, rate = stat.LinearRegression(ts, logs, nil, false)
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, false
	}
	return rate, true
}
