package analysis

import (
	"math"
	"testing"

	"github.com/kswierk/physlab/internal/ode"
)

func fakeResult(times []float64, thetas []float64) *ode.Result {
	res := &ode.Result{Times: times}
	for _, th := range thetas {
		res.States = append(res.States, ode.State{th, 0})
	}
	return res
}

func TestSeparation(t *testing.T) {
	a := fakeResult([]float64{0, 1, 2}, []float64{0, 1, 2})
	b := fakeResult([]float64{0, 1, 2}, []float64{0, 1.5, 2})

	times, sep := Separation(a, b)
	if len(times) != 3 {
		t.Fatalf("got %d samples, want 3", len(times))
	}
	want := []float64{0, 0.5, 0}
	for i := range want {
		if math.Abs(sep[i]-want[i]) > 1e-15 {
			t.Errorf("sep[%d] = %g, want %g", i, sep[i], want[i])
		}
	}
}

func TestSeparationTruncatesToShorterRun(t *testing.T) {
	a := fakeResult([]float64{0, 1, 2, 3}, []float64{0, 0, 0, 0})
	b := fakeResult([]float64{0, 1}, []float64{1, 1})

	times, sep := Separation(a, b)
	if len(times) != 2 || len(sep) != 2 {
		t.Errorf("got %d/%d samples, want 2/2", len(times), len(sep))
	}
}

func TestLyapunovRateRecoversExponent(t *testing.T) {
	// sep(t) = 1e-6 · e^{0.4 t} stays under saturation for the whole span.
	const lambda = 0.4
	n := 301
	times := make([]float64, n)
	sep := make([]float64, n)
	for i := 0; i < n; i++ {
		times[i] = 0.1 * float64(i)
		sep[i] = 1e-6 * math.Exp(lambda*times[i])
	}

	rate, ok := LyapunovRate(times, sep, 1.0)
	if !ok {
		t.Fatal("clean exponential growth rejected")
	}
	if math.Abs(rate-lambda) > 1e-9 {
		t.Errorf("rate = %.12f, want %.12f", rate, lambda)
	}
}

func TestLyapunovRateIgnoresSaturation(t *testing.T) {
	// Exponential growth that pins at 2.0; the flat tail must not drag
	// the fitted slope down.
	const lambda = 1.0
	var times, sep []float64
	for ti := 0.0; ti <= 20; ti += 0.05 {
		s := 1e-3 * math.Exp(lambda*ti)
		if s > 2 {
			s = 2
		}
		times = append(times, ti)
		sep = append(sep, s)
	}

	rate, ok := LyapunovRate(times, sep, 1.0)
	if !ok {
		t.Fatal("saturating series rejected")
	}
	if math.Abs(rate-lambda) > 1e-9 {
		t.Errorf("rate = %.12f, want %.12f despite saturation", rate, lambda)
	}
}

func TestLyapunovRateNeedsPoints(t *testing.T) {
	times := []float64{0, 1, 2}
	sep := []float64{1e-6, 1e-5, 1e-4}
	if _, ok := LyapunovRate(times, sep, 1.0); ok {
		t.Error("three samples accepted as a credible fit")
	}

	zeros := make([]float64, 100)
	longT := make([]float64, 100)
	for i := range longT {
		longT[i] = float64(i)
	}
	if _, ok := LyapunovRate(longT, zeros, 1.0); ok {
		t.Error("all-zero separation accepted")
	}
}
