// Package analysis extracts observables from sampled trajectories.
//
// The package characterizes oscillator runs after the fact; nothing here
// integrates. Tools included:
//
//   - [EstimatePeriod]: oscillation period from interpolated zero crossings
//   - [PowerSpectrum]: one-sided spectrum of a sampled series
//   - [Portrait], [Poincare]: phase-plane views of a trajectory
//   - [Separation], [LyapunovRate]: twin-run divergence and its growth rate
//   - [Bifurcation]: stroboscopic deflections across a parameter sweep
//
// # Unstable periods
//
// Rotating and chaotic regimes have no single period. EstimatePeriod
// reports that honestly:
//
//	est := analysis.EstimatePeriod(omega, 500)
//	if !est.OK {
//	    // fewer than two crossings, or spacings too scattered
//	}
package analysis
