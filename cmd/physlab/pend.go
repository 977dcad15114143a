package main

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/kswierk/physlab/internal/analysis"
	"github.com/kswierk/physlab/internal/config"
	"github.com/kswierk/physlab/internal/integrators"
	"github.com/kswierk/physlab/internal/metrics"
	"github.com/kswierk/physlab/internal/ode"
	"github.com/kswierk/physlab/internal/pendulum"
	"github.com/kswierk/physlab/internal/plots"
	"github.com/kswierk/physlab/internal/report"
	"github.com/kswierk/physlab/internal/sweep"
)

var defaultAmps = []float64{0.5, 1.2, 1.44, 1.465}

var weakAmps = []float64{0, 0.01, 0.02, 0.03, 0.05}

var defaultDampings = []float64{1, 5, 10}

func simulate(ctx context.Context, cfg *config.Config, p *pendulum.Pendulum, ms ...ode.Metric) (*ode.Result, error) {
	integ, err := integrators.ByName(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	sim := ode.NewSimulator(p, integ)
	for _, m := range ms {
		sim.AddMetric(m)
	}
	return sim.Run(ctx, ode.State(cfg.InitState()), odeConfig(cfg))
}

// windowIndices clips a [lo, hi] second window to sample indices,
// falling back to the whole series when the window misses it.
func windowIndices(times []float64, lo, hi float64) (int, int) {
	i := sort.SearchFloat64s(times, lo)
	j := sort.SearchFloat64s(times, hi)
	if j > len(times) {
		j = len(times)
	}
	if i >= j {
		return 0, len(times)
	}
	return i, j
}

func energyLost(p *pendulum.Pendulum, res *ode.Result) []float64 {
	lost := p.EnergyFraction(res)
	for i := range lost {
		lost[i] = 1 - lost[i]
	}
	return lost
}

func pendRun(cmd *cobra.Command, args []string) error {
	cfg, err := studyConfig(cmd, "pend")
	if err != nil {
		return err
	}
	return runPendRun(cfg, quickLook)
}

func runPendRun(cfg *config.Config, ascii bool) error {
	p := newPendulum(cfg)
	ms := []ode.Metric{metrics.NewMeanEnergy(p), metrics.NewEnergyDrift(p), metrics.NewTurnovers()}
	if cfg.Pendulum.Drive != 0 {
		ms = append(ms, metrics.NewDriveWork(cfg.Pendulum.Drive, cfg.Pendulum.DriveFreq))
	}

	start := time.Now()
	res, err := simulate(context.Background(), cfg, p, ms...)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	thetas := res.Component(0)
	omegas := res.Component(1)
	free := cfg.Pendulum.Damping == 0 && cfg.Pendulum.Drive == 0

	r := plots.New(cfg.Out, cfg.SVG)

	series := []plots.Series{{Label: "numeric", X: res.Times, Y: thetas}}
	if free {
		small := p.SmallAngle(ode.State(cfg.InitState()))
		ref := make([]float64, len(res.Times))
		for i, t := range res.Times {
			ref[i] = small(t)
		}
		series = append(series, plots.Series{Label: "small angle", X: res.Times, Y: ref})
	}
	if _, err := r.Figure("deflection", "Deflection", "t / s", "θ / rad", series...); err != nil {
		return err
	}

	// late cycles show the accumulated phase error of the small-angle form
	if free && len(res.Times) > 2 {
		T := p.LinearPeriod()
		lo, hi := windowIndices(res.Times, cfg.Duration-4*T, cfg.Duration)
		late := make([]plots.Series, len(series))
		for i, s := range series {
			late[i] = plots.Series{Label: s.Label, X: s.X[lo:hi], Y: s.Y[lo:hi]}
		}
		if _, err := r.Figure("deflection-late", "Late cycles", "t / s", "θ / rad", late...); err != nil {
			return err
		}
	}

	if _, err := r.Figure("energy_fraction", "Fraction of energy lost", "t / s", "1 - E/E0",
		plots.Series{X: res.Times, Y: energyLost(p, res)}); err != nil {
		return err
	}

	wrapped := pendulum.WrapSeries(thetas)
	if _, err := r.Figure("phase", "Phase portrait", "θ / rad", "ω / rad s⁻¹",
		plots.Series{X: wrapped, Y: omegas, Points: true}); err != nil {
		return err
	}

	est := analysis.EstimatePeriod(omegas, cfg.Rate)

	fmt.Println(report.Section("pendulum run"))
	fmt.Println(report.Row("samples", "%d in %v", len(res.Times), elapsed.Round(time.Millisecond)))
	fmt.Println(report.Row("steps", "%d", res.StepsTaken))
	if est.OK {
		fmt.Println(report.Row("period", "%.4f s ± %.4f (%d crossings) %s",
			est.Period, est.Jitter, est.Count, report.Status(true)))
	} else {
		fmt.Println(report.Row("period", "no stable period %s", report.Status(false)))
	}
	if free {
		fmt.Println(report.Row("small angle", "%.4f s", p.LinearPeriod()))
		fmt.Println(report.Row("elliptic", "%.4f s", p.ExactPeriod(cfg.Pendulum.Theta)))
	}
	for name, val := range res.Metrics {
		fmt.Println(report.Row(name, "%.6g", val))
	}
	for _, f := range res.Flags {
		fmt.Println(report.Row("flag", "%s", f.Error()))
	}
	fmt.Println(report.Row("figures", "%s", cfg.Out))

	if ascii {
		fmt.Println(report.Chart(thetas, "θ(t)"))
		fmt.Println(report.Trace(wrapped, omegas, 40, 12))
	}
	return nil
}

func pendPeriod(cmd *cobra.Command, args []string) error {
	cfg, err := studyConfig(cmd, "pend")
	if err != nil {
		return err
	}
	return runPendPeriod(cfg)
}

func runPendPeriod(cfg *config.Config) error {
	// long spans at a reduced output rate keep the sweep affordable;
	// explicit settings win over the study defaults
	sweepCfg := odeConfig(cfg)
	if cfg.Rate == config.DefaultRate {
		sweepCfg.SampleRate = 100
	}
	if cfg.Duration == config.DefaultDuration {
		sweepCfg.Duration = 100 * 2 * math.Pi
	}

	thetas := floats.Span(make([]float64, 50), 1e-4, math.Pi)
	runs := make([]sweep.Run, len(thetas))
	for i, th := range thetas {
		p := pendulum.New()
		p.Omega0 = cfg.Pendulum.Omega0
		runs[i] = sweep.Run{
			Label:      fmt.Sprintf("theta0=%.4f", th),
			System:     p,
			X0:         ode.State{th, 0},
			Config:     sweepCfg,
			Integrator: cfg.Integrator,
		}
	}

	outcomes := sweep.NewBatch(logger).Execute(context.Background(), runs)

	var xs, ys []float64
	unstable := 0
	for i, out := range outcomes {
		if out.Err != nil || out.Result == nil {
			unstable++
			continue
		}
		est := analysis.EstimatePeriod(out.Result.Component(1), sweepCfg.SampleRate)
		if !est.OK {
			unstable++
			logger.Debug("no stable period", zap.String("run", out.Label))
			continue
		}
		xs = append(xs, thetas[i])
		ys = append(ys, est.Period)
	}

	ref := pendulum.New()
	ref.Omega0 = cfg.Pendulum.Omega0
	dense := floats.Span(make([]float64, 200), 1e-4, 0.995*math.Pi)
	exact := make([]float64, len(dense))
	for i, th := range dense {
		exact[i] = ref.ExactPeriod(th)
	}

	r := plots.New(cfg.Out, cfg.SVG)
	if _, err := r.Figure("period_vs_amplitude",
		"Period against initial deflection", "θ0 / rad", "T / s",
		plots.Series{Label: "measured", X: xs, Y: ys, Points: true},
		plots.Series{Label: "elliptic", X: dense, Y: exact},
		plots.Series{Label: "small angle", X: []float64{0, math.Pi}, Y: []float64{ref.LinearPeriod(), ref.LinearPeriod()}},
	); err != nil {
		return err
	}

	// a dedicated quarter-turn run at the full output rate
	quarter := *cfg
	quarter.Pendulum.Theta = math.Pi / 2
	quarter.Pendulum.Omega = 0
	quarter.Pendulum.Damping = 0
	quarter.Pendulum.Drive = 0
	if quarter.Duration == config.DefaultDuration {
		quarter.Duration = 1000
	}
	resQ, err := simulate(context.Background(), &quarter, newPendulum(&quarter))
	if err != nil {
		return err
	}
	estQ := analysis.EstimatePeriod(resQ.Component(1), quarter.Rate)

	fmt.Println(report.Section("period study"))
	fmt.Println(report.Row("sweep", "%d amplitudes in (0, π]", len(thetas)))
	fmt.Println(report.Row("stable", "%d periods (no stable period near π: %d)", len(xs), unstable))
	fmt.Println(report.Row("T(π/2)", "%.4f s measured, %.4f s elliptic %s",
		estQ.Period, ref.ExactPeriod(math.Pi/2), report.Status(estQ.OK)))
	fmt.Println(report.Row("small angle", "%.4f s", ref.LinearPeriod()))
	fmt.Println(report.Row("figures", "%s", cfg.Out))

	sweep.LogResources(logger)
	return nil
}

func pendDamping(cmd *cobra.Command, args []string) error {
	cfg, err := studyConfig(cmd, "pend")
	if err != nil {
		return err
	}
	qs, err := parseFloats(args, defaultDampings)
	if err != nil {
		return err
	}
	return runPendDamping(cfg, qs)
}

func runPendDamping(cfg *config.Config, qs []float64) error {
	systems := make([]*pendulum.Pendulum, len(qs))
	runs := make([]sweep.Run, len(qs))
	for i, q := range qs {
		p := newPendulum(cfg)
		p.Damping = q
		p.Drive = 0
		systems[i] = p
		runs[i] = sweep.Run{
			Label:      fmt.Sprintf("q = %g", q),
			System:     p,
			X0:         ode.State(cfg.InitState()),
			Config:     odeConfig(cfg),
			Integrator: cfg.Integrator,
			Metrics:    []ode.Metric{metrics.NewMeanEnergy(p)},
		}
	}

	outcomes := sweep.NewBatch(logger).Execute(context.Background(), runs)

	fmt.Println(report.Section("damping sweep"))

	var traces, energies []plots.Series
	for i, out := range outcomes {
		if out.Err != nil || out.Result == nil {
			fmt.Println(report.Row(out.Label, "failed: %v", out.Err))
			continue
		}
		res := out.Result
		traces = append(traces, plots.Series{Label: out.Label, X: res.Times, Y: res.Component(0)})
		lost := energyLost(systems[i], res)
		energies = append(energies, plots.Series{Label: out.Label, X: res.Times, Y: lost})

		fmt.Println(report.Row(out.Label, "%s, energy decay %s",
			dampingRegime(qs[i], cfg.Pendulum.Omega0), report.Status(monotoneLoss(lost))))
	}

	r := plots.New(cfg.Out, cfg.SVG)
	if _, err := r.Figure("damping", "Damped deflection", "t / s", "θ / rad", traces...); err != nil {
		return err
	}
	if _, err := r.Figure("damping-energies", "Fraction of energy lost", "t / s", "1 - E/E0", energies...); err != nil {
		return err
	}

	fmt.Println(report.Row("figures", "%s", cfg.Out))
	return nil
}

// monotoneLoss reports whether cumulative energy loss never backslides
// past integrator noise (the slack is relative to the initial energy).
func monotoneLoss(lost []float64) bool {
	const slack = 1e-4
	for i := 1; i < len(lost); i++ {
		if lost[i] < lost[i-1]-slack {
			return false
		}
	}
	return true
}

func dampingRegime(q, omega0 float64) string {
	switch {
	case q < 2*omega0:
		return "underdamped"
	case q == 2*omega0:
		return "critically damped"
	default:
		return "overdamped"
	}
}

func pendDriving(cmd *cobra.Command, args []string) error {
	cfg, err := studyConfig(cmd, "pend")
	if err != nil {
		return err
	}
	amps, err := parseFloats(args, defaultAmps)
	if err != nil {
		return err
	}
	return runPendDriving(cfg, amps)
}

func runPendDriving(cfg *config.Config, amps []float64) error {
	// the canonical driven runs; explicit settings win
	if cfg.Pendulum.Damping == 0 {
		cfg.Pendulum.Damping = 0.5
	}
	if cfg.Pendulum.Theta == config.DefaultTheta {
		cfg.Pendulum.Theta = 0.2
	}
	if cfg.Duration == config.DefaultDuration {
		cfg.Duration = 100
	}

	all := append(append([]float64{}, amps...), weakAmps...)
	systems := make([]*pendulum.Pendulum, len(all))
	runs := make([]sweep.Run, len(all))
	for i, f := range all {
		p := newPendulum(cfg)
		p.Drive = f
		systems[i] = p
		runs[i] = sweep.Run{
			Label:      fmt.Sprintf("F = %g", f),
			System:     p,
			X0:         ode.State(cfg.InitState()),
			Config:     odeConfig(cfg),
			Integrator: cfg.Integrator,
			Metrics: []ode.Metric{
				metrics.NewDriveWork(f, cfg.Pendulum.DriveFreq),
				metrics.NewTurnovers(),
			},
		}
	}

	outcomes := sweep.NewBatch(logger).Execute(context.Background(), runs)

	drivePeriod := 2 * math.Pi / cfg.Pendulum.DriveFreq

	fmt.Println(report.Section("driving sweep"))

	var traces, energies, weak []plots.Series
	var fx, fy []float64
	for i, out := range outcomes {
		if out.Err != nil || out.Result == nil {
			fmt.Println(report.Row(out.Label, "failed: %v", out.Err))
			continue
		}
		res := out.Result
		s := plots.Series{Label: out.Label, X: res.Times, Y: res.Component(0)}
		if i < len(amps) {
			traces = append(traces, s)
			energies = append(energies, plots.Series{Label: out.Label, X: res.Times, Y: energyLost(systems[i], res)})

			est := analysis.EstimatePeriod(res.Component(1), cfg.Rate)
			if est.OK {
				fx = append(fx, all[i])
				fy = append(fy, est.Period)
				fmt.Println(report.Row(out.Label, "period %.4f s (%.2f drive periods), work %.4g, turnovers %.0f",
					est.Period, est.Period/drivePeriod, res.Metrics["drive_work"], res.Metrics["turnovers"]))
			} else {
				fmt.Println(report.Row(out.Label, "no stable period %s, work %.4g, turnovers %.0f",
					report.Status(false), res.Metrics["drive_work"], res.Metrics["turnovers"]))
			}
		} else {
			weak = append(weak, s)
		}
	}

	r := plots.New(cfg.Out, cfg.SVG)
	if _, err := r.Figure("driving-deflections", "Driven deflection", "t / s", "θ / rad", traces...); err != nil {
		return err
	}
	if _, err := r.Figure("driving-energies", "Fraction of energy lost", "t / s", "1 - E/E0", energies...); err != nil {
		return err
	}
	if _, err := r.Figure("driving-weak", "Weak driving", "t / s", "θ / rad", weak...); err != nil {
		return err
	}
	if len(fx) > 0 {
		if _, err := r.Figure("driving-periods", "Locked period against amplitude", "F", "T / s",
			plots.Series{X: fx, Y: fy, Points: true}); err != nil {
			return err
		}
	}

	if err := drivingPoincare(cfg, amps, drivePeriod, r); err != nil {
		return err
	}
	return drivingBifurcation(cfg, drivePeriod, r)
}

// drivingPoincare strobes a long run of the strongest drive at the
// drive period. The section needs many more cycles than the trace
// plots, so it gets its own run.
func drivingPoincare(cfg *config.Config, amps []float64, drivePeriod float64, r *plots.Renderer) error {
	strongest := floats.Max(amps)

	long := *cfg
	long.Pendulum.Drive = strongest
	long.Duration = 1000
	res, err := simulate(context.Background(), &long, newPendulum(&long))
	if err != nil {
		return err
	}

	skip := long.Duration / 5
	section := analysis.Poincare(res.Times, res.Component(0), res.Component(1), drivePeriod, skip)
	if len(section) == 0 {
		logger.Warn("poincaré section empty", zap.Float64("drive", strongest))
		return nil
	}
	xs := make([]float64, len(section))
	ys := make([]float64, len(section))
	for i, pt := range section {
		xs[i] = pendulum.Wrap(pt.X)
		ys[i] = pt.Y
	}

	if _, err := r.Figure("driving-poincare",
		fmt.Sprintf("Poincaré section, F = %g", strongest), "θ / rad", "ω / rad s⁻¹",
		plots.Series{X: xs, Y: ys, Points: true}); err != nil {
		return err
	}
	fmt.Println(report.Row("poincaré", "%d strobes at F = %g", len(section), strongest))
	return nil
}

// drivingBifurcation sweeps the drive amplitude through the
// period-doubling window and plots the settled stroboscopic deflections.
func drivingBifurcation(cfg *config.Config, drivePeriod float64, r *plots.Renderer) error {
	integ, err := integrators.ByName("rk4")
	if err != nil {
		return err
	}

	p := newPendulum(cfg)
	values := floats.Span(make([]float64, 61), 1.35, 1.5)
	points := analysis.Bifurcation(p, integ, ode.State(cfg.InitState()), "drive", values, 0,
		cfg.Dt, 50*drivePeriod, drivePeriod, 30*drivePeriod)
	if len(points) == 0 {
		logger.Warn("bifurcation sweep produced no points")
		return nil
	}

	var xs, ys []float64
	for _, pt := range points {
		for _, sample := range pt.Samples {
			xs = append(xs, pt.Param)
			ys = append(ys, pendulum.Wrap(sample))
		}
	}

	if _, err := r.Figure("driving-bifurcation",
		"Stroboscopic deflection against drive amplitude", "F", "θ / rad",
		plots.Series{X: xs, Y: ys, Points: true}); err != nil {
		return err
	}
	fmt.Println(report.Row("bifurcation", "%d amplitudes in [%.2f, %.2f]", len(points), values[0], values[len(values)-1]))
	fmt.Println(report.Row("figures", "%s", cfg.Out))
	return nil
}

func pendSensitivity(cmd *cobra.Command, args []string) error {
	cfg, err := studyConfig(cmd, "pend")
	if err != nil {
		return err
	}
	return runPendSensitivity(cfg, delta)
}

func runPendSensitivity(cfg *config.Config, offset float64) error {
	// canonical sensitive configuration; explicit settings win
	if cfg.Pendulum.Damping == 0 {
		cfg.Pendulum.Damping = 0.5
	}
	if cfg.Pendulum.Drive == 0 {
		cfg.Pendulum.Drive = 1.2
	}
	if cfg.Pendulum.Theta == config.DefaultTheta {
		cfg.Pendulum.Theta = 0.2
	}
	if cfg.Duration == config.DefaultDuration {
		cfg.Duration = 1000
	}
	if offset == 0 {
		offset = 1e-5
	}

	runs := []sweep.Run{
		{
			Label:      "base",
			System:     newPendulum(cfg),
			X0:         ode.State(cfg.InitState()),
			Config:     odeConfig(cfg),
			Integrator: cfg.Integrator,
		},
		{
			Label:      "perturbed",
			System:     newPendulum(cfg),
			X0:         ode.State{cfg.Pendulum.Theta + offset, cfg.Pendulum.Omega},
			Config:     odeConfig(cfg),
			Integrator: cfg.Integrator,
		},
	}
	outcomes := sweep.NewBatch(logger).Execute(context.Background(), runs)
	for _, out := range outcomes {
		if out.Err != nil {
			return fmt.Errorf("run %s: %w", out.Label, out.Err)
		}
	}
	a, b := outcomes[0].Result, outcomes[1].Result

	times, sep := analysis.Separation(a, b)
	rate, ok := analysis.LyapunovRate(times, sep, math.Pi)

	var lx, ly []float64
	for i := range sep {
		if sep[i] > 0 {
			lx = append(lx, times[i])
			ly = append(ly, math.Log10(sep[i]))
		}
	}

	r := plots.New(cfg.Out, cfg.SVG)
	if _, err := r.Figure("sensitivity", "Twin-run separation", "t / s", "log10 |Δx|",
		plots.Series{X: lx, Y: ly}); err != nil {
		return err
	}

	lo, hi := windowIndices(a.Times, 80, 100)
	if _, err := r.Figure("sensitivity-traces",
		"Deflections in the 80 to 100 s window", "t / s", "θ / rad",
		plots.Series{Label: "θ0", X: a.Times[lo:hi], Y: a.Component(0)[lo:hi]},
		plots.Series{Label: "θ0 + δ", X: b.Times[lo:hi], Y: b.Component(0)[lo:hi]},
	); err != nil {
		return err
	}

	if _, err := r.Figure("sensitivity-phase",
		"Phase portraits in the 80 to 100 s window", "θ / rad", "ω / rad s⁻¹",
		plots.Series{Label: "θ0", X: pendulum.WrapSeries(a.Component(0)[lo:hi]), Y: a.Component(1)[lo:hi], Points: true},
		plots.Series{Label: "θ0 + δ", X: pendulum.WrapSeries(b.Component(0)[lo:hi]), Y: b.Component(1)[lo:hi], Points: true},
	); err != nil {
		return err
	}

	fmt.Println(report.Section("sensitivity"))
	fmt.Println(report.Row("offset", "δθ0 = %.2e rad", offset))
	if ok {
		fmt.Println(report.Row("divergence rate", "λ ≈ %.4f / s %s", rate, report.Status(true)))
		if rate > 0 {
			fmt.Println(report.Row("doubling time", "%.2f s", math.Ln2/rate))
		} else {
			fmt.Println(report.Row("regime", "trajectories converge (periodic attractor)"))
		}
	} else {
		fmt.Println(report.Row("divergence rate", "no exponential fit %s", report.Status(false)))
	}
	fmt.Println(report.Row("figures", "%s", cfg.Out))
	return nil
}

func pendSpectrum(cmd *cobra.Command, args []string) error {
	cfg, err := studyConfig(cmd, "pend")
	if err != nil {
		return err
	}
	return runPendSpectrum(cfg, freqMax)
}

func runPendSpectrum(cfg *config.Config, fmax float64) error {
	p := newPendulum(cfg)
	res, err := simulate(context.Background(), cfg, p)
	if err != nil {
		return err
	}

	sp := analysis.PowerSpectrum(res.Component(0), cfg.Rate)
	if len(sp.Freqs) == 0 {
		return fmt.Errorf("series too short for a spectrum")
	}
	dom, power := sp.Dominant()

	cut := len(sp.Freqs)
	if fmax > 0 {
		for i, f := range sp.Freqs {
			if f > fmax {
				cut = i
				break
			}
		}
	}

	r := plots.New(cfg.Out, cfg.SVG)
	if _, err := r.Figure("spectrum", "Power spectrum of the deflection", "f / Hz", "power",
		plots.Series{X: sp.Freqs[:cut], Y: sp.Power[:cut]}); err != nil {
		return err
	}

	fmt.Println(report.Section("spectrum"))
	fmt.Println(report.Row("dominant", "%.4f Hz (power %.3e)", dom, power))
	if dom > 0 {
		fmt.Println(report.Row("implied period", "%.4f s", 1/dom))
	}
	if cfg.Pendulum.Drive != 0 {
		fmt.Println(report.Row("drive", "%.4f Hz", cfg.Pendulum.DriveFreq/(2*math.Pi)))
	} else {
		fmt.Println(report.Row("natural", "%.4f Hz", cfg.Pendulum.Omega0/(2*math.Pi)))
	}
	fmt.Println(report.Row("figures", "%s", cfg.Out))
	fmt.Println(report.Chart(sp.Power[:cut], "power spectrum"))
	return nil
}
