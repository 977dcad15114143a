package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kswierk/physlab/internal/bfield"
	"github.com/kswierk/physlab/internal/config"
	"github.com/kswierk/physlab/internal/geom"
	"github.com/kswierk/physlab/internal/plots"
	"github.com/kswierk/physlab/internal/report"
	"github.com/kswierk/physlab/internal/sweep"
)

var defaultResolutions = []int{16, 64, 128, 1024}

var defaultCounts = []int{3, 5, 12}

func coilAxis(cmd *cobra.Command, args []string) error {
	cfg, err := studyConfig(cmd, "coil")
	if err != nil {
		return err
	}
	resolutions, err := parseInts(args, defaultResolutions)
	if err != nil {
		return err
	}
	return runCoilAxis(cfg, resolutions)
}

func runCoilAxis(cfg *config.Config, resolutions []int) error {
	r := plots.New(cfg.Out, cfg.SVG)
	span := 2 * cfg.Coil.Radius

	fmt.Println(report.Section("single coil on axis"))

	var residualSeries []plots.Series
	for _, n := range resolutions {
		asm, err := geom.Single(cfg.Coil.Radius, cfg.Coil.Current, n)
		if err != nil {
			return err
		}
		samples := bfield.SampleLine(asm.Segments(), 0, span, cfg.Coil.Samples)
		zs := bfield.Zs(samples)
		numeric := bfield.Bz(samples)
		theory := bfield.AxialProfile(asm, zs)
		res := bfield.Residuals(theory, numeric)
		worst := bfield.MaxAbs(res)

		logger.Debug("axis profile computed",
			zap.Int("resolution", n),
			zap.Float64("max_rel_err", worst),
		)

		name := fmt.Sprintf("single_coil_on_axis-values-%d", n)
		title := fmt.Sprintf("Single coil on axis, resolution %d", n)
		if _, err := r.Figure(name, title, "z / m", "Bz (μ0 = 1)",
			plots.Series{Label: "numeric", X: zs, Y: numeric},
			plots.Series{Label: "closed form", X: zs, Y: theory, Points: true},
		); err != nil {
			return err
		}

		residualSeries = append(residualSeries, plots.Series{
			Label: fmt.Sprintf("resolution %d", n),
			X:     zs,
			Y:     res,
		})
		fmt.Println(report.Row(fmt.Sprintf("resolution %d", n), "max relative error %.3e", worst))
	}

	if _, err := r.Figure("single_coil_on_axis-residuals",
		"Residuals against the closed form", "z / m", "(theory - numeric) / theory",
		residualSeries...); err != nil {
		return err
	}

	fmt.Println(report.Row("figures", "%s", cfg.Out))
	return nil
}

func coilResolution(cmd *cobra.Command, args []string) error {
	cfg, err := studyConfig(cmd, "coil")
	if err != nil {
		return err
	}
	return runCoilResolution(cfg)
}

func runCoilResolution(cfg *config.Config) error {
	var candidates []float64
	for p := 2; p <= 10; p++ {
		candidates = append(candidates, float64(1<<p))
	}

	span := 2 * cfg.Coil.Radius
	objective := func(v float64) float64 {
		asm, err := geom.Single(cfg.Coil.Radius, cfg.Coil.Current, int(v))
		if err != nil {
			return math.NaN()
		}
		samples := bfield.SampleLine(asm.Segments(), 0, span, cfg.Coil.Samples)
		zs := bfield.Zs(samples)
		res := bfield.Residuals(bfield.AxialProfile(asm, zs), bfield.Bz(samples))
		return bfield.MaxAbs(res)
	}

	points, best := sweep.Search(candidates, objective)
	if best < 0 {
		return fmt.Errorf("no resolution produced a finite error")
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = math.Log2(p.Value)
		ys[i] = math.Log10(math.Max(p.Score, 1e-18))
	}

	r := plots.New(cfg.Out, cfg.SVG)
	if _, err := r.Figure("resolution_error",
		"On-axis error against polygon resolution", "log2 resolution", "log10 max |relative error|",
		plots.Series{Label: "measured", X: xs, Y: ys},
		plots.Series{X: xs, Y: ys, Points: true},
	); err != nil {
		return err
	}

	fmt.Println(report.Section("discretization error"))
	for _, p := range points {
		fmt.Println(report.Row(fmt.Sprintf("resolution %.0f", p.Value), "max relative error %.3e", p.Score))
	}
	fmt.Println(report.Row("best", "resolution %.0f (%.3e)", points[best].Value, points[best].Score))
	fmt.Println(report.Row("figures", "%s", cfg.Out))
	return nil
}

func coilPlane(cmd *cobra.Command, args []string) error {
	cfg, err := studyConfig(cmd, "coil")
	if err != nil {
		return err
	}
	return runCoilPlane(cfg, pairPlane)
}

func runCoilPlane(cfg *config.Config, pair bool) error {
	var (
		asm    *geom.Assembly
		err    error
		label  = "single coil"
		prefix = "single_coil_plane"
	)
	if pair {
		asm, err = geom.HelmholtzPair(cfg.Coil.Radius, cfg.Coil.Current, cfg.Coil.Separation, cfg.Coil.Resolution)
		label = "helmholtz pair"
		prefix = "helmholtz_plane"
	} else {
		asm, err = geom.Single(cfg.Coil.Radius, cfg.Coil.Current, cfg.Coil.Resolution)
	}
	if err != nil {
		return err
	}

	half := 2 * cfg.Coil.Radius
	grid := bfield.SampleGrid(asm.Segments(), -half, half, cfg.Coil.GridN)

	r := plots.New(cfg.Out, cfg.SVG)
	if _, err := r.Quiver(prefix+"-quiver",
		"Field directions on the x=0 plane", "y / m", "z / m", grid); err != nil {
		return err
	}
	if _, err := r.Heatmap(prefix+"-magnitude",
		"Field magnitude on the x=0 plane", "y / m", "z / m", grid); err != nil {
		return err
	}

	strongest := 0.0
	for _, s := range grid.Samples {
		if m := r3.Norm(s.B); m > strongest {
			strongest = m
		}
	}

	fmt.Println(report.Section("plane map: " + label))
	fmt.Println(report.Row("grid", "%d x %d over ±%.1f m", cfg.Coil.GridN, cfg.Coil.GridN, half))
	fmt.Println(report.Row("max |B|", "%.6f (μ0 = 1)", strongest))
	fmt.Println(report.Row("figures", "%s", cfg.Out))
	return nil
}

func coilHelmholtz(cmd *cobra.Command, args []string) error {
	cfg, err := studyConfig(cmd, "coil")
	if err != nil {
		return err
	}
	seps, err := parseFloats(args, nil)
	if err != nil {
		return err
	}
	return runCoilHelmholtz(cfg, seps)
}

func runCoilHelmholtz(cfg *config.Config, seps []float64) error {
	R := cfg.Coil.Radius
	I := cfg.Coil.Current
	if len(seps) == 0 {
		seps = []float64{R / 2, R, 2 * R}
	}

	pair, err := geom.HelmholtzPair(R, I, cfg.Coil.Separation, cfg.Coil.Resolution)
	if err != nil {
		return err
	}
	segs := pair.Segments()

	samples := bfield.SampleLine(segs, -R, R, cfg.Coil.Samples)
	zs := bfield.Zs(samples)
	numeric := bfield.Bz(samples)

	center := bfield.Superpose(segs, r3.Vec{})
	ref := bfield.HelmholtzCenter(R, I)

	// homogeneity over the central ±0.05R region
	region := bfield.SampleLine(segs, -0.05*R, 0.05*R, 25)
	dev := bfield.MaxDeviation(region, center)

	r := plots.New(cfg.Out, cfg.SVG)
	if _, err := r.Figure("helmholtz_coils_on_axis",
		fmt.Sprintf("Helmholtz pair on axis, separation %.2f R", cfg.Coil.Separation/R),
		"z / m", "Bz (μ0 = 1)",
		plots.Series{Label: "numeric", X: zs, Y: numeric},
		plots.Series{Label: "(4/5)^(3/2) I/R", X: []float64{zs[0], zs[len(zs)-1]}, Y: []float64{ref, ref}},
	); err != nil {
		return err
	}

	fmt.Println(report.Section("helmholtz pair"))
	fmt.Println(report.Row("center Bz", "%.8f (reference %.8f)", center.Z, ref))
	fmt.Println(report.Row("center error", "%.3e relative", math.Abs(center.Z-ref)/ref))
	fmt.Println(report.Row("homogeneity", "max |ΔB| %.3e over ±0.05R (%.4f%% of center)",
		dev, 100*dev/center.Z))

	var sepSeries []plots.Series
	for _, d := range seps {
		p, err := geom.HelmholtzPair(R, I, d, cfg.Coil.Resolution)
		if err != nil {
			return err
		}
		s := bfield.SampleLine(p.Segments(), -2*R, 2*R, cfg.Coil.Samples)
		bz := bfield.Bz(s)
		sepSeries = append(sepSeries, plots.Series{
			Label: fmt.Sprintf("d = %.2f R", d/R),
			X:     bfield.Zs(s),
			Y:     bz,
		})
		fmt.Println(report.Row(fmt.Sprintf("d = %.2f R", d/R), "%s", profileShape(bz)))
	}
	if _, err := r.Figure("helmholtz_separations",
		"Axis profile against pair separation", "z / m", "Bz (μ0 = 1)",
		sepSeries...); err != nil {
		return err
	}

	fmt.Println(report.Row("figures", "%s", cfg.Out))
	return nil
}

// profileShape classifies an axis profile by its interior maxima: one
// central peak below the Helmholtz separation, a midpoint dip with two
// humps above it.
func profileShape(bz []float64) string {
	peaks := 0
	for i := 1; i < len(bz)-1; i++ {
		if bz[i] > bz[i-1] && bz[i] >= bz[i+1] {
			peaks++
		}
	}
	if peaks <= 1 {
		return "single peak"
	}
	return fmt.Sprintf("%d humps (midpoint dip)", peaks)
}

func coilStack(cmd *cobra.Command, args []string) error {
	cfg, err := studyConfig(cmd, "coil")
	if err != nil {
		return err
	}
	counts, err := parseInts(args, defaultCounts)
	if err != nil {
		return err
	}
	return runCoilStack(cfg, counts, halfSpan)
}

func runCoilStack(cfg *config.Config, counts []int, span float64) error {
	R := cfg.Coil.Radius
	I := cfg.Coil.Current
	r := plots.New(cfg.Out, cfg.SVG)

	fmt.Println(report.Section("coaxial stacks"))

	var series []plots.Series
	for _, n := range counts {
		asm, err := geom.Stack(n, span, R, I, cfg.Coil.Resolution)
		if err != nil {
			return err
		}
		s := bfield.SampleLine(asm.Segments(), -R, R, cfg.Coil.Samples)
		series = append(series, plots.Series{
			Label: fmt.Sprintf("%d coils", n),
			X:     bfield.Zs(s),
			Y:     bfield.Bz(s),
		})

		centerNumeric := bfield.Superpose(asm.Segments(), r3.Vec{}).Z
		centerTheory := bfield.Axial(asm, 0)
		fmt.Println(report.Row(fmt.Sprintf("%d coils", n),
			"center Bz %.6f (closed form %.6f)", centerNumeric, centerTheory))
	}

	if _, err := r.Figure("multiple_coils_on_axis",
		fmt.Sprintf("Coaxial stacks over ±%.1f m on axis", span),
		"z / m", "Bz (μ0 = 1)", series...); err != nil {
		return err
	}

	fmt.Println(report.Row("figures", "%s", cfg.Out))
	return nil
}
