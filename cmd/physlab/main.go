package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kswierk/physlab/internal/config"
	"github.com/kswierk/physlab/internal/integrators"
	"github.com/kswierk/physlab/internal/logging"
	"github.com/kswierk/physlab/internal/ode"
	"github.com/kswierk/physlab/internal/pendulum"
)

var (
	outDir     string
	svgOut     bool
	verbose    bool
	configFile string
	preset     string

	rate        float64
	duration    float64
	timestep    float64
	tolerance   float64
	integrator  string
	theta       float64
	omegaInit   float64
	naturalFreq float64
	damping     float64
	drive       float64
	driveFreq   float64

	radius     float64
	current    float64
	resolution int
	separation float64
	samples    int
	gridN      int

	pairPlane bool
	quickLook bool
	delta     float64
	freqMax   float64
	halfSpan  float64

	logger *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "physlab",
		Short: "coil field and pendulum studies",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.New(verbose)
		},
	}
	rootCmd.PersistentFlags().StringVar(&outDir, "out", config.DefaultOut, "output directory for figures")
	rootCmd.PersistentFlags().BoolVar(&svgOut, "svg", false, "write SVG figures instead of PNG")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")

	coilCmd := &cobra.Command{
		Use:   "coil",
		Short: "magnetic fields of discretized current loops",
	}

	axisCmd := &cobra.Command{
		Use:   "axis [resolution...]",
		Short: "on-axis field against the closed form",
		Args:  cobra.ArbitraryArgs,
		RunE:  coilAxis,
	}
	addCoilFlags(axisCmd)

	resolutionCmd := &cobra.Command{
		Use:   "resolution",
		Short: "on-axis error against polygon resolution",
		RunE:  coilResolution,
	}
	addCoilFlags(resolutionCmd)

	planeCmd := &cobra.Command{
		Use:   "plane",
		Short: "field map on the x=0 plane",
		RunE:  coilPlane,
	}
	addCoilFlags(planeCmd)
	planeCmd.Flags().BoolVar(&pairPlane, "pair", false, "map the helmholtz pair instead of a single coil")

	helmholtzCmd := &cobra.Command{
		Use:   "helmholtz [separation...]",
		Short: "pair homogeneity and the separation transition",
		Args:  cobra.ArbitraryArgs,
		RunE:  coilHelmholtz,
	}
	addCoilFlags(helmholtzCmd)

	stackCmd := &cobra.Command{
		Use:   "stack [count...]",
		Short: "on-axis field of coaxial coil stacks",
		Args:  cobra.ArbitraryArgs,
		RunE:  coilStack,
	}
	addCoilFlags(stackCmd)
	stackCmd.Flags().Float64Var(&halfSpan, "span", 5, "stack half-span along z")

	coilCmd.AddCommand(axisCmd, resolutionCmd, planeCmd, helmholtzCmd, stackCmd)

	pendCmd := &cobra.Command{
		Use:   "pend",
		Short: "driven damped pendulum studies",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "one configuration: trace, energy, phase portrait",
		RunE:  pendRun,
	}
	addPendFlags(runCmd)
	runCmd.Flags().BoolVar(&quickLook, "ascii", false, "print terminal charts")

	periodCmd := &cobra.Command{
		Use:   "period",
		Short: "period against initial deflection over (0, π]",
		RunE:  pendPeriod,
	}
	addPendFlags(periodCmd)

	dampingCmd := &cobra.Command{
		Use:   "damping [q...]",
		Short: "traces and energy decay for a set of damping values",
		Args:  cobra.ArbitraryArgs,
		RunE:  pendDamping,
	}
	addPendFlags(dampingCmd)

	drivingCmd := &cobra.Command{
		Use:   "driving [amplitude...]",
		Short: "driven responses, Poincaré section, bifurcation sweep",
		Args:  cobra.ArbitraryArgs,
		RunE:  pendDriving,
	}
	addPendFlags(drivingCmd)

	sensitivityCmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "twin runs with a perturbed start, divergence rate",
		RunE:  pendSensitivity,
	}
	addPendFlags(sensitivityCmd)
	sensitivityCmd.Flags().Float64Var(&delta, "delta", 1e-5, "initial deflection offset of the twin run")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum",
		Short: "power spectrum of the deflection",
		RunE:  pendSpectrum,
	}
	addPendFlags(spectrumCmd)
	spectrumCmd.Flags().Float64Var(&freqMax, "fmax", 2.0, "upper frequency of the plotted band (hz)")

	pendCmd.AddCommand(runCmd, periodCmd, dampingCmd, drivingCmd, sensitivityCmd, spectrumCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run the studies listed in a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [family]",
		Short: "list named configurations",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	rootCmd.AddCommand(coilCmd, pendCmd, batchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&rate, "rate", config.DefaultRate, "output sample rate (hz)")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	cmd.Flags().Float64Var(&timestep, "dt", config.DefaultDt, "initial or fixed timestep")
	cmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "adaptive error tolerance")
	cmd.Flags().StringVar(&integrator, "integrator", "rk45", fmt.Sprintf("integrator %v", integrators.Names()))
}

func addPendFlags(cmd *cobra.Command) {
	addSimFlags(cmd)
	cmd.Flags().Float64Var(&theta, "theta", config.DefaultTheta, "initial deflection (rad)")
	cmd.Flags().Float64Var(&omegaInit, "omega", 0, "initial angular velocity")
	cmd.Flags().Float64Var(&naturalFreq, "omega0", config.DefaultOmega0, "natural frequency")
	cmd.Flags().Float64Var(&damping, "q", 0, "damping coefficient")
	cmd.Flags().Float64Var(&drive, "drive", 0, "driving amplitude")
	cmd.Flags().Float64Var(&driveFreq, "drive-freq", config.DefaultDriveFreq, "driving angular frequency")
}

func addCoilFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&radius, "radius", config.DefaultRadius, "coil radius")
	cmd.Flags().Float64Var(&current, "current", config.DefaultCurrent, "coil current")
	cmd.Flags().IntVar(&resolution, "resolution", config.DefaultResolution, "polygon resolution (half the segment count)")
	cmd.Flags().Float64Var(&separation, "separation", config.DefaultRadius, "pair separation")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "axis sample count")
	cmd.Flags().IntVar(&gridN, "grid", config.DefaultGridN, "plane grid size per side")
}

// studyConfig assembles the effective configuration: defaults, then
// preset, then config file, with explicitly set flags winning over all.
func studyConfig(cmd *cobra.Command, family string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(family, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(family))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("rate") {
		cfg.Rate = rate
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("dt") {
		cfg.Dt = timestep
	}
	if flags.Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("theta") {
		cfg.Pendulum.Theta = theta
	}
	if flags.Changed("omega") {
		cfg.Pendulum.Omega = omegaInit
	}
	if flags.Changed("omega0") {
		cfg.Pendulum.Omega0 = naturalFreq
	}
	if flags.Changed("q") {
		cfg.Pendulum.Damping = damping
	}
	if flags.Changed("drive") {
		cfg.Pendulum.Drive = drive
	}
	if flags.Changed("drive-freq") {
		cfg.Pendulum.DriveFreq = driveFreq
	}
	if flags.Changed("radius") {
		cfg.Coil.Radius = radius
	}
	if flags.Changed("current") {
		cfg.Coil.Current = current
	}
	if flags.Changed("resolution") {
		cfg.Coil.Resolution = resolution
	}
	if flags.Changed("separation") {
		cfg.Coil.Separation = separation
	}
	if flags.Changed("samples") {
		cfg.Coil.Samples = samples
	}
	if flags.Changed("grid") {
		cfg.Coil.GridN = gridN
	}
	if flags.Changed("out") {
		cfg.Out = outDir
	}
	if flags.Changed("svg") {
		cfg.SVG = svgOut
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func odeConfig(cfg *config.Config) ode.Config {
	oc := ode.DefaultConfig()
	oc.SampleRate = cfg.Rate
	oc.Duration = cfg.Duration
	oc.Dt = cfg.Dt
	oc.Tolerance = cfg.Tolerance
	oc.Adaptive = cfg.Adaptive
	return oc
}

func newPendulum(cfg *config.Config) *pendulum.Pendulum {
	p := pendulum.New()
	p.Omega0 = cfg.Pendulum.Omega0
	p.Damping = cfg.Pendulum.Damping
	p.Drive = cfg.Pendulum.Drive
	p.DriveFreq = cfg.Pendulum.DriveFreq
	return p
}

func parseFloats(args []string, fallback []float64) ([]float64, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q: %w", a, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseInts(args []string, fallback []int) ([]int, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("bad value %q: %w", a, err)
		}
		out[i] = v
	}
	return out, nil
}
