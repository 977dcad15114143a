package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kswierk/physlab/internal/config"
	"github.com/kswierk/physlab/internal/report"
	"github.com/kswierk/physlab/internal/sweep"
)

// studies maps scenario kinds to runners. Batch entries get the same
// study defaults the bare subcommands apply.
var studies = map[string]func(*config.Config) error{
	"coil axis":        func(cfg *config.Config) error { return runCoilAxis(cfg, defaultResolutions) },
	"coil resolution":  runCoilResolution,
	"coil plane":       func(cfg *config.Config) error { return runCoilPlane(cfg, false) },
	"coil helmholtz":   func(cfg *config.Config) error { return runCoilHelmholtz(cfg, nil) },
	"coil stack":       func(cfg *config.Config) error { return runCoilStack(cfg, defaultCounts, 5) },
	"pend run":         func(cfg *config.Config) error { return runPendRun(cfg, false) },
	"pend period":      runPendPeriod,
	"pend damping":     func(cfg *config.Config) error { return runPendDamping(cfg, defaultDampings) },
	"pend driving":     func(cfg *config.Config) error { return runPendDriving(cfg, defaultAmps) },
	"pend sensitivity": func(cfg *config.Config) error { return runPendSensitivity(cfg, 0) },
	"pend spectrum":    func(cfg *config.Config) error { return runPendSpectrum(cfg, 2.0) },
}

func studyKinds() []string {
	kinds := make([]string, 0, len(studies))
	for k := range studies {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := config.LoadScenario(args[0])
	if err != nil {
		return err
	}
	name := sc.Name
	if name == "" {
		name = args[0]
	}
	fmt.Println(report.Section("scenario " + name))

	start := time.Now()
	failed := 0
	for i, st := range sc.Studies {
		run, ok := studies[st.Kind]
		if !ok {
			logger.Error("unknown study kind",
				zap.String("kind", st.Kind), zap.Strings("known", studyKinds()))
			failed++
			continue
		}
		// command-line output flags override the scenario file
		if cmd.Flags().Changed("out") {
			st.Config.Out = outDir
		}
		if cmd.Flags().Changed("svg") {
			st.Config.SVG = svgOut
		}
		logger.Info("study",
			zap.Int("index", i+1), zap.Int("of", len(sc.Studies)), zap.String("label", st.Label))
		if err := run(st.Config); err != nil {
			logger.Error("study failed", zap.String("label", st.Label), zap.Error(err))
			failed++
		}
	}

	sweep.LogResources(logger)

	fmt.Println(report.Section("scenario summary"))
	fmt.Println(report.Row("studies", "%d run, %d failed in %v",
		len(sc.Studies), failed, time.Since(start).Round(time.Millisecond)))
	if failed > 0 {
		return fmt.Errorf("%d of %d studies failed", failed, len(sc.Studies))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	families := config.Families()
	if len(args) == 1 {
		families = []string{args[0]}
	}
	for _, fam := range families {
		names := config.ListPresets(fam)
		if len(names) == 0 {
			return fmt.Errorf("unknown preset family %q (have %v)", fam, config.Families())
		}
		fmt.Println(report.Section(fam + " presets"))
		for _, name := range names {
			fmt.Println(report.Row(name, "%s", presetSummary(fam, config.GetPreset(fam, name))))
		}
	}
	return nil
}

func presetSummary(family string, cfg *config.Config) string {
	switch family {
	case "pend":
		p := cfg.Pendulum
		return fmt.Sprintf("θ0=%g ω0=%g q=%g F=%g Ω=%g", p.Theta, p.Omega0, p.Damping, p.Drive, p.DriveFreq)
	case "coil":
		c := cfg.Coil
		return fmt.Sprintf("R=%g I=%g N=%d d=%g", c.Radius, c.Current, c.Resolution, c.Separation)
	}
	return ""
}
