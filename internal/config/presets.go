package config

import "math"

// Presets are named starting points, keyed by study family then name.
// Each is applied over the defaults, so only deviations are listed.
var Presets = map[string]map[string]*Config{
	"pend": {
		"small": {
			Pendulum: PendulumConfig{Omega0: 1, DriveFreq: 2.0 / 3.0, Theta: 0.01},
		},
		"quarter": {
			Pendulum: PendulumConfig{Omega0: 1, DriveFreq: 2.0 / 3.0, Theta: math.Pi / 2},
		},
		"damped": {
			Pendulum: PendulumConfig{Omega0: 1, DriveFreq: 2.0 / 3.0, Theta: 0.01, Damping: 1},
		},
		"driven": {
			Duration: 100,
			Pendulum: PendulumConfig{Omega0: 1, DriveFreq: 2.0 / 3.0, Theta: 0.01, Drive: 1.2},
		},
		"chaotic": {
			Duration: 100,
			Pendulum: PendulumConfig{Omega0: 1, DriveFreq: 2.0 / 3.0, Theta: 0.01, Damping: 0.5, Drive: 1.465},
		},
		"sensitive": {
			Duration: 1000,
			Pendulum: PendulumConfig{Omega0: 1, DriveFreq: 2.0 / 3.0, Theta: 0.2, Damping: 0.5, Drive: 1.2},
		},
	},
	"coil": {
		"single": {
			Coil: CoilConfig{Radius: 1, Current: 1, Resolution: 64, Separation: 1, Samples: 50, GridN: 20},
		},
		"helmholtz": {
			Coil: CoilConfig{Radius: 1, Current: 1, Resolution: 64, Separation: 1, Samples: 40, GridN: 25},
		},
		"tight": {
			Coil: CoilConfig{Radius: 1, Current: 1, Resolution: 64, Separation: 0.5, Samples: 40, GridN: 25},
		},
		"wide": {
			Coil: CoilConfig{Radius: 1, Current: 1, Resolution: 64, Separation: 2, Samples: 40, GridN: 25},
		},
	},
}

// GetPreset returns the named preset completed with defaults for every
// field the preset leaves unset, or nil when no such preset exists.
func GetPreset(family, name string) *Config {
	familyPresets, ok := Presets[family]
	if !ok {
		return nil
	}
	preset, ok := familyPresets[name]
	if !ok {
		return nil
	}

	cfg := DefaultConfig()
	if preset.Integrator != "" {
		cfg.Integrator = preset.Integrator
	}
	if preset.Rate > 0 {
		cfg.Rate = preset.Rate
	}
	if preset.Duration > 0 {
		cfg.Duration = preset.Duration
	}
	if preset.Dt > 0 {
		cfg.Dt = preset.Dt
	}
	if preset.Tolerance > 0 {
		cfg.Tolerance = preset.Tolerance
	}
	if preset.Out != "" {
		cfg.Out = preset.Out
	}
	if preset.Pendulum != (PendulumConfig{}) {
		cfg.Pendulum = preset.Pendulum
	}
	if preset.Coil != (CoilConfig{}) {
		cfg.Coil = preset.Coil
	}
	return cfg
}

// ListPresets names the presets of one family.
func ListPresets(family string) []string {
	familyPresets, ok := Presets[family]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(familyPresets))
	for name := range familyPresets {
		names = append(names, name)
	}
	return names
}

// Families names the preset groups.
func Families() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
