package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultRate       = 500.0
	DefaultDuration   = 60.0
	DefaultDt         = 0.002
	DefaultTolerance  = 1e-8
	DefaultTheta      = 0.01
	DefaultOmega0     = 1.0
	DefaultDriveFreq  = 2.0 / 3.0
	DefaultRadius     = 1.0
	DefaultCurrent    = 1.0
	DefaultResolution = 64
	DefaultSamples    = 50
	DefaultGridN      = 20
	DefaultOut        = "figures"
)

// ErrInvalid marks configuration values no study can run with.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Integrator string         `yaml:"integrator"`
	Rate       float64        `yaml:"rate"`
	Duration   float64        `yaml:"duration"`
	Dt         float64        `yaml:"dt"`
	Tolerance  float64        `yaml:"tolerance"`
	Adaptive   bool           `yaml:"adaptive"`
	Out        string         `yaml:"out"`
	SVG        bool           `yaml:"svg"`
	Pendulum   PendulumConfig `yaml:"pendulum"`
	Coil       CoilConfig     `yaml:"coil"`
}

type PendulumConfig struct {
	Omega0    float64 `yaml:"omega0"`
	Damping   float64 `yaml:"damping"`
	Drive     float64 `yaml:"drive"`
	DriveFreq float64 `yaml:"drive_freq"`
	Theta     float64 `yaml:"theta"`
	Omega     float64 `yaml:"omega"`
}

type CoilConfig struct {
	Radius     float64 `yaml:"radius"`
	Current    float64 `yaml:"current"`
	Resolution int     `yaml:"resolution"`
	Separation float64 `yaml:"separation"`
	Samples    int     `yaml:"samples"`
	GridN      int     `yaml:"grid_n"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: "rk45",
		Rate:       DefaultRate,
		Duration:   DefaultDuration,
		Dt:         DefaultDt,
		Tolerance:  DefaultTolerance,
		Adaptive:   true,
		Out:        DefaultOut,
		Pendulum: PendulumConfig{
			Omega0:    DefaultOmega0,
			DriveFreq: DefaultDriveFreq,
			Theta:     DefaultTheta,
		},
		Coil: CoilConfig{
			Radius:     DefaultRadius,
			Current:    DefaultCurrent,
			Resolution: DefaultResolution,
			Separation: DefaultRadius,
			Samples:    DefaultSamples,
			GridN:      DefaultGridN,
		},
	}
}

// Load reads a YAML file over the defaults, so files only need to name
// the values they change.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Rate <= 0:
		return fmt.Errorf("%w: rate %g", ErrInvalid, c.Rate)
	case c.Duration <= 0:
		return fmt.Errorf("%w: duration %g", ErrInvalid, c.Duration)
	case c.Dt <= 0:
		return fmt.Errorf("%w: dt %g", ErrInvalid, c.Dt)
	case c.Tolerance <= 0:
		return fmt.Errorf("%w: tolerance %g", ErrInvalid, c.Tolerance)
	case c.Pendulum.Omega0 <= 0:
		return fmt.Errorf("%w: omega0 %g", ErrInvalid, c.Pendulum.Omega0)
	case c.Coil.Radius <= 0:
		return fmt.Errorf("%w: radius %g", ErrInvalid, c.Coil.Radius)
	case c.Coil.Current == 0:
		return fmt.Errorf("%w: current 0", ErrInvalid)
	case c.Coil.Resolution < 3:
		return fmt.Errorf("%w: resolution %d", ErrInvalid, c.Coil.Resolution)
	case c.Coil.Separation <= 0:
		return fmt.Errorf("%w: separation %g", ErrInvalid, c.Coil.Separation)
	case c.Coil.Samples < 2:
		return fmt.Errorf("%w: samples %d", ErrInvalid, c.Coil.Samples)
	case c.Coil.GridN < 2:
		return fmt.Errorf("%w: grid_n %d", ErrInvalid, c.Coil.GridN)
	}
	return nil
}

// InitState is the oscillator's starting point {θ, ω}.
func (c *Config) InitState() []float64 {
	return []float64{c.Pendulum.Theta, c.Pendulum.Omega}
}
