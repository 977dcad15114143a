package ode

import (
	"context"
	"fmt"
	"math"
)

type Simulator struct {
	sys        System
	integrator Integrator
	metrics    []Metric
}

func NewSimulator(sys System, integrator Integrator) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		metrics:    make([]Metric, 0),
	}
}

func (s *Simulator) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

// Run integrates from x0 over cfg.Duration, recording one sample every
// 1/cfg.SampleRate seconds. The integrator may take many internal steps
// between samples; adaptive steppers are clamped so every sample instant
// is hit exactly. Numerical trouble mid-run is recorded on the result as
// flags and ends sampling early; only configuration problems and context
// cancellation return an error.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(x0) != s.sys.StateDim() {
		return nil, fmt.Errorf("%w: state has %d components, system has %d",
			ErrDimensionMismatch, len(x0), s.sys.StateDim())
	}

	h := 1.0 / cfg.SampleRate
	samples := int(math.Round(cfg.Duration * cfg.SampleRate))
	result := &Result{
		States:  make([]State, 0, samples+1),
		Times:   make([]float64, 0, samples+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	maxDt := cfg.MaxDt
	if maxDt <= 0 || maxDt > h {
		maxDt = h
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt
	if dt <= 0 || dt > maxDt {
		dt = maxDt
	}

	record := func(x State, t float64) {
		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
		for _, m := range s.metrics {
			m.Observe(x, t)
		}
	}
	record(x, t)

	initialEnergy := s.computeEnergy(x)

	adaptive, canAdapt := s.integrator.(AdaptiveIntegrator)

sampling:
	for i := 1; i <= samples; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		target := float64(i) * h
		for target-t > h*1e-9 {
			step := math.Min(dt, target-t)

			if cfg.Adaptive && canAdapt {
				xNew, took, next, err := adaptive.StepAdaptive(s.sys, x, t, step, cfg.Tolerance)
				if err != nil {
					result.Flags = append(result.Flags, Flag{Step: result.StepsTaken, Time: t, Message: err.Error()})
					break sampling
				}
				x = xNew
				t += took
				if next < cfg.MinDt {
					result.Flags = append(result.Flags, Flag{Step: result.StepsTaken, Time: t, Message: "adaptive step collapsed below floor"})
					break sampling
				}
				dt = math.Min(next, maxDt)
			} else {
				x = s.integrator.Step(s.sys, x, t, step)
				t += step
			}
			result.StepsTaken++

			if cfg.ValidateState && !x.IsValid() {
				result.Flags = append(result.Flags, Flag{Step: result.StepsTaken, Time: t, Message: "invalid state (NaN/Inf)"})
				break sampling
			}
		}
		t = target
		record(x, t)
	}

	if initialEnergy != 0 && x.IsValid() {
		finalEnergy := s.computeEnergy(x)
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %g", ErrBadConfig, cfg.SampleRate)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrBadConfig, cfg.Duration)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive for adaptive stepping", ErrBadConfig)
	}
	if cfg.MaxDt > 0 && cfg.MaxDt < cfg.MinDt {
		return fmt.Errorf("%w: max dt %g below min dt %g", ErrBadConfig, cfg.MaxDt, cfg.MinDt)
	}
	return nil
}

func (s *Simulator) computeEnergy(x State) float64 {
	if h, ok := s.sys.(Hamiltonian); ok {
		return h.Energy(x)
	}
	return 0
}
