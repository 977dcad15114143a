package sweep

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/kswierk/physlab/internal/integrators"
	"github.com/kswierk/physlab/internal/ode"
)

// Run is one oscillator configuration. The caller supplies a fresh system
// and fresh metrics per run; integrators carry scratch buffers and are
// constructed inside the worker.
type Run struct {
	Label      string
	System     ode.System
	X0         ode.State
	Config     ode.Config
	Integrator string
	Metrics    []ode.Metric
}

// Outcome pairs a run with its result. Err is set only for configuration
// or context failures; numerically flagged runs come back with a partial
// Result and nil Err.
type Outcome struct {
	Label  string
	Result *ode.Result
	Err    error
}

type Batch struct {
	logger  *zap.Logger
	workers int
}

func NewBatch(logger *zap.Logger) *Batch {
	return &Batch{
		logger:  logger,
		workers: runtime.NumCPU(),
	}
}

// Execute runs every configuration, at most `workers` at a time. The batch
// always completes: individual failures are logged and recorded in their
// outcome slot, never propagated as a batch failure.
func (b *Batch) Execute(ctx context.Context, runs []Run) []Outcome {
	outcomes := make([]Outcome, len(runs))

	sem := make(chan struct{}, b.workers)
	var wg sync.WaitGroup
	for i := range runs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			outcomes[idx] = b.one(ctx, runs[idx])
		}(i)
	}
	wg.Wait()

	return outcomes
}

func (b *Batch) one(ctx context.Context, run Run) Outcome {
	integ, err := integrators.ByName(run.Integrator)
	if err != nil {
		b.logger.Error("bad integrator", zap.String("run", run.Label), zap.Error(err))
		return Outcome{Label: run.Label, Err: err}
	}

	sim := ode.NewSimulator(run.System, integ)
	for _, m := range run.Metrics {
		sim.AddMetric(m)
	}

	res, err := sim.Run(ctx, run.X0, run.Config)
	if err != nil {
		b.logger.Error("run failed", zap.String("run", run.Label), zap.Error(err))
		return Outcome{Label: run.Label, Result: res, Err: err}
	}

	if res.Flagged() {
		b.logger.Warn("run flagged",
			zap.String("run", run.Label),
			zap.Int("samples", len(res.Times)),
			zap.String("first", res.Flags[0].Error()),
		)
	} else {
		b.logger.Debug("run complete",
			zap.String("run", run.Label),
			zap.Int("steps", res.StepsTaken),
		)
	}

	return Outcome{Label: run.Label, Result: res}
}
