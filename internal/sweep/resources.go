package sweep

import (
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"go.uber.org/zap"
)

// LogResources samples host CPU and memory usage and writes one log
// line. Batches call it after Execute so long sweeps leave a record of
// what they cost. Sampling failures are logged and otherwise ignored.
func LogResources(logger *zap.Logger) {
	percents, err := cpu.Percent(time.Millisecond*500, false)
	if err != nil {
		logger.Warn("cpu sample failed", zap.Error(err))
		return
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		logger.Warn("memory sample failed", zap.Error(err))
		return
	}

	var cpuPct float64
	if len(percents) > 0 {
		cpuPct = percents[0]
	}
	logger.Info("host resources",
		zap.Float64("cpu_pct", cpuPct),
		zap.Float64("mem_pct", vm.UsedPercent),
		zap.Uint64("mem_used_mb", vm.Used/(1024*1024)),
	)
}
