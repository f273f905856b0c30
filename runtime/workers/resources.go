package workers

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/crazinneeees/svetofor/domain/event"
	"github.com/shirou/gopsutil/process"
)

// ResourceSampler reports process health metrics (CPU, RAM, Status) plus Go
// allocator figures at every metric interval.
type ResourceSampler struct {
	log            *slog.Logger
	telemetryChan  chan event.Event
	metricInterval time.Duration
}

func NewResourceSampler(log *slog.Logger, telemetryChan chan event.Event,
	metricInterval time.Duration) *ResourceSampler {
	return &ResourceSampler{
		log:            log,
		telemetryChan:  telemetryChan,
		metricInterval: metricInterval,
	}
}

func (w *ResourceSampler) Run(ctx context.Context) error {
	w.log.Info("Starting resource sampler worker")
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rss, cpu, status, err := getSelfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}

			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			select {
			case w.telemetryChan <- event.Event{
				Type:      event.ResourceSampleType,
				CreatedAt: time.Now().UTC(),
				Payload: event.ResourceSample{
					Cpu:        cpu,
					Ram:        rss,
					Status:     status,
					AllocMemMb: m.Alloc / 1024 / 1024,
					NumGC:      m.NumGC,
				},
			}:
			default:
				w.log.Debug("Observability telemetry event lost")
			}
		}
	}
}

// getSelfStats retrieves technical metrics (Memory, CPU, and OS Status) for the given process.
func getSelfStats(p *process.Process) (uint64, float64, string, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, "", err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, "", err
	}

	status, err := p.Status()
	if err != nil {
		return 0, 0, "", err
	}
	return memInfo.RSS, cpuPercent, status, nil
}
