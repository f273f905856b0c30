package event

import (
	"log/slog"

	"github.com/crazinneeees/svetofor/errors"
)

// ResourceRecorder receives process resource samples.
// Implemented by the monitoring manager.
type ResourceRecorder interface {
	SetResources(cpu float64, ram uint64, status string, allocMemMb uint64, numGC uint32)
}

// ResourceSampleHandler forwards process samples to the monitoring manager
// so they appear in the stats endpoint alongside the counters.
type ResourceSampleHandler struct {
	log      *slog.Logger
	recorder ResourceRecorder
}

func NewResourceSampleHandler(log *slog.Logger, recorder ResourceRecorder) *ResourceSampleHandler {
	return &ResourceSampleHandler{log: log, recorder: recorder}
}

func (h *ResourceSampleHandler) Handle(event Event) {
	switch event.Type {
	case ResourceSampleType:
		payload, ok := event.Payload.(ResourceSample)
		if !ok {
			h.log.Error(errors.ErrInvalidPayload.Error())
			return
		}
		h.recorder.SetResources(payload.Cpu, payload.Ram, payload.Status, payload.AllocMemMb, payload.NumGC)
	}
}
