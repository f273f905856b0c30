package event

import (
	"log/slog"
	"time"

	"github.com/crazinneeees/svetofor/errors"
)

// DeliveryRecorder receives fan-out outcomes.
// Implemented by the monitoring manager.
type DeliveryRecorder interface {
	AddDelivered(n int)
	AddFailed(n int)
}

// DeliveryReportHandler tracks fan-out outcomes and flags slow deliveries.
type DeliveryReportHandler struct {
	log              *slog.Logger
	recorder         DeliveryRecorder
	latencyThreshold time.Duration
}

func NewDeliveryReportHandler(log *slog.Logger, recorder DeliveryRecorder, latencyThreshold time.Duration) *DeliveryReportHandler {
	return &DeliveryReportHandler{log: log, recorder: recorder, latencyThreshold: latencyThreshold}
}

func (h *DeliveryReportHandler) Handle(e Event) {
	if e.Type != DeliveryReportType {
		return
	}
	payload, ok := e.Payload.(DeliveryReport)
	if !ok {
		h.log.Error(errors.ErrInvalidPayload.Error())
		return
	}

	h.recorder.AddDelivered(payload.Delivered)
	h.recorder.AddFailed(payload.Failed)

	h.log.Debug("telemetry: fanout delivery",
		"kind", payload.Kind,
		"delivered", payload.Delivered,
		"failed", payload.Failed,
		"elapsed_ms", payload.Elapsed.Milliseconds(),
	)

	if payload.Elapsed > h.latencyThreshold {
		h.log.Warn("slow fanout detected", "kind", payload.Kind, "elapsed", payload.Elapsed)
	}
}
