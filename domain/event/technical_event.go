package event

import "time"

type Type string

const (
	RestartedAfterPanicType Type = "WORKER_RESTARTED_AFTER_PANIC"
	ChannelCapacityType     Type = "CHANNEL_CAPACITY"
	ResourceSampleType      Type = "RESOURCE_SAMPLE"
	DeliveryReportType      Type = "DELIVERY_REPORT"
)

// Event carries runtime telemetry through the telemetry channel.
// It is observability data, not domain state.
type Event struct {
	Type      Type
	CreatedAt time.Time
	Payload   any
}

type WorkerRestartedAfterPanic struct {
	WorkerName string
}

type ChannelCapacity struct {
	ChannelName string
	Capacity    int
	Length      int
}

// ResourceSample is a periodic snapshot of the serving process.
type ResourceSample struct {
	Cpu        float64
	Ram        uint64
	Status     string
	AllocMemMb uint64
	NumGC      uint32
}

// DeliveryReport summarizes the fan-out of one envelope.
type DeliveryReport struct {
	Kind      Kind
	Delivered int
	Failed    int
	Elapsed   time.Duration
}
