//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"github.com/crazinneeees/svetofor/domain"
	"github.com/crazinneeees/svetofor/domain/event"
	"github.com/google/uuid"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IRegistry tracks live sessions and their delivery sinks.
// Compound mutations (Add, Remove) are serialized by the coordinator;
// the read side is safe for concurrent use by the fan-out worker.
type IRegistry interface {
	Add(session *domain.Session, sink EventSink) bool
	Remove(id uuid.UUID) (removed bool, promoted *domain.Session)
	Get(id uuid.UUID) (*domain.Session, bool)
	GetSink(id uuid.UUID) (EventSink, bool)
	Controller() *domain.Session
	Size() int
	Sinks() []EventSink
	Sessions() []*domain.Session
}
