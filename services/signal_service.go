//go:generate go run go.uber.org/mock/mockgen -source=signal_service.go -destination=../mocks/mock_signal_service.go -package=mocks
package services

import (
	"context"

	"github.com/crazinneeees/svetofor/contract"
	"github.com/crazinneeees/svetofor/domain"
	"github.com/crazinneeees/svetofor/runtime"
	"github.com/google/uuid"
)

type ISignalService interface {
	Connect(ctx context.Context, name string, sink contract.EventSink) (*domain.Session, error)
	Disconnect(ctx context.Context, id uuid.UUID)
	SetColor(ctx context.Context, id uuid.UUID, color string) error
	Status() domain.StatusSnapshot
	History(cursor *string) ([]domain.Transition, *string, error)
	SearchByActor(ctx context.Context, actor string, limit int) ([]domain.Transition, error)
}

type SignalService struct {
	coordinator *runtime.Coordinator
}

func NewSignalService(c *runtime.Coordinator) *SignalService {
	return &SignalService{coordinator: c}
}

func (s *SignalService) Connect(ctx context.Context, name string, sink contract.EventSink) (*domain.Session, error) {
	return s.coordinator.Connect(ctx, name, sink)
}

func (s *SignalService) Disconnect(ctx context.Context, id uuid.UUID) {
	s.coordinator.Disconnect(ctx, id)
}

func (s *SignalService) SetColor(ctx context.Context, id uuid.UUID, color string) error {
	return s.coordinator.SetColor(ctx, id, color)
}

func (s *SignalService) Status() domain.StatusSnapshot {
	return s.coordinator.Status()
}

func (s *SignalService) History(cursor *string) ([]domain.Transition, *string, error) {
	return s.coordinator.History(cursor)
}

func (s *SignalService) SearchByActor(ctx context.Context, actor string, limit int) ([]domain.Transition, error) {
	return s.coordinator.SearchByActor(ctx, actor, limit)
}
