package ws

import (
	"time"

	"github.com/crazinneeees/svetofor/domain"
	"github.com/crazinneeees/svetofor/domain/event"
	"github.com/samber/lo"
)

// timeLayout is the clock format browsers display next to the lamp.
const timeLayout = "15:04:05"

const (
	typeStateUpdate = "state_update"
	typeColorChange = "color_change"
	typeUserUpdate  = "user_update"
)

// StateUpdate is the personal frame a session receives when it joins or
// gets promoted.
type StateUpdate struct {
	Type         string  `json:"type"`
	Color        string  `json:"color"`
	IsController bool    `json:"is_controller"`
	ControllerID *string `json:"controller_id"`
	Timestamp    string  `json:"timestamp"`
}

// ColorChange is broadcast to every session when the signal changes.
type ColorChange struct {
	Type      string `json:"type"`
	Color     string `json:"color"`
	Timestamp string `json:"timestamp"`
}

// UserUpdate is broadcast whenever the set of sessions changes.
type UserUpdate struct {
	Type         string  `json:"type"`
	TotalUsers   int     `json:"total_users"`
	ControllerID *string `json:"controller_id"`
}

// InboundFrame is the only message a client may send.
type InboundFrame struct {
	Type  string `json:"type"`
	Color string `json:"color"`
}

type StatusResponse struct {
	CurrentColor string  `json:"current_color"`
	TotalUsers   int     `json:"total_users"`
	ControllerID *string `json:"controller_id"`
}

type TransitionResponse struct {
	ID    string    `json:"id"`
	Color string    `json:"color"`
	Actor string    `json:"actor"`
	At    time.Time `json:"at"`
}

type HistoryResponse struct {
	Transitions []TransitionResponse `json:"transitions"`
	Cursor      *string              `json:"cursor"`
}

type SearchResponse struct {
	Transitions []TransitionResponse `json:"transitions"`
}

// toFrame converts a domain event into its wire representation.
// Unknown events are skipped rather than leaked to clients.
func toFrame(e event.DomainEvent) (any, bool) {
	switch evt := e.(type) {
	case event.StateSnapshot:
		return StateUpdate{
			Type:         typeStateUpdate,
			Color:        evt.Color.String(),
			IsController: evt.IsController,
			ControllerID: controllerID(evt.ControllerName),
			Timestamp:    evt.At.Format(timeLayout),
		}, true
	case event.ColorChanged:
		return ColorChange{
			Type:      typeColorChange,
			Color:     evt.Color.String(),
			Timestamp: evt.At.Format(timeLayout),
		}, true
	case event.PresenceChanged:
		return UserUpdate{
			Type:         typeUserUpdate,
			TotalUsers:   evt.TotalSessions,
			ControllerID: controllerID(evt.ControllerName),
		}, true
	default:
		return nil, false
	}
}

// controllerID maps an absent controller to JSON null.
func controllerID(name string) *string {
	if name == "" {
		return nil
	}
	return &name
}

func toTransitionResponses(transitions []domain.Transition) []TransitionResponse {
	return lo.Map(transitions, func(item domain.Transition, _ int) TransitionResponse {
		return TransitionResponse{
			ID:    item.ID.String(),
			Color: item.Color.String(),
			Actor: item.Actor,
			At:    item.At,
		}
	})
}
