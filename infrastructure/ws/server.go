// Package ws exposes the signal over WebSocket and plain HTTP.
// It owns connection lifecycles; all signal decisions stay in the runtime.
package ws

import (
	"context"
	_ "embed"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/crazinneeees/svetofor/domain"
	"github.com/crazinneeees/svetofor/observability"
	"github.com/crazinneeees/svetofor/services"
	"github.com/gorilla/websocket"
)

//go:embed static/index.html
var indexPage []byte

const (
	writeWait      = 10 * time.Second
	maxInboundSize = 512
	defaultLimit   = 20
	maxLimit       = 100
)

type Server struct {
	log                  *slog.Logger
	service              services.ISignalService
	monitoring           *observability.MonitoringManager
	connectionBufferSize int
	pingInterval         time.Duration
	upgrader             websocket.Upgrader
}

func NewServer(log *slog.Logger, service services.ISignalService,
	monitoring *observability.MonitoringManager,
	connectionBufferSize int, pingInterval time.Duration) *Server {
	return &Server{
		log:                  log,
		service:              service,
		monitoring:           monitoring,
		connectionBufferSize: connectionBufferSize,
		pingInterval:         pingInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The lamp page is served from anywhere on the LAN
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Routes registers every HTTP surface on the given mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /ws/{name}", s.handleSignal)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /history", s.handleHistory)
	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("GET /monitoring", s.handleMonitoring)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
}

// handleSignal upgrades the connection and joins the session.
// It registers a dedicated Sink in the coordinator's registry.
// This method blocks until the client disconnects or a network error occurs.
// Proper cleanup is ensured via a once-guarded disconnect to prevent leaks
// in the registry.
func (s *Server) handleSignal(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if strings.TrimSpace(name) == "" {
		http.Error(w, "display name required", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("WebSocket upgrade failed", "error", err)
		return
	}

	sink := NewSink(s.connectionBufferSize)
	session, err := s.service.Connect(r.Context(), name, sink)
	if err != nil {
		s.log.Error("Session refused", "name", name, "error", err)
		_ = conn.Close()
		return
	}
	s.monitoring.IncrConnected()

	var once sync.Once
	disconnect := func() {
		once.Do(func() {
			s.service.Disconnect(context.Background(), session.ID)
			s.monitoring.IncrDisconnected()
			_ = conn.Close()
		})
	}

	go s.writePump(conn, sink, disconnect)
	s.readPump(conn, session, disconnect)
}

// readPump drains inbound frames until the connection dies.
// Anything other than a well-formed color change is dropped without a
// reply; the sender keeps its stream and simply sees no effect.
func (s *Server) readPump(conn *websocket.Conn, session *domain.Session, disconnect func()) {
	defer disconnect()

	conn.SetReadLimit(maxInboundSize)
	pongWait := s.pingInterval * 2
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("Connection dropped", "session_id", session.ID, "error", err)
			}
			return
		}

		var frame InboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil || frame.Type != typeColorChange {
			s.log.Debug("Ignoring malformed frame", "session_id", session.ID)
			s.monitoring.IncrRejections()
			continue
		}

		if err := s.service.SetColor(context.Background(), session.ID, frame.Color); err != nil {
			// Refusals are silent on the wire
			s.log.Debug("Color change refused", "session_id", session.ID, "error", err)
			s.monitoring.IncrRejections()
		}
	}
}

// writePump serializes everything written to the connection: events from
// the sink and keepalive pings.
func (s *Server) writePump(conn *websocket.Conn, sink *Sink, disconnect func()) {
	ticker := time.NewTicker(s.pingInterval)
	defer func() {
		ticker.Stop()
		disconnect()
	}()

	for {
		select {
		case evt := <-sink.Events:
			frame, ok := toFrame(evt)
			if !ok {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(frame); err != nil {
				s.log.Debug("Write failed, dropping connection", "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexPage)
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	status := s.service.Status()
	writeJSON(w, http.StatusOK, StatusResponse{
		CurrentColor: status.Color.String(),
		TotalUsers:   status.TotalSessions,
		ControllerID: controllerID(status.ControllerName),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	var cursor *string
	if c := r.URL.Query().Get("cursor"); c != "" {
		cursor = &c
	}

	transitions, next, err := s.service.History(cursor)
	if err != nil {
		s.log.Error("History fetch failed", "error", err)
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, HistoryResponse{
		Transitions: toTransitionResponses(transitions),
		Cursor:      next,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	actor := r.URL.Query().Get("actor")
	if actor == "" {
		http.Error(w, "actor query parameter required", http.StatusBadRequest)
		return
	}

	limit := defaultLimit
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(parsed, maxLimit)
	}

	transitions, err := s.service.SearchByActor(r.Context(), actor, limit)
	if err != nil {
		s.log.Error("Search failed", "actor", actor, "error", err)
		http.Error(w, "search unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{
		Transitions: toTransitionResponses(transitions),
	})
}

func (s *Server) handleMonitoring(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.monitoring.GetLatest())
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
