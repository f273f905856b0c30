package observability

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// TransitionInfo représente une transition récente du signal
type TransitionInfo struct {
	Color     string `json:"color"`
	Actor     string `json:"actor"`
	Timestamp string `json:"timestamp"`
}

// MonitoringStats agrège toutes les métriques pour l'UI
type MonitoringStats struct {
	// --- SIGNAL METRICS ---
	CurrentSessions   int    `json:"current_sessions"`
	TotalConnected    uint64 `json:"total_connected"`
	TotalDisconnected uint64 `json:"total_disconnected"`
	ColorChanges      uint64 `json:"color_changes"`
	Rejections        uint64 `json:"rejections"`

	// --- DELIVERY METRICS ---
	EventsDelivered  uint64 `json:"events_delivered"`
	DeliveryFailures uint64 `json:"delivery_failures"`

	// --- SYSTEM METRICS ---
	CpuPercent float64 `json:"cpu_percent"`
	RamBytes   uint64  `json:"ram_bytes"`
	PidStatus  string  `json:"pid_status"`
	AllocMemMb uint64  `json:"alloc_mem_mb"`
	NumGC      uint32  `json:"num_gc"`

	RecentTransitions []TransitionInfo `json:"recent_transitions"`
}

// MonitoringManager gère la télémétrie en temps réel
type MonitoringManager struct {
	log         *slog.Logger
	mu          sync.RWMutex
	latestStats MonitoringStats

	// Compteurs atomiques alimentés par le transport et les handlers
	TotalConnected    uint64
	TotalDisconnected uint64
	ColorChanges      uint64
	Rejections        uint64
	EventsDelivered   uint64
	DeliveryFailures  uint64
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	return &MonitoringManager{
		log: log,
		latestStats: MonitoringStats{
			RecentTransitions: make([]TransitionInfo, 0),
		},
	}
}

func (mm *MonitoringManager) IncrConnected() {
	atomic.AddUint64(&mm.TotalConnected, 1)
}

func (mm *MonitoringManager) IncrDisconnected() {
	atomic.AddUint64(&mm.TotalDisconnected, 1)
}

func (mm *MonitoringManager) IncrColorChanges() {
	atomic.AddUint64(&mm.ColorChanges, 1)
}

func (mm *MonitoringManager) IncrRejections() {
	atomic.AddUint64(&mm.Rejections, 1)
}

func (mm *MonitoringManager) AddDelivered(n int) {
	atomic.AddUint64(&mm.EventsDelivered, uint64(n))
}

func (mm *MonitoringManager) AddFailed(n int) {
	atomic.AddUint64(&mm.DeliveryFailures, uint64(n))
}

// SetCurrentSessions met à jour la jauge de présence
func (mm *MonitoringManager) SetCurrentSessions(total int) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.latestStats.CurrentSessions = total
}

// SetResources absorbe un échantillon du resource sampler
func (mm *MonitoringManager) SetResources(cpu float64, ram uint64, status string, allocMemMb uint64, numGC uint32) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.latestStats.CpuPercent = cpu
	mm.latestStats.RamBytes = ram
	mm.latestStats.PidStatus = status
	mm.latestStats.AllocMemMb = allocMemMb
	mm.latestStats.NumGC = numGC
}

// AddTransition ajoute une transition récente à la liste (thread-safe)
func (mm *MonitoringManager) AddTransition(color, actor string) {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	transition := TransitionInfo{
		Color:     color,
		Actor:     actor,
		Timestamp: time.Now().Format("15:04:05"),
	}

	// Ajouter au début de la liste
	mm.latestStats.RecentTransitions = append([]TransitionInfo{transition}, mm.latestStats.RecentTransitions...)

	// Garder seulement les 20 dernières
	if len(mm.latestStats.RecentTransitions) > 20 {
		mm.latestStats.RecentTransitions = mm.latestStats.RecentTransitions[:20]
	}
}

func (mm *MonitoringManager) GetLatest() MonitoringStats {
	mm.mu.RLock()
	stats := mm.latestStats
	mm.mu.RUnlock()

	// Fusionner les compteurs atomiques dans la copie
	stats.TotalConnected = atomic.LoadUint64(&mm.TotalConnected)
	stats.TotalDisconnected = atomic.LoadUint64(&mm.TotalDisconnected)
	stats.ColorChanges = atomic.LoadUint64(&mm.ColorChanges)
	stats.Rejections = atomic.LoadUint64(&mm.Rejections)
	stats.EventsDelivered = atomic.LoadUint64(&mm.EventsDelivered)
	stats.DeliveryFailures = atomic.LoadUint64(&mm.DeliveryFailures)

	mm.log.Debug("📊 GetLatest() appelé",
		"sessions", stats.CurrentSessions,
		"color_changes", stats.ColorChanges,
		"delivered", stats.EventsDelivered,
	)
	return stats
}
