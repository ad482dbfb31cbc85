package monitoring

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

var startTime = time.Now()

// HealthChecker tracks environment-server liveness for the health endpoint.
type HealthChecker struct {
	mu           sync.RWMutex
	lastStep     time.Time
	seriesLoaded bool
	episodeCount int
	errors       []string
}

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	SeriesLoaded bool      `json:"series_loaded"`
	LastStep     time.Time `json:"last_step,omitempty"`
	EpisodeCount int       `json:"episode_count"`
	Uptime       string    `json:"uptime"`
	Errors       []string  `json:"errors,omitempty"`
}

// NewHealthChecker creates a health checker.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		errors: make([]string, 0),
	}
}

// SetSeriesLoaded marks the market series as loaded and ready.
func (h *HealthChecker) SetSeriesLoaded(count int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seriesLoaded = true
	h.episodeCount = count
}

// RecordStep notes a served step for liveness reporting.
func (h *HealthChecker) RecordStep() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastStep = time.Now()
}

// RecordError appends an error to the health payload.
func (h *HealthChecker) RecordError(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, msg)
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := "healthy"
	if !h.seriesLoaded {
		status = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if len(h.errors) > 0 {
		status = "unhealthy"
		w.WriteHeader(http.StatusInternalServerError)
	}

	health := HealthStatus{
		Status:       status,
		Timestamp:    time.Now(),
		SeriesLoaded: h.seriesLoaded,
		LastStep:     h.lastStep,
		EpisodeCount: h.episodeCount,
		Uptime:       time.Since(startTime).String(),
		Errors:       h.errors,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}
