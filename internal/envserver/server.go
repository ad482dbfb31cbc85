package envserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hoangnd25/glidepath/internal/episode"
	"github.com/hoangnd25/glidepath/internal/monitoring"
	"github.com/hoangnd25/glidepath/internal/policy"
	"github.com/hoangnd25/glidepath/internal/sim"
)

// Server exposes the simulation environment over HTTP so an external trainer
// process can drive it: reset picks an episode, step supplies an action and
// advances one month. One episode runs at a time; the protocol is a strict
// request/response exchange of observation out, action in.
type Server struct {
	log     zerolog.Logger
	dataset *episode.Dataset
	engine  *sim.Engine
	ext     *policy.External
	health  *monitoring.HealthChecker
	metrics *monitoring.MetricsHandler

	mu     sync.Mutex
	active bool
}

// New creates an environment server over the given dataset.
func New(dataset *episode.Dataset, params sim.Params, cadence policy.Cadence, log zerolog.Logger) (*Server, error) {
	engine, err := sim.NewEngine(dataset.HorizonYears(), params)
	if err != nil {
		return nil, err
	}
	health := monitoring.NewHealthChecker()
	health.SetSeriesLoaded(dataset.Count())
	return &Server{
		log:     log,
		dataset: dataset,
		engine:  engine,
		ext:     policy.NewExternal(cadence),
		health:  health,
		metrics: monitoring.NewMetricsHandler(),
	}, nil
}

// Routes returns the server mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/reset", s.handleReset)
	mux.HandleFunc("POST /v1/step", s.handleStep)
	mux.Handle("GET /healthz", s.health)
	mux.Handle("GET /metrics", s.metrics.Handler())
	return mux
}

type resetRequest struct {
	EpisodeID     int  `json:"episode_id"`
	InitialAction *int `json:"initial_action,omitempty"`
}

type resetResponse struct {
	EpisodeID   int                `json:"episode_id"`
	StartMonth  int                `json:"start_month"`
	Observation policy.Observation `json:"observation"`
}

type stepRequest struct {
	Action int `json:"action"`
}

type stepResponse struct {
	Observation policy.Observation `json:"observation"`
	Reward      float64            `json:"reward"`
	Terminated  bool               `json:"terminated"`
	Info        sim.Info           `json:"info"`
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid reset request: %w", err))
		return
	}

	ep, err := s.dataset.Episode(req.EpisodeID)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	initial := policy.Action(0)
	if req.InitialAction != nil {
		initial = policy.Action(*req.InitialAction)
		if !initial.Valid() {
			s.writeError(w, http.StatusBadRequest,
				fmt.Errorf("%w: %d", policy.ErrInvalidAction, *req.InitialAction))
			return
		}
	}
	s.ext.Supply(initial)

	obs, err := s.engine.Reset(ep, s.ext)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.active = true

	s.log.Info().
		Int("episode_id", ep.ID).
		Int("start_month", ep.StartMonth).
		Msg("episode reset")

	s.writeJSON(w, resetResponse{
		EpisodeID:   ep.ID,
		StartMonth:  ep.StartMonth,
		Observation: obs,
	})
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	var req stepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid step request: %w", err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		s.writeError(w, http.StatusConflict, fmt.Errorf("no active episode, call reset first"))
		return
	}

	result, err := s.engine.StepAction(policy.Action(req.Action))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, policy.ErrInvalidAction) {
			status = http.StatusBadRequest
		}
		s.writeError(w, status, err)
		return
	}

	monitoring.RecordStep(result.Reward)
	s.health.RecordStep()

	if result.Terminated {
		s.active = false
		monitoring.RecordEpisode(s.engine.Status().String())
		s.log.Info().
			Str("status", s.engine.Status().String()).
			Int("months_elapsed", s.engine.MonthsElapsed()).
			Float64("wealth", s.engine.Wealth()).
			Msg("episode terminated")
	}

	s.writeJSON(w, stepResponse{
		Observation: result.Observation,
		Reward:      result.Reward,
		Terminated:  result.Terminated,
		Info:        result.Info,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	monitoring.RecordError(http.StatusText(status))
	if status >= http.StatusInternalServerError {
		s.health.RecordError(err.Error())
	}
	s.log.Warn().Err(err).Int("status", status).Msg("request failed")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
