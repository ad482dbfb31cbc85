package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	episodesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "glidepath_episodes_total",
			Help: "Total number of episodes finished, by terminal status",
		},
		[]string{"status"},
	)

	stepsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "glidepath_steps_total",
			Help: "Total number of environment steps served",
		},
	)

	stepReward = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "glidepath_step_reward",
			Help:    "Distribution of per-step rewards",
			Buckets: []float64{-90000, -10000, -1000, -100, 0, 0.5, 1, 2, 5, 10},
		},
	)

	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "glidepath_errors_total",
			Help: "Total number of errors",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(episodesTotal)
	prometheus.MustRegister(stepsTotal)
	prometheus.MustRegister(stepReward)
	prometheus.MustRegister(errorsTotal)
}

// RecordEpisode increments the episode counter for a terminal status.
func RecordEpisode(status string) {
	episodesTotal.WithLabelValues(status).Inc()
}

// RecordStep records one served environment step and its reward.
func RecordStep(reward float64) {
	stepsTotal.Inc()
	stepReward.Observe(reward)
}

// RecordError increments the error counter.
func RecordError(errorType string) {
	errorsTotal.WithLabelValues(errorType).Inc()
}

// MetricsHandler exposes the Prometheus metrics endpoint.
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// Handler returns the promhttp handler.
func (m *MetricsHandler) Handler() http.Handler {
	return promhttp.Handler()
}
