// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	EvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathfinder_evaluations_total",
			Help: "Total number of completed pathway evaluations",
		},
		[]string{"scenario"},
	)

	ScholarshipMatches = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pathfinder_scholarship_matches",
			Help:    "Number of scholarships matched per evaluation",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
	)

	VotesCastTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathfinder_votes_cast_total",
			Help: "Total number of votes cast, by resulting direction",
		},
		[]string{"direction"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathfinder_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pathfinder_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"route"},
	)

	ActiveQuizSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pathfinder_quiz_sessions_active",
			Help: "Number of open interactive quiz connections",
		},
	)
)

// Handler returns the Prometheus scrape handler for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
