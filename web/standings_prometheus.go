package web

import "github.com/prometheus/client_golang/prometheus"

var (
	exportStandingsRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "online_judge_frontend",
			Subsystem: "standings",
			Name:      "export_standings_requests_total",
			Help:      "ExportStandings requests total.",
		},
		[]string{"code", "format"},
	)
	exportStandingsDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "online_judge_frontend",
			Subsystem: "standings",
			Name:      "export_standings_duration_seconds",
			Help:      "ExportStandings duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"code", "format"},
	)
)

func init() {
	prometheus.MustRegister(
		exportStandingsRequestsTotal,
		exportStandingsDurationSeconds,
	)
}
