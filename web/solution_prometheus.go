package web

import "github.com/prometheus/client_golang/prometheus"

var (
	submitSolutionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "online_judge_frontend",
			Subsystem: "solution",
			Name:      "submit_solution_requests_total",
			Help:      "SubmitSolution requests total.",
		},
		[]string{"code", "reason", "task_type"},
	)
	submitSolutionDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "online_judge_frontend",
			Subsystem: "solution",
			Name:      "submit_solution_duration_seconds",
			Help:      "SubmitSolution duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"code", "reason", "task_type"},
	)
)

func init() {
	prometheus.MustRegister(
		submitSolutionRequestsTotal,
		submitSolutionDurationSeconds,
	)
}
