// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of jobs currently being handled per worker",
		},
		[]string{"task_type"},
	)
)

var (
	MatchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_requests_total",
			Help: "Match requests by service type, city and result mode",
		},
		[]string{"service_type", "city", "mode"},
	)

	CandidatePoolSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_candidate_pool_size",
			Help:    "Providers considered per match request before eligibility",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	EligiblePoolSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_eligible_pool_size",
			Help:    "Providers remaining after eligibility filtering",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 25, 50, 100},
		},
	)

	FilterRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_filter_rejections_total",
			Help: "Providers removed by each eligibility filter",
		},
		[]string{"filter"},
	)

	OfferedScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_offered_score",
			Help:    "Match scores of providers returned to customers",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	ProviderSourceQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_source_queries_total",
			Help: "Candidate pool lookups by source and result",
		},
		[]string{"source", "result"},
	)

	CandidateCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_cache_lookups_total",
			Help: "Candidate pool cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)
)
