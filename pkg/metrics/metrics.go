// Package metrics определяет Prometheus-метрики движка синхронизации.
// Экспортируются через /metrics (promhttp) в cmd/server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PushRecordsProcessed tracks per-record outcomes of push batches.
	// outcome: accepted / conflict / rejected
	PushRecordsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "labsync_push_records_processed_total",
		Help: "Total number of change records processed during push cycles",
	}, []string{"outcome", "entity_type"})

	// ConflictsResolved counts resolved conflicts by surviving side
	ConflictsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "labsync_conflicts_resolved_total",
		Help: "Total number of conflicts resolved, labeled by winning side",
	}, []string{"winner"})

	// PushBatchDuration measures how long a full push batch takes
	PushBatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "labsync_push_batch_duration_seconds",
		Help:    "Duration of push batch processing in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// PullBatchSize tracks how many records each pull returns.
	// Постоянно большие выборки означают, что клиенты синкаются редко.
	PullBatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "labsync_pull_batch_size",
		Help:    "Number of change records returned per pull",
		Buckets: []float64{0, 1, 10, 50, 100, 500, 1000},
	})

	// SyncSessionsFailed counts sessions terminated by infrastructure errors
	SyncSessionsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "labsync_sync_sessions_failed_total",
		Help: "Total number of sync sessions that ended in the failed state",
	}, []string{"operation"})

	// HTTPRequestDuration measures request latency per endpoint
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "labsync_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	// RateLimitRejections counts requests dropped by the rate limiter
	RateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "labsync_rate_limit_rejections_total",
		Help: "Total number of HTTP requests rejected by rate limiting",
	}, []string{"path"})
)
