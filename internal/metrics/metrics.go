// Package metrics holds the Prometheus collectors of the corpus API.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "corpus_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "corpus_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Snapshot
	SnapshotReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "corpus_snapshot_reloads_total",
			Help: "Total number of full corpus reloads",
		},
		[]string{"result"},
	)

	SnapshotReloadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "corpus_snapshot_reload_duration_seconds",
			Help:    "Duration of full corpus reloads in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	SnapshotEntities = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "corpus_snapshot_entities",
			Help: "Number of entities in the served snapshot",
		},
		[]string{"entity"},
	)

	SnapshotMarker = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "corpus_snapshot_marker",
			Help: "Update marker (ns since epoch) of the served snapshot",
		},
	)

	// Writes
	ConversationWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "corpus_conversation_writes_total",
			Help: "Total number of conversation create attempts",
		},
		[]string{"backend", "result"},
	)

	// Storage
	StorageOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "corpus_storage_operations_total",
			Help: "Total number of object storage operations",
		},
		[]string{"operation", "result"},
	)

	StorageRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "corpus_storage_retries_total",
			Help: "Total number of retried object storage attempts",
		},
		[]string{"operation"},
	)

	StorageBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "corpus_storage_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordReload records the outcome of a full corpus reload.
func RecordReload(duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	SnapshotReloads.WithLabelValues(result).Inc()
	SnapshotReloadDuration.Observe(duration.Seconds())
}

// RecordSnapshot publishes the size and marker of a newly served snapshot.
func RecordSnapshot(movies, characters, conversations, lines int, marker int64) {
	SnapshotEntities.WithLabelValues("movies").Set(float64(movies))
	SnapshotEntities.WithLabelValues("characters").Set(float64(characters))
	SnapshotEntities.WithLabelValues("conversations").Set(float64(conversations))
	SnapshotEntities.WithLabelValues("lines").Set(float64(lines))
	SnapshotMarker.Set(float64(marker))
}

func RecordWrite(backend string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	ConversationWrites.WithLabelValues(backend, result).Inc()
}

func RecordStorageOperation(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	StorageOperations.WithLabelValues(operation, result).Inc()
}

// Middleware records request counts and latency labelled by the matched route
// pattern, so path ids do not explode label cardinality.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}
		RecordAPIRequest(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
