package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "user_directory_"

// Service constants
const (
	ServiceUsers = "users"
	ServiceCache = "cache"
)

// Source operations
const (
	OperationFetchAll = "fetch_all"
	OperationFetchOne = "fetch_one"
)

var (
	// Data source calls by operation and outcome
	// Cardinality: ~4 (2 operations × 2 statuses)
	SourceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "source_requests_total",
			Help: "Total number of data source calls",
		},
		[]string{"service", "operation", "status"},
	)

	// Data source latency, includes the simulated delay and throttling
	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricsPrefix + "source_fetch_duration_seconds",
			Help:    "Time taken by data source calls",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"service", "operation"},
	)

	// Cache lookups by result (hit, derived, miss)
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "cache_lookups_total",
			Help: "Total number of cache lookups by result",
		},
		[]string{"service", "result"},
	)

	// Number of entries currently held by the query cache
	CacheSizeGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "cache_size",
			Help: "Number of entries in the query cache",
		},
		[]string{"service"},
	)

	// Entries marked invalidated, manually or by expiry
	CacheInvalidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "cache_invalidations_total",
			Help: "Total number of invalidated cache entries",
		},
		[]string{"service", "reason"},
	)
)

// MetricsWriter provides a unified interface for recording service metrics
type MetricsWriter struct {
	serviceName string
}

// NewMetricsWriter creates a new MetricsWriter for the specified service
func NewMetricsWriter(serviceName string) *MetricsWriter {
	return &MetricsWriter{
		serviceName: serviceName,
	}
}

// GetServiceName returns the service name
func (mw *MetricsWriter) GetServiceName() string {
	return mw.serviceName
}

// RecordSourceRequest records one data source call and its duration
func (mw *MetricsWriter) RecordSourceRequest(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	SourceRequestsTotal.WithLabelValues(mw.serviceName, operation, status).Inc()
	SourceFetchDuration.WithLabelValues(mw.serviceName, operation).Observe(duration.Seconds())
	logrus.WithFields(logrus.Fields{
		"service":   mw.serviceName,
		"operation": operation,
		"status":    status,
		"duration":  duration,
	}).Debug("Metrics: source request recorded")
}

// RecordCacheLookup records how a read was served
func (mw *MetricsWriter) RecordCacheLookup(result string) {
	CacheLookupsTotal.WithLabelValues(mw.serviceName, result).Inc()
}

// RecordCacheSize records the number of entries in the cache
func (mw *MetricsWriter) RecordCacheSize(size int) {
	CacheSizeGauge.WithLabelValues(mw.serviceName).Set(float64(size))
}

// RecordInvalidations records entries that were marked invalidated
func (mw *MetricsWriter) RecordInvalidations(reason string, count int) {
	if count <= 0 {
		return
	}
	CacheInvalidationsTotal.WithLabelValues(mw.serviceName, reason).Add(float64(count))
	logrus.WithFields(logrus.Fields{
		"service": mw.serviceName,
		"reason":  reason,
		"count":   count,
	}).Debug("Metrics: invalidations recorded")
}
