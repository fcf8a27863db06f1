package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deckvault_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "deckvault_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// EngagementOpsTotal counts engagement operations (like, unlike, view) by result.
	EngagementOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deckvault_engagement_ops_total",
		Help: "Total engagement operations by type and result",
	}, []string{"operation", "result"})

	// ReportsTotal counts reports filed by target type and reason.
	ReportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deckvault_reports_total",
		Help: "Total reports filed by target type and reason",
	}, []string{"target", "reason"})

	// ModerationEscalationsTotal counts auto-hide escalations by target type.
	ModerationEscalationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deckvault_moderation_escalations_total",
		Help: "Total auto-hide escalations by target type",
	}, []string{"target"})

	// HashtagAggregationDuration records the duration of hashtag aggregation runs.
	HashtagAggregationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "deckvault_hashtag_aggregation_duration_seconds",
		Help:    "Duration of popular hashtag aggregation runs in seconds",
		Buckets: prometheus.DefBuckets,
	})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}

// RecordEngagement increments the engagement operation counter.
func RecordEngagement(operation, result string) {
	EngagementOpsTotal.WithLabelValues(operation, result).Inc()
}

// RecordReport increments the reports counter.
func RecordReport(target, reason string) {
	ReportsTotal.WithLabelValues(target, reason).Inc()
}

// RecordEscalation increments the moderation escalation counter.
func RecordEscalation(target string) {
	ModerationEscalationsTotal.WithLabelValues(target).Inc()
}
