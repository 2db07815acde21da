// Package observability provides domain metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jobboard_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// JobsCreated counts created job listings by reward type.
	JobsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_jobs_created_total",
		Help: "Total number of job listings created",
	}, []string{"reward_type"})

	// ApplicationsSubmitted counts applications accepted for storage.
	ApplicationsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobboard_applications_submitted_total",
		Help: "Total number of job applications submitted",
	})

	// ApplicationStatusChanges counts poster-driven status updates by target status.
	ApplicationStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_application_status_changes_total",
		Help: "Total number of application status updates",
	}, []string{"status"})

	// ChatReplies counts chat replies by the tier that produced them.
	ChatReplies = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_chat_replies_total",
		Help: "Total chat replies by serving tier",
	}, []string{"tier"})

	// ChatUpstreamFailures counts failed or empty upstream chat attempts.
	ChatUpstreamFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_chat_upstream_failures_total",
		Help: "Total failed chat upstream attempts by tier",
	}, []string{"tier"})
)

const queryStartKey = "observability:query_start"

// RegisterDatabaseMetrics installs GORM callbacks that observe query latency
// into DatabaseQueryLatency.
func RegisterDatabaseMetrics(db *gorm.DB) error {
	cb := db.Callback()
	hooks := []struct {
		op     string
		before func(string) error
		after  func(string) error
	}{
		{"create",
			func(n string) error { return cb.Create().Before("gorm:create").Register(n, markStart) },
			func(n string) error { return cb.Create().After("gorm:create").Register(n, observe("create")) }},
		{"query",
			func(n string) error { return cb.Query().Before("gorm:query").Register(n, markStart) },
			func(n string) error { return cb.Query().After("gorm:query").Register(n, observe("query")) }},
		{"update",
			func(n string) error { return cb.Update().Before("gorm:update").Register(n, markStart) },
			func(n string) error { return cb.Update().After("gorm:update").Register(n, observe("update")) }},
		{"delete",
			func(n string) error { return cb.Delete().Before("gorm:delete").Register(n, markStart) },
			func(n string) error { return cb.Delete().After("gorm:delete").Register(n, observe("delete")) }},
		{"raw",
			func(n string) error { return cb.Raw().Before("gorm:raw").Register(n, markStart) },
			func(n string) error { return cb.Raw().After("gorm:raw").Register(n, observe("raw")) }},
	}

	for _, h := range hooks {
		if err := h.before("metrics:before_" + h.op); err != nil {
			return err
		}
		if err := h.after("metrics:after_" + h.op); err != nil {
			return err
		}
	}
	return nil
}

func markStart(db *gorm.DB) {
	db.InstanceSet(queryStartKey, time.Now())
}

func observe(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
