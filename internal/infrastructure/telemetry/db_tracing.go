package telemetry

import (
	"errors"
	"time"

	"github.com/erp/tradecore/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const startTimeKey = "telemetry:start_time"

// RegisterDBTracing installs otelgorm so each query becomes a child span of the
// request, and tags spans of queries slower than the configured threshold
func RegisterDBTracing(db *gorm.DB, cfg config.TelemetryConfig, logger *zap.Logger) error {
	if !cfg.Enabled || !cfg.DBTraceEnabled {
		logger.Debug("Database tracing disabled")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName("postgresql")}
	if !cfg.DBLogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	if err := registerSlowQueryCallbacks(db, cfg.DBSlowQueryThresh); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.DBLogFullSQL),
		zap.Duration("slow_query_threshold", cfg.DBSlowQueryThresh),
	)
	return nil
}

func registerSlowQueryCallbacks(db *gorm.DB, threshold time.Duration) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(startTimeKey, time.Now())
	}
	// after runs before otelgorm ends the span
	after := func(tx *gorm.DB) {
		markSpan(tx, threshold)
	}

	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("telemetry:before_create", before),
		cb.Query().Before("gorm:query").Register("telemetry:before_query", before),
		cb.Update().Before("gorm:update").Register("telemetry:before_update", before),
		cb.Delete().Before("gorm:delete").Register("telemetry:before_delete", before),
		cb.Raw().Before("gorm:raw").Register("telemetry:before_raw", before),
		cb.Create().After("gorm:create").Before("otel:after_create").Register("telemetry:after_create", after),
		cb.Query().After("gorm:query").Before("otel:after_query").Register("telemetry:after_query", after),
		cb.Update().After("gorm:update").Before("otel:after_update").Register("telemetry:after_update", after),
		cb.Delete().After("gorm:delete").Before("otel:after_delete").Register("telemetry:after_delete", after),
		cb.Raw().After("gorm:raw").Before("otel:after_raw").Register("telemetry:after_raw", after),
	)
}

// markSpan annotates the current span with the table and flags slow queries
func markSpan(tx *gorm.DB, threshold time.Duration) {
	if tx.Statement == nil || tx.Statement.Context == nil {
		return
	}
	span := trace.SpanFromContext(tx.Statement.Context)
	if !span.IsRecording() {
		return
	}
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}

	v, ok := tx.InstanceGet(startTimeKey)
	if !ok {
		return
	}
	elapsed := time.Since(v.(time.Time))
	if threshold > 0 && elapsed > threshold {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query")
	}
}
