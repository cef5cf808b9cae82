package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/easybill/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include query variables in spans (dev only)
	SlowQueryThresh time.Duration // default 200ms
	DBSystem        string        // postgresql or sqlite
}

// DBTracingConfigFrom derives database tracing settings from config
func DBTracingConfigFrom(tel config.TelemetryConfig, db config.DatabaseConfig) DBTracingConfig {
	system := "postgresql"
	if db.Driver == "sqlite" {
		system = "sqlite"
	}
	thresh := db.SlowThreshold
	if thresh <= 0 {
		thresh = 200 * time.Millisecond
	}
	return DBTracingConfig{
		Enabled:         tel.Enabled && tel.DBTraceEnabled,
		LogFullSQL:      tel.DBLogFullSQL,
		SlowQueryThresh: thresh,
		DBSystem:        system,
	}
}

type contextKey string

const queryStartTimeKey contextKey = "otel_query_start_time"

// DBTracingPlugin wraps otelgorm with slow query detection and error marking.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a new database tracing plugin.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	return &DBTracingPlugin{
		config: cfg,
		logger: logger,
	}
}

// Register installs otelgorm and the timing callbacks on db
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBSystem)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	if err := p.registerCallbacks(db); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_system", p.config.DBSystem),
	)
	return nil
}

func (p *DBTracingPlugin) registerCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	registrations := []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("otel_timing:before_create", p.before) },
		func() error { return cb.Query().Before("gorm:query").Register("otel_timing:before_query", p.before) },
		func() error { return cb.Update().Before("gorm:update").Register("otel_timing:before_update", p.before) },
		func() error { return cb.Delete().Before("gorm:delete").Register("otel_timing:before_delete", p.before) },
		func() error { return cb.Row().Before("gorm:row").Register("otel_timing:before_row", p.before) },
		func() error { return cb.Raw().Before("gorm:raw").Register("otel_timing:before_raw", p.before) },
		func() error { return cb.Create().After("gorm:create").Register("otel_timing:after_create", p.after) },
		func() error { return cb.Query().After("gorm:query").Register("otel_timing:after_query", p.after) },
		func() error { return cb.Update().After("gorm:update").Register("otel_timing:after_update", p.after) },
		func() error { return cb.Delete().After("gorm:delete").Register("otel_timing:after_delete", p.after) },
		func() error { return cb.Row().After("gorm:row").Register("otel_timing:after_row", p.after) },
		func() error { return cb.Raw().After("gorm:raw").Register("otel_timing:after_raw", p.after) },
	}
	for _, register := range registrations {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}

func (p *DBTracingPlugin) before(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
	}
}

func (p *DBTracingPlugin) after(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if start, ok := ctx.Value(queryStartTimeKey).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > p.config.SlowQueryThresh {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
