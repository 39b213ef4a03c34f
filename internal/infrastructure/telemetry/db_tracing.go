package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing
type DBTracingConfig struct {
	DBSystem        string        // "postgresql" or "sqlite"
	LogFullSQL      bool          // include bound variables in spans (dev only)
	SlowQueryThresh time.Duration // queries above this get db.slow_query
}

// DBTracingPlugin registers otelgorm and tags slow statements on the span.
// It implements gorm.Plugin.
type DBTracingPlugin struct {
	cfg DBTracingConfig
}

// NewDBTracingPlugin creates the plugin
func NewDBTracingPlugin(cfg DBTracingConfig) *DBTracingPlugin {
	if cfg.SlowQueryThresh == 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	return &DBTracingPlugin{cfg: cfg}
}

// Name implements gorm.Plugin
func (p *DBTracingPlugin) Name() string { return "papelera:db_tracing" }

type startKey struct{}

// Initialize implements gorm.Plugin
func (p *DBTracingPlugin) Initialize(db *gorm.DB) error {
	opts := []otelgorm.Option{otelgorm.WithDBName(p.cfg.DBSystem)}
	if !p.cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, startKey{}, time.Now())
		}
	}
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("papelera:timing_create", before),
		cb.Query().Before("gorm:query").Register("papelera:timing_query", before),
		cb.Update().Before("gorm:update").Register("papelera:timing_update", before),
		cb.Raw().Before("gorm:raw").Register("papelera:timing_raw", before),
		cb.Create().After("gorm:create").Register("papelera:slow_create", p.after),
		cb.Query().After("gorm:query").Register("papelera:slow_query", p.after),
		cb.Update().After("gorm:update").Register("papelera:slow_update", p.after),
		cb.Raw().After("gorm:raw").Register("papelera:slow_raw", p.after),
	)
}

func (p *DBTracingPlugin) after(tx *gorm.DB) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))

	start, ok := ctx.Value(startKey{}).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > p.cfg.SlowQueryThresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
}

var _ gorm.Plugin = (*DBTracingPlugin)(nil)
