package telemetry

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// RegisterDBPoolMetrics reports connection pool gauges for sqlDB on every
// collection cycle. The returned function unregisters the callback.
func RegisterDBPoolMetrics(meter metric.Meter, sqlDB *sql.DB) (func() error, error) {
	open, err := meter.Int64ObservableGauge("papelera.db.connections.open",
		metric.WithDescription("Open database connections"))
	if err != nil {
		return nil, fmt.Errorf("create gauge: %w", err)
	}
	inUse, err := meter.Int64ObservableGauge("papelera.db.connections.in_use",
		metric.WithDescription("Database connections in use"))
	if err != nil {
		return nil, fmt.Errorf("create gauge: %w", err)
	}
	waits, err := meter.Int64ObservableCounter("papelera.db.connections.wait_count",
		metric.WithDescription("Total waits for a free connection"))
	if err != nil {
		return nil, fmt.Errorf("create counter: %w", err)
	}

	reg, err := meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := sqlDB.Stats()
		o.ObserveInt64(open, int64(s.OpenConnections))
		o.ObserveInt64(inUse, int64(s.InUse))
		o.ObserveInt64(waits, s.WaitCount)
		return nil
	}, open, inUse, waits)
	if err != nil {
		return nil, fmt.Errorf("register pool callback: %w", err)
	}
	return reg.Unregister, nil
}
