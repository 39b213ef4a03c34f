package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/papelera/internal/domain/shared"
	"github.com/erp/papelera/internal/domain/trash"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// TrashMetrics turns trash domain events into OpenTelemetry counters.
// It is subscribed to the event bus like any other handler.
type TrashMetrics struct {
	softDeleted metric.Int64Counter
	restored    metric.Int64Counter
	detected    metric.Int64Counter
	resolved    metric.Int64Counter
	pending     metric.Int64UpDownCounter
}

// NewTrashMetrics creates the instruments on meter
func NewTrashMetrics(meter metric.Meter) (*TrashMetrics, error) {
	var m TrashMetrics
	var err, e error

	m.softDeleted, e = meter.Int64Counter("papelera.records.soft_deleted",
		metric.WithDescription("Records moved to the trash"), metric.WithUnit("{record}"))
	err = errors.Join(err, e)
	m.restored, e = meter.Int64Counter("papelera.records.restored",
		metric.WithDescription("Records brought back from the trash"), metric.WithUnit("{record}"))
	err = errors.Join(err, e)
	m.detected, e = meter.Int64Counter("papelera.conflicts.detected",
		metric.WithDescription("Restores blocked by an identity collision"), metric.WithUnit("{conflict}"))
	err = errors.Join(err, e)
	m.resolved, e = meter.Int64Counter("papelera.conflicts.resolved",
		metric.WithDescription("Conflicts closed by an operator"), metric.WithUnit("{conflict}"))
	err = errors.Join(err, e)
	m.pending, e = meter.Int64UpDownCounter("papelera.conflicts.pending",
		metric.WithDescription("Conflicts opened minus conflicts closed since start"), metric.WithUnit("{conflict}"))
	err = errors.Join(err, e)

	if err != nil {
		return nil, fmt.Errorf("create trash instruments: %w", err)
	}
	return &m, nil
}

// EventTypes implements shared.EventHandler
func (m *TrashMetrics) EventTypes() []string {
	return []string{
		trash.EventTypeRecordSoftDeleted,
		trash.EventTypeRecordRestored,
		trash.EventTypeConflictDetected,
		trash.EventTypeConflictResolved,
	}
}

// Handle implements shared.EventHandler
func (m *TrashMetrics) Handle(ctx context.Context, ev shared.DomainEvent) error {
	switch e := ev.(type) {
	case *trash.RecordSoftDeletedEvent:
		m.softDeleted.Add(ctx, 1, metric.WithAttributes(categoryAttr(e.Category)))
	case *trash.RecordRestoredEvent:
		m.restored.Add(ctx, 1, metric.WithAttributes(
			categoryAttr(e.Category),
			attribute.Bool("via_conflict", e.ConflictID != nil),
		))
	case *trash.ConflictDetectedEvent:
		attrs := metric.WithAttributes(categoryAttr(e.Category))
		m.detected.Add(ctx, 1, attrs)
		m.pending.Add(ctx, 1, attrs)
	case *trash.ConflictResolvedEvent:
		m.resolved.Add(ctx, 1, metric.WithAttributes(
			categoryAttr(e.Category),
			attribute.String("resolution", string(e.Resolution)),
		))
		m.pending.Add(ctx, -1, metric.WithAttributes(categoryAttr(e.Category)))
	}
	return nil
}

func categoryAttr(c trash.Category) attribute.KeyValue {
	return attribute.String("category", c.String())
}

var _ shared.EventHandler = (*TrashMetrics)(nil)
