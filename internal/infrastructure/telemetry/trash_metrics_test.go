package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/erp/papelera/internal/domain/trash"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumOf(t *testing.T, agg metricdata.Aggregation) int64 {
	t.Helper()
	s, ok := agg.(metricdata.Sum[int64])
	require.True(t, ok, "unexpected aggregation %T", agg)
	var total int64
	for _, dp := range s.DataPoints {
		total += dp.Value
	}
	return total
}

func TestTrashMetrics_CountsEvents(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewTrashMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	p := &trash.Product{Name: "Lapiz"}
	p.ID = 7
	p.UpdatedAt = now
	require.NoError(t, p.MarkDeleted(now))

	existing := &trash.Product{Name: "lapiz"}
	existing.ID = 8
	actor := trash.Actor{ID: "1", Username: "gerente"}
	c, err := trash.NewConflict(p, existing, actor, now)
	require.NoError(t, err)

	require.NoError(t, m.Handle(ctx, trash.NewRecordSoftDeletedEvent(p, actor)))
	require.NoError(t, m.Handle(ctx, trash.NewConflictDetectedEvent(c)))
	require.NoError(t, c.Resolve(trash.ResolutionIgnore, actor, "", now))
	require.NoError(t, m.Handle(ctx, trash.NewConflictResolvedEvent(c, trash.ResolutionIgnore)))
	id := uuid.New()
	require.NoError(t, m.Handle(ctx, trash.NewRecordRestoredEvent(p, actor, &id)))

	data := collect(t, reader)
	assert.Equal(t, int64(1), sumOf(t, data["papelera.records.soft_deleted"]))
	assert.Equal(t, int64(1), sumOf(t, data["papelera.records.restored"]))
	assert.Equal(t, int64(1), sumOf(t, data["papelera.conflicts.detected"]))
	assert.Equal(t, int64(1), sumOf(t, data["papelera.conflicts.resolved"]))
	assert.Equal(t, int64(0), sumOf(t, data["papelera.conflicts.pending"]))
	assert.Len(t, m.EventTypes(), 4)
}
