package trash

import (
	"context"

	"github.com/erp/papelera/internal/domain/shared"
	"github.com/erp/papelera/internal/domain/trash"
	"go.uber.org/zap"
)

// AuditLogHandler writes one structured audit line per trash event
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates an audit handler writing to logger
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger.Named("audit")}
}

// EventTypes implements shared.EventHandler
func (h *AuditLogHandler) EventTypes() []string {
	return []string{
		trash.EventTypeRecordSoftDeleted,
		trash.EventTypeRecordRestored,
		trash.EventTypeConflictDetected,
		trash.EventTypeConflictResolved,
	}
}

// Handle implements shared.EventHandler
func (h *AuditLogHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_id", event.EventID().String()),
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID()),
		zap.Time("occurred_at", event.OccurredAt()),
	}

	switch e := event.(type) {
	case *trash.RecordSoftDeletedEvent:
		fields = append(fields,
			zap.String("category", e.Category.String()),
			zap.Int64("record_id", e.RecordID),
			zap.String("actor", e.Actor.Username),
		)
	case *trash.RecordRestoredEvent:
		fields = append(fields,
			zap.String("category", e.Category.String()),
			zap.Int64("record_id", e.RecordID),
			zap.String("actor", e.Actor.Username),
		)
		if e.ConflictID != nil {
			fields = append(fields, zap.String("conflict_id", e.ConflictID.String()))
		}
	case *trash.ConflictDetectedEvent:
		fields = append(fields,
			zap.String("category", e.Category.String()),
			zap.Int64("deleted_record_id", e.DeletedRecordID),
			zap.Int64("existing_record_id", e.ExistingRecordID),
			zap.String("actor", e.DetectedBy.Username),
		)
	case *trash.ConflictResolvedEvent:
		fields = append(fields,
			zap.String("category", e.Category.String()),
			zap.Int64("deleted_record_id", e.DeletedRecordID),
			zap.String("resolution", string(e.Resolution)),
			zap.String("actor", e.ResolvedBy.Username),
		)
		if e.Notes != "" {
			fields = append(fields, zap.String("notes", e.Notes))
		}
	}

	h.logger.Info("trash audit", fields...)
	return nil
}

var _ shared.EventHandler = (*AuditLogHandler)(nil)
