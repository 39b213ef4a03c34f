package trash

import (
	"strconv"

	"github.com/erp/papelera/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeRecord   = "Record"
	AggregateTypeConflict = "Conflict"
)

// Event type constants
const (
	EventTypeRecordSoftDeleted = "RecordSoftDeleted"
	EventTypeRecordRestored    = "RecordRestored"
	EventTypeConflictDetected  = "ConflictDetected"
	EventTypeConflictResolved  = "ConflictResolved"
)

// RecordSoftDeletedEvent is published when a record is moved to the trash
type RecordSoftDeletedEvent struct {
	shared.BaseDomainEvent
	Category Category `json:"category"`
	RecordID int64    `json:"record_id"`
	Actor    Actor    `json:"actor"`
}

// NewRecordSoftDeletedEvent creates a RecordSoftDeletedEvent
func NewRecordSoftDeletedEvent(r Record, actor Actor) *RecordSoftDeletedEvent {
	return &RecordSoftDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecordSoftDeleted, AggregateTypeRecord,
			strconv.FormatInt(r.GetID(), 10), *r.GetDeletedAt()),
		Category: r.Category(),
		RecordID: r.GetID(),
		Actor:    actor,
	}
}

// RecordRestoredEvent is published when a record leaves the trash,
// either directly or through a resolved conflict
type RecordRestoredEvent struct {
	shared.BaseDomainEvent
	Category   Category   `json:"category"`
	RecordID   int64      `json:"record_id"`
	ConflictID *uuid.UUID `json:"conflict_id,omitempty"`
	Actor      Actor      `json:"actor"`
}

// NewRecordRestoredEvent creates a RecordRestoredEvent
func NewRecordRestoredEvent(r Record, actor Actor, conflictID *uuid.UUID) *RecordRestoredEvent {
	return &RecordRestoredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecordRestored, AggregateTypeRecord,
			strconv.FormatInt(r.GetID(), 10), r.GetUpdatedAt()),
		Category:   r.Category(),
		RecordID:   r.GetID(),
		ConflictID: conflictID,
		Actor:      actor,
	}
}

// ConflictDetectedEvent is published when a restore is blocked by a collision
type ConflictDetectedEvent struct {
	shared.BaseDomainEvent
	ConflictID       uuid.UUID `json:"conflict_id"`
	Category         Category  `json:"category"`
	DeletedRecordID  int64     `json:"deleted_record_id"`
	ExistingRecordID int64     `json:"existing_record_id"`
	DetectedBy       Actor     `json:"detected_by"`
}

// NewConflictDetectedEvent creates a ConflictDetectedEvent
func NewConflictDetectedEvent(c *Conflict) *ConflictDetectedEvent {
	return &ConflictDetectedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeConflictDetected, AggregateTypeConflict, c.ID.String(), c.DetectedAt),
		ConflictID:       c.ID,
		Category:         c.Category,
		DeletedRecordID:  c.DeletedRecordID,
		ExistingRecordID: c.ExistingRecordID,
		DetectedBy:       c.DetectedBy,
	}
}

// ConflictResolvedEvent is published when an operator closes a conflict
type ConflictResolvedEvent struct {
	shared.BaseDomainEvent
	ConflictID      uuid.UUID     `json:"conflict_id"`
	Category        Category      `json:"category"`
	DeletedRecordID int64         `json:"deleted_record_id"`
	Resolution      Resolution    `json:"resolution"`
	State           ConflictState `json:"state"`
	ResolvedBy      Actor         `json:"resolved_by"`
	Notes           string        `json:"notes,omitempty"`
}

// NewConflictResolvedEvent creates a ConflictResolvedEvent
func NewConflictResolvedEvent(c *Conflict, decision Resolution) *ConflictResolvedEvent {
	e := &ConflictResolvedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeConflictResolved, AggregateTypeConflict, c.ID.String(), *c.ResolvedAt),
		ConflictID:      c.ID,
		Category:        c.Category,
		DeletedRecordID: c.DeletedRecordID,
		Resolution:      decision,
		State:           c.State,
		Notes:           c.ResolutionNotes,
	}
	if c.ResolvedBy != nil {
		e.ResolvedBy = *c.ResolvedBy
	}
	return e
}
