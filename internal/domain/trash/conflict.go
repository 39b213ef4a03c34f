package trash

import (
	"strings"
	"time"

	"github.com/erp/papelera/internal/domain/shared"
)

// ConflictState is the lifecycle state of a conflict
type ConflictState string

const (
	ConflictStatePending         ConflictState = "PENDING"
	ConflictStateResolvedRestore ConflictState = "RESOLVED_RESTORE"
	ConflictStateResolvedIgnore  ConflictState = "RESOLVED_IGNORE"
)

// IsTerminal reports whether no further transition is allowed
func (s ConflictState) IsTerminal() bool {
	return s == ConflictStateResolvedRestore || s == ConflictStateResolvedIgnore
}

// IsValid reports whether s is a known state
func (s ConflictState) IsValid() bool {
	return s == ConflictStatePending || s.IsTerminal()
}

// Resolution is the operator decision on a pending conflict
type Resolution string

const (
	ResolutionRestore Resolution = "RESTORE"
	ResolutionIgnore  Resolution = "IGNORE"
)

// ParseResolution accepts RESTORE/IGNORE and the Spanish RESTAURAR/IGNORAR
func ParseResolution(s string) (Resolution, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RESTORE", "RESTAURAR":
		return ResolutionRestore, nil
	case "IGNORE", "IGNORAR":
		return ResolutionIgnore, nil
	}
	return "", shared.ErrValidation.Withf("unknown resolution %q, expected RESTAURAR or IGNORAR", s)
}

// Actor is the authenticated user performing an operation
type Actor struct {
	ID       string
	Username string
}

// Conflict records that restoring a deleted record would collide with an
// active record of the same natural identity
type Conflict struct {
	shared.BaseAggregateRoot
	Category         Category
	DeletedRecordID  int64
	ExistingRecordID int64
	State            ConflictState
	DetectedBy       Actor
	DetectedAt       time.Time
	ResolvedBy       *Actor
	ResolvedAt       *time.Time
	ResolutionNotes  string
}

// NewConflict opens a pending conflict between a soft-deleted record and the
// active record that shares its identity
func NewConflict(deleted, existing Record, actor Actor, now time.Time) (*Conflict, error) {
	if deleted == nil || existing == nil {
		return nil, shared.ErrValidation.Withf("conflict requires both records")
	}
	if deleted.Category() != existing.Category() {
		return nil, shared.ErrValidation.Withf("conflict records belong to different categories: %s and %s",
			deleted.Category(), existing.Category())
	}
	if !deleted.IsDeleted() {
		return nil, shared.ErrAlreadyActive.Withf("%s %d is not in the trash", deleted.Category(), deleted.GetID())
	}
	if existing.IsDeleted() {
		return nil, shared.ErrValidation.Withf("%s %d is not active", existing.Category(), existing.GetID())
	}
	if deleted.GetID() == existing.GetID() {
		return nil, shared.ErrValidation.Withf("a record cannot conflict with itself")
	}

	c := &Conflict{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(now),
		Category:          deleted.Category(),
		DeletedRecordID:   deleted.GetID(),
		ExistingRecordID:  existing.GetID(),
		State:             ConflictStatePending,
		DetectedBy:        actor,
		DetectedAt:        now,
	}
	c.AddDomainEvent(NewConflictDetectedEvent(c))
	return c, nil
}

// IsPending reports whether the conflict awaits a decision
func (c *Conflict) IsPending() bool {
	return c.State == ConflictStatePending
}

// Resolve moves a pending conflict to its terminal state. Callers must
// restore the deleted record themselves before resolving with RESTORE.
func (c *Conflict) Resolve(decision Resolution, actor Actor, notes string, now time.Time) error {
	if !c.IsPending() {
		return shared.ErrAlreadyResolved.Withf("conflict %s is already %s", c.ID, c.State)
	}
	switch decision {
	case ResolutionRestore:
		c.State = ConflictStateResolvedRestore
	case ResolutionIgnore:
		c.State = ConflictStateResolvedIgnore
	default:
		return shared.ErrValidation.Withf("unknown resolution %q", decision)
	}

	resolvedAt := now
	resolver := actor
	c.ResolvedBy = &resolver
	c.ResolvedAt = &resolvedAt
	c.ResolutionNotes = strings.TrimSpace(notes)
	c.UpdatedAt = now
	c.IncrementVersion()

	c.AddDomainEvent(NewConflictResolvedEvent(c, decision))
	return nil
}
