package trash

import (
	"context"

	"github.com/google/uuid"
)

// RecordRepository persists records of every category. Implementations
// return shared.ErrNotFound when a record does not exist.
type RecordRepository interface {
	// FindByID loads a record, active or deleted
	FindByID(ctx context.Context, category Category, id int64) (Record, error)

	// FindByIDForUpdate loads a record and locks its row until the
	// surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, category Category, id int64) (Record, error)

	// FindActiveByIdentity returns the active record sharing identity,
	// ignoring excludeID. shared.ErrNotFound when there is none.
	FindActiveByIdentity(ctx context.Context, category Category, identity string, excludeID int64) (Record, error)

	// FindActive lists active records ordered by id
	FindActive(ctx context.Context, category Category) ([]Record, error)

	// FindDeleted lists deleted records matching filter, most recently deleted first
	FindDeleted(ctx context.Context, category Category, filter TrashFilter) ([]Record, error)

	// Create inserts a new record and assigns its id
	Create(ctx context.Context, record Record) error

	// Save persists the deletion state and attributes of an existing record.
	// Activating a record whose identity is already active fails with
	// shared.ErrAlreadyExists.
	Save(ctx context.Context, record Record) error
}

// ConflictFilter narrows conflict listings. Nil fields match everything.
type ConflictFilter struct {
	Category *Category
	State    *ConflictState
}

// PendingOnly returns a filter for pending conflicts, optionally of one category
func PendingOnly(category *Category) ConflictFilter {
	state := ConflictStatePending
	return ConflictFilter{Category: category, State: &state}
}

// ConflictRepository persists conflicts. Conflicts are never deleted.
type ConflictRepository interface {
	// FindByID loads a conflict
	FindByID(ctx context.Context, id uuid.UUID) (*Conflict, error)

	// FindByIDForUpdate loads a conflict and locks its row
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Conflict, error)

	// FindPendingByDeletedRecord returns the pending conflict for a deleted record
	FindPendingByDeletedRecord(ctx context.Context, category Category, deletedRecordID int64) (*Conflict, error)

	// FindIgnoredByDeletedRecord returns the conflict that dismissed a deleted
	// record with RESOLVED_IGNORE. shared.ErrNotFound when there is none.
	FindIgnoredByDeletedRecord(ctx context.Context, category Category, deletedRecordID int64) (*Conflict, error)

	// FindAll lists conflicts ordered by detection time, oldest first
	FindAll(ctx context.Context, filter ConflictFilter) ([]Conflict, error)

	// Create inserts a conflict. A second pending conflict for the same
	// deleted record fails with shared.ErrAlreadyExists.
	Create(ctx context.Context, conflict *Conflict) error

	// Save persists a state transition. It fails with
	// shared.ErrConcurrencyConflict when the stored version moved on.
	Save(ctx context.Context, conflict *Conflict) error
}
