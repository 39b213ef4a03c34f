package trash

import (
	"context"
	"errors"
	"time"

	"github.com/erp/papelera/internal/domain/shared"
	"github.com/erp/papelera/internal/domain/trash"
)

// errPendingRace aborts a restore transaction whose conflict insert lost
// against a concurrent detection of the same record
var errPendingRace = errors.New("pending conflict created concurrently")

// TrashService lists, deletes and restores recoverable records
type TrashService struct {
	records   trash.RecordRepository
	conflicts trash.ConflictRepository
	scope     TransactionScope
	locker    RecordLocker
	policy    *AccessPolicy
	publisher shared.EventPublisher
	now       func() time.Time
}

// NewTrashService creates a TrashService
func NewTrashService(
	records trash.RecordRepository,
	conflicts trash.ConflictRepository,
	scope TransactionScope,
	locker RecordLocker,
	policy *AccessPolicy,
) *TrashService {
	if policy == nil {
		policy = NewAccessPolicy(nil, "")
	}
	return &TrashService{
		records:   records,
		conflicts: conflicts,
		scope:     scope,
		locker:    locker,
		policy:    policy,
		now:       time.Now,
	}
}

// SetEventPublisher sets the publisher for post-commit domain events
func (s *TrashService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// SetClock replaces the time source
func (s *TrashService) SetClock(now func() time.Time) {
	s.now = now
}

// ListActive returns the active records of a category
func (s *TrashService) ListActive(ctx context.Context, p Principal, category trash.Category) ([]RecordResponse, error) {
	if err := s.policy.RequireApproved(p); err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, shared.ErrValidation.Withf("unknown category %q", category)
	}
	records, err := s.records.FindActive(ctx, category)
	if err != nil {
		return nil, err
	}
	return ToRecordResponses(records), nil
}

// ListTrash returns the deleted records of a category matching every supplied filter
func (s *TrashService) ListTrash(ctx context.Context, p Principal, category trash.Category, req ListTrashRequest) ([]RecordResponse, error) {
	if err := s.policy.RequireManager(p); err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, shared.ErrValidation.Withf("unknown category %q", category)
	}
	filter := req.Filter()
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	records, err := s.records.FindDeleted(ctx, category, filter)
	if err != nil {
		return nil, err
	}
	return ToRecordResponses(records), nil
}

// SoftDelete moves an active record to the trash
func (s *TrashService) SoftDelete(ctx context.Context, p Principal, category trash.Category, id int64) (*RecordResponse, error) {
	if err := s.policy.RequireManager(p); err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, shared.ErrValidation.Withf("unknown category %q", category)
	}

	unlock, err := lockRecord(ctx, s.locker, category, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		resp   RecordResponse
		events []shared.DomainEvent
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		record, err := repos.Records().FindByIDForUpdate(ctx, category, id)
		if err != nil {
			return err
		}
		now := s.now()
		if err := record.MarkDeleted(now); err != nil {
			return shared.ErrAlreadyDeleted.Withf("%s %d is already in the trash", category, id)
		}
		record.Touch(now)
		if err := repos.Records().Save(ctx, record); err != nil {
			return err
		}
		resp = ToRecordResponse(record)
		events = []shared.DomainEvent{trash.NewRecordSoftDeletedEvent(record, p.Actor())}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, events)
	return &resp, nil
}

// Restore brings a deleted record back. When an active record already holds
// its natural identity the restore is blocked and a pending conflict is
// returned instead; repeated calls return that same conflict. A record whose
// conflict was resolved with IGNORE stays deleted for good.
func (s *TrashService) Restore(ctx context.Context, p Principal, category trash.Category, id int64) (*RestoreResult, error) {
	if err := s.policy.RequireManager(p); err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, shared.ErrValidation.Withf("unknown category %q", category)
	}

	unlock, err := lockRecord(ctx, s.locker, category, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	actor := p.Actor()
	var (
		result *RestoreResult
		events []shared.DomainEvent
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		result, events = nil, nil

		record, err := repos.Records().FindByIDForUpdate(ctx, category, id)
		if err != nil {
			return err
		}
		if !record.IsDeleted() {
			return shared.ErrAlreadyActive.Withf("%s %d is not in the trash", category, id)
		}

		pending, err := repos.Conflicts().FindPendingByDeletedRecord(ctx, category, id)
		switch {
		case err == nil:
			result = conflictResult(pending, false)
			return nil
		case !errors.Is(err, shared.ErrNotFound):
			return err
		}

		ignored, err := repos.Conflicts().FindIgnoredByDeletedRecord(ctx, category, id)
		switch {
		case err == nil:
			return shared.ErrAlreadyResolved.Withf("%s %d was dismissed by conflict %s and stays in the trash", category, id, ignored.ID)
		case !errors.Is(err, shared.ErrNotFound):
			return err
		}

		existing, err := findCollision(ctx, repos.Records(), record)
		if err != nil {
			return err
		}

		now := s.now()
		if existing == nil {
			if err := record.ClearDeleted(); err != nil {
				return err
			}
			record.Touch(now)
			if err := repos.Records().Save(ctx, record); err != nil {
				if errors.Is(err, shared.ErrAlreadyExists) {
					return shared.ErrConcurrencyConflict.Withf("%s %d collided with a record activated concurrently, retry", category, id)
				}
				return err
			}
			resp := ToRecordResponse(record)
			result = &RestoreResult{Restored: true, Mensaje: MensajeRestaurado, Record: &resp}
			events = []shared.DomainEvent{trash.NewRecordRestoredEvent(record, actor, nil)}
			return nil
		}

		conflict, err := trash.NewConflict(record, existing, actor, now)
		if err != nil {
			return err
		}
		if err := repos.Conflicts().Create(ctx, conflict); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				return errPendingRace
			}
			return err
		}
		result = conflictResult(conflict, true)
		events = conflict.GetDomainEvents()
		return nil
	})

	if errors.Is(err, errPendingRace) {
		pending, lookupErr := s.conflicts.FindPendingByDeletedRecord(ctx, category, id)
		if lookupErr != nil {
			return nil, lookupErr
		}
		return conflictResult(pending, false), nil
	}
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, events)
	return result, nil
}

func conflictResult(c *trash.Conflict, created bool) *RestoreResult {
	resp := ToConflictResponse(c)
	id := c.ID
	return &RestoreResult{
		Restored:        false,
		Mensaje:         MensajeConflictoDetectado,
		ConflictID:      &id,
		Conflict:        &resp,
		ConflictCreated: created,
	}
}
