package trash

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/erp/papelera/internal/domain/shared"
	"github.com/erp/papelera/internal/domain/trash"
	"github.com/google/uuid"
)

// ConflictService drives pending conflicts to a decision
type ConflictService struct {
	conflicts trash.ConflictRepository
	scope     TransactionScope
	locker    RecordLocker
	policy    *AccessPolicy
	publisher shared.EventPublisher
	now       func() time.Time
}

// NewConflictService creates a ConflictService
func NewConflictService(
	conflicts trash.ConflictRepository,
	scope TransactionScope,
	locker RecordLocker,
	policy *AccessPolicy,
) *ConflictService {
	if policy == nil {
		policy = NewAccessPolicy(nil, "")
	}
	return &ConflictService{
		conflicts: conflicts,
		scope:     scope,
		locker:    locker,
		policy:    policy,
		now:       time.Now,
	}
}

// SetEventPublisher sets the publisher for post-commit domain events
func (s *ConflictService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// SetClock replaces the time source
func (s *ConflictService) SetClock(now func() time.Time) {
	s.now = now
}

// ListPending returns pending conflicts, oldest first, optionally of one category
func (s *ConflictService) ListPending(ctx context.Context, p Principal, category *trash.Category) ([]ConflictResponse, error) {
	if err := s.policy.RequireManager(p); err != nil {
		return nil, err
	}
	conflicts, err := s.conflicts.FindAll(ctx, trash.PendingOnly(category))
	if err != nil {
		return nil, err
	}
	return ToConflictResponses(conflicts), nil
}

// List returns conflicts selected by wire state and category. An empty
// estado means pending only.
func (s *ConflictService) List(ctx context.Context, p Principal, req ListConflictsRequest) ([]ConflictResponse, error) {
	if err := s.policy.RequireManager(p); err != nil {
		return nil, err
	}
	filter, err := conflictFilter(req)
	if err != nil {
		return nil, err
	}
	if filter.State != nil && *filter.State == trash.ConflictStatePending {
		return s.ListPending(ctx, p, filter.Category)
	}
	conflicts, err := s.conflicts.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToConflictResponses(conflicts), nil
}

func conflictFilter(req ListConflictsRequest) (trash.ConflictFilter, error) {
	var filter trash.ConflictFilter
	if tipo := strings.TrimSpace(req.TipoModelo); tipo != "" {
		category, err := trash.ParseCategory(tipo)
		if err != nil {
			return filter, err
		}
		filter.Category = &category
	}

	estado := strings.ToUpper(strings.TrimSpace(req.Estado))
	switch estado {
	case "":
		pending := trash.ConflictStatePending
		filter.State = &pending
	case EstadoTodos:
	default:
		state, ok := StateFromEstado(estado)
		if !ok {
			return filter, shared.ErrValidation.Withf("unknown estado %q", req.Estado)
		}
		filter.State = &state
	}
	return filter, nil
}

// Get returns one conflict
func (s *ConflictService) Get(ctx context.Context, p Principal, id uuid.UUID) (*ConflictResponse, error) {
	if err := s.policy.RequireManager(p); err != nil {
		return nil, err
	}
	c, err := s.conflicts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToConflictResponse(c)
	return &resp, nil
}

// Resolve applies an operator decision to a pending conflict.
//
// RESTORE re-checks the collision right before mutating: while another
// active record still holds the identity the call fails with
// shared.ErrStillConflicting and the conflict stays pending. IGNORE closes
// the conflict and leaves the record in the trash.
func (s *ConflictService) Resolve(ctx context.Context, p Principal, id uuid.UUID, req ResolveConflictRequest) (*ConflictResponse, error) {
	if err := s.policy.RequireManager(p); err != nil {
		return nil, err
	}
	decision, err := trash.ParseResolution(req.Resolucion)
	if err != nil {
		return nil, err
	}

	current, err := s.conflicts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.IsPending() {
		return nil, shared.ErrAlreadyResolved.Withf("conflict %s is already %s", id, EstadoFromState(current.State))
	}

	unlock, err := lockRecord(ctx, s.locker, current.Category, current.DeletedRecordID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	actor := p.Actor()
	var (
		resp   ConflictResponse
		events []shared.DomainEvent
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		events = nil

		conflict, err := repos.Conflicts().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !conflict.IsPending() {
			return shared.ErrAlreadyResolved.Withf("conflict %s is already %s", id, EstadoFromState(conflict.State))
		}

		now := s.now()
		if decision == trash.ResolutionRestore {
			record, err := s.restoreForConflict(ctx, repos, conflict, now)
			if err != nil {
				return err
			}
			events = append(events, trash.NewRecordRestoredEvent(record, actor, &conflict.ID))
		}

		if err := conflict.Resolve(decision, actor, req.Notas, now); err != nil {
			return err
		}
		if err := repos.Conflicts().Save(ctx, conflict); err != nil {
			return err
		}
		events = append(events, conflict.GetDomainEvents()...)
		resp = ToConflictResponse(conflict)
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, events)
	return &resp, nil
}

func (s *ConflictService) restoreForConflict(ctx context.Context, repos TransactionalRepositories, c *trash.Conflict, now time.Time) (trash.Record, error) {
	record, err := repos.Records().FindByIDForUpdate(ctx, c.Category, c.DeletedRecordID)
	if err != nil {
		return nil, err
	}
	if !record.IsDeleted() {
		return nil, shared.ErrAlreadyActive.Withf("%s %d was already restored, conflict %s stays pending",
			c.Category, c.DeletedRecordID, c.ID)
	}

	existing, err := findCollision(ctx, repos.Records(), record)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrStillConflicting.Withf("%s %d still collides with active %s %d",
			c.Category, c.DeletedRecordID, c.Category, existing.GetID())
	}

	if err := record.ClearDeleted(); err != nil {
		return nil, err
	}
	record.Touch(now)
	if err := repos.Records().Save(ctx, record); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.ErrStillConflicting.Withf("%s %d collided with a record activated concurrently",
				c.Category, c.DeletedRecordID)
		}
		return nil, err
	}
	return record, nil
}
