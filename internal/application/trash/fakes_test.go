package trash

import (
	"context"
	"sort"
	"sync"

	"github.com/erp/papelera/internal/domain/shared"
	"github.com/erp/papelera/internal/domain/trash"
	"github.com/google/uuid"
)

// memStore is an in-memory store with the uniqueness rules of the database
// schema. Execute serializes transactions and rolls back on error.
type memStore struct {
	mu        sync.Mutex
	txMu      sync.Mutex
	nextID    int64
	records   map[trash.Category]map[int64]trash.Record
	conflicts map[uuid.UUID]trash.Conflict
}

func newMemStore() *memStore {
	return &memStore{
		records:   make(map[trash.Category]map[int64]trash.Record),
		conflicts: make(map[uuid.UUID]trash.Conflict),
	}
}

func cloneRecord(r trash.Record) trash.Record {
	switch v := r.(type) {
	case *trash.Product:
		c := *v
		return &c
	case *trash.Client:
		c := *v
		return &c
	case *trash.Supplier:
		c := *v
		return &c
	case *trash.Sale:
		c := *v
		return &c
	case *trash.Purchase:
		c := *v
		return &c
	}
	panic("unknown record type")
}

func cloneConflict(c trash.Conflict) *trash.Conflict {
	c.ClearDomainEvents()
	return &c
}

func (m *memStore) snapshot() (map[trash.Category]map[int64]trash.Record, map[uuid.UUID]trash.Conflict) {
	recs := make(map[trash.Category]map[int64]trash.Record, len(m.records))
	for cat, byID := range m.records {
		cp := make(map[int64]trash.Record, len(byID))
		for id, r := range byID {
			cp[id] = cloneRecord(r)
		}
		recs[cat] = cp
	}
	confs := make(map[uuid.UUID]trash.Conflict, len(m.conflicts))
	for id, c := range m.conflicts {
		confs[id] = c
	}
	return recs, confs
}

// Execute implements TransactionScope
func (m *memStore) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	recs, confs := m.snapshot()
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.records, m.conflicts = recs, confs
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memStore) Records() trash.RecordRepository     { return (*memRecords)(m) }
func (m *memStore) Conflicts() trash.ConflictRepository { return (*memConflicts)(m) }

type memRecords memStore

func (r *memRecords) FindByID(_ context.Context, category trash.Category, id int64) (trash.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[category][id]
	if !ok {
		return nil, shared.ErrNotFound.Withf("%s %d not found", category, id)
	}
	return cloneRecord(rec), nil
}

func (r *memRecords) FindByIDForUpdate(ctx context.Context, category trash.Category, id int64) (trash.Record, error) {
	return r.FindByID(ctx, category, id)
}

func (r *memRecords) FindActiveByIdentity(_ context.Context, category trash.Category, identity string, excludeID int64) (trash.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rec := range r.records[category] {
		if id != excludeID && !rec.IsDeleted() && trash.IdentityOf(rec) == identity {
			return cloneRecord(rec), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memRecords) list(category trash.Category, keep func(trash.Record) bool) []trash.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]trash.Record, 0)
	for _, rec := range r.records[category] {
		if keep(rec) {
			out = append(out, cloneRecord(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GetID() < out[j].GetID() })
	return out
}

func (r *memRecords) FindActive(_ context.Context, category trash.Category) ([]trash.Record, error) {
	return r.list(category, func(rec trash.Record) bool { return !rec.IsDeleted() }), nil
}

func (r *memRecords) FindDeleted(_ context.Context, category trash.Category, filter trash.TrashFilter) ([]trash.Record, error) {
	desc, _ := trash.Lookup(category)
	return r.list(category, func(rec trash.Record) bool {
		return rec.IsDeleted() && filter.Matches(desc, rec)
	}), nil
}

func (r *memRecords) checkUnique(rec trash.Record) error {
	if rec.IsDeleted() {
		return nil
	}
	identity := trash.IdentityOf(rec)
	if identity == "" {
		return nil
	}
	for id, other := range r.records[rec.Category()] {
		if id != rec.GetID() && !other.IsDeleted() && trash.IdentityOf(other) == identity {
			return shared.ErrAlreadyExists
		}
	}
	return nil
}

func (r *memRecords) Create(_ context.Context, rec trash.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkUnique(rec); err != nil {
		return err
	}
	r.nextID++
	setID(rec, r.nextID)
	if r.records[rec.Category()] == nil {
		r.records[rec.Category()] = make(map[int64]trash.Record)
	}
	r.records[rec.Category()][rec.GetID()] = cloneRecord(rec)
	return nil
}

func (r *memRecords) Save(_ context.Context, rec trash.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[rec.Category()][rec.GetID()]; !ok {
		return shared.ErrNotFound
	}
	if err := r.checkUnique(rec); err != nil {
		return err
	}
	r.records[rec.Category()][rec.GetID()] = cloneRecord(rec)
	return nil
}

func setID(rec trash.Record, id int64) {
	switch v := rec.(type) {
	case *trash.Product:
		v.ID = id
	case *trash.Client:
		v.ID = id
	case *trash.Supplier:
		v.ID = id
	case *trash.Sale:
		v.ID = id
	case *trash.Purchase:
		v.ID = id
	}
}

type memConflicts memStore

func (c *memConflicts) FindByID(_ context.Context, id uuid.UUID) (*trash.Conflict, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	conflict, ok := c.conflicts[id]
	if !ok {
		return nil, shared.ErrNotFound.Withf("conflict %s not found", id)
	}
	return cloneConflict(conflict), nil
}

func (c *memConflicts) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trash.Conflict, error) {
	return c.FindByID(ctx, id)
}

func (c *memConflicts) FindPendingByDeletedRecord(_ context.Context, category trash.Category, deletedID int64) (*trash.Conflict, error) {
	return c.findByDeletedRecord(category, deletedID, trash.ConflictStatePending)
}

func (c *memConflicts) FindIgnoredByDeletedRecord(_ context.Context, category trash.Category, deletedID int64) (*trash.Conflict, error) {
	return c.findByDeletedRecord(category, deletedID, trash.ConflictStateResolvedIgnore)
}

func (c *memConflicts) findByDeletedRecord(category trash.Category, deletedID int64, state trash.ConflictState) (*trash.Conflict, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, conflict := range c.conflicts {
		if conflict.Category == category && conflict.DeletedRecordID == deletedID && conflict.State == state {
			return cloneConflict(conflict), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (c *memConflicts) FindAll(_ context.Context, filter trash.ConflictFilter) ([]trash.Conflict, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]trash.Conflict, 0)
	for _, conflict := range c.conflicts {
		if filter.Category != nil && conflict.Category != *filter.Category {
			continue
		}
		if filter.State != nil && conflict.State != *filter.State {
			continue
		}
		out = append(out, *cloneConflict(conflict))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DetectedAt.Before(out[j].DetectedAt) })
	return out, nil
}

func (c *memConflicts) Create(_ context.Context, conflict *trash.Conflict) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, other := range c.conflicts {
		if other.Category == conflict.Category && other.DeletedRecordID == conflict.DeletedRecordID && other.IsPending() {
			return shared.ErrAlreadyExists
		}
	}
	c.conflicts[conflict.ID] = *cloneConflict(*conflict)
	return nil
}

func (c *memConflicts) Save(_ context.Context, conflict *trash.Conflict) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.conflicts[conflict.ID]; !ok {
		return shared.ErrNotFound
	}
	c.conflicts[conflict.ID] = *cloneConflict(*conflict)
	return nil
}

// mutexLocker is a per-key in-process locker
type mutexLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newMutexLocker() *mutexLocker {
	return &mutexLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *mutexLocker) Lock(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock, nil
}

// recordingPublisher keeps published events for assertions
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}
