package trash

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/erp/papelera/internal/domain/trash"
	"github.com/stretchr/testify/require"
)

var (
	manager  = Principal{UserID: "1", Username: "gerente", Roles: []string{"Gerente"}}
	manager2 = Principal{UserID: "3", Username: "gerente2", Roles: []string{"gerente"}}
	employee = Principal{UserID: "2", Username: "empleado", Roles: []string{"Empleado"}}
	root     = Principal{UserID: "9", Username: "admin", Superuser: true}
)

type fixture struct {
	store     *memStore
	trash     *TrashService
	conflicts *ConflictService
	events    *recordingPublisher

	clockMu sync.Mutex
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:  newMemStore(),
		events: &recordingPublisher{},
		now:    time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	locker := newMutexLocker()
	policy := NewAccessPolicy([]string{"Gerente"}, "Pendiente")

	f.trash = NewTrashService(f.store.Records(), f.store.Conflicts(), f.store, locker, policy)
	f.trash.SetEventPublisher(f.events)
	f.trash.SetClock(f.tick)

	f.conflicts = NewConflictService(f.store.Conflicts(), f.store, locker, policy)
	f.conflicts.SetEventPublisher(f.events)
	f.conflicts.SetClock(f.tick)
	return f
}

// tick returns a strictly increasing clock
func (f *fixture) tick() time.Time {
	f.clockMu.Lock()
	defer f.clockMu.Unlock()
	f.now = f.now.Add(time.Minute)
	return f.now
}

func (f *fixture) addProduct(t *testing.T, name string) int64 {
	t.Helper()
	p := &trash.Product{Name: name, Stock: 5}
	p.CreatedAt = f.tick()
	p.UpdatedAt = p.CreatedAt
	require.NoError(t, f.store.Records().Create(context.Background(), p))
	return p.ID
}

func (f *fixture) deleteProduct(t *testing.T, id int64) {
	t.Helper()
	_, err := f.trash.SoftDelete(context.Background(), manager, trash.CategoryProduct, id)
	require.NoError(t, err)
}

func (f *fixture) product(t *testing.T, id int64) trash.Record {
	t.Helper()
	r, err := f.store.Records().FindByID(context.Background(), trash.CategoryProduct, id)
	require.NoError(t, err)
	return r
}

// detectConflict sets up a deleted "Widget" shadowed by an active "widget"
func (f *fixture) detectConflict(t *testing.T) (deletedID, existingID int64, result *RestoreResult) {
	t.Helper()
	deletedID = f.addProduct(t, "Widget")
	f.deleteProduct(t, deletedID)
	existingID = f.addProduct(t, "widget")

	result, err := f.trash.Restore(context.Background(), manager, trash.CategoryProduct, deletedID)
	require.NoError(t, err)
	require.False(t, result.Restored)
	require.NotNil(t, result.ConflictID)
	return deletedID, existingID, result
}
