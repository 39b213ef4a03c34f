package trash

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/erp/papelera/internal/domain/shared"
	"github.com/erp/papelera/internal/domain/trash"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrashService_SoftDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("moves record to trash", func(t *testing.T) {
		f := newFixture(t)
		id := f.addProduct(t, "Widget")

		resp, err := f.trash.SoftDelete(ctx, manager, trash.CategoryProduct, id)
		require.NoError(t, err)
		assert.Equal(t, id, resp.ID)
		assert.NotNil(t, resp.DeletedAt)
		assert.True(t, f.product(t, id).IsDeleted())
		assert.Equal(t, []string{trash.EventTypeRecordSoftDeleted}, f.events.types())
	})

	t.Run("double delete is rejected", func(t *testing.T) {
		f := newFixture(t)
		id := f.addProduct(t, "Widget")
		f.deleteProduct(t, id)
		deletedAt := *f.product(t, id).GetDeletedAt()

		_, err := f.trash.SoftDelete(ctx, manager, trash.CategoryProduct, id)
		assert.ErrorIs(t, err, shared.ErrAlreadyDeleted)
		assert.Equal(t, deletedAt, *f.product(t, id).GetDeletedAt())
	})

	t.Run("unknown record", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.trash.SoftDelete(ctx, manager, trash.CategoryProduct, 404)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("employees cannot delete", func(t *testing.T) {
		f := newFixture(t)
		id := f.addProduct(t, "Widget")
		_, err := f.trash.SoftDelete(ctx, employee, trash.CategoryProduct, id)
		assert.ErrorIs(t, err, shared.ErrForbidden)
		assert.False(t, f.product(t, id).IsDeleted())
	})
}

func TestTrashService_ListTrash(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	kept := f.addProduct(t, "Active widget")
	azul := f.addProduct(t, "Widget Azul")
	rojo := f.addProduct(t, "Widget Rojo")
	f.deleteProduct(t, azul)
	f.deleteProduct(t, rojo)

	all, err := f.trash.ListTrash(ctx, manager, trash.CategoryProduct, ListTrashRequest{})
	require.NoError(t, err)
	ids := make([]int64, len(all))
	for i, r := range all {
		ids[i] = r.ID
	}
	assert.ElementsMatch(t, []int64{azul, rojo}, ids)
	assert.NotContains(t, ids, kept)

	found, err := f.trash.ListTrash(ctx, manager, trash.CategoryProduct, ListTrashRequest{Search: "  AZUL "})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, azul, found[0].ID)
	assert.Equal(t, "PRODUCTO", found[0].TipoModelo)

	future := f.now.Add(48 * time.Hour)
	none, err := f.trash.ListTrash(ctx, manager, trash.CategoryProduct, ListTrashRequest{From: &future})
	require.NoError(t, err)
	assert.Empty(t, none)

	past := f.now.Add(-48 * time.Hour)
	_, err = f.trash.ListTrash(ctx, manager, trash.CategoryProduct, ListTrashRequest{From: &future, To: &past})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = f.trash.ListTrash(ctx, employee, trash.CategoryProduct, ListTrashRequest{})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = f.trash.ListTrash(ctx, manager, trash.Category("FACTURA"), ListTrashRequest{})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestTrashService_ListActive(t *testing.T) {
	f := newFixture(t)
	a := f.addProduct(t, "A")
	b := f.addProduct(t, "B")
	f.deleteProduct(t, b)

	active, err := f.trash.ListActive(context.Background(), employee, trash.CategoryProduct)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, a, active[0].ID)

	pending := Principal{UserID: "5", Username: "nuevo", Roles: []string{"Pendiente"}}
	_, err = f.trash.ListActive(context.Background(), pending, trash.CategoryProduct)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestTrashService_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("restores directly without collision", func(t *testing.T) {
		f := newFixture(t)
		id := f.addProduct(t, "Widget")
		f.deleteProduct(t, id)

		result, err := f.trash.Restore(ctx, manager, trash.CategoryProduct, id)
		require.NoError(t, err)
		assert.True(t, result.Restored)
		require.NotNil(t, result.Record)
		assert.Nil(t, result.Record.DeletedAt)
		assert.Nil(t, result.ConflictID)
		assert.False(t, f.product(t, id).IsDeleted())

		conflicts, err := f.store.Conflicts().FindAll(ctx, trash.ConflictFilter{})
		require.NoError(t, err)
		assert.Empty(t, conflicts)
		assert.Equal(t, []string{trash.EventTypeRecordSoftDeleted, trash.EventTypeRecordRestored}, f.events.types())
	})

	t.Run("collision creates a pending conflict", func(t *testing.T) {
		f := newFixture(t)
		deletedID, existingID, result := f.detectConflict(t)

		assert.True(t, result.ConflictCreated)
		assert.Equal(t, MensajeConflictoDetectado, result.Mensaje)
		require.NotNil(t, result.Conflict)
		assert.Equal(t, EstadoPendiente, result.Conflict.Estado)
		assert.Equal(t, deletedID, result.Conflict.IDBorrado)
		assert.Equal(t, existingID, result.Conflict.IDExistente)
		assert.Equal(t, "gerente", result.Conflict.DetectadoPorUsername)

		assert.True(t, f.product(t, deletedID).IsDeleted(), "restore must be blocked")
		assert.Contains(t, f.events.types(), trash.EventTypeConflictDetected)
	})

	t.Run("repeated restore returns the same conflict", func(t *testing.T) {
		f := newFixture(t)
		deletedID, _, first := f.detectConflict(t)

		again, err := f.trash.Restore(ctx, manager2, trash.CategoryProduct, deletedID)
		require.NoError(t, err)
		assert.False(t, again.ConflictCreated)
		assert.Equal(t, *first.ConflictID, *again.ConflictID)
		assert.Equal(t, "gerente", again.Conflict.DetectadoPorUsername)

		all, err := f.store.Conflicts().FindAll(ctx, trash.ConflictFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("active record cannot be restored", func(t *testing.T) {
		f := newFixture(t)
		id := f.addProduct(t, "Widget")
		_, err := f.trash.Restore(ctx, manager, trash.CategoryProduct, id)
		assert.ErrorIs(t, err, shared.ErrAlreadyActive)
	})

	t.Run("missing record", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.trash.Restore(ctx, manager, trash.CategoryProduct, 77)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("records without identity never collide", func(t *testing.T) {
		f := newFixture(t)
		first := &trash.Sale{Quantity: 1}
		second := &trash.Sale{Quantity: 2}
		require.NoError(t, f.store.Records().Create(ctx, first))
		require.NoError(t, f.store.Records().Create(ctx, second))
		_, err := f.trash.SoftDelete(ctx, manager, trash.CategorySale, first.ID)
		require.NoError(t, err)

		result, err := f.trash.Restore(ctx, manager, trash.CategorySale, first.ID)
		require.NoError(t, err)
		assert.True(t, result.Restored)
	})

	t.Run("unapproved callers are rejected", func(t *testing.T) {
		f := newFixture(t)
		id := f.addProduct(t, "Widget")
		f.deleteProduct(t, id)

		_, err := f.trash.Restore(ctx, employee, trash.CategoryProduct, id)
		assert.ErrorIs(t, err, shared.ErrForbidden)
		_, err = f.trash.Restore(ctx, Principal{}, trash.CategoryProduct, id)
		assert.ErrorIs(t, err, shared.ErrUnauthorized)

		result, err := f.trash.Restore(ctx, root, trash.CategoryProduct, id)
		require.NoError(t, err)
		assert.True(t, result.Restored)
	})
}

func TestTrashService_ConcurrentRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("concurrent detections share one conflict", func(t *testing.T) {
		f := newFixture(t)
		deletedID := f.addProduct(t, "Widget")
		f.deleteProduct(t, deletedID)
		f.addProduct(t, "WIDGET")

		const workers = 8
		ids := make([]uuid.UUID, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				result, err := f.trash.Restore(ctx, manager, trash.CategoryProduct, deletedID)
				if assert.NoError(t, err) && assert.NotNil(t, result.ConflictID) {
					ids[i] = *result.ConflictID
				}
			}(i)
		}
		wg.Wait()

		for _, id := range ids[1:] {
			assert.Equal(t, ids[0], id)
		}
		pending, err := f.store.Conflicts().FindAll(ctx, trash.PendingOnly(nil))
		require.NoError(t, err)
		assert.Len(t, pending, 1)
	})

	t.Run("only one concurrent direct restore succeeds", func(t *testing.T) {
		f := newFixture(t)
		id := f.addProduct(t, "Widget")
		f.deleteProduct(t, id)

		const workers = 8
		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			restored int
			active   int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				result, err := f.trash.Restore(ctx, manager, trash.CategoryProduct, id)
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil && result.Restored:
					restored++
				case err != nil && assert.ErrorIs(t, err, shared.ErrAlreadyActive):
					active++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, restored)
		assert.Equal(t, workers-1, active)
	})
}
