package trash

import (
	"testing"
	"time"

	"github.com/erp/papelera/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConflict(t *testing.T) {
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	actor := Actor{ID: "1", Username: "gerente"}

	t.Run("opens pending conflict", func(t *testing.T) {
		deleted := deletedProduct(7, "Widget", now.Add(-48*time.Hour))
		existing := activeProduct(12, "widget", now.Add(-time.Hour))

		c, err := NewConflict(deleted, existing, actor, now)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, c.ID)
		assert.Equal(t, CategoryProduct, c.Category)
		assert.Equal(t, int64(7), c.DeletedRecordID)
		assert.Equal(t, int64(12), c.ExistingRecordID)
		assert.Equal(t, ConflictStatePending, c.State)
		assert.Equal(t, actor, c.DetectedBy)
		assert.Equal(t, now, c.DetectedAt)
		assert.Nil(t, c.ResolvedBy)
		assert.Nil(t, c.ResolvedAt)

		events := c.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeConflictDetected, events[0].EventType())
		assert.Equal(t, c.ID.String(), events[0].AggregateID())
	})

	t.Run("rejects active deleted record", func(t *testing.T) {
		_, err := NewConflict(activeProduct(7, "a", now), activeProduct(12, "a", now), actor, now)
		assert.ErrorIs(t, err, shared.ErrAlreadyActive)
	})

	t.Run("rejects deleted existing record", func(t *testing.T) {
		_, err := NewConflict(deletedProduct(7, "a", now), deletedProduct(12, "a", now), actor, now)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("rejects mixed categories", func(t *testing.T) {
		client := &Client{Name: "a"}
		client.ID = 12
		_, err := NewConflict(deletedProduct(7, "a", now), client, actor, now)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

func TestConflict_Resolve(t *testing.T) {
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	detector := Actor{ID: "1", Username: "gerente"}
	resolver := Actor{ID: "2", Username: "admin"}

	newPending := func(t *testing.T) *Conflict {
		c, err := NewConflict(deletedProduct(7, "Widget", now), activeProduct(12, "Widget", now), detector, now)
		require.NoError(t, err)
		c.ClearDomainEvents()
		return c
	}

	tests := []struct {
		decision Resolution
		want     ConflictState
	}{
		{ResolutionRestore, ConflictStateResolvedRestore},
		{ResolutionIgnore, ConflictStateResolvedIgnore},
	}
	for _, tt := range tests {
		t.Run(string(tt.decision), func(t *testing.T) {
			c := newPending(t)
			later := now.Add(time.Hour)

			require.NoError(t, c.Resolve(tt.decision, resolver, "  checked with sales  ", later))
			assert.Equal(t, tt.want, c.State)
			assert.True(t, c.State.IsTerminal())
			require.NotNil(t, c.ResolvedBy)
			assert.Equal(t, resolver, *c.ResolvedBy)
			assert.Equal(t, later, *c.ResolvedAt)
			assert.Equal(t, "checked with sales", c.ResolutionNotes)
			assert.Equal(t, 2, c.GetVersion())

			events := c.GetDomainEvents()
			require.Len(t, events, 1)
			assert.Equal(t, EventTypeConflictResolved, events[0].EventType())

			// terminal: any further decision fails and changes nothing
			for _, again := range []Resolution{ResolutionRestore, ResolutionIgnore} {
				err := c.Resolve(again, detector, "again", later.Add(time.Hour))
				assert.ErrorIs(t, err, shared.ErrAlreadyResolved)
			}
			assert.Equal(t, tt.want, c.State)
			assert.Equal(t, resolver, *c.ResolvedBy)
			assert.Equal(t, later, *c.ResolvedAt)
		})
	}

	t.Run("unknown decision", func(t *testing.T) {
		c := newPending(t)
		err := c.Resolve(Resolution("MAYBE"), resolver, "", now)
		assert.ErrorIs(t, err, shared.ErrValidation)
		assert.True(t, c.IsPending())
	})
}

func TestParseResolution(t *testing.T) {
	for in, want := range map[string]Resolution{
		"RESTAURAR": ResolutionRestore,
		"restore":   ResolutionRestore,
		" Ignorar ": ResolutionIgnore,
		"IGNORE":    ResolutionIgnore,
	} {
		got, err := ParseResolution(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseResolution("BORRAR")
	assert.ErrorIs(t, err, shared.ErrValidation)
}
