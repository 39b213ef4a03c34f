package trash

import (
	"context"
	"fmt"

	"github.com/erp/papelera/internal/domain/trash"
)

// RecordLocker serializes restore and resolve calls on the same record.
// Lock blocks until the key is free or ctx is done, and fails with
// shared.ErrConcurrencyConflict when the wait gives up.
type RecordLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// RecordLockKey returns the lock key for a record of a category
func RecordLockKey(category trash.Category, id int64) string {
	return fmt.Sprintf("papelera:lock:%s:%d", category, id)
}
