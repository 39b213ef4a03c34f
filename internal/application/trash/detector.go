package trash

import (
	"context"
	"errors"

	"github.com/erp/papelera/internal/domain/shared"
	"github.com/erp/papelera/internal/domain/trash"
)

// findCollision returns the active record sharing r's natural identity,
// or nil when r has no identity or nothing collides.
func findCollision(ctx context.Context, records trash.RecordRepository, r trash.Record) (trash.Record, error) {
	identity := trash.IdentityOf(r)
	if identity == "" {
		return nil, nil
	}
	existing, err := records.FindActiveByIdentity(ctx, r.Category(), identity, r.GetID())
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return existing, nil
}

// lockRecord takes the per-record lock; a nil locker means single-writer deployments
func lockRecord(ctx context.Context, locker RecordLocker, category trash.Category, id int64) (func(), error) {
	if locker == nil {
		return func() {}, nil
	}
	return locker.Lock(ctx, RecordLockKey(category, id))
}

func publish(ctx context.Context, publisher shared.EventPublisher, events []shared.DomainEvent) {
	if publisher == nil || len(events) == 0 {
		return
	}
	// Handler failures are logged by the bus and never undo a committed change
	_ = publisher.Publish(ctx, events...)
}
