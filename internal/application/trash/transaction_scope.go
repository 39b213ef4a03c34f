package trash

import (
	"context"

	"github.com/erp/papelera/internal/domain/trash"
)

// TransactionScope runs trash mutations atomically. Every repository handed
// to fn shares one database transaction which is committed when fn returns nil.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to the current transaction
type TransactionalRepositories interface {
	Records() trash.RecordRepository
	Conflicts() trash.ConflictRepository
}
