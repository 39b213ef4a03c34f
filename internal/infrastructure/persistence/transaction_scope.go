package persistence

import (
	"context"

	apptrash "github.com/erp/papelera/internal/application/trash"
	"github.com/erp/papelera/internal/domain/trash"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction. If fn returns an error the
// transaction is rolled back, otherwise it is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apptrash.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories hands out repositories bound to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Records returns the record repository scoped to the current transaction
func (r *gormTransactionalRepositories) Records() trash.RecordRepository {
	return NewGormRecordRepository(r.tx)
}

// Conflicts returns the conflict repository scoped to the current transaction
func (r *gormTransactionalRepositories) Conflicts() trash.ConflictRepository {
	return NewGormConflictRepository(r.tx)
}

var _ apptrash.TransactionScope = (*GormTransactionScope)(nil)
var _ apptrash.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
