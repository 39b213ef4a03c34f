package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/erp/papelera/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// isUniqueViolation reports whether err is a unique constraint failure.
// Drivers opened with TranslateError return gorm.ErrDuplicatedKey; the
// message checks cover connections opened without it.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// storageError wraps an unexpected database failure as a transient error.
// Domain errors and context cancellation pass through untouched.
func storageError(op string, err error) error {
	var de *shared.DomainError
	if errors.As(err, &de) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", shared.ErrUnavailable, op, err)
}

// forUpdate adds a row lock on dialects that support SELECT ... FOR UPDATE.
// SQLite serializes writers on its own.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector != nil && db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}
