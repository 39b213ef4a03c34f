package persistence

import (
	"context"
	"errors"

	"github.com/erp/papelera/internal/domain/shared"
	"github.com/erp/papelera/internal/domain/trash"
	"github.com/erp/papelera/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormConflictRepository implements trash.ConflictRepository using GORM
type GormConflictRepository struct {
	db *gorm.DB
}

// NewGormConflictRepository creates a new GormConflictRepository
func NewGormConflictRepository(db *gorm.DB) *GormConflictRepository {
	return &GormConflictRepository{db: db}
}

// FindByID finds a conflict by its ID
func (r *GormConflictRepository) FindByID(ctx context.Context, id uuid.UUID) (*trash.Conflict, error) {
	return r.findOne(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate finds a conflict and locks its row for the current transaction
func (r *GormConflictRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trash.Conflict, error) {
	return r.findOne(forUpdate(r.db.WithContext(ctx)), id)
}

func (r *GormConflictRepository) findOne(db *gorm.DB, id uuid.UUID) (*trash.Conflict, error) {
	var model models.ConflictModel
	if err := db.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound.Withf("conflict %s not found", id)
		}
		return nil, storageError("find conflict", err)
	}
	return model.ToDomain(), nil
}

// FindPendingByDeletedRecord finds the pending conflict of a deleted record
func (r *GormConflictRepository) FindPendingByDeletedRecord(ctx context.Context, category trash.Category, deletedRecordID int64) (*trash.Conflict, error) {
	return r.findByDeletedRecord(ctx, category, deletedRecordID, trash.ConflictStatePending, "find pending conflict")
}

// FindIgnoredByDeletedRecord finds the conflict that dismissed a deleted record
func (r *GormConflictRepository) FindIgnoredByDeletedRecord(ctx context.Context, category trash.Category, deletedRecordID int64) (*trash.Conflict, error) {
	return r.findByDeletedRecord(ctx, category, deletedRecordID, trash.ConflictStateResolvedIgnore, "find ignored conflict")
}

func (r *GormConflictRepository) findByDeletedRecord(ctx context.Context, category trash.Category, deletedRecordID int64, state trash.ConflictState, op string) (*trash.Conflict, error) {
	var model models.ConflictModel
	err := r.db.WithContext(ctx).
		Where("category = ? AND deleted_record_id = ? AND state = ?",
			category.String(), deletedRecordID, string(state)).
		Order("detected_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, storageError(op, err)
	}
	return model.ToDomain(), nil
}

// FindAll lists conflicts ordered by detection time, oldest first
func (r *GormConflictRepository) FindAll(ctx context.Context, filter trash.ConflictFilter) ([]trash.Conflict, error) {
	q := r.db.WithContext(ctx).Model(&models.ConflictModel{})
	if filter.Category != nil {
		q = q.Where("category = ?", filter.Category.String())
	}
	if filter.State != nil {
		q = q.Where("state = ?", string(*filter.State))
	}

	var rows []models.ConflictModel
	if err := q.Order("detected_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, storageError("list conflicts", err)
	}
	out := make([]trash.Conflict, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Create inserts a conflict. The partial unique index on pending conflicts
// turns a concurrent duplicate into shared.ErrAlreadyExists.
func (r *GormConflictRepository) Create(ctx context.Context, conflict *trash.Conflict) error {
	model := models.ConflictModelFromDomain(conflict)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists.Withf("%s %d already has a pending conflict",
				conflict.Category, conflict.DeletedRecordID)
		}
		return storageError("create conflict", err)
	}
	return nil
}

// Save persists a resolved conflict with optimistic locking on version
func (r *GormConflictRepository) Save(ctx context.Context, conflict *trash.Conflict) error {
	model := models.ConflictModelFromDomain(conflict)
	result := r.db.WithContext(ctx).
		Model(&models.ConflictModel{}).
		Where("id = ? AND version = ?", conflict.ID, conflict.Version-1).
		Updates(map[string]interface{}{
			"state":                model.State,
			"resolved_by_id":       model.ResolvedByID,
			"resolved_by_username": model.ResolvedByUsername,
			"resolved_at":          model.ResolvedAt,
			"resolution_notes":     model.ResolutionNotes,
			"version":              model.Version,
			"updated_at":           model.UpdatedAt,
		})
	if result.Error != nil {
		return storageError("save conflict", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict.Withf("conflict %s was modified by another operator", conflict.ID)
	}
	return nil
}

var _ trash.ConflictRepository = (*GormConflictRepository)(nil)
