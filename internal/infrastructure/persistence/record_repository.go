package persistence

import (
	"context"
	"errors"

	"github.com/erp/papelera/internal/domain/shared"
	"github.com/erp/papelera/internal/domain/trash"
	"github.com/erp/papelera/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRecordRepository implements trash.RecordRepository over one table per category
type GormRecordRepository struct {
	db *gorm.DB
}

// NewGormRecordRepository creates a new GormRecordRepository
func NewGormRecordRepository(db *gorm.DB) *GormRecordRepository {
	return &GormRecordRepository{db: db}
}

// FindByID finds a record of a category by id
func (r *GormRecordRepository) FindByID(ctx context.Context, category trash.Category, id int64) (trash.Record, error) {
	return r.findOne(r.db.WithContext(ctx), category, id)
}

// FindByIDForUpdate finds a record and locks its row for the current transaction
func (r *GormRecordRepository) FindByIDForUpdate(ctx context.Context, category trash.Category, id int64) (trash.Record, error) {
	return r.findOne(forUpdate(r.db.WithContext(ctx)), category, id)
}

func (r *GormRecordRepository) findOne(db *gorm.DB, category trash.Category, id int64) (trash.Record, error) {
	row, err := models.NewRecordRow(category)
	if err != nil {
		return nil, shared.ErrValidation.Withf("unknown category %q", category)
	}
	if err := db.Where("id = ?", id).First(row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound.Withf("%s %d not found", category, id)
		}
		return nil, storageError("find record", err)
	}
	return row.ToRecord(), nil
}

// FindActiveByIdentity finds the active record holding identity, other than excludeID
func (r *GormRecordRepository) FindActiveByIdentity(ctx context.Context, category trash.Category, identity string, excludeID int64) (trash.Record, error) {
	if identity == "" {
		return nil, shared.ErrNotFound
	}
	row, err := models.NewRecordRow(category)
	if err != nil {
		return nil, shared.ErrValidation.Withf("unknown category %q", category)
	}
	err = r.db.WithContext(ctx).
		Where("identity_key = ? AND deleted_at IS NULL AND id <> ?", identity, excludeID).
		Order("id").
		First(row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, storageError("find by identity", err)
	}
	return row.ToRecord(), nil
}

// FindActive lists the active records of a category ordered by id
func (r *GormRecordRepository) FindActive(ctx context.Context, category trash.Category) ([]trash.Record, error) {
	return r.findMany(category, r.db.WithContext(ctx).Where("deleted_at IS NULL").Order("id"))
}

// FindDeleted lists deleted records, most recently deleted first. The text
// predicate and the date bounds are always evaluated on the loaded records so
// they fold case and compare instants the same way the domain does. Date
// bounds are also pushed into SQL, except on SQLite where timestamps are
// stored as offset-bearing text and compare as strings.
func (r *GormRecordRepository) FindDeleted(ctx context.Context, category trash.Category, filter trash.TrashFilter) ([]trash.Record, error) {
	desc, ok := trash.Lookup(category)
	if !ok {
		return nil, shared.ErrValidation.Withf("unknown category %q", category)
	}

	q := r.db.WithContext(ctx).Where("deleted_at IS NOT NULL")
	if filter.HasDateBounds() {
		column := string(desc.DateField)
		q = q.Where(column + " IS NOT NULL")
		if r.db.Dialector.Name() != "sqlite" {
			from, to := filter.Bounds()
			if from != nil {
				q = q.Where(column+" >= ?", from.UTC())
			}
			if to != nil {
				q = q.Where(column+" <= ?", to.UTC())
			}
		}
	}
	q = q.Order("deleted_at DESC").Order("id DESC")

	records, err := r.findMany(category, q)
	if err != nil {
		return nil, err
	}
	if filter.Term() == "" && !filter.HasDateBounds() {
		return records, nil
	}
	matched := records[:0]
	for _, rec := range records {
		if filter.Matches(desc, rec) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func (r *GormRecordRepository) findMany(category trash.Category, q *gorm.DB) ([]trash.Record, error) {
	switch category {
	case trash.CategoryProduct:
		return findRows[models.ProductModel](q)
	case trash.CategoryClient:
		return findRows[models.ClientModel](q)
	case trash.CategorySupplier:
		return findRows[models.SupplierModel](q)
	case trash.CategorySale:
		return findRows[models.SaleModel](q)
	case trash.CategoryPurchase:
		return findRows[models.PurchaseModel](q)
	}
	return nil, shared.ErrValidation.Withf("unknown category %q", category)
}

func findRows[M any, PM interface {
	*M
	models.RecordRow
}](q *gorm.DB) ([]trash.Record, error) {
	var rows []M
	if err := q.Find(&rows).Error; err != nil {
		return nil, storageError("list records", err)
	}
	out := make([]trash.Record, len(rows))
	for i := range rows {
		out[i] = PM(&rows[i]).ToRecord()
	}
	return out, nil
}

// Create inserts a record and copies the generated id back into it
func (r *GormRecordRepository) Create(ctx context.Context, record trash.Record) error {
	row, err := models.RecordRowFromDomain(record)
	if err != nil {
		return shared.ErrValidation.Withf("%v", err)
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists.Withf("an active %s with the same identity already exists", record.Category())
		}
		return storageError("create record", err)
	}
	assignID(record, row.Base().ID)
	return nil
}

// Save writes every column of an existing record
func (r *GormRecordRepository) Save(ctx context.Context, record trash.Record) error {
	row, err := models.RecordRowFromDomain(record)
	if err != nil {
		return shared.ErrValidation.Withf("%v", err)
	}
	result := r.db.WithContext(ctx).
		Model(row).
		Select("*").
		Omit("id", "created_at").
		Where("id = ?", record.GetID()).
		Updates(row)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return shared.ErrAlreadyExists.Withf("an active %s with the same identity already exists", record.Category())
		}
		return storageError("save record", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound.Withf("%s %d not found", record.Category(), record.GetID())
	}
	return nil
}

func assignID(record trash.Record, id int64) {
	switch v := record.(type) {
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

var _ trash.RecordRepository = (*GormRecordRepository)(nil)
