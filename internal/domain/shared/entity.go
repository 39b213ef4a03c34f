package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for UUID-identified domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for UUID-identified entities
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity(now time.Time) BaseEntity {
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BusinessEntity provides the fields shared by the business master and
// transactional records (products, clients, suppliers, sales, purchases).
// These records keep the integer identifiers the client application uses.
type BusinessEntity struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	SoftDelete
}

// NewBusinessEntity creates a business entity stamped with now
func NewBusinessEntity(now time.Time) BusinessEntity {
	return BusinessEntity{
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetID returns the record identifier
func (e *BusinessEntity) GetID() int64 {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BusinessEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BusinessEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// Touch stamps the entity as modified at now
func (e *BusinessEntity) Touch(now time.Time) {
	e.UpdatedAt = now
}
