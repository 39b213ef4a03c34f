package models

import (
	"time"

	"github.com/erp/papelera/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for UUID-keyed models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel extends BaseModel with version for optimistic locking
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// FromDomainAggregateRoot populates AggregateModel from domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Version = a.Version
}

// PopulateAggregateRoot copies the persisted fields into a domain aggregate root
func (m *AggregateModel) PopulateAggregateRoot(a *shared.BaseAggregateRoot) {
	a.BaseEntity = m.BaseModel.ToDomain()
	a.Version = m.Version
}

// RecordModel holds the columns shared by every recoverable business table.
// IdentityKey is the normalized natural identity, empty when the record has none.
type RecordModel struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
	DeletedAt   *time.Time `gorm:"index"`
	IdentityKey string     `gorm:"type:varchar(512);not null;default:''"`
}

// ToDomain converts RecordModel to domain BusinessEntity
func (m *RecordModel) ToDomain() shared.BusinessEntity {
	return shared.BusinessEntity{
		ID:         m.ID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		SoftDelete: shared.SoftDelete{DeletedAt: m.DeletedAt},
	}
}

// FromDomainBusinessEntity populates RecordModel from domain BusinessEntity
func (m *RecordModel) FromDomainBusinessEntity(e shared.BusinessEntity, identity string) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
	m.DeletedAt = e.DeletedAt
	m.IdentityKey = identity
}

// Base returns the shared record columns
func (m *RecordModel) Base() *RecordModel {
	return m
}
