package models

import (
	"time"

	"github.com/erp/papelera/internal/domain/trash"
)

// ConflictModel is the persistence model for identity conflicts
type ConflictModel struct {
	AggregateModel
	Category           string     `gorm:"type:varchar(20);not null"`
	DeletedRecordID    int64      `gorm:"not null"`
	ExistingRecordID   int64      `gorm:"not null"`
	State              string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	DetectedByID       string     `gorm:"type:varchar(64)"`
	DetectedByUsername string     `gorm:"type:varchar(150)"`
	DetectedAt         time.Time  `gorm:"not null;index"`
	ResolvedByID       *string    `gorm:"type:varchar(64)"`
	ResolvedByUsername *string    `gorm:"type:varchar(150)"`
	ResolvedAt         *time.Time
	ResolutionNotes    string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ConflictModel) TableName() string {
	return "conflicts"
}

// ToDomain converts the model to a domain conflict
func (m *ConflictModel) ToDomain() *trash.Conflict {
	c := &trash.Conflict{
		Category:         trash.Category(m.Category),
		DeletedRecordID:  m.DeletedRecordID,
		ExistingRecordID: m.ExistingRecordID,
		State:            trash.ConflictState(m.State),
		DetectedBy:       trash.Actor{ID: m.DetectedByID, Username: m.DetectedByUsername},
		DetectedAt:       m.DetectedAt,
		ResolvedAt:       m.ResolvedAt,
		ResolutionNotes:  m.ResolutionNotes,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	if m.ResolvedByID != nil || m.ResolvedByUsername != nil {
		var actor trash.Actor
		if m.ResolvedByID != nil {
			actor.ID = *m.ResolvedByID
		}
		if m.ResolvedByUsername != nil {
			actor.Username = *m.ResolvedByUsername
		}
		c.ResolvedBy = &actor
	}
	return c
}

// FromDomain populates the model from a domain conflict
func (m *ConflictModel) FromDomain(c *trash.Conflict) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Category = c.Category.String()
	m.DeletedRecordID = c.DeletedRecordID
	m.ExistingRecordID = c.ExistingRecordID
	m.State = string(c.State)
	m.DetectedByID = c.DetectedBy.ID
	m.DetectedByUsername = c.DetectedBy.Username
	m.DetectedAt = c.DetectedAt
	m.ResolvedAt = c.ResolvedAt
	m.ResolutionNotes = c.ResolutionNotes
	m.ResolvedByID, m.ResolvedByUsername = nil, nil
	if c.ResolvedBy != nil {
		id, username := c.ResolvedBy.ID, c.ResolvedBy.Username
		m.ResolvedByID = &id
		m.ResolvedByUsername = &username
	}
}

// ConflictModelFromDomain creates a model from a domain conflict
func ConflictModelFromDomain(c *trash.Conflict) *ConflictModel {
	m := &ConflictModel{}
	m.FromDomain(c)
	return m
}
