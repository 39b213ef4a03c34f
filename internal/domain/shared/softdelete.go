package shared

import "time"

// SoftDelete is the deletion state carried by recoverable records.
// A record is active iff DeletedAt is nil.
type SoftDelete struct {
	DeletedAt *time.Time
}

// IsDeleted reports whether the record sits in the trash
func (s *SoftDelete) IsDeleted() bool {
	return s.DeletedAt != nil
}

// MarkDeleted moves the record to the trash. Deleting twice is rejected.
func (s *SoftDelete) MarkDeleted(at time.Time) error {
	if s.DeletedAt != nil {
		return ErrAlreadyDeleted
	}
	t := at
	s.DeletedAt = &t
	return nil
}

// ClearDeleted brings the record back from the trash
func (s *SoftDelete) ClearDeleted() error {
	if s.DeletedAt == nil {
		return ErrAlreadyActive
	}
	s.DeletedAt = nil
	return nil
}

// GetDeletedAt returns when the record was deleted, nil while active
func (s *SoftDelete) GetDeletedAt() *time.Time {
	return s.DeletedAt
}
