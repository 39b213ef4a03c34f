package trash

import (
	"strings"
	"time"

	"github.com/erp/papelera/internal/domain/shared"
	"golang.org/x/text/cases"
)

// TrashFilter narrows a trash listing. Zero value matches every deleted record.
type TrashFilter struct {
	Search string
	From   *time.Time
	To     *time.Time
}

// Validate rejects inverted date ranges
func (f TrashFilter) Validate() error {
	if f.From != nil && f.To != nil && EndOfDay(*f.To).Before(*f.From) {
		return shared.ErrValidation.Withf("fecha_fin %s is before fecha_inicio %s",
			f.To.Format(time.DateOnly), f.From.Format(time.DateOnly))
	}
	return nil
}

// Term returns the trimmed search term
func (f TrashFilter) Term() string {
	return strings.TrimSpace(f.Search)
}

// HasDateBounds reports whether either date bound is set
func (f TrashFilter) HasDateBounds() bool {
	return f.From != nil || f.To != nil
}

// Bounds returns the inclusive instants the recency date must fall between.
// The upper bound is the last instant of the To day.
func (f TrashFilter) Bounds() (from, to *time.Time) {
	if f.From != nil {
		t := *f.From
		from = &t
	}
	if f.To != nil {
		t := EndOfDay(*f.To)
		to = &t
	}
	return from, to
}

// Matches reports whether the deleted record r satisfies every supplied predicate
func (f TrashFilter) Matches(d Descriptor, r Record) bool {
	if term := f.Term(); term != "" {
		if !matchesText(cases.Fold().String(term), d.SearchFields(r)) {
			return false
		}
	}
	if f.HasDateBounds() {
		date := d.Date(r)
		if date == nil {
			return false
		}
		from, to := f.Bounds()
		if from != nil && date.Before(*from) {
			return false
		}
		if to != nil && date.After(*to) {
			return false
		}
	}
	return true
}

func matchesText(folded string, fields []string) bool {
	for _, field := range fields {
		if field == "" {
			continue
		}
		if strings.Contains(cases.Fold().String(field), folded) {
			return true
		}
	}
	return false
}

// EndOfDay returns the last nanosecond of t's calendar day in t's location
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location()).Add(-time.Nanosecond)
}
