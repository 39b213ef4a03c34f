package trash

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func deletedProduct(id int64, name string, created time.Time) *Product {
	p := &Product{Name: name}
	p.ID = id
	p.CreatedAt = created
	p.UpdatedAt = created
	deletedAt := created.Add(time.Hour)
	p.DeletedAt = &deletedAt
	return p
}

func activeProduct(id int64, name string, created time.Time) *Product {
	p := &Product{Name: name}
	p.ID = id
	p.CreatedAt = created
	p.UpdatedAt = created
	return p
}
