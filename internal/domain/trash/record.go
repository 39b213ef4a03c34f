package trash

import (
	"time"

	"github.com/erp/papelera/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Record is a recoverable business record of any category
type Record interface {
	GetID() int64
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
	GetDeletedAt() *time.Time
	IsDeleted() bool
	MarkDeleted(at time.Time) error
	ClearDeleted() error
	Touch(now time.Time)
	Category() Category
}

// Product is a catalog item bought from a supplier
type Product struct {
	shared.BusinessEntity
	Name          string
	Description   string
	SupplierID    *int64
	Stock         int
	PurchasePrice decimal.Decimal
}

// Category implements Record
func (*Product) Category() Category { return CategoryProduct }

// Client is a customer of the business
type Client struct {
	shared.BusinessEntity
	Name    string
	TaxID   string
	Email   string
	Phone   string
	Website string
}

// Category implements Record
func (*Client) Category() Category { return CategoryClient }

// Supplier provides products to the business
type Supplier struct {
	shared.BusinessEntity
	Name          string
	TaxID         string
	ContactPerson string
	Email         string
	Phone         string
	Website       string
}

// Category implements Record
func (*Supplier) Category() Category { return CategorySupplier }

// Sale records products sold to a client
type Sale struct {
	shared.BusinessEntity
	ProductID *int64
	ClientID  *int64
	Quantity  int
	UnitPrice decimal.Decimal
	Invoice   string
	Date      *time.Time
}

// Category implements Record
func (*Sale) Category() Category { return CategorySale }

// Total returns quantity times unit price
func (s *Sale) Total() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// Purchase records products bought from a supplier
type Purchase struct {
	shared.BusinessEntity
	ProductID  *int64
	SupplierID *int64
	Quantity   int
	UnitCost   decimal.Decimal
	Invoice    string
	Date       *time.Time
}

// Category implements Record
func (*Purchase) Category() Category { return CategoryPurchase }

// Total returns quantity times unit cost
func (p *Purchase) Total() decimal.Decimal {
	return p.UnitCost.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// NewRecord returns an empty record of the category, ready to be filled by a store
func NewRecord(c Category) (Record, error) {
	switch c {
	case CategoryProduct:
		return &Product{}, nil
	case CategoryClient:
		return &Client{}, nil
	case CategorySupplier:
		return &Supplier{}, nil
	case CategorySale:
		return &Sale{}, nil
	case CategoryPurchase:
		return &Purchase{}, nil
	}
	return nil, shared.ErrValidation.Withf("unknown category %q", c)
}
