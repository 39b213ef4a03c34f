package trash

import (
	"strings"

	"github.com/erp/papelera/internal/domain/shared"
)

// Category identifies one kind of recoverable business record
type Category string

const (
	CategoryProduct  Category = "PRODUCTO"
	CategoryClient   Category = "CLIENTE"
	CategorySupplier Category = "PROVEEDOR"
	CategorySale     Category = "VENTA"
	CategoryPurchase Category = "COMPRA"
)

// DateField names the recency field a category is filtered by
type DateField string

const (
	DateFieldCreatedAt DateField = "created_at"
	DateFieldFecha     DateField = "fecha"
)

// String returns the wire value of the category
func (c Category) String() string {
	return string(c)
}

// IsValid reports whether the category is registered
func (c Category) IsValid() bool {
	_, ok := Lookup(c)
	return ok
}

// Slug returns the URL segment used for the category (e.g. "productos")
func (c Category) Slug() string {
	d, ok := Lookup(c)
	if !ok {
		return ""
	}
	return d.Slug
}

// ParseCategory accepts either the category code or its slug, case-insensitively
func ParseCategory(s string) (Category, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", shared.ErrValidation.Withf("category is required")
	}
	if d, ok := Lookup(Category(strings.ToUpper(v))); ok {
		return d.Category, nil
	}
	if d, ok := LookupSlug(strings.ToLower(v)); ok {
		return d.Category, nil
	}
	return "", shared.ErrValidation.Withf("unknown category %q", s)
}
