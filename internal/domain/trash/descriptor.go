package trash

import (
	"strconv"
	"time"
)

// Descriptor tells the generic trash engine how a category behaves:
// its natural identity, the fields free text searches and its recency date.
type Descriptor struct {
	Category  Category
	Slug      string
	Label     string
	DateField DateField

	identity func(Record) string
	search   func(Record) []string
	date     func(Record) *time.Time
}

// Identity returns the normalized natural identity of r, "" when it has none
func (d Descriptor) Identity(r Record) string {
	if r == nil || d.identity == nil {
		return ""
	}
	return d.identity(r)
}

// SearchFields returns the stringified id plus the name, tax id and invoice
// values present on the category shape
func (d Descriptor) SearchFields(r Record) []string {
	fields := []string{strconv.FormatInt(r.GetID(), 10)}
	if d.search != nil {
		fields = append(fields, d.search(r)...)
	}
	return fields
}

// Date returns the recency date of r, nil when the record has none
func (d Descriptor) Date(r Record) *time.Time {
	if d.date == nil {
		return nil
	}
	return d.date(r)
}

func describe[T Record](
	category Category,
	slug, label string,
	field DateField,
	identity func(T) string,
	search func(T) []string,
	date func(T) *time.Time,
) Descriptor {
	return Descriptor{
		Category:  category,
		Slug:      slug,
		Label:     label,
		DateField: field,
		identity: func(r Record) string {
			t, ok := r.(T)
			if !ok {
				return ""
			}
			return identity(t)
		},
		search: func(r Record) []string {
			t, ok := r.(T)
			if !ok {
				return nil
			}
			return search(t)
		},
		date: func(r Record) *time.Time {
			t, ok := r.(T)
			if !ok {
				return nil
			}
			return date(t)
		},
	}
}

func createdAt[T Record](r T) *time.Time {
	t := r.GetCreatedAt()
	return &t
}

var descriptors = []Descriptor{
	describe(CategoryProduct, "productos", "Producto", DateFieldCreatedAt,
		productIdentity,
		func(p *Product) []string { return []string{p.Name} },
		createdAt[*Product]),
	describe(CategoryClient, "clientes", "Cliente", DateFieldCreatedAt,
		clientIdentity,
		func(c *Client) []string { return []string{c.Name, c.TaxID} },
		createdAt[*Client]),
	describe(CategorySupplier, "proveedores", "Proveedor", DateFieldCreatedAt,
		supplierIdentity,
		func(s *Supplier) []string { return []string{s.Name, s.TaxID} },
		createdAt[*Supplier]),
	describe(CategorySale, "ventas", "Venta", DateFieldFecha,
		saleIdentity,
		func(s *Sale) []string { return []string{s.Invoice} },
		func(s *Sale) *time.Time { return s.Date }),
	describe(CategoryPurchase, "compras", "Compra", DateFieldFecha,
		purchaseIdentity,
		func(p *Purchase) []string { return []string{p.Invoice} },
		func(p *Purchase) *time.Time { return p.Date }),
}

var (
	byCategory = make(map[Category]Descriptor, len(descriptors))
	bySlug     = make(map[string]Descriptor, len(descriptors))
)

func init() {
	for _, d := range descriptors {
		byCategory[d.Category] = d
		bySlug[d.Slug] = d
	}
}

// Lookup returns the descriptor registered for c
func Lookup(c Category) (Descriptor, bool) {
	d, ok := byCategory[c]
	return d, ok
}

// LookupSlug returns the descriptor registered under a URL slug
func LookupSlug(slug string) (Descriptor, bool) {
	d, ok := bySlug[slug]
	return d, ok
}

// Descriptors returns every registered category in a stable order
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// IdentityOf returns the natural identity of r using its category descriptor
func IdentityOf(r Record) string {
	d, ok := Lookup(r.Category())
	if !ok {
		return ""
	}
	return d.Identity(r)
}
