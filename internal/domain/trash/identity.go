package trash

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

const identitySeparator = "|"

// NormalizeIdentity folds a natural identity component for comparison:
// NFC-normalized, trimmed, inner whitespace collapsed, case-folded.
func NormalizeIdentity(s string) string {
	s = norm.NFC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}

// joinIdentity builds a composite identity. It is empty when every part is empty.
func joinIdentity(prefix string, parts ...string) string {
	normalized := make([]string, len(parts))
	empty := true
	for i, p := range parts {
		normalized[i] = NormalizeIdentity(p)
		if normalized[i] != "" {
			empty = false
		}
	}
	if empty {
		return ""
	}
	return prefix + strings.Join(normalized, identitySeparator)
}

func productIdentity(p *Product) string {
	return NormalizeIdentity(p.Name)
}

func supplierIdentity(s *Supplier) string {
	return joinIdentity("", s.Name, s.TaxID)
}

func clientIdentity(c *Client) string {
	if email := NormalizeIdentity(c.Email); email != "" {
		return "email:" + email
	}
	return joinIdentity("nombre:", c.Name, c.TaxID)
}

func saleIdentity(s *Sale) string {
	return NormalizeIdentity(s.Invoice)
}

func purchaseIdentity(p *Purchase) string {
	return NormalizeIdentity(p.Invoice)
}
