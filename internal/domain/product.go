package domain

import (
	"strings"
	"time"
)

// Product is one entry in the product master list. Only SKUs present here
// are eligible for ordering.
type Product struct {
	ID          string
	SKU         string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NormalizeSKU canonicalizes a SKU the way every intake path does: trimmed
// and upper-cased.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}
