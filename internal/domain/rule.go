package domain

import "time"

// LocalRule forces a supplier for a (destination, SKU) pair. It takes
// precedence over every other assignment rule, including the price list:
// a forced supplier is used even when the price list does not offer it.
type LocalRule struct {
	ID          string
	Local       string
	SKU         string
	Supplier    string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StockBlock removes a supplier from consideration for a SKU, typically
// because of a stock-out. A blocked supplier that is the only candidate
// (and not forced by a LocalRule) drops the order line entirely.
type StockBlock struct {
	ID        string
	SKU       string
	Supplier  string
	Reason    string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
