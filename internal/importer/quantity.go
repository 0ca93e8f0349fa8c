// Package importer reads the spreadsheet inputs of an order run: the raw
// order files, the supplier price list, and the bulk-edit workbooks for the
// reference datasets.
package importer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseQuantity converts a raw spreadsheet quantity cell into an exact
// decimal. Quantities arrive in European formats ("1.234,56") as well as
// plain ones ("12.5"); decimals are kept exactly as written, never rounded.
func ParseQuantity(raw string) (decimal.Decimal, error) {
	q := strings.TrimSpace(raw)
	if strings.Contains(q, ".") && strings.Contains(q, ",") {
		// Thousands dots plus decimal comma.
		q = strings.ReplaceAll(q, ".", "")
		q = strings.ReplaceAll(q, ",", ".")
	} else {
		q = strings.ReplaceAll(q, ",", ".")
	}

	d, err := decimal.NewFromString(q)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cannot convert quantity %q to a number", raw)
	}
	return d, nil
}
