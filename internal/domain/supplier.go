package domain

import "strings"

// OverrideDateLayout is the wire format for manual override dates and for
// every date the pipeline writes into reports.
const OverrideDateLayout = "02-01-2006"

// SupplierProfile is one row of the weekly delivery matrix: which weekdays
// trigger a delivery for this supplier, whether the D-2 rule applies, and an
// optional manual override date that bypasses all computed logic.
type SupplierProfile struct {
	Code string `json:"-"`
	Name string `json:"name"`

	// Days holds one flag per delivery weekday, indexed by Weekday
	// (Monday..Saturday).
	Days [6]TriState `json:"-"`

	DMinus2 TriState `json:"d_minus_2"`

	// ManualOverride is a dd-mm-yyyy date string, empty when unset. A value
	// that fails to parse is treated as unset at resolution time.
	ManualOverride string `json:"manual_override_date,omitempty"`
}

// Day returns the flag for the given weekday; Sunday is always Ignored.
func (p *SupplierProfile) Day(w Weekday) TriState {
	if w < Monday || w > Saturday {
		return TriIgnored
	}
	return p.Days[w]
}

// HasTriggers reports whether any delivery trigger is switched on at all.
func (p *SupplierProfile) HasTriggers() bool {
	if p.DMinus2 == TriApplies {
		return true
	}
	for _, d := range p.Days {
		if d == TriApplies {
			return true
		}
	}
	return false
}

// NormalizeSupplierCode canonicalizes a supplier code for use as a lookup
// key: trimmed, upper-cased, with the ".0" suffix that spreadsheet numeric
// cells grow stripped off.
func NormalizeSupplierCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	return strings.TrimSuffix(code, ".0")
}
