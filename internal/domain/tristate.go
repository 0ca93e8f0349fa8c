package domain

import (
	"bytes"
	"fmt"
	"strings"
)

// TriState is the three-valued flag used throughout the delivery schedule:
// a weekday (or the D-2 rule) either applies as a delivery trigger, is
// explicitly recorded as not applicable, or carries no opinion at all.
// Only TriApplies affects date computation; TriNotApplicable exists so
// editors can distinguish "deliberately off" from "never considered".
type TriState int

const (
	TriIgnored TriState = iota
	TriApplies
	TriNotApplicable
)

func (t TriState) String() string {
	switch t {
	case TriApplies:
		return "yes"
	case TriNotApplicable:
		return "no"
	default:
		return "-"
	}
}

// ParseTriState accepts the spellings used by flags, forms, and imported
// spreadsheet cells. Empty input and unknown spellings both mean Ignored,
// matching how blank matrix cells behave.
func ParseTriState(s string) (TriState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "1", "true", "applies":
		return TriApplies, nil
	case "no", "n", "0", "false":
		return TriNotApplicable, nil
	case "", "-", "skip", "ignore", "ignored", "null":
		return TriIgnored, nil
	default:
		return TriIgnored, fmt.Errorf("invalid tri-state value %q (want yes, no, or skip)", s)
	}
}

var (
	jsonNull  = []byte("null")
	jsonTrue  = []byte("true")
	jsonFalse = []byte("false")
)

// MarshalJSON encodes the schedule-file representation: 1, 0, or null.
func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case TriApplies:
		return []byte("1"), nil
	case TriNotApplicable:
		return []byte("0"), nil
	default:
		return jsonNull, nil
	}
}

// UnmarshalJSON canonicalizes the loose encodings found in legacy schedule
// files (1/0/null, but also true/false) into one TriState. Anything it does
// not recognize decodes as Ignored rather than failing the whole load.
func (t *TriState) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("1")), bytes.Equal(data, jsonTrue):
		*t = TriApplies
	case bytes.Equal(data, []byte("0")), bytes.Equal(data, jsonFalse):
		*t = TriNotApplicable
	default:
		*t = TriIgnored
	}
	return nil
}
