package pipeline

import (
	"sort"
	"strings"

	"github.com/lucasgnemmi/orderflow/internal/domain"
)

type groupKey struct {
	Local        string
	SKU          string
	Supplier     string
	DeliveryDate string
	Observation  string
}

// Consolidate merges duplicate lines: rows from different source files that
// agree on (local, SKU, supplier, delivery date, observation) become one
// line whose quantity is the exact sum. Descriptive fields keep their
// first-seen values; distinct source files are joined with ", ".
func Consolidate(lines []domain.OrderLine) []domain.OrderLine {
	groups := make(map[groupKey]int)
	sources := make(map[groupKey][]string)
	var out []domain.OrderLine

	for _, line := range lines {
		key := groupKey{line.Local, line.SKU, line.Supplier, line.DeliveryDate, line.Observation}
		idx, seen := groups[key]
		if !seen {
			groups[key] = len(out)
			sources[key] = []string{line.SourceFile}
			out = append(out, line)
			continue
		}
		out[idx].Qty = out[idx].Qty.Add(line.Qty)
		if !containsString(sources[key], line.SourceFile) {
			sources[key] = append(sources[key], line.SourceFile)
		}
	}

	for key, idx := range groups {
		out[idx].SourceFile = strings.Join(sources[key], ", ")
	}
	return out
}

// AssignOrderIDs sorts the consolidated lines by (supplier, observation,
// SKU) and walks the sequence assigning a 1-based order identifier that
// increments each time the (supplier, observation) pair changes. Multiple
// SKUs under one supplier-and-delivery-context share one purchase order.
func AssignOrderIDs(lines []domain.OrderLine) []domain.OrderLine {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if a.Supplier != b.Supplier {
			return a.Supplier < b.Supplier
		}
		if a.Observation != b.Observation {
			return a.Observation < b.Observation
		}
		return a.SKU < b.SKU
	})

	nextID := 0
	var lastSupplier, lastObservation string
	for i := range lines {
		if nextID == 0 || lines[i].Supplier != lastSupplier || lines[i].Observation != lastObservation {
			nextID++
			lastSupplier, lastObservation = lines[i].Supplier, lines[i].Observation
		}
		lines[i].OrderID = nextID
	}
	return lines
}
