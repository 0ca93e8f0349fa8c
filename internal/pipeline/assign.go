package pipeline

import (
	"context"
	"fmt"

	"github.com/lucasgnemmi/orderflow/internal/domain"
	"github.com/lucasgnemmi/orderflow/internal/importer"
)

// RuleSource is the override-rule lookup surface the assignment stage
// consults. Satisfied by repository.RuleRepo.
type RuleSource interface {
	ForcedSupplier(ctx context.Context, local, sku string) (string, error)
	BlockedSuppliers(ctx context.Context, sku string) ([]string, error)
	IsBlocked(ctx context.Context, sku, supplier string) (bool, error)
}

// AssignStats counts the rule applications of one assignment pass.
type AssignStats struct {
	ForcedRules int
	StockBlocks int
}

// AssignSuppliers resolves a supplier for each line from the price list and
// the override rules:
//
//   - A SKU absent from the price list drops the line (Missing Price).
//   - An active local+SKU rule forces its supplier outright, even when the
//     price list does not offer that supplier for the SKU.
//   - Otherwise stock blocks filter the candidates when alternatives
//     remain; when the only candidate is blocked the line is dropped.
//   - The first remaining candidate wins.
func AssignSuppliers(ctx context.Context, lines []domain.OrderLine, prices *importer.PriceList, rules RuleSource) (valid, errs []domain.OrderLine, stats AssignStats, warnings []string, err error) {
	for _, line := range lines {
		available := prices.SuppliersFor(line.SKU)
		if len(available) == 0 {
			line.Observation = domain.Observation(line.CostCenter, domain.ReasonMissingPrice, line.PlaceName)
			errs = append(errs, line)
			continue
		}

		forced, ferr := rules.ForcedSupplier(ctx, line.Local, line.SKU)
		if ferr != nil {
			return nil, nil, stats, warnings, fmt.Errorf("looking up forced supplier for %s: %w", line.SKU, ferr)
		}
		if forced != "" {
			if !containsString(available, forced) {
				warnings = append(warnings,
					fmt.Sprintf("forced supplier %s is not priced for SKU %s, forcing anyway", forced, line.SKU))
			}
			available = []string{forced}
			stats.ForcedRules++
		}

		switch {
		case forced == "" && len(available) > 1:
			blocked, berr := rules.BlockedSuppliers(ctx, line.SKU)
			if berr != nil {
				return nil, nil, stats, warnings, fmt.Errorf("listing blocked suppliers for %s: %w", line.SKU, berr)
			}
			if len(blocked) > 0 {
				filtered := withoutSuppliers(available, blocked)
				if len(filtered) > 0 {
					available = filtered
					stats.StockBlocks++
				} else {
					warnings = append(warnings,
						fmt.Sprintf("all suppliers blocked for SKU %s, keeping all", line.SKU))
				}
			}

		case forced == "" && len(available) == 1:
			isBlocked, berr := rules.IsBlocked(ctx, line.SKU, available[0])
			if berr != nil {
				return nil, nil, stats, warnings, fmt.Errorf("checking stock block for %s: %w", line.SKU, berr)
			}
			if isBlocked {
				line.Observation = domain.Observation(line.CostCenter, domain.ReasonBlocked, line.PlaceName)
				errs = append(errs, line)
				stats.StockBlocks++
				continue
			}
		}

		line.Supplier = available[0]
		valid = append(valid, line)
	}
	return valid, errs, stats, warnings, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func withoutSuppliers(list, remove []string) []string {
	removed := make(map[string]bool, len(remove))
	for _, r := range remove {
		removed[r] = true
	}
	var out []string
	for _, v := range list {
		if !removed[v] {
			out = append(out, v)
		}
	}
	return out
}
