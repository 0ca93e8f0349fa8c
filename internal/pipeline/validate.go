// Package pipeline turns raw order lines into a finalized, deduplicated,
// identifier-tagged output set. Each stage routes failing lines to an error
// set with the reason embedded in the observation; error lines are never
// retried within a run.
package pipeline

import "github.com/lucasgnemmi/orderflow/internal/domain"

// ValidateSKUs keeps lines whose SKU is in the product master. When the
// master is empty, validation is skipped entirely and all lines pass (the
// caller warns about it).
func ValidateSKUs(lines []domain.OrderLine, master map[string]bool) (valid, errs []domain.OrderLine) {
	if len(master) == 0 {
		return lines, nil
	}
	for _, line := range lines {
		if master[line.SKU] {
			valid = append(valid, line)
			continue
		}
		line.Observation = domain.Observation(line.CostCenter, domain.ReasonMissingProduct, line.PlaceName)
		errs = append(errs, line)
	}
	return valid, errs
}
