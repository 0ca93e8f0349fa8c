package pipeline

import (
	"sort"
	"time"

	"github.com/lucasgnemmi/orderflow/internal/agenda"
	"github.com/lucasgnemmi/orderflow/internal/domain"
)

// FillDeliveryDates resolves a delivery date per line against the schedule.
// Valid lines get their dd-mm-yyyy delivery date and the
// "CC//dd-mm//PLACE" observation (dd-mm being the dispatch date). Lines
// without a supplier code, or whose supplier yields no date, move to the
// error set. The returned slice lists the distinct supplier codes missing
// from the schedule, sorted.
func FillDeliveryDates(lines []domain.OrderLine, resolver *agenda.Resolver, dispatch time.Time) (valid, errs []domain.OrderLine, missing []string, err error) {
	ddmm := dispatch.Format("02-01")
	missingSet := make(map[string]bool)

	for _, line := range lines {
		code := domain.NormalizeSupplierCode(line.Supplier)
		if code == "" {
			line.Observation = domain.Observation("", domain.ReasonMissingSupplier, "")
			errs = append(errs, line)
			continue
		}

		delivery, derr := resolver.DeliveryDate(code, dispatch)
		if derr != nil {
			return nil, nil, nil, derr
		}
		if delivery == nil {
			missingSet[code] = true
			line.Observation = domain.Observation(line.CostCenter, domain.ReasonMissingSchedule, line.PlaceName)
			errs = append(errs, line)
			continue
		}

		line.Supplier = code
		line.DeliveryDate = delivery.Format(domain.OverrideDateLayout)
		line.Observation = domain.Observation(line.CostCenter, ddmm, domain.CleanPlaceName(line.PlaceName))
		valid = append(valid, line)
	}

	for code := range missingSet {
		missing = append(missing, code)
	}
	sort.Strings(missing)
	return valid, errs, missing, nil
}
