package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderLine is one purchase-order line as it flows through the pipeline.
// It is created from a raw spreadsheet row and enriched stage by stage;
// a line that fails a stage moves to the error set with the reason embedded
// in its Observation and is never touched again.
type OrderLine struct {
	Local      string
	SKU        string
	Qty        decimal.Decimal
	CostCenter string
	PlaceName  string
	SourceFile string

	// Filled by supplier assignment.
	Supplier string

	// Filled by date resolution: dd-mm-yyyy delivery date and the
	// "CC//dd-mm//PLACE" observation string.
	DeliveryDate string
	Observation  string

	// Filled by ID assignment.
	OrderID int
}

// Error reason tags embedded in the observation of rejected lines.
const (
	ReasonMissingProduct  = "Missing From Product Master"
	ReasonMissingPrice    = "Missing Price"
	ReasonBlocked         = "Blocked By Stock Rule"
	ReasonMissingSchedule = "Missing From Schedule"
	ReasonMissingSupplier = "Missing Supplier Code"
)

// Observation builds the three-part observation string carried on every
// processed line: cost center, a middle segment (the dispatch date as dd-mm
// for valid lines, a reason tag for error lines), and the place name.
func Observation(costCenter, middle, place string) string {
	return fmt.Sprintf("%s//%s//%s", costCenter, middle, place)
}

// placeNoise lists the warehouse designators stripped from place names to
// keep observations short. Order matters: longer variants first so the
// bare forms do not leave fragments behind.
var placeNoise = []string{
	"BOD.", "BOD ", "BOD",
	"ENAP MAGALLANES", "ENAP MAG.", "ENAP MAG ", "ENAP MAG", "ENAP MAGA", "ENAP MA", "ENAP",
	"MAGALLANES",
}

// CleanPlaceName strips warehouse designators and collapses whitespace.
func CleanPlaceName(name string) string {
	for _, noise := range placeNoise {
		name = strings.ReplaceAll(name, noise, "")
	}
	return strings.Join(strings.Fields(name), " ")
}
