package importer

import (
	"fmt"
	"strings"

	"github.com/lucasgnemmi/orderflow/internal/domain"
	"github.com/xuri/excelize/v2"
)

// DefaultRegion is the price-list region used when none is given.
const DefaultRegion = "099"

// PriceList maps each SKU to the suppliers that can provide it, in the
// order they appear in the source workbook. The first supplier is the
// default assignment.
type PriceList struct {
	Suppliers map[string][]string
}

// SuppliersFor returns the candidate suppliers for a SKU, or nil when the
// SKU is not priced.
func (pl *PriceList) SuppliersFor(sku string) []string {
	return pl.Suppliers[domain.NormalizeSKU(sku)]
}

// Len returns the number of priced SKUs.
func (pl *PriceList) Len() int {
	return len(pl.Suppliers)
}

// ReadPriceList reads the supplier price-list workbook. Column positions are
// not fixed, so the SKU, supplier, and region columns are located by header
// keywords. Rows are filtered to the given region when a region column
// exists; a region filter that matches nothing falls back to all rows.
// Returned warnings describe detection and filtering decisions.
func ReadPriceList(path, region string) (*PriceList, []string, error) {
	if region == "" {
		region = DefaultRegion
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening price list: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("price list has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("reading price list: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("price list has no data rows")
	}

	header := rows[0]
	skuCol := findColumn(header, "sku", "codigo", "código", "code", "articulo", "artículo")
	supplierCol := findColumn(header, "proveedor", "supplier", "vendor")
	if skuCol < 0 {
		return nil, nil, fmt.Errorf("SKU column not found in price list (headers: %s)", strings.Join(header, ", "))
	}
	if supplierCol < 0 {
		return nil, nil, fmt.Errorf("supplier column not found in price list (headers: %s)", strings.Join(header, ", "))
	}

	var warnings []string
	warnings = append(warnings,
		fmt.Sprintf("price list: using SKU column %q, supplier column %q", strings.TrimSpace(header[skuCol]), strings.TrimSpace(header[supplierCol])))

	regionCol := findColumn(header, "region", "región", "zona", "area", "área")
	data := rows[1:]
	if regionCol >= 0 {
		var filtered [][]string
		for _, row := range data {
			if strings.TrimSpace(cell(row, regionCol)) == region {
				filtered = append(filtered, row)
			}
		}
		if len(filtered) == 0 {
			warnings = append(warnings, fmt.Sprintf("price list: no rows for region %q, using all %d rows", region, len(data)))
		} else {
			warnings = append(warnings, fmt.Sprintf("price list: filtered to %d of %d rows for region %q", len(filtered), len(data), region))
			data = filtered
		}
	} else {
		warnings = append(warnings, "price list: no region column found, using all rows")
	}

	pl := &PriceList{Suppliers: make(map[string][]string)}
	for _, row := range data {
		sku := domain.NormalizeSKU(cell(row, skuCol))
		supplier := domain.NormalizeSupplierCode(cell(row, supplierCol))
		if sku == "" || sku == "NAN" || supplier == "" || supplier == "NAN" {
			continue
		}
		if !contains(pl.Suppliers[sku], supplier) {
			pl.Suppliers[sku] = append(pl.Suppliers[sku], supplier)
		}
	}
	warnings = append(warnings, fmt.Sprintf("price list: %d SKUs mapped", len(pl.Suppliers)))

	return pl, warnings, nil
}

// findColumn locates the first header cell containing any keyword,
// case-insensitively.
func findColumn(header []string, keywords ...string) int {
	for i, h := range header {
		lower := strings.ToLower(strings.TrimSpace(h))
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return i
			}
		}
	}
	return -1
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
