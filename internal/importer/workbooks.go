package importer

import (
	"fmt"
	"strings"

	"github.com/lucasgnemmi/orderflow/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Sheet names shared by the rules import reader and the report exporter.
const (
	LocalRulesSheet  = "Local Rules"
	StockBlocksSheet = "Stock Blocks"
)

// ReadProductRows reads a product-master workbook: a header row with SKU
// and description columns (located by keyword), one product per row.
func ReadProductRows(path string) ([]*domain.Product, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening products workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("products workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading products workbook: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("products workbook has no data rows")
	}

	skuCol := findColumn(rows[0], "sku", "codigo", "código", "code")
	descCol := findColumn(rows[0], "descripcion", "descripción", "description", "desc", "nombre", "name")
	if skuCol < 0 || descCol < 0 {
		return nil, fmt.Errorf("products workbook needs SKU and description columns (headers: %s)",
			strings.Join(rows[0], ", "))
	}

	var products []*domain.Product
	for _, row := range rows[1:] {
		sku := domain.NormalizeSKU(cell(row, skuCol))
		if sku == "" || sku == "NAN" {
			continue
		}
		products = append(products, &domain.Product{
			SKU:         sku,
			Description: strings.TrimSpace(cell(row, descCol)),
		})
	}
	return products, nil
}

// RuleRows is the parsed content of a rules workbook.
type RuleRows struct {
	LocalRules  []*domain.LocalRule
	StockBlocks []*domain.StockBlock
	Warnings    []string
}

// ReadRuleRows reads a rules workbook with a "Local Rules" sheet
// (local, sku, supplier, description, active) and a "Stock Blocks" sheet
// (sku, supplier, reason, active). A missing sheet is a warning, not an
// error; a blank active cell defaults to true.
func ReadRuleRows(path string) (*RuleRows, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening rules workbook: %w", err)
	}
	defer f.Close()

	out := &RuleRows{}

	localRows, err := sheetRows(f, LocalRulesSheet)
	if err != nil {
		out.Warnings = append(out.Warnings, err.Error())
	} else {
		for _, row := range localRows {
			local := strings.TrimSpace(cell(row, 0))
			sku := domain.NormalizeSKU(cell(row, 1))
			supplier := domain.NormalizeSupplierCode(cell(row, 2))
			if local == "" || sku == "" || supplier == "" {
				continue
			}
			out.LocalRules = append(out.LocalRules, &domain.LocalRule{
				Local:       local,
				SKU:         sku,
				Supplier:    supplier,
				Description: strings.TrimSpace(cell(row, 3)),
				Active:      activeCell(cell(row, 4)),
			})
		}
	}

	blockRows, err := sheetRows(f, StockBlocksSheet)
	if err != nil {
		out.Warnings = append(out.Warnings, err.Error())
	} else {
		for _, row := range blockRows {
			sku := domain.NormalizeSKU(cell(row, 0))
			supplier := domain.NormalizeSupplierCode(cell(row, 1))
			if sku == "" || supplier == "" {
				continue
			}
			out.StockBlocks = append(out.StockBlocks, &domain.StockBlock{
				SKU:      sku,
				Supplier: supplier,
				Reason:   strings.TrimSpace(cell(row, 2)),
				Active:   activeCell(cell(row, 3)),
			})
		}
	}

	return out, nil
}

// sheetRows returns the data rows (header stripped) of a named sheet.
func sheetRows(f *excelize.File, sheet string) ([][]string, error) {
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", sheet)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}
	return rows[1:], nil
}

func activeCell(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "true", "1", "yes", "si", "sí":
		return true
	default:
		return false
	}
}
