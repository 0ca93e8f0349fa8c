// Package report writes the formatted spreadsheet outputs: the order
// report with its error sheet, and the reference-data exports.
package report

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/lucasgnemmi/orderflow/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	OrdersSheet = "Orders"
	ErrorsSheet = "Errors"
)

var ordersHeaders = []string{"ORDER_ID", "LOCAL", "SUPPLIER", "DELIVERY_DATE", "SKU", "QTY", "OBSERVATION"}
var errorsHeaders = []string{"LOCAL", "SKU", "QTY", "COST_CENTER", "PLACE_NAME", "SOURCE_FILE", "OBSERVATION"}

// ordersWidths mirrors the column widths of the legacy report formatter;
// the observation column is wide enough to read whole observations.
var ordersWidths = []float64{10, 10, 12, 14, 14, 10, 70}
var errorsWidths = []float64{10, 14, 10, 14, 24, 24, 60}

// DefaultOutputPath builds the conventional report file name for a run,
// keyed by the dispatch date.
func DefaultOutputPath(dir string, dispatchDate time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("orders_%s.xlsx", dispatchDate.Format("02-01-2006")))
}

// WriteOrders writes the run report: an Orders sheet with the finalized
// lines and an Errors sheet with every routed error line.
func WriteOrders(path string, valid, errs []domain.OrderLine) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", OrdersSheet)
	if _, err := f.NewSheet(ErrorsSheet); err != nil {
		return fmt.Errorf("creating errors sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"B91C1C"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("creating wrap style: %w", err)
	}

	if err := writeSheet(f, OrdersSheet, ordersHeaders, ordersWidths, headerStyle, len(valid),
		func(row int) []any {
			l := valid[row]
			return []any{l.OrderID, l.Local, l.Supplier, l.DeliveryDate, l.SKU, l.Qty.InexactFloat64(), l.Observation}
		}); err != nil {
		return err
	}
	if err := writeSheet(f, ErrorsSheet, errorsHeaders, errorsWidths, headerStyle, len(errs),
		func(row int) []any {
			l := errs[row]
			return []any{l.Local, l.SKU, l.Qty.InexactFloat64(), l.CostCenter, l.PlaceName, l.SourceFile, l.Observation}
		}); err != nil {
		return err
	}

	// Wrap the observation columns so long observations stay readable.
	if len(valid) > 0 {
		if err := f.SetCellStyle(OrdersSheet, "G2", fmt.Sprintf("G%d", len(valid)+1), wrapStyle); err != nil {
			return fmt.Errorf("styling observations: %w", err)
		}
	}
	if len(errs) > 0 {
		if err := f.SetCellStyle(ErrorsSheet, "G2", fmt.Sprintf("G%d", len(errs)+1), wrapStyle); err != nil {
			return fmt.Errorf("styling error observations: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	return nil
}

// WriteProducts exports the product master for bulk editing.
func WriteProducts(path string, products []*domain.Product) error {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "Products")

	f.SetCellValue("Products", "A1", "SKU")
	f.SetCellValue("Products", "B1", "DESCRIPTION")
	for i, p := range products {
		f.SetCellValue("Products", fmt.Sprintf("A%d", i+2), p.SKU)
		f.SetCellValue("Products", fmt.Sprintf("B%d", i+2), p.Description)
	}
	f.SetColWidth("Products", "A", "A", 16)
	f.SetColWidth("Products", "B", "B", 50)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving products export: %w", err)
	}
	return nil
}

// WriteRules exports the override rules in the same two-sheet layout the
// rules importer reads back.
func WriteRules(path string, rules []*domain.LocalRule, blocks []*domain.StockBlock) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "Local Rules")
	if _, err := f.NewSheet("Stock Blocks"); err != nil {
		return fmt.Errorf("creating stock blocks sheet: %w", err)
	}

	for i, h := range []string{"LOCAL", "SKU", "SUPPLIER", "DESCRIPTION", "ACTIVE"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue("Local Rules", cell, h)
	}
	for i, r := range rules {
		row := i + 2
		f.SetCellValue("Local Rules", fmt.Sprintf("A%d", row), r.Local)
		f.SetCellValue("Local Rules", fmt.Sprintf("B%d", row), r.SKU)
		f.SetCellValue("Local Rules", fmt.Sprintf("C%d", row), r.Supplier)
		f.SetCellValue("Local Rules", fmt.Sprintf("D%d", row), r.Description)
		f.SetCellValue("Local Rules", fmt.Sprintf("E%d", row), r.Active)
	}

	for i, h := range []string{"SKU", "SUPPLIER", "REASON", "ACTIVE"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue("Stock Blocks", cell, h)
	}
	for i, b := range blocks {
		row := i + 2
		f.SetCellValue("Stock Blocks", fmt.Sprintf("A%d", row), b.SKU)
		f.SetCellValue("Stock Blocks", fmt.Sprintf("B%d", row), b.Supplier)
		f.SetCellValue("Stock Blocks", fmt.Sprintf("C%d", row), b.Reason)
		f.SetCellValue("Stock Blocks", fmt.Sprintf("D%d", row), b.Active)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving rules export: %w", err)
	}
	return nil
}

// writeSheet writes a header row, per-row values, widths, and a frozen
// header pane for one sheet.
func writeSheet(f *excelize.File, sheet string, headers []string, widths []float64, headerStyle, rows int, values func(row int) []any) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("addressing header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return fmt.Errorf("addressing last column: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("addressing column: %w", err)
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("setting column width: %w", err)
		}
	}

	for row := 0; row < rows; row++ {
		for i, v := range values(row) {
			cell, err := excelize.CoordinatesToCellName(i+1, row+2)
			if err != nil {
				return fmt.Errorf("addressing cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", row+2, err)
			}
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header row: %w", err)
	}
	return nil
}
