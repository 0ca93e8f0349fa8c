package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lucasgnemmi/orderflow/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Column headers expected in raw order files. These come from the upstream
// ERP export and are matched after trimming.
const (
	colCostCenter = "LOCAL_ENTREGA_CTRPED"
	colPlaceName  = "DESCR_CEN_CADCEN"
	colSKU        = "COD_MAT_PEDCOM"
	colQuantity   = "QTDE_PEDIDA_PEDCOM"
)

// DefaultLocal is the destination distribution-center code stamped on every
// intake line unless overridden.
const DefaultLocal = "30797"

// FileStat records the intake outcome for one order file.
type FileStat struct {
	File     string
	Rows     int
	Accepted int
	Rejected int
	// Skipped is set when the whole file was unusable (unreadable, or
	// missing required columns) and explains why.
	Skipped string
}

// ReadOrders reads every order workbook in dir (sorted by file name) and
// extracts raw order lines. Files that cannot be read or lack the required
// columns are skipped and reported in their FileStat; only a missing
// directory is a hard error.
func ReadOrders(dir, local string) ([]domain.OrderLine, []FileStat, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, nil, fmt.Errorf("orders folder not found: %w", err)
	}
	if local == "" {
		local = DefaultLocal
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading orders folder: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".xlsx" || ext == ".xlsm" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var lines []domain.OrderLine
	var stats []FileStat
	for _, name := range names {
		stat := readOrderFile(filepath.Join(dir, name), name, local, &lines)
		stats = append(stats, stat)
	}
	return lines, stats, nil
}

func readOrderFile(path, name, local string, lines *[]domain.OrderLine) FileStat {
	stat := FileStat{File: name}

	f, err := excelize.OpenFile(path)
	if err != nil {
		stat.Skipped = fmt.Sprintf("cannot open workbook: %v", err)
		return stat
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		stat.Skipped = "workbook has no sheets"
		return stat
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		stat.Skipped = fmt.Sprintf("cannot read sheet: %v", err)
		return stat
	}
	if len(rows) == 0 {
		stat.Skipped = "sheet is empty"
		return stat
	}

	idx := headerIndex(rows[0])
	var missing []string
	for _, col := range []string{colCostCenter, colPlaceName, colSKU, colQuantity} {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		stat.Skipped = fmt.Sprintf("missing columns: %s", strings.Join(missing, ", "))
		return stat
	}

	for _, row := range rows[1:] {
		stat.Rows++

		sku := domain.NormalizeSKU(cell(row, idx[colSKU]))
		qty, qtyErr := ParseQuantity(cell(row, idx[colQuantity]))

		if sku == "" || sku == "NAN" || qtyErr != nil || !qty.IsPositive() {
			stat.Rejected++
			continue
		}

		costCenter := strings.TrimSpace(cell(row, idx[colCostCenter]))
		if costCenter == "" || strings.EqualFold(costCenter, "nan") {
			costCenter = "UNKNOWN"
		}
		place := strings.TrimSpace(cell(row, idx[colPlaceName]))
		if place == "" || strings.EqualFold(place, "nan") {
			place = "UNKNOWN"
		}

		*lines = append(*lines, domain.OrderLine{
			Local:      local,
			SKU:        sku,
			Qty:        qty,
			CostCenter: costCenter,
			PlaceName:  place,
			SourceFile: name,
		})
		stat.Accepted++
	}
	return stat
}

// headerIndex maps trimmed header names to column positions.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
