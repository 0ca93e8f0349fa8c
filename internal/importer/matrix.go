package importer

import (
	"fmt"
	"strings"

	"github.com/lucasgnemmi/orderflow/internal/domain"
	"github.com/xuri/excelize/v2"
)

// matrixSheet is the sheet name used by the legacy Agenda.xlsm workbook.
const matrixSheet = "Matriz"

// ReadScheduleMatrix imports supplier delivery profiles from a legacy
// schedule workbook. The matrix starts at row 3 with columns: code, name,
// (blank), Mon..Sat, D-2. Rows without a supplier code are skipped.
func ReadScheduleMatrix(path string) ([]domain.SupplierProfile, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening schedule workbook: %w", err)
	}
	defer f.Close()

	sheet := matrixSheet
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("schedule workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading schedule matrix: %w", err)
	}

	var profiles []domain.SupplierProfile
	for i, row := range rows {
		if i < 2 { // header rows
			continue
		}
		code := domain.NormalizeSupplierCode(cell(row, 0))
		if code == "" {
			continue
		}
		p := domain.SupplierProfile{
			Code:    code,
			Name:    strings.TrimSpace(cell(row, 1)),
			DMinus2: matrixTriState(cell(row, 9)),
		}
		// Column 2 is a spacer; weekday flags run from column 3.
		for d := range p.Days {
			p.Days[d] = matrixTriState(cell(row, 3+d))
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// matrixTriState converts a matrix cell to a TriState the way the legacy
// workbook was read: empty means ignored, zero means explicitly off, and
// any other value means the day applies.
func matrixTriState(s string) domain.TriState {
	switch strings.TrimSpace(s) {
	case "":
		return domain.TriIgnored
	case "0", "FALSE", "false":
		return domain.TriNotApplicable
	default:
		return domain.TriApplies
	}
}
