package importer

import (
	"fmt"
	"os"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeCSV(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("a,b\n1,2\n"), 0644); err != nil {
		t.Fatalf("writing csv: %v", err)
	}
}

// writeWorkbook creates an xlsx file whose sheets hold the given rows,
// starting at A1.
func writeWorkbook(t *testing.T, path string, sheets map[string][][]any) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("renaming sheet: %v", err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("adding sheet %q: %v", name, err)
			}
		}
		for i, row := range rows {
			cell := fmt.Sprintf("A%d", i+1)
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("writing row %d of %q: %v", i+1, name, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("saving workbook %s: %v", path, err)
	}
}
