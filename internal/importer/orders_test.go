package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOrders(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, "a_orders.xlsx"), map[string][][]any{
		"Export": {
			{colCostCenter, colPlaceName, colSKU, colQuantity},
			{"CC1", "BOD. PLANTA NORTE", "sku-1", "10"},
			{"CC2", "PLANTA SUR", "SKU-2", "1.234,56"},
			{"", "", "SKU-3", "0"},   // non-positive qty rejected
			{"CC3", "X", "", "5"},    // missing SKU rejected
			{"CC4", "Y", "NAN", "5"}, // NaN SKU rejected
		},
	})
	writeWorkbook(t, filepath.Join(dir, "b_orders.xlsx"), map[string][][]any{
		"Export": {
			{colCostCenter, colPlaceName, colSKU, colQuantity},
			{"", "", "SKU-2", "3"}, // blank descriptive fields default
		},
	})

	lines, stats, err := ReadOrders(dir, "")
	require.NoError(t, err)
	require.Len(t, lines, 3)
	require.Len(t, stats, 2)

	assert.Equal(t, "a_orders.xlsx", stats[0].File)
	assert.Equal(t, 5, stats[0].Rows)
	assert.Equal(t, 2, stats[0].Accepted)
	assert.Equal(t, 3, stats[0].Rejected)
	assert.Empty(t, stats[0].Skipped)

	first := lines[0]
	assert.Equal(t, DefaultLocal, first.Local)
	assert.Equal(t, "SKU-1", first.SKU)
	assert.Equal(t, "10", first.Qty.String())
	assert.Equal(t, "CC1", first.CostCenter)
	assert.Equal(t, "BOD. PLANTA NORTE", first.PlaceName)
	assert.Equal(t, "a_orders.xlsx", first.SourceFile)

	assert.Equal(t, "1234.56", lines[1].Qty.String())

	third := lines[2]
	assert.Equal(t, "UNKNOWN", third.CostCenter)
	assert.Equal(t, "UNKNOWN", third.PlaceName)
	assert.Equal(t, "b_orders.xlsx", third.SourceFile)
}

func TestReadOrders_SkipsFileMissingColumns(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, "bad.xlsx"), map[string][][]any{
		"Export": {
			{"SOMETHING", "ELSE"},
			{"a", "b"},
		},
	})
	writeWorkbook(t, filepath.Join(dir, "good.xlsx"), map[string][][]any{
		"Export": {
			{colCostCenter, colPlaceName, colSKU, colQuantity},
			{"CC1", "P", "SKU-1", "2"},
		},
	})

	lines, stats, err := ReadOrders(dir, "11111")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "11111", lines[0].Local)

	require.Len(t, stats, 2)
	assert.Contains(t, stats[0].Skipped, "missing columns")
	assert.Empty(t, stats[1].Skipped)
}

func TestReadOrders_MissingDirIsHardError(t *testing.T) {
	_, _, err := ReadOrders(filepath.Join(t.TempDir(), "nope"), "")
	assert.Error(t, err)
}

func TestReadOrders_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, "orders.xlsx"), map[string][][]any{
		"Export": {
			{colCostCenter, colPlaceName, colSKU, colQuantity},
			{"CC1", "P", "SKU-1", "2"},
		},
	})
	// A CSV in the folder should simply be ignored.
	writeCSV(t, filepath.Join(dir, "notes.csv"))

	lines, stats, err := ReadOrders(dir, "")
	require.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Len(t, stats, 1)
}
