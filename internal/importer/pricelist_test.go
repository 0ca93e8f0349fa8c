package importer

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPriceList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		"Precios": {
			{"CODIGO ARTICULO", "PROVEEDOR", "REGION"},
			{"sku-1", "1001", "099"},
			{"SKU-1", "2002", "099"},
			{"SKU-1", "1001", "099"}, // duplicate pair collapses
			{"SKU-2", "3003", "099"},
			{"SKU-9", "4004", "101"}, // other region filtered out
		},
	})

	pl, warnings, err := ReadPriceList(path, "")
	require.NoError(t, err)
	assert.Equal(t, 2, pl.Len())
	assert.Equal(t, []string{"1001", "2002"}, pl.SuppliersFor("SKU-1"))
	assert.Equal(t, []string{"3003"}, pl.SuppliersFor("sku-2"))
	assert.Nil(t, pl.SuppliersFor("SKU-9"))
	assert.NotEmpty(t, warnings)
}

func TestReadPriceList_RegionMissFallsBackToAllRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		"Precios": {
			{"SKU", "SUPPLIER", "ZONA"},
			{"SKU-1", "1001", "500"},
		},
	})

	pl, warnings, err := ReadPriceList(path, "099")
	require.NoError(t, err)
	assert.Equal(t, []string{"1001"}, pl.SuppliersFor("SKU-1"))

	var sawFallback bool
	for _, w := range warnings {
		if strings.Contains(w, "no rows for region") {
			sawFallback = true
		}
	}
	assert.True(t, sawFallback, "expected a fallback warning, got %v", warnings)
}

func TestReadPriceList_NoRegionColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		"Precios": {
			{"SKU", "VENDOR"},
			{"SKU-1", "1001"},
		},
	})

	pl, _, err := ReadPriceList(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"1001"}, pl.SuppliersFor("SKU-1"))
}

func TestReadPriceList_MissingColumnsFail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		"Precios": {
			{"FOO", "BAR"},
			{"x", "y"},
		},
	})

	_, _, err := ReadPriceList(path, "")
	assert.Error(t, err)
}
