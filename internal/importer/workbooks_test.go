package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadProductRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		"Maestro": {
			{"CODIGO", "DESCRIPCION"},
			{"sku-1", " Harina 25kg "},
			{"SKU-2", "Azucar"},
			{"", "no SKU, skipped"},
		},
	})

	products, err := ReadProductRows(path)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "SKU-1", products[0].SKU)
	assert.Equal(t, "Harina 25kg", products[0].Description)
}

func TestReadRuleRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		LocalRulesSheet: {
			{"LOCAL", "SKU", "SUPPLIER", "DESCRIPTION", "ACTIVE"},
			{"30797", "sku-1", "1001", "always Acme", ""},
			{"30797", "SKU-2", "2002", "", "false"},
			{"", "SKU-3", "3003"}, // missing local, skipped
		},
		StockBlocksSheet: {
			{"SKU", "SUPPLIER", "REASON", "ACTIVE"},
			{"SKU-1", "2002", "quality hold", "1"},
		},
	})

	rows, err := ReadRuleRows(path)
	require.NoError(t, err)
	assert.Empty(t, rows.Warnings)

	require.Len(t, rows.LocalRules, 2)
	assert.Equal(t, "SKU-1", rows.LocalRules[0].SKU)
	assert.Equal(t, "1001", rows.LocalRules[0].Supplier)
	assert.True(t, rows.LocalRules[0].Active, "blank active cell defaults to true")
	assert.False(t, rows.LocalRules[1].Active)

	require.Len(t, rows.StockBlocks, 1)
	assert.Equal(t, "2002", rows.StockBlocks[0].Supplier)
	assert.Equal(t, "quality hold", rows.StockBlocks[0].Reason)
	assert.True(t, rows.StockBlocks[0].Active)
}

func TestReadRuleRows_MissingSheetIsWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		LocalRulesSheet: {
			{"LOCAL", "SKU", "SUPPLIER"},
			{"30797", "SKU-1", "1001"},
		},
	})

	rows, err := ReadRuleRows(path)
	require.NoError(t, err)
	assert.Len(t, rows.LocalRules, 1)
	assert.Empty(t, rows.StockBlocks)
	require.Len(t, rows.Warnings, 1)
	assert.Contains(t, rows.Warnings[0], StockBlocksSheet)
}
