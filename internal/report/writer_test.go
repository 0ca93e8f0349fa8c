package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/lucasgnemmi/orderflow/internal/domain"
	"github.com/lucasgnemmi/orderflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDefaultOutputPath(t *testing.T) {
	dispatch := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, filepath.Join("out", "orders_07-01-2026.xlsx"), DefaultOutputPath("out", dispatch))
}

func TestWriteOrders(t *testing.T) {
	valid := testutil.NewTestLine("30797", "SKU-1",
		testutil.WithSupplier("1001"), testutil.WithQty("4.5"))
	valid.DeliveryDate = "05-01-2026"
	valid.Observation = "CC1//07-01//NORTE"
	valid.OrderID = 1

	bad := testutil.NewTestLine("30797", "SKU-404")
	bad.Observation = domain.Observation("CC1", domain.ReasonMissingProduct, "NORTE")

	path := filepath.Join(t.TempDir(), "orders.xlsx")
	require.NoError(t, WriteOrders(path, []domain.OrderLine{valid}, []domain.OrderLine{bad}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{OrdersSheet, ErrorsSheet}, f.GetSheetList())

	rows, err := f.GetRows(OrdersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ordersHeaders, rows[0])
	assert.Equal(t, []string{"1", "30797", "1001", "05-01-2026", "SKU-1", "4.5", "CC1//07-01//NORTE"}, rows[1])

	errRows, err := f.GetRows(ErrorsSheet)
	require.NoError(t, err)
	require.Len(t, errRows, 2)
	assert.Equal(t, errorsHeaders, errRows[0])
	assert.Contains(t, errRows[1][6], domain.ReasonMissingProduct)
}

func TestWriteOrders_EmptyRunStillProducesBothSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.xlsx")
	require.NoError(t, WriteOrders(path, nil, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(OrdersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
	assert.Equal(t, ordersHeaders, rows[0])
}

func TestWriteProducts_RoundTripsThroughImporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.xlsx")
	products := []*domain.Product{
		testutil.NewTestProduct("SKU-1", testutil.WithDescription("Harina")),
		testutil.NewTestProduct("SKU-2", testutil.WithDescription("Azucar")),
	}
	require.NoError(t, WriteProducts(path, products))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"SKU", "DESCRIPTION"}, rows[0])
	assert.Equal(t, []string{"SKU-1", "Harina"}, rows[1])
}

func TestWriteRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.xlsx")
	rules := []*domain.LocalRule{testutil.NewTestLocalRule("30797", "SKU-1", "1001")}
	blocks := []*domain.StockBlock{testutil.NewTestStockBlock("SKU-2", "2002")}
	require.NoError(t, WriteRules(path, rules, blocks))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	localRows, err := f.GetRows("Local Rules")
	require.NoError(t, err)
	require.Len(t, localRows, 2)
	assert.Equal(t, "1001", localRows[1][2])

	blockRows, err := f.GetRows("Stock Blocks")
	require.NoError(t, err)
	require.Len(t, blockRows, 2)
	assert.Equal(t, "2002", blockRows[1][1])
}
