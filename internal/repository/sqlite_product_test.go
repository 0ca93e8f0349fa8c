package repository

import (
	"context"
	"testing"

	"github.com/lucasgnemmi/orderflow/internal/domain"
	"github.com/lucasgnemmi/orderflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepo_UpsertAndGetBySKU(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProductRepo(db)
	ctx := context.Background()

	p := testutil.NewTestProduct("sku-1", testutil.WithDescription("Harina 25kg"))
	require.NoError(t, repo.Upsert(ctx, p))

	fetched, err := repo.GetBySKU(ctx, " sku-1 ")
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "SKU-1", fetched.SKU)
	assert.Equal(t, "Harina 25kg", fetched.Description)
}

func TestProductRepo_GetBySKU_AbsentIsNil(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProductRepo(db)

	fetched, err := repo.GetBySKU(context.Background(), "SKU-404")
	require.NoError(t, err)
	assert.Nil(t, fetched)
}

func TestProductRepo_UpsertReplacesDescription(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProductRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProduct("SKU-1", testutil.WithDescription("old"))))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProduct("SKU-1", testutil.WithDescription("new"))))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	fetched, err := repo.GetBySKU(ctx, "SKU-1")
	require.NoError(t, err)
	assert.Equal(t, "new", fetched.Description)
}

func TestProductRepo_UpsertRejectsEmptySKU(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProductRepo(db)

	err := repo.Upsert(context.Background(), &domain.Product{SKU: "   "})
	assert.Error(t, err)
}

func TestProductRepo_Search(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProductRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProduct("SKU-1", testutil.WithDescription("Harina de trigo"))))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProduct("SKU-2", testutil.WithDescription("Azucar"))))

	found, err := repo.Search(ctx, "harina")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "SKU-1", found[0].SKU)

	bySKU, err := repo.Search(ctx, "SKU-")
	require.NoError(t, err)
	assert.Len(t, bySKU, 2)
}

func TestProductRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProductRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProduct("SKU-1")))

	removed, err := repo.Delete(ctx, "sku-1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, "sku-1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestProductRepo_SKUSet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProductRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProduct("SKU-1")))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProduct("SKU-2")))

	set, err := repo.SKUSet(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"SKU-1": true, "SKU-2": true}, set)
}

func TestProductRepo_BulkUpsert(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProductRepo(db)
	ctx := context.Background()

	products := []*domain.Product{
		{SKU: "sku-1", Description: "one"},
		{SKU: "SKU-2", Description: "two"},
		{SKU: "", Description: "skipped"},
		{SKU: "SKU-1", Description: "one again"},
	}
	written, err := repo.BulkUpsert(ctx, products)
	require.NoError(t, err)
	assert.Equal(t, 3, written, "blank SKUs are skipped, duplicates overwrite")

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	fetched, err := repo.GetBySKU(ctx, "SKU-1")
	require.NoError(t, err)
	assert.Equal(t, "one again", fetched.Description)
}
