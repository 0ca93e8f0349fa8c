package pipeline

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/lucasgnemmi/orderflow/internal/agenda"
	"github.com/lucasgnemmi/orderflow/internal/domain"
	"github.com/lucasgnemmi/orderflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver(t *testing.T, profiles ...domain.SupplierProfile) *agenda.Resolver {
	t.Helper()
	store, err := agenda.Open(filepath.Join(t.TempDir(), "schedule.json"))
	require.NoError(t, err)
	for _, p := range profiles {
		require.NoError(t, store.UpsertProfile(p))
	}
	return agenda.NewResolver(store)
}

func TestFillDeliveryDates(t *testing.T) {
	acme := domain.SupplierProfile{Code: "1001"}
	acme.Days[domain.Monday] = domain.TriApplies
	resolver := newResolver(t, acme)

	// 2026-01-07 is a Wednesday; the Monday flag lands on 2025-12-29.
	dispatch := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)
	lines := []domain.OrderLine{
		testutil.NewTestLine("30797", "SKU-1", testutil.WithSupplier("1001")),
	}

	valid, errs, missing, err := FillDeliveryDates(lines, resolver, dispatch)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Empty(t, missing)
	require.Len(t, valid, 1)
	assert.Equal(t, "29-12-2025", valid[0].DeliveryDate)
	assert.Equal(t, "CC1//07-01//PLANTA NORTE", valid[0].Observation)
}

func TestFillDeliveryDates_CleansPlaceName(t *testing.T) {
	acme := domain.SupplierProfile{Code: "1001", DMinus2: domain.TriApplies}
	resolver := newResolver(t, acme)

	line := testutil.NewTestLine("30797", "SKU-1", testutil.WithSupplier("1001"))
	line.PlaceName = "BOD. PLANTA NORTE"

	dispatch := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)
	valid, _, _, err := FillDeliveryDates([]domain.OrderLine{line}, resolver, dispatch)
	require.NoError(t, err)
	require.Len(t, valid, 1)
	assert.Equal(t, "CC1//07-01//PLANTA NORTE", valid[0].Observation)
}

func TestFillDeliveryDates_MissingSupplierCode(t *testing.T) {
	resolver := newResolver(t)

	lines := []domain.OrderLine{
		testutil.NewTestLine("30797", "SKU-1", testutil.WithSupplier("")),
	}
	dispatch := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)

	valid, errs, missing, err := FillDeliveryDates(lines, resolver, dispatch)
	require.NoError(t, err)
	assert.Empty(t, valid)
	assert.Empty(t, missing)
	require.Len(t, errs, 1)
	assert.Equal(t, "//Missing Supplier Code//", errs[0].Observation)
}

func TestFillDeliveryDates_UnscheduledSuppliersCollected(t *testing.T) {
	resolver := newResolver(t)

	lines := []domain.OrderLine{
		testutil.NewTestLine("30797", "SKU-1", testutil.WithSupplier("2002")),
		testutil.NewTestLine("30797", "SKU-2", testutil.WithSupplier("1001")),
		testutil.NewTestLine("30797", "SKU-3", testutil.WithSupplier("2002")),
	}
	dispatch := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)

	valid, errs, missing, err := FillDeliveryDates(lines, resolver, dispatch)
	require.NoError(t, err)
	assert.Empty(t, valid)
	assert.Len(t, errs, 3)
	assert.Equal(t, []string{"1001", "2002"}, missing, "distinct codes, sorted")
	assert.Contains(t, errs[0].Observation, domain.ReasonMissingSchedule)
}

func TestFillDeliveryDates_ZeroDispatchIsError(t *testing.T) {
	resolver := newResolver(t, domain.SupplierProfile{Code: "1001", DMinus2: domain.TriApplies})

	lines := []domain.OrderLine{
		testutil.NewTestLine("30797", "SKU-1", testutil.WithSupplier("1001")),
	}

	_, _, _, err := FillDeliveryDates(lines, resolver, time.Time{})
	assert.ErrorIs(t, err, agenda.ErrNoDispatchDate)
}
