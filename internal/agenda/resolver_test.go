package agenda

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/lucasgnemmi/orderflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "schedule.json"))
	require.NoError(t, err)
	return store
}

func putProfile(t *testing.T, store *Store, code string, days map[domain.Weekday]domain.TriState, d2 domain.TriState, override string) {
	t.Helper()
	p := domain.SupplierProfile{Code: code, DMinus2: d2, ManualOverride: override}
	for w, v := range days {
		p.Days[w] = v
	}
	require.NoError(t, store.UpsertProfile(p))
}

// 2026-01-07 is a Wednesday.
var wednesday = time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)

func TestResolver_DispatchDate(t *testing.T) {
	store := newTestStore(t)
	r := NewResolver(store)

	order := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 22, 0, 0, 0, 0, time.UTC), r.DispatchDate(order))

	require.NoError(t, store.SetDispatchLag(7))
	assert.Equal(t, time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC), r.DispatchDate(order))
}

func TestResolver_ZeroDispatchDate(t *testing.T) {
	r := NewResolver(newTestStore(t))

	_, err := r.DeliveryDate("1001", time.Time{})
	assert.ErrorIs(t, err, ErrNoDispatchDate)
}

func TestResolver_UnknownSupplier(t *testing.T) {
	r := NewResolver(newTestStore(t))

	got, err := r.DeliveryDate("9999", wednesday)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolver_NoTriggers(t *testing.T) {
	store := newTestStore(t)
	putProfile(t, store, "1001", nil, domain.TriIgnored, "")
	r := NewResolver(store)

	got, err := r.DeliveryDate("1001", wednesday)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolver_ExplicitNoIsNotATrigger(t *testing.T) {
	store := newTestStore(t)
	putProfile(t, store, "1001", map[domain.Weekday]domain.TriState{
		domain.Monday: domain.TriNotApplicable,
	}, domain.TriNotApplicable, "")
	r := NewResolver(store)

	got, err := r.DeliveryDate("1001", wednesday)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolver_ManualOverrideWins(t *testing.T) {
	store := newTestStore(t)
	// Override in the future, flags that would otherwise compute a past
	// date: the override still wins.
	putProfile(t, store, "1001", map[domain.Weekday]domain.TriState{
		domain.Monday: domain.TriApplies,
	}, domain.TriIgnored, "25-03-2026")
	r := NewResolver(store)

	got, err := r.DeliveryDate("1001", wednesday)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC), *got)
}

func TestResolver_MalformedOverrideFallsThrough(t *testing.T) {
	store := newTestStore(t)
	// February 31st does not parse; the computed date applies instead.
	putProfile(t, store, "1001", map[domain.Weekday]domain.TriState{
		domain.Monday: domain.TriApplies,
	}, domain.TriIgnored, "31-02-2026")
	r := NewResolver(store)

	got, err := r.DeliveryDate("1001", wednesday)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC), *got)
}

func TestResolver_DMinus2Only(t *testing.T) {
	store := newTestStore(t)
	putProfile(t, store, "1001", nil, domain.TriApplies, "")
	r := NewResolver(store)

	got, err := r.DeliveryDate("1001", wednesday)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), *got)
}

func TestResolver_EarlyWeekDispatchPicksEarliestCandidate(t *testing.T) {
	store := newTestStore(t)
	putProfile(t, store, "1001", map[domain.Weekday]domain.TriState{
		domain.Monday:   domain.TriApplies,
		domain.Thursday: domain.TriApplies,
	}, domain.TriIgnored, "")
	r := NewResolver(store)

	// Wednesday dispatch: Monday lands nine days back (2025-12-29), Thursday
	// six days back (2026-01-01). Early-week dispatches keep the earliest.
	got, err := r.DeliveryDate("1001", wednesday)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC), *got)
	assert.Equal(t, domain.Monday, domain.WeekdayOf(*got))
}

func TestResolver_LateWeekDispatchPicksLatestCandidate(t *testing.T) {
	store := newTestStore(t)
	putProfile(t, store, "1001", map[domain.Weekday]domain.TriState{
		domain.Monday:   domain.TriApplies,
		domain.Thursday: domain.TriApplies,
		domain.Friday:   domain.TriApplies,
	}, domain.TriIgnored, "")
	r := NewResolver(store)

	// 2026-01-09 is a Friday. Candidates: Monday eleven days back, Thursday
	// eight days back, Friday exactly one week back (2026-01-02). Late-week
	// dispatches keep the latest.
	friday := time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)
	got, err := r.DeliveryDate("1001", friday)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), *got)
}

func TestResolver_FlaggedDispatchWeekdayLandsLastWeek(t *testing.T) {
	store := newTestStore(t)
	putProfile(t, store, "1001", map[domain.Weekday]domain.TriState{
		domain.Wednesday: domain.TriApplies,
	}, domain.TriIgnored, "")
	r := NewResolver(store)

	// A flag on the dispatch weekday itself selects last week's occurrence,
	// never the dispatch date.
	got, err := r.DeliveryDate("1001", wednesday)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, wednesday.AddDate(0, 0, -7), *got)
}

func TestResolver_SundayDispatchIgnoresWeekdayFlags(t *testing.T) {
	store := newTestStore(t)
	putProfile(t, store, "1001", map[domain.Weekday]domain.TriState{
		domain.Monday:   domain.TriApplies,
		domain.Saturday: domain.TriApplies,
	}, domain.TriIgnored, "")
	r := NewResolver(store)

	// 2026-01-11 is a Sunday. Weekday flags never select on Sunday
	// dispatches; with no D-2 there is no date at all.
	sunday := time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)
	got, err := r.DeliveryDate("1001", sunday)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Only the D-2 seed survives a Sunday dispatch.
	putProfile(t, store, "1002", map[domain.Weekday]domain.TriState{
		domain.Monday: domain.TriApplies,
	}, domain.TriApplies, "")
	got, err = r.DeliveryDate("1002", sunday)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC), *got)
}

func TestResolver_CodeNormalization(t *testing.T) {
	store := newTestStore(t)
	putProfile(t, store, "1001", nil, domain.TriApplies, "")
	r := NewResolver(store)

	// Spreadsheet-mangled codes resolve to the same profile.
	got, err := r.DeliveryDate(" 1001.0 ", wednesday)
	require.NoError(t, err)
	assert.NotNil(t, got)
}
