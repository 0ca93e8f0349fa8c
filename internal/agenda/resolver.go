package agenda

import (
	"errors"
	"time"

	"github.com/lucasgnemmi/orderflow/internal/domain"
)

// ErrNoDispatchDate is returned when DeliveryDate is called without a
// dispatch date. That is a programmer error, unlike an unknown supplier or
// an empty delivery matrix, which are ordinary "no date" outcomes.
var ErrNoDispatchDate = errors.New("agenda: dispatch date is required")

// Resolver computes delivery dates against a schedule store.
type Resolver struct {
	store *Store
}

func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// DispatchDate is a pure calendar addition of the configured lag; no
// business-day skipping.
func (r *Resolver) DispatchDate(orderDate time.Time) time.Time {
	return orderDate.AddDate(0, 0, r.store.DispatchLag())
}

// DeliveryDate computes the delivery date for a supplier given a dispatch
// date. It returns nil (and no error) when no date applies: unknown
// supplier, or no delivery trigger selects a candidate. Precedence:
//
//  1. A parseable manual override wins unconditionally, even when it falls
//     after the dispatch date.
//  2. Unknown supplier: no date.
//  3. Computed selection over the weekday flags and the D-2 rule.
//
// A malformed override is ignored and falls through to computed selection.
func (r *Resolver) DeliveryDate(code string, dispatch time.Time) (*time.Time, error) {
	if dispatch.IsZero() {
		return nil, ErrNoDispatchDate
	}

	profile := r.store.Profile(code)
	if profile == nil {
		return nil, nil
	}

	if profile.ManualOverride != "" {
		if manual, err := time.Parse(domain.OverrideDateLayout, profile.ManualOverride); err == nil {
			return &manual, nil
		}
	}

	return computeDeliveryDate(profile, dispatch), nil
}

// computeDeliveryDate is the weekly-matrix selection:
//
//   - Weekdays are encoded Monday=0 .. Sunday=6.
//   - For a flagged weekday k, daysBack = 7-(k-dow), normalized by +7 when
//     <= 0. For k < dow this exceeds 7 (two weekdays ago, not one), and for
//     k == dow it lands on last week's occurrence, never today.
//   - Dispatch on Mon/Tue/Wed keeps the earliest candidate, Thu/Fri/Sat the
//     latest. Sunday matches neither branch, so weekday flags never select
//     a candidate on Sunday dispatches; only a D-2 seed survives. Known
//     quirk, preserved until the schedule owners rule otherwise.
func computeDeliveryDate(p *domain.SupplierProfile, dispatch time.Time) *time.Time {
	dow := int(domain.WeekdayOf(dispatch))

	var selected *time.Time

	if p.DMinus2 == domain.TriApplies {
		candidate := dispatch.AddDate(0, 0, -2)
		if candidate.Before(dispatch) {
			selected = &candidate
		}
	}

	for k := range p.Days {
		if p.Days[k] != domain.TriApplies {
			continue
		}
		daysBack := 7 - (k - dow)
		if daysBack <= 0 {
			daysBack += 7
		}
		candidate := dispatch.AddDate(0, 0, -daysBack)
		if !candidate.Before(dispatch) {
			continue
		}

		switch {
		case dow <= 2: // Mon, Tue, Wed: most distant candidate
			if selected == nil || candidate.Before(*selected) {
				c := candidate
				selected = &c
			}
		case dow <= 5: // Thu, Fri, Sat: closest candidate
			if selected == nil || candidate.After(*selected) {
				c := candidate
				selected = &c
			}
		}
	}

	return selected
}
