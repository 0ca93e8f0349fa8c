package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lucasgnemmi/orderflow/internal/agenda"
	"github.com/lucasgnemmi/orderflow/internal/domain"
	"github.com/lucasgnemmi/orderflow/internal/importer"
)

type scheduleService struct {
	store    *agenda.Store
	resolver *agenda.Resolver
	obs      UseCaseObserver
}

func NewScheduleService(store *agenda.Store, observers ...UseCaseObserver) ScheduleService {
	return &scheduleService{
		store:    store,
		resolver: agenda.NewResolver(store),
		obs:      useCaseObserverOrNoop(observers),
	}
}

func (s *scheduleService) UpsertSupplier(ctx context.Context, p domain.SupplierProfile) error {
	start := time.Now()
	err := s.store.UpsertProfile(p)
	observe(ctx, s.obs, "schedule.upsert_supplier", start, err, map[string]any{"code": p.Code})
	return err
}

func (s *scheduleService) RemoveSupplier(ctx context.Context, code string) (bool, error) {
	start := time.Now()
	removed, err := s.store.RemoveProfile(code)
	observe(ctx, s.obs, "schedule.remove_supplier", start, err, map[string]any{"code": code, "removed": removed})
	return removed, err
}

func (s *scheduleService) GetSupplier(_ context.Context, code string) (*domain.SupplierProfile, error) {
	p := s.store.Profile(code)
	if p == nil {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (s *scheduleService) ListSuppliers(_ context.Context) ([]domain.SupplierProfile, error) {
	profiles := s.store.Profiles()
	out := make([]domain.SupplierProfile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *scheduleService) DispatchLag(_ context.Context) int {
	return s.store.DispatchLag()
}

func (s *scheduleService) SetDispatchLag(ctx context.Context, days int) error {
	start := time.Now()
	err := s.store.SetDispatchLag(days)
	observe(ctx, s.obs, "schedule.set_dispatch_lag", start, err, map[string]any{"days": days})
	return err
}

func (s *scheduleService) SetOverride(ctx context.Context, code, date string) error {
	p := s.store.Profile(code)
	if p == nil {
		return fmt.Errorf("supplier %q is not in the schedule", code)
	}
	if _, err := time.Parse(domain.OverrideDateLayout, date); err != nil {
		return fmt.Errorf("invalid override date %q (expected dd-mm-yyyy): %w", date, err)
	}
	updated := *p
	updated.ManualOverride = date

	start := time.Now()
	err := s.store.UpsertProfile(updated)
	observe(ctx, s.obs, "schedule.set_override", start, err, map[string]any{"code": updated.Code, "date": date})
	return err
}

func (s *scheduleService) ClearOverride(ctx context.Context, code string) error {
	p := s.store.Profile(code)
	if p == nil {
		return fmt.Errorf("supplier %q is not in the schedule", code)
	}
	updated := *p
	updated.ManualOverride = ""

	start := time.Now()
	err := s.store.UpsertProfile(updated)
	observe(ctx, s.obs, "schedule.clear_override", start, err, map[string]any{"code": updated.Code})
	return err
}

func (s *scheduleService) DispatchDate(_ context.Context, orderDate time.Time) time.Time {
	return s.resolver.DispatchDate(orderDate)
}

func (s *scheduleService) DeliveryDate(_ context.Context, code string, dispatch time.Time) (*time.Time, error) {
	return s.resolver.DeliveryDate(code, dispatch)
}

func (s *scheduleService) ImportMatrix(ctx context.Context, path string) (int, error) {
	start := time.Now()
	profiles, err := importer.ReadScheduleMatrix(path)
	if err != nil {
		observe(ctx, s.obs, "schedule.import_matrix", start, err, nil)
		return 0, err
	}
	imported := 0
	for _, p := range profiles {
		if err := s.store.UpsertProfile(p); err != nil {
			observe(ctx, s.obs, "schedule.import_matrix", start, err, map[string]any{"imported": imported})
			return imported, fmt.Errorf("importing supplier %s: %w", p.Code, err)
		}
		imported++
	}
	observe(ctx, s.obs, "schedule.import_matrix", start, nil, map[string]any{"imported": imported})
	return imported, nil
}

func (s *scheduleService) Reload(_ context.Context) error {
	return s.store.Reload()
}
