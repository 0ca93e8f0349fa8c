// Package agenda holds the delivery schedule: the dispatch lag and the
// per-supplier weekly delivery matrix, plus the resolver that turns a
// dispatch date into a supplier delivery date.
package agenda

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lucasgnemmi/orderflow/internal/domain"
)

// DefaultDispatchLag is the number of calendar days between order date and
// dispatch date when nothing else is configured.
const DefaultDispatchLag = 21

// Store is the file-backed schedule configuration. Every mutation persists
// the whole file immediately; there is no batching and no concurrency
// control (single-process tool). Loads degrade to defaults, saves report
// their errors.
type Store struct {
	path     string
	lag      int
	profiles map[string]*domain.SupplierProfile
}

// scheduleFile is the on-disk JSON shape.
type scheduleFile struct {
	DispatchLagDays int                    `json:"dispatch_lag_days"`
	Suppliers       map[string]profileFile `json:"suppliers"`
}

type profileFile struct {
	Name           string          `json:"name"`
	Mon            domain.TriState `json:"mon"`
	Tue            domain.TriState `json:"tue"`
	Wed            domain.TriState `json:"wed"`
	Thu            domain.TriState `json:"thu"`
	Fri            domain.TriState `json:"fri"`
	Sat            domain.TriState `json:"sat"`
	DMinus2        domain.TriState `json:"d_minus_2"`
	ManualOverride string          `json:"manual_override_date,omitempty"`
}

// Open loads the schedule at path. A missing or unreadable file is replaced
// with defaults (lag 21, no suppliers) which are persisted right away. The
// returned Store is always usable; the error reports a failed initial
// persist and may be treated as a warning.
func Open(path string) (*Store, error) {
	s := &Store{
		path:     path,
		lag:      DefaultDispatchLag,
		profiles: make(map[string]*domain.SupplierProfile),
	}
	if err := s.load(); err != nil {
		// Corrupt or absent file: reset to defaults and persist them so the
		// next open finds a well-formed file.
		s.lag = DefaultDispatchLag
		s.profiles = make(map[string]*domain.SupplierProfile)
		if saveErr := s.Save(); saveErr != nil {
			return s, fmt.Errorf("initializing default schedule: %w", saveErr)
		}
	}
	return s, nil
}

// Reload re-reads the backing file, discarding in-memory state. Edits made
// by another process are invisible until this is called.
func (s *Store) Reload() error {
	return s.load()
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading schedule file: %w", err)
	}
	var file scheduleFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing schedule file: %w", err)
	}

	lag := file.DispatchLagDays
	if lag < 1 {
		lag = DefaultDispatchLag
	}
	profiles := make(map[string]*domain.SupplierProfile, len(file.Suppliers))
	for code, pf := range file.Suppliers {
		key := domain.NormalizeSupplierCode(code)
		if key == "" {
			continue
		}
		profiles[key] = &domain.SupplierProfile{
			Code: key,
			Name: pf.Name,
			Days: [6]domain.TriState{
				pf.Mon, pf.Tue, pf.Wed, pf.Thu, pf.Fri, pf.Sat,
			},
			DMinus2:        pf.DMinus2,
			ManualOverride: pf.ManualOverride,
		}
	}

	s.lag = lag
	s.profiles = profiles
	return nil
}

// Save serializes the full schedule state as a whole-file rewrite.
func (s *Store) Save() error {
	file := scheduleFile{
		DispatchLagDays: s.lag,
		Suppliers:       make(map[string]profileFile, len(s.profiles)),
	}
	for code, p := range s.profiles {
		file.Suppliers[code] = profileFile{
			Name:           p.Name,
			Mon:            p.Days[domain.Monday],
			Tue:            p.Days[domain.Tuesday],
			Wed:            p.Days[domain.Wednesday],
			Thu:            p.Days[domain.Thursday],
			Fri:            p.Days[domain.Friday],
			Sat:            p.Days[domain.Saturday],
			DMinus2:        p.DMinus2,
			ManualOverride: p.ManualOverride,
		}
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating schedule directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing schedule file: %w", err)
	}
	return nil
}

// DispatchLag returns the configured order-to-dispatch lag in days.
func (s *Store) DispatchLag() int {
	return s.lag
}

// SetDispatchLag updates the lag and persists. Values below 1 are rejected.
func (s *Store) SetDispatchLag(days int) error {
	if days < 1 {
		return fmt.Errorf("dispatch lag must be at least 1 day, got %d", days)
	}
	s.lag = days
	return s.Save()
}

// UpsertProfile inserts or replaces the profile for its code and persists.
// An existing profile with the same code is overwritten in place.
func (s *Store) UpsertProfile(p domain.SupplierProfile) error {
	key := domain.NormalizeSupplierCode(p.Code)
	if key == "" {
		return fmt.Errorf("supplier code is required")
	}
	p.Code = key
	s.profiles[key] = &p
	return s.Save()
}

// RemoveProfile deletes the profile if present and reports whether anything
// was removed. The file is only rewritten when a profile was deleted.
func (s *Store) RemoveProfile(code string) (bool, error) {
	key := domain.NormalizeSupplierCode(code)
	if _, ok := s.profiles[key]; !ok {
		return false, nil
	}
	delete(s.profiles, key)
	return true, s.Save()
}

// Profile returns the profile for the given code, or nil when unknown.
func (s *Store) Profile(code string) *domain.SupplierProfile {
	return s.profiles[domain.NormalizeSupplierCode(code)]
}

// Profiles returns a defensive copy of all profiles keyed by code.
func (s *Store) Profiles() map[string]domain.SupplierProfile {
	out := make(map[string]domain.SupplierProfile, len(s.profiles))
	for code, p := range s.profiles {
		out[code] = *p
	}
	return out
}
