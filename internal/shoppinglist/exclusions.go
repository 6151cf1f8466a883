package shoppinglist

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

// ErrInvalidExclusion is returned when an exclusion payload contains an
// empty or blank name. The store is left untouched in that case.
var ErrInvalidExclusion = errors.New("exclusion names must be non-empty strings")

// ExclusionStore persists per-plan exclusion sets. Implementations must
// give read-your-writes for a plan key: an AddExclusions call is visible to
// every subsequent GetExclusions for the same key. Exclusions are never
// cleared through this interface; clearing is the store owner's policy.
type ExclusionStore interface {
	AddExclusions(ctx context.Context, planID string, names []string) error
	GetExclusions(ctx context.Context, planID string) ([]string, error)
}

// Filter removes user-suppressed names from an aggregate, backed by an
// injected ExclusionStore.
type Filter struct {
	store ExclusionStore
}

// NewFilter creates a Filter over the given store.
func NewFilter(store ExclusionStore) *Filter {
	return &Filter{store: store}
}

// AddExclusions validates the payload and merges the names into the plan's
// exclusion set as an idempotent union. Validation happens before the store
// is touched, so a rejected payload never mutates anything.
func (f *Filter) AddExclusions(ctx context.Context, planID string, names []string) error {
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			return ErrInvalidExclusion
		}
	}
	if len(names) == 0 {
		return nil
	}
	return f.store.AddExclusions(ctx, planID, names)
}

// GetExclusions returns the plan's current exclusion set, empty if none
// has been recorded.
func (f *Filter) GetExclusions(ctx context.Context, planID string) ([]string, error) {
	return f.store.GetExclusions(ctx, planID)
}

// Apply returns a new aggregate equal to the input minus every excluded
// name. Exclusion removes an entry entirely; counts are never decremented.
func (f *Filter) Apply(ctx context.Context, aggregate map[string]int, planID string) (map[string]int, error) {
	excluded, err := f.store.GetExclusions(ctx, planID)
	if err != nil {
		return nil, err
	}
	drop := make(map[string]bool, len(excluded))
	for _, n := range excluded {
		drop[n] = true
	}
	out := make(map[string]int, len(aggregate))
	for name, count := range aggregate {
		if !drop[name] {
			out[name] = count
		}
	}
	return out, nil
}

// MemoryExclusionStore is a mutex-guarded in-process ExclusionStore. It
// backs tests and single-instance deployments that don't want Postgres.
type MemoryExclusionStore struct {
	mu   sync.Mutex
	sets map[string]map[string]struct{}
}

// NewMemoryExclusionStore creates an empty in-memory store.
func NewMemoryExclusionStore() *MemoryExclusionStore {
	return &MemoryExclusionStore{sets: make(map[string]map[string]struct{})}
}

// AddExclusions unions the names into the plan's set.
func (s *MemoryExclusionStore) AddExclusions(_ context.Context, planID string, names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.sets[planID]
	if set == nil {
		set = make(map[string]struct{})
		s.sets[planID] = set
	}
	for _, n := range names {
		set[n] = struct{}{}
	}
	return nil
}

// GetExclusions returns the plan's set in sorted order.
func (s *MemoryExclusionStore) GetExclusions(_ context.Context, planID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.sets[planID]
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}
