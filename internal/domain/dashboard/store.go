package dashboard

import (
	"context"
	"sync"

	"sitewatch/internal/platform/kv"
)

// Sink receives a copy of the full state after every mutation. Persist must
// not block on I/O.
type Sink interface {
	Persist(state State)
}

type nopSink struct{}

func (nopSink) Persist(State) {}

// Store holds the dashboard collections and the selected site. Every
// operation is total and atomic with respect to the others; after each
// mutation the whole state is handed to the Sink.
type Store struct {
	mu    sync.RWMutex
	state State
	sink  Sink
}

func NewStore(initial State, sink Sink) *Store {
	if sink == nil {
		sink = nopSink{}
	}
	state := initial.Clone()
	if state.Workers == nil {
		state.Workers = []Worker{}
	}
	if state.Sites == nil {
		state.Sites = []SiteInfo{}
	}
	if state.SafetyViolations == nil {
		state.SafetyViolations = []SafetyViolation{}
	}
	return &Store{state: state, sink: sink}
}

// Open rehydrates a store from the snapshot under StorageKey. Any load
// failure yields the empty state.
func Open(ctx context.Context, storage kv.Store, sink Sink) *Store {
	return NewStore(Load(ctx, storage), sink)
}

// State returns a deep copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *Store) AddWorker(worker Worker) {
	s.mutate(func(st *State) bool {
		st.Workers = append(st.Workers, worker.Clone())
		return true
	})
}

// UpdateWorker replaces every worker whose id matches. It never inserts and
// reports whether anything matched.
func (s *Store) UpdateWorker(worker Worker) bool {
	return s.mutate(func(st *State) bool {
		matched := false
		for i := range st.Workers {
			if st.Workers[i].ID == worker.ID {
				st.Workers[i] = worker.Clone()
				matched = true
			}
		}
		return matched
	})
}

func (s *Store) RemoveWorker(id string) bool {
	return s.mutate(func(st *State) bool {
		kept := make([]Worker, 0, len(st.Workers))
		for _, w := range st.Workers {
			if w.ID != id {
				kept = append(kept, w)
			}
		}
		removed := len(kept) != len(st.Workers)
		st.Workers = kept
		return removed
	})
}

func (s *Store) AddSite(site SiteInfo) {
	s.mutate(func(st *State) bool {
		st.Sites = append(st.Sites, site.Clone())
		return true
	})
}

func (s *Store) UpdateSite(site SiteInfo) bool {
	return s.mutate(func(st *State) bool {
		matched := false
		for i := range st.Sites {
			if st.Sites[i].ID == site.ID {
				st.Sites[i] = site.Clone()
				matched = true
			}
		}
		return matched
	})
}

// RemoveSite does not touch the selection even when it points at the
// removed site.
func (s *Store) RemoveSite(id string) bool {
	return s.mutate(func(st *State) bool {
		kept := make([]SiteInfo, 0, len(st.Sites))
		for _, site := range st.Sites {
			if site.ID != id {
				kept = append(kept, site)
			}
		}
		removed := len(kept) != len(st.Sites)
		st.Sites = kept
		return removed
	})
}

func (s *Store) AddSafetyViolation(violation SafetyViolation) {
	s.mutate(func(st *State) bool {
		st.SafetyViolations = append(st.SafetyViolations, violation.Clone())
		return true
	})
}

// SetSelectedSite replaces the selection unconditionally; nil clears it.
func (s *Store) SetSelectedSite(id *string) {
	s.mutate(func(st *State) bool {
		st.SelectedSite = cloneString(id)
		return true
	})
}

// mutate applies fn and persists the result, including no-op updates and
// removals.
func (s *Store) mutate(fn func(st *State) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := fn(&s.state)
	s.sink.Persist(s.state.Clone())
	return changed
}
