package dashboard

import (
	"strings"
	"sync"
)

// Service wraps a Store with the checks the store itself leaves to callers:
// ids must be present and unique on add, and update/remove report absence.
// The store contract stays total; rejected calls never reach it.
type Service struct {
	mu        sync.Mutex
	store     StoreAPI
	observers []ViolationObserver
}

// ViolationObserver is told about every safety violation the service
// accepts. ViolationAdded runs under the service lock and must not block.
type ViolationObserver interface {
	ViolationAdded(violation SafetyViolation)
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) Observe(o ViolationObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *Service) State() State {
	return s.store.State()
}

func (s *Service) AddWorker(worker Worker) error {
	if strings.TrimSpace(worker.ID) == "" {
		return ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.store.State().WorkerByID(worker.ID); exists {
		return ErrDuplicateID
	}
	s.store.AddWorker(worker)
	return nil
}

func (s *Service) UpdateWorker(worker Worker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.store.UpdateWorker(worker) {
		return ErrNotFound
	}
	return nil
}

func (s *Service) RemoveWorker(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.store.RemoveWorker(id) {
		return ErrNotFound
	}
	return nil
}

func (s *Service) AddSite(site SiteInfo) error {
	if strings.TrimSpace(site.ID) == "" {
		return ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.store.State().SiteByID(site.ID); exists {
		return ErrDuplicateID
	}
	s.store.AddSite(site)
	return nil
}

func (s *Service) UpdateSite(site SiteInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.store.UpdateSite(site) {
		return ErrNotFound
	}
	return nil
}

func (s *Service) RemoveSite(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.store.RemoveSite(id) {
		return ErrNotFound
	}
	return nil
}

// AddSafetyViolation does not check WorkerID against the workers.
func (s *Service) AddSafetyViolation(violation SafetyViolation) error {
	if strings.TrimSpace(violation.ID) == "" {
		return ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.store.State().SafetyViolations {
		if existing.ID == violation.ID {
			return ErrDuplicateID
		}
	}
	s.store.AddSafetyViolation(violation)
	for _, o := range s.observers {
		o.ViolationAdded(violation)
	}
	return nil
}

// SetSelectedSite does not check the id against the sites.
func (s *Service) SetSelectedSite(id *string) {
	s.store.SetSelectedSite(id)
}
