package interview

import (
	"context"
	"sort"
	"sync"

	dErrors "agrisurvey/pkg/domain-errors"
)

// InMemoryStore keeps interviews in process memory. Values are cloned on the
// way in and out so callers never share mutable state with the store.
type InMemoryStore struct {
	mu         sync.RWMutex
	interviews map[string]*Interview
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{interviews: make(map[string]*Interview)}
}

func (s *InMemoryStore) Save(_ context.Context, iv *Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interviews[iv.ID] = iv.Clone()
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (*Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	iv, ok := s.interviews[id]
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "interview %s not found", id)
	}
	return iv.Clone(), nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Interview, 0, len(s.interviews))
	for _, iv := range s.interviews {
		out = append(out, iv.Clone())
	}
	sortBySchedule(out)
	return out, nil
}

func (s *InMemoryStore) ListByInterviewer(_ context.Context, interviewerID string) ([]*Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Interview
	for _, iv := range s.interviews {
		if iv.Interviewer == interviewerID {
			out = append(out, iv.Clone())
		}
	}
	sortBySchedule(out)
	return out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.interviews[id]; !ok {
		return dErrors.Newf(dErrors.CodeNotFound, "interview %s not found", id)
	}
	delete(s.interviews, id)
	return nil
}

func sortBySchedule(ivs []*Interview) {
	sort.Slice(ivs, func(i, j int) bool {
		if ivs[i].ScheduledDate.Equal(ivs[j].ScheduledDate) {
			return ivs[i].ID < ivs[j].ID
		}
		return ivs[i].ScheduledDate.Before(ivs[j].ScheduledDate)
	})
}
