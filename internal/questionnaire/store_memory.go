package questionnaire

import (
	"context"
	"sort"
	"sync"

	dErrors "agrisurvey/pkg/domain-errors"
)

// InMemoryStore keeps questionnaires in process memory. Values are cloned on
// the way in and out so callers never share mutable state with the store.
type InMemoryStore struct {
	mu             sync.RWMutex
	questionnaires map[string]*Questionnaire
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{questionnaires: make(map[string]*Questionnaire)}
}

func (s *InMemoryStore) Save(_ context.Context, q *Questionnaire) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questionnaires[q.ID] = q.Clone()
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (*Questionnaire, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questionnaires[id]
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "questionnaire %s not found", id)
	}
	return q.Clone(), nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*Questionnaire, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Questionnaire, 0, len(s.questionnaires))
	for _, q := range s.questionnaires {
		out = append(out, q.Clone())
	}
	sortByCreation(out)
	return out, nil
}

func (s *InMemoryStore) ListByStatus(_ context.Context, status Status) ([]*Questionnaire, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Questionnaire
	for _, q := range s.questionnaires {
		if q.Statut == status {
			out = append(out, q.Clone())
		}
	}
	sortByCreation(out)
	return out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questionnaires[id]; !ok {
		return dErrors.Newf(dErrors.CodeNotFound, "questionnaire %s not found", id)
	}
	delete(s.questionnaires, id)
	return nil
}

func sortByCreation(qs []*Questionnaire) {
	sort.Slice(qs, func(i, j int) bool {
		if qs[i].CreatedAt.Equal(qs[j].CreatedAt) {
			return qs[i].ID < qs[j].ID
		}
		return qs[i].CreatedAt.Before(qs[j].CreatedAt)
	})
}
