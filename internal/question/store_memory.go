package question

import (
	"context"
	"sort"
	"strings"
	"sync"

	dErrors "agrisurvey/pkg/domain-errors"
)

// InMemoryStore keeps the question bank in process memory. Values are cloned
// on the way in and out so callers never share mutable state with the store.
type InMemoryStore struct {
	mu        sync.RWMutex
	questions map[string]*Question
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{questions: make(map[string]*Question)}
}

func (s *InMemoryStore) Save(_ context.Context, q *Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.questions {
		if existing.ID != q.ID && strings.EqualFold(existing.Code, q.Code) {
			return dErrors.Newf(dErrors.CodeConflict, "question code %q already in use", q.Code)
		}
	}
	s.questions[q.ID] = q.Clone()
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (*Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questions[id]
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "question %s not found", id)
	}
	return q.Clone(), nil
}

func (s *InMemoryStore) GetByCode(_ context.Context, code string) (*Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, q := range s.questions {
		if strings.EqualFold(q.Code, code) {
			return q.Clone(), nil
		}
	}
	return nil, dErrors.Newf(dErrors.CodeNotFound, "question code %q not found", code)
}

func (s *InMemoryStore) List(_ context.Context) ([]*Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Question, 0, len(s.questions))
	for _, q := range s.questions {
		out = append(out, q.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return dErrors.Newf(dErrors.CodeNotFound, "question %s not found", id)
	}
	delete(s.questions, id)
	return nil
}
