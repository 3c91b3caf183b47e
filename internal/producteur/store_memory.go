package producteur

import (
	"context"
	"sort"
	"strings"
	"sync"

	dErrors "agrisurvey/pkg/domain-errors"
)

// InMemoryStore keeps producer profiles in process memory. Values are cloned
// on the way in and out so callers never share mutable state with the store.
type InMemoryStore struct {
	mu          sync.RWMutex
	producteurs map[string]*Producteur
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{producteurs: make(map[string]*Producteur)}
}

func (s *InMemoryStore) Save(_ context.Context, p *Producteur) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.producteurs[p.ID] = p.Clone()
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (*Producteur, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.producteurs[id]
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "producteur %s not found", id)
	}
	return p.Clone(), nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*Producteur, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Producteur, 0, len(s.producteurs))
	for _, p := range s.producteurs {
		out = append(out, p.Clone())
	}
	sortByName(out)
	return out, nil
}

func (s *InMemoryStore) ListByStatus(_ context.Context, status VerificationStatus) ([]*Producteur, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Producteur
	for _, p := range s.producteurs {
		if p.StatusVerification == status {
			out = append(out, p.Clone())
		}
	}
	sortByName(out)
	return out, nil
}

func (s *InMemoryStore) ListByRegion(_ context.Context, region string) ([]*Producteur, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Producteur
	for _, p := range s.producteurs {
		if strings.EqualFold(p.Region, region) {
			out = append(out, p.Clone())
		}
	}
	sortByName(out)
	return out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.producteurs[id]; !ok {
		return dErrors.Newf(dErrors.CodeNotFound, "producteur %s not found", id)
	}
	delete(s.producteurs, id)
	return nil
}

func sortByName(ps []*Producteur) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Nom == ps[j].Nom {
			return ps[i].ID < ps[j].ID
		}
		return ps[i].Nom < ps[j].Nom
	})
}
