package question

import (
	"context"
	"log/slog"

	"agrisurvey/internal/audit"
	"agrisurvey/pkg/requestcontext"
)

// Service manages the shared question bank.
type Service struct {
	store   Store
	auditor *audit.Publisher
	logger  *slog.Logger
}

func NewService(store Store, auditor *audit.Publisher, logger *slog.Logger) *Service {
	return &Service{store: store, auditor: auditor, logger: logger}
}

// Create builds a new bank question from client input and persists it.
func (s *Service) Create(ctx context.Context, in API) (*Question, error) {
	q, err := FromAPI(in, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, q); err != nil {
		return nil, err
	}
	s.emit(ctx, audit.ActionQuestionCreated, q.ID)
	return q, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Question, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) GetByCode(ctx context.Context, code string) (*Question, error) {
	return s.store.GetByCode(ctx, code)
}

func (s *Service) List(ctx context.Context) ([]*Question, error) {
	return s.store.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Update applies a partial edit to the question text and metadata.
func (s *Service) Update(ctx context.Context, id string, fn func(*Question, context.Context) error) (*Question, error) {
	q, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(q, ctx); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// CheckResponse validates a candidate response against the question rules and
// resolves the branching target.
func (s *Service) CheckResponse(ctx context.Context, id string, response any) (nextCode string, err error) {
	q, err := s.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if err := q.ValidateResponse(response); err != nil {
		return "", err
	}
	if text, ok := response.(string); ok {
		return q.NextQuestionCode(text), nil
	}
	return "", nil
}

func (s *Service) emit(ctx context.Context, action audit.Action, entityID string) {
	if s.auditor == nil {
		return
	}
	err := s.auditor.Emit(ctx, audit.Event{
		Action:   action,
		Entity:   "question",
		EntityID: entityID,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", action, "entity_id", entityID, "error", err)
	}
}
