package questionnaire

import (
	"context"
	"log/slog"

	"agrisurvey/internal/audit"
	"agrisurvey/internal/platform/metrics"
	dErrors "agrisurvey/pkg/domain-errors"
	"agrisurvey/pkg/requestcontext"
)

// Service orchestrates questionnaire operations: domain rules live on the
// aggregate, persistence and audit wiring live here.
type Service struct {
	store   Store
	cache   Cache
	auditor *audit.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewService(store Store, cache Cache, auditor *audit.Publisher, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{store: store, cache: cache, auditor: auditor, metrics: m, logger: logger}
}

// Create builds a new questionnaire from client input and persists it.
func (s *Service) Create(ctx context.Context, in API) (*Questionnaire, error) {
	q, err := FromAPI(in, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, q); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.QuestionnairesCreated.Inc()
	}
	s.emit(ctx, audit.ActionQuestionnaireCreated, q.ID, map[string]string{"titre": q.Titre})
	return q, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Questionnaire, error) {
	return s.store.Get(ctx, id)
}

// GetPublished serves a published questionnaire, preferring the cache.
func (s *Service) GetPublished(ctx context.Context, id string) (*Questionnaire, error) {
	if s.cache != nil {
		if q, err := s.cache.GetPublished(ctx, id); err == nil {
			return q, nil
		} else if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			s.logger.WarnContext(ctx, "questionnaire cache read failed", "id", id, "error", err)
		}
	}
	q, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.Statut != StatusPublie {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "questionnaire %s is not published", id)
	}
	if s.cache != nil {
		if err := s.cache.SetPublished(ctx, q); err != nil {
			s.logger.WarnContext(ctx, "questionnaire cache write failed", "id", id, "error", err)
		}
	}
	return q, nil
}

func (s *Service) List(ctx context.Context) ([]*Questionnaire, error) {
	return s.store.List(ctx)
}

func (s *Service) ListByStatus(ctx context.Context, status Status) ([]*Questionnaire, error) {
	if !status.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeValidation, "unknown status %q", status)
	}
	return s.store.ListByStatus(ctx, status)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// SubmitForReview moves a draft into review.
func (s *Service) SubmitForReview(ctx context.Context, id string) (*Questionnaire, error) {
	return s.mutate(ctx, id, audit.ActionQuestionnaireSubmitted, nil, func(q *Questionnaire, nowCtx context.Context) error {
		return q.SubmitForReview(requestcontext.Now(nowCtx))
	})
}

// Validate approves a reviewed questionnaire.
func (s *Service) Validate(ctx context.Context, id, validateur string) (*Questionnaire, error) {
	details := map[string]string{"validateur": validateur}
	return s.mutate(ctx, id, audit.ActionQuestionnaireValidated, details, func(q *Questionnaire, nowCtx context.Context) error {
		return q.Validate(validateur, requestcontext.Now(nowCtx))
	})
}

// Publish makes a validated questionnaire available for field use and warms
// the cache.
func (s *Service) Publish(ctx context.Context, id string) (*Questionnaire, error) {
	q, err := s.mutate(ctx, id, audit.ActionQuestionnairePublished, nil, func(q *Questionnaire, nowCtx context.Context) error {
		return q.Publish(requestcontext.Now(nowCtx))
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.QuestionnairesPublished.Inc()
	}
	if s.cache != nil {
		if err := s.cache.SetPublished(ctx, q); err != nil {
			s.logger.WarnContext(ctx, "questionnaire cache warm failed", "id", id, "error", err)
		}
	}
	return q, nil
}

// Archive retires a questionnaire permanently.
func (s *Service) Archive(ctx context.Context, id string) (*Questionnaire, error) {
	q, err := s.mutate(ctx, id, audit.ActionQuestionnaireArchived, nil, func(q *Questionnaire, nowCtx context.Context) error {
		return q.Archive(requestcontext.Now(nowCtx))
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return q, nil
}

// Suspend pulls a questionnaire from use without archiving it.
func (s *Service) Suspend(ctx context.Context, id string) (*Questionnaire, error) {
	q, err := s.mutate(ctx, id, audit.ActionQuestionnaireSuspended, nil, func(q *Questionnaire, nowCtx context.Context) error {
		return q.Suspend(requestcontext.Now(nowCtx))
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return q, nil
}

// RecordUsage notes that a field survey used this questionnaire.
func (s *Service) RecordUsage(ctx context.Context, id string) (*Questionnaire, error) {
	q, err := s.mutate(ctx, id, audit.ActionQuestionnaireUsed, nil, func(q *Questionnaire, nowCtx context.Context) error {
		return q.RecordUsage(requestcontext.Now(nowCtx))
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.QuestionnaireUsages.Inc()
	}
	return q, nil
}

// AddFeedback records a satisfaction rating from the field.
func (s *Service) AddFeedback(ctx context.Context, id string, note int, commentaire string) (*Questionnaire, error) {
	return s.mutate(ctx, id, "", nil, func(q *Questionnaire, nowCtx context.Context) error {
		return q.AddFeedback(note, commentaire, requestcontext.Now(nowCtx))
	})
}

// Duplicate copies a questionnaire into a fresh draft.
func (s *Service) Duplicate(ctx context.Context, id, titre string) (*Questionnaire, error) {
	src, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dup, err := src.Duplicate(titre, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, dup); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.QuestionnairesCreated.Inc()
	}
	s.emit(ctx, audit.ActionQuestionnaireCreated, dup.ID, map[string]string{"duplicated_from": id})
	return dup, nil
}

// AddSection appends a section to the questionnaire structure.
func (s *Service) AddSection(ctx context.Context, id string, section Section) (*Questionnaire, error) {
	return s.mutate(ctx, id, "", nil, func(q *Questionnaire, nowCtx context.Context) error {
		_, err := q.AddSection(section, requestcontext.Now(nowCtx))
		return err
	})
}

func (s *Service) UpdateSection(ctx context.Context, id, sectionID string, section Section) (*Questionnaire, error) {
	return s.mutate(ctx, id, "", nil, func(q *Questionnaire, nowCtx context.Context) error {
		return q.UpdateSection(sectionID, section, requestcontext.Now(nowCtx))
	})
}

func (s *Service) RemoveSection(ctx context.Context, id, sectionID string) (*Questionnaire, error) {
	return s.mutate(ctx, id, "", nil, func(q *Questionnaire, nowCtx context.Context) error {
		return q.RemoveSection(sectionID, requestcontext.Now(nowCtx))
	})
}

// AddQuestion appends a question to the questionnaire.
func (s *Service) AddQuestion(ctx context.Context, id string, question Question) (*Questionnaire, error) {
	return s.mutate(ctx, id, "", nil, func(q *Questionnaire, nowCtx context.Context) error {
		_, err := q.AddQuestion(question, requestcontext.Now(nowCtx))
		return err
	})
}

func (s *Service) UpdateQuestion(ctx context.Context, id, questionID string, question Question) (*Questionnaire, error) {
	return s.mutate(ctx, id, "", nil, func(q *Questionnaire, nowCtx context.Context) error {
		return q.UpdateQuestion(questionID, question, requestcontext.Now(nowCtx))
	})
}

func (s *Service) RemoveQuestion(ctx context.Context, id, questionID string) (*Questionnaire, error) {
	return s.mutate(ctx, id, "", nil, func(q *Questionnaire, nowCtx context.Context) error {
		return q.RemoveQuestion(questionID, requestcontext.Now(nowCtx))
	})
}

// ReorderQuestions rewrites question ordering from the given id sequence.
func (s *Service) ReorderQuestions(ctx context.Context, id string, questionIDs []string) (*Questionnaire, error) {
	return s.mutate(ctx, id, "", nil, func(q *Questionnaire, nowCtx context.Context) error {
		return q.ReorderQuestions(questionIDs, requestcontext.Now(nowCtx))
	})
}

// mutate loads the aggregate, applies fn, and saves on success. Aggregates
// left untouched by failed transitions are never written back.
func (s *Service) mutate(ctx context.Context, id string, action audit.Action, details map[string]string, fn func(*Questionnaire, context.Context) error) (*Questionnaire, error) {
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
	if action != "" {
		s.emit(ctx, action, q.ID, details)
	}
	return q, nil
}

func (s *Service) emit(ctx context.Context, action audit.Action, entityID string, details map[string]string) {
	if s.auditor == nil {
		return
	}
	err := s.auditor.Emit(ctx, audit.Event{
		Action:   action,
		Entity:   "questionnaire",
		EntityID: entityID,
		Details:  details,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", action, "entity_id", entityID, "error", err)
	}
}

func (s *Service) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "questionnaire cache invalidation failed", "id", id, "error", err)
	}
}
