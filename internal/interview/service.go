package interview

import (
	"context"
	"log/slog"
	"time"

	"agrisurvey/internal/audit"
	"agrisurvey/internal/platform/metrics"
	"agrisurvey/pkg/requestcontext"
)

// Service orchestrates interview operations: domain rules live on the entity,
// persistence and audit wiring live here.
type Service struct {
	store   Store
	auditor *audit.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewService(store Store, auditor *audit.Publisher, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{store: store, auditor: auditor, metrics: m, logger: logger}
}

// Schedule creates a new interview from client input and persists it.
func (s *Service) Schedule(ctx context.Context, in API) (*Interview, error) {
	iv, err := FromAPI(in, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, iv); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.InterviewsScheduled.Inc()
	}
	s.emit(ctx, audit.ActionInterviewScheduled, iv.ID, map[string]string{"candidate": iv.CandidateName})
	return iv, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Interview, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Interview, error) {
	return s.store.List(ctx)
}

func (s *Service) ListByInterviewer(ctx context.Context, interviewerID string) ([]*Interview, error) {
	return s.store.ListByInterviewer(ctx, interviewerID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Start opens a scheduled interview.
func (s *Service) Start(ctx context.Context, id string) (*Interview, error) {
	return s.mutate(ctx, id, audit.ActionInterviewStarted, nil, func(iv *Interview, nowCtx context.Context) error {
		return iv.Start(requestcontext.Now(nowCtx))
	})
}

// Complete closes a running interview with its final assessment.
func (s *Service) Complete(ctx context.Context, id string, overallRating int, recommendation Recommendation, notes string) (*Interview, error) {
	iv, err := s.mutate(ctx, id, audit.ActionInterviewCompleted, nil, func(iv *Interview, nowCtx context.Context) error {
		return iv.Complete(overallRating, recommendation, notes, requestcontext.Now(nowCtx))
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.InterviewsCompleted.Inc()
	}
	return iv, nil
}

// Cancel aborts an interview in any non-terminal state.
func (s *Service) Cancel(ctx context.Context, id string) (*Interview, error) {
	return s.mutate(ctx, id, audit.ActionInterviewCancelled, nil, func(iv *Interview, nowCtx context.Context) error {
		return iv.Cancel(requestcontext.Now(nowCtx))
	})
}

// Postpone parks an interview until it is rescheduled.
func (s *Service) Postpone(ctx context.Context, id string) (*Interview, error) {
	return s.mutate(ctx, id, audit.ActionInterviewPostponed, nil, func(iv *Interview, nowCtx context.Context) error {
		return iv.Postpone(requestcontext.Now(nowCtx))
	})
}

// Reschedule moves an interview to a future date and puts it back on the
// calendar.
func (s *Service) Reschedule(ctx context.Context, id string, newDate time.Time) (*Interview, error) {
	return s.mutate(ctx, id, audit.ActionInterviewScheduled, map[string]string{"rescheduled": "true"}, func(iv *Interview, nowCtx context.Context) error {
		return iv.Reschedule(newDate, requestcontext.Now(nowCtx))
	})
}

// AddQuestion attaches a question record to the interview script.
func (s *Service) AddQuestion(ctx context.Context, id, text string) (*Interview, error) {
	return s.mutate(ctx, id, "", nil, func(iv *Interview, nowCtx context.Context) error {
		_, err := iv.AddQuestion(text, requestcontext.Now(nowCtx))
		return err
	})
}

// AnswerQuestion records a response and rating against a question.
func (s *Service) AnswerQuestion(ctx context.Context, id, questionID, answer string, rating int, notes string) (*Interview, error) {
	return s.mutate(ctx, id, "", nil, func(iv *Interview, nowCtx context.Context) error {
		return iv.UpdateQuestionAnswer(questionID, answer, rating, notes, requestcontext.Now(nowCtx))
	})
}

func (s *Service) mutate(ctx context.Context, id string, action audit.Action, details map[string]string, fn func(*Interview, context.Context) error) (*Interview, error) {
	iv, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(iv, ctx); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, iv); err != nil {
		return nil, err
	}
	if action != "" {
		s.emit(ctx, action, iv.ID, details)
	}
	return iv, nil
}

func (s *Service) emit(ctx context.Context, action audit.Action, entityID string, details map[string]string) {
	if s.auditor == nil {
		return
	}
	err := s.auditor.Emit(ctx, audit.Event{
		Action:   action,
		Entity:   "interview",
		EntityID: entityID,
		Details:  details,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", action, "entity_id", entityID, "error", err)
	}
}
