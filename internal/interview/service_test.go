package interview_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"agrisurvey/internal/audit"
	"agrisurvey/internal/interview"
	"agrisurvey/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	store   *interview.InMemoryStore
	events  *audit.InMemoryStore
	service *interview.Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), now)
	s.store = interview.NewInMemoryStore()
	s.events = audit.NewInMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = interview.NewService(s.store, audit.NewPublisher(s.events, nil), nil, logger)
}

func (s *ServiceSuite) schedule() *interview.Interview {
	iv, err := s.service.Schedule(s.ctx, interview.API{
		CandidateName: "Aya Brou",
		Position:      "Enqueteur terrain",
		Interviewer:   "resp-rh-1",
		ScheduledDate: now.Add(48 * time.Hour),
	})
	s.Require().NoError(err)
	return iv
}

func (s *ServiceSuite) TestScheduleDefaultsAndAudits() {
	iv := s.schedule()

	s.Equal(interview.StatusPlanifie, iv.Status)
	s.Equal(interview.TypePresentiel, iv.Type)
	s.Equal(60, iv.Duration)

	trail, err := s.events.ListByEntity(s.ctx, iv.ID)
	s.Require().NoError(err)
	s.Require().Len(trail, 1)
	s.Equal(audit.ActionInterviewScheduled, trail[0].Action)
}

func (s *ServiceSuite) TestLifecycleThroughService() {
	iv := s.schedule()

	_, err := s.service.Start(s.ctx, iv.ID)
	s.Require().NoError(err)

	done, err := s.service.Complete(s.ctx, iv.ID, 4, interview.RecommendationRecommande, "solide sur le terrain")
	s.Require().NoError(err)
	s.Equal(interview.StatusTermine, done.Status)

	s.Run("invalid completion never persists", func() {
		other := s.schedule()
		_, err := s.service.Start(s.ctx, other.ID)
		s.Require().NoError(err)

		_, err = s.service.Complete(s.ctx, other.ID, 9, interview.RecommendationRecommande, "")
		s.Require().Error(err)

		stored, err := s.store.Get(s.ctx, other.ID)
		s.Require().NoError(err)
		s.Equal(interview.StatusEnCours, stored.Status)
	})
}

func (s *ServiceSuite) TestPostponeThenReschedule() {
	iv := s.schedule()

	_, err := s.service.Postpone(s.ctx, iv.ID)
	s.Require().NoError(err)

	back, err := s.service.Reschedule(s.ctx, iv.ID, now.Add(96*time.Hour))
	s.Require().NoError(err)
	s.Equal(interview.StatusPlanifie, back.Status)
}

func (s *ServiceSuite) TestQuestionFlow() {
	iv := s.schedule()
	_, err := s.service.Start(s.ctx, iv.ID)
	s.Require().NoError(err)

	withQuestion, err := s.service.AddQuestion(s.ctx, iv.ID, "Experience avec les cooperatives?")
	s.Require().NoError(err)
	s.Require().Len(withQuestion.Questions, 1)

	answered, err := s.service.AnswerQuestion(s.ctx, iv.ID, withQuestion.Questions[0].ID, "Trois ans en COOP-CA", 5, "")
	s.Require().NoError(err)
	s.Equal(5, answered.Questions[0].Rating)
}

func (s *ServiceSuite) TestListByInterviewer() {
	s.schedule()
	s.schedule()

	mine, err := s.service.ListByInterviewer(s.ctx, "resp-rh-1")
	s.Require().NoError(err)
	s.Len(mine, 2)

	none, err := s.service.ListByInterviewer(s.ctx, "autre")
	s.Require().NoError(err)
	s.Empty(none)
}
