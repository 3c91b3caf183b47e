package interview_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"agrisurvey/internal/interview"
	dErrors "agrisurvey/pkg/domain-errors"
)

var now = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

type InterviewSuite struct {
	suite.Suite
	itv *interview.Interview
}

func TestInterviewSuite(t *testing.T) {
	suite.Run(t, new(InterviewSuite))
}

func (s *InterviewSuite) SetupTest() {
	itv, err := interview.New("", "Aya Koné", "Agent de terrain", "K. Diabaté",
		now.Add(72*time.Hour), interview.TypePresentiel, now)
	s.Require().NoError(err)
	s.itv = itv
}

func (s *InterviewSuite) TestConstruction() {
	s.Run("rejects empty candidate name", func() {
		_, err := interview.New("", " ", "Poste", "Interviewer", now.Add(time.Hour), interview.TypeVisio, now)
		s.Require().Error(err)
		s.True(dErrors.IsValidation(err))
	})

	s.Run("rejects empty position", func() {
		_, err := interview.New("", "Nom", "", "Interviewer", now.Add(time.Hour), interview.TypeVisio, now)
		s.Require().Error(err)
	})

	s.Run("rejects zero scheduled date", func() {
		_, err := interview.New("", "Nom", "Poste", "Interviewer", time.Time{}, interview.TypeVisio, now)
		s.Require().Error(err)
	})

	s.Run("rejects unknown type", func() {
		_, err := interview.New("", "Nom", "Poste", "Interviewer", now.Add(time.Hour), interview.Type("courrier"), now)
		s.Require().Error(err)
	})

	s.Run("starts planifie with default duration", func() {
		s.Equal(interview.StatusPlanifie, s.itv.Status)
		s.Equal(60, s.itv.Duration)
	})
}

func (s *InterviewSuite) TestLifecycle() {
	s.Run("complete requires en_cours", func() {
		err := s.itv.Complete(4, interview.RecommendationRecommande, "", now)
		s.Require().Error(err)
		s.Equal(interview.StatusPlanifie, s.itv.Status)
	})

	s.Run("start requires planifie", func() {
		s.Require().NoError(s.itv.Start(now))
		s.Equal(interview.StatusEnCours, s.itv.Status)
		s.Require().Error(s.itv.Start(now))
	})

	s.Run("out-of-range rating leaves status en_cours", func() {
		err := s.itv.Complete(6, interview.RecommendationRecommande, "", now)
		s.Require().Error(err)
		s.True(dErrors.IsValidation(err))
		s.Equal(interview.StatusEnCours, s.itv.Status)
		s.Nil(s.itv.OverallRating)
	})

	s.Run("unknown recommendation rejected", func() {
		err := s.itv.Complete(4, interview.Recommendation("embaucher_vite"), "", now)
		s.Require().Error(err)
		s.Equal(interview.StatusEnCours, s.itv.Status)
	})

	s.Run("complete records verdict", func() {
		s.Require().NoError(s.itv.Complete(4, interview.RecommendationRecommande, "solide sur le terrain", now))
		s.Equal(interview.StatusTermine, s.itv.Status)
		s.Require().NotNil(s.itv.OverallRating)
		s.Equal(4, *s.itv.OverallRating)
	})

	s.Run("termine can never be cancelled", func() {
		err := s.itv.Cancel(now)
		s.Require().Error(err)
		s.Equal(interview.StatusTermine, s.itv.Status)
	})
}

func (s *InterviewSuite) TestCancel() {
	s.Require().NoError(s.itv.Cancel(now))
	s.Equal(interview.StatusAnnule, s.itv.Status)

	s.Run("cancelled interview cannot be rescheduled", func() {
		err := s.itv.Reschedule(now.Add(time.Hour), now)
		s.Require().Error(err)
	})
}

func (s *InterviewSuite) TestReschedule() {
	s.Run("rejects past date", func() {
		err := s.itv.Reschedule(now.Add(-time.Hour), now)
		s.Require().Error(err)
	})

	s.Run("rejects present instant", func() {
		err := s.itv.Reschedule(now, now)
		s.Require().Error(err)
	})

	s.Run("postpone then reschedule re-enters planifie", func() {
		s.Require().NoError(s.itv.Postpone(now))
		s.Equal(interview.StatusReporte, s.itv.Status)

		newDate := now.Add(7 * 24 * time.Hour)
		s.Require().NoError(s.itv.Reschedule(newDate, now))
		s.Equal(interview.StatusPlanifie, s.itv.Status)
		s.True(s.itv.ScheduledDate.Equal(newDate))
	})
}

func (s *InterviewSuite) TestQuestionRecords() {
	q1, err := s.itv.AddQuestion("Expérience en enquêtes agricoles?", now)
	s.Require().NoError(err)
	q2, err := s.itv.AddQuestion("Connaissance de la zone?", now)
	s.Require().NoError(err)

	s.Run("rejects empty question", func() {
		_, err := s.itv.AddQuestion("  ", now)
		s.Require().Error(err)
	})

	s.Run("update rejects unknown id", func() {
		err := s.itv.UpdateQuestionAnswer("ghost", "réponse", 3, "", now)
		s.Require().Error(err)
	})

	s.Run("update rejects out-of-range rating", func() {
		err := s.itv.UpdateQuestionAnswer(q1.ID, "réponse", 9, "", now)
		s.Require().Error(err)
		s.Empty(s.itv.Questions[0].Answer, "failed update mutates nothing")
	})

	s.Run("metrics derive from answered questions", func() {
		s.Nil(s.itv.AverageQuestionRating())
		s.Zero(s.itv.CompletionPercentage())

		s.Require().NoError(s.itv.UpdateQuestionAnswer(q1.ID, "Trois campagnes", 4, "", now))
		s.Require().NoError(s.itv.UpdateQuestionAnswer(q2.ID, "Natif de la région", 2, "bien", now))

		avg := s.itv.AverageQuestionRating()
		s.Require().NotNil(avg)
		s.InDelta(3.0, *avg, 1e-9)
		s.InDelta(100.0, s.itv.CompletionPercentage(), 1e-9)
	})

	s.Run("unanswered questions lower completion", func() {
		_, err := s.itv.AddQuestion("Disponibilité?", now)
		s.Require().NoError(err)
		s.InDelta(66.666, s.itv.CompletionPercentage(), 0.01)
	})
}

func (s *InterviewSuite) TestRoundTrip() {
	q1, err := s.itv.AddQuestion("Question A", now)
	s.Require().NoError(err)
	s.Require().NoError(s.itv.UpdateQuestionAnswer(q1.ID, "Réponse A", 5, "", now))
	s.Require().NoError(s.itv.Start(now))

	restored, err := interview.FromAPI(s.itv.ToAPI(), now.Add(time.Hour))
	s.Require().NoError(err)

	s.Equal(s.itv.ID, restored.ID)
	s.Equal(s.itv.Status, restored.Status)
	s.Equal(s.itv.Questions, restored.Questions)
	s.Equal(s.itv.CandidateName, restored.CandidateName)
	s.True(s.itv.ScheduledDate.Equal(restored.ScheduledDate))
	s.True(s.itv.CreatedAt.Equal(restored.CreatedAt), "timestamps preserved")
	s.True(s.itv.UpdatedAt.Equal(restored.UpdatedAt))
}

func (s *InterviewSuite) TestFromAPIRejectsInvalid() {
	base := interview.API{
		CandidateName: "Aya Koné",
		Position:      "Agent",
		Interviewer:   "K. Diabaté",
		ScheduledDate: now.Add(time.Hour),
	}

	s.Run("unknown status", func() {
		in := base
		in.Status = "suspendu"
		_, err := interview.FromAPI(in, now)
		s.Require().Error(err)
	})

	s.Run("invalid email", func() {
		in := base
		in.CandidateEmail = "pas-un-email"
		_, err := interview.FromAPI(in, now)
		s.Require().Error(err)
	})

	s.Run("out-of-range stored rating", func() {
		in := base
		rating := 7
		in.OverallRating = &rating
		_, err := interview.FromAPI(in, now)
		s.Require().Error(err)
	})

	s.Run("valid record constructs", func() {
		in := base
		in.CandidateEmail = "aya.kone@anader.ci"
		itv, err := interview.FromAPI(in, now)
		s.Require().NoError(err)
		s.Equal("aya.kone@anader.ci", itv.CandidateEmail.Value())
		s.Equal(interview.StatusPlanifie, itv.Status)
		s.Equal(interview.TypePresentiel, itv.Type)
	})
}
