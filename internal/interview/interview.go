// Package interview implements the interview session entity: scheduling,
// the conduct lifecycle, and per-question answer records with ratings.
package interview

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"agrisurvey/internal/domain"
	dErrors "agrisurvey/pkg/domain-errors"
)

// Status is the interview lifecycle state.
//
// planifie → en_cours → termine; annule is reachable from any state except
// termine; reporte marks a postponement and re-enters planifie through
// Reschedule.
type Status string

const (
	StatusPlanifie Status = "planifie"
	StatusEnCours  Status = "en_cours"
	StatusTermine  Status = "termine"
	StatusAnnule   Status = "annule"
	StatusReporte  Status = "reporte"
)

var validStatuses = map[Status]bool{
	StatusPlanifie: true,
	StatusEnCours:  true,
	StatusTermine:  true,
	StatusAnnule:   true,
	StatusReporte:  true,
}

// ParseStatus validates external input against the status enum.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !validStatuses[status] {
		return "", dErrors.Newf(dErrors.CodeValidation, "unknown interview status %q", s)
	}
	return status, nil
}

func (s Status) String() string {
	return string(s)
}

// Type is the interview modality.
type Type string

const (
	TypePresentiel   Type = "presentiel"
	TypeVisio        Type = "visio"
	TypeTelephonique Type = "telephonique"
)

var validTypes = map[Type]bool{
	TypePresentiel:   true,
	TypeVisio:        true,
	TypeTelephonique: true,
}

// ParseType validates external input against the modality enum.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !validTypes[t] {
		return "", dErrors.Newf(dErrors.CodeValidation, "unknown interview type %q", s)
	}
	return t, nil
}

func (t Type) String() string {
	return string(t)
}

// Recommendation is the interviewer's verdict recorded at completion.
type Recommendation string

const (
	RecommendationFortementRecommande Recommendation = "fortement_recommande"
	RecommendationRecommande          Recommendation = "recommande"
	RecommendationReserve             Recommendation = "reserve"
	RecommendationNonRecommande       Recommendation = "non_recommande"
)

var validRecommendations = map[Recommendation]bool{
	RecommendationFortementRecommande: true,
	RecommendationRecommande:          true,
	RecommendationReserve:             true,
	RecommendationNonRecommande:       true,
}

// ParseRecommendation validates external input against the verdict enum.
func ParseRecommendation(s string) (Recommendation, error) {
	r := Recommendation(s)
	if !validRecommendations[r] {
		return "", dErrors.Newf(dErrors.CodeValidation, "unknown recommendation %q", s)
	}
	return r, nil
}

func (r Recommendation) String() string {
	return string(r)
}

// QuestionRecord is one question asked during the interview, with its
// captured answer, rating, and notes.
type QuestionRecord struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer,omitempty"`
	Rating   int    `json:"rating,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Interview is a scheduled or conducted interview session.
//
// Invariants:
//   - CandidateName, Position, and Interviewer are non-empty
//   - ScheduledDate is set; rescheduling demands a strictly-future date
//   - Ratings (overall and per question) stay within [1,5]
//   - Status moves only along the lifecycle above
type Interview struct {
	domain.Identity
	CandidateName  string
	CandidateEmail domain.Email
	CandidatePhone string
	Position       string
	Department     string
	ScheduledDate  time.Time
	Duration       int
	Status         Status
	Type           Type
	Interviewer    string
	InterviewerID  string
	Questions      []QuestionRecord
	OverallRating  *int
	Recommendation Recommendation
	Notes          string
}

// New schedules an interview. An empty id is generated; now is injected by
// the caller.
func New(id, candidateName, position, interviewer string, scheduledDate time.Time, typ Type, now time.Time) (*Interview, error) {
	itv := &Interview{
		Identity:      domain.NewIdentity(id, now),
		CandidateName: strings.TrimSpace(candidateName),
		Position:      strings.TrimSpace(position),
		Interviewer:   strings.TrimSpace(interviewer),
		ScheduledDate: scheduledDate,
		Duration:      60,
		Status:        StatusPlanifie,
		Type:          typ,
	}
	if err := itv.validate(); err != nil {
		return nil, err
	}
	return itv, nil
}

func (i *Interview) validate() error {
	if err := i.Identity.Validate(); err != nil {
		return err
	}
	if i.CandidateName == "" {
		return dErrors.New(dErrors.CodeValidation, "candidate name cannot be empty")
	}
	if i.Position == "" {
		return dErrors.New(dErrors.CodeValidation, "position cannot be empty")
	}
	if i.Interviewer == "" {
		return dErrors.New(dErrors.CodeValidation, "interviewer cannot be empty")
	}
	if i.ScheduledDate.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "scheduled date cannot be empty")
	}
	if !validStatuses[i.Status] {
		return dErrors.Newf(dErrors.CodeValidation, "unknown interview status %q", i.Status)
	}
	if !validTypes[i.Type] {
		return dErrors.Newf(dErrors.CodeValidation, "unknown interview type %q", i.Type)
	}
	if i.Duration <= 0 {
		return dErrors.New(dErrors.CodeValidation, "duration must be positive")
	}
	if i.OverallRating != nil {
		if err := checkRating(*i.OverallRating); err != nil {
			return err
		}
	}
	if i.Recommendation != "" && !validRecommendations[i.Recommendation] {
		return dErrors.Newf(dErrors.CodeValidation, "unknown recommendation %q", i.Recommendation)
	}
	for _, qr := range i.Questions {
		if qr.Rating != 0 {
			if err := checkRating(qr.Rating); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkRating(rating int) error {
	if rating < 1 || rating > 5 {
		return dErrors.Newf(dErrors.CodeValidation, "rating %d outside range [1,5]", rating)
	}
	return nil
}

// CanReschedule checks that newDate is usable for a postponement.
func (i *Interview) CanReschedule(newDate time.Time, now time.Time) error {
	if i.Status == StatusTermine || i.Status == StatusAnnule {
		return dErrors.Newf(dErrors.CodeValidation, "cannot reschedule interview in status %q", i.Status)
	}
	if newDate.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "new date cannot be empty")
	}
	if !newDate.After(now) {
		return dErrors.New(dErrors.CodeValidation, "new date must be in the future")
	}
	return nil
}

// Reschedule postpones the interview to a strictly-future date and resets
// the status to planifie.
func (i *Interview) Reschedule(newDate time.Time, now time.Time) error {
	if err := i.CanReschedule(newDate, now); err != nil {
		return err
	}
	i.ScheduledDate = newDate
	i.Status = StatusPlanifie
	i.Touch(now)
	return nil
}

// Start begins a planned interview.
func (i *Interview) Start(now time.Time) error {
	if i.Status != StatusPlanifie {
		return dErrors.Newf(dErrors.CodeValidation, "cannot start interview in status %q", i.Status)
	}
	i.Status = StatusEnCours
	i.Touch(now)
	return nil
}

// Complete finishes an in-progress interview, recording the overall rating,
// recommendation, and closing notes.
func (i *Interview) Complete(overallRating int, recommendation Recommendation, notes string, now time.Time) error {
	if i.Status != StatusEnCours {
		return dErrors.Newf(dErrors.CodeValidation, "cannot complete interview in status %q", i.Status)
	}
	if err := checkRating(overallRating); err != nil {
		return err
	}
	if !validRecommendations[recommendation] {
		return dErrors.Newf(dErrors.CodeValidation, "unknown recommendation %q", recommendation)
	}
	i.Status = StatusTermine
	i.OverallRating = &overallRating
	i.Recommendation = recommendation
	i.Notes = strings.TrimSpace(notes)
	i.Touch(now)
	return nil
}

// Cancel aborts the interview. A completed interview can never be cancelled.
func (i *Interview) Cancel(now time.Time) error {
	if i.Status == StatusTermine {
		return dErrors.New(dErrors.CodeValidation, "cannot cancel a completed interview")
	}
	i.Status = StatusAnnule
	i.Touch(now)
	return nil
}

// Postpone flags the interview as reporte until a new date is chosen via
// Reschedule.
func (i *Interview) Postpone(now time.Time) error {
	if i.Status == StatusTermine || i.Status == StatusAnnule {
		return dErrors.Newf(dErrors.CodeValidation, "cannot postpone interview in status %q", i.Status)
	}
	i.Status = StatusReporte
	i.Touch(now)
	return nil
}

// AddQuestion appends a question record to ask during the session.
func (i *Interview) AddQuestion(text string, now time.Time) (QuestionRecord, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return QuestionRecord{}, dErrors.New(dErrors.CodeValidation, "question text cannot be empty")
	}
	record := QuestionRecord{ID: uuid.NewString(), Question: text}
	i.Questions = append(i.Questions, record)
	i.Touch(now)
	return record, nil
}

// UpdateQuestionAnswer records the answer, rating, and notes for a question.
func (i *Interview) UpdateQuestionAnswer(questionID, answer string, rating int, notes string, now time.Time) error {
	if rating != 0 {
		if err := checkRating(rating); err != nil {
			return err
		}
	}
	for idx := range i.Questions {
		if i.Questions[idx].ID != questionID {
			continue
		}
		i.Questions[idx].Answer = strings.TrimSpace(answer)
		i.Questions[idx].Rating = rating
		i.Questions[idx].Notes = strings.TrimSpace(notes)
		i.Touch(now)
		return nil
	}
	return dErrors.Newf(dErrors.CodeValidation, "question %q not found", questionID)
}

// AverageQuestionRating returns the mean rating across rated questions, or
// nil when none have been rated.
func (i *Interview) AverageQuestionRating() *float64 {
	total, count := 0, 0
	for _, qr := range i.Questions {
		if qr.Rating > 0 {
			total += qr.Rating
			count++
		}
	}
	if count == 0 {
		return nil
	}
	avg := float64(total) / float64(count)
	return &avg
}

// CompletionPercentage is the share of questions with a non-empty answer,
// in [0,100]. An interview without questions reports 0.
func (i *Interview) CompletionPercentage() float64 {
	if len(i.Questions) == 0 {
		return 0
	}
	answered := 0
	for _, qr := range i.Questions {
		if qr.Answer != "" {
			answered++
		}
	}
	return float64(answered) / float64(len(i.Questions)) * 100
}

// Clone returns a deep copy preserving identity and timestamps.
func (i *Interview) Clone() *Interview {
	clone := *i
	clone.Identity = i.Identity.Clone()
	clone.Questions = append([]QuestionRecord(nil), i.Questions...)
	if i.OverallRating != nil {
		rating := *i.OverallRating
		clone.OverallRating = &rating
	}
	return &clone
}
