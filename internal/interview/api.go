package interview

import (
	"time"

	"agrisurvey/internal/domain"
)

// API is the flat boundary representation of an interview. Derived fields
// are populated on egress and ignored on ingress.
type API struct {
	ID             string           `json:"id"`
	ExternalID     string           `json:"_id,omitempty"`
	CandidateName  string           `json:"candidateName"`
	CandidateEmail string           `json:"candidateEmail,omitempty"`
	CandidatePhone string           `json:"candidatePhone,omitempty"`
	Position       string           `json:"position"`
	Department     string           `json:"department,omitempty"`
	ScheduledDate  time.Time        `json:"scheduledDate"`
	Duration       int              `json:"duration,omitempty"`
	Status         string           `json:"status"`
	Type           string           `json:"type"`
	Interviewer    string           `json:"interviewer"`
	InterviewerID  string           `json:"interviewerId,omitempty"`
	Questions      []QuestionRecord `json:"questions,omitempty"`
	OverallRating  *int             `json:"overallRating,omitempty"`
	Recommendation string           `json:"recommendation,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	CreatedAt      time.Time        `json:"created_at,omitzero"`
	UpdatedAt      time.Time        `json:"updated_at,omitzero"`

	// Derived, egress only.
	AverageQuestionRating *float64 `json:"averageQuestionRating,omitempty"`
	CompletionPercentage  float64  `json:"completionPercentage"`
	EstTermine            bool     `json:"estTermine"`
	PeutDemarrer          bool     `json:"peutDemarrer"`
}

// FromAPI builds a validated interview from an external record, preserving
// stored status and timestamps. Construction fails atomically on any broken
// invariant.
func FromAPI(in API, now time.Time) (*Interview, error) {
	id := in.ID
	if id == "" {
		id = in.ExternalID
	}

	status := StatusPlanifie
	if in.Status != "" {
		parsed, err := ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}
	typ := TypePresentiel
	if in.Type != "" {
		parsed, err := ParseType(in.Type)
		if err != nil {
			return nil, err
		}
		typ = parsed
	}

	itv := &Interview{
		Identity:       domain.RestoreIdentity(id, in.CreatedAt, in.UpdatedAt, now),
		CandidateName:  in.CandidateName,
		CandidatePhone: in.CandidatePhone,
		Position:       in.Position,
		Department:     in.Department,
		ScheduledDate:  in.ScheduledDate,
		Duration:       in.Duration,
		Status:         status,
		Type:           typ,
		Interviewer:    in.Interviewer,
		InterviewerID:  in.InterviewerID,
		Questions:      append([]QuestionRecord(nil), in.Questions...),
		Notes:          in.Notes,
	}
	if itv.Duration == 0 {
		itv.Duration = 60
	}
	if in.CandidateEmail != "" {
		email, err := domain.NewEmail(in.CandidateEmail)
		if err != nil {
			return nil, err
		}
		itv.CandidateEmail = email
	}
	if in.OverallRating != nil {
		rating := *in.OverallRating
		itv.OverallRating = &rating
	}
	if in.Recommendation != "" {
		rec, err := ParseRecommendation(in.Recommendation)
		if err != nil {
			return nil, err
		}
		itv.Recommendation = rec
	}
	if err := itv.validate(); err != nil {
		return nil, err
	}
	return itv, nil
}

// ToAPI projects the interview with every derived property filled in.
func (i *Interview) ToAPI() API {
	clone := i.Clone()
	return API{
		ID:                    clone.ID,
		CandidateName:         clone.CandidateName,
		CandidateEmail:        clone.CandidateEmail.Value(),
		CandidatePhone:        clone.CandidatePhone,
		Position:              clone.Position,
		Department:            clone.Department,
		ScheduledDate:         clone.ScheduledDate,
		Duration:              clone.Duration,
		Status:                clone.Status.String(),
		Type:                  clone.Type.String(),
		Interviewer:           clone.Interviewer,
		InterviewerID:         clone.InterviewerID,
		Questions:             clone.Questions,
		OverallRating:         clone.OverallRating,
		Recommendation:        clone.Recommendation.String(),
		Notes:                 clone.Notes,
		CreatedAt:             clone.CreatedAt,
		UpdatedAt:             clone.UpdatedAt,
		AverageQuestionRating: i.AverageQuestionRating(),
		CompletionPercentage:  i.CompletionPercentage(),
		EstTermine:            i.Status == StatusTermine,
		PeutDemarrer:          i.Status == StatusPlanifie,
	}
}
