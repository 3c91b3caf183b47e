package questionnaire

import (
	"time"

	"agrisurvey/internal/domain"
	"agrisurvey/internal/question"
	dErrors "agrisurvey/pkg/domain-errors"
)

// API is the flat boundary representation of a questionnaire. Derived fields
// are populated on egress and ignored on ingress.
type API struct {
	ID                 string         `json:"id"`
	ExternalID         string         `json:"_id,omitempty"`
	Titre              string         `json:"titre"`
	Description        string         `json:"description,omitempty"`
	Version            string         `json:"version"`
	Statut             string         `json:"statut"`
	TypeQuestionnaire  string         `json:"typeQuestionnaire,omitempty"`
	DomaineApplication []string       `json:"domaineApplication,omitempty"`
	Questions          []Question     `json:"questions,omitempty"`
	Sections           []Section      `json:"sections,omitempty"`
	Parametres         map[string]any `json:"parametres,omitempty"`
	DureeEstimee       int            `json:"dureeEstimee,omitempty"`
	NiveauDifficulte   string         `json:"niveauDifficulte,omitempty"`
	ScoreMinimum       *float64       `json:"scoreMinimum,omitempty"`
	ScoreMaximum       *float64       `json:"scoreMaximum,omitempty"`
	UtiliseCompte      int            `json:"utiliseCompte"`
	DernierUsage       *time.Time     `json:"dernierUsage,omitempty"`
	Feedbacks          []Feedback     `json:"feedbacks,omitempty"`
	FeedbackMoyen      float64        `json:"feedbackMoyen"`
	ValidePar          string         `json:"validePar,omitempty"`
	ValideLe           *time.Time     `json:"valideLe,omitempty"`
	CreatedAt          time.Time      `json:"created_at,omitzero"`
	UpdatedAt          time.Time      `json:"updated_at,omitzero"`

	// Derived, egress only.
	NombreQuestions int     `json:"nombreQuestions"`
	NombreSections  int     `json:"nombreSections"`
	Complexity      string  `json:"complexity,omitempty"`
	PopularityScore float64 `json:"popularityScore"`
	CanBeUsed       bool    `json:"canBeUsed"`
	EstPublie       bool    `json:"estPublie"`
	EstArchive      bool    `json:"estArchive"`
}

// FromAPI builds a validated questionnaire from an external record,
// preserving stored status, metrics, and timestamps. Construction fails
// atomically on any broken invariant.
func FromAPI(in API, now time.Time) (*Questionnaire, error) {
	id := in.ID
	if id == "" {
		id = in.ExternalID
	}
	statut := StatusBrouillon
	if in.Statut != "" {
		parsed, err := ParseStatus(in.Statut)
		if err != nil {
			return nil, err
		}
		statut = parsed
	}
	q := &Questionnaire{
		Identity:           domain.RestoreIdentity(id, in.CreatedAt, in.UpdatedAt, now),
		Titre:              in.Titre,
		Description:        in.Description,
		Version:            in.Version,
		Statut:             statut,
		TypeQuestionnaire:  in.TypeQuestionnaire,
		DomaineApplication: append([]string(nil), in.DomaineApplication...),
		DureeEstimee:       in.DureeEstimee,
		NiveauDifficulte:   in.NiveauDifficulte,
		ScoreMinimum:       clonePtr(in.ScoreMinimum),
		ScoreMaximum:       clonePtr(in.ScoreMaximum),
		UtiliseCompte:      in.UtiliseCompte,
		DernierUsage:       clonePtr(in.DernierUsage),
		FeedbackMoyen:      in.FeedbackMoyen,
		ValidePar:          in.ValidePar,
		ValideLe:           clonePtr(in.ValideLe),
		Parametres:         map[string]any{},
	}
	if q.Version == "" {
		q.Version = "1.0"
	}
	for k, v := range in.Parametres {
		q.Parametres[k] = v
	}
	for _, section := range in.Sections {
		if section.ID == "" || section.Titre == "" {
			return nil, dErrors.New(dErrors.CodeValidation, "section requires id and titre")
		}
		q.Sections = append(q.Sections, section)
	}
	for _, qq := range in.Questions {
		copied := qq
		copied.Options = append([]question.Option(nil), qq.Options...)
		if err := q.checkQuestion(&copied); err != nil {
			return nil, err
		}
		if copied.ID == "" {
			return nil, dErrors.Newf(dErrors.CodeValidation, "question %q missing id", copied.Code)
		}
		q.Questions = append(q.Questions, copied)
	}
	q.Feedbacks = append([]Feedback(nil), in.Feedbacks...)
	if err := q.validate(); err != nil {
		return nil, err
	}
	q.sortSections()
	q.sortQuestions()
	return q, nil
}

// ToAPI projects the questionnaire with every derived property filled in.
// The projection is computed against the entity's last-updated instant so it
// stays a pure function of stored state.
func (q *Questionnaire) ToAPI() API {
	clone := q.Clone()
	return API{
		ID:                 clone.ID,
		Titre:              clone.Titre,
		Description:        clone.Description,
		Version:            clone.Version,
		Statut:             clone.Statut.String(),
		TypeQuestionnaire:  clone.TypeQuestionnaire,
		DomaineApplication: clone.DomaineApplication,
		Questions:          clone.Questions,
		Sections:           clone.Sections,
		Parametres:         clone.Parametres,
		DureeEstimee:       clone.DureeEstimee,
		NiveauDifficulte:   clone.NiveauDifficulte,
		ScoreMinimum:       clone.ScoreMinimum,
		ScoreMaximum:       clone.ScoreMaximum,
		UtiliseCompte:      clone.UtiliseCompte,
		DernierUsage:       clone.DernierUsage,
		Feedbacks:          clone.Feedbacks,
		FeedbackMoyen:      clone.FeedbackMoyen,
		ValidePar:          clone.ValidePar,
		ValideLe:           clone.ValideLe,
		CreatedAt:          clone.CreatedAt,
		UpdatedAt:          clone.UpdatedAt,
		NombreQuestions:    len(clone.Questions),
		NombreSections:     len(clone.Sections),
		Complexity:         q.Complexity(),
		PopularityScore:    q.PopularityScore(q.UpdatedAt),
		CanBeUsed:          q.CanBeUsed(),
		EstPublie:          q.Statut == StatusPublie,
		EstArchive:         q.Statut == StatusArchive,
	}
}
