package questionnaire

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"agrisurvey/internal/domain"
	"agrisurvey/internal/question"
	dErrors "agrisurvey/pkg/domain-errors"
)

// Section is an owned grouping of questions within the questionnaire.
type Section struct {
	ID          string `json:"id"`
	Titre       string `json:"titre"`
	Description string `json:"description,omitempty"`
	Ordre       int    `json:"ordre"`
}

// Question is the questionnaire's own lightweight question record. The
// aggregate owns its copies; the standalone question entity is for questions
// managed independently of any questionnaire.
type Question struct {
	ID          string            `json:"id"`
	Code        string            `json:"code"`
	Texte       string            `json:"texte"`
	Type        question.Type     `json:"type"`
	Obligatoire bool              `json:"obligatoire"`
	Options     []question.Option `json:"options,omitempty"`
	SectionID   string            `json:"sectionId,omitempty"`
	Ordre       int               `json:"ordre"`
}

// Feedback is one recorded rating with optional commentary.
type Feedback struct {
	Rating      int       `json:"rating"`
	Commentaire string    `json:"commentaire,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Questionnaire is the aggregate root for an authored survey.
//
// Invariants:
//   - Titre is non-empty
//   - Statut is a member of the status enum and moves only along the
//     lifecycle (see Status.CanTransitionTo)
//   - Sections and Questions stay sorted by Ordre after every mutation
//   - ScoreMinimum ≤ ScoreMaximum when both are set
//   - FeedbackMoyen is the running average of all recorded feedback ratings
type Questionnaire struct {
	domain.Identity
	Titre              string
	Description        string
	Version            string
	Statut             Status
	TypeQuestionnaire  string
	DomaineApplication []string
	Questions          []Question
	Sections           []Section
	Parametres         map[string]any
	DureeEstimee       int
	NiveauDifficulte   string
	ScoreMinimum       *float64
	ScoreMaximum       *float64
	UtiliseCompte      int
	DernierUsage       *time.Time
	Feedbacks          []Feedback
	FeedbackMoyen      float64
	ValidePar          string
	ValideLe           *time.Time
}

// New constructs a draft questionnaire. An empty id is generated; now is
// injected by the caller.
func New(id, titre, description, version string, now time.Time) (*Questionnaire, error) {
	q := &Questionnaire{
		Identity:    domain.NewIdentity(id, now),
		Titre:       strings.TrimSpace(titre),
		Description: strings.TrimSpace(description),
		Version:     strings.TrimSpace(version),
		Statut:      StatusBrouillon,
		Parametres:  map[string]any{},
	}
	if q.Version == "" {
		q.Version = "1.0"
	}
	if err := q.validate(); err != nil {
		return nil, err
	}
	return q, nil
}

func (q *Questionnaire) validate() error {
	if err := q.Identity.Validate(); err != nil {
		return err
	}
	if q.Titre == "" {
		return dErrors.New(dErrors.CodeValidation, "questionnaire titre cannot be empty")
	}
	if !q.Statut.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "unknown questionnaire status %q", q.Statut)
	}
	if q.ScoreMinimum != nil && q.ScoreMaximum != nil && *q.ScoreMinimum > *q.ScoreMaximum {
		return dErrors.New(dErrors.CodeValidation, "score minimum cannot exceed score maximum")
	}
	if q.DureeEstimee < 0 {
		return dErrors.New(dErrors.CodeValidation, "duree estimee cannot be negative")
	}
	return nil
}

// SetScoreRange records the scoring bounds, enforcing min ≤ max when both
// are provided.
func (q *Questionnaire) SetScoreRange(min, max *float64, now time.Time) error {
	if min != nil && max != nil && *min > *max {
		return dErrors.New(dErrors.CodeValidation, "score minimum cannot exceed score maximum")
	}
	q.ScoreMinimum = min
	q.ScoreMaximum = max
	q.Touch(now)
	return nil
}

// CanBeUsed reports whether interviews may run against this questionnaire.
func (q *Questionnaire) CanBeUsed() bool {
	return q.Statut == StatusValide || q.Statut == StatusPublie
}

// CanSubmitForReview checks the brouillon → en_revision transition.
func (q *Questionnaire) CanSubmitForReview() error {
	if !q.Statut.CanTransitionTo(StatusEnRevision) {
		return dErrors.Newf(dErrors.CodeValidation, "cannot submit questionnaire for review from status %q", q.Statut)
	}
	if len(q.Questions) == 0 {
		return dErrors.New(dErrors.CodeValidation, "cannot submit an empty questionnaire for review")
	}
	return nil
}

// SubmitForReview moves a draft with at least one question into review.
func (q *Questionnaire) SubmitForReview(now time.Time) error {
	if err := q.CanSubmitForReview(); err != nil {
		return err
	}
	q.Statut = StatusEnRevision
	q.Touch(now)
	return nil
}

// Validate approves a questionnaire under review, recording who validated
// it and when.
func (q *Questionnaire) Validate(validateur string, now time.Time) error {
	if !q.Statut.CanTransitionTo(StatusValide) {
		return dErrors.Newf(dErrors.CodeValidation, "cannot validate questionnaire from status %q", q.Statut)
	}
	validateur = strings.TrimSpace(validateur)
	if validateur == "" {
		return dErrors.New(dErrors.CodeValidation, "validateur cannot be empty")
	}
	q.Statut = StatusValide
	q.ValidePar = validateur
	validatedAt := now
	q.ValideLe = &validatedAt
	q.Touch(now)
	return nil
}

// Publish makes a validated questionnaire publicly available.
func (q *Questionnaire) Publish(now time.Time) error {
	if !q.Statut.CanTransitionTo(StatusPublie) {
		return dErrors.Newf(dErrors.CodeValidation, "cannot publish questionnaire from status %q", q.Statut)
	}
	q.Statut = StatusPublie
	q.Touch(now)
	return nil
}

// Archive retires the questionnaire permanently.
func (q *Questionnaire) Archive(now time.Time) error {
	if q.Statut == StatusArchive {
		return dErrors.New(dErrors.CodeValidation, "questionnaire is already archived")
	}
	q.Statut = StatusArchive
	q.Touch(now)
	return nil
}

// Suspend pauses a usable questionnaire.
func (q *Questionnaire) Suspend(now time.Time) error {
	if !q.CanBeUsed() {
		return dErrors.Newf(dErrors.CodeValidation, "cannot suspend questionnaire from status %q", q.Statut)
	}
	q.Statut = StatusSuspendu
	q.Touch(now)
	return nil
}

// RecordUsage increments the usage counter. Only usable questionnaires
// accumulate usage.
func (q *Questionnaire) RecordUsage(now time.Time) error {
	if !q.CanBeUsed() {
		return dErrors.Newf(dErrors.CodeValidation, "questionnaire in status %q cannot record usage", q.Statut)
	}
	q.UtiliseCompte++
	usedAt := now
	q.DernierUsage = &usedAt
	q.Touch(now)
	return nil
}

// AddFeedback appends a rating and recomputes the running average. Only
// usable questionnaires accept feedback.
func (q *Questionnaire) AddFeedback(rating int, commentaire string, now time.Time) error {
	if !q.CanBeUsed() {
		return dErrors.Newf(dErrors.CodeValidation, "questionnaire in status %q cannot accept feedback", q.Statut)
	}
	if rating < 1 || rating > 5 {
		return dErrors.Newf(dErrors.CodeValidation, "feedback rating %d outside range [1,5]", rating)
	}
	q.Feedbacks = append(q.Feedbacks, Feedback{
		Rating:      rating,
		Commentaire: strings.TrimSpace(commentaire),
		CreatedAt:   now,
	})
	total := 0
	for _, fb := range q.Feedbacks {
		total += fb.Rating
	}
	q.FeedbackMoyen = float64(total) / float64(len(q.Feedbacks))
	q.Touch(now)
	return nil
}

// Duplicate produces a brand-new draft with fresh identity and newly
// generated ids for every section and question, fully decoupled from the
// original. Usage, feedback, and validation history do not carry over.
func (q *Questionnaire) Duplicate(newTitre string, now time.Time) (*Questionnaire, error) {
	newTitre = strings.TrimSpace(newTitre)
	if newTitre == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "duplicate titre cannot be empty")
	}

	dup := &Questionnaire{
		Identity:           domain.NewIdentity("", now),
		Titre:              newTitre,
		Description:        q.Description,
		Version:            "1.0",
		Statut:             StatusBrouillon,
		TypeQuestionnaire:  q.TypeQuestionnaire,
		DomaineApplication: append([]string(nil), q.DomaineApplication...),
		DureeEstimee:       q.DureeEstimee,
		NiveauDifficulte:   q.NiveauDifficulte,
		ScoreMinimum:       clonePtr(q.ScoreMinimum),
		ScoreMaximum:       clonePtr(q.ScoreMaximum),
		Parametres:         make(map[string]any, len(q.Parametres)),
	}
	for k, v := range q.Parametres {
		dup.Parametres[k] = v
	}

	sectionIDs := make(map[string]string, len(q.Sections))
	for _, section := range q.Sections {
		fresh := section
		fresh.ID = uuid.NewString()
		sectionIDs[section.ID] = fresh.ID
		dup.Sections = append(dup.Sections, fresh)
	}
	for _, qq := range q.Questions {
		fresh := qq
		fresh.ID = uuid.NewString()
		fresh.Options = append([]question.Option(nil), qq.Options...)
		if mapped, ok := sectionIDs[qq.SectionID]; ok {
			fresh.SectionID = mapped
		}
		dup.Questions = append(dup.Questions, fresh)
	}
	dup.sortSections()
	dup.sortQuestions()
	return dup, nil
}

// Clone returns a deep copy preserving identity and timestamps.
func (q *Questionnaire) Clone() *Questionnaire {
	clone := *q
	clone.Identity = q.Identity.Clone()
	clone.DomaineApplication = append([]string(nil), q.DomaineApplication...)
	clone.Sections = append([]Section(nil), q.Sections...)
	clone.Questions = make([]Question, len(q.Questions))
	for i, qq := range q.Questions {
		clone.Questions[i] = qq
		clone.Questions[i].Options = append([]question.Option(nil), qq.Options...)
	}
	clone.Feedbacks = append([]Feedback(nil), q.Feedbacks...)
	clone.Parametres = make(map[string]any, len(q.Parametres))
	for k, v := range q.Parametres {
		clone.Parametres[k] = v
	}
	clone.ScoreMinimum = clonePtr(q.ScoreMinimum)
	clone.ScoreMaximum = clonePtr(q.ScoreMaximum)
	clone.DernierUsage = clonePtr(q.DernierUsage)
	clone.ValideLe = clonePtr(q.ValideLe)
	return &clone
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (q *Questionnaire) sortSections() {
	sort.SliceStable(q.Sections, func(i, j int) bool {
		return q.Sections[i].Ordre < q.Sections[j].Ordre
	})
}

func (q *Questionnaire) sortQuestions() {
	sort.SliceStable(q.Questions, func(i, j int) bool {
		return q.Questions[i].Ordre < q.Questions[j].Ordre
	})
}
