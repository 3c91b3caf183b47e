package questionnaire

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "agrisurvey/pkg/domain-errors"
)

// AddSection appends a section. Ordre defaults to the next slot when
// unspecified; sections are re-sorted by Ordre after every mutation.
func (q *Questionnaire) AddSection(section Section, now time.Time) (Section, error) {
	section.Titre = strings.TrimSpace(section.Titre)
	if section.Titre == "" {
		return Section{}, dErrors.New(dErrors.CodeValidation, "section titre cannot be empty")
	}
	if section.ID == "" {
		section.ID = uuid.NewString()
	}
	for _, existing := range q.Sections {
		if existing.ID == section.ID {
			return Section{}, dErrors.Newf(dErrors.CodeValidation, "section %q already exists", section.ID)
		}
	}
	if section.Ordre == 0 {
		section.Ordre = len(q.Sections) + 1
	}
	q.Sections = append(q.Sections, section)
	q.sortSections()
	q.Touch(now)
	return section, nil
}

// UpdateSection replaces the titled fields of an existing section.
func (q *Questionnaire) UpdateSection(sectionID string, updated Section, now time.Time) error {
	updated.Titre = strings.TrimSpace(updated.Titre)
	if updated.Titre == "" {
		return dErrors.New(dErrors.CodeValidation, "section titre cannot be empty")
	}
	for i, section := range q.Sections {
		if section.ID != sectionID {
			continue
		}
		if updated.Ordre == 0 {
			updated.Ordre = section.Ordre
		}
		updated.ID = sectionID
		q.Sections[i] = updated
		q.sortSections()
		q.Touch(now)
		return nil
	}
	return dErrors.Newf(dErrors.CodeValidation, "section %q not found", sectionID)
}

// RemoveSection deletes a section and cascades to its questions.
func (q *Questionnaire) RemoveSection(sectionID string, now time.Time) error {
	index := -1
	for i, section := range q.Sections {
		if section.ID == sectionID {
			index = i
			break
		}
	}
	if index < 0 {
		return dErrors.Newf(dErrors.CodeValidation, "section %q not found", sectionID)
	}
	q.Sections = append(q.Sections[:index], q.Sections[index+1:]...)

	kept := q.Questions[:0]
	for _, qq := range q.Questions {
		if qq.SectionID != sectionID {
			kept = append(kept, qq)
		}
	}
	q.Questions = kept
	q.Touch(now)
	return nil
}

// AddQuestion appends an owned question record. Ordre defaults to the next
// slot; choice types must carry at least one option.
func (q *Questionnaire) AddQuestion(qq Question, now time.Time) (Question, error) {
	if err := q.checkQuestion(&qq); err != nil {
		return Question{}, err
	}
	if qq.ID == "" {
		qq.ID = uuid.NewString()
	}
	for _, existing := range q.Questions {
		if existing.ID == qq.ID {
			return Question{}, dErrors.Newf(dErrors.CodeValidation, "question %q already exists", qq.ID)
		}
	}
	if qq.Ordre == 0 {
		qq.Ordre = len(q.Questions) + 1
	}
	q.Questions = append(q.Questions, qq)
	q.sortQuestions()
	q.Touch(now)
	return qq, nil
}

// UpdateQuestion replaces an owned question record in place.
func (q *Questionnaire) UpdateQuestion(questionID string, updated Question, now time.Time) error {
	if err := q.checkQuestion(&updated); err != nil {
		return err
	}
	for i, qq := range q.Questions {
		if qq.ID != questionID {
			continue
		}
		if updated.Ordre == 0 {
			updated.Ordre = qq.Ordre
		}
		updated.ID = questionID
		q.Questions[i] = updated
		q.sortQuestions()
		q.Touch(now)
		return nil
	}
	return dErrors.Newf(dErrors.CodeValidation, "question %q not found", questionID)
}

// RemoveQuestion deletes an owned question record.
func (q *Questionnaire) RemoveQuestion(questionID string, now time.Time) error {
	for i, qq := range q.Questions {
		if qq.ID == questionID {
			q.Questions = append(q.Questions[:i], q.Questions[i+1:]...)
			q.Touch(now)
			return nil
		}
	}
	return dErrors.Newf(dErrors.CodeValidation, "question %q not found", questionID)
}

// ReorderQuestions rewrites every question's Ordre following orderedIDs,
// which must be exactly the set of existing question ids.
func (q *Questionnaire) ReorderQuestions(orderedIDs []string, now time.Time) error {
	if len(orderedIDs) != len(q.Questions) {
		return dErrors.Newf(dErrors.CodeValidation,
			"reorder requires all %d question ids, got %d", len(q.Questions), len(orderedIDs))
	}
	position := make(map[string]int, len(orderedIDs))
	for i, id := range orderedIDs {
		if _, dup := position[id]; dup {
			return dErrors.Newf(dErrors.CodeValidation, "duplicate question id %q in reorder", id)
		}
		position[id] = i + 1
	}
	for _, qq := range q.Questions {
		if _, ok := position[qq.ID]; !ok {
			return dErrors.Newf(dErrors.CodeValidation, "question %q missing from reorder", qq.ID)
		}
	}
	for i := range q.Questions {
		q.Questions[i].Ordre = position[q.Questions[i].ID]
	}
	q.sortQuestions()
	q.Touch(now)
	return nil
}

func (q *Questionnaire) checkQuestion(qq *Question) error {
	qq.Code = strings.TrimSpace(qq.Code)
	qq.Texte = strings.TrimSpace(qq.Texte)
	if qq.Code == "" {
		return dErrors.New(dErrors.CodeValidation, "question code cannot be empty")
	}
	if qq.Texte == "" {
		return dErrors.New(dErrors.CodeValidation, "question texte cannot be empty")
	}
	if !qq.Type.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "unknown question type %q", qq.Type)
	}
	if qq.Type.IsChoice() && len(qq.Options) == 0 {
		return dErrors.Newf(dErrors.CodeValidation, "%s question requires at least one option", qq.Type)
	}
	if qq.SectionID != "" && !q.hasSection(qq.SectionID) {
		return dErrors.Newf(dErrors.CodeValidation, "section %q not found", qq.SectionID)
	}
	return nil
}

func (q *Questionnaire) hasSection(sectionID string) bool {
	for _, section := range q.Sections {
		if section.ID == sectionID {
			return true
		}
	}
	return false
}
