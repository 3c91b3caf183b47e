package question

import (
	"strings"
	"time"

	"agrisurvey/internal/domain"
	dErrors "agrisurvey/pkg/domain-errors"
)

// Question is the standalone survey question aggregate.
//
// Invariants:
//   - Code and Texte are non-empty
//   - Type is a member of the type enum
//   - Choice types carry at least one option
//   - Option libellés are unique within the question
//   - A reference-table binding names a whitelisted table and a field
//
// The entity never hard-deletes itself; deletion is a repository concern.
type Question struct {
	domain.Identity
	Code           string
	Texte          string
	Type           Type
	Obligatoire    bool
	Unite          string
	Automatique    bool
	Options        []Option
	SectionID      string
	VoletID        string
	ReferenceTable ReferenceTable
	ReferenceField string
}

// New constructs a fully validated question. An empty id is generated; now
// is injected by the caller.
func New(id, code, texte string, typ Type, obligatoire bool, options []Option, now time.Time) (*Question, error) {
	q := &Question{
		Identity:    domain.NewIdentity(id, now),
		Code:        strings.TrimSpace(code),
		Texte:       strings.TrimSpace(texte),
		Type:        typ,
		Obligatoire: obligatoire,
		Options:     append([]Option(nil), options...),
	}
	if err := q.validate(); err != nil {
		return nil, err
	}
	return q, nil
}

func (q *Question) validate() error {
	if err := q.Identity.Validate(); err != nil {
		return err
	}
	if q.Code == "" {
		return dErrors.New(dErrors.CodeValidation, "question code cannot be empty")
	}
	if q.Texte == "" {
		return dErrors.New(dErrors.CodeValidation, "question texte cannot be empty")
	}
	if !q.Type.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "unknown question type %q", q.Type)
	}
	if q.Type.IsChoice() && len(q.Options) == 0 {
		return dErrors.Newf(dErrors.CodeValidation, "%s question requires at least one option", q.Type)
	}
	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		libelle := strings.TrimSpace(opt.Libelle)
		if libelle == "" {
			return dErrors.New(dErrors.CodeValidation, "option libelle cannot be empty")
		}
		if seen[libelle] {
			return dErrors.Newf(dErrors.CodeValidation, "duplicate option libelle %q", libelle)
		}
		seen[libelle] = true
	}
	if q.ReferenceTable != "" {
		if !q.ReferenceTable.IsValid() {
			return dErrors.Newf(dErrors.CodeValidation, "unknown reference table %q", q.ReferenceTable)
		}
		if strings.TrimSpace(q.ReferenceField) == "" {
			return dErrors.New(dErrors.CodeValidation, "reference table binding requires a reference field")
		}
	}
	return nil
}

// UpdateTexte replaces the prompt.
func (q *Question) UpdateTexte(texte string, now time.Time) error {
	texte = strings.TrimSpace(texte)
	if texte == "" {
		return dErrors.New(dErrors.CodeValidation, "question texte cannot be empty")
	}
	q.Texte = texte
	q.Touch(now)
	return nil
}

// MakeObligatoire marks the question as required.
func (q *Question) MakeObligatoire(now time.Time) {
	q.Obligatoire = true
	q.Touch(now)
}

// MakeOptionnelle marks the question as optional.
func (q *Question) MakeOptionnelle(now time.Time) {
	q.Obligatoire = false
	q.Touch(now)
}

// SetUnite records the unit label shown next to numeric answers.
func (q *Question) SetUnite(unite string, now time.Time) {
	q.Unite = strings.TrimSpace(unite)
	q.Touch(now)
}

// AddOption appends a selectable answer. Ordre defaults to the next slot
// when unspecified.
func (q *Question) AddOption(opt Option, now time.Time) error {
	opt.Libelle = strings.TrimSpace(opt.Libelle)
	if opt.Libelle == "" {
		return dErrors.New(dErrors.CodeValidation, "option libelle cannot be empty")
	}
	for _, existing := range q.Options {
		if existing.Libelle == opt.Libelle {
			return dErrors.Newf(dErrors.CodeValidation, "option libelle %q already exists", opt.Libelle)
		}
	}
	if opt.Ordre == 0 {
		opt.Ordre = len(q.Options) + 1
	}
	q.Options = append(q.Options, opt)
	q.Touch(now)
	return nil
}

// RemoveOption deletes the option with the given libelle.
func (q *Question) RemoveOption(libelle string, now time.Time) error {
	libelle = strings.TrimSpace(libelle)
	for i, opt := range q.Options {
		if opt.Libelle == libelle {
			if q.Type.IsChoice() && len(q.Options) == 1 {
				return dErrors.Newf(dErrors.CodeValidation, "%s question requires at least one option", q.Type)
			}
			q.Options = append(q.Options[:i], q.Options[i+1:]...)
			q.Touch(now)
			return nil
		}
	}
	return dErrors.Newf(dErrors.CodeValidation, "option %q not found", libelle)
}

// UpdateOption replaces the option identified by libelle. The replacement
// may rename the option as long as libellés stay unique.
func (q *Question) UpdateOption(libelle string, updated Option, now time.Time) error {
	libelle = strings.TrimSpace(libelle)
	updated.Libelle = strings.TrimSpace(updated.Libelle)
	if updated.Libelle == "" {
		return dErrors.New(dErrors.CodeValidation, "option libelle cannot be empty")
	}
	index := -1
	for i, opt := range q.Options {
		if opt.Libelle == libelle {
			index = i
			continue
		}
		if opt.Libelle == updated.Libelle {
			return dErrors.Newf(dErrors.CodeValidation, "option libelle %q already exists", updated.Libelle)
		}
	}
	if index < 0 {
		return dErrors.Newf(dErrors.CodeValidation, "option %q not found", libelle)
	}
	if updated.Ordre == 0 {
		updated.Ordre = q.Options[index].Ordre
	}
	q.Options[index] = updated
	q.Touch(now)
	return nil
}

// SetReferenceTable binds the question to an external lookup table.
func (q *Question) SetReferenceTable(table ReferenceTable, field string, now time.Time) error {
	if !table.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "unknown reference table %q", table)
	}
	field = strings.TrimSpace(field)
	if field == "" {
		return dErrors.New(dErrors.CodeValidation, "reference table binding requires a reference field")
	}
	q.ReferenceTable = table
	q.ReferenceField = field
	q.Touch(now)
	return nil
}

// ClearReferenceTable removes the lookup binding.
func (q *Question) ClearReferenceTable(now time.Time) {
	q.ReferenceTable = ""
	q.ReferenceField = ""
	q.Touch(now)
}

// SetSection records the structural parent references.
func (q *Question) SetSection(sectionID, voletID string, now time.Time) {
	q.SectionID = sectionID
	q.VoletID = voletID
	q.Touch(now)
}

// HasGotoLogic reports whether any option branches to a non-sequential
// question. Callers driving interview flow must treat question order as a
// directed graph when this is true.
func (q *Question) HasGotoLogic() bool {
	for _, opt := range q.Options {
		if opt.Goto != "" {
			return true
		}
	}
	return false
}

// Clone returns a deep copy decoupled from the original.
func (q *Question) Clone() *Question {
	clone := *q
	clone.Identity = q.Identity.Clone()
	clone.Options = append([]Option(nil), q.Options...)
	return &clone
}
