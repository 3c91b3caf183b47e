package question

import (
	"strings"
	"time"

	"agrisurvey/internal/domain"
)

// API is the flat boundary representation exchanged with the REST layer and
// document stores. Derived fields are populated on egress and ignored on
// ingress so round-trips stay lossless.
type API struct {
	ID             string    `json:"id"`
	ExternalID     string    `json:"_id,omitempty"`
	Code           string    `json:"code"`
	Texte          string    `json:"texte"`
	Type           string    `json:"type"`
	Obligatoire    bool      `json:"obligatoire"`
	Unite          string    `json:"unite,omitempty"`
	Automatique    bool      `json:"automatique"`
	Options        []Option  `json:"options,omitempty"`
	SectionID      string    `json:"sectionId,omitempty"`
	VoletID        string    `json:"voletId,omitempty"`
	ReferenceTable string    `json:"referenceTable,omitempty"`
	ReferenceField string    `json:"referenceField,omitempty"`
	CreatedAt      time.Time `json:"created_at,omitzero"`
	UpdatedAt      time.Time `json:"updated_at,omitzero"`

	// Derived, egress only.
	HasGotoLogic bool `json:"hasGotoLogic"`
	OptionCount  int  `json:"optionCount"`
}

// FromAPI builds a validated question from an external record. The alternate
// external id (_id) is used when id is absent; construction fails atomically
// on any broken invariant.
func FromAPI(in API, now time.Time) (*Question, error) {
	id := in.ID
	if id == "" {
		id = in.ExternalID
	}
	typ, err := ParseType(in.Type)
	if err != nil {
		return nil, err
	}
	q := &Question{
		Identity:       domain.RestoreIdentity(id, in.CreatedAt, in.UpdatedAt, now),
		Code:           strings.TrimSpace(in.Code),
		Texte:          strings.TrimSpace(in.Texte),
		Type:           typ,
		Obligatoire:    in.Obligatoire,
		Unite:          in.Unite,
		Automatique:    in.Automatique,
		Options:        append([]Option(nil), in.Options...),
		SectionID:      in.SectionID,
		VoletID:        in.VoletID,
		ReferenceField: in.ReferenceField,
	}
	if in.ReferenceTable != "" {
		table, err := ParseReferenceTable(in.ReferenceTable)
		if err != nil {
			return nil, err
		}
		q.ReferenceTable = table
	}
	if err := q.validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// ToAPI projects the question, including derived properties, so consumers
// never recompute business rules.
func (q *Question) ToAPI() API {
	return API{
		ID:             q.ID,
		Code:           q.Code,
		Texte:          q.Texte,
		Type:           q.Type.String(),
		Obligatoire:    q.Obligatoire,
		Unite:          q.Unite,
		Automatique:    q.Automatique,
		Options:        append([]Option(nil), q.Options...),
		SectionID:      q.SectionID,
		VoletID:        q.VoletID,
		ReferenceTable: q.ReferenceTable.String(),
		ReferenceField: q.ReferenceField,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
		HasGotoLogic:   q.HasGotoLogic(),
		OptionCount:    len(q.Options),
	}
}
