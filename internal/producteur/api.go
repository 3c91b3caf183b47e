package producteur

import (
	"strings"
	"time"

	"agrisurvey/internal/domain"
)

// API is the flat boundary representation of a producer. Business dates
// travel as bare date strings; derived fields are populated on egress and
// ignored on ingress.
type API struct {
	ID            string `json:"id"`
	ExternalID    string `json:"_id,omitempty"`
	Nom           string `json:"nom"`
	Prenom        string `json:"prenom"`
	DateNaissance string `json:"dateNaissance,omitempty"`
	Genre         string `json:"genre,omitempty"`
	Telephone     string `json:"telephone,omitempty"`
	Email         string `json:"email,omitempty"`

	Village     string `json:"village,omitempty"`
	Souspref    string `json:"souspref,omitempty"`
	Departement string `json:"departement,omitempty"`
	Region      string `json:"region,omitempty"`

	SuperficieTotale    float64  `json:"superficieTotale"`
	NombreParcelles     int      `json:"nombreParcelles"`
	AnneesExperience    int      `json:"anneesExperience"`
	PrincipalesCultures []string `json:"principalesCultures,omitempty"`
	MaterielAgricole    []string `json:"materielAgricole,omitempty"`

	PhotoProfil        string `json:"photoProfil,omitempty"`
	PieceIdentite      string `json:"pieceIdentite,omitempty"`
	StatusVerification string `json:"statusVerification"`
	MotifRejet         string `json:"motifRejet,omitempty"`

	GPS *GPSCoordinates `json:"gpsCoordinates,omitempty"`

	Certifications []Certification `json:"certifications,omitempty"`
	Cooperatives   []Cooperative   `json:"cooperatives,omitempty"`
	Formations     []Formation     `json:"formations,omitempty"`

	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`

	// Derived, egress only.
	Age             *int   `json:"age,omitempty"`
	ExperienceLevel string `json:"experienceLevel,omitempty"`
	ProductionScale string `json:"productionScale,omitempty"`
	EstVerifie      bool   `json:"estVerifie"`
}

// FromAPI builds a validated producer from an external record, preserving
// stored status and timestamps. Construction fails atomically on any broken
// invariant.
func FromAPI(in API, now time.Time) (*Producteur, error) {
	id := in.ID
	if id == "" {
		id = in.ExternalID
	}

	status := VerificationEnAttente
	if in.StatusVerification != "" {
		parsed, err := ParseVerificationStatus(in.StatusVerification)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	p := &Producteur{
		Identity:            domain.RestoreIdentity(id, in.CreatedAt, in.UpdatedAt, now),
		Nom:                 in.Nom,
		Prenom:              in.Prenom,
		Genre:               in.Genre,
		Telephone:           in.Telephone,
		Village:             in.Village,
		Souspref:            in.Souspref,
		Departement:         in.Departement,
		Region:              in.Region,
		SuperficieTotale:    in.SuperficieTotale,
		NombreParcelles:     in.NombreParcelles,
		AnneesExperience:    in.AnneesExperience,
		PrincipalesCultures: dedupe(in.PrincipalesCultures),
		MaterielAgricole:    dedupe(in.MaterielAgricole),
		PhotoProfil:         in.PhotoProfil,
		PieceIdentite:       in.PieceIdentite,
		StatusVerification:  status,
		MotifRejet:          in.MotifRejet,
		Certifications:      append([]Certification(nil), in.Certifications...),
		Cooperatives:        append([]Cooperative(nil), in.Cooperatives...),
		Formations:          append([]Formation(nil), in.Formations...),
	}

	if in.DateNaissance != "" {
		birth, err := domain.ParseDate(in.DateNaissance)
		if err != nil {
			return nil, err
		}
		p.DateNaissance = &birth
	}
	if in.Email != "" {
		email, err := domain.NewEmail(in.Email)
		if err != nil {
			return nil, err
		}
		p.Email = email
	}
	if in.GPS != nil {
		gps := *in.GPS
		p.GPS = &gps
	}

	if err := p.validate(now); err != nil {
		return nil, err
	}
	return p, nil
}

// ToAPI projects the producer with every derived property filled in. Age is
// computed against the last-updated instant so the projection stays a pure
// function of stored state.
func (p *Producteur) ToAPI() API {
	clone := p.Clone()
	out := API{
		ID:                  clone.ID,
		Nom:                 clone.Nom,
		Prenom:              clone.Prenom,
		Genre:               clone.Genre,
		Telephone:           clone.Telephone,
		Email:               clone.Email.Value(),
		Village:             clone.Village,
		Souspref:            clone.Souspref,
		Departement:         clone.Departement,
		Region:              clone.Region,
		SuperficieTotale:    clone.SuperficieTotale,
		NombreParcelles:     clone.NombreParcelles,
		AnneesExperience:    clone.AnneesExperience,
		PrincipalesCultures: clone.PrincipalesCultures,
		MaterielAgricole:    clone.MaterielAgricole,
		PhotoProfil:         clone.PhotoProfil,
		PieceIdentite:       clone.PieceIdentite,
		StatusVerification:  clone.StatusVerification.String(),
		MotifRejet:          clone.MotifRejet,
		GPS:                 clone.GPS,
		Certifications:      clone.Certifications,
		Cooperatives:        clone.Cooperatives,
		Formations:          clone.Formations,
		CreatedAt:           clone.CreatedAt,
		UpdatedAt:           clone.UpdatedAt,
		Age:                 p.Age(p.UpdatedAt),
		ExperienceLevel:     p.ExperienceLevel(),
		ProductionScale:     p.ProductionScale(),
		EstVerifie:          p.IsVerified(),
	}
	if clone.DateNaissance != nil {
		out.DateNaissance = domain.FormatDate(*clone.DateNaissance)
	}
	return out
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
