// Package producteur implements the farmer profile entity: personal and
// agricultural attributes, document attachments, and the verification
// lifecycle driven by those documents.
package producteur

import (
	"strings"
	"time"

	"agrisurvey/internal/domain"
	dErrors "agrisurvey/pkg/domain-errors"
)

// VerificationStatus is the document-verification state.
//
// en_attente → {verifie, rejete, incomplet}; rejete and incomplet are
// re-enterable from any prior state, but verification demands both documents.
type VerificationStatus string

const (
	VerificationEnAttente VerificationStatus = "en_attente"
	VerificationVerifie   VerificationStatus = "verifie"
	VerificationRejete    VerificationStatus = "rejete"
	VerificationIncomplet VerificationStatus = "incomplet"
)

var validVerificationStatuses = map[VerificationStatus]bool{
	VerificationEnAttente: true,
	VerificationVerifie:   true,
	VerificationRejete:    true,
	VerificationIncomplet: true,
}

// ParseVerificationStatus validates external input against the enum.
func ParseVerificationStatus(s string) (VerificationStatus, error) {
	status := VerificationStatus(s)
	if !validVerificationStatuses[status] {
		return "", dErrors.Newf(dErrors.CodeValidation, "unknown verification status %q", s)
	}
	return status, nil
}

func (s VerificationStatus) String() string {
	return string(s)
}

func (s VerificationStatus) IsValid() bool {
	return validVerificationStatuses[s]
}

// GPSCoordinates locates the producer's main plot.
type GPSCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Certification is an append-only historical record.
type Certification struct {
	Nom           string    `json:"nom"`
	Organisme     string    `json:"organisme,omitempty"`
	DateObtention time.Time `json:"dateObtention,omitzero"`
}

// Cooperative is an append-only membership record.
type Cooperative struct {
	Nom          string    `json:"nom"`
	DateAdhesion time.Time `json:"dateAdhesion,omitzero"`
}

// Formation is an append-only training record.
type Formation struct {
	Titre         string    `json:"titre"`
	Organisme     string    `json:"organisme,omitempty"`
	DateFormation time.Time `json:"dateFormation,omitzero"`
}

// Producteur is the farmer profile aggregate.
//
// Invariants:
//   - Nom and Prenom are non-empty
//   - DateNaissance, when set, is never in the future
//   - SuperficieTotale, NombreParcelles, AnneesExperience are all ≥ 0
//   - PrincipalesCultures and MaterielAgricole behave as sets
//   - GPS, when set, satisfies latitude ∈ [-90,90] and longitude ∈ [-180,180]
//   - Verification requires both PhotoProfil and PieceIdentite
type Producteur struct {
	domain.Identity
	Nom           string
	Prenom        string
	DateNaissance *time.Time
	Genre         string
	Telephone     string
	Email         domain.Email

	Village     string
	Souspref    string
	Departement string
	Region      string

	SuperficieTotale    float64
	NombreParcelles     int
	AnneesExperience    int
	PrincipalesCultures []string
	MaterielAgricole    []string

	PhotoProfil        string
	PieceIdentite      string
	StatusVerification VerificationStatus
	MotifRejet         string

	GPS *GPSCoordinates

	Certifications []Certification
	Cooperatives   []Cooperative
	Formations     []Formation
}

// New registers a producer pending verification. An empty id is generated;
// now is injected by the caller.
func New(id, nom, prenom string, now time.Time) (*Producteur, error) {
	p := &Producteur{
		Identity:           domain.NewIdentity(id, now),
		Nom:                strings.TrimSpace(nom),
		Prenom:             strings.TrimSpace(prenom),
		StatusVerification: VerificationEnAttente,
	}
	if err := p.validate(now); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Producteur) validate(now time.Time) error {
	if err := p.Identity.Validate(); err != nil {
		return err
	}
	if p.Nom == "" {
		return dErrors.New(dErrors.CodeValidation, "nom cannot be empty")
	}
	if p.Prenom == "" {
		return dErrors.New(dErrors.CodeValidation, "prenom cannot be empty")
	}
	if !validVerificationStatuses[p.StatusVerification] {
		return dErrors.Newf(dErrors.CodeValidation, "unknown verification status %q", p.StatusVerification)
	}
	if p.DateNaissance != nil && p.DateNaissance.After(now) {
		return dErrors.New(dErrors.CodeValidation, "date de naissance cannot be in the future")
	}
	if err := checkAgricultureNumbers(p.SuperficieTotale, p.NombreParcelles, p.AnneesExperience); err != nil {
		return err
	}
	if p.GPS != nil {
		if err := checkGPS(p.GPS.Latitude, p.GPS.Longitude); err != nil {
			return err
		}
	}
	return nil
}

func checkAgricultureNumbers(superficie float64, parcelles, experience int) error {
	if superficie < 0 {
		return dErrors.New(dErrors.CodeValidation, "superficie totale cannot be negative")
	}
	if parcelles < 0 {
		return dErrors.New(dErrors.CodeValidation, "nombre de parcelles cannot be negative")
	}
	if experience < 0 {
		return dErrors.New(dErrors.CodeValidation, "annees d'experience cannot be negative")
	}
	return nil
}

func checkGPS(latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 {
		return dErrors.Newf(dErrors.CodeValidation, "latitude %v outside range [-90,90]", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return dErrors.Newf(dErrors.CodeValidation, "longitude %v outside range [-180,180]", longitude)
	}
	return nil
}

// UpdatePersonalInfo replaces the identity fields. A zero dateNaissance
// clears the birth date.
func (p *Producteur) UpdatePersonalInfo(nom, prenom, genre string, dateNaissance time.Time, now time.Time) error {
	nom = strings.TrimSpace(nom)
	prenom = strings.TrimSpace(prenom)
	if nom == "" {
		return dErrors.New(dErrors.CodeValidation, "nom cannot be empty")
	}
	if prenom == "" {
		return dErrors.New(dErrors.CodeValidation, "prenom cannot be empty")
	}
	if !dateNaissance.IsZero() && dateNaissance.After(now) {
		return dErrors.New(dErrors.CodeValidation, "date de naissance cannot be in the future")
	}
	p.Nom = nom
	p.Prenom = prenom
	p.Genre = strings.TrimSpace(genre)
	if dateNaissance.IsZero() {
		p.DateNaissance = nil
	} else {
		p.DateNaissance = &dateNaissance
	}
	p.Touch(now)
	return nil
}

// UpdateContactInfo replaces phone, email, and address fields. An empty
// email clears the address.
func (p *Producteur) UpdateContactInfo(telephone, email, village, souspref, departement, region string, now time.Time) error {
	parsed := domain.Email{}
	if strings.TrimSpace(email) != "" {
		var err error
		parsed, err = domain.NewEmail(email)
		if err != nil {
			return err
		}
	}
	p.Telephone = strings.TrimSpace(telephone)
	p.Email = parsed
	p.Village = strings.TrimSpace(village)
	p.Souspref = strings.TrimSpace(souspref)
	p.Departement = strings.TrimSpace(departement)
	p.Region = strings.TrimSpace(region)
	p.Touch(now)
	return nil
}

// UpdateAgricultureInfo replaces the numeric agricultural profile.
func (p *Producteur) UpdateAgricultureInfo(superficie float64, parcelles, experience int, now time.Time) error {
	if err := checkAgricultureNumbers(superficie, parcelles, experience); err != nil {
		return err
	}
	p.SuperficieTotale = superficie
	p.NombreParcelles = parcelles
	p.AnneesExperience = experience
	p.Touch(now)
	return nil
}

// AddCulture records a cultivated crop; duplicates are rejected.
func (p *Producteur) AddCulture(culture string, now time.Time) error {
	culture = strings.TrimSpace(culture)
	if culture == "" {
		return dErrors.New(dErrors.CodeValidation, "culture cannot be empty")
	}
	for _, existing := range p.PrincipalesCultures {
		if strings.EqualFold(existing, culture) {
			return dErrors.Newf(dErrors.CodeValidation, "culture %q already recorded", culture)
		}
	}
	p.PrincipalesCultures = append(p.PrincipalesCultures, culture)
	p.Touch(now)
	return nil
}

// RemoveCulture deletes a cultivated crop.
func (p *Producteur) RemoveCulture(culture string, now time.Time) error {
	culture = strings.TrimSpace(culture)
	for i, existing := range p.PrincipalesCultures {
		if strings.EqualFold(existing, culture) {
			p.PrincipalesCultures = append(p.PrincipalesCultures[:i], p.PrincipalesCultures[i+1:]...)
			p.Touch(now)
			return nil
		}
	}
	return dErrors.Newf(dErrors.CodeValidation, "culture %q not found", culture)
}

// AddMateriel records a piece of farm equipment; duplicates are rejected.
func (p *Producteur) AddMateriel(materiel string, now time.Time) error {
	materiel = strings.TrimSpace(materiel)
	if materiel == "" {
		return dErrors.New(dErrors.CodeValidation, "materiel cannot be empty")
	}
	for _, existing := range p.MaterielAgricole {
		if strings.EqualFold(existing, materiel) {
			return dErrors.Newf(dErrors.CodeValidation, "materiel %q already recorded", materiel)
		}
	}
	p.MaterielAgricole = append(p.MaterielAgricole, materiel)
	p.Touch(now)
	return nil
}

// AddCertification appends a historical certification record.
func (p *Producteur) AddCertification(cert Certification, now time.Time) error {
	cert.Nom = strings.TrimSpace(cert.Nom)
	if cert.Nom == "" {
		return dErrors.New(dErrors.CodeValidation, "certification nom cannot be empty")
	}
	if cert.DateObtention.IsZero() {
		cert.DateObtention = now
	}
	p.Certifications = append(p.Certifications, cert)
	p.Touch(now)
	return nil
}

// AddCooperative appends a membership record.
func (p *Producteur) AddCooperative(coop Cooperative, now time.Time) error {
	coop.Nom = strings.TrimSpace(coop.Nom)
	if coop.Nom == "" {
		return dErrors.New(dErrors.CodeValidation, "cooperative nom cannot be empty")
	}
	if coop.DateAdhesion.IsZero() {
		coop.DateAdhesion = now
	}
	p.Cooperatives = append(p.Cooperatives, coop)
	p.Touch(now)
	return nil
}

// AddFormation appends a training record.
func (p *Producteur) AddFormation(formation Formation, now time.Time) error {
	formation.Titre = strings.TrimSpace(formation.Titre)
	if formation.Titre == "" {
		return dErrors.New(dErrors.CodeValidation, "formation titre cannot be empty")
	}
	if formation.DateFormation.IsZero() {
		formation.DateFormation = now
	}
	p.Formations = append(p.Formations, formation)
	p.Touch(now)
	return nil
}

// AttachPhoto records the profile photo document.
func (p *Producteur) AttachPhoto(path string, now time.Time) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return dErrors.New(dErrors.CodeValidation, "photo path cannot be empty")
	}
	p.PhotoProfil = path
	p.Touch(now)
	return nil
}

// AttachPieceIdentite records the identity document.
func (p *Producteur) AttachPieceIdentite(path string, now time.Time) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return dErrors.New(dErrors.CodeValidation, "piece identite path cannot be empty")
	}
	p.PieceIdentite = path
	p.Touch(now)
	return nil
}

// SetGPSCoordinates records the plot location after range checks.
func (p *Producteur) SetGPSCoordinates(latitude, longitude float64, now time.Time) error {
	if err := checkGPS(latitude, longitude); err != nil {
		return err
	}
	p.GPS = &GPSCoordinates{Latitude: latitude, Longitude: longitude}
	p.Touch(now)
	return nil
}

// CanVerify checks the document precondition for verification.
func (p *Producteur) CanVerify() error {
	if p.PhotoProfil == "" || p.PieceIdentite == "" {
		return dErrors.New(dErrors.CodeValidation, "verification requires photo de profil and piece d'identite")
	}
	return nil
}

// Verify marks the producer as verified once both documents are attached.
func (p *Producteur) Verify(now time.Time) error {
	if err := p.CanVerify(); err != nil {
		return err
	}
	p.StatusVerification = VerificationVerifie
	p.MotifRejet = ""
	p.Touch(now)
	return nil
}

// Reject refuses the profile with a motive.
func (p *Producteur) Reject(motif string, now time.Time) error {
	motif = strings.TrimSpace(motif)
	if motif == "" {
		return dErrors.New(dErrors.CodeValidation, "motif de rejet cannot be empty")
	}
	p.StatusVerification = VerificationRejete
	p.MotifRejet = motif
	p.Touch(now)
	return nil
}

// MarkAsIncomplete flags the profile as missing information.
func (p *Producteur) MarkAsIncomplete(now time.Time) {
	p.StatusVerification = VerificationIncomplet
	p.Touch(now)
}

// Clone returns a deep copy preserving identity and timestamps.
func (p *Producteur) Clone() *Producteur {
	clone := *p
	clone.Identity = p.Identity.Clone()
	clone.PrincipalesCultures = append([]string(nil), p.PrincipalesCultures...)
	clone.MaterielAgricole = append([]string(nil), p.MaterielAgricole...)
	clone.Certifications = append([]Certification(nil), p.Certifications...)
	clone.Cooperatives = append([]Cooperative(nil), p.Cooperatives...)
	clone.Formations = append([]Formation(nil), p.Formations...)
	if p.DateNaissance != nil {
		d := *p.DateNaissance
		clone.DateNaissance = &d
	}
	if p.GPS != nil {
		gps := *p.GPS
		clone.GPS = &gps
	}
	return &clone
}
