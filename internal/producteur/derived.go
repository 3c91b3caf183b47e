package producteur

import "time"

// Experience level buckets.
const (
	ExperienceDebutant      = "debutant"
	ExperienceIntermediaire = "intermediaire"
	ExperienceConfirme      = "confirme"
	ExperienceExpert        = "expert"
)

// Production scale buckets.
const (
	ScalePetite  = "petite"
	ScaleMoyenne = "moyenne"
	ScaleGrande  = "grande"
)

// Age computes the producer's age against now, or nil without a birth date.
func (p *Producteur) Age(now time.Time) *int {
	if p.DateNaissance == nil {
		return nil
	}
	age := now.Year() - p.DateNaissance.Year()
	anniversary := time.Date(now.Year(), p.DateNaissance.Month(), p.DateNaissance.Day(), 0, 0, 0, 0, now.Location())
	if now.Before(anniversary) {
		age--
	}
	return &age
}

// ExperienceLevel buckets AnneesExperience. Thresholds are categorical
// labels, not business rules.
func (p *Producteur) ExperienceLevel() string {
	switch {
	case p.AnneesExperience < 3:
		return ExperienceDebutant
	case p.AnneesExperience < 8:
		return ExperienceIntermediaire
	case p.AnneesExperience < 15:
		return ExperienceConfirme
	default:
		return ExperienceExpert
	}
}

// ProductionScale buckets SuperficieTotale in hectares.
func (p *Producteur) ProductionScale() string {
	switch {
	case p.SuperficieTotale < 5:
		return ScalePetite
	case p.SuperficieTotale < 20:
		return ScaleMoyenne
	default:
		return ScaleGrande
	}
}

// IsVerified reports whether the profile passed document verification.
func (p *Producteur) IsVerified() bool {
	return p.StatusVerification == VerificationVerifie
}
