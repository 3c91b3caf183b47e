package producteur_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"agrisurvey/internal/producteur"
	dErrors "agrisurvey/pkg/domain-errors"
)

var now = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

type ProducteurSuite struct {
	suite.Suite
	p *producteur.Producteur
}

func TestProducteurSuite(t *testing.T) {
	suite.Run(t, new(ProducteurSuite))
}

func (s *ProducteurSuite) SetupTest() {
	p, err := producteur.New("", "Kouassi", "N'Guessan", now)
	s.Require().NoError(err)
	s.p = p
}

func (s *ProducteurSuite) TestConstruction() {
	s.Run("rejects empty nom", func() {
		_, err := producteur.New("", "  ", "Prenom", now)
		s.Require().Error(err)
		s.True(dErrors.IsValidation(err))
	})

	s.Run("rejects empty prenom", func() {
		_, err := producteur.New("", "Nom", "", now)
		s.Require().Error(err)
	})

	s.Run("starts en_attente", func() {
		s.Equal(producteur.VerificationEnAttente, s.p.StatusVerification)
		s.NotEmpty(s.p.ID)
	})
}

func (s *ProducteurSuite) TestPersonalInfo() {
	s.Run("rejects future birth date", func() {
		err := s.p.UpdatePersonalInfo("Kouassi", "N'Guessan", "M", now.Add(24*time.Hour), now)
		s.Require().Error(err)
		s.Nil(s.p.DateNaissance)
	})

	s.Run("records valid birth date", func() {
		birth := time.Date(1985, 6, 20, 0, 0, 0, 0, time.UTC)
		s.Require().NoError(s.p.UpdatePersonalInfo("Kouassi", "N'Guessan", "M", birth, now))
		s.Require().NotNil(s.p.DateNaissance)
	})

	s.Run("zero date clears birth date", func() {
		s.Require().NoError(s.p.UpdatePersonalInfo("Kouassi", "N'Guessan", "M", time.Time{}, now))
		s.Nil(s.p.DateNaissance)
	})
}

func (s *ProducteurSuite) TestContactInfo() {
	s.Run("rejects malformed email", func() {
		err := s.p.UpdateContactInfo("0707070707", "pas-un-email", "Broukro", "", "", "", now)
		s.Require().Error(err)
		s.True(s.p.Email.IsZero(), "failed update mutates nothing")
	})

	s.Run("accepts full contact update", func() {
		err := s.p.UpdateContactInfo("0707070707", "kouassi@coop.ci", "Broukro", "Bocanda", "Bocanda", "N'Zi", now)
		s.Require().NoError(err)
		s.Equal("kouassi@coop.ci", s.p.Email.Value())
		s.Equal("Broukro", s.p.Village)
	})
}

func (s *ProducteurSuite) TestAgricultureInfo() {
	s.Run("rejects negative numbers", func() {
		s.Require().Error(s.p.UpdateAgricultureInfo(-1, 2, 3, now))
		s.Require().Error(s.p.UpdateAgricultureInfo(1, -2, 3, now))
		s.Require().Error(s.p.UpdateAgricultureInfo(1, 2, -3, now))
		s.Zero(s.p.SuperficieTotale)
	})

	s.Run("records valid profile", func() {
		s.Require().NoError(s.p.UpdateAgricultureInfo(12.5, 4, 9, now))
		s.Equal(12.5, s.p.SuperficieTotale)
		s.Equal(4, s.p.NombreParcelles)
	})
}

func (s *ProducteurSuite) TestCulturesAndMateriel() {
	s.Require().NoError(s.p.AddCulture("Cacao", now))
	s.Require().NoError(s.p.AddCulture("Café", now))

	s.Run("set semantics reject duplicates case-insensitively", func() {
		err := s.p.AddCulture("cacao", now)
		s.Require().Error(err)
		s.Len(s.p.PrincipalesCultures, 2)
	})

	s.Run("remove deletes by value", func() {
		s.Require().NoError(s.p.RemoveCulture("CAFÉ", now))
		s.Equal([]string{"Cacao"}, s.p.PrincipalesCultures)
	})

	s.Run("remove rejects unknown culture", func() {
		s.Require().Error(s.p.RemoveCulture("Hévéa", now))
	})

	s.Run("materiel follows the same set semantics", func() {
		s.Require().NoError(s.p.AddMateriel("Tracteur", now))
		s.Require().Error(s.p.AddMateriel("tracteur", now))
		s.Len(s.p.MaterielAgricole, 1)
	})
}

func (s *ProducteurSuite) TestHistoricalRecords() {
	s.Require().NoError(s.p.AddCertification(producteur.Certification{Nom: "Rainforest Alliance"}, now))
	s.Require().NoError(s.p.AddCooperative(producteur.Cooperative{Nom: "COOP-CA Bocanda"}, now))
	s.Require().NoError(s.p.AddFormation(producteur.Formation{Titre: "Bonnes pratiques phytosanitaires"}, now))

	s.Run("dates default to now", func() {
		s.True(s.p.Certifications[0].DateObtention.Equal(now))
		s.True(s.p.Cooperatives[0].DateAdhesion.Equal(now))
		s.True(s.p.Formations[0].DateFormation.Equal(now))
	})

	s.Run("empty names rejected", func() {
		s.Require().Error(s.p.AddCertification(producteur.Certification{}, now))
		s.Require().Error(s.p.AddCooperative(producteur.Cooperative{}, now))
		s.Require().Error(s.p.AddFormation(producteur.Formation{}, now))
	})

	s.Run("records are append-only", func() {
		s.Require().NoError(s.p.AddCertification(producteur.Certification{Nom: "UTZ"}, now))
		s.Len(s.p.Certifications, 2)
	})
}

func (s *ProducteurSuite) TestVerification() {
	s.Run("fails with only the photo attached", func() {
		s.Require().NoError(s.p.AttachPhoto("uploads/photo.jpg", now))
		err := s.p.Verify(now)
		s.Require().Error(err)
		s.True(dErrors.IsValidation(err))
		s.Equal(producteur.VerificationEnAttente, s.p.StatusVerification)
	})

	s.Run("succeeds with both documents", func() {
		s.Require().NoError(s.p.AttachPieceIdentite("uploads/cni.pdf", now))
		s.Require().NoError(s.p.Verify(now))
		s.Equal(producteur.VerificationVerifie, s.p.StatusVerification)
		s.True(s.p.IsVerified())
	})

	s.Run("reject requires a motive and re-enters from verified", func() {
		s.Require().Error(s.p.Reject("  ", now))
		s.Require().NoError(s.p.Reject("document illisible", now))
		s.Equal(producteur.VerificationRejete, s.p.StatusVerification)
		s.Equal("document illisible", s.p.MotifRejet)
	})

	s.Run("verify clears the rejection motive", func() {
		s.Require().NoError(s.p.Verify(now))
		s.Empty(s.p.MotifRejet)
	})

	s.Run("mark as incomplete from any state", func() {
		s.p.MarkAsIncomplete(now)
		s.Equal(producteur.VerificationIncomplet, s.p.StatusVerification)
	})
}

func (s *ProducteurSuite) TestGPS() {
	s.Run("rejects out-of-range coordinates", func() {
		s.Require().Error(s.p.SetGPSCoordinates(91, 0, now))
		s.Require().Error(s.p.SetGPSCoordinates(-91, 0, now))
		s.Require().Error(s.p.SetGPSCoordinates(0, 181, now))
		s.Require().Error(s.p.SetGPSCoordinates(0, -181, now))
		s.Nil(s.p.GPS)
	})

	s.Run("records valid coordinates", func() {
		s.Require().NoError(s.p.SetGPSCoordinates(6.817, -5.276, now))
		s.Require().NotNil(s.p.GPS)
		s.Equal(6.817, s.p.GPS.Latitude)
	})
}

func (s *ProducteurSuite) TestDerived() {
	s.Run("age is nil without birth date", func() {
		s.Nil(s.p.Age(now))
	})

	s.Run("age accounts for the anniversary", func() {
		birth := time.Date(1986, 6, 20, 0, 0, 0, 0, time.UTC)
		s.Require().NoError(s.p.UpdatePersonalInfo("Kouassi", "N'Guessan", "M", birth, now))
		age := s.p.Age(now)
		s.Require().NotNil(age)
		s.Equal(39, *age, "birthday not yet reached in March")
	})

	s.Run("experience buckets", func() {
		s.Require().NoError(s.p.UpdateAgricultureInfo(2, 1, 1, now))
		s.Equal("debutant", s.p.ExperienceLevel())
		s.Equal("petite", s.p.ProductionScale())

		s.Require().NoError(s.p.UpdateAgricultureInfo(12, 3, 10, now))
		s.Equal("confirme", s.p.ExperienceLevel())
		s.Equal("moyenne", s.p.ProductionScale())

		s.Require().NoError(s.p.UpdateAgricultureInfo(40, 8, 20, now))
		s.Equal("expert", s.p.ExperienceLevel())
		s.Equal("grande", s.p.ProductionScale())
	})
}

func (s *ProducteurSuite) TestRoundTrip() {
	s.Require().NoError(s.p.UpdateContactInfo("0707", "kouassi@coop.ci", "Broukro", "", "", "N'Zi", now))
	s.Require().NoError(s.p.UpdateAgricultureInfo(12.5, 4, 9, now))
	s.Require().NoError(s.p.AddCulture("Cacao", now))
	s.Require().NoError(s.p.SetGPSCoordinates(6.8, -5.2, now))
	s.Require().NoError(s.p.AttachPhoto("p.jpg", now))
	s.Require().NoError(s.p.AttachPieceIdentite("c.pdf", now))
	s.Require().NoError(s.p.Verify(now))

	restored, err := producteur.FromAPI(s.p.ToAPI(), now.Add(time.Hour))
	s.Require().NoError(err)

	s.Equal(s.p.ID, restored.ID)
	s.Equal(s.p.StatusVerification, restored.StatusVerification)
	s.Equal(s.p.PrincipalesCultures, restored.PrincipalesCultures)
	s.Equal(s.p.Email.Value(), restored.Email.Value())
	s.Require().NotNil(restored.GPS)
	s.Equal(s.p.GPS.Latitude, restored.GPS.Latitude)
	s.True(s.p.CreatedAt.Equal(restored.CreatedAt), "timestamps preserved")
	s.True(s.p.UpdatedAt.Equal(restored.UpdatedAt))
}

func (s *ProducteurSuite) TestFromAPIRejectsInvalid() {
	base := producteur.API{Nom: "Kouassi", Prenom: "N'Guessan"}

	s.Run("unknown verification status", func() {
		in := base
		in.StatusVerification = "suspendu"
		_, err := producteur.FromAPI(in, now)
		s.Require().Error(err)
	})

	s.Run("negative superficie", func() {
		in := base
		in.SuperficieTotale = -3
		_, err := producteur.FromAPI(in, now)
		s.Require().Error(err)
	})

	s.Run("future birth date", func() {
		in := base
		in.DateNaissance = "2030-01-01"
		_, err := producteur.FromAPI(in, now)
		s.Require().Error(err)
	})

	s.Run("gps out of range", func() {
		in := base
		in.GPS = &producteur.GPSCoordinates{Latitude: 120, Longitude: 0}
		_, err := producteur.FromAPI(in, now)
		s.Require().Error(err)
	})

	s.Run("alternate external id maps", func() {
		in := base
		in.ExternalID = "mongo-42"
		p, err := producteur.FromAPI(in, now)
		s.Require().NoError(err)
		s.Equal("mongo-42", p.ID)
	})

	s.Run("cultures deduplicate on ingress", func() {
		in := base
		in.PrincipalesCultures = []string{"Cacao", "cacao ", "Café"}
		p, err := producteur.FromAPI(in, now)
		s.Require().NoError(err)
		s.Equal([]string{"Cacao", "Café"}, p.PrincipalesCultures)
	})
}
