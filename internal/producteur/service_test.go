package producteur_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"agrisurvey/internal/audit"
	"agrisurvey/internal/producteur"
	"agrisurvey/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	store   *producteur.InMemoryStore
	events  *audit.InMemoryStore
	service *producteur.Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), now)
	s.store = producteur.NewInMemoryStore()
	s.events = audit.NewInMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = producteur.NewService(s.store, audit.NewPublisher(s.events, nil), nil, logger)
}

func (s *ServiceSuite) create() *producteur.Producteur {
	p, err := s.service.Create(s.ctx, producteur.API{
		Nom:    "Kouassi",
		Prenom: "N'Guessan",
		Region: "N'Zi",
	})
	s.Require().NoError(err)
	return p
}

func (s *ServiceSuite) TestVerificationWorkflow() {
	p := s.create()

	s.Run("verify without documents fails and persists nothing", func() {
		_, err := s.service.Verify(s.ctx, p.ID)
		s.Require().Error(err)

		stored, err := s.store.Get(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal(producteur.VerificationEnAttente, stored.StatusVerification)
	})

	s.Run("verify after attaching both documents", func() {
		_, err := s.service.AttachDocuments(s.ctx, p.ID, "uploads/photo.jpg", "uploads/cni.pdf")
		s.Require().NoError(err)

		verified, err := s.service.Verify(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal(producteur.VerificationVerifie, verified.StatusVerification)

		trail, err := s.events.ListByEntity(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Require().Len(trail, 2)
		s.Equal(audit.ActionProducteurVerified, trail[1].Action)
	})

	s.Run("reject records the motive in the audit trail", func() {
		_, err := s.service.Reject(s.ctx, p.ID, "document illisible")
		s.Require().NoError(err)

		trail, err := s.events.ListByEntity(s.ctx, p.ID)
		s.Require().NoError(err)
		last := trail[len(trail)-1]
		s.Equal(audit.ActionProducteurRejected, last.Action)
		s.Equal("document illisible", last.Details["motif"])
	})
}

func (s *ServiceSuite) TestProfileUpdatesThroughService() {
	p := s.create()

	_, err := s.service.UpdateAgricultureInfo(s.ctx, p.ID, 12.5, 4, 9)
	s.Require().NoError(err)

	_, err = s.service.AddCulture(s.ctx, p.ID, "Cacao")
	s.Require().NoError(err)

	_, err = s.service.SetGPSCoordinates(s.ctx, p.ID, 6.817, -5.276)
	s.Require().NoError(err)

	stored, err := s.store.Get(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(12.5, stored.SuperficieTotale)
	s.Equal([]string{"Cacao"}, stored.PrincipalesCultures)
	s.Require().NotNil(stored.GPS)
}

func (s *ServiceSuite) TestListFilters() {
	p := s.create()
	s.create()

	_, err := s.service.AttachDocuments(s.ctx, p.ID, "p.jpg", "c.pdf")
	s.Require().NoError(err)
	_, err = s.service.Verify(s.ctx, p.ID)
	s.Require().NoError(err)

	verified, err := s.service.ListByStatus(s.ctx, producteur.VerificationVerifie)
	s.Require().NoError(err)
	s.Len(verified, 1)

	region, err := s.service.ListByRegion(s.ctx, "n'zi")
	s.Require().NoError(err)
	s.Len(region, 2, "region filter is case-insensitive")
}
