package producteur

import (
	"context"
	"log/slog"
	"time"

	"agrisurvey/internal/audit"
	"agrisurvey/internal/platform/metrics"
	dErrors "agrisurvey/pkg/domain-errors"
	"agrisurvey/pkg/requestcontext"
)

// Service orchestrates producer profile operations: domain rules live on the
// entity, persistence and audit wiring live here.
type Service struct {
	store   Store
	auditor *audit.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewService(store Store, auditor *audit.Publisher, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{store: store, auditor: auditor, metrics: m, logger: logger}
}

// Create builds a new producer profile from client input and persists it.
func (s *Service) Create(ctx context.Context, in API) (*Producteur, error) {
	p, err := FromAPI(in, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, p); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ProducteursCreated.Inc()
	}
	s.emit(ctx, audit.ActionProducteurCreated, p.ID, nil)
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Producteur, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Producteur, error) {
	return s.store.List(ctx)
}

func (s *Service) ListByStatus(ctx context.Context, status VerificationStatus) ([]*Producteur, error) {
	if !status.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeValidation, "unknown verification status %q", status)
	}
	return s.store.ListByStatus(ctx, status)
}

func (s *Service) ListByRegion(ctx context.Context, region string) ([]*Producteur, error) {
	return s.store.ListByRegion(ctx, region)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// UpdatePersonalInfo replaces the identity fields of the profile.
func (s *Service) UpdatePersonalInfo(ctx context.Context, id, nom, prenom, genre string, dateNaissance time.Time) (*Producteur, error) {
	return s.mutate(ctx, id, "", nil, func(p *Producteur, nowCtx context.Context) error {
		return p.UpdatePersonalInfo(nom, prenom, genre, dateNaissance, requestcontext.Now(nowCtx))
	})
}

// UpdateContactInfo replaces phone, email, and address fields.
func (s *Service) UpdateContactInfo(ctx context.Context, id, telephone, email, village, souspref, departement, region string) (*Producteur, error) {
	return s.mutate(ctx, id, "", nil, func(p *Producteur, nowCtx context.Context) error {
		return p.UpdateContactInfo(telephone, email, village, souspref, departement, region, requestcontext.Now(nowCtx))
	})
}

// UpdateAgricultureInfo replaces the numeric agricultural profile.
func (s *Service) UpdateAgricultureInfo(ctx context.Context, id string, superficie float64, parcelles, experience int) (*Producteur, error) {
	return s.mutate(ctx, id, "", nil, func(p *Producteur, nowCtx context.Context) error {
		return p.UpdateAgricultureInfo(superficie, parcelles, experience, requestcontext.Now(nowCtx))
	})
}

func (s *Service) AddCulture(ctx context.Context, id, culture string) (*Producteur, error) {
	return s.mutate(ctx, id, "", nil, func(p *Producteur, nowCtx context.Context) error {
		return p.AddCulture(culture, requestcontext.Now(nowCtx))
	})
}

func (s *Service) RemoveCulture(ctx context.Context, id, culture string) (*Producteur, error) {
	return s.mutate(ctx, id, "", nil, func(p *Producteur, nowCtx context.Context) error {
		return p.RemoveCulture(culture, requestcontext.Now(nowCtx))
	})
}

func (s *Service) AddMateriel(ctx context.Context, id, materiel string) (*Producteur, error) {
	return s.mutate(ctx, id, "", nil, func(p *Producteur, nowCtx context.Context) error {
		return p.AddMateriel(materiel, requestcontext.Now(nowCtx))
	})
}

func (s *Service) AddCertification(ctx context.Context, id string, cert Certification) (*Producteur, error) {
	return s.mutate(ctx, id, "", nil, func(p *Producteur, nowCtx context.Context) error {
		return p.AddCertification(cert, requestcontext.Now(nowCtx))
	})
}

func (s *Service) AddCooperative(ctx context.Context, id string, coop Cooperative) (*Producteur, error) {
	return s.mutate(ctx, id, "", nil, func(p *Producteur, nowCtx context.Context) error {
		return p.AddCooperative(coop, requestcontext.Now(nowCtx))
	})
}

func (s *Service) AddFormation(ctx context.Context, id string, formation Formation) (*Producteur, error) {
	return s.mutate(ctx, id, "", nil, func(p *Producteur, nowCtx context.Context) error {
		return p.AddFormation(formation, requestcontext.Now(nowCtx))
	})
}

// AttachDocuments records uploaded document paths. Empty arguments leave the
// corresponding document untouched.
func (s *Service) AttachDocuments(ctx context.Context, id, photoProfil, pieceIdentite string) (*Producteur, error) {
	return s.mutate(ctx, id, "", nil, func(p *Producteur, nowCtx context.Context) error {
		now := requestcontext.Now(nowCtx)
		if photoProfil != "" {
			if err := p.AttachPhoto(photoProfil, now); err != nil {
				return err
			}
		}
		if pieceIdentite != "" {
			if err := p.AttachPieceIdentite(pieceIdentite, now); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) SetGPSCoordinates(ctx context.Context, id string, latitude, longitude float64) (*Producteur, error) {
	return s.mutate(ctx, id, "", nil, func(p *Producteur, nowCtx context.Context) error {
		return p.SetGPSCoordinates(latitude, longitude, requestcontext.Now(nowCtx))
	})
}

// Verify marks the profile as verified once both documents are attached.
func (s *Service) Verify(ctx context.Context, id string) (*Producteur, error) {
	p, err := s.mutate(ctx, id, audit.ActionProducteurVerified, nil, func(p *Producteur, nowCtx context.Context) error {
		return p.Verify(requestcontext.Now(nowCtx))
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ProducteursVerified.Inc()
	}
	return p, nil
}

// Reject refuses the profile with a motive.
func (s *Service) Reject(ctx context.Context, id, motif string) (*Producteur, error) {
	return s.mutate(ctx, id, audit.ActionProducteurRejected, map[string]string{"motif": motif}, func(p *Producteur, nowCtx context.Context) error {
		return p.Reject(motif, requestcontext.Now(nowCtx))
	})
}

// MarkAsIncomplete flags the profile as missing information.
func (s *Service) MarkAsIncomplete(ctx context.Context, id string) (*Producteur, error) {
	return s.mutate(ctx, id, "", nil, func(p *Producteur, nowCtx context.Context) error {
		p.MarkAsIncomplete(requestcontext.Now(nowCtx))
		return nil
	})
}

func (s *Service) mutate(ctx context.Context, id string, action audit.Action, details map[string]string, fn func(*Producteur, context.Context) error) (*Producteur, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(p, ctx); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, p); err != nil {
		return nil, err
	}
	if action != "" {
		s.emit(ctx, action, p.ID, details)
	}
	return p, nil
}

func (s *Service) emit(ctx context.Context, action audit.Action, entityID string, details map[string]string) {
	if s.auditor == nil {
		return
	}
	err := s.auditor.Emit(ctx, audit.Event{
		Action:   action,
		Entity:   "producteur",
		EntityID: entityID,
		Details:  details,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", action, "entity_id", entityID, "error", err)
	}
}
