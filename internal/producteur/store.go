package producteur

import "context"

// Store persists producer profiles.
type Store interface {
	Save(ctx context.Context, p *Producteur) error
	Get(ctx context.Context, id string) (*Producteur, error)
	List(ctx context.Context) ([]*Producteur, error)
	ListByStatus(ctx context.Context, status VerificationStatus) ([]*Producteur, error)
	ListByRegion(ctx context.Context, region string) ([]*Producteur, error)
	Delete(ctx context.Context, id string) error
}
