package questionnaire

import "context"

// Store persists questionnaire aggregates.
type Store interface {
	Save(ctx context.Context, q *Questionnaire) error
	Get(ctx context.Context, id string) (*Questionnaire, error)
	List(ctx context.Context) ([]*Questionnaire, error)
	ListByStatus(ctx context.Context, status Status) ([]*Questionnaire, error)
	Delete(ctx context.Context, id string) error
}

// Cache holds published questionnaires for fast field-agent sync. Misses are
// normal; the store remains the source of truth.
type Cache interface {
	GetPublished(ctx context.Context, id string) (*Questionnaire, error)
	SetPublished(ctx context.Context, q *Questionnaire) error
	Invalidate(ctx context.Context, id string) error
}
