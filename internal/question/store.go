package question

import "context"

// Store persists the shared question bank.
type Store interface {
	Save(ctx context.Context, q *Question) error
	Get(ctx context.Context, id string) (*Question, error)
	GetByCode(ctx context.Context, code string) (*Question, error)
	List(ctx context.Context) ([]*Question, error)
	Delete(ctx context.Context, id string) error
}
