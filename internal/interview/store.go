package interview

import "context"

// Store persists interview records.
type Store interface {
	Save(ctx context.Context, iv *Interview) error
	Get(ctx context.Context, id string) (*Interview, error)
	List(ctx context.Context) ([]*Interview, error)
	ListByInterviewer(ctx context.Context, interviewerID string) ([]*Interview, error)
	Delete(ctx context.Context, id string) error
}
