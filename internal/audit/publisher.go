package audit

import (
	"context"

	"github.com/google/uuid"

	"agrisurvey/pkg/requestcontext"
)

// Sink receives audit events after they are persisted, typically a message
// broker. Sinks must tolerate redelivery.
type Sink interface {
	Publish(ctx context.Context, event Event) error
	Close()
}

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
	inbox chan<- Event
}

// NewPublisher builds a publisher that writes events to the store directly.
// When inbox is non-nil events are handed to the background worker instead,
// keeping request latency flat.
func NewPublisher(store Store, inbox chan<- Event) *Publisher {
	return &Publisher{store: store, inbox: inbox}
}

// Emit records an audit event, filling identity and request metadata from the
// context when absent.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.ClientIP == "" {
		event.ClientIP = requestcontext.ClientIP(ctx)
	}

	if p.inbox != nil {
		select {
		case p.inbox <- event:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return p.store.Append(ctx, event)
}

// List returns the audit trail for a single entity.
func (p *Publisher) List(ctx context.Context, entityID string) ([]Event, error) {
	return p.store.ListByEntity(ctx, entityID)
}
