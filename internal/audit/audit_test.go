package audit_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrisurvey/internal/audit"
	"agrisurvey/pkg/requestcontext"
)

var now = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisherFillsMetadataFromContext(t *testing.T) {
	store := audit.NewInMemoryStore()
	publisher := audit.NewPublisher(store, nil)

	ctx := requestcontext.WithTime(context.Background(), now)
	ctx = requestcontext.WithRequestID(ctx, "req-1")
	ctx = requestcontext.WithClientIP(ctx, "10.0.0.7")

	err := publisher.Emit(ctx, audit.Event{
		Action:   audit.ActionProducteurVerified,
		Entity:   "producteur",
		EntityID: "p-1",
	})
	require.NoError(t, err)

	events := store.All()
	require.Len(t, events, 1)
	assert.NotEmpty(t, events[0].ID)
	assert.True(t, events[0].Timestamp.Equal(now))
	assert.Equal(t, "req-1", events[0].RequestID)
	assert.Equal(t, "10.0.0.7", events[0].ClientIP)
}

func TestPublisherHandsOffToInbox(t *testing.T) {
	store := audit.NewInMemoryStore()
	inbox := make(chan audit.Event, 1)
	publisher := audit.NewPublisher(store, inbox)

	err := publisher.Emit(context.Background(), audit.Event{
		Action:   audit.ActionInterviewCompleted,
		Entity:   "interview",
		EntityID: "i-1",
	})
	require.NoError(t, err)

	assert.Empty(t, store.All(), "event goes to the worker, not straight to the store")
	select {
	case event := <-inbox:
		assert.Equal(t, audit.ActionInterviewCompleted, event.Action)
	default:
		t.Fatal("expected event in inbox")
	}
}

func TestWorkerDrainsInbox(t *testing.T) {
	store := audit.NewInMemoryStore()
	inbox := make(chan audit.Event, 2)
	worker := audit.NewWorker(store, nil, inbox, discardLogger())

	inbox <- audit.Event{ID: "e1", EntityID: "q-1", Action: audit.ActionQuestionnairePublished}
	inbox <- audit.Event{ID: "e2", EntityID: "q-1", Action: audit.ActionQuestionnaireUsed}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	require.Eventually(t, func() bool {
		return len(store.All()) == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	trail, err := store.ListByEntity(context.Background(), "q-1")
	require.NoError(t, err)
	assert.Len(t, trail, 2)
}
