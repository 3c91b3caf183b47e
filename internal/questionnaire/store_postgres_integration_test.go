//go:build integration

package questionnaire_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrisurvey/internal/question"
	"agrisurvey/internal/questionnaire"
	"agrisurvey/internal/storage"
	dErrors "agrisurvey/pkg/domain-errors"
	"agrisurvey/pkg/testutil/containers"
)

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func publishedQuestionnaire(t *testing.T, id string) *questionnaire.Questionnaire {
	t.Helper()
	q, err := questionnaire.New(id, "Campagne cacao 2026", "Enquete de terrain", "1.0", testNow)
	require.NoError(t, err)
	_, err = q.AddQuestion(questionnaire.Question{
		Code:  "Q1",
		Texte: "Superficie de la parcelle?",
		Type:  question.TypeNumber,
	}, testNow)
	require.NoError(t, err)
	require.NoError(t, q.SubmitForReview(testNow))
	require.NoError(t, q.Validate("agent-validateur", testNow))
	require.NoError(t, q.Publish(testNow))
	return q
}

func TestQuestionnairePostgresStore(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()
	require.NoError(t, storage.EnsureSchema(ctx, pg.DB))

	store := questionnaire.NewPostgresStore(pg.DB)

	draft, err := questionnaire.New("q-draft", "Brouillon cafe", "", "1.0", testNow)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, draft))
	require.NoError(t, store.Save(ctx, publishedQuestionnaire(t, "q-pub")))

	t.Run("round trip keeps structure", func(t *testing.T) {
		loaded, err := store.Get(ctx, "q-pub")
		require.NoError(t, err)
		assert.Equal(t, questionnaire.StatusPublie, loaded.Statut)
		require.Len(t, loaded.Questions, 1)
		assert.Equal(t, "Q1", loaded.Questions[0].Code)
	})

	t.Run("status filter uses the column", func(t *testing.T) {
		published, err := store.ListByStatus(ctx, questionnaire.StatusPublie)
		require.NoError(t, err)
		require.Len(t, published, 1)
		assert.Equal(t, "q-pub", published[0].ID)
	})

	t.Run("missing id maps to not found", func(t *testing.T) {
		_, err := store.Get(ctx, "inconnu")
		assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))
	})
}

func TestQuestionnaireRedisCache(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()

	cache := questionnaire.NewRedisCache(rc.Client, time.Minute, nil)
	q := publishedQuestionnaire(t, "q-cache")

	t.Run("miss before warm", func(t *testing.T) {
		_, err := cache.GetPublished(ctx, q.ID)
		assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))
	})

	require.NoError(t, cache.SetPublished(ctx, q))

	t.Run("hit after warm", func(t *testing.T) {
		cached, err := cache.GetPublished(ctx, q.ID)
		require.NoError(t, err)
		assert.Equal(t, q.Titre, cached.Titre)
		assert.Equal(t, questionnaire.StatusPublie, cached.Statut)
	})

	t.Run("only published entries are cached", func(t *testing.T) {
		draft, err := questionnaire.New("q-draft", "Brouillon", "", "1.0", testNow)
		require.NoError(t, err)
		err = cache.SetPublished(ctx, draft)
		assert.Equal(t, dErrors.CodeValidation, dErrors.CodeOf(err))
	})

	t.Run("invalidate removes the entry", func(t *testing.T) {
		require.NoError(t, cache.Invalidate(ctx, q.ID))
		_, err := cache.GetPublished(ctx, q.ID)
		assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))
	})
}
