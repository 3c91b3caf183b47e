//go:build integration

package producteur_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrisurvey/internal/producteur"
	"agrisurvey/internal/storage"
	dErrors "agrisurvey/pkg/domain-errors"
	"agrisurvey/pkg/testutil/containers"
)

func TestPostgresStoreRoundTrip(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()
	require.NoError(t, storage.EnsureSchema(ctx, pg.DB))

	store := producteur.NewPostgresStore(pg.DB)
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	p, err := producteur.New("prod-1", "Kouassi", "N'Guessan", now)
	require.NoError(t, err)
	require.NoError(t, p.UpdateContactInfo("+2250700000001", "", "Kotobi", "", "Dimbokro", "N'Zi", now))
	require.NoError(t, p.UpdateAgricultureInfo(4.5, 2, 10, now))
	require.NoError(t, p.AddCulture("Cacao", now))
	require.NoError(t, p.AddCulture("Café", now))
	require.NoError(t, store.Save(ctx, p))

	loaded, err := store.Get(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, p.Nom, loaded.Nom)
	assert.Equal(t, p.Region, loaded.Region)
	assert.Equal(t, []string{"Cacao", "Café"}, loaded.PrincipalesCultures)
	assert.Equal(t, producteur.VerificationEnAttente, loaded.StatusVerification)

	t.Run("upsert replaces the document", func(t *testing.T) {
		require.NoError(t, p.AttachPhoto("uploads/photo.jpg", now))
		require.NoError(t, p.AttachPieceIdentite("uploads/cni.pdf", now))
		require.NoError(t, p.Verify(now))
		require.NoError(t, store.Save(ctx, p))

		loaded, err := store.Get(ctx, "prod-1")
		require.NoError(t, err)
		assert.Equal(t, producteur.VerificationVerifie, loaded.StatusVerification)
	})

	t.Run("missing id maps to not found", func(t *testing.T) {
		_, err := store.Get(ctx, "inconnu")
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))
	})
}

func TestPostgresStoreListings(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()
	require.NoError(t, storage.EnsureSchema(ctx, pg.DB))

	store := producteur.NewPostgresStore(pg.DB)
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	seed := func(id, nom, region string) *producteur.Producteur {
		p, err := producteur.New(id, nom, "Test", now)
		require.NoError(t, err)
		require.NoError(t, p.UpdateContactInfo("", "", "", "", "", region, now))
		require.NoError(t, store.Save(ctx, p))
		return p
	}
	seed("prod-a", "Brou", "N'Zi")
	seed("prod-b", "Aka", "N'Zi")
	seed("prod-c", "Yao", "Indenie-Djuablin")

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Aka", all[0].Nom, "listings sort by name")

	byRegion, err := store.ListByRegion(ctx, "n'zi")
	require.NoError(t, err)
	assert.Len(t, byRegion, 2, "region filter is case-insensitive")

	pending, err := store.ListByStatus(ctx, producteur.VerificationEnAttente)
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	require.NoError(t, store.Delete(ctx, "prod-c"))
	err = store.Delete(ctx, "prod-c")
	assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))
}
