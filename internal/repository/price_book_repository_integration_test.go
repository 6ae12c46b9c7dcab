//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroplan/plan-service/internal/circuitbreaker"
	"github.com/agroplan/plan-service/internal/domain/model"
)

func TestPriceBookRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Use shared container with unique database name
	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewPriceBookRepository(db)

	entries := []PriceBookEntryDocument{
		{ProductID: "prod-glyphosate", Unit: "gal", UnitPrice: "6.00"},
		{ProductID: "prod-glyphosate", Crop: "corn", Pass: "burndown", Unit: "gal", UnitPrice: "5.75"},
		{ProductID: "prod-urea", Unit: "ton", UnitPrice: "410.00"},
	}

	t.Run("get active when none exists", func(t *testing.T) {
		active, err := repo.GetActive(ctx, "2024")
		assert.NoError(t, err)
		assert.Nil(t, active)
	})

	t.Run("publish first version", func(t *testing.T) {
		version, err := repo.Create(ctx, "2024", entries, "buyer@example.com", "initial budget")
		require.NoError(t, err)
		assert.NotNil(t, version)
		assert.Equal(t, "2024", version.Season)
		assert.Equal(t, entries, version.Entries)
		assert.True(t, version.Active)
		assert.Equal(t, 1, version.Version)
		assert.Equal(t, "buyer@example.com", version.CreatedBy)
		assert.Equal(t, "initial budget", version.Notes)
		assert.False(t, version.ID.IsZero())
	})

	t.Run("get active after publish", func(t *testing.T) {
		active, err := repo.GetActive(ctx, "2024")
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, entries, active.Entries)
		assert.True(t, active.Active)
	})

	t.Run("publishing again deactivates the old version", func(t *testing.T) {
		oldActive, err := repo.GetActive(ctx, "2024")
		require.NoError(t, err)
		require.NotNil(t, oldActive)

		reprice := []PriceBookEntryDocument{
			{ProductID: "prod-glyphosate", Unit: "gal", UnitPrice: "6.40"},
		}
		next, err := repo.Create(ctx, "2024", reprice, "buyer@example.com", "june reprice")
		require.NoError(t, err)
		assert.Equal(t, oldActive.Version+1, next.Version)

		active, err := repo.GetActive(ctx, "2024")
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, reprice, active.Entries)
		assert.NotEqual(t, oldActive.ID, active.ID)
	})

	t.Run("seasons are versioned independently", func(t *testing.T) {
		version, err := repo.Create(ctx, "2025", entries, "buyer@example.com", "")
		require.NoError(t, err)
		assert.Equal(t, 1, version.Version)

		active, err := repo.GetActive(ctx, "2024")
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, "2024", active.Season)
	})

	t.Run("history lists versions newest first", func(t *testing.T) {
		versions, err := repo.History(ctx, "2024", 0)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(versions), 2)
		assert.Greater(t, versions[0].Version, versions[1].Version)
	})

	t.Run("history with limit", func(t *testing.T) {
		versions, err := repo.History(ctx, "2024", 1)
		require.NoError(t, err)
		assert.Equal(t, 1, len(versions))
	})

	t.Run("stored entries convert into an engine price book", func(t *testing.T) {
		active, err := repo.GetActive(ctx, "2025")
		require.NoError(t, err)
		require.NotNil(t, active)

		book := active.PriceBook()
		assert.Len(t, book, len(entries))
		entry, found := book.Lookup("prod-glyphosate", "corn", "burndown")
		assert.True(t, found)
		assert.Equal(t, model.UnitGallon, entry.Unit)
		assert.Equal(t, "5.75", entry.UnitPrice.StringFixed(2))
	})
}

func TestPriceBookRepositoryWithCircuitBreaker_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Use shared container with unique database name
	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewPriceBookRepository(db)
	cb := circuitbreaker.New(circuitbreaker.DefaultConfig())
	wrappedRepo := NewPriceBookRepositoryWithCircuitBreaker(repo, cb)

	t.Run("circuit breaker allows successful operations", func(t *testing.T) {
		entries := []PriceBookEntryDocument{
			{ProductID: "prod-potash", Unit: "lbs", UnitPrice: "0.32"},
		}
		version, err := wrappedRepo.Create(ctx, "2024", entries, "test", "")
		require.NoError(t, err)
		assert.NotNil(t, version)

		active, err := wrappedRepo.GetActive(ctx, "2024")
		require.NoError(t, err)
		assert.NotNil(t, active)
	})

	t.Run("circuit breaker stats", func(t *testing.T) {
		stats := cb.GetStats()
		assert.Equal(t, "closed", stats.State)
		assert.True(t, stats.IsHealthy)
	})

	t.Run("circuit breaker GetCircuitBreaker", func(t *testing.T) {
		returnedCB := wrappedRepo.GetCircuitBreaker()
		assert.NotNil(t, returnedCB)
		assert.Equal(t, cb, returnedCB)
	})

	t.Run("circuit breaker History", func(t *testing.T) {
		versions, err := wrappedRepo.History(ctx, "2024", 5)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(versions), 1)
	})
}
