package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/ottodough/internal/domain"
	"github.com/hammamikhairi/ottodough/internal/logger"
)

func TestMemoryStoreCRUD(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := NewMemoryStore(log)
	ctx := context.Background()

	session := &domain.Session{
		ID: "test-session-1",
		Ingredients: domain.Ingredients{
			Flours: []domain.FlourLine{{ID: "f1", Name: "Rye", Mass: 500}},
			Masses: domain.Masses{Water: 350, Starter: 100, Salt: 10},
		},
		Ratios:    domain.Ratios{Hydration: 70, StarterRatio: 20, SaltRatio: 2},
		Status:    domain.SessionActive,
		StartedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// Save.
	require.NoError(t, store.Save(ctx, session))

	// Load.
	loaded, err := store.Load(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, session.Ratios, loaded.Ratios)

	// Mutating the loaded copy does not touch the stored one.
	loaded.Ratios.Hydration = 99
	again, err := store.Load(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, 70.0, again.Ratios.Hydration)

	// Load nonexistent.
	_, err = store.Load(ctx, "nonexistent")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// ListActive.
	active, err := store.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	// Delete.
	require.NoError(t, store.Delete(ctx, "test-session-1"))
	_, err = store.Load(ctx, "test-session-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Delete nonexistent.
	assert.ErrorIs(t, store.Delete(ctx, "nonexistent"), domain.ErrNotFound)
}

func TestMemoryStoreListActiveFilters(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := NewMemoryStore(log)
	ctx := context.Background()

	base := time.Now()
	sessions := []*domain.Session{
		{ID: "s2", Status: domain.SessionActive, StartedAt: base.Add(time.Minute)},
		{ID: "s1", Status: domain.SessionActive, StartedAt: base},
		{ID: "s3", Status: domain.SessionAbandoned, StartedAt: base},
	}
	for _, s := range sessions {
		require.NoError(t, store.Save(ctx, s), "save %s", s.ID)
	}

	active, err := store.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "s1", active[0].ID)
	assert.Equal(t, "s2", active[1].ID)
}

func TestMemoryStoreDeepCopiesFlours(t *testing.T) {
	store := NewMemoryStore(logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	session := &domain.Session{
		ID:          "s",
		Ingredients: domain.Ingredients{Flours: []domain.FlourLine{{ID: "f1", Name: "Rye", Mass: 500}}},
	}
	require.NoError(t, store.Save(ctx, session))

	// the caller's slice is not aliased by the store
	session.Ingredients.Flours[0].Mass = 1

	loaded, err := store.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 500.0, loaded.Ingredients.Flours[0].Mass)

	loaded.Ingredients.Flours[0].Name = "Spelt"
	again, err := store.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "Rye", again.Ingredients.Flours[0].Name)
}

func TestMemoryStoreRevision(t *testing.T) {
	store := NewMemoryStore(logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	assert.Zero(t, store.Revision())
	require.NoError(t, store.Save(ctx, &domain.Session{ID: "a"}))
	require.NoError(t, store.Save(ctx, &domain.Session{ID: "a"}))
	assert.Equal(t, uint64(2), store.Revision())

	_, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), store.Revision())

	require.NoError(t, store.Delete(ctx, "a"))
	assert.Equal(t, uint64(3), store.Revision())

	assert.Error(t, store.Delete(ctx, "a"))
	assert.Equal(t, uint64(3), store.Revision())
}
