package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/ottodough/internal/domain"
	"github.com/hammamikhairi/ottodough/internal/logger"
)

func newGormStore(t *testing.T, path string) *GormBlobStore {
	t.Helper()
	db, err := OpenSQLite(path)
	require.NoError(t, err)
	store, err := NewGormBlobStore(db, logger.New(logger.LevelOff, nil))
	require.NoError(t, err)
	return store
}

func TestBlobStores(t *testing.T) {
	stores := map[string]domain.BlobStore{
		"memory": NewMemoryBlobStore(),
		"gorm":   newGormStore(t, ":memory:"),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Get(ctx, "palettes")
			assert.ErrorIs(t, err, domain.ErrNotFound)

			require.NoError(t, store.Put(ctx, "palettes", []byte(`[]`)))
			got, err := store.Get(ctx, "palettes")
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(got))

			// Overwrite.
			require.NoError(t, store.Put(ctx, "palettes", []byte(`[{"id":"a"}]`)))
			got, err = store.Get(ctx, "palettes")
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"a"}]`, string(got))
		})
	}
}

func TestGormBlobStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ottodough.db")
	ctx := context.Background()

	first := newGormStore(t, path)
	require.NoError(t, first.Put(ctx, "k", []byte("v")))

	second := newGormStore(t, path)
	got, err := second.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}
