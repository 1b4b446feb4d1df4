package recipe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/ottodough/internal/domain"
	"github.com/hammamikhairi/ottodough/internal/logger"
)

func TestMemorySourceList(t *testing.T) {
	src := NewMemorySource(logger.New(logger.LevelOff, nil))

	presets, err := src.List(context.Background())
	require.NoError(t, err)
	require.Len(t, presets, 4)
	assert.Equal(t, "classic", presets[0].ID)
	assert.Equal(t, "ciabatta", presets[3].ID)
}

func TestMemorySourceGet(t *testing.T) {
	src := NewMemorySource(logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	tests := []struct {
		id      string
		want    domain.Ratios
		wantErr error
	}{
		{"country-loaf", domain.Ratios{Hydration: 65, StarterRatio: 15, SaltRatio: 2}, nil},
		{"high-hydration", domain.Ratios{Hydration: 75, StarterRatio: 20, SaltRatio: 2.2}, nil},
		{"ciabatta", domain.Ratios{Hydration: 80, StarterRatio: 25, SaltRatio: 2.5}, nil},
		{"nonexistent", domain.Ratios{}, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			p, err := src.Get(ctx, tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Ratios)
		})
	}
}

func TestMemorySourceSearch(t *testing.T) {
	src := NewMemorySource(logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	tests := []struct {
		query string
		count int
	}{
		{"ciabatta", 1},
		{"COUNTRY", 1},
		{"20% starter", 2},
		{"nonexistent-query-xyz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			results, err := src.Search(ctx, tt.query)
			require.NoError(t, err)
			assert.Len(t, results, tt.count)
		})
	}
}

func TestMemorySourceAdd(t *testing.T) {
	src := NewMemorySource(logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	p := domain.Preset{ID: "bagel", Name: "Bagel", Ratios: domain.Ratios{Hydration: 57, StarterRatio: 20, SaltRatio: 2}}
	require.NoError(t, src.Add(ctx, p))
	assert.ErrorIs(t, src.Add(ctx, p), domain.ErrAlreadyExists)

	got, err := src.Get(ctx, "bagel")
	require.NoError(t, err)
	assert.Equal(t, 57.0, got.Ratios.Hydration)
}
