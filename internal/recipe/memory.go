// Package recipe provides ratio preset sources.
package recipe

import (
	"context"
	"strings"
	"sync"

	"github.com/hammamikhairi/ottodough/internal/domain"
	"github.com/hammamikhairi/ottodough/internal/logger"
)

// Compile-time interface check.
var _ domain.PresetSource = (*MemorySource)(nil)

// MemorySource holds presets in memory. Safe for concurrent reads.
type MemorySource struct {
	mu      sync.RWMutex
	presets []domain.Preset // display order
	log     *logger.Logger
}

// NewMemorySource creates a preset source preloaded with the built-in presets.
func NewMemorySource(log *logger.Logger) *MemorySource {
	src := &MemorySource{log: log}
	src.seed()
	return src
}

// List returns all presets in display order.
func (s *MemorySource) List(ctx context.Context) ([]domain.Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.log.Debug("listing all presets, count=%d", len(s.presets))
	out := make([]domain.Preset, len(s.presets))
	copy(out, s.presets)
	return out, nil
}

// Get returns a preset by ID.
func (s *MemorySource) Get(ctx context.Context, id string) (*domain.Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.presets {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	s.log.Debug("preset not found: %s", id)
	return nil, domain.ErrNotFound
}

// Add registers an extra preset. The ID must be unused.
func (s *MemorySource) Add(ctx context.Context, p domain.Preset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.presets {
		if existing.ID == p.ID {
			return domain.ErrAlreadyExists
		}
	}
	s.presets = append(s.presets, p)
	s.log.Info("preset added: %s", p.Name)
	return nil
}

// Search returns presets whose ID, name or description contain the query.
func (s *MemorySource) Search(ctx context.Context, query string) ([]domain.Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	s.log.Debug("searching presets for: %s", q)

	var out []domain.Preset
	for _, p := range s.presets {
		if matches(p, q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func matches(p domain.Preset, query string) bool {
	return strings.Contains(strings.ToLower(p.ID), query) ||
		strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query)
}

// seed populates the source with built-in presets.
func (s *MemorySource) seed() {
	s.presets = []domain.Preset{
		{
			ID:          "classic",
			Name:        "Classic",
			Description: "70% hydration, 20% starter",
			Ratios:      domain.Ratios{Hydration: 70, StarterRatio: 20, SaltRatio: 2},
		},
		{
			ID:          "country-loaf",
			Name:        "Country Loaf",
			Description: "65% hydration, 15% starter",
			Ratios:      domain.Ratios{Hydration: 65, StarterRatio: 15, SaltRatio: 2},
		},
		{
			ID:          "high-hydration",
			Name:        "High Hydration",
			Description: "75% hydration, 20% starter",
			Ratios:      domain.Ratios{Hydration: 75, StarterRatio: 20, SaltRatio: 2.2},
		},
		{
			ID:          "ciabatta",
			Name:        "Ciabatta Style",
			Description: "80% hydration, 25% starter",
			Ratios:      domain.Ratios{Hydration: 80, StarterRatio: 25, SaltRatio: 2.5},
		},
	}
	s.log.Debug("seeded %d presets", len(s.presets))
}
