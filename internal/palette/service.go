// Package palette manages named color collections persisted as a single
// JSON blob.
package palette

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hammamikhairi/ottodough/internal/colorfmt"
	"github.com/hammamikhairi/ottodough/internal/domain"
	"github.com/hammamikhairi/ottodough/internal/logger"
)

// BlobKey is the storage key holding every palette.
const BlobKey = "palettes"

var newID = uuid.NewString

// Service is the palette CRUD layer. Each mutation reads the whole blob,
// edits it and writes it back under a mutex.
type Service struct {
	mu    sync.Mutex
	store domain.BlobStore
	log   *logger.Logger
}

// NewService creates a palette service over store.
func NewService(store domain.BlobStore, log *logger.Logger) *Service {
	return &Service{store: store, log: log}
}

// List returns all palettes in creation order.
func (s *Service) List(ctx context.Context) ([]domain.Palette, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Get finds a palette by 1-based position, ID or case-insensitive name.
func (s *Service) Get(ctx context.Context, ref string) (*domain.Palette, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i, err := find(all, ref)
	if err != nil {
		return nil, err
	}
	p := all[i]
	return &p, nil
}

// Create adds a palette. Every color must be a valid hex code.
func (s *Service) Create(ctx context.Context, name string, colors ...string) (*domain.Palette, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("palette: %w", domain.ErrInvalidName)
	}
	normalized, err := normalizeAll(colors)
	if err != nil {
		return nil, err
	}

	var created domain.Palette
	err = s.mutate(ctx, func(all []domain.Palette) ([]domain.Palette, error) {
		for _, p := range all {
			if strings.EqualFold(p.Name, name) {
				return nil, fmt.Errorf("palette %q: %w", name, domain.ErrAlreadyExists)
			}
		}
		created = domain.Palette{ID: newID(), Name: name, Colors: normalized}
		return append(all, created), nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("palette created: %s (%d colors)", created.Name, len(created.Colors))
	return &created, nil
}

// Rename changes a palette's name.
func (s *Service) Rename(ctx context.Context, ref, name string) (*domain.Palette, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("palette: %w", domain.ErrInvalidName)
	}
	return s.update(ctx, ref, func(p *domain.Palette) error {
		p.Name = name
		return nil
	})
}

// Delete removes a palette.
func (s *Service) Delete(ctx context.Context, ref string) error {
	var deleted string
	err := s.mutate(ctx, func(all []domain.Palette) ([]domain.Palette, error) {
		i, err := find(all, ref)
		if err != nil {
			return nil, err
		}
		deleted = all[i].Name
		return append(all[:i:i], all[i+1:]...), nil
	})
	if err != nil {
		return err
	}
	s.log.Info("palette deleted: %s", deleted)
	return nil
}

// AddColor appends a color to a palette.
func (s *Service) AddColor(ctx context.Context, ref, hex string) (*domain.Palette, error) {
	c, err := colorfmt.ParseHex(hex)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, ref, func(p *domain.Palette) error {
		p.Colors = append(p.Colors, c.Hex())
		return nil
	})
}

// RemoveColor drops the color at a 1-based position, or the first
// occurrence of a hex value.
func (s *Service) RemoveColor(ctx context.Context, ref, color string) (*domain.Palette, error) {
	return s.update(ctx, ref, func(p *domain.Palette) error {
		i := colorIndex(p.Colors, color)
		if i < 0 {
			return fmt.Errorf("color %q: %w", color, domain.ErrNotFound)
		}
		p.Colors = append(p.Colors[:i:i], p.Colors[i+1:]...)
		return nil
	})
}

func (s *Service) update(ctx context.Context, ref string, fn func(*domain.Palette) error) (*domain.Palette, error) {
	var out domain.Palette
	err := s.mutate(ctx, func(all []domain.Palette) ([]domain.Palette, error) {
		i, err := find(all, ref)
		if err != nil {
			return nil, err
		}
		if err := fn(&all[i]); err != nil {
			return nil, err
		}
		out = all[i]
		return all, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) mutate(ctx context.Context, fn func([]domain.Palette) ([]domain.Palette, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	all, err = fn(all)
	if err != nil {
		return err
	}
	return s.save(ctx, all)
}

func (s *Service) load(ctx context.Context) ([]domain.Palette, error) {
	data, err := s.store.Get(ctx, BlobKey)
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.Palette{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading palettes: %w", err)
	}
	var all []domain.Palette
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("decoding palettes: %w", err)
	}
	if all == nil {
		all = []domain.Palette{}
	}
	return all, nil
}

func (s *Service) save(ctx context.Context, all []domain.Palette) error {
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encoding palettes: %w", err)
	}
	if err := s.store.Put(ctx, BlobKey, data); err != nil {
		return fmt.Errorf("saving palettes: %w", err)
	}
	s.log.Debug("palettes saved: %d", len(all))
	return nil
}

func find(all []domain.Palette, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(all) {
		return n - 1, nil
	}
	for i, p := range all {
		if p.ID == ref {
			return i, nil
		}
	}
	for i, p := range all {
		if strings.EqualFold(p.Name, ref) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("palette %q: %w", ref, domain.ErrNotFound)
}

func colorIndex(colors []string, ref string) int {
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(colors) {
		return n - 1
	}
	c, err := colorfmt.ParseHex(ref)
	if err != nil {
		return -1
	}
	for i, v := range colors {
		if v == c.Hex() {
			return i
		}
	}
	return -1
}

func normalizeAll(colors []string) ([]string, error) {
	out := make([]string, 0, len(colors))
	for _, raw := range colors {
		c, err := colorfmt.ParseHex(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, c.Hex())
	}
	return out, nil
}
