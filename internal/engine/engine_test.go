package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/hammamikhairi/ottodough/internal/domain"
	"github.com/hammamikhairi/ottodough/internal/logger"
	"github.com/hammamikhairi/ottodough/internal/recipe"
	"github.com/hammamikhairi/ottodough/internal/storage"
)

func setupEngine(t *testing.T, opts ...Option) (*Engine, context.Context) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	presets := recipe.NewMemorySource(log)
	store := storage.NewMemoryStore(log)
	eng := New(presets, store, log, opts...)
	return eng, context.Background()
}

type saveCounter struct {
	*storage.MemoryStore
	saves    int
	snapshot []domain.Session
}

func (c *saveCounter) Save(ctx context.Context, s *domain.Session) error {
	c.saves++
	c.snapshot = append(c.snapshot, *s)
	return c.MemoryStore.Save(ctx, s)
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestStartSession(t *testing.T) {
	eng, ctx := setupEngine(t)

	session, err := eng.StartSession(ctx)
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}
	if session.ID == "" {
		t.Fatal("session ID is empty")
	}
	if session.Status != domain.SessionActive {
		t.Fatalf("expected active status, got %s", session.Status)
	}
	if len(session.Ingredients.Flours) != 1 {
		t.Fatalf("expected 1 flour line, got %d", len(session.Ingredients.Flours))
	}
	want := domain.Masses{Water: 350, Starter: 100, Salt: 10}
	if !near(session.Ingredients.Water, want.Water) || !near(session.Ingredients.Starter, want.Starter) || !near(session.Ingredients.Salt, want.Salt) {
		t.Fatalf("expected %+v, got %+v", want, session.Ingredients.Masses)
	}

	other, err := eng.StartSession(ctx)
	if err != nil {
		t.Fatalf("starting second session: %v", err)
	}
	if other.ID == session.ID {
		t.Fatal("sessions share an ID")
	}
}

func TestStartSessionOptions(t *testing.T) {
	eng, ctx := setupEngine(t,
		WithDefaultFlour("Rye", 1000),
		WithDefaultRatios(domain.Ratios{Hydration: 80, StarterRatio: 10, SaltRatio: 2}),
	)

	session, err := eng.StartSession(ctx)
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}
	if got := session.Ingredients.Flours[0].Name; got != "Rye" {
		t.Fatalf("expected Rye, got %s", got)
	}
	if !near(session.Ingredients.Water, 800) {
		t.Fatalf("expected 800g water, got %v", session.Ingredients.Water)
	}
}

func TestFlourCollection(t *testing.T) {
	eng, ctx := setupEngine(t)

	session, err := eng.StartSession(ctx)
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}

	// Add with defaults.
	s, err := eng.AddFlour(ctx, session.ID, "", 100)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(s.Ingredients.Flours) != 2 || s.Ingredients.Flours[1].Name != "Bread Flour" {
		t.Fatalf("unexpected flours after add: %+v", s.Ingredients.Flours)
	}
	if !near(s.Ingredients.Water, 420) {
		t.Fatalf("expected 420g water for 600g flour, got %v", s.Ingredients.Water)
	}

	// Reweigh by position.
	s, err = eng.ReweighFlour(ctx, session.ID, "2", 500)
	if err != nil {
		t.Fatalf("reweigh: %v", err)
	}
	if !near(s.Ingredients.Starter, 200) {
		t.Fatalf("expected 200g starter for 1000g flour, got %v", s.Ingredients.Starter)
	}

	// Rename by ID.
	id := s.Ingredients.Flours[1].ID
	s, err = eng.RenameFlour(ctx, session.ID, id, "spelt")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if s.Ingredients.Flours[1].Name != "Spelt" {
		t.Fatalf("expected Spelt, got %s", s.Ingredients.Flours[1].Name)
	}

	// Remove by position.
	s, err = eng.RemoveFlour(ctx, session.ID, "1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(s.Ingredients.Flours) != 1 || s.Ingredients.Flours[0].ID != id {
		t.Fatalf("unexpected flours after remove: %+v", s.Ingredients.Flours)
	}

	// Removing the last line is a no-op, not an error.
	s, err = eng.RemoveFlour(ctx, session.ID, "1")
	if err != nil {
		t.Fatalf("remove last: %v", err)
	}
	if len(s.Ingredients.Flours) != 1 {
		t.Fatalf("expected the last flour line to stay, got %d", len(s.Ingredients.Flours))
	}
}

func TestUnknownFlourLine(t *testing.T) {
	eng, ctx := setupEngine(t)

	session, err := eng.StartSession(ctx)
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}

	for _, ref := range []string{"0", "5", "no-such-id"} {
		if _, err := eng.ReweighFlour(ctx, session.ID, ref, 10); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("ref %q: expected ErrNotFound, got %v", ref, err)
		}
	}
}

func TestSetMassAndRatio(t *testing.T) {
	eng, ctx := setupEngine(t)

	session, err := eng.StartSession(ctx)
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}

	s, err := eng.SetMass(ctx, session.ID, domain.FieldWater, 375)
	if err != nil {
		t.Fatalf("set water: %v", err)
	}
	if !near(s.Ratios.Hydration, 75) || s.Ingredients.Water != 375 {
		t.Fatalf("expected 75%% / 375g, got %v%% / %vg", s.Ratios.Hydration, s.Ingredients.Water)
	}

	s, err = eng.SetRatio(ctx, session.ID, domain.FieldSalt, 2.5)
	if err != nil {
		t.Fatalf("set salt ratio: %v", err)
	}
	if !near(s.Ingredients.Salt, 12.5) {
		t.Fatalf("expected 12.5g salt, got %v", s.Ingredients.Salt)
	}
	if !near(s.Ingredients.Water, 375) {
		t.Fatalf("expected water to stay 375g, got %v", s.Ingredients.Water)
	}

	sum, err := eng.Summary(ctx, session.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !near(sum.TotalWeight, 500+375+100+12.5) {
		t.Fatalf("unexpected total weight %v", sum.TotalWeight)
	}
}

func TestApplyPreset(t *testing.T) {
	eng, ctx := setupEngine(t)

	session, err := eng.StartSession(ctx)
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}

	s, err := eng.ApplyPreset(ctx, session.ID, "country-loaf")
	if err != nil {
		t.Fatalf("apply preset: %v", err)
	}
	if s.PresetID != "country-loaf" {
		t.Fatalf("expected preset id recorded, got %q", s.PresetID)
	}
	if !near(s.Ingredients.Water, 325) || !near(s.Ingredients.Starter, 75) || !near(s.Ingredients.Salt, 10) {
		t.Fatalf("unexpected masses %+v", s.Ingredients.Masses)
	}

	// A manual ratio edit clears the preset marker.
	s, err = eng.SetRatio(ctx, session.ID, domain.FieldWater, 66)
	if err != nil {
		t.Fatalf("set ratio: %v", err)
	}
	if s.PresetID != "" {
		t.Fatalf("expected preset id cleared, got %q", s.PresetID)
	}

	if _, err := eng.ApplyPreset(ctx, session.ID, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindPreset(t *testing.T) {
	eng, ctx := setupEngine(t)

	tests := []struct {
		ref     string
		wantID  string
		wantErr bool
	}{
		{"2", "country-loaf", false},
		{"ciabatta", "ciabatta", false},
		{"high", "high-hydration", false},
		{"9", "", true},
		{"focaccia", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			p, err := eng.FindPreset(ctx, tt.ref)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrNotFound) {
					t.Fatalf("expected ErrNotFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ID != tt.wantID {
				t.Fatalf("expected %s, got %s", tt.wantID, p.ID)
			}
		})
	}
}

func TestResetAndAbandon(t *testing.T) {
	eng, ctx := setupEngine(t)

	session, err := eng.StartSession(ctx)
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}
	if _, err := eng.AddFlour(ctx, session.ID, "Rye", 300); err != nil {
		t.Fatalf("add: %v", err)
	}

	s, err := eng.Reset(ctx, session.ID)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(s.Ingredients.Flours) != 1 || !near(s.Ingredients.Water, 350) {
		t.Fatalf("reset did not restore defaults: %+v", s.Ingredients)
	}

	if err := eng.Abandon(ctx, session.ID); err != nil {
		t.Fatalf("abandon: %v", err)
	}
	st, _ := eng.Status(ctx, session.ID)
	if st.Status != domain.SessionAbandoned {
		t.Fatalf("expected abandoned, got %s", st.Status)
	}

	if _, err := eng.SetMass(ctx, session.ID, domain.FieldWater, 1); !errors.Is(err, domain.ErrSessionNotActive) {
		t.Fatalf("expected ErrSessionNotActive, got %v", err)
	}
}

func TestUnknownSession(t *testing.T) {
	eng, ctx := setupEngine(t)

	if _, err := eng.SetMass(ctx, "missing", domain.FieldWater, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := eng.Abandon(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApplyPresetSavesOnce(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := &saveCounter{MemoryStore: storage.NewMemoryStore(log)}
	eng := New(recipe.NewMemorySource(log), store, log)
	ctx := context.Background()

	session, err := eng.StartSession(ctx)
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}
	before := store.saves

	if _, err := eng.ApplyPreset(ctx, session.ID, "country-loaf"); err != nil {
		t.Fatalf("apply preset: %v", err)
	}
	if got := store.saves - before; got != 1 {
		t.Fatalf("expected 1 save for a preset, got %d", got)
	}
	last := store.snapshot[len(store.snapshot)-1]
	if last.PresetID != "country-loaf" || !near(last.Ingredients.Water, 325) {
		t.Fatalf("unexpected committed session: preset=%q water=%v", last.PresetID, last.Ingredients.Water)
	}

	// Flour edits keep the preset marker; the ratios are unchanged.
	s, err := eng.AddFlour(ctx, session.ID, "Rye", 100)
	if err != nil {
		t.Fatalf("add flour: %v", err)
	}
	if s.PresetID != "country-loaf" {
		t.Fatalf("expected preset id kept after flour edit, got %q", s.PresetID)
	}
}
