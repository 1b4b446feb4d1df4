// Package engine manages dough calculator sessions. Each operation loads a
// session, applies exactly one dough.State transition and commits the
// returned snapshot before the next edit is processed.
package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hammamikhairi/ottodough/internal/domain"
	"github.com/hammamikhairi/ottodough/internal/dough"
	"github.com/hammamikhairi/ottodough/internal/logger"
)

// Option configures the engine.
type Option func(*Engine)

// WithDefaultFlour sets the flour line every new session starts with.
func WithDefaultFlour(name string, grams float64) Option {
	return func(e *Engine) {
		e.defaultFlourName = name
		e.defaultFlourMass = grams
	}
}

// WithDefaultRatios sets the ratio set every new session starts with.
func WithDefaultRatios(r domain.Ratios) Option {
	return func(e *Engine) {
		e.defaultRatios = r
	}
}

// Engine manages calculator sessions. It depends only on interfaces and is
// fully testable with in-memory implementations.
type Engine struct {
	presets          domain.PresetSource
	store            domain.SessionStore
	log              *logger.Logger
	defaultFlourName string
	defaultFlourMass float64
	defaultRatios    domain.Ratios
}

// New creates a calculator engine with the given dependencies and options.
func New(presets domain.PresetSource, store domain.SessionStore, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		presets:          presets,
		store:            store,
		log:              log,
		defaultFlourName: dough.DefaultFlourName,
		defaultFlourMass: dough.DefaultFlourMass,
		defaultRatios:    dough.DefaultRatios,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartSession creates a calculator with the default flour and ratios.
func (e *Engine) StartSession(ctx context.Context) (*domain.Session, error) {
	state := dough.NewState(e.defaultFlourName, e.defaultFlourMass, e.defaultRatios)
	now := time.Now()
	session := &domain.Session{
		ID:          newSessionID(),
		Ingredients: state.Ingredients,
		Ratios:      state.Ratios,
		Status:      domain.SessionActive,
		StartedAt:   now,
		UpdatedAt:   now,
	}

	if err := e.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	e.log.Info("started session %s (%.0fg %s)", session.ID, e.defaultFlourMass, e.defaultFlourName)
	return session, nil
}

// Status returns the full session state.
func (e *Engine) Status(ctx context.Context, sessionID string) (*domain.Session, error) {
	return e.store.Load(ctx, sessionID)
}

// Summary returns the display view of a session.
func (e *Engine) Summary(ctx context.Context, sessionID string) (*domain.Summary, error) {
	session, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	sum := stateOf(session).Summary()
	return &sum, nil
}

// AddFlour appends a flour line. An empty name uses the add default.
func (e *Engine) AddFlour(ctx context.Context, sessionID, name string, grams float64) (*domain.Session, error) {
	if strings.TrimSpace(name) == "" {
		name = dough.DefaultAddName
	}
	return e.apply(ctx, sessionID, "add flour", func(s dough.State) (dough.State, error) {
		return s.AddFlour(name, grams), nil
	})
}

// RemoveFlour removes the flour line addressed by ref (1-based position or
// ID). Removing the only line leaves the session unchanged.
func (e *Engine) RemoveFlour(ctx context.Context, sessionID, ref string) (*domain.Session, error) {
	return e.apply(ctx, sessionID, "remove flour", func(s dough.State) (dough.State, error) {
		id, err := ResolveFlour(s.Ingredients.Flours, ref)
		if err != nil {
			return s, err
		}
		next, ok := s.RemoveFlour(id)
		if !ok {
			e.log.Debug("session %s: kept last flour line %s", sessionID, id)
		}
		return next, nil
	})
}

// RenameFlour renames the flour line addressed by ref.
func (e *Engine) RenameFlour(ctx context.Context, sessionID, ref, name string) (*domain.Session, error) {
	return e.apply(ctx, sessionID, "rename flour", func(s dough.State) (dough.State, error) {
		id, err := ResolveFlour(s.Ingredients.Flours, ref)
		if err != nil {
			return s, err
		}
		next, _ := s.RenameFlour(id, name)
		return next, nil
	})
}

// ReweighFlour sets the mass of the flour line addressed by ref.
func (e *Engine) ReweighFlour(ctx context.Context, sessionID, ref string, grams float64) (*domain.Session, error) {
	return e.apply(ctx, sessionID, "reweigh flour", func(s dough.State) (dough.State, error) {
		id, err := ResolveFlour(s.Ingredients.Flours, ref)
		if err != nil {
			return s, err
		}
		next, _ := s.ReweighFlour(id, grams)
		return next, nil
	})
}

// SetMass makes a water, starter or salt mass the driving value.
func (e *Engine) SetMass(ctx context.Context, sessionID string, field domain.Field, grams float64) (*domain.Session, error) {
	return e.apply(ctx, sessionID, "set "+field.String(), func(s dough.State) (dough.State, error) {
		return s.SetMass(field, grams), nil
	})
}

// SetRatio makes a water, starter or salt percentage the driving value.
func (e *Engine) SetRatio(ctx context.Context, sessionID string, field domain.Field, percent float64) (*domain.Session, error) {
	return e.apply(ctx, sessionID, "set "+field.String()+" ratio", func(s dough.State) (dough.State, error) {
		return s.SetRatio(field, percent), nil
	})
}

// ApplyPreset replaces the ratio set with a preset's and rescales.
func (e *Engine) ApplyPreset(ctx context.Context, sessionID, presetID string) (*domain.Session, error) {
	preset, err := e.presets.Get(ctx, presetID)
	if err != nil {
		return nil, fmt.Errorf("getting preset: %w", err)
	}
	session, err := e.commit(ctx, sessionID, "apply preset", preset.ID, func(s dough.State) (dough.State, error) {
		return s.ApplyRatios(preset.Ratios), nil
	})
	if err != nil {
		return nil, err
	}
	e.log.Info("session %s: applied preset %q", sessionID, preset.Name)
	return session, nil
}

// ListPresets returns all available presets.
func (e *Engine) ListPresets(ctx context.Context) ([]domain.Preset, error) {
	return e.presets.List(ctx)
}

// FindPreset resolves a preset by 1-based position, ID, or name search.
func (e *Engine) FindPreset(ctx context.Context, ref string) (*domain.Preset, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		presets, err := e.presets.List(ctx)
		if err != nil {
			return nil, err
		}
		if n < 1 || n > len(presets) {
			return nil, fmt.Errorf("preset %d: %w", n, domain.ErrNotFound)
		}
		return &presets[n-1], nil
	}
	if p, err := e.presets.Get(ctx, ref); err == nil {
		return p, nil
	}
	matches, err := e.presets.Search(ctx, ref)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("preset %q: %w", ref, domain.ErrNotFound)
	}
	return &matches[0], nil
}

// Reset returns the session to its starting state.
func (e *Engine) Reset(ctx context.Context, sessionID string) (*domain.Session, error) {
	return e.apply(ctx, sessionID, "reset", func(dough.State) (dough.State, error) {
		return dough.NewState(e.defaultFlourName, e.defaultFlourMass, e.defaultRatios), nil
	})
}

// Abandon marks a session as abandoned. Abandoned sessions reject edits.
func (e *Engine) Abandon(ctx context.Context, sessionID string) error {
	session, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}

	session.Status = domain.SessionAbandoned
	session.UpdatedAt = time.Now()

	if err := e.store.Save(ctx, session); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	e.log.Info("session %s abandoned", sessionID)
	return nil
}

// apply runs one state transition against a stored session and commits it.
func (e *Engine) apply(ctx context.Context, sessionID, op string, fn func(dough.State) (dough.State, error)) (*domain.Session, error) {
	return e.commit(ctx, sessionID, op, "", fn)
}

// commit is apply with a preset marker. A non-empty presetID is recorded
// on the session; otherwise the marker is cleared when the ratios change.
// Either way the session is saved once.
func (e *Engine) commit(ctx context.Context, sessionID, op, presetID string, fn func(dough.State) (dough.State, error)) (*domain.Session, error) {
	session, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if session.Status != domain.SessionActive {
		return nil, domain.ErrSessionNotActive
	}

	next, err := fn(stateOf(session))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case presetID != "":
		session.PresetID = presetID
	case next.Ratios != session.Ratios:
		session.PresetID = ""
	}
	session.Ingredients = next.Ingredients
	session.Ratios = next.Ratios
	session.UpdatedAt = time.Now()

	if err := e.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	e.log.Debug("session %s: %s -> flour=%.0fg water=%.0fg starter=%.0fg salt=%.1fg",
		sessionID, op, next.TotalFlour(), next.Ingredients.Water, next.Ingredients.Starter, next.Ingredients.Salt)
	return session, nil
}

func stateOf(s *domain.Session) dough.State {
	return dough.State{Ingredients: s.Ingredients, Ratios: s.Ratios}
}

// ResolveFlour maps a 1-based position or a line ID to a line ID.
func ResolveFlour(flours []domain.FlourLine, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(flours) {
			return "", fmt.Errorf("flour line %d: %w", n, domain.ErrNotFound)
		}
		return flours[n-1].ID, nil
	}
	if dough.IndexOf(flours, ref) < 0 {
		return "", fmt.Errorf("flour line %q: %w", ref, domain.ErrNotFound)
	}
	return ref, nil
}
