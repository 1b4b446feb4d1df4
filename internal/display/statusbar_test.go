package display

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/ottodough/internal/domain"
	"github.com/hammamikhairi/ottodough/internal/logger"
	"github.com/hammamikhairi/ottodough/internal/storage"
)

type countingStore struct {
	*storage.MemoryStore
	lists int
}

func (c *countingStore) ListActive(ctx context.Context) ([]*domain.Session, error) {
	c.lists++
	return c.MemoryStore.ListActive(ctx)
}

func testSession(id string, started time.Time, flourMass float64) *domain.Session {
	return &domain.Session{
		ID: id,
		Ingredients: domain.Ingredients{
			Flours: []domain.FlourLine{{ID: "f1", Name: "Bread Flour", Mass: flourMass}},
			Masses: domain.Masses{Water: 350, Starter: 100, Salt: 10},
		},
		Ratios:    domain.Ratios{Hydration: 70, StarterRatio: 20, SaltRatio: 2},
		Status:    domain.SessionActive,
		StartedAt: started,
	}
}

func TestBarForUsesNewestSession(t *testing.T) {
	assert.Nil(t, barFor(nil))

	now := time.Now()
	bar := barFor([]*domain.Session{
		testSession("old", now, 1000),
		testSession("new", now.Add(time.Second), 500),
	})
	require.NotNil(t, bar)
	assert.Equal(t, 1, bar.flours)
	assert.Equal(t, 500.0, bar.totalFlour)
	assert.Equal(t, 70.0, bar.hydration)
	assert.Equal(t, 960.0, bar.totalWeight)
	assert.Equal(t, "OttoDough | 500 g flour | 70%", bar.title())
}

func TestStatusBarRender(t *testing.T) {
	bar := &statusBar{flours: 2, totalFlour: 750, hydration: 80, totalWeight: 1420.5}
	out := bar.render(100)
	for _, want := range []string{"flours: ", "2", "750 g", "80%", "1420.5 g"} {
		assert.Contains(t, out, want)
	}
	assert.NotEmpty(t, bar.render(0))
}

func TestPollerSkipsUnchangedRevision(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{MemoryStore: storage.NewMemoryStore(logger.New(logger.LevelOff, nil))}
	p := &poller{store: store}

	assert.Nil(t, p.poll(ctx))
	assert.Nil(t, p.poll(ctx))
	assert.Equal(t, 1, store.lists)

	require.NoError(t, store.Save(ctx, testSession("s1", time.Now(), 500)))
	bar := p.poll(ctx)
	require.NotNil(t, bar)
	assert.Equal(t, 500.0, bar.totalFlour)
	assert.Equal(t, 2, store.lists)

	assert.Same(t, bar, p.poll(ctx))
	assert.Equal(t, 2, store.lists)

	require.NoError(t, store.Delete(ctx, "s1"))
	assert.Nil(t, p.poll(ctx))
	assert.Equal(t, 3, store.lists)
}

func TestModelSubmitsAndEchoes(t *testing.T) {
	submit := make(chan string, 1)
	var echoed string
	m := newModel(storage.NewMemoryStore(logger.New(logger.LevelOff, nil)), submit, make(chan struct{}), func(s string) { echoed = s })

	for _, r := range "water 600" {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(model)
	}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, "water 600", <-submit)
	assert.Equal(t, "water 600", echoed)
	assert.Empty(t, m.input.Value())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, submit)
}

func TestModelViewShowsBarAfterResize(t *testing.T) {
	m := newModel(storage.NewMemoryStore(logger.New(logger.LevelOff, nil)), make(chan string, 1), make(chan struct{}), func(string) {})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 90, Height: 30})
	m = next.(model)
	assert.Equal(t, 90-len(promptText), m.input.Width)
	assert.NotContains(t, m.View(), "hydration")

	m.bar = &statusBar{flours: 1, totalFlour: 500, hydration: 70, totalWeight: 960}
	view := m.View()
	assert.Contains(t, view, "hydration")
	assert.Contains(t, view, promptText)
}
