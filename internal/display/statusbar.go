package display

import (
	"context"
	"fmt"
	"strings"

	"github.com/hammamikhairi/ottodough/internal/domain"
	"github.com/hammamikhairi/ottodough/internal/dough"
)

// revisioned is implemented by stores that count their writes.
type revisioned interface {
	Revision() uint64
}

// statusBar is the one-line dough readout above the prompt.
type statusBar struct {
	flours      int
	totalFlour  float64
	hydration   float64
	totalWeight float64
}

// barFor builds the bar for the most recently started active session, or
// returns nil when there is none.
func barFor(sessions []*domain.Session) *statusBar {
	if len(sessions) == 0 {
		return nil
	}
	s := sessions[len(sessions)-1]
	total := dough.TotalFlour(s.Ingredients.Flours)
	return &statusBar{
		flours:      len(s.Ingredients.Flours),
		totalFlour:  total,
		hydration:   s.Ratios.Hydration,
		totalWeight: dough.TotalWeight(total, s.Ingredients.Masses),
	}
}

// poller reads the bar from a session store, skipping the read when the
// store reports no writes since the last poll.
type poller struct {
	store domain.SessionStore
	rev   uint64
	seen  bool
	bar   *statusBar
}

func (p *poller) poll(ctx context.Context) *statusBar {
	if r, ok := p.store.(revisioned); ok {
		rev := r.Revision()
		if p.seen && rev == p.rev {
			return p.bar
		}
		p.rev, p.seen = rev, true
	}
	sessions, err := p.store.ListActive(ctx)
	if err != nil {
		return p.bar
	}
	p.bar = barFor(sessions)
	return p.bar
}

func (b *statusBar) title() string {
	return fmt.Sprintf("OttoDough | %s flour | %s", FormatGrams(b.totalFlour), FormatPercent(b.hydration))
}

func (b *statusBar) render(width int) string {
	item := func(label, value string) string {
		return labelStyle.Render(label+": ") + valueStyle.Render(value)
	}
	parts := []string{
		item("flours", fmt.Sprintf("%d", b.flours)),
		item("flour", FormatGrams(b.totalFlour)),
		item("hydration", FormatPercent(b.hydration)),
		item("dough", FormatGrams(b.totalWeight)),
	}
	if width <= 0 {
		width = 80
	}
	return barStyle.Width(width).Render(" " + strings.Join(parts, sepStyle.Render("  │  ")) + " ")
}
