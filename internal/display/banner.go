package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerRaw string

// Tagline is printed under the banner art.
const Tagline = "baker's percentages, kept in balance"

var taglineStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#71717a")).
	Italic(true)

// RenderBanner returns the banner art and tagline centred for the current
// terminal width.
func RenderBanner() string {
	return RenderBannerWidth(termWidth())
}

// RenderBannerWidth centres the banner block within width columns. The art
// keeps its native size; narrower terminals get it flush left.
func RenderBannerWidth(width int) string {
	lines := strings.Split(strings.TrimRight(bannerRaw, "\n"), "\n")

	block := 0
	for _, l := range lines {
		block = max(block, lipgloss.Width(l))
	}
	pad := strings.Repeat(" ", max(0, (width-block)/2))

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(pad)
		b.WriteString(BannerStyle.Render(l))
		b.WriteByte('\n')
	}

	tagPad := strings.Repeat(" ", max(0, (width-lipgloss.Width(Tagline))/2))
	b.WriteString(tagPad)
	b.WriteString(taglineStyle.Render(Tagline))
	b.WriteByte('\n')
	return b.String()
}

// termWidth returns the current terminal column count, or 80 as fallback.
func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
