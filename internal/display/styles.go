package display

import "github.com/charmbracelet/lipgloss"

// Zinc-based palette shared by the prompt, status bar and scrollback.
var (
	zinc400 = lipgloss.Color("#a1a1aa")
	zinc500 = lipgloss.Color("#71717a")
	zinc600 = lipgloss.Color("#52525b")
	zinc800 = lipgloss.Color("#27272a")
	slate   = lipgloss.Color("#94a3b8")

	barStyle   = lipgloss.NewStyle().Background(zinc800).Foreground(zinc400)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fde68a"))
	labelStyle = lipgloss.NewStyle().Foreground(zinc400)
	sepStyle   = lipgloss.NewStyle().Foreground(zinc600)

	promptStyle = lipgloss.NewStyle().Foreground(slate)
	cursorStyle = lipgloss.NewStyle().Foreground(slate)

	// BannerStyle is the muted slate used for the startup banner.
	BannerStyle = lipgloss.NewStyle().Foreground(slate)

	chatStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#bae6fd"))
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#bbf7d0"))
	primaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#d4d4d8"))
	secondaryStyle = lipgloss.NewStyle().Foreground(zinc500)
	urgentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#fca5a5"))
	echoStyle      = lipgloss.NewStyle().Foreground(zinc400)
)
