// Package display is the terminal front end of the calculator.
//
// A Bubble Tea program owns the bottom of the terminal: a dough status
// bar and the input prompt. Everything else is written above it through
// Program.Println, so output from the command loop never tears the
// prompt.
package display

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/ottodough/internal/domain"
)

const (
	promptText   = "dough> "
	pollInterval = 250 * time.Millisecond
	maxInputLen  = 200
)

// UI drives the prompt and status bar. Run blocks on the event loop;
// other goroutines print and read input once WaitReady returns.
type UI struct {
	program *tea.Program
	store   domain.SessionStore
	lines   chan string
	ready   chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// NewUI creates a UI that reads its status bar from store.
func NewUI(store domain.SessionStore) *UI {
	return &UI{
		store:   store,
		lines:   make(chan string, 16),
		ready:   make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (u *UI) live() bool { return u.program != nil && !u.closed.Load() }

// Println writes a line above the prompt, or to stdout when the event
// loop is not running.
func (u *UI) Println(a ...any) {
	if u.live() {
		u.program.Println(a...)
		return
	}
	fmt.Println(a...)
}

// Printf is the formatted form of Println.
func (u *UI) Printf(format string, a ...any) {
	if u.live() {
		u.program.Printf(format, a...)
		return
	}
	fmt.Printf(format+"\n", a...)
}

func (u *UI) say(style lipgloss.Style, text string) {
	u.Println(style.Render("  " + text))
}

func (u *UI) PrintChat(text string)   { u.say(chatStyle, text) }
func (u *UI) PrintHeader(text string) { u.say(headerStyle, text) }
func (u *UI) PrintLine(text string)   { u.say(primaryStyle, text) }
func (u *UI) PrintHint(text string)   { u.say(secondaryStyle, text) }
func (u *UI) PrintUrgent(text string) { u.say(urgentStyle, text) }

// PrintSummary writes a rendered dough summary.
func (u *UI) PrintSummary(s domain.Summary) { u.Println(RenderSummary(s)) }

// PrintUserInput echoes a submitted command into the scrollback.
func (u *UI) PrintUserInput(text string) { u.Println(echoLine(text)) }

func echoLine(text string) string {
	return promptStyle.Render("dough") + secondaryStyle.Render("> ") + echoStyle.Render(text)
}

// InputChan delivers submitted lines.
func (u *UI) InputChan() <-chan string { return u.lines }

// WaitReady blocks until the event loop has started.
func (u *UI) WaitReady() { <-u.ready }

// QuitChan is closed once Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.stopped }

// Quit asks the event loop to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// Run starts the event loop and blocks until it exits.
func (u *UI) Run() error {
	u.program = tea.NewProgram(newModel(u.store, u.lines, u.ready, u.PrintUserInput))
	_, err := u.program.Run()
	u.closed.Store(true)
	close(u.stopped)
	return err
}

func newPrompt() textinput.Model {
	ti := textinput.New()
	// Unstyled prompt text: ANSI bytes in Prompt break the width math.
	ti.Prompt = promptText
	ti.PromptStyle = promptStyle
	ti.TextStyle = echoStyle
	ti.Cursor.Style = cursorStyle
	ti.CharLimit = maxInputLen
	ti.Width = 60
	ti.Focus()
	return ti
}

type pollMsg struct{}

type model struct {
	input  textinput.Model
	poll   *poller
	bar    *statusBar
	width  int
	submit chan<- string
	ready  chan struct{}
	echo   func(string)
}

func newModel(store domain.SessionStore, submit chan<- string, ready chan struct{}, echo func(string)) model {
	return model{
		input:  newPrompt(),
		poll:   &poller{store: store},
		submit: submit,
		ready:  ready,
		echo:   echo,
	}
}

func schedulePoll() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg { return pollMsg{} })
}

func (m model) Init() tea.Cmd {
	ready := m.ready
	return tea.Batch(textinput.Blink, schedulePoll(), func() tea.Msg {
		close(ready)
		return nil
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEnter {
			return m.submitLine()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > len(promptText) {
			m.input.Width = msg.Width - len(promptText)
		}
		return m, nil
	case pollMsg:
		m.bar = m.poll.poll(context.Background())
		title := "OttoDough"
		if m.bar != nil {
			title = m.bar.title()
		}
		return m, tea.Batch(schedulePoll(), tea.SetWindowTitle(title))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) submitLine() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	if strings.TrimSpace(line) == "" {
		return m, nil
	}
	m.submit <- line
	// Printing from Update would deadlock the program; defer to a Cmd.
	echo := m.echo
	return m, func() tea.Msg {
		echo(line)
		return nil
	}
}

func (m model) View() string {
	view := "\n" + m.input.View()
	if m.bar == nil {
		return view
	}
	return m.bar.render(m.width) + "\n" + view
}
