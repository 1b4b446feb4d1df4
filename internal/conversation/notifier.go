package conversation

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/ottodough/internal/domain"
	"github.com/hammamikhairi/ottodough/internal/logger"
)

var _ domain.Notifier = (*CLINotifier)(nil)

// PrintFunc has the shape of fmt.Printf and display.UI.Printf.
type PrintFunc func(format string, a ...any)

type severity struct {
	mark  string
	style lipgloss.Style
}

var (
	notice = severity{mark: "·", style: lipgloss.NewStyle().Foreground(lipgloss.Color("#99f6e4")).Bold(true)}
	urgent = severity{mark: "!", style: lipgloss.NewStyle().Foreground(lipgloss.Color("#fca5a5")).Bold(true)}
)

// CLINotifier prints calculator notices such as no-op edits and rejected
// input. Notices for a cancelled context are dropped.
type CLINotifier struct {
	log *logger.Logger
	out PrintFunc
}

// NewCLINotifier returns a notifier writing through out, or stdout when
// out is nil.
func NewCLINotifier(log *logger.Logger, out PrintFunc) *CLINotifier {
	if out == nil {
		out = func(format string, a ...any) { fmt.Printf(format+"\n", a...) }
	}
	return &CLINotifier{log: log, out: out}
}

// Notify prints a normal notice.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notice: %s", message)
	return n.emit(ctx, notice, message)
}

// NotifyUrgent prints a rejected-input notice in red and logs it as a warning.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Warn("rejected: %s", message)
	return n.emit(ctx, urgent, message)
}

func (n *CLINotifier) emit(ctx context.Context, s severity, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.out("%s", s.style.Render(fmt.Sprintf(" %s %s", s.mark, message)))
	return nil
}
