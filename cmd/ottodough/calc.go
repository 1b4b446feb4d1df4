package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/ottodough/internal/conversation"
	"github.com/hammamikhairi/ottodough/internal/display"
	"github.com/hammamikhairi/ottodough/internal/domain"
	"github.com/hammamikhairi/ottodough/internal/dough"
	"github.com/hammamikhairi/ottodough/internal/engine"
	"github.com/hammamikhairi/ottodough/internal/logger"
	"github.com/hammamikhairi/ottodough/internal/recipe"
	"github.com/hammamikhairi/ottodough/internal/storage"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Start the interactive dough calculator (default)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalc(cmd.Context())
	},
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in ratio presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		presets, err := recipe.NewMemorySource(log).List(cmd.Context())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for i, p := range presets {
			fmt.Fprintf(w, "%d. %-16s %s\n", i+1, p.Name, formatRatios(p.Ratios))
			if p.Description != "" {
				fmt.Fprintf(w, "   %s\n", p.Description)
			}
		}
		return nil
	},
}

// output is the subset of the terminal UI the command loop writes to.
type output interface {
	Println(a ...interface{})
	PrintChat(text string)
	PrintHeader(text string)
	PrintLine(text string)
	PrintHint(text string)
	PrintUrgent(text string)
	PrintSummary(s domain.Summary)
}

func calculatorOptions() []engine.Option {
	c := cfg.Calculator
	return []engine.Option{
		engine.WithDefaultFlour(c.FlourName, c.FlourMass),
		engine.WithDefaultRatios(domain.Ratios{
			Hydration:    c.Hydration,
			StarterRatio: c.StarterRatio,
			SaltRatio:    c.SaltRatio,
		}),
	}
}

func runCalc(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	presets := recipe.NewMemorySource(log)
	store := storage.NewMemoryStore(log)
	ui := display.NewUI(store)
	notifier := conversation.NewCLINotifier(log, ui.Printf)
	parser := conversation.NewKeywordParser(log)
	eng := engine.New(presets, store, log, calculatorOptions()...)

	session, err := eng.StartSession(ctx)
	if err != nil {
		return fmt.Errorf("starting calculator: %w", err)
	}

	app := &cliApp{
		engine:    eng,
		parser:    parser,
		notifier:  notifier,
		log:       log,
		ui:        ui,
		sessionID: session.ID,
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	go func() {
		ui.WaitReady()
		app.run(ctx, ui.InputChan())
		ui.Quit()
	}()

	// Bubble Tea owns the terminal; blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
		return err
	}
	return nil
}

type cliApp struct {
	engine    *engine.Engine
	parser    domain.IntentParser
	notifier  domain.Notifier
	log       *logger.Logger
	ui        output
	sessionID string
	done      bool
}

func (a *cliApp) run(ctx context.Context, in <-chan string) {
	a.ui.PrintChat("Fresh dough ready. Edit any value and the rest follows.")
	a.showSummary(ctx)

	for !a.done {
		var input string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case input, ok = <-in:
			if !ok {
				return
			}
		}

		a.dispatch(ctx, input)
	}
}

// dispatch parses one line of input and handles it.
func (a *cliApp) dispatch(ctx context.Context, input string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return
	}

	session, _ := a.engine.Status(ctx, a.sessionID)
	intent, err := a.parser.Parse(ctx, input, session)
	if err != nil {
		a.log.Error("parsing input: %v", err)
		return
	}

	a.log.Debug("intent: %s (payload=%q)", intent.Type, intent.Payload)
	a.handleIntent(ctx, intent)
}

func (a *cliApp) handleIntent(ctx context.Context, intent *domain.Intent) {
	switch intent.Type {
	case domain.IntentHelp:
		a.showHelp()
	case domain.IntentQuit:
		a.quit(ctx)
	case domain.IntentSummary:
		a.showSummary(ctx)
	case domain.IntentReset:
		a.reset(ctx)
	case domain.IntentListFlourTypes:
		a.showFlourTypes()
	case domain.IntentListPresets:
		a.showPresets(ctx)
	case domain.IntentApplyPreset:
		a.applyPreset(ctx, intent.Target)
	case domain.IntentAddFlour:
		a.addFlour(ctx, intent.Name, intent.Value)
	case domain.IntentRemoveFlour:
		a.removeFlour(ctx, intent.Target)
	case domain.IntentRenameFlour:
		a.renameFlour(ctx, intent.Target, intent.Name)
	case domain.IntentReweighFlour:
		a.reweighFlour(ctx, intent.Target, intent.Value)
	case domain.IntentSetMass:
		a.setMass(ctx, intent.Field, intent.Value)
	case domain.IntentSetRatio:
		a.setRatio(ctx, intent.Field, intent.Value)
	default:
		a.notifier.NotifyUrgent(ctx, fmt.Sprintf("Didn't catch %q. Type 'help' for commands.", intent.Payload))
	}
}

// ── Flour collection ─────────────────────────────────────────────

func (a *cliApp) addFlour(ctx context.Context, name, value string) {
	grams := dough.DefaultAddMass
	if value != "" {
		v, ok := a.quantity(ctx, value)
		if !ok {
			return
		}
		grams = v
	}
	if _, err := a.engine.AddFlour(ctx, a.sessionID, name, grams); err != nil {
		a.fail(ctx, "add flour", err)
		return
	}
	a.showSummary(ctx)
}

func (a *cliApp) removeFlour(ctx context.Context, ref string) {
	before, err := a.engine.Status(ctx, a.sessionID)
	if err != nil {
		a.fail(ctx, "remove flour", err)
		return
	}
	after, err := a.engine.RemoveFlour(ctx, a.sessionID, ref)
	if err != nil {
		a.fail(ctx, "remove flour", err)
		return
	}
	if len(after.Ingredients.Flours) == len(before.Ingredients.Flours) {
		a.notifier.Notify(ctx, "A dough needs at least one flour; kept the last line.")
		return
	}
	a.showSummary(ctx)
}

func (a *cliApp) renameFlour(ctx context.Context, ref, name string) {
	if _, err := a.engine.RenameFlour(ctx, a.sessionID, ref, name); err != nil {
		a.fail(ctx, "rename flour", err)
		return
	}
	a.showSummary(ctx)
}

func (a *cliApp) reweighFlour(ctx context.Context, ref, value string) {
	grams, ok := a.quantity(ctx, value)
	if !ok {
		return
	}
	if _, err := a.engine.ReweighFlour(ctx, a.sessionID, ref, grams); err != nil {
		a.fail(ctx, "reweigh flour", err)
		return
	}
	a.showSummary(ctx)
}

// ── Masses and ratios ────────────────────────────────────────────

func (a *cliApp) setMass(ctx context.Context, field domain.Field, value string) {
	grams, ok := a.quantity(ctx, value)
	if !ok {
		return
	}
	if _, err := a.engine.SetMass(ctx, a.sessionID, field, grams); err != nil {
		a.fail(ctx, "set "+field.String(), err)
		return
	}
	a.showSummary(ctx)
}

func (a *cliApp) setRatio(ctx context.Context, field domain.Field, value string) {
	percent, ok := a.quantity(ctx, value)
	if !ok {
		return
	}
	if _, err := a.engine.SetRatio(ctx, a.sessionID, field, percent); err != nil {
		a.fail(ctx, "set "+field.String()+" ratio", err)
		return
	}
	a.showSummary(ctx)
}

func (a *cliApp) reset(ctx context.Context) {
	if _, err := a.engine.Reset(ctx, a.sessionID); err != nil {
		a.fail(ctx, "reset", err)
		return
	}
	a.ui.PrintChat("Back to the starting dough.")
	a.showSummary(ctx)
}

// ── Presets ──────────────────────────────────────────────────────

func (a *cliApp) showPresets(ctx context.Context) {
	presets, err := a.engine.ListPresets(ctx)
	if err != nil {
		a.fail(ctx, "list presets", err)
		return
	}
	a.ui.PrintHeader("Presets")
	for i, p := range presets {
		a.ui.PrintLine(fmt.Sprintf("%d. %-16s %s", i+1, p.Name, formatRatios(p.Ratios)))
	}
	a.ui.PrintHint("Type 'preset <number or name>' to apply one.")
}

func (a *cliApp) applyPreset(ctx context.Context, ref string) {
	preset, err := a.engine.FindPreset(ctx, ref)
	if err != nil {
		a.fail(ctx, "find preset", err)
		return
	}
	if _, err := a.engine.ApplyPreset(ctx, a.sessionID, preset.ID); err != nil {
		a.fail(ctx, "apply preset", err)
		return
	}
	a.ui.PrintChat(fmt.Sprintf("Applied %s.", preset.Name))
	a.showSummary(ctx)
}

// ── Views ────────────────────────────────────────────────────────

func (a *cliApp) showSummary(ctx context.Context) {
	sum, err := a.engine.Summary(ctx, a.sessionID)
	if err != nil {
		a.fail(ctx, "summary", err)
		return
	}
	a.ui.PrintSummary(*sum)
}

func (a *cliApp) showFlourTypes() {
	a.ui.PrintHeader("Flour types")
	for _, t := range domain.FlourTypes {
		a.ui.PrintLine(t)
	}
	a.ui.PrintHint("Any other name works too.")
}

func (a *cliApp) showHelp() {
	a.ui.PrintHeader("Commands")
	lines := [][2]string{
		{"add [name] [grams]", "add a flour line (default 100 g bread flour)"},
		{"remove <n>", "remove flour line n"},
		{"rename <n> <name>", "change a flour's type"},
		{"flour <n> <grams>", "reweigh flour line n"},
		{"water|starter|salt <g>", "set a mass; its ratio follows"},
		{"hydration|starter%|salt% <pct>", "set a ratio; its mass follows"},
		{"presets, preset <n>", "list or apply ratio presets"},
		{"summary", "show the dough"},
		{"types", "list suggested flour types"},
		{"reset", "start over"},
		{"quit", "exit"},
	}
	for _, l := range lines {
		a.ui.PrintLine(fmt.Sprintf("%-32s %s", l[0], l[1]))
	}
}

func (a *cliApp) quit(ctx context.Context) {
	if err := a.engine.Abandon(ctx, a.sessionID); err != nil {
		a.log.Warn("abandoning session: %v", err)
	}
	a.ui.PrintChat("Happy baking.")
	a.done = true
}

// ── Helpers ──────────────────────────────────────────────────────

// quantity parses a typed number and reports bad input to the user.
func (a *cliApp) quantity(ctx context.Context, value string) (float64, bool) {
	v, err := dough.ParseQuantity(value)
	if err != nil {
		a.notifier.NotifyUrgent(ctx, fmt.Sprintf("%q is not a number.", value))
		return 0, false
	}
	return v, true
}

func (a *cliApp) fail(ctx context.Context, op string, err error) {
	a.log.Error("%s: %v", op, err)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.notifier.NotifyUrgent(ctx, "No such item. Use a number from the list.")
	case errors.Is(err, domain.ErrSessionNotActive):
		a.notifier.NotifyUrgent(ctx, "This calculator is closed.")
	default:
		a.notifier.NotifyUrgent(ctx, fmt.Sprintf("Could not %s: %v", op, err))
	}
}

func formatRatios(r domain.Ratios) string {
	return fmt.Sprintf("hydration %s, starter %s, salt %s",
		display.FormatPercent(r.Hydration),
		display.FormatPercent(r.StarterRatio),
		display.FormatPercent(r.SaltRatio))
}
