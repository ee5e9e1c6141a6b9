package agent

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"

	"github.com/lox/holdem-engine/internal/money"
	"github.com/lox/holdem-engine/internal/observation"
	"github.com/lox/holdem-engine/internal/rules"
)

var (
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true)
)

// InteractiveAgent prompts a human on a terminal for each decision. In
// a non-interactive environment (stdin is not a TTY) it auto-folds
// every decision rather than blocking forever.
type InteractiveAgent struct {
	rl           *readline.Instance
	interactive  bool
	name         string
}

// NewInteractiveAgent builds an interactive agent. forceInteractive,
// when non-nil, overrides the terminal check so callers can force
// either path (e.g. the non-interactive auto-fold path under test)
// without depending on the real stdin file descriptor.
func NewInteractiveAgent(name string, stdinFD uintptr, forceInteractive *bool) (*InteractiveAgent, error) {
	interactive := isatty.IsTerminal(stdinFD) || isatty.IsCygwinTerminal(stdinFD)
	if forceInteractive != nil {
		interactive = *forceInteractive
	}

	a := &InteractiveAgent{interactive: interactive, name: name}
	if !interactive {
		return a, nil
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          promptStyle.Render(fmt.Sprintf("%s> ", name)),
		InterruptPrompt: "^C",
		EOFPrompt:       "fold",
	})
	if err != nil {
		return nil, fmt.Errorf("agent: failed to start interactive prompt: %w", err)
	}
	a.rl = rl
	return a, nil
}

// Close releases the underlying terminal line reader.
func (a *InteractiveAgent) Close() error {
	if a.rl == nil {
		return nil
	}
	return a.rl.Close()
}

// Decide blocks on terminal input describing one of: fold, check,
// call, raise <amount>, allin. Auto-folds when non-interactive.
func (a *InteractiveAgent) Decide(obs observation.Vector, valid rules.ValidActions, ctx Context) (Decision, error) {
	if !a.interactive {
		return Decision{Action: rules.Fold}, nil
	}

	a.rl.SetPrompt(promptStyle.Render(fmt.Sprintf("%s [%s]> ", a.name, formatValidActions(valid))))

	for {
		line, err := a.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return Decision{Action: rules.Fold}, nil
		}
		if err != nil {
			return Decision{}, fmt.Errorf("agent: interactive read failed: %w", err)
		}

		decision, ok := parseInteractiveLine(line, valid)
		if !ok {
			fmt.Println(errorStyle.Render("unrecognized or invalid action, try again"))
			continue
		}
		return decision, nil
	}
}

// Reset is a no-op: an interactive agent has no internal replay state.
func (a *InteractiveAgent) Reset() {}

func formatValidActions(valid rules.ValidActions) string {
	parts := make([]string, 0, len(valid.Actions))
	for _, act := range valid.Actions {
		parts = append(parts, strings.ToLower(act.String()))
	}
	return strings.Join(parts, "/")
}

func parseInteractiveLine(line string, valid rules.ValidActions) (Decision, bool) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(fields) == 0 {
		return Decision{}, false
	}

	var action rules.Action
	switch fields[0] {
	case "fold", "f":
		action = rules.Fold
	case "check", "ch":
		action = rules.Check
	case "call", "c":
		action = rules.Call
	case "bet", "raise", "r":
		action = rules.Raise
	case "allin", "all", "a":
		action = rules.AllIn
	default:
		return Decision{}, false
	}

	if action == rules.AllIn {
		// Shoving is the largest generated raise-to amount, or a capped
		// call when no raise is available.
		if n := len(valid.RaiseAmounts); n > 0 && valid.Contains(rules.Raise) {
			return Decision{Action: rules.Raise, Amount: valid.RaiseAmounts[n-1]}, true
		}
		action = rules.Call
	}

	if !valid.Contains(action) {
		fmt.Println(warningStyle.Render("that action is not currently available"))
		return Decision{}, false
	}

	if action != rules.Raise {
		return Decision{Action: action}, true
	}

	if len(fields) < 2 {
		return Decision{}, false
	}
	amount, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Decision{}, false
	}
	return Decision{Action: rules.Raise, Amount: money.Cents(amount * 100)}, true
}
