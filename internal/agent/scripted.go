package agent

import (
	"errors"
	"fmt"

	"github.com/lox/holdem-engine/internal/money"
	"github.com/lox/holdem-engine/internal/observation"
	"github.com/lox/holdem-engine/internal/rules"
)

// ErrScriptExhausted is returned by ScriptedAgent.Decide once every
// scripted action has been consumed: this is a fatal protocol
// violation per the Error Handling taxonomy, not something the engine
// recovers from.
var ErrScriptExhausted = errors.New("agent: scripted agent ran out of actions")

// ScriptedAction is one pre-recorded decision.
type ScriptedAction struct {
	Action rules.Action
	Amount money.Cents
}

// ScriptedAgent replays a fixed, finite sequence of actions in order.
// It is deterministic and used for golden-scenario replay and for
// compatibility with scripted decks.
type ScriptedAgent struct {
	actions []ScriptedAction
	next    int
}

// NewScriptedAgent returns an agent that replays actions in order.
func NewScriptedAgent(actions []ScriptedAction) *ScriptedAgent {
	return &ScriptedAgent{actions: actions}
}

// Decide returns the next scripted action, validating it is a member
// of valid. It does not consult obs or ctx.
func (a *ScriptedAgent) Decide(obs observation.Vector, valid rules.ValidActions, ctx Context) (Decision, error) {
	if a.next >= len(a.actions) {
		return Decision{}, ErrScriptExhausted
	}
	step := a.actions[a.next]
	a.next++

	if !valid.Contains(step.Action) {
		return Decision{}, fmt.Errorf("agent: scripted action %s is not a valid action at step %d", step.Action, a.next-1)
	}
	return Decision{Action: step.Action, Amount: step.Amount}, nil
}

// Reset rewinds the replay cursor to the start. A scripted agent is
// normally not reset between hands when simulating a single fixed
// multi-hand session; the harness calls Reset only when intentionally
// replaying the same script again.
func (a *ScriptedAgent) Reset() {
	a.next = 0
}

// Remaining reports how many scripted actions have not yet been played.
func (a *ScriptedAgent) Remaining() int {
	return len(a.actions) - a.next
}
