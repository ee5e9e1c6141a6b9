// Package agent implements the Agent Contract: a single capability
// interface (Decide/Reset) with three concrete implementations —
// scripted replay, interactive terminal prompt, and a rule-based
// Monte-Carlo baseline.
package agent

import (
	"github.com/lox/holdem-engine/internal/money"
	"github.com/lox/holdem-engine/internal/observation"
	"github.com/lox/holdem-engine/internal/rules"
)

// Context carries information beyond the Observation vector that an
// agent may use but the engine never inspects: hole cards and the
// current board, in their native card form, for equity-based agents.
type Context struct {
	HoleCards []string
	Board     []string
}

// Decision is what an agent returns: the chosen action, its amount
// (only meaningful for Bet/Raise), and an optional confidence in
// [0,1].
type Decision struct {
	Action        rules.Action
	Amount        money.Cents // ignored unless Action requires an amount
	Confidence    float64
	HasConfidence bool
}

// Decider is the single capability every agent implements. The engine
// never inspects an agent beyond this call; cancellation is expressed
// by returning Fold. Reset clears per-agent replay state as each
// concrete type documents: a ScriptedAgent rewinds its replay cursor;
// the interactive and rule-based agents have nothing to reset.
type Decider interface {
	Decide(obs observation.Vector, valid rules.ValidActions, ctx Context) (Decision, error)
	Reset()
}
