package agent

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/card"
	"github.com/lox/holdem-engine/internal/equity"
	"github.com/lox/holdem-engine/internal/money"
	"github.com/lox/holdem-engine/internal/observation"
	"github.com/lox/holdem-engine/internal/rules"
)

// RuleBasedAgent is a Monte-Carlo equity baseline: it folds when
// equity falls short of pot odds by more than epsilon, and raises for
// value or as a semibluff when equity and SPR clear their thresholds.
type RuleBasedAgent struct {
	Epsilon            float64
	Samples            int
	ValueThreshold     float64
	SemibluffThreshold float64

	rng    *rand.Rand
	logger *log.Logger
	clock  quartz.Clock
}

// RuleBasedAgentOption configures a RuleBasedAgent at construction.
type RuleBasedAgentOption func(*RuleBasedAgent)

// WithLogger attaches a structured logger for decision tracing.
func WithLogger(l *log.Logger) RuleBasedAgentOption {
	return func(a *RuleBasedAgent) { a.logger = l }
}

// WithClock overrides the agent's clock, e.g. with a quartz.NewMock for
// deterministic decision-latency logging in tests.
func WithClock(c quartz.Clock) RuleBasedAgentOption {
	return func(a *RuleBasedAgent) { a.clock = c }
}

// WithSamples overrides the default Monte-Carlo sample count.
func WithSamples(n int) RuleBasedAgentOption {
	return func(a *RuleBasedAgent) { a.Samples = n }
}

// NewRuleBasedAgent returns a baseline agent seeded for reproducible
// decisions.
func NewRuleBasedAgent(seed1, seed2 uint64, opts ...RuleBasedAgentOption) *RuleBasedAgent {
	a := &RuleBasedAgent{
		Epsilon:            0.05,
		Samples:            5000,
		ValueThreshold:     0.6,
		SemibluffThreshold: 0.3,
		rng:                rand.New(rand.NewPCG(seed1, seed2)),
		logger:             log.Default(),
		clock:              quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Decide estimates equity via Monte Carlo simulation against the
// remaining opponents, then applies pot-odds and SPR-gated value and
// semibluff heuristics to choose fold/call/check/raise.
func (a *RuleBasedAgent) Decide(obs observation.Vector, valid rules.ValidActions, ctx Context) (Decision, error) {
	start := a.clock.Now()

	hero, err := card.ParseAll(ctx.HoleCards)
	if err != nil || len(hero) != 2 {
		return Decision{Action: rules.Fold, Confidence: 0.5, HasConfidence: true}, nil
	}
	board, err := card.ParseAll(ctx.Board)
	if err != nil {
		board = nil
	}

	numOpponents := int(obs.PlayersRemaining) - 1
	if numOpponents < 0 {
		numOpponents = 0
	}

	result := equity.Estimate(hero, board, numOpponents, a.Samples, a.rng)
	eq := result.Equity()

	decision := a.makeDecision(obs, valid, eq)

	a.logger.Debug("rule_based_agent decision",
		"action", decision.Action.String(),
		"equity", eq,
		"pot_odds", obs.PotOdds,
		"spr", obs.SPR,
		"latency", a.clock.Now().Sub(start))

	return decision, nil
}

// Reset is a no-op: the agent carries no per-hand state, only the
// long-lived RNG stream.
func (a *RuleBasedAgent) Reset() {}

func (a *RuleBasedAgent) makeDecision(obs observation.Vector, valid rules.ValidActions, eq float64) Decision {
	foldThreshold := obs.PotOdds - a.Epsilon

	if eq < foldThreshold && valid.Contains(rules.Fold) {
		return Decision{Action: rules.Fold, Confidence: 1.0, HasConfidence: true}
	}

	if a.shouldRaise(obs, eq) && valid.Contains(rules.Raise) && len(valid.RaiseAmounts) > 0 {
		amount := a.chooseRaiseAmount(obs, valid, eq)
		return Decision{Action: rules.Raise, Amount: amount, Confidence: a.raiseConfidence(eq), HasConfidence: true}
	}

	return a.fallback(valid, eq)
}

func (a *RuleBasedAgent) fallback(valid rules.ValidActions, eq float64) Decision {
	switch {
	case valid.Contains(rules.Call):
		return Decision{Action: rules.Call, Confidence: 0.8, HasConfidence: true}
	case valid.Contains(rules.Check):
		return Decision{Action: rules.Check, Confidence: 0.9, HasConfidence: true}
	default:
		return Decision{Action: rules.Fold, Confidence: 0.5, HasConfidence: true}
	}
}

func (a *RuleBasedAgent) shouldRaise(obs observation.Vector, eq float64) bool {
	if eq >= a.ValueThreshold {
		return true
	}
	if eq >= a.SemibluffThreshold && obs.SPR >= 3.0 {
		return true
	}
	if obs.SPR >= 10.0 && eq >= 0.2 {
		return true
	}
	return false
}

func (a *RuleBasedAgent) chooseRaiseAmount(obs observation.Vector, valid rules.ValidActions, eq float64) money.Cents {
	amounts := valid.RaiseAmounts
	potCents := money.Cents(obs.PotInBB * 100) // approximate; exact pot is tracked by the caller's RoundState

	switch {
	case eq >= 0.8:
		for i := len(amounts) - 1; i >= 0; i-- {
			if amounts[i] >= potCents {
				return amounts[i]
			}
		}
	case eq >= a.ValueThreshold:
		best := amounts[0]
		bestDelta := absCents(best - potCents)
		for _, amt := range amounts {
			if d := absCents(amt - potCents); d < bestDelta {
				best, bestDelta = amt, d
			}
		}
		return best
	case eq >= a.SemibluffThreshold:
		threshold := money.Cents(float64(potCents) * 2.5)
		for _, amt := range amounts {
			if amt <= threshold {
				return amt
			}
		}
	}
	return amounts[0]
}

func (a *RuleBasedAgent) raiseConfidence(eq float64) float64 {
	switch {
	case eq >= 0.8:
		return 0.95
	case eq >= a.ValueThreshold:
		return 0.85
	case eq >= a.SemibluffThreshold:
		return 0.75
	default:
		return 0.65
	}
}

func absCents(c money.Cents) money.Cents {
	if c < 0 {
		return -c
	}
	return c
}
