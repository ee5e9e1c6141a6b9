// Package rules implements the pure Rules Engine: valid-action
// computation, raise-amount generation, action application, and
// phase-advance detection. Nothing in this package performs I/O,
// logging, or side effects of any kind — the Hand State Machine
// orchestrator is responsible for all of that.
package rules

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lox/holdem-engine/internal/money"
)

// Action is the kind of move a player makes.
type Action int

const (
	Fold Action = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (a Action) String() string {
	switch a {
	case Fold:
		return "FOLD"
	case Check:
		return "CHECK"
	case Call:
		return "CALL"
	case Bet:
		return "BET"
	case Raise:
		return "RAISE"
	case AllIn:
		return "ALL_IN"
	default:
		return "UNKNOWN"
	}
}

// PlayerView is the subset of a player's state the Rules Engine needs
// to compute valid actions and apply a decision.
type PlayerView struct {
	Stack      money.Cents
	CurrentBet money.Cents // already committed this betting round
	Folded     bool
	AllIn      bool
}

// RaisePolicy selects which raise-amount generator ValidActionsFor uses.
// The zero value is DiscreteRaisePolicy. A host picks one per table at
// hand construction; the choice must be recorded in the Action Log Sink
// so replays stay reproducible without external config.
type RaisePolicy int

const (
	DiscreteRaisePolicy RaisePolicy = iota
	NonDiscreteRaisePolicy
)

func (p RaisePolicy) String() string {
	if p == NonDiscreteRaisePolicy {
		return "non_discrete"
	}
	return "discrete"
}

// RoundState is the mutable-per-decision betting-round state the Rules
// Engine reads and (via ApplyAction) produces an updated copy of.
type RoundState struct {
	HighestBet        money.Cents
	LastRaiseIncrement money.Cents
	SmallBlind        money.Cents
	BigBlind          money.Cents
	PotTotal          money.Cents // total chips in the pot when the round opened (preflop this includes the posted blinds)
	RaisePolicy       RaisePolicy
}

// ValidActions is the set of legal actions and, for RAISE, the set of
// legal raise-to amounts.
type ValidActions struct {
	Actions      []Action
	RaiseAmounts []money.Cents // legal "raise to" totals, sorted ascending
}

// Contains reports whether action is a member of the valid action set.
func (v ValidActions) Contains(a Action) bool {
	for _, x := range v.Actions {
		if x == a {
			return true
		}
	}
	return false
}

// AmountToCall returns how much more a player must commit to match the
// highest bet.
func AmountToCall(round RoundState, p PlayerView) money.Cents {
	amt := round.HighestBet - p.CurrentBet
	if amt < 0 {
		return 0
	}
	return amt
}

// MinRaiseTo is the single source of truth for raise legality: the
// minimum total bet ("raise to" amount) a RAISE must reach.
func MinRaiseTo(round RoundState) money.Cents {
	if round.HighestBet == 0 {
		return round.BigBlind
	}
	return round.HighestBet + round.LastRaiseIncrement
}

// ValidActionsFor computes the legal actions and raise amounts for p
// given the current round state. A folded or all-in player has no
// legal actions.
func ValidActionsFor(round RoundState, p PlayerView) ValidActions {
	if p.Folded || p.AllIn {
		return ValidActions{}
	}

	toCall := AmountToCall(round, p)
	actions := []Action{Fold}

	if toCall == 0 {
		actions = append(actions, Check)
	} else {
		actions = append(actions, Call)
	}

	if p.Stack > 0 {
		if round.HighestBet == 0 {
			actions = append(actions, Bet)
		}
		if p.Stack > toCall {
			actions = append(actions, Raise)
		}
	}

	var raiseAmounts []money.Cents
	if contains(actions, Raise) || contains(actions, Bet) {
		if round.RaisePolicy == NonDiscreteRaisePolicy {
			raiseAmounts = NonDiscreteRaiseAmounts(round, p)
		} else {
			raiseAmounts = discreteRaiseAmounts(round, p)
		}
	}

	return ValidActions{Actions: actions, RaiseAmounts: raiseAmounts}
}

func contains(actions []Action, a Action) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}
	return false
}

// discreteRaiseAmounts builds the {min_raise_to, 2.5x reference, 3x
// reference, pot_size, all_in} bucket set, deduplicated, sorted, and
// bounded to [min_raise_to, stack_total]. The all-in total is always
// included even when it falls short of min_raise_to: a player whose
// stack cannot reach a full raise may still shove for less, producing
// a short all-in that does not reopen the action (see ApplyAction).
func discreteRaiseAmounts(round RoundState, p PlayerView) []money.Cents {
	minRaise := MinRaiseTo(round)
	maxRaise := p.CurrentBet + p.Stack // going all-in raises "to" this total

	reference := round.BigBlind
	if round.HighestBet > 0 {
		reference = round.HighestBet
	}

	potSize := round.PotTotal + round.HighestBet

	candidates := []money.Cents{
		minRaise,
		money.Cents(float64(reference) * 2.5),
		reference * 3,
		potSize,
	}

	seen := map[money.Cents]bool{}
	var amounts []money.Cents
	for _, c := range candidates {
		if c > maxRaise {
			c = maxRaise
		}
		if c < minRaise || seen[c] {
			continue
		}
		seen[c] = true
		amounts = append(amounts, c)
	}
	if !seen[maxRaise] {
		amounts = append(amounts, maxRaise)
	}
	sort.Slice(amounts, func(i, j int) bool { return amounts[i] < amounts[j] })
	return amounts
}

// NonDiscreteRaiseAmounts is the alternate raise-amount generator: every
// min_raise + k*small_blind up to the player's all-in total. The choice
// between this and the discrete bucket generator is the RoundState's
// RaisePolicy and must be recorded by the caller (the Hand State
// Machine logs it at hand start) so replays stay reproducible.
func NonDiscreteRaiseAmounts(round RoundState, p PlayerView) []money.Cents {
	minRaise := MinRaiseTo(round)
	maxRaise := p.CurrentBet + p.Stack
	if round.SmallBlind <= 0 || minRaise > maxRaise {
		if minRaise <= maxRaise {
			return []money.Cents{minRaise}
		}
		return nil
	}
	var amounts []money.Cents
	for amt := minRaise; amt < maxRaise; amt += round.SmallBlind {
		amounts = append(amounts, amt)
	}
	amounts = append(amounts, maxRaise)
	return amounts
}

var (
	ErrActedAfterFold    = errors.New("rules: player has already folded")
	ErrActedWhileAllIn   = errors.New("rules: player is already all-in")
	ErrCheckFacingBet    = errors.New("rules: cannot check when facing a bet")
	ErrCallWithoutBet    = errors.New("rules: cannot call when there is no bet")
	ErrBelowMinRaise     = errors.New("rules: raise is below the minimum raise amount")
	ErrInsufficientStack = errors.New("rules: insufficient stack for this action")
)

// Decision is a player's requested action. Amount is the "raise to"
// total for Raise/Bet and is ignored for Fold/Check/Call.
type Decision struct {
	Action Action
	Amount money.Cents
}

// Applied describes the concrete effect of a validated decision:
// how much the player committed, whether it reopens the betting round,
// and the round's new highest bet / raise increment.
type Applied struct {
	Action         Action
	Committed      money.Cents // chips moved from stack to pot this action
	WentAllIn      bool
	ReopensAction  bool
	NewRound       RoundState
}

// ApplyAction validates decision against round/p, then returns the
// resulting round state and the applied-action record. Validation
// always precedes mutation; on error, round and p are untouched by the
// caller (ApplyAction itself never mutates its inputs).
func ApplyAction(round RoundState, p PlayerView, decision Decision) (Applied, error) {
	if p.Folded {
		return Applied{}, ErrActedAfterFold
	}
	if p.AllIn {
		return Applied{}, ErrActedWhileAllIn
	}

	toCall := AmountToCall(round, p)

	switch decision.Action {
	case Fold:
		return Applied{Action: Fold, NewRound: round}, nil

	case Check:
		if toCall != 0 {
			return Applied{}, ErrCheckFacingBet
		}
		return Applied{Action: Check, NewRound: round}, nil

	case Call:
		if toCall == 0 {
			return Applied{}, ErrCallWithoutBet
		}
		committed := toCall
		wentAllIn := false
		if committed >= p.Stack {
			committed = p.Stack
			wentAllIn = true
		}
		return Applied{Action: Call, Committed: committed, WentAllIn: wentAllIn, NewRound: round}, nil

	case Bet, Raise:
		return applyRaise(round, p, decision)

	case AllIn:
		return applyAllIn(round, p)

	default:
		return Applied{}, fmt.Errorf("rules: unknown action %v", decision.Action)
	}
}

func applyRaise(round RoundState, p PlayerView, decision Decision) (Applied, error) {
	minRaise := MinRaiseTo(round)
	maxRaiseTo := p.CurrentBet + p.Stack

	target := decision.Amount
	wentAllIn := target >= maxRaiseTo
	if wentAllIn {
		target = maxRaiseTo
	}

	if target < minRaise && !wentAllIn {
		return Applied{}, fmt.Errorf("%w: raise to %s below minimum %s", ErrBelowMinRaise, money.Fmt(target), money.Fmt(minRaise))
	}
	if target > maxRaiseTo {
		return Applied{}, fmt.Errorf("%w: raise to %s exceeds stack", ErrInsufficientStack, money.Fmt(target))
	}

	committed := target - p.CurrentBet
	increment := target - round.HighestBet

	newRound := round
	newRound.HighestBet = target

	// A short all-in raise (increment below the required full-raise
	// increment) updates highest_bet but does not reopen action and
	// does not update last_raise_increment.
	reopens := increment >= round.LastRaiseIncrement
	if reopens {
		newRound.LastRaiseIncrement = increment
	}

	return Applied{
		Action:        decision.Action,
		Committed:     committed,
		WentAllIn:     wentAllIn,
		ReopensAction: reopens,
		NewRound:      newRound,
	}, nil
}

func applyAllIn(round RoundState, p PlayerView) (Applied, error) {
	target := p.CurrentBet + p.Stack
	if target <= round.HighestBet {
		// All-in for less than or equal to the call amount: treated as a
		// capped call, never reopens action.
		committed := p.Stack
		return Applied{Action: AllIn, Committed: committed, WentAllIn: true, NewRound: round}, nil
	}
	return applyRaise(round, p, Decision{Action: AllIn, Amount: target})
}

// ShouldAdvancePhase reports whether the betting round is settled:
// either at most one player remains active, or every non-folded,
// non-all-in player has matched the highest bet and has acted at least
// once since the last full raise (or since the street opened, if none).
func ShouldAdvancePhase(activePlayerCount int, allMatched bool, allActedSinceLastRaise bool) bool {
	if activePlayerCount <= 1 {
		return true
	}
	return allMatched && allActedSinceLastRaise
}

// Phase is a street of the hand, fixed per spec: DEAL=0, PREFLOP=1,
// FLOP=2, TURN=3, RIVER=4, SHOWDOWN=5.
type Phase int

const (
	Deal Phase = iota
	Preflop
	Flop
	Turn
	River
	Showdown
)

func (p Phase) String() string {
	switch p {
	case Deal:
		return "DEAL"
	case Preflop:
		return "PREFLOP"
	case Flop:
		return "FLOP"
	case Turn:
		return "TURN"
	case River:
		return "RIVER"
	case Showdown:
		return "SHOWDOWN"
	default:
		return "UNKNOWN"
	}
}

// NextPhase returns the fixed successor phase. SHOWDOWN is terminal and
// returns itself.
func NextPhase(p Phase) Phase {
	switch p {
	case Deal:
		return Preflop
	case Preflop:
		return Flop
	case Flop:
		return Turn
	case Turn:
		return River
	case River:
		return Showdown
	default:
		return Showdown
	}
}

// CommunityCardsDealt is how many board cards are revealed entering phase.
func CommunityCardsDealt(p Phase) int {
	switch p {
	case Flop:
		return 3
	case Turn, River:
		return 1
	default:
		return 0
	}
}
