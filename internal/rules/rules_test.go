package rules_test

import (
	"testing"

	"github.com/lox/holdem-engine/internal/money"
	"github.com/lox/holdem-engine/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRound() rules.RoundState {
	return rules.RoundState{
		HighestBet:         200, // BB posted
		LastRaiseIncrement: 200,
		SmallBlind:         100,
		BigBlind:           200,
	}
}

func TestMinRaiseToNoBet(t *testing.T) {
	round := rules.RoundState{BigBlind: 200}
	assert.Equal(t, money.Cents(200), rules.MinRaiseTo(round))
}

func TestMinRaiseToFacingBet(t *testing.T) {
	round := baseRound()
	assert.Equal(t, money.Cents(400), rules.MinRaiseTo(round))
}

func TestValidActionsFoldedOrAllInYieldsEmpty(t *testing.T) {
	round := baseRound()
	assert.Empty(t, rules.ValidActionsFor(round, rules.PlayerView{Folded: true}).Actions)
	assert.Empty(t, rules.ValidActionsFor(round, rules.PlayerView{AllIn: true}).Actions)
}

func TestValidActionsCheckWhenNoBet(t *testing.T) {
	round := rules.RoundState{BigBlind: 200}
	va := rules.ValidActionsFor(round, rules.PlayerView{Stack: 1000})
	assert.Contains(t, va.Actions, rules.Check)
	assert.NotContains(t, va.Actions, rules.Call)
}

func TestValidActionsCallFacingBet(t *testing.T) {
	round := baseRound()
	va := rules.ValidActionsFor(round, rules.PlayerView{Stack: 1000})
	assert.Contains(t, va.Actions, rules.Call)
	assert.Contains(t, va.Actions, rules.Raise)
}

func TestValidActionsNoRaiseWhenStackOnlyCoversCall(t *testing.T) {
	round := baseRound()
	va := rules.ValidActionsFor(round, rules.PlayerView{Stack: 200})
	assert.NotContains(t, va.Actions, rules.Raise)
}

func TestFullRaiseReopensAction(t *testing.T) {
	round := baseRound()
	p := rules.PlayerView{Stack: 10000}
	applied, err := rules.ApplyAction(round, p, rules.Decision{Action: rules.Raise, Amount: 600})
	require.NoError(t, err)
	assert.True(t, applied.ReopensAction)
	assert.Equal(t, money.Cents(400), applied.NewRound.LastRaiseIncrement)
	assert.Equal(t, money.Cents(600), applied.NewRound.HighestBet)
}

func TestShortAllInDoesNotReopen(t *testing.T) {
	// Scenario mirrors spec: seat 2 all-in for $25 after a raise to $100
	// (big blind raise increment of at least $100 required to reopen).
	round := rules.RoundState{HighestBet: 10000, LastRaiseIncrement: 10000, BigBlind: 100}
	p := rules.PlayerView{Stack: 2500, CurrentBet: 0}
	applied, err := rules.ApplyAction(round, p, rules.Decision{Action: rules.AllIn})
	require.NoError(t, err)
	assert.True(t, applied.WentAllIn)
	assert.False(t, applied.ReopensAction)
	assert.Equal(t, money.Cents(10000), applied.NewRound.HighestBet) // short all-in below current highest bet doesn't raise it
}

func TestShortAllInRaiseBelowMinRaiseDoesNotReopen(t *testing.T) {
	// Highest bet $100, full raise increment would need to be $100 (min raise
	// to $200); an all-in raise to only $125 is short and must not reopen.
	round := rules.RoundState{HighestBet: 10000, LastRaiseIncrement: 10000, BigBlind: 100}
	p := rules.PlayerView{Stack: 2500, CurrentBet: 10000} // already matched the $100, has $25 left behind it
	applied, err := rules.ApplyAction(round, p, rules.Decision{Action: rules.Raise, Amount: 12500})
	require.NoError(t, err)
	assert.True(t, applied.WentAllIn)
	assert.False(t, applied.ReopensAction)
	assert.Equal(t, money.Cents(12500), applied.NewRound.HighestBet)
	assert.Equal(t, money.Cents(10000), applied.NewRound.LastRaiseIncrement)
}

func TestCallTakesMinOfAmountToCallAndStack(t *testing.T) {
	round := baseRound()
	p := rules.PlayerView{Stack: 50}
	applied, err := rules.ApplyAction(round, p, rules.Decision{Action: rules.Call})
	require.NoError(t, err)
	assert.Equal(t, money.Cents(50), applied.Committed)
	assert.True(t, applied.WentAllIn)
}

func TestCheckFacingBetIsError(t *testing.T) {
	round := baseRound()
	_, err := rules.ApplyAction(round, rules.PlayerView{Stack: 1000}, rules.Decision{Action: rules.Check})
	assert.ErrorIs(t, err, rules.ErrCheckFacingBet)
}

func TestCallWithoutBetIsError(t *testing.T) {
	round := rules.RoundState{BigBlind: 200}
	_, err := rules.ApplyAction(round, rules.PlayerView{Stack: 1000}, rules.Decision{Action: rules.Call})
	assert.ErrorIs(t, err, rules.ErrCallWithoutBet)
}

func TestRaiseBelowMinimumIsError(t *testing.T) {
	round := baseRound()
	_, err := rules.ApplyAction(round, rules.PlayerView{Stack: 10000}, rules.Decision{Action: rules.Raise, Amount: 300})
	assert.ErrorIs(t, err, rules.ErrBelowMinRaise)
}

func TestActingAfterFoldIsError(t *testing.T) {
	round := baseRound()
	_, err := rules.ApplyAction(round, rules.PlayerView{Folded: true}, rules.Decision{Action: rules.Fold})
	assert.ErrorIs(t, err, rules.ErrActedAfterFold)
}

func TestShouldAdvancePhase(t *testing.T) {
	assert.True(t, rules.ShouldAdvancePhase(1, false, false))
	assert.True(t, rules.ShouldAdvancePhase(3, true, true))
	assert.False(t, rules.ShouldAdvancePhase(3, true, false))
	assert.False(t, rules.ShouldAdvancePhase(3, false, true))
}

func TestNextPhaseSequence(t *testing.T) {
	assert.Equal(t, rules.Preflop, rules.NextPhase(rules.Deal))
	assert.Equal(t, rules.Flop, rules.NextPhase(rules.Preflop))
	assert.Equal(t, rules.Turn, rules.NextPhase(rules.Flop))
	assert.Equal(t, rules.River, rules.NextPhase(rules.Turn))
	assert.Equal(t, rules.Showdown, rules.NextPhase(rules.River))
	assert.Equal(t, rules.Showdown, rules.NextPhase(rules.Showdown))
}

func TestPhaseNumbering(t *testing.T) {
	assert.Equal(t, rules.Phase(0), rules.Deal)
	assert.Equal(t, rules.Phase(1), rules.Preflop)
	assert.Equal(t, rules.Phase(2), rules.Flop)
	assert.Equal(t, rules.Phase(3), rules.Turn)
	assert.Equal(t, rules.Phase(4), rules.River)
	assert.Equal(t, rules.Phase(5), rules.Showdown)
}

func TestDiscreteRaiseAmountsBounded(t *testing.T) {
	round := baseRound()
	round.PotTotal = 600
	va := rules.ValidActionsFor(round, rules.PlayerView{Stack: 10000})
	require.NotEmpty(t, va.RaiseAmounts)
	minRaise := rules.MinRaiseTo(round)
	for _, a := range va.RaiseAmounts {
		assert.GreaterOrEqual(t, a, minRaise)
	}
	for i := 1; i < len(va.RaiseAmounts); i++ {
		assert.Less(t, va.RaiseAmounts[i-1], va.RaiseAmounts[i])
	}
}

func TestNonDiscreteRaiseAmountsStepBySmallBlind(t *testing.T) {
	round := baseRound()
	amounts := rules.NonDiscreteRaiseAmounts(round, rules.PlayerView{Stack: 1000, CurrentBet: 0})
	require.NotEmpty(t, amounts)
	for i := 1; i < len(amounts)-1; i++ {
		assert.Equal(t, round.SmallBlind, amounts[i]-amounts[i-1])
	}
}
