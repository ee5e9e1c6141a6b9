package payout_test

import (
	"testing"

	"github.com/lox/holdem-engine/internal/money"
	"github.com/lox/holdem-engine/internal/payout"
	"github.com/lox/holdem-engine/internal/pot"
	"github.com/stretchr/testify/assert"
)

func TestResolveSingleWinner(t *testing.T) {
	pots := []pot.Pot{{Amount: 300, Eligible: map[pot.Seat]bool{0: true, 1: true}}}
	ranks := map[pot.Seat]int{0: 1, 1: 2}
	payouts := payout.Resolve(pots, ranks, []pot.Seat{0, 1})
	assert.Equal(t, money.Cents(300), payouts[0])
	assert.Equal(t, money.Cents(0), payouts[1])
}

func TestResolveSplitPotWithOddCentToEarliestSeat(t *testing.T) {
	pots := []pot.Pot{{Amount: 101, Eligible: map[pot.Seat]bool{0: true, 1: true}}}
	ranks := map[pot.Seat]int{0: 1, 1: 1}
	payouts := payout.Resolve(pots, ranks, []pot.Seat{0, 1})
	assert.Equal(t, money.Cents(51), payouts[0])
	assert.Equal(t, money.Cents(50), payouts[1])
}

func TestResolveSidePotRestrictsToEligible(t *testing.T) {
	mainPot := pot.Pot{Amount: 150, Eligible: map[pot.Seat]bool{0: true, 1: true, 2: true}}
	sidePot := pot.Pot{Amount: 100, Eligible: map[pot.Seat]bool{1: true, 2: true}}
	ranks := map[pot.Seat]int{0: 1, 1: 2, 2: 3} // seat 0 best rank but not eligible for side pot
	payouts := payout.Resolve([]pot.Pot{mainPot, sidePot}, ranks, []pot.Seat{0, 1, 2})

	assert.Equal(t, money.Cents(150), payouts[0]) // wins main pot outright
	assert.Equal(t, money.Cents(100), payouts[1]) // best rank among side-pot eligible seats
	assert.Equal(t, money.Cents(0), payouts[2])
}

func TestValidatePayouts(t *testing.T) {
	pots := []pot.Pot{{Amount: 100, Eligible: map[pot.Seat]bool{0: true}}}
	ranks := map[pot.Seat]int{0: 1}
	payouts := payout.Resolve(pots, ranks, []pot.Seat{0})
	assert.True(t, payout.ValidatePayouts(pots, payouts, ranks))
}

func TestShare(t *testing.T) {
	share, rem := payout.Share(100, 3)
	assert.Equal(t, money.Cents(33), share)
	assert.Equal(t, money.Cents(1), rem)
}
