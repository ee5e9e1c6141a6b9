package hand

import (
	"github.com/lox/holdem-engine/internal/actionlog"
	"github.com/lox/holdem-engine/internal/card"
	"github.com/lox/holdem-engine/internal/money"
	"github.com/lox/holdem-engine/internal/payout"
	"github.com/lox/holdem-engine/internal/pot"
)

// awardUncontested refunds any uncalled overage to the last aggressor,
// then awards the remaining pot to the sole non-folded player.
func (h *Hand) awardUncontested() {
	h.refundUncalledBet()

	var winner int
	found := false
	for _, p := range h.players {
		if !p.folded {
			winner = p.seat
			found = true
			break
		}
	}
	if !found {
		return
	}

	amount := h.pot.Total()
	h.players[winner].stack += amount
	h.logEvent(actionlog.Record{
		Position:    h.players[winner].position.String(),
		PlayerID:    winner,
		HasPlayerID: true,
		Action:      actionlog.WinPot,
		AmountCents: amount,
		HasAmount:   true,
		Detail:      "uncontested",
	})
}

// refundUncalledBet returns the portion of the last aggressor's current
// bet that no other non-folded player matched, before any pot is
// awarded. This must run before BuildPots so the returned chips never
// enter a pot.
func (h *Hand) refundUncalledBet() {
	if !h.hasLastAggressor {
		return
	}
	aggressor := h.players[h.lastAggressorSeat]
	if aggressor.folded {
		return
	}

	secondHighest := money.Cents(0)
	for _, p := range h.players {
		if p.seat == aggressor.seat || p.folded {
			continue
		}
		if p.currentBet > secondHighest {
			secondHighest = p.currentBet
		}
	}
	if aggressor.currentBet <= secondHighest {
		return
	}

	uncalled := aggressor.currentBet - secondHighest
	aggressor.currentBet -= uncalled
	aggressor.stack += uncalled
	if err := h.pot.Post(pot.Seat(aggressor.seat), -uncalled); err != nil {
		h.logger.Error("invariant violation refunding uncalled bet", "error", err)
		aggressor.currentBet += uncalled
		aggressor.stack -= uncalled
		return
	}
	h.logEvent(actionlog.Record{
		Position:    aggressor.position.String(),
		PlayerID:    aggressor.seat,
		HasPlayerID: true,
		Action:      actionlog.WinPot,
		AmountCents: uncalled,
		HasAmount:   true,
		Detail:      "uncalled_bet_returned",
	})
}

// runShowdown evaluates every non-folded player's best 5-card hand,
// builds pots from the contribution ledger, resolves payouts, and
// credits stacks.
func (h *Hand) runShowdown() {
	h.refundUncalledBet()

	ranks := make(map[pot.Seat]int)
	var board [5]card.Card
	copy(board[:], h.board)

	seatOrder := make([]pot.Seat, len(h.players))
	for i, p := range h.players {
		seatOrder[i] = pot.Seat(i)
		if p.folded {
			continue
		}
		var seven [7]card.Card
		copy(seven[:2], p.holeCards)
		copy(seven[2:], board[:])
		ranks[pot.Seat(p.seat)] = card.Rank7(seven)
	}

	pots := h.pot.BuildPots()
	payouts := payout.Resolve(pots, ranks, seatOrder)

	for _, p := range h.players {
		amt, ok := payouts[pot.Seat(p.seat)]
		if !ok || amt == 0 {
			continue
		}
		p.stack += amt
		h.logEvent(actionlog.Record{
			Position:    p.position.String(),
			PlayerID:    p.seat,
			HasPlayerID: true,
			Action:      actionlog.WinPot,
			AmountCents: amt,
			HasAmount:   true,
			Rank5:       ranks[pot.Seat(p.seat)],
			HasRank5:    true,
		})
	}
}
