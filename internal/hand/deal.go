package hand

import (
	"fmt"

	"github.com/lox/holdem-engine/internal/actionlog"
	"github.com/lox/holdem-engine/internal/card"
	"github.com/lox/holdem-engine/internal/money"
	"github.com/lox/holdem-engine/internal/pot"
	"github.com/lox/holdem-engine/internal/rules"
	"github.com/lox/holdem-engine/internal/seat"
)

// Play runs the hand to completion: blinds, hole cards, the four
// betting rounds, street advancement, and showdown (or an earlier
// uncontested award). It returns a fatal error on any protocol, rule,
// or invariant violation; resource failures (log sink writes) are
// reported internally and never abort the hand.
func (h *Hand) Play() (Result, error) {
	h.logEvent(actionlog.Record{Action: actionlog.HandStart, Detail: h.cfg.RaisePolicy.String()})

	if err := h.postBlinds(); err != nil {
		return Result{}, err
	}
	if err := h.dealHoleCards(); err != nil {
		return Result{}, err
	}

	h.phase = rules.Preflop
	h.openRound()

	for {
		if err := h.runBettingRound(); err != nil {
			return Result{}, err
		}
		if h.activeSeatCount() <= 1 {
			h.awardUncontested()
			return h.finish(), nil
		}

		if h.phase == rules.River {
			h.phase = rules.Showdown
			break
		}
		h.advanceStreet()
	}

	h.runShowdown()
	return h.finish(), nil
}

func (h *Hand) finish() Result {
	stacks := make([]money.Cents, len(h.players))
	for i, p := range h.players {
		stacks[i] = p.stack
	}
	return Result{HandID: h.handID, FinalStacks: stacks, TotalPotCents: h.pot.Total()}
}

// postBlinds posts SB then BB, each capped at the poster's stack
// (going all-in if the stack is short), per the dealer-derived position
// assignment computed at construction.
func (h *Hand) postBlinds() error {
	sbSeat, ok := h.seatForPosition(seat.SB)
	if !ok {
		return fmt.Errorf("hand: no seat assigned SB")
	}
	bbSeat, ok := h.seatForPosition(seat.BB)
	if !ok {
		return fmt.Errorf("hand: no seat assigned BB")
	}

	if err := h.postBlind(sbSeat, h.cfg.SmallBlind, actionlog.PostSB); err != nil {
		return err
	}
	if err := h.postBlind(bbSeat, h.cfg.BigBlind, actionlog.PostBB); err != nil {
		return err
	}
	return nil
}

func (h *Hand) postBlind(seatIdx int, blind money.Cents, eventType actionlog.EventType) error {
	p := h.players[seatIdx]
	amount := blind
	if amount > p.stack {
		amount = p.stack
	}
	p.stack -= amount
	p.currentBet += amount
	p.allIn = p.stack == 0
	if err := h.pot.Post(pot.Seat(seatIdx), amount); err != nil {
		return fmt.Errorf("hand: invariant violation posting blind: %w", err)
	}

	h.logEvent(actionlog.Record{
		Position:    p.position.String(),
		PlayerID:    seatIdx,
		HasPlayerID: true,
		Action:      eventType,
		AmountCents: amount,
		HasAmount:   true,
	})
	return nil
}

// dealHoleCards deals two passes of one card each, starting at the
// seat left of the dealer and wrapping around the table.
func (h *Hand) dealHoleCards() error {
	n := len(h.players)
	rotation := make([]int, n)
	for i := 0; i < n; i++ {
		rotation[i] = (h.cfg.DealerSeat + 1 + i) % n
	}

	for pass := 0; pass < 2; pass++ {
		for _, s := range rotation {
			cards, err := h.cfg.Deck.Draw(1)
			if err != nil {
				return fmt.Errorf("hand: invariant violation dealing hole cards: %w", err)
			}
			h.players[s].holeCards = append(h.players[s].holeCards, cards[0])
		}
	}

	for _, s := range rotation {
		p := h.players[s]
		h.logEvent(actionlog.Record{
			Position:    p.position.String(),
			PlayerID:    s,
			HasPlayerID: true,
			Action:      actionlog.DealHole,
			HoleCards:   cardStrings(p.holeCards),
		})
	}
	return nil
}

// openRound (re)initializes the per-street betting-round state. On
// PREFLOP the blinds are already-live bets: highest_bet starts at the
// big blind and the last raise increment is the big blind itself.
func (h *Hand) openRound() {
	h.round = rules.RoundState{
		SmallBlind:  h.cfg.SmallBlind,
		BigBlind:    h.cfg.BigBlind,
		PotTotal:    h.pot.Total(),
		RaisePolicy: h.cfg.RaisePolicy,
	}
	if h.phase == rules.Preflop {
		h.round.HighestBet = h.cfg.BigBlind
		h.round.LastRaiseIncrement = h.cfg.BigBlind
		if bbSeat, ok := h.seatForPosition(seat.BB); ok {
			h.lastAggressorSeat = bbSeat
			h.hasLastAggressor = true
		}
	} else {
		h.hasLastAggressor = false
		h.raisesThisStreet = 0
		for _, p := range h.players {
			p.currentBet = 0
		}
	}
	for _, p := range h.players {
		p.actedThisRound = false
	}
}

// advanceStreet deals the next street's community cards and reopens
// the betting round.
func (h *Hand) advanceStreet() {
	h.phase = rules.NextPhase(h.phase)
	n := rules.CommunityCardsDealt(h.phase)
	if n > 0 {
		cards, err := h.cfg.Deck.Draw(n)
		if err != nil {
			// Deck exhaustion here is an invariant violation; a correctly
			// configured 52-card source can never run out across one hand.
			h.logger.Error("deck exhausted dealing community cards", "error", err)
			return
		}
		h.board = append(h.board, cards...)
		h.logEvent(actionlog.Record{Action: actionlog.DealCommunity, CommunityCards: cardStrings(h.board)})
	}
	h.logEvent(actionlog.Record{Action: actionlog.PhaseAdvance, Detail: h.phase.String()})
	h.openRound()
}

func cardStrings(cards []card.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
