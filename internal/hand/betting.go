package hand

import (
	"fmt"

	"github.com/lox/holdem-engine/internal/actionlog"
	"github.com/lox/holdem-engine/internal/agent"
	"github.com/lox/holdem-engine/internal/card"
	"github.com/lox/holdem-engine/internal/money"
	"github.com/lox/holdem-engine/internal/observation"
	"github.com/lox/holdem-engine/internal/pot"
	"github.com/lox/holdem-engine/internal/rules"
	"github.com/lox/holdem-engine/internal/seat"
)

// runBettingRound drives the current street's action queue to
// completion: pop the front seat, get and apply its decision, and
// rebuild the queue starting left of the actor whenever their action
// raises highest_bet. A short all-in rebuilds the queue like a full
// raise (already-acted players must call or fold) but does not reopen
// the action: last_raise_increment and last_aggressor only move on a
// full raise.
func (h *Hand) runBettingRound() error {
	queue := h.buildInitialQueue()
	// callOnly marks seats that had already acted when a short all-in
	// raised highest_bet: they may call or fold, but not raise again.
	callOnly := map[int]bool{}

	for len(queue) > 0 {
		seatIdx := queue[0]
		queue = queue[1:]

		p := h.players[seatIdx]
		if p.folded || p.allIn {
			continue
		}

		view := rules.PlayerView{Stack: p.stack, CurrentBet: p.currentBet, Folded: p.folded, AllIn: p.allIn}
		valid := rules.ValidActionsFor(h.round, view)
		if len(valid.Actions) == 0 {
			continue
		}
		if callOnly[seatIdx] {
			// ValidActionsFor always lists Fold and Check/Call first.
			valid = rules.ValidActions{Actions: valid.Actions[:2]}
		}

		decision, err := h.decideFor(seatIdx, valid)
		if err != nil {
			return err
		}
		if !valid.Contains(decision.Action) {
			return fmt.Errorf("%w: seat %d chose %s", ErrInvalidAgentAction, seatIdx, decision.Action)
		}
		if decision.Action == rules.Raise || decision.Action == rules.Bet {
			if !amountIsValid(decision.Amount, valid.RaiseAmounts) {
				return fmt.Errorf("%w: seat %d raised to a non-generated amount %s", ErrInvalidAgentAction, seatIdx, money.Fmt(decision.Amount))
			}
		}

		prevHighestBet := h.round.HighestBet
		applied, err := rules.ApplyAction(h.round, view, rules.Decision{Action: decision.Action, Amount: decision.Amount})
		if err != nil {
			return fmt.Errorf("hand: protocol violation applying action for seat %d: %w", seatIdx, err)
		}

		h.applyResult(seatIdx, applied)
		h.logAction(seatIdx, applied)

		isRaisingAction := applied.Action == rules.Raise || applied.Action == rules.Bet || applied.Action == rules.AllIn
		if isRaisingAction && applied.ReopensAction {
			h.raisesThisStreet++
			h.lastAggressorSeat = seatIdx
			h.hasLastAggressor = true
		}
		// Any action that raises highest_bet, full or short, requires
		// already-acted players to face the new amount (call or fold); a
		// short all-in just leaves last_raise_increment/last_aggressor
		// untouched, so a later full raise still only needs to clear the
		// pre-short-all-in increment.
		if isRaisingAction && h.round.HighestBet > prevHighestBet {
			pending := map[int]bool{}
			for _, s := range queue {
				pending[s] = true
			}
			queue = h.buildQueueAfterRaise(seatIdx)
			for _, s := range queue {
				callOnly[s] = !applied.ReopensAction && (callOnly[s] || !pending[s])
			}
		}

		if h.activeSeatCount() <= 1 {
			return nil
		}
	}
	return nil
}

// buildInitialQueue returns the seats due to act this street, in
// betting order, excluding folded and all-in seats.
func (h *Hand) buildInitialQueue() []int {
	order, err := h.actingOrderSeats()
	if err != nil {
		h.logger.Error("invariant violation computing acting order", "error", err)
		return nil
	}
	var queue []int
	for _, s := range order {
		p := h.players[s]
		if !p.folded && !p.allIn {
			queue = append(queue, s)
		}
	}
	return queue
}

// buildQueueAfterRaise rebuilds the queue starting immediately left of
// the raiser, in betting order, skipping folded/all-in seats and the
// raiser itself.
func (h *Hand) buildQueueAfterRaise(raiserSeat int) []int {
	order, err := h.actingOrderSeats()
	if err != nil {
		h.logger.Error("invariant violation computing acting order", "error", err)
		return nil
	}
	idx := -1
	for i, s := range order {
		if s == raiserSeat {
			idx = i
			break
		}
	}
	var queue []int
	if idx == -1 {
		return nil
	}
	n := len(order)
	for i := 1; i < n; i++ {
		s := order[(idx+i)%n]
		p := h.players[s]
		if !p.folded && !p.allIn {
			queue = append(queue, s)
		}
	}
	return queue
}

// actingOrderSeats returns this street's seats in first-to-act ->
// last-to-act order, derived from the position assignment computed at
// hand construction.
func (h *Hand) actingOrderSeats() ([]int, error) {
	positions, err := seat.Order(len(h.players), h.phase == rules.Preflop)
	if err != nil {
		return nil, err
	}
	seats := make([]int, 0, len(positions))
	for _, pos := range positions {
		s, ok := h.seatForPosition(pos)
		if !ok {
			continue
		}
		seats = append(seats, s)
	}
	return seats, nil
}

func (h *Hand) applyResult(seatIdx int, applied rules.Applied) {
	p := h.players[seatIdx]
	p.stack -= applied.Committed
	p.currentBet += applied.Committed
	p.actedThisRound = true
	if applied.WentAllIn {
		p.allIn = true
	}
	if applied.Action == rules.Fold {
		p.folded = true
		if err := h.pot.MarkFolded(pot.Seat(seatIdx)); err != nil {
			h.logger.Error("invariant violation marking seat folded", "error", err)
		}
	}
	if applied.Committed > 0 {
		if err := h.pot.Post(pot.Seat(seatIdx), applied.Committed); err != nil {
			h.logger.Error("invariant violation posting action", "error", err)
		}
	}
	h.round = applied.NewRound
}

func (h *Hand) logAction(seatIdx int, applied rules.Applied) {
	p := h.players[seatIdx]
	eventType := actionEventType(applied.Action)
	toCall := rules.AmountToCall(h.round, rules.PlayerView{Stack: p.stack, CurrentBet: p.currentBet, Folded: p.folded, AllIn: p.allIn})
	var potOdds float64
	if toCall > 0 {
		potOdds = float64(toCall) / float64(h.pot.Total()+toCall)
	}
	h.logEvent(actionlog.Record{
		Position:     p.position.String(),
		PlayerID:     seatIdx,
		HasPlayerID:  true,
		Action:       eventType,
		AmountCents:  applied.Committed,
		HasAmount:    applied.Committed > 0,
		AmountToCall: toCall,
		PotOdds:      potOdds,
		HighestBet:   h.round.HighestBet,
	})
}

func actionEventType(a rules.Action) actionlog.EventType {
	switch a {
	case rules.Fold:
		return actionlog.ActionFold
	case rules.Check:
		return actionlog.ActionCheck
	case rules.Call:
		return actionlog.ActionCall
	case rules.Bet:
		return actionlog.ActionBet
	default:
		return actionlog.ActionRaise
	}
}

func amountIsValid(amount money.Cents, allowed []money.Cents) bool {
	for _, a := range allowed {
		if a == amount {
			return true
		}
	}
	return false
}

// decideFor builds the leakage-safe observation for seatIdx and
// consults its configured agent. A missing agent is a fatal
// configuration error: every seat must have a decision source.
func (h *Hand) decideFor(seatIdx int, valid rules.ValidActions) (agent.Decision, error) {
	dec, ok := h.cfg.Agents[seatIdx]
	if !ok {
		return agent.Decision{}, fmt.Errorf("hand: no agent configured for seat %d", seatIdx)
	}

	snapshot := h.buildSnapshot(seatIdx)
	obs, err := observation.Build(snapshot)
	if err != nil {
		return agent.Decision{}, fmt.Errorf("hand: invariant violation building observation: %w", err)
	}

	ctx := agent.Context{
		HoleCards: cardStrings(h.players[seatIdx].holeCards),
		Board:     cardStrings(h.board),
	}
	decision, err := dec.Decide(obs, valid, ctx)
	if err != nil {
		return agent.Decision{}, fmt.Errorf("hand: protocol violation: agent for seat %d failed: %w", seatIdx, err)
	}
	return decision, nil
}

func (h *Hand) buildSnapshot(heroSeat int) observation.Snapshot {
	players := make([]observation.PlayerSnapshot, len(h.players))
	for i, p := range h.players {
		var hole []card.Card
		if i == heroSeat {
			hole = p.holeCards
		}
		players[i] = observation.PlayerSnapshot{
			SeatID:          i,
			Position:        p.position,
			HasPosition:     true,
			Stack:           p.stack,
			CurrentBet:      p.currentBet,
			Folded:          p.folded,
			AllIn:           p.allIn,
			HoleCards:       hole,
			ActedThisStreet: p.actedThisRound,
		}
	}
	return observation.Snapshot{
		Phase:              h.phase,
		Players:            players,
		HeroSeatID:         heroSeat,
		PotCents:           h.pot.Total(),
		HighestBet:         h.round.HighestBet,
		LastRaiseIncrement: h.round.LastRaiseIncrement,
		LastAggressorSeat:  h.lastAggressorSeat,
		HasLastAggressor:   h.hasLastAggressor,
		RaisesThisStreet:   h.raisesThisStreet,
		CommunityCards:     h.board,
		BigBlindCents:      h.cfg.BigBlind,
	}
}
