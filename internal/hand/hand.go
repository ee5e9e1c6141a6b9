// Package hand implements the Hand State Machine: the per-hand
// orchestration of blinds, dealing, betting rounds, street advancement,
// and showdown. It is the only package that mutates player state;
// internal/rules and internal/pot stay pure and are driven from here.
package hand

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/holdem-engine/internal/actionlog"
	"github.com/lox/holdem-engine/internal/agent"
	"github.com/lox/holdem-engine/internal/card"
	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/money"
	"github.com/lox/holdem-engine/internal/pot"
	"github.com/lox/holdem-engine/internal/rules"
	"github.com/lox/holdem-engine/internal/seat"
)

// ErrInvalidAgentAction is a protocol violation: an agent returned an
// action or amount outside the valid set. It is always fatal.
var ErrInvalidAgentAction = errors.New("hand: agent returned an action outside the valid set")

// Config is everything needed to play one hand. The harness owns
// dealer rotation across hands; DealerSeat here is already the
// rotated value for this hand.
type Config struct {
	SessionID   string
	HandID      string // auto-generated via uuid if empty
	SmallBlind  money.Cents
	BigBlind    money.Cents
	Stacks      []money.Cents // per seat, seat 0..N-1
	DealerSeat  int
	Deck        deck.Source
	Agents      map[int]agent.Decider // seat -> decision source
	Sink        actionlog.Sink
	Logger      *log.Logger
	RaisePolicy rules.RaisePolicy
}

type playerState struct {
	seat           int
	stack          money.Cents
	currentBet     money.Cents
	folded         bool
	allIn          bool
	holeCards      []card.Card
	position       seat.Position
	actedThisRound bool
}

// Hand runs a single hand to completion.
type Hand struct {
	cfg         Config
	handID      string
	players     []*playerState
	positions   map[int]seat.Position
	pot         *pot.Manager
	phase       rules.Phase
	board       []card.Card
	round       rules.RoundState
	lastAggressorSeat int
	hasLastAggressor  bool
	raisesThisStreet  int
	steps       *actionlog.StepCounter
	logger      *log.Logger
}

// Result is the outcome of playing a hand to completion.
type Result struct {
	HandID        string
	FinalStacks   []money.Cents
	TotalPotCents money.Cents
}

// New validates cfg and builds a Hand ready to Play.
func New(cfg Config) (*Hand, error) {
	n := len(cfg.Stacks)
	if n < 2 || n > 10 {
		return nil, fmt.Errorf("hand: unsupported player count %d (must be 2-10)", n)
	}
	if cfg.DealerSeat < 0 || cfg.DealerSeat >= n {
		return nil, fmt.Errorf("hand: dealer seat %d out of range", cfg.DealerSeat)
	}
	if cfg.Deck == nil {
		return nil, errors.New("hand: Deck is required")
	}
	if cfg.Sink == nil {
		cfg.Sink = actionlog.NewMemorySink()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.HandID == "" {
		cfg.HandID = uuid.NewString()
	}

	positions, err := assignPositions(cfg.DealerSeat, n)
	if err != nil {
		return nil, err
	}

	seats := make([]pot.Seat, n)
	players := make([]*playerState, n)
	for i := 0; i < n; i++ {
		seats[i] = pot.Seat(i)
		players[i] = &playerState{seat: i, stack: cfg.Stacks[i], position: positions[i]}
	}

	h := &Hand{
		cfg:       cfg,
		handID:    cfg.HandID,
		players:   players,
		positions: positions,
		pot:       pot.New(seats),
		phase:     rules.Deal,
		steps:     actionlog.NewStepCounter(),
		logger:    cfg.Logger.With("hand_id", cfg.HandID),
	}
	return h, nil
}

// assignPositions maps each seat index to its named Position, derived
// from the postflop betting-order table: seat (dealer+1+i)%n takes
// postflopOrder[n][i]. This single formula covers heads-up (where the
// dealer is SB) and every other player count uniformly, because the
// postflop table always lists BUTTON last and dealer+n ≡ dealer (mod n).
func assignPositions(dealerSeat, n int) (map[int]seat.Position, error) {
	order, err := seat.Order(n, false)
	if err != nil {
		return nil, err
	}
	positions := make(map[int]seat.Position, n)
	for i, pos := range order {
		seatIdx := (dealerSeat + 1 + i) % n
		positions[seatIdx] = pos
	}
	return positions, nil
}

func (h *Hand) seatForPosition(p seat.Position) (int, bool) {
	for s, pos := range h.positions {
		if pos == p {
			return s, true
		}
	}
	return 0, false
}

// activeSeatCount returns the number of seats still in the hand
// (not folded).
func (h *Hand) activeSeatCount() int {
	n := 0
	for _, p := range h.players {
		if !p.folded {
			n++
		}
	}
	return n
}

func (h *Hand) logEvent(r actionlog.Record) {
	r.SessionID = h.cfg.SessionID
	r.HandID = h.handID
	r.StepNumber = h.steps.Next()
	r.Phase = h.phase
	if err := h.cfg.Sink.Append(r); err != nil {
		// Resource failure: logged, hand continues (§7).
		h.logger.Warn("action log sink write failed", "error", err)
	}
}
