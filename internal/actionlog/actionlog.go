// Package actionlog implements the Action Log Sink: an append-only
// structural event contract with strictly increasing per-hand step
// numbers. The engine only depends on the Sink interface; the in-memory
// sink and FanOut implement it, and PHH export (phh.go) serialises
// already-recorded records after the hand.
package actionlog

import (
	"fmt"

	"github.com/lox/holdem-engine/internal/money"
	"github.com/lox/holdem-engine/internal/rules"
)

// EventType names the kind of structural event recorded.
type EventType string

const (
	HandStart      EventType = "HAND_START"
	PostSB         EventType = "POST_SB"
	PostBB         EventType = "POST_BB"
	DealHole       EventType = "DEAL_HOLE"
	DealCommunity  EventType = "DEAL_COMMUNITY"
	ActionFold     EventType = "FOLD"
	ActionCheck    EventType = "CHECK"
	ActionCall     EventType = "CALL"
	ActionBet      EventType = "BET"
	ActionRaise    EventType = "RAISE"
	PhaseAdvance   EventType = "PHASE_ADVANCE"
	WinPot         EventType = "WIN_POT"
)

// Record is one append-only log entry. Fields not applicable to a given
// EventType are left at their zero value.
type Record struct {
	SessionID        string
	HandID           string
	StepNumber       int // strictly increasing within a hand, starting at 1
	Phase            rules.Phase
	Position         string
	PlayerID         int
	HasPlayerID      bool
	Action           EventType
	AmountCents      money.Cents
	HasAmount        bool
	HoleCards        []string
	CommunityCards   []string
	Rank5            int
	HasRank5         bool
	HandClass        string
	AmountToCall     money.Cents
	PotOdds          float64
	HighestBet       money.Cents
	Detail           string
}

// Sink receives Records in order. Implementations must not reorder or
// drop records; a write failure is a resource failure (§7): it is
// reported to the caller but must not abort the hand.
type Sink interface {
	Append(r Record) error
}

// MemorySink accumulates records in memory, the default sink used by
// the scripted harness and by tests.
type MemorySink struct {
	records []Record
}

// NewMemorySink returns an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Append implements Sink.
func (s *MemorySink) Append(r Record) error {
	s.records = append(s.records, r)
	return nil
}

// Records returns all recorded events in order.
func (s *MemorySink) Records() []Record {
	return s.records
}

// StepCounter hands out strictly increasing per-hand step numbers
// starting at 1.
type StepCounter struct {
	next int
}

// NewStepCounter returns a counter whose first Next() call yields 1.
func NewStepCounter() *StepCounter {
	return &StepCounter{next: 1}
}

// Next returns the next step number and advances the counter.
func (c *StepCounter) Next() int {
	n := c.next
	c.next++
	return n
}

// FanOut broadcasts every Append to all of the given sinks, returning
// the first error encountered (continuing to write to the rest).
type FanOut struct {
	Sinks []Sink
}

// Append implements Sink.
func (f FanOut) Append(r Record) error {
	var firstErr error
	for _, s := range f.Sinks {
		if err := s.Append(r); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("actionlog: sink write failed: %w", err)
		}
	}
	return firstErr
}
