package scriptfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/money"
	"github.com/lox/holdem-engine/internal/rules"
	"github.com/lox/holdem-engine/internal/scriptfile"
)

const headsUpRaiseFold = `
hand {
  small_blind  = "0.50"
  big_blind    = "1.00"
  start_stacks = ["100.00", "100.00"]
  dealer_index = 0
}

deal {
  hole_cards = [["Ah", "Ad"], ["2c", "7s"]]
  board      = ["Qh", "Jd", "3c", "9h", "5s"]
}

preflop {
  seat "0" {
    action { type = "raise" amount = "3.00" }
  }
  seat "1" {
    action { type = "fold" }
  }
}
`

func TestLoadNormalizesAmountsAndCards(t *testing.T) {
	s, err := scriptfile.Parse([]byte(headsUpRaiseFold), "headsUpRaiseFold.hcl")
	require.NoError(t, err)

	assert.Equal(t, money.Cents(50), s.SmallBlind)
	assert.Equal(t, money.Cents(100), s.BigBlind)
	assert.Equal(t, []money.Cents{10000, 10000}, s.StartStacks)
	assert.Equal(t, 0, s.DealerIndex)
	assert.Equal(t, "Ah", s.HoleCards[0][0].String())
	assert.Equal(t, "Ad", s.HoleCards[0][1].String())
	assert.Equal(t, "5s", s.Board[4].String())
}

func TestLoadConcatenatesActionsInPhaseOrder(t *testing.T) {
	s, err := scriptfile.Parse([]byte(headsUpRaiseFold), "headsUpRaiseFold.hcl")
	require.NoError(t, err)

	require.Len(t, s.ActionsBySeat[0], 1)
	assert.Equal(t, rules.Raise, s.ActionsBySeat[0][0].Action)
	assert.Equal(t, money.Cents(300), s.ActionsBySeat[0][0].Amount)

	require.Len(t, s.ActionsBySeat[1], 1)
	assert.Equal(t, rules.Fold, s.ActionsBySeat[1][0].Action)
}

func TestDeckOrdersHoleCardsThenBoard(t *testing.T) {
	s, err := scriptfile.Parse([]byte(headsUpRaiseFold), "headsUpRaiseFold.hcl")
	require.NoError(t, err)

	d := s.Deck()
	assert.Equal(t, 9, d.Remaining()) // 2 players * 2 hole cards + 5 board cards

	cards, err := d.Draw(4)
	require.NoError(t, err)
	// Heads-up, dealer seat 0: rotation starts at seat 1, two passes.
	got := make([]string, len(cards))
	for i, c := range cards {
		got[i] = c.String()
	}
	assert.Equal(t, []string{"2c", "Ah", "7s", "Ad"}, got)

	board, err := d.Draw(5)
	require.NoError(t, err)
	assert.Equal(t, "Qh", board[0].String())
	assert.Equal(t, "5s", board[4].String())
}

func TestLoadRejectsMismatchedHoleCardCount(t *testing.T) {
	bad := `
hand {
  small_blind  = "0.50"
  big_blind    = "1.00"
  start_stacks = ["100.00", "100.00", "100.00"]
  dealer_index = 0
}

deal {
  hole_cards = [["Ah", "Ad"], ["2c", "7s"]]
  board      = ["Qh", "Jd", "3c", "9h", "5s"]
}
`
	_, err := scriptfile.Parse([]byte(bad), "bad.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hole_cards")
}

func TestLoadRejectsBoardWithWrongLength(t *testing.T) {
	bad := `
hand {
  small_blind  = "0.50"
  big_blind    = "1.00"
  start_stacks = ["100.00", "100.00"]
  dealer_index = 0
}

deal {
  hole_cards = [["Ah", "Ad"], ["2c", "7s"]]
  board      = ["Qh", "Jd", "3c"]
}
`
	_, err := scriptfile.Parse([]byte(bad), "bad.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "board")
}

func TestLoadRejectsRaiseWithoutAmount(t *testing.T) {
	bad := `
hand {
  small_blind  = "0.50"
  big_blind    = "1.00"
  start_stacks = ["100.00", "100.00"]
  dealer_index = 0
}

deal {
  hole_cards = [["Ah", "Ad"], ["2c", "7s"]]
  board      = ["Qh", "Jd", "3c", "9h", "5s"]
}

preflop {
  seat "0" {
    action { type = "raise" }
  }
}
`
	_, err := scriptfile.Parse([]byte(bad), "bad.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires an amount")
}

func TestAgentsBuildsOneScriptedAgentPerSeat(t *testing.T) {
	s, err := scriptfile.Parse([]byte(headsUpRaiseFold), "headsUpRaiseFold.hcl")
	require.NoError(t, err)

	agents := s.Agents()
	assert.Len(t, agents, 2)
	assert.Contains(t, agents, 0)
	assert.Contains(t, agents, 1)
}
