// Package scriptfile implements the HCL script-file format (§6.1): a
// deterministic, fully pre-recorded hand definition used for replaying
// golden scenarios and regression fixtures. A script pins the deck, the
// blinds, the starting stacks, and every player's actions in advance;
// internal/hand never has to be told it is replaying one, it simply
// talks to a deck.Scripted source and agent.ScriptedAgents built here.
package scriptfile

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-engine/internal/agent"
	"github.com/lox/holdem-engine/internal/card"
	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/money"
	"github.com/lox/holdem-engine/internal/rules"
)

// document is the raw HCL decode target. Field/block shapes follow the
// same gohcl struct-tag conventions as the teacher's server config.
type document struct {
	Hand    handBlock   `hcl:"hand,block"`
	Deal    dealBlock   `hcl:"deal,block"`
	// Pointer block fields are optional in gohcl: a script that folds
	// preflop never needs a flop/turn/river block at all.
	Preflop *phaseBlock `hcl:"preflop,block"`
	Flop    *phaseBlock `hcl:"flop,block"`
	Turn    *phaseBlock `hcl:"turn,block"`
	River   *phaseBlock `hcl:"river,block"`
}

type handBlock struct {
	SmallBlind  string   `hcl:"small_blind"`
	BigBlind    string   `hcl:"big_blind"`
	StartStacks []string `hcl:"start_stacks"`
	DealerIndex int      `hcl:"dealer_index"`
}

type dealBlock struct {
	HoleCards [][]string `hcl:"hole_cards"`
	Board     []string   `hcl:"board"`
}

type phaseBlock struct {
	Seats []seatBlock `hcl:"seat,block"`
}

type seatBlock struct {
	Index   string        `hcl:"index,label"`
	Actions []actionBlock `hcl:"action,block"`
}

type actionBlock struct {
	Type   string  `hcl:"type"`
	Amount *string `hcl:"amount,optional"`
}

var phaseOrder = []string{"preflop", "flop", "turn", "river"}

// Script is the normalized, validated form of a script file, ready to
// drive internal/hand: parsed amounts, parsed cards, and one flat
// per-seat action list concatenated across phases in table order
// (preflop, flop, turn, river), matching the deal order the scripted
// deck replays in.
type Script struct {
	SmallBlind    money.Cents
	BigBlind      money.Cents
	StartStacks   []money.Cents
	DealerIndex   int
	HoleCards     [][2]card.Card
	Board         [5]card.Card
	ActionsBySeat map[int][]agent.ScriptedAction
}

// Load parses and validates the HCL script at path.
func Load(path string) (*Script, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("scriptfile: parse %s: %s", path, diags.Error())
	}
	return decode(file.Body)
}

// Parse decodes an HCL document already held in memory, labeled with
// filename for diagnostics.
func Parse(src []byte, filename string) (*Script, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("scriptfile: parse %s: %s", filename, diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Script, error) {
	var doc document
	if diags := gohcl.DecodeBody(body, nil, &doc); diags.HasErrors() {
		return nil, fmt.Errorf("scriptfile: decode: %s", diags.Error())
	}
	return normalize(&doc)
}

// normalize validates the required-field and length invariants
// script_loader.py enforces (all fields present, hole-cards/start-stacks
// length match, board length 5) and converts every field to engine
// types, failing on the first bad value.
func normalize(doc *document) (*Script, error) {
	n := len(doc.Hand.StartStacks)
	if n == 0 {
		return nil, fmt.Errorf("scriptfile: start_stacks must not be empty")
	}
	if len(doc.Deal.HoleCards) != n {
		return nil, fmt.Errorf("scriptfile: hole_cards has %d entries, want %d (one per seat)", len(doc.Deal.HoleCards), n)
	}
	if len(doc.Deal.Board) != 5 {
		return nil, fmt.Errorf("scriptfile: board must have exactly 5 cards, got %d", len(doc.Deal.Board))
	}
	if doc.Hand.DealerIndex < 0 || doc.Hand.DealerIndex >= n {
		return nil, fmt.Errorf("scriptfile: dealer_index %d out of range for %d seats", doc.Hand.DealerIndex, n)
	}

	sb, err := money.ToCents(doc.Hand.SmallBlind)
	if err != nil {
		return nil, fmt.Errorf("scriptfile: small_blind: %w", err)
	}
	bb, err := money.ToCents(doc.Hand.BigBlind)
	if err != nil {
		return nil, fmt.Errorf("scriptfile: big_blind: %w", err)
	}

	stacks := make([]money.Cents, n)
	for i, s := range doc.Hand.StartStacks {
		c, err := money.ToCents(s)
		if err != nil {
			return nil, fmt.Errorf("scriptfile: start_stacks[%d]: %w", i, err)
		}
		stacks[i] = c
	}

	holeCards := make([][2]card.Card, n)
	for i, pair := range doc.Deal.HoleCards {
		if len(pair) != 2 {
			return nil, fmt.Errorf("scriptfile: hole_cards[%d] must have exactly 2 cards, got %d", i, len(pair))
		}
		cards, err := card.ParseAll(pair)
		if err != nil {
			return nil, fmt.Errorf("scriptfile: hole_cards[%d]: %w", i, err)
		}
		holeCards[i] = [2]card.Card{cards[0], cards[1]}
	}

	boardCards, err := card.ParseAll(doc.Deal.Board)
	if err != nil {
		return nil, fmt.Errorf("scriptfile: board: %w", err)
	}
	var board [5]card.Card
	copy(board[:], boardCards)

	actionsBySeat, err := actionsBySeat(doc, n)
	if err != nil {
		return nil, err
	}

	return &Script{
		SmallBlind:    sb,
		BigBlind:      bb,
		StartStacks:   stacks,
		DealerIndex:   doc.Hand.DealerIndex,
		HoleCards:     holeCards,
		Board:         board,
		ActionsBySeat: actionsBySeat,
	}, nil
}

// actionsBySeat concatenates each phase's per-seat action lists, in
// preflop/flop/turn/river order, mirroring
// get_script_actions_by_seat's phase-ordered extend.
func actionsBySeat(doc *document, seatCount int) (map[int][]agent.ScriptedAction, error) {
	phases := []*phaseBlock{doc.Preflop, doc.Flop, doc.Turn, doc.River}
	out := make(map[int][]agent.ScriptedAction)

	for pi, phase := range phases {
		if phase == nil {
			continue
		}
		for _, sb := range phase.Seats {
			seatIdx, err := strconv.Atoi(sb.Index)
			if err != nil {
				return nil, fmt.Errorf("scriptfile: %s seat label %q is not an integer", phaseOrder[pi], sb.Index)
			}
			if seatIdx < 0 || seatIdx >= seatCount {
				return nil, fmt.Errorf("scriptfile: %s seat %d out of range for %d seats", phaseOrder[pi], seatIdx, seatCount)
			}
			for ai, a := range sb.Actions {
				action, err := parseActionType(a.Type)
				if err != nil {
					return nil, fmt.Errorf("scriptfile: %s seat %d action %d: %w", phaseOrder[pi], seatIdx, ai, err)
				}
				var amount money.Cents
				if action == rules.Raise {
					if a.Amount == nil {
						return nil, fmt.Errorf("scriptfile: %s seat %d action %d: %s requires an amount", phaseOrder[pi], seatIdx, ai, a.Type)
					}
					amount, err = money.ToCents(*a.Amount)
					if err != nil {
						return nil, fmt.Errorf("scriptfile: %s seat %d action %d amount: %w", phaseOrder[pi], seatIdx, ai, err)
					}
				}
				out[seatIdx] = append(out[seatIdx], agent.ScriptedAction{Action: action, Amount: amount})
			}
		}
	}
	return out, nil
}

// parseActionType maps a script's action-type string to the engine's
// Action enum. "bet" is an alias for "raise": the Rules Engine applies
// both identically via the same raise path, so both map to rules.Raise.
func parseActionType(s string) (rules.Action, error) {
	switch s {
	case "fold":
		return rules.Fold, nil
	case "check":
		return rules.Check, nil
	case "call":
		return rules.Call, nil
	case "bet", "raise":
		return rules.Raise, nil
	default:
		return 0, fmt.Errorf("unknown action type %q", s)
	}
}

// Agents builds one ScriptedAgent per seat from the script, for seats
// with no recorded actions an empty (always-exhausted) agent is still
// returned so a misconfigured hand fails fast rather than silently
// falling through to a missing-agent error deeper in the engine.
func (s *Script) Agents() map[int]agent.Decider {
	out := make(map[int]agent.Decider, len(s.StartStacks))
	for i := range s.StartStacks {
		out[i] = agent.NewScriptedAgent(s.ActionsBySeat[i])
	}
	return out
}

// Deck builds the fixed card sequence the engine will draw in, per
// §6.3: two hole-card passes starting left of the dealer, then the
// flop (3), turn (1), and river (1).
func (s *Script) Deck() deck.Source {
	n := len(s.StartStacks)
	rotation := make([]int, n)
	for i := 0; i < n; i++ {
		rotation[i] = (s.DealerIndex + 1 + i) % n
	}

	seq := make([]card.Card, 0, 2*n+5)
	for pass := 0; pass < 2; pass++ {
		for _, seatIdx := range rotation {
			seq = append(seq, s.HoleCards[seatIdx][pass])
		}
	}
	seq = append(seq, s.Board[:]...)
	return deck.NewScripted(seq)
}
