// Package seat implements the Betting Order component: static
// position-sequence tables for 2-10 players, and queries against them.
package seat

import "fmt"

// Position is a seat's named position relative to the button.
type Position int

const (
	SB Position = iota
	BB
	UTG
	UTG1
	UTG2
	MP
	LJ
	HJ
	CO
	Button
)

func (p Position) String() string {
	switch p {
	case SB:
		return "SB"
	case BB:
		return "BB"
	case UTG:
		return "UTG"
	case UTG1:
		return "UTG1"
	case UTG2:
		return "UTG2"
	case MP:
		return "MP"
	case LJ:
		return "LJ"
	case HJ:
		return "HJ"
	case CO:
		return "CO"
	case Button:
		return "BUTTON"
	default:
		return "UNKNOWN"
	}
}

// preflopOrder is first-to-act -> last-to-act preflop, keyed by player count.
var preflopOrder = map[int][]Position{
	2:  {SB, BB},
	3:  {Button, SB, BB},
	4:  {UTG, Button, SB, BB},
	5:  {UTG, CO, Button, SB, BB},
	6:  {UTG, HJ, CO, Button, SB, BB},
	7:  {UTG, MP, HJ, CO, Button, SB, BB},
	8:  {UTG, UTG1, MP, HJ, CO, Button, SB, BB},
	9:  {UTG, UTG1, UTG2, MP, HJ, CO, Button, SB, BB},
	10: {UTG, UTG1, UTG2, MP, LJ, HJ, CO, Button, SB, BB},
}

// postflopOrder is first-to-act -> last-to-act on the flop/turn/river.
var postflopOrder = map[int][]Position{
	2:  {BB, SB}, // heads-up: SB holds the button and acts last postflop
	3:  {SB, BB, Button},
	4:  {SB, BB, UTG, Button},
	5:  {SB, BB, UTG, CO, Button},
	6:  {SB, BB, UTG, HJ, CO, Button},
	7:  {SB, BB, UTG, MP, HJ, CO, Button},
	8:  {SB, BB, UTG, UTG1, MP, HJ, CO, Button},
	9:  {SB, BB, UTG, UTG1, UTG2, MP, HJ, CO, Button},
	10: {SB, BB, UTG, UTG1, UTG2, MP, LJ, HJ, CO, Button},
}

// Order returns the betting order (first to act -> last to act) for the
// given player count and street. isPreflop selects between the two tables.
func Order(playerCount int, isPreflop bool) ([]Position, error) {
	table := postflopOrder
	if isPreflop {
		table = preflopOrder
	}
	order, ok := table[playerCount]
	if !ok {
		return nil, fmt.Errorf("seat: unsupported player count %d (must be 2-10)", playerCount)
	}
	out := make([]Position, len(order))
	copy(out, order)
	return out, nil
}

// FirstToAct returns the first position to act for playerCount/isPreflop.
func FirstToAct(playerCount int, isPreflop bool) (Position, error) {
	order, err := Order(playerCount, isPreflop)
	if err != nil {
		return 0, err
	}
	return order[0], nil
}

// LastToAct returns the last position to act for playerCount/isPreflop.
func LastToAct(playerCount int, isPreflop bool) (Position, error) {
	order, err := Order(playerCount, isPreflop)
	if err != nil {
		return 0, err
	}
	return order[len(order)-1], nil
}

// NextAfter returns the position that acts after current. If wrap is
// true, acting after the last position wraps to the first; if false,
// the second return value is false once current is last to act. The
// second return value is also false if current is not present in the
// order for this player count/street.
func NextAfter(playerCount int, isPreflop bool, current Position, wrap bool) (Position, bool, error) {
	order, err := Order(playerCount, isPreflop)
	if err != nil {
		return 0, false, err
	}
	idx := -1
	for i, p := range order {
		if p == current {
			idx = i
			break
		}
	}
	if idx == -1 {
		return 0, false, nil
	}
	if idx == len(order)-1 {
		if !wrap {
			return 0, false, nil
		}
		return order[0], true, nil
	}
	return order[idx+1], true, nil
}
