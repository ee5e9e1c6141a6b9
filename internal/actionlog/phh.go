package actionlog

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// phhHand is the PHH (Poker Hand History) TOML document shape, adapted
// from the teacher's hand-history encoder to this package's Record
// stream rather than a live table snapshot.
type phhHand struct {
	Variant           string `toml:"variant"`
	HandID            string `toml:"hand"`
	SeatCount         int    `toml:"seat_count"`
	Antes             []int  `toml:"antes"`
	BlindsOrStraddles []int  `toml:"blinds_or_straddles"`
	MinBet            int    `toml:"min_bet"`
	StartingStacks    []int  `toml:"starting_stacks"`
	FinishingStacks   []int  `toml:"finishing_stacks,omitempty"`
	Actions           []string `toml:"actions"`
}

// formatAction renders one Record as a PHH action line. ok is false for
// records that PHH represents structurally rather than as an action
// line (blind posts, deals, phase markers).
func formatAction(r Record) (line string, ok bool) {
	if !r.HasPlayerID {
		return "", false
	}
	player := fmt.Sprintf("p%d", r.PlayerID+1)
	switch r.Action {
	case ActionFold:
		return fmt.Sprintf("%s f", player), true
	case ActionCheck, ActionCall:
		return fmt.Sprintf("%s cc", player), true
	case ActionBet, ActionRaise:
		if !r.HasAmount || r.AmountCents <= 0 {
			return "", false
		}
		return fmt.Sprintf("%s cbr %d", player, int(r.AmountCents)), true
	default:
		return "", false
	}
}

// ExportPHHRecords writes records for a single hand as a PHH TOML
// document to w. This is one concrete persisted form of the Action Log
// Sink's structural event contract; the contract itself (Record/Sink)
// is unchanged by this export existing.
func ExportPHHRecords(w io.Writer, handID string, startingStacksCents []int, smallBlindCents, bigBlindCents int, records []Record) error {
	doc := phhHand{
		Variant:           "NT", // No-limit Texas Hold'em, PHH convention
		HandID:            handID,
		SeatCount:         len(startingStacksCents),
		Antes:             make([]int, len(startingStacksCents)),
		BlindsOrStraddles: blindsVector(len(startingStacksCents), smallBlindCents, bigBlindCents),
		MinBet:            bigBlindCents,
		StartingStacks:    startingStacksCents,
	}
	for _, r := range records {
		if line, ok := formatAction(r); ok {
			doc.Actions = append(doc.Actions, line)
		}
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(doc)
}

func blindsVector(seats int, sb, bb int) []int {
	v := make([]int, seats)
	if seats > 0 {
		v[0] = sb
	}
	if seats > 1 {
		v[1] = bb
	}
	return v
}

// ExportPHHToBytes is a convenience wrapper returning the encoded bytes.
func ExportPHHToBytes(handID string, startingStacksCents []int, smallBlindCents, bigBlindCents int, records []Record) ([]byte, error) {
	var buf strings.Builder
	if err := ExportPHHRecords(&buf, handID, startingStacksCents, smallBlindCents, bigBlindCents, records); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}
