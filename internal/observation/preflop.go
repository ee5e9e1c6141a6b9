package observation

import (
	"sort"

	"github.com/lox/holdem-engine/internal/card"
)

var chenBase = map[card.Rank]float64{
	card.Ace: 10, card.King: 8, card.Queen: 7, card.Jack: 6, card.Ten: 5,
	card.Nine: 4.5, card.Eight: 4, card.Seven: 3.5, card.Six: 3,
	card.Five: 2.5, card.Four: 2, card.Three: 1.5, card.Two: 1,
}

// ChenScore implements the standard Chen formula over high/low rank:
// base value on the high card, doubled (floor 5) for pairs, +2 for
// suited, gap adjustments, floored at 0.5.
func ChenScore(high, low card.Rank, isPair, isSuited bool) float64 {
	score := chenBase[high]
	if isPair {
		score = score * 2
		if score < 5 {
			score = 5
		}
	}
	if isSuited {
		score += 2
	}

	gap := int(high) - int(low)
	if isPair {
		gap = 0
	}
	switch {
	case isPair, gap == 0:
		// no gap adjustment
	case gap == 1:
		score += 1
	case gap == 2:
		score += 0.5
	default:
		score -= float64(gap - 2)
	}

	if score < 0.5 {
		score = 0.5
	}
	return score
}

// HandClass renders the standard 2-character-plus-suitedness starting
// hand label: "AKs", "72o", or "77" for pairs.
func HandClass(high, low card.Rank, isPair, isSuited bool) string {
	if isPair {
		return high.String() + low.String()
	}
	suited := "o"
	if isSuited {
		suited = "s"
	}
	return high.String() + low.String() + suited
}

// handClassIndex and handClassOrder together form the 169-combo table:
// every pair, suited, and offsuit starting hand, ranked by Chen score
// (ties broken by high rank then low rank then suited-before-offsuit)
// so PreflopPercentile is a closed-form lookup rather than a
// Monte-Carlo-derived table or a hashed string.
var handClassOrder []string
var handClassIndex map[string]int
var handClassPercentile map[string]float64

func init() {
	ranks := []card.Rank{card.Ace, card.King, card.Queen, card.Jack, card.Ten,
		card.Nine, card.Eight, card.Seven, card.Six, card.Five, card.Four, card.Three, card.Two}

	type entry struct {
		class string
		score float64
		high  card.Rank
		low   card.Rank
		kind  int // 0=pair, 1=suited, 2=offsuit
	}
	var entries []entry

	for _, r := range ranks {
		entries = append(entries, entry{class: HandClass(r, r, true, false), score: ChenScore(r, r, true, false), high: r, low: r, kind: 0})
	}
	for i, hi := range ranks {
		for _, lo := range ranks[i+1:] {
			entries = append(entries, entry{class: HandClass(hi, lo, false, true), score: ChenScore(hi, lo, false, true), high: hi, low: lo, kind: 1})
			entries = append(entries, entry{class: HandClass(hi, lo, false, false), score: ChenScore(hi, lo, false, false), high: hi, low: lo, kind: 2})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		if entries[i].high != entries[j].high {
			return entries[i].high > entries[j].high
		}
		if entries[i].low != entries[j].low {
			return entries[i].low > entries[j].low
		}
		return entries[i].kind < entries[j].kind
	})

	handClassIndex = make(map[string]int, len(entries))
	handClassPercentile = make(map[string]float64, len(entries))
	handClassOrder = make([]string, len(entries))
	n := len(entries)
	for i, e := range entries {
		handClassOrder[i] = e.class
		handClassIndex[e.class] = i + 1 // 0 is reserved for "no hole cards"
		// rank 0 (strongest) -> percentile 1.0, weakest -> 0.
		handClassPercentile[e.class] = 1 - float64(i)/float64(n-1)
	}
}

// PreflopPercentile returns class's strength percentile in [0,1] within
// the full 169-combo starting-hand table, 1.0 being the strongest
// (pocket aces). Unknown classes (including "XX") return 0.
func PreflopPercentile(class string) float64 {
	return handClassPercentile[class]
}
