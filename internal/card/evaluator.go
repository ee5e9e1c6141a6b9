package card

import (
	"math/bits"
	"sort"
)

// handCategory orders the nine standard hand categories, high-card
// weakest. This mirrors the bit-layout idea used by the teacher's
// poker.HandRank (type in the high bits, tiebreakers packed below it)
// but is expressed as a single packed uint32 built from a category and
// up to five descending tiebreaker ranks.
type handCategory uint32

const (
	catHighCard handCategory = iota
	catPair
	catTwoPair
	catTrips
	catStraight
	catFlush
	catFullHouse
	catQuads
	catStraightFlush
)

// pack encodes a category plus up to five 4-bit tiebreaker ranks (most
// to least significant) into a single comparable uint32, higher is
// stronger. This is the teacher's poker.HandRank bit-layout convention.
func pack(cat handCategory, tiebreak ...Rank) uint32 {
	v := uint32(cat) << 28
	shift := 24
	for _, r := range tiebreak {
		v |= uint32(r) << shift
		shift -= 4
	}
	return v
}

// bestHandRank returns the strongest 5-card hand rank contained in the
// given 5-7 cards, using the higher-is-better packed encoding.
func bestHandRank(cards []Card) uint32 {
	rankCounts := map[Rank]int{}
	suitCounts := map[Suit][]Card{}
	var rankBitmap uint16
	for _, c := range cards {
		rankCounts[c.Rank]++
		suitCounts[c.Suit] = append(suitCounts[c.Suit], c)
		rankBitmap |= 1 << uint(c.Rank)
	}

	// Flush / straight flush: check every suit with >=5 cards.
	best := uint32(0)
	for _, suited := range suitCounts {
		if len(suited) < 5 {
			continue
		}
		var suitBitmap uint16
		for _, c := range suited {
			suitBitmap |= 1 << uint(c.Rank)
		}
		if high := straightHigh(suitBitmap); high != 0 {
			if r := pack(catStraightFlush, high); r > best {
				best = r
			}
			continue
		}
		ranks := descendingRanks(suited)
		if r := pack(catFlush, ranks[:5]...); r > best {
			best = r
		}
	}

	// Quads / full house / trips / two pair / pair / high card by count.
	var quads, trips, pairs []Rank
	for r := Ace; r >= Two; r-- {
		switch rankCounts[r] {
		case 4:
			quads = append(quads, r)
		case 3:
			trips = append(trips, r)
		case 2:
			pairs = append(pairs, r)
		}
	}
	sort.Sort(sort.Reverse(rankSlice(quads)))
	sort.Sort(sort.Reverse(rankSlice(trips)))
	sort.Sort(sort.Reverse(rankSlice(pairs)))

	if len(quads) > 0 {
		kicker := highestOtherRank(cards, quads[0])
		if r := pack(catQuads, quads[0], kicker); r > best {
			best = r
		}
	}
	if len(trips) > 0 {
		// Full house: trips + best remaining pair (or second trips as a pair).
		var secondPair Rank
		if len(trips) > 1 {
			secondPair = trips[1]
		} else if len(pairs) > 0 {
			secondPair = pairs[0]
		}
		if secondPair != 0 {
			if r := pack(catFullHouse, trips[0], secondPair); r > best {
				best = r
			}
		}
	}
	if high := straightHigh(rankBitmap); high != 0 {
		if r := pack(catStraight, high); r > best {
			best = r
		}
	}
	if len(trips) > 0 {
		kickers := topKickers(cards, map[Rank]bool{trips[0]: true}, 2)
		if r := pack(catTrips, append([]Rank{trips[0]}, kickers...)...); r > best {
			best = r
		}
	}
	if len(pairs) >= 2 {
		exclude := map[Rank]bool{pairs[0]: true, pairs[1]: true}
		kicker := topKickers(cards, exclude, 1)
		if r := pack(catTwoPair, append([]Rank{pairs[0], pairs[1]}, kicker...)...); r > best {
			best = r
		}
	}
	if len(pairs) == 1 {
		kickers := topKickers(cards, map[Rank]bool{pairs[0]: true}, 3)
		if r := pack(catPair, append([]Rank{pairs[0]}, kickers...)...); r > best {
			best = r
		}
	}
	highs := descendingRanks(cards)
	n := 5
	if len(highs) < 5 {
		n = len(highs)
	}
	if r := pack(catHighCard, highs[:n]...); r > best {
		best = r
	}
	return best
}

type rankSlice []Rank

func (s rankSlice) Len() int           { return len(s) }
func (s rankSlice) Less(i, j int) bool { return s[i] < s[j] }
func (s rankSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

func descendingRanks(cards []Card) []Rank {
	seen := map[Rank]bool{}
	var ranks []Rank
	for _, c := range cards {
		if !seen[c.Rank] {
			seen[c.Rank] = true
			ranks = append(ranks, c.Rank)
		}
	}
	sort.Sort(sort.Reverse(rankSlice(ranks)))
	return ranks
}

func highestOtherRank(cards []Card, exclude Rank) Rank {
	best := Rank(0)
	for _, c := range cards {
		if c.Rank != exclude && c.Rank > best {
			best = c.Rank
		}
	}
	return best
}

func topKickers(cards []Card, exclude map[Rank]bool, n int) []Rank {
	var candidates []Rank
	seen := map[Rank]bool{}
	for _, c := range cards {
		if exclude[c.Rank] || seen[c.Rank] {
			continue
		}
		seen[c.Rank] = true
		candidates = append(candidates, c.Rank)
	}
	sort.Sort(sort.Reverse(rankSlice(candidates)))
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

// straightHigh returns the high rank of the best 5-consecutive-rank run
// in the bitmap (bit i set means rank i present), handling the
// ace-low wheel (A-2-3-4-5, reported high card 5). Returns 0 if no
// straight is present.
func straightHigh(bitmap uint16) Rank {
	// Ace can also act as rank 1 for the wheel.
	extended := bitmap
	if bitmap&(1<<uint(Ace)) != 0 {
		extended |= 1 << 1
	}
	best := Rank(0)
	for high := Ace; high >= 5; high-- {
		mask := uint16(0)
		ok := true
		for r := int(high); r > int(high)-5; r-- {
			if r < 1 {
				ok = false
				break
			}
			mask |= 1 << uint(r)
		}
		if ok && extended&mask == mask {
			best = high
			break
		}
	}
	return best
}

var _ = bits.OnesCount16 // retained: mirrors teacher's math/bits usage for popcount-style checks

// Rank7 returns the spec-conformant lower-is-better rank of the best
// 5-card hand contained in 7 cards.
func Rank7(cards [7]Card) int {
	return invert(bestHandRank(cards[:]))
}

// Rank5 returns the spec-conformant lower-is-better rank of a 5-card hand.
func Rank5(cards [5]Card) int {
	return invert(bestHandRank(cards[:]))
}

// RankN ranks an arbitrary 5, 6 or 7 card hand given as a slice (used
// by the equity estimator; showdown uses Rank7).
func RankN(cards []Card) int {
	return invert(bestHandRank(cards))
}

// invert flips the teacher's higher-is-better HandRank convention to the
// spec's lower-rank-wins convention used by the payout resolver.
func invert(packed uint32) int {
	return int(^packed)
}
