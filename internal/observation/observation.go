// Package observation implements the Observation Builder: a fixed
// 45-feature numeric vector for a designated hero seat, built without
// leaking any opponent hole cards.
package observation

import (
	"fmt"
	"sort"

	"github.com/lox/holdem-engine/internal/card"
	"github.com/lox/holdem-engine/internal/money"
	"github.com/lox/holdem-engine/internal/rules"
	"github.com/lox/holdem-engine/internal/seat"
)

// PlayerSnapshot is the subset of a player's state the Observation
// Builder reads. HoleCards is nil for every player except the hero;
// Build fails if any non-hero player has HoleCards set.
type PlayerSnapshot struct {
	SeatID     int
	Position   seat.Position
	HasPosition bool
	Stack      money.Cents
	CurrentBet money.Cents
	Folded     bool
	AllIn      bool
	HoleCards  []card.Card
	ActedThisStreet bool
}

// Snapshot is the read-only game state the Observation Builder consumes.
// It is deliberately a flat value type: the Hand State Machine builds
// one per decision point and hands it to the builder, never the other
// way around.
type Snapshot struct {
	Phase              rules.Phase
	Players            []PlayerSnapshot
	HeroSeatID         int
	PotCents           money.Cents
	HighestBet         money.Cents
	LastRaiseIncrement money.Cents
	LastAggressorSeat  int
	HasLastAggressor   bool
	RaisesThisStreet   int
	CommunityCards     []card.Card
	BigBlindCents      money.Cents
}

// Vector is the 45-feature observation, grouped exactly as spec'd.
type Vector struct {
	// Core game state (16)
	StreetOneHot       [5]float64
	PlayersRemaining   float64
	HeroPositionOneHot [10]float64

	// Pot and betting metrics (4)
	PotInBB        float64
	AmountToCallBB float64
	PotOdds        float64
	BetToCallRatio float64

	// Stack metrics (3)
	HeroStackInBB      float64
	EffectiveStackInBB float64
	SPR                float64

	// Preflop hand features (8)
	IsPair                  float64
	IsSuited                float64
	Gap                     float64
	HighRank                float64
	LowRank                 float64
	ChenScore               float64
	HandClass               string
	HandStrengthPercentile  float64

	// Betting history (4)
	RaisesThisStreet        float64
	LastRaiseIncrementInBB  float64
	IsAggressor             float64
	HasPosition             float64

	// Board texture (6)
	BoardPaired        float64
	BoardMonotone      float64
	BoardTwoTone       float64
	StraightyIndex     float64
	TopBoardRank       float64
	BoardCoordination  float64

	// Additional (4)
	PlayersActedThisStreet float64
	StreetNumber           float64
	IsAllIn                float64
	StackDepthCategory     float64
}

const FeatureCount = 5 + 1 + 10 + 4 + 3 + 8 + 4 + 6 + 4

// ToSlice flattens the vector into the fixed 45-element feature order
// spec'd for reproducibility. HandClass is not included: it is a label,
// not a numeric feature (see PreflopPercentile for its numeric form).
func (v Vector) ToSlice() []float64 {
	out := make([]float64, 0, FeatureCount)
	out = append(out, v.StreetOneHot[:]...)
	out = append(out, v.PlayersRemaining)
	out = append(out, v.HeroPositionOneHot[:]...)
	out = append(out, v.PotInBB, v.AmountToCallBB, v.PotOdds, v.BetToCallRatio)
	out = append(out, v.HeroStackInBB, v.EffectiveStackInBB, v.SPR)
	out = append(out, v.IsPair, v.IsSuited, v.Gap, v.HighRank, v.LowRank, v.ChenScore, handClassFeature(v.HandClass), v.HandStrengthPercentile)
	out = append(out, v.RaisesThisStreet, v.LastRaiseIncrementInBB, v.IsAggressor, v.HasPosition)
	out = append(out, v.BoardPaired, v.BoardMonotone, v.BoardTwoTone, v.StraightyIndex, v.TopBoardRank, v.BoardCoordination)
	out = append(out, v.PlayersActedThisStreet, v.StreetNumber, v.IsAllIn, v.StackDepthCategory)
	return out
}

// handClassFeature gives HandClass a stable numeric slot: its rank in
// the fixed 169-combo table, not a hash. XX (no hole cards) is 0.
func handClassFeature(class string) float64 {
	if idx, ok := handClassIndex[class]; ok {
		return float64(idx)
	}
	return 0
}

var errLeakage = fmt.Errorf("observation: information leakage detected: a non-hero player has hole cards attached")

// Build constructs the observation vector for s.HeroSeatID. It fails
// closed if the hero is not found or if any other player's hole cards
// are present in the snapshot.
func Build(s Snapshot) (Vector, error) {
	hero, ok := findHero(s)
	if !ok {
		return Vector{}, fmt.Errorf("observation: hero seat %d not found in snapshot", s.HeroSeatID)
	}
	for _, p := range s.Players {
		if p.SeatID != s.HeroSeatID && len(p.HoleCards) > 0 {
			return Vector{}, errLeakage
		}
	}

	var v Vector
	buildCoreFeatures(&v, s, hero)
	buildPotBettingFeatures(&v, s, hero)
	buildStackFeatures(&v, s, hero)
	buildPreflopFeatures(&v, hero)
	buildBettingHistoryFeatures(&v, s, hero)
	buildBoardTextureFeatures(&v, s.CommunityCards)
	buildAdditionalFeatures(&v, s, hero)
	return v, nil
}

func findHero(s Snapshot) (PlayerSnapshot, bool) {
	for _, p := range s.Players {
		if p.SeatID == s.HeroSeatID {
			return p, true
		}
	}
	return PlayerSnapshot{}, false
}

var streetIndex = map[rules.Phase]int{
	rules.Deal:    0,
	rules.Preflop: 1,
	rules.Flop:    2,
	rules.Turn:    3,
	rules.River:   4,
}

var positionIndex = map[seat.Position]int{
	seat.UTG: 0, seat.UTG1: 1, seat.UTG2: 2,
	seat.LJ: 3, seat.MP: 4, seat.HJ: 5,
	seat.CO: 6, seat.Button: 7, seat.SB: 8, seat.BB: 9,
}

func buildCoreFeatures(v *Vector, s Snapshot, hero PlayerSnapshot) {
	if idx, ok := streetIndex[s.Phase]; ok {
		v.StreetOneHot[idx] = 1
	}

	var remaining int
	for _, p := range s.Players {
		if !p.Folded {
			remaining++
		}
	}
	v.PlayersRemaining = float64(remaining)

	if hero.HasPosition {
		if idx, ok := positionIndex[hero.Position]; ok {
			v.HeroPositionOneHot[idx] = 1
		}
	}
}

func buildPotBettingFeatures(v *Vector, s Snapshot, hero PlayerSnapshot) {
	bb := float64(s.BigBlindCents)
	if bb <= 0 {
		bb = 1
	}

	v.PotInBB = float64(s.PotCents) / bb

	toCall := s.HighestBet - hero.CurrentBet
	if toCall < 0 {
		toCall = 0
	}
	v.AmountToCallBB = float64(toCall) / bb

	if toCall > 0 {
		v.PotOdds = float64(toCall) / float64(s.PotCents+toCall)
		v.BetToCallRatio = float64(toCall) / bb
	}
}

func buildStackFeatures(v *Vector, s Snapshot, hero PlayerSnapshot) {
	bb := float64(s.BigBlindCents)
	if bb <= 0 {
		bb = 1
	}

	v.HeroStackInBB = float64(hero.Stack) / bb

	var maxOpponent money.Cents
	hasOpponent := false
	for _, p := range s.Players {
		if p.SeatID == hero.SeatID || p.Folded {
			continue
		}
		hasOpponent = true
		if p.Stack > maxOpponent {
			maxOpponent = p.Stack
		}
	}

	effective := hero.Stack
	if hasOpponent && maxOpponent < hero.Stack {
		effective = maxOpponent
	}
	v.EffectiveStackInBB = float64(effective) / bb

	if s.PotCents > 0 {
		v.SPR = float64(effective) / float64(s.PotCents)
	}
}

func buildPreflopFeatures(v *Vector, hero PlayerSnapshot) {
	if len(hero.HoleCards) != 2 {
		v.HandClass = "XX"
		return
	}

	c1, c2 := hero.HoleCards[0], hero.HoleCards[1]
	high, low := c1.Rank, c2.Rank
	if low > high {
		high, low = low, high
	}
	isPair := c1.Rank == c2.Rank
	isSuited := c1.Suit == c2.Suit
	gap := int(high) - int(low)
	if isPair {
		gap = 0
	}

	v.IsPair = boolFeature(isPair)
	v.IsSuited = boolFeature(isSuited)
	v.Gap = float64(gap)
	v.HighRank = float64(high)
	v.LowRank = float64(low)
	v.ChenScore = ChenScore(high, low, isPair, isSuited)
	v.HandClass = HandClass(high, low, isPair, isSuited)
	v.HandStrengthPercentile = PreflopPercentile(v.HandClass)
}

func buildBettingHistoryFeatures(v *Vector, s Snapshot, hero PlayerSnapshot) {
	bb := float64(s.BigBlindCents)
	if bb <= 0 {
		bb = 1
	}
	v.RaisesThisStreet = float64(s.RaisesThisStreet)
	v.LastRaiseIncrementInBB = float64(s.LastRaiseIncrement) / bb
	if s.HasLastAggressor && s.LastAggressorSeat == hero.SeatID {
		v.IsAggressor = 1
	}
	if hero.HasPosition {
		v.HasPosition = hasPositionalAdvantage(hero.Position)
	}
}

// hasPositionalAdvantage mirrors the simplified late-position flag:
// button, cutoff, and hijack count as "in position".
func hasPositionalAdvantage(p seat.Position) float64 {
	switch p {
	case seat.Button, seat.CO, seat.HJ:
		return 1
	default:
		return 0
	}
}

func buildBoardTextureFeatures(v *Vector, board []card.Card) {
	if len(board) == 0 {
		v.TopBoardRank = 0
		return
	}

	ranks := make([]card.Rank, len(board))
	suitCounts := map[card.Suit]int{}
	rankCounts := map[card.Rank]int{}
	for i, c := range board {
		ranks[i] = c.Rank
		suitCounts[c.Suit]++
		rankCounts[c.Rank]++
	}

	distinctRanks := len(rankCounts)
	if distinctRanks < len(ranks) {
		v.BoardPaired = 1
	}

	maxSuit := 0
	for _, n := range suitCounts {
		if n > maxSuit {
			maxSuit = n
		}
	}
	if maxSuit >= 3 {
		v.BoardMonotone = 1
	}
	if len(suitCounts) == 2 {
		v.BoardTwoTone = 1
	}

	v.StraightyIndex = straightyIndex(ranks)

	top := ranks[0]
	for _, r := range ranks {
		if r > top {
			top = r
		}
	}
	v.TopBoardRank = float64(top)

	pairs := 0
	for _, n := range rankCounts {
		if n > 1 {
			pairs++
		}
	}
	coordination := float64(pairs+maxSuit) / 8.0
	if coordination > 1 {
		coordination = 1
	}
	v.BoardCoordination = coordination
}

// straightyIndex is the longest run of consecutive distinct ranks,
// normalized to [0,1] against the maximum possible run of 5.
func straightyIndex(ranks []card.Rank) float64 {
	if len(ranks) < 2 {
		return 0
	}
	distinct := map[card.Rank]bool{}
	for _, r := range ranks {
		distinct[r] = true
	}
	sorted := make([]card.Rank, 0, len(distinct))
	for r := range distinct {
		sorted = append(sorted, r)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	longest, current := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1]+1 {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}
	return float64(longest) / 5.0
}

func buildAdditionalFeatures(v *Vector, s Snapshot, hero PlayerSnapshot) {
	var acted int
	for _, p := range s.Players {
		if p.ActedThisStreet {
			acted++
		}
	}
	v.PlayersActedThisStreet = float64(acted)
	v.StreetNumber = float64(s.Phase)
	v.IsAllIn = boolFeature(hero.AllIn)
	v.StackDepthCategory = float64(StackDepthCategory(v.EffectiveStackInBB))
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// StackDepthCategory buckets effective stack-in-BB into 5 named tiers.
func StackDepthCategory(stackInBB float64) int {
	switch {
	case stackInBB < 20:
		return 0 // shallow
	case stackInBB < 50:
		return 1 // medium
	case stackInBB < 100:
		return 2 // deep
	case stackInBB < 200:
		return 3 // very deep
	default:
		return 4 // ultra deep
	}
}
