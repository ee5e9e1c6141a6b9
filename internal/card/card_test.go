package card_test

import (
	"testing"

	"github.com/lox/holdem-engine/internal/card"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	c, err := card.Parse("Ah")
	require.NoError(t, err)
	assert.Equal(t, card.Ace, c.Rank)
	assert.Equal(t, card.Hearts, c.Suit)
	assert.Equal(t, "Ah", c.String())
}

func TestParseInvalid(t *testing.T) {
	_, err := card.Parse("Ahh")
	assert.Error(t, err)
	_, err = card.Parse("1h")
	assert.Error(t, err)
	_, err = card.Parse("Az")
	assert.Error(t, err)
}

func TestFull52Unique(t *testing.T) {
	cards := card.Full52()
	require.Len(t, cards, 52)
	seen := map[string]bool{}
	for _, c := range cards {
		seen[c.String()] = true
	}
	assert.Len(t, seen, 52)
}

func mustParse(t *testing.T, ss ...string) []card.Card {
	t.Helper()
	cs, err := card.ParseAll(ss)
	require.NoError(t, err)
	return cs
}

func TestRank7StraightFlushBeatsQuads(t *testing.T) {
	sf := mustParse(t, "9h", "8h", "7h", "6h", "5h", "2c", "2d")
	quads := mustParse(t, "Ah", "Ac", "Ad", "As", "Kd", "2c", "3c")

	var sf7, q7 [7]card.Card
	copy(sf7[:], sf)
	copy(q7[:], quads)

	rSF := card.Rank7(sf7)
	rQuads := card.Rank7(q7)
	assert.Less(t, rSF, rQuads, "straight flush should rank lower (better) than quads")
}

func TestRank7WheelStraight(t *testing.T) {
	wheel := mustParse(t, "Ah", "2c", "3d", "4s", "5h", "9c", "Kd")
	nonStraight := mustParse(t, "2h", "4c", "6d", "8s", "Tc", "Jd", "Kc")
	var w7, n7 [7]card.Card
	copy(w7[:], wheel)
	copy(n7[:], nonStraight)
	assert.Less(t, card.Rank7(w7), card.Rank7(n7))
}

func TestRank7PairBeatsHighCard(t *testing.T) {
	pair := mustParse(t, "2h", "2c", "9d", "Jc", "Kd", "4s", "6h")
	highCard := mustParse(t, "2h", "5c", "9d", "Jc", "Kd", "4s", "7h")
	var p7, h7 [7]card.Card
	copy(p7[:], pair)
	copy(h7[:], highCard)
	assert.Less(t, card.Rank7(p7), card.Rank7(h7))
}
