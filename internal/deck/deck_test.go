package deck_test

import (
	"testing"

	"github.com/lox/holdem-engine/internal/card"
	"github.com/lox/holdem-engine/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomizedDrawsAllUniqueCards(t *testing.T) {
	d := deck.NewRandomized(deck.NewRNG(42))
	seen := map[string]bool{}
	for d.Remaining() > 0 {
		cs, err := d.Draw(1)
		require.NoError(t, err)
		seen[cs[0].String()] = true
	}
	assert.Len(t, seen, 52)
}

func TestRandomizedDeterministicForSeed(t *testing.T) {
	d1 := deck.NewRandomized(deck.NewRNG(7))
	d2 := deck.NewRandomized(deck.NewRNG(7))
	a, err := d1.Draw(5)
	require.NoError(t, err)
	b, err := d2.Draw(5)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRandomizedInsufficientCards(t *testing.T) {
	d := deck.NewRandomized(deck.NewRNG(1))
	_, err := d.Draw(53)
	assert.ErrorIs(t, err, deck.ErrInsufficientCards)
}

func TestScriptedFixedSequence(t *testing.T) {
	cards, err := card.ParseAll([]string{"Ah", "Kd", "2c"})
	require.NoError(t, err)
	d := deck.NewScripted(cards)

	got, err := d.Draw(2)
	require.NoError(t, err)
	assert.Equal(t, cards[:2], got)
	assert.Equal(t, 1, d.Remaining())
}

func TestScriptedExhaustion(t *testing.T) {
	cards, _ := card.ParseAll([]string{"Ah", "Kd"})
	d := deck.NewScripted(cards)
	_, err := d.Draw(3)
	assert.ErrorIs(t, err, deck.ErrInsufficientCards)
}

func TestScriptedShuffleIsNoop(t *testing.T) {
	cards, _ := card.ParseAll([]string{"Ah", "Kd", "2c"})
	d := deck.NewScripted(cards)
	d.Shuffle()
	got, err := d.Draw(3)
	require.NoError(t, err)
	assert.Equal(t, cards, got)
}
