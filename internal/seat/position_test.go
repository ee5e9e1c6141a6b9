package seat_test

import (
	"testing"

	"github.com/lox/holdem-engine/internal/seat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadsUpPreflopOrder(t *testing.T) {
	order, err := seat.Order(2, true)
	require.NoError(t, err)
	assert.Equal(t, []seat.Position{seat.SB, seat.BB}, order)
}

func TestHeadsUpPostflopOrder(t *testing.T) {
	order, err := seat.Order(2, false)
	require.NoError(t, err)
	assert.Equal(t, []seat.Position{seat.BB, seat.SB}, order)
}

func TestSixHandedPreflopOrder(t *testing.T) {
	order, err := seat.Order(6, true)
	require.NoError(t, err)
	assert.Equal(t, []seat.Position{seat.UTG, seat.HJ, seat.CO, seat.Button, seat.SB, seat.BB}, order)
}

func TestUnsupportedPlayerCount(t *testing.T) {
	_, err := seat.Order(11, true)
	assert.Error(t, err)
	_, err = seat.Order(1, true)
	assert.Error(t, err)
}

func TestFirstLastToAct(t *testing.T) {
	first, err := seat.FirstToAct(6, true)
	require.NoError(t, err)
	assert.Equal(t, seat.UTG, first)

	last, err := seat.LastToAct(6, true)
	require.NoError(t, err)
	assert.Equal(t, seat.BB, last)
}

func TestNextAfterWrap(t *testing.T) {
	next, ok, err := seat.NextAfter(6, true, seat.BB, true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, seat.UTG, next)
}

func TestNextAfterNoWrap(t *testing.T) {
	_, ok, err := seat.NextAfter(6, true, seat.BB, false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNextAfterNotFound(t *testing.T) {
	// HJ does not appear in the 4-handed order.
	_, ok, err := seat.NextAfter(4, true, seat.HJ, true)
	require.NoError(t, err)
	assert.False(t, ok)
}
