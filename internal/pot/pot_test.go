package pot_test

import (
	"testing"

	"github.com/lox/holdem-engine/internal/money"
	"github.com/lox/holdem-engine/internal/pot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPotsNoSidePots(t *testing.T) {
	m := pot.New([]pot.Seat{0, 1, 2})
	require.NoError(t, m.Post(0, 100))
	require.NoError(t, m.Post(1, 100))
	require.NoError(t, m.Post(2, 100))

	pots := m.BuildPots()
	require.Len(t, pots, 1)
	assert.Equal(t, money.Cents(300), pots[0].Amount)
	assert.Equal(t, map[pot.Seat]bool{0: true, 1: true, 2: true}, pots[0].Eligible)
}

func TestBuildPotsSidePotAllIn(t *testing.T) {
	m := pot.New([]pot.Seat{0, 1, 2})
	require.NoError(t, m.Post(0, 50))  // short all-in
	require.NoError(t, m.Post(1, 100))
	require.NoError(t, m.Post(2, 100))

	pots := m.BuildPots()
	require.Len(t, pots, 2)

	assert.Equal(t, money.Cents(150), pots[0].Amount) // 50*3
	assert.Equal(t, map[pot.Seat]bool{0: true, 1: true, 2: true}, pots[0].Eligible)

	assert.Equal(t, money.Cents(100), pots[1].Amount) // 50*2
	assert.Equal(t, map[pot.Seat]bool{1: true, 2: true}, pots[1].Eligible)
}

func TestBuildPotsExcludesFolded(t *testing.T) {
	m := pot.New([]pot.Seat{0, 1, 2})
	require.NoError(t, m.Post(0, 100))
	require.NoError(t, m.Post(1, 100))
	require.NoError(t, m.Post(2, 100))
	require.NoError(t, m.MarkFolded(1))

	pots := m.BuildPots()
	require.Len(t, pots, 1)
	assert.Equal(t, map[pot.Seat]bool{0: true, 2: true}, pots[0].Eligible)
	assert.False(t, pots[0].Eligible[1])
}

func TestTotalAndContribution(t *testing.T) {
	m := pot.New([]pot.Seat{0, 1})
	require.NoError(t, m.Post(0, 25))
	require.NoError(t, m.Post(0, 25))
	require.NoError(t, m.Post(1, 10))

	assert.Equal(t, money.Cents(50), m.Contribution(0))
	assert.Equal(t, money.Cents(60), m.Total())
}

func TestPostUnknownSeat(t *testing.T) {
	m := pot.New([]pot.Seat{0})
	err := m.Post(9, 10)
	assert.Error(t, err)
}
