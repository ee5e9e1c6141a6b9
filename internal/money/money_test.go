package money_test

import (
	"testing"

	"github.com/lox/holdem-engine/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCentsRoundTrip(t *testing.T) {
	cases := []struct {
		in   string
		want money.Cents
	}{
		{"0", 0},
		{"1", 100},
		{"1.5", 150},
		{"1.05", 105},
		{"0.01", 1},
		{"-2.25", -225},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := money.ToCents(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestToCentsRejectsExtraDecimals(t *testing.T) {
	_, err := money.ToCents("1.234")
	assert.ErrorIs(t, err, money.ErrTooManyDecimals)
}

func TestToCentsOverflow(t *testing.T) {
	_, err := money.ToCents("99999999999999")
	assert.ErrorIs(t, err, money.ErrOverflow)
}

func TestAddOverflow(t *testing.T) {
	_, err := money.Add(money.Cents(1<<31-1), money.Cents(1))
	assert.ErrorIs(t, err, money.ErrOverflow)
}

func TestRequireNonNeg(t *testing.T) {
	assert.NoError(t, money.RequireNonNeg(0))
	assert.ErrorIs(t, money.RequireNonNeg(-1), money.ErrNegative)
}

func TestFmt(t *testing.T) {
	assert.Equal(t, "$1.05", money.Fmt(105))
	assert.Equal(t, "-$2.25", money.Fmt(-225))
}

func TestFromCents(t *testing.T) {
	assert.InDelta(t, 1.5, money.FromCents(150), 0.0001)
}
