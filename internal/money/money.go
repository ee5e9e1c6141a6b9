// Package money implements fixed-point currency arithmetic for the engine.
//
// All game state is kept in integer cents. Floating point only ever
// appears at the I/O boundary (parsing a script file, formatting for a
// log line) and is converted to cents immediately.
package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cents is an amount of money expressed as integer cents.
type Cents int64

// maxCents mirrors the 32-bit signed overflow guard used throughout the
// original engine: amounts never need to exceed this in a single hand.
const maxCents Cents = math.MaxInt32

var (
	// ErrTooManyDecimals is returned when a decimal string has more than
	// two fractional digits.
	ErrTooManyDecimals = errors.New("money: more than two decimal places")
	// ErrNegative is returned by RequireNonNeg for a negative amount.
	ErrNegative = errors.New("money: negative amount")
	// ErrOverflow is returned when an amount would exceed the 32-bit guard.
	ErrOverflow = errors.New("money: amount exceeds maximum representable cents")
)

// ToCents parses a decimal dollar string ("12.50", "3", "0.01") into Cents.
// It rejects strings with more than two fractional digits.
func ToCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("money: empty amount")
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	whole := s
	frac := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		whole = s[:idx]
		frac = s[idx+1:]
	}
	if len(frac) > 2 {
		return 0, ErrTooManyDecimals
	}
	for len(frac) < 2 {
		frac += "0"
	}
	if whole == "" {
		whole = "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("money: invalid amount %q: %w", s, err)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("money: invalid amount %q: %w", s, err)
	}

	total := w*100 + f
	if neg {
		total = -total
	}
	c := Cents(total)
	if c > maxCents || c < -maxCents {
		return 0, ErrOverflow
	}
	return c, nil
}

// FromCents converts Cents back to a dollar-denominated float64. Only
// used at display/serialization boundaries, never in game state.
func FromCents(c Cents) float64 {
	return float64(c) / 100.0
}

// Fmt formats Cents as a "$12.50"-style string.
func Fmt(c Cents) string {
	neg := ""
	if c < 0 {
		neg = "-"
		c = -c
	}
	return fmt.Sprintf("%s$%d.%02d", neg, c/100, c%100)
}

// Add returns a+b, erroring if the result would overflow the 32-bit guard.
func Add(a, b Cents) (Cents, error) {
	sum := a + b
	if sum > maxCents || sum < -maxCents {
		return 0, ErrOverflow
	}
	return sum, nil
}

// RequireNonNeg returns ErrNegative if c is negative.
func RequireNonNeg(c Cents) error {
	if c < 0 {
		return fmt.Errorf("%w: %s", ErrNegative, Fmt(c))
	}
	return nil
}
