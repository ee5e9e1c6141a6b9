// Package deck implements the Deck Source abstraction: a Randomized,
// seedable shuffled source and a Scripted, fixed-sequence source.
package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/lox/holdem-engine/internal/card"
)

// Source draws cards from a deck. Both implementations here are safe
// for use by a single goroutine only, matching the engine's
// single-threaded concurrency model.
type Source interface {
	// Draw returns the next n cards, or an error if n cards are not
	// available.
	Draw(n int) ([]card.Card, error)
	// Remaining reports how many cards are left to draw.
	Remaining() int
}

// ErrInsufficientCards is returned when a draw is requested for more
// cards than remain in the source.
var ErrInsufficientCards = errors.New("deck: insufficient cards remaining")

const goldenRatio64 = 0x9e3779b97f4a7c15

// NewRNG returns a *rand.Rand deterministically seeded from seed, using
// the same seed-mixing scheme the teacher centralizes for reproducible
// sequences.
func NewRNG(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mixSeed(u), mixSeed(u+goldenRatio64)))
}

func mixSeed(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Randomized is a Deck Source backed by a uniformly shuffled standard
// 52-card deck.
type Randomized struct {
	cards []card.Card
	next  int
	rng   *rand.Rand
}

// NewRandomized builds a Randomized source seeded with rng, shuffling
// immediately.
func NewRandomized(rng *rand.Rand) *Randomized {
	d := &Randomized{cards: card.Full52(), rng: rng}
	d.Shuffle()
	return d
}

// Shuffle reshuffles the full deck in place using Fisher-Yates and
// resets the draw cursor.
func (d *Randomized) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw implements Source.
func (d *Randomized) Draw(n int) ([]card.Card, error) {
	if d.next+n > len(d.cards) {
		return nil, fmt.Errorf("%w: requested %d, have %d", ErrInsufficientCards, n, d.Remaining())
	}
	out := make([]card.Card, n)
	copy(out, d.cards[d.next:d.next+n])
	d.next += n
	return out, nil
}

// Remaining implements Source.
func (d *Randomized) Remaining() int {
	return len(d.cards) - d.next
}

// Scripted is a Deck Source that yields a fixed, finite sequence of
// cards. Shuffle is a no-op; Draw fails once the sequence is exhausted.
type Scripted struct {
	cards []card.Card
	next  int
}

// NewScripted builds a Scripted source from an explicit card sequence.
func NewScripted(cards []card.Card) *Scripted {
	cp := make([]card.Card, len(cards))
	copy(cp, cards)
	return &Scripted{cards: cp}
}

// Shuffle is a no-op: a Scripted source's order is fixed by definition.
func (d *Scripted) Shuffle() {}

// Draw implements Source.
func (d *Scripted) Draw(n int) ([]card.Card, error) {
	if d.next+n > len(d.cards) {
		return nil, fmt.Errorf("%w: requested %d, have %d", ErrInsufficientCards, n, d.Remaining())
	}
	out := make([]card.Card, n)
	copy(out, d.cards[d.next:d.next+n])
	d.next += n
	return out, nil
}

// Remaining implements Source.
func (d *Scripted) Remaining() int {
	return len(d.cards) - d.next
}
