// Package pot implements the Pot Manager: per-player contribution
// tracking and side-pot construction by contribution tier.
package pot

import (
	"fmt"
	"sort"

	"github.com/lox/holdem-engine/internal/money"
)

// Seat identifies a player within a hand (seat index, not table position).
type Seat int

// Pot is one pot (main or side) with the seats eligible to win it.
type Pot struct {
	Amount   money.Cents
	Eligible map[Seat]bool
}

// Manager tracks each seat's contribution to the pot across a hand and
// builds side pots from contribution tiers.
type Manager struct {
	contributed map[Seat]money.Cents
	folded      map[Seat]bool
	order       []Seat // stable iteration order, set at construction
}

// New creates a Manager for the given seats, all starting at zero
// contribution.
func New(seats []Seat) *Manager {
	m := &Manager{
		contributed: make(map[Seat]money.Cents, len(seats)),
		folded:      make(map[Seat]bool),
		order:       append([]Seat(nil), seats...),
	}
	for _, s := range seats {
		m.contributed[s] = 0
	}
	return m
}

// Post adds cents to seat's contribution. The caller is responsible for
// decrementing the player's stack; this only tracks the table-side
// ledger.
func (m *Manager) Post(s Seat, cents money.Cents) error {
	if _, ok := m.contributed[s]; !ok {
		return fmt.Errorf("pot: seat %d not tracked by this manager", s)
	}
	sum, err := money.Add(m.contributed[s], cents)
	if err != nil {
		return err
	}
	if err := money.RequireNonNeg(sum); err != nil {
		return err
	}
	m.contributed[s] = sum
	return nil
}

// MarkFolded marks a seat as ineligible to win any pot.
func (m *Manager) MarkFolded(s Seat) error {
	if _, ok := m.contributed[s]; !ok {
		return fmt.Errorf("pot: seat %d not tracked by this manager", s)
	}
	m.folded[s] = true
	return nil
}

// Contribution returns a seat's total contribution so far.
func (m *Manager) Contribution(s Seat) money.Cents {
	return m.contributed[s]
}

// IsFolded reports whether a seat has folded.
func (m *Manager) IsFolded(s Seat) bool {
	return m.folded[s]
}

// Total returns the sum of all contributions on the table.
func (m *Manager) Total() money.Cents {
	var total money.Cents
	for _, v := range m.contributed {
		total += v
	}
	return total
}

// BuildPots decomposes contributions into pots by sorted distinct
// contribution level. For tier level L with previous level prev,
// delta = L - prev, tier players = all seats whose contribution >= L,
// pot amount = delta * len(tier players), and eligible = tier players
// minus folded seats.
func (m *Manager) BuildPots() []Pot {
	levelSet := map[money.Cents]bool{}
	for _, v := range m.contributed {
		if v > 0 {
			levelSet[v] = true
		}
	}
	if len(levelSet) == 0 {
		return nil
	}
	levels := make([]money.Cents, 0, len(levelSet))
	for l := range levelSet {
		levels = append(levels, l)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })

	var pots []Pot
	prev := money.Cents(0)
	for _, level := range levels {
		delta := level - prev
		tierPlayers := make([]Seat, 0)
		for _, s := range m.order {
			if m.contributed[s] >= level {
				tierPlayers = append(tierPlayers, s)
			}
		}
		amount := delta * money.Cents(len(tierPlayers))
		if amount > 0 {
			eligible := make(map[Seat]bool, len(tierPlayers))
			for _, s := range tierPlayers {
				if !m.folded[s] {
					eligible[s] = true
				}
			}
			pots = append(pots, Pot{Amount: amount, Eligible: eligible})
		}
		prev = level
	}
	return pots
}
