// Package payout implements the Payout Resolver: distributing pots to
// showdown winners with stable odd-cent remainder handling.
package payout

import (
	"sort"

	"github.com/lox/holdem-engine/internal/money"
	"github.com/lox/holdem-engine/internal/pot"
)

// Resolve distributes each pot to the contender(s) with the best
// (lowest) rank among ranks, with ties splitting the pot equally and
// any one-cent remainder going to the earliest seats in seatOrder.
func Resolve(pots []pot.Pot, ranks map[pot.Seat]int, seatOrder []pot.Seat) map[pot.Seat]money.Cents {
	payouts := make(map[pot.Seat]money.Cents, len(ranks))
	for s := range ranks {
		payouts[s] = 0
	}

	seatIndex := make(map[pot.Seat]int, len(seatOrder))
	for i, s := range seatOrder {
		seatIndex[s] = i
	}

	for _, p := range pots {
		if p.Amount <= 0 {
			continue
		}
		var contenders []pot.Seat
		for s := range p.Eligible {
			if _, ok := ranks[s]; ok {
				contenders = append(contenders, s)
			}
		}
		if len(contenders) == 0 {
			continue
		}

		bestRank := ranks[contenders[0]]
		for _, s := range contenders[1:] {
			if ranks[s] < bestRank {
				bestRank = ranks[s]
			}
		}
		var winners []pot.Seat
		for _, s := range contenders {
			if ranks[s] == bestRank {
				winners = append(winners, s)
			}
		}
		sort.Slice(winners, func(i, j int) bool { return seatIndex[winners[i]] < seatIndex[winners[j]] })

		share := p.Amount / money.Cents(len(winners))
		remainder := int(p.Amount % money.Cents(len(winners)))
		for i, s := range winners {
			amt := share
			if i < remainder {
				amt++
			}
			payouts[s] += amt
		}
	}
	return payouts
}

// Winners returns the seats eligible to win a single pot, given ranks.
func Winners(p pot.Pot, ranks map[pot.Seat]int) []pot.Seat {
	var contenders []pot.Seat
	for s := range p.Eligible {
		if _, ok := ranks[s]; ok {
			contenders = append(contenders, s)
		}
	}
	if len(contenders) == 0 {
		return nil
	}
	bestRank := ranks[contenders[0]]
	for _, s := range contenders[1:] {
		if ranks[s] < bestRank {
			bestRank = ranks[s]
		}
	}
	var winners []pot.Seat
	for _, s := range contenders {
		if ranks[s] == bestRank {
			winners = append(winners, s)
		}
	}
	return winners
}

// Share splits potAmount evenly among numWinners, returning the equal
// share and the leftover remainder in cents.
func Share(potAmount money.Cents, numWinners int) (share, remainder money.Cents) {
	if numWinners <= 0 {
		return 0, potAmount
	}
	return potAmount / money.Cents(numWinners), potAmount % money.Cents(numWinners)
}

// ValidatePayouts checks that the sum of payouts equals the sum of pot
// amounts, that only ranked seats received a payout, and that no
// payout is negative.
func ValidatePayouts(pots []pot.Pot, payouts map[pot.Seat]money.Cents, ranks map[pot.Seat]int) bool {
	var totalPots, totalPayouts money.Cents
	for _, p := range pots {
		totalPots += p.Amount
	}
	for s, amt := range payouts {
		totalPayouts += amt
		if _, ok := ranks[s]; !ok {
			return false
		}
		if amt < 0 {
			return false
		}
	}
	return totalPayouts == totalPots
}
