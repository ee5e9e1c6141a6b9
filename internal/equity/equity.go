// Package equity implements Monte-Carlo hand-equity estimation against
// randomly sampled opponent ranges, used by the rule-based baseline
// agent.
package equity

import (
	"math"
	"math/rand/v2"

	"github.com/lox/holdem-engine/internal/card"
)

// Result is the outcome of a Monte-Carlo equity simulation.
type Result struct {
	Wins             int
	Ties             int
	TotalSimulations int
}

// Equity returns overall equity in [0,1]: wins count as 1.0, ties as 0.5.
func (r Result) Equity() float64 {
	if r.TotalSimulations == 0 {
		return 0
	}
	return (float64(r.Wins) + 0.5*float64(r.Ties)) / float64(r.TotalSimulations)
}

// ConfidenceInterval returns the 95% confidence interval for Equity(),
// using the normal approximation to the binomial proportion.
func (r Result) ConfidenceInterval() (lower, upper float64) {
	n := float64(r.TotalSimulations)
	if n == 0 {
		return 0, 0
	}
	e := r.Equity()
	se := math.Sqrt(e * (1 - e) / n)
	margin := 1.96 * se
	lower = math.Max(0, e-margin)
	upper = math.Min(1, e+margin)
	return lower, upper
}

// Estimate runs a Monte Carlo simulation of hero's equity against
// numOpponents random hands, completing board to 5 cards each sample.
// It excludes hero's hole cards and the known board from the cards
// dealt to opponents and to the remaining board. If there are too few
// unseen cards to deal every sample, Estimate returns a zero Result.
func Estimate(hero []card.Card, board []card.Card, numOpponents int, samples int, rng *rand.Rand) Result {
	if len(hero) != 2 {
		return Result{}
	}
	if numOpponents <= 0 {
		return Result{Wins: samples, TotalSimulations: samples}
	}

	known := map[card.Card]bool{}
	for _, c := range hero {
		known[c] = true
	}
	for _, c := range board {
		known[c] = true
	}

	var unseen []card.Card
	for _, c := range card.Full52() {
		if !known[c] {
			unseen = append(unseen, c)
		}
	}

	cardsNeeded := numOpponents*2 + (5 - len(board))
	if len(unseen) < cardsNeeded {
		return Result{}
	}

	var wins, ties, total int
	pool := make([]card.Card, len(unseen))

	for s := 0; s < samples; s++ {
		copy(pool, unseen)
		rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

		idx := 0
		opponents := make([][2]card.Card, numOpponents)
		for i := 0; i < numOpponents; i++ {
			opponents[i] = [2]card.Card{pool[idx], pool[idx+1]}
			idx += 2
		}

		finalBoard := append([]card.Card{}, board...)
		finalBoard = append(finalBoard, pool[idx:idx+(5-len(board))]...)

		heroRank := card.RankN(append(append([]card.Card{}, hero...), finalBoard...))
		bestOppRank := heroRank
		tied := false
		first := true
		heroWins := true

		for _, opp := range opponents {
			oppHand := append([]card.Card{opp[0], opp[1]}, finalBoard...)
			oppRank := card.RankN(oppHand)
			if first {
				bestOppRank = oppRank
				first = false
			} else if oppRank < bestOppRank {
				bestOppRank = oppRank
			}
		}

		// RankN is lower-is-better (see internal/card), so hero loses
		// whenever their rank number exceeds the best (lowest) opponent rank.
		if heroRank > bestOppRank {
			heroWins = false
		} else if heroRank == bestOppRank {
			tied = true
		}

		if heroWins {
			if tied {
				ties++
			} else {
				wins++
			}
		}
		total++
	}

	return Result{Wins: wins, Ties: ties, TotalSimulations: total}
}
