package poker

import (
	"github.com/luca-patrignani/cardtris/domain/card"
)

// Evaluate classifies a five-card run that may contain jokers. Each joker is
// replaced by every regular card not already in the hand, and the highest
// scoring substitution wins. Within a category the stronger poker hand is
// kept when the five cards are distinct; otherwise the first one found. Reported Matching
// indices refer to the original positions, so a joker that is part of the
// category is reported where it lies.
//
// Jokers are interchangeable, so substitutions are enumerated as
// combinations rather than ordered tuples, and the search stops at the first
// Royal Flush. With four or more jokers the answer is known without a search.
// A hand holding a Blocker scores No Hand.
func Evaluate(cards [HandSize]card.Card) Result {
	var wild []int
	for i, c := range cards {
		switch {
		case c.IsBlocker() || c.IsZero():
			return result(NoHand, cards, nil)
		case c.IsWildcard():
			wild = append(wild, i)
		}
	}

	switch {
	case len(wild) == 0:
		return EvaluateConcrete(cards)
	case len(wild) >= 4:
		return saturated(cards, wild)
	}
	return resolve(cards, wild)
}

// resolve runs the substitution search for one to three jokers.
func resolve(cards [HandSize]card.Card, wild []int) Result {
	present := make(map[card.Card]bool, HandSize)
	for _, c := range cards {
		if !c.IsWildcard() {
			present[c] = true
		}
	}
	pool := make([]card.Card, 0, 52)
	for _, c := range card.Standard52() {
		if !present[c] {
			pool = append(pool, c)
		}
	}

	var best Result
	var bestRank int16
	ranked, found := false, false
	hand := cards
	combinations(len(pool), len(wild), func(idx []int) bool {
		for i, w := range wild {
			hand[w] = pool[idx[i]]
		}
		res := EvaluateConcrete(hand)
		switch {
		case !found || res.Score > best.Score:
			best, found = res, true
			ranked = distinct(hand)
			if ranked {
				bestRank = rank5(hand)
			}
		case res.Score == best.Score && ranked && distinct(hand):
			if r := rank5(hand); r > bestRank {
				best, bestRank = res, r
			}
		}
		return best.Category != RoyalFlush
	})
	return best
}

// distinct reports whether no card appears twice. The lookup evaluator only
// knows hands that can be dealt from a single deck.
func distinct(hand [HandSize]card.Card) bool {
	for i := range hand {
		for j := i + 1; j < len(hand); j++ {
			if hand[i] == hand[j] {
				return false
			}
		}
	}
	return true
}

// saturated handles four or five jokers. Five jokers always make a Royal
// Flush. With four, the remaining card joins a Royal Flush if its rank
// belongs to one, and a Straight Flush otherwise.
func saturated(cards [HandSize]card.Card, wild []int) Result {
	suit := card.Spade
	var ranks []uint8
	fixed := -1
	for i, c := range cards {
		if !c.IsWildcard() {
			fixed = i
			suit = c.Suit()
		}
	}
	if fixed >= 0 {
		r := cards[fixed].Rank()
		switch {
		case r == card.Ace || r >= 10:
			ranks = royalRanksWithout(r)
		default:
			ranks = straightRanksAround(r)
		}
	} else {
		ranks = []uint8{card.Ace, 10, card.Jack, card.Queen, card.King}
	}

	hand := cards
	for i, w := range wild {
		hand[w] = card.MustNew(suit, ranks[i])
	}
	return EvaluateConcrete(hand)
}

func royalRanksWithout(r uint8) []uint8 {
	var out []uint8
	for _, v := range []uint8{card.Ace, 10, card.Jack, card.Queen, card.King} {
		if v != r {
			out = append(out, v)
		}
	}
	return out
}

// straightRanksAround returns the four ranks that complete r (2-9) into the
// highest straight below the royal one: r..r+4 capped to 9..K.
func straightRanksAround(r uint8) []uint8 {
	lo := min(r, 9)
	var out []uint8
	for v := lo; v < lo+5; v++ {
		if v != r {
			out = append(out, v)
		}
	}
	return out
}

// combinations calls fn with every k-subset of [0, n) in lexicographic
// order until fn returns false.
func combinations(n, k int, fn func(idx []int) bool) {
	if k == 0 || k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		if !fn(idx) {
			return
		}
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
