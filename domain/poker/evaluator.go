package poker

import (
	"fmt"
	"strings"

	"github.com/luca-patrignani/cardtris/domain/card"
)

// HandSize is the number of cards evaluated together.
const HandSize = 5

// Result is the outcome of evaluating five cards.
type Result struct {
	Category Category
	Score    int
	// Matching holds the indices (0-4, ascending) of the cards that make up
	// the category, e.g. only the four cards of a Four of a Kind.
	Matching []int
	// Hand is the concrete hand that was classified. For hands with
	// wildcards it shows what each joker stood for.
	Hand [HandSize]card.Card
}

func (r Result) String() string {
	cards := make([]string, len(r.Matching))
	for i, idx := range r.Matching {
		cards[i] = r.Hand[idx].String()
	}
	return fmt.Sprintf("%s (%d) [%s]", r.Category, r.Score, strings.Join(cards, " "))
}

func result(c Category, hand [HandSize]card.Card, matching []int) Result {
	return Result{Category: c, Score: c.BaseScore(), Matching: matching, Hand: hand}
}

var allFive = []int{0, 1, 2, 3, 4}

// EvaluateConcrete classifies five regular cards, returning the strongest
// category that applies. Wildcards must have been substituted already; a
// hand holding a Wildcard or Blocker here scores No Hand.
func EvaluateConcrete(cards [HandSize]card.Card) Result {
	for _, c := range cards {
		if c.Kind() != card.Regular || c.IsZero() {
			return result(NoHand, cards, nil)
		}
	}

	var byRank [card.King + 1][]int
	for i, c := range cards {
		byRank[c.Rank()] = append(byRank[c.Rank()], i)
	}

	flush := isFlush(cards)
	straight := isStraight(byRank)

	if flush && straight {
		if isRoyal(byRank) {
			return result(RoyalFlush, cards, matching(allFive))
		}
		return result(StraightFlush, cards, matching(allFive))
	}

	var quad, trips []int
	var pairs [][]int
	for _, idx := range byRank {
		switch {
		case len(idx) >= 4:
			quad = idx[:4]
		case len(idx) == 3:
			trips = idx
		case len(idx) == 2:
			pairs = append(pairs, idx)
		}
	}

	switch {
	case quad != nil:
		return result(FourOfAKind, cards, matching(quad))
	case trips != nil && len(pairs) > 0:
		return result(FullHouse, cards, matching(trips, pairs[0]))
	case flush:
		return result(Flush, cards, matching(allFive))
	case straight:
		return result(Straight, cards, matching(allFive))
	case trips != nil:
		return result(ThreeOfAKind, cards, matching(trips))
	case len(pairs) >= 2:
		return result(TwoPair, cards, matching(pairs[0], pairs[1]))
	case len(pairs) == 1:
		return result(OnePair, cards, matching(pairs[0]))
	}
	return result(NoHand, cards, nil)
}

func isFlush(cards [HandSize]card.Card) bool {
	for _, c := range cards[1:] {
		if c.Suit() != cards[0].Suit() {
			return false
		}
	}
	return true
}

// isStraight accepts five distinct ranks spanning four steps. Ace counts as
// 1, which covers A-2-3-4-5; 10-J-Q-K-A is accepted explicitly.
func isStraight(byRank [card.King + 1][]int) bool {
	lo, hi, distinct := 0, 0, 0
	for r := 1; r <= card.King; r++ {
		switch len(byRank[r]) {
		case 0:
			continue
		case 1:
		default:
			return false
		}
		if lo == 0 {
			lo = r
		}
		hi = r
		distinct++
	}
	if distinct != HandSize {
		return false
	}
	return hi-lo == 4 || isRoyal(byRank)
}

func isRoyal(byRank [card.King + 1][]int) bool {
	for _, r := range []int{card.Ace, 10, card.Jack, card.Queen, card.King} {
		if len(byRank[r]) != 1 {
			return false
		}
	}
	return true
}

// matching merges index groups into one ascending slice.
func matching(groups ...[]int) []int {
	var seen [HandSize]bool
	for _, g := range groups {
		for _, i := range g {
			seen[i] = true
		}
	}
	out := make([]int, 0, HandSize)
	for i, ok := range seen {
		if ok {
			out = append(out, i)
		}
	}
	return out
}
