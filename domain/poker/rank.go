package poker

import (
	ph "github.com/paulhankin/poker"

	"github.com/luca-patrignani/cardtris/domain/card"
)

// rank5 scores five distinct regular cards with the lookup evaluator.
// Higher is stronger, and the ordering across categories agrees with
// Category. Hands that repeat a card have no entry in the lookup table and
// must not reach it.
func rank5(hand [HandSize]card.Card) int16 {
	var cards [HandSize]ph.Card
	for i, c := range hand {
		cards[i] = toPH(c)
	}
	return ph.Eval5(&cards)
}

// toPH converts a regular card to the library representation. Both use
// Ace=1 through King=13.
func toPH(c card.Card) ph.Card {
	var s ph.Suit
	switch c.Suit() {
	case card.Club:
		s = ph.Club
	case card.Diamond:
		s = ph.Diamond
	case card.Heart:
		s = ph.Heart
	case card.Spade:
		s = ph.Spade
	}
	pc, _ := ph.MakeCard(s, ph.Rank(c.Rank()))
	return pc
}
