// Package card models the playing cards that fall onto the board: the 52
// regular suit/rank combinations, the Wildcard (joker) that may stand for any
// of them during hand evaluation, and the optional Blocker that interrupts
// every run it sits in.
//
// Cards are small comparable values. Equality is structural; two cards with
// the same suit, rank and kind are the same card.
package card
