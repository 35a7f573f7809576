// Package deck implements the card supply the falling pieces are drawn from.
//
// The supply is a closed economy: cards scored off the board are returned
// and reshuffled, and the only growth is the handful of jokers (and, when
// enabled, blockers) added each time the level increases. Shuffling uses
// Fisher-Yates over indices drawn from the Ed25519 suite's random stream;
// tests inject a seeded math/rand source instead.
package deck
