package card

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"
)

// Suit identifies the suit of a card. Wildcards and Blockers carry NoSuit.
type Suit uint8

// Card suit constants (0-3), NoSuit for jokers and blockers.
const (
	Club    Suit = 0 // ♣ (black)
	Diamond Suit = 1 // ♦ (red)
	Heart   Suit = 2 // ♥ (red)
	Spade   Suit = 3 // ♠ (black)
	NoSuit  Suit = 4
)

// Card rank constants for face cards and ace
const (
	Ace   = 1
	Jack  = 11
	Queen = 12
	King  = 13
)

// Kind tells regular cards apart from the special ones.
type Kind uint8

const (
	Regular Kind = iota
	Wildcard
	Blocker
)

// ErrInvalidCard is returned when a suit/rank pair does not name a playing card.
var ErrInvalidCard = errors.New("invalid card")

// Card is an immutable playing card. The zero value is not a card and is used
// by the grid to mark an empty cell. Two cards are equal when suit, rank and
// kind are equal.
type Card struct {
	suit Suit  // 0-3: clubs, diamonds, hearts, spades; 4 for specials
	rank uint8 // 1-13: ace through king, 0 for specials
	kind Kind
}

// New creates a regular Card with validation.
//
// Parameters:
//   - suit: Club, Diamond, Heart or Spade
//   - rank: 1-13 (Ace=1, 2-10=face value, Jack=11, Queen=12, King=13)
//
// Returns the Card or an error wrapping ErrInvalidCard.
func New(suit Suit, rank uint8) (Card, error) {
	if suit > Spade || rank == 0 || rank > King {
		return Card{}, fmt.Errorf("%w: suit %d, rank %d", ErrInvalidCard, suit, rank)
	}
	return Card{suit: suit, rank: rank, kind: Regular}, nil
}

// MustNew is New for literals known to be valid. It panics otherwise.
func MustNew(suit Suit, rank uint8) Card {
	c, err := New(suit, rank)
	if err != nil {
		panic(err)
	}
	return c
}

// NewWildcard returns a joker, usable as any suit and rank during evaluation.
func NewWildcard() Card {
	return Card{suit: NoSuit, kind: Wildcard}
}

// NewBlocker returns a card that interrupts every run it sits in.
func NewBlocker() Card {
	return Card{suit: NoSuit, kind: Blocker}
}

// FromInt converts a raw card number (1-52) to a Card. Card numbers map to suits in order
// (clubs, diamonds, hearts, spades) with ranks 1-13 within each suit.
func FromInt(raw int) (Card, error) {
	if raw > 52 || raw < 1 {
		return Card{}, fmt.Errorf("%w: number %d", ErrInvalidCard, raw)
	}
	return New(Suit((raw-1)/13), uint8((raw-1)%13+1))
}

// ToInt is the inverse of FromInt. Special cards map to 0.
func (c Card) ToInt() int {
	if c.kind != Regular {
		return 0
	}
	return int(c.suit)*13 + int(c.rank)
}

// Standard52 returns one card for every suit/rank combination, clubs first.
func Standard52() []Card {
	cards := make([]Card, 0, 52)
	for i := 1; i <= 52; i++ {
		c, _ := FromInt(i)
		cards = append(cards, c)
	}
	return cards
}

// Suit returns the suit of the Card.
func (c Card) Suit() Suit {
	return c.suit
}

// Rank returns the rank of the Card (1-13), 0 for wildcards and blockers.
func (c Card) Rank() uint8 {
	return c.rank
}

func (c Card) Kind() Kind {
	return c.kind
}

func (c Card) IsWildcard() bool {
	return c.kind == Wildcard
}

func (c Card) IsBlocker() bool {
	return c.kind == Blocker
}

// IsZero reports whether c is the zero value, i.e. no card at all.
func (c Card) IsZero() bool {
	return c == Card{}
}

func (c Card) IsRed() bool {
	return c.kind == Regular && (c.suit == Diamond || c.suit == Heart)
}

// String returns a human-readable representation of the Card using suit symbols
// (♣, ♦, ♥, ♠) and rank abbreviations (A, J, Q, K, or number). Jokers print as
// a star and blockers as a solid block.
func (c Card) String() string {
	switch c.kind {
	case Wildcard:
		return pterm.LightMagenta("★")
	case Blocker:
		return pterm.Gray("▓")
	}
	if c.rank == 0 {
		return "·"
	}

	var suit string
	switch c.suit {
	case Club:
		suit = pterm.Black("♣")
	case Diamond:
		suit = pterm.LightRed("♦")
	case Heart:
		suit = pterm.LightRed("♥")
	case Spade:
		suit = pterm.Black("♠")
	default:
		suit = "?"
	}

	return RankString(c.rank) + suit
}

// RankString abbreviates a rank the way it is printed on a card.
func RankString(rank uint8) string {
	switch rank {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return fmt.Sprintf("%d", rank)
	}
}
