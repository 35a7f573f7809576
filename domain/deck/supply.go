package deck

import (
	"fmt"

	"github.com/luca-patrignani/cardtris/domain/card"
)

// DefaultWildcardsPerLevel is the number of jokers added to the supply for
// every level reached.
const DefaultWildcardsPerLevel = 2

// Supply is the shuffled, replenishing stock that falling cards are drawn
// from. It holds the 52 regular cards plus WildcardsPerLevel jokers per
// level, and one Blocker per level when blockers are enabled. Scored cards are
// handed back with Return, so the total in circulation only grows when the
// level does.
type Supply struct {
	cards             []card.Card
	level             int
	wildcardsPerLevel int
	blockers          bool
	shuffler          Shuffler
}

// Option configures a Supply.
type Option func(*Supply)

// WithShuffler replaces the default stream-backed shuffler.
func WithShuffler(s Shuffler) Option {
	return func(sp *Supply) {
		sp.shuffler = s
	}
}

func WithWildcardsPerLevel(n int) Option {
	return func(sp *Supply) {
		sp.wildcardsPerLevel = n
	}
}

func WithBlockers(enabled bool) Option {
	return func(sp *Supply) {
		sp.blockers = enabled
	}
}

// NewSupply builds a full, shuffled supply for the given level (>= 1).
func NewSupply(level int, opts ...Option) (*Supply, error) {
	if level < 1 {
		return nil, fmt.Errorf("supply level must be at least 1, got %d", level)
	}
	s := &Supply{
		level:             level,
		wildcardsPerLevel: DefaultWildcardsPerLevel,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.wildcardsPerLevel < 0 {
		return nil, fmt.Errorf("wildcards per level must not be negative, got %d", s.wildcardsPerLevel)
	}
	if s.shuffler == nil {
		s.shuffler = newStreamShuffler()
	}
	s.refill()
	return s, nil
}

// Draw removes and returns the top card. An empty supply is refilled from
// its full composition first, so Draw always succeeds.
func (s *Supply) Draw() card.Card {
	if len(s.cards) == 0 {
		s.refill()
	}
	c := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return c
}

// Return puts scored cards back and reshuffles.
func (s *Supply) Return(cards ...card.Card) {
	added := false
	for _, c := range cards {
		if c.IsZero() {
			continue
		}
		s.cards = append(s.cards, c)
		added = true
	}
	if added {
		s.shuffle()
	}
}

// AdvanceLevel grows the supply to the composition of a higher level. Lower
// or equal levels are ignored.
func (s *Supply) AdvanceLevel(level int) {
	if level <= s.level {
		return
	}
	for l := s.level; l < level; l++ {
		s.cards = append(s.cards, specials(s.wildcardsPerLevel, s.blockers)...)
	}
	s.level = level
	s.shuffle()
}

// Len returns the number of cards currently in the supply.
func (s *Supply) Len() int {
	return len(s.cards)
}

func (s *Supply) Level() int {
	return s.level
}

// Composition is the number of cards in circulation at the current level:
// those in the supply plus those on the board or in flight.
func (s *Supply) Composition() int {
	n := 52 + s.wildcardsPerLevel*s.level
	if s.blockers {
		n += s.level
	}
	return n
}

func (s *Supply) refill() {
	cards := card.Standard52()
	for l := 0; l < s.level; l++ {
		cards = append(cards, specials(s.wildcardsPerLevel, s.blockers)...)
	}
	s.cards = cards
	s.shuffle()
}

func (s *Supply) shuffle() {
	s.shuffler.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}

// specials returns the extra cards one level adds.
func specials(wildcards int, blockers bool) []card.Card {
	out := make([]card.Card, 0, wildcards+1)
	for i := 0; i < wildcards; i++ {
		out = append(out, card.NewWildcard())
	}
	if blockers {
		out = append(out, card.NewBlocker())
	}
	return out
}
