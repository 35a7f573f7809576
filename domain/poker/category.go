package poker

// Category is a poker hand class. Higher values are stronger hands and
// always score at least as much as lower ones.
type Category int

const (
	NoHand Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// Categories lists every category from weakest to strongest.
var Categories = []Category{
	NoHand, OnePair, TwoPair, ThreeOfAKind, Straight,
	Flush, FullHouse, FourOfAKind, StraightFlush, RoyalFlush,
}

var categoryNames = map[Category]string{
	NoHand:        "No Hand",
	OnePair:       "One Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
}

var baseScores = map[Category]int{
	NoHand:        0,
	OnePair:       25,
	TwoPair:       50,
	ThreeOfAKind:  100,
	Straight:      150,
	Flush:         200,
	FullHouse:     300,
	FourOfAKind:   500,
	StraightFlush: 1000,
	RoyalFlush:    2000,
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Unknown"
}

// BaseScore returns the points the category is worth before the level
// multiplier.
func (c Category) BaseScore() int {
	return baseScores[c]
}

// ParseCategory is the inverse of String.
func ParseCategory(name string) (Category, bool) {
	for c, n := range categoryNames {
		if n == name {
			return c, true
		}
	}
	return NoHand, false
}
