// Package level holds the rules that change as the game advances: which
// hands still count, how much they are worth and how fast cards fall.
package level

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/luca-patrignani/cardtris/domain/poker"
)

// maxDisqualified is the strongest category a level can disqualify. Straight
// Flush and Royal Flush always count.
const maxDisqualified = poker.FourOfAKind

// IsHandValid reports whether a detected hand of category c scores at the
// given level. Level L disqualifies every category up to the (L-1)th one,
// so One Pair stops counting at level 2 and only Straight Flush and Royal
// Flush are left from level 9 on. No Hand is never valid.
func IsHandValid(c poker.Category, level int) bool {
	if c == poker.NoHand {
		return false
	}
	cutoff := poker.Category(min(max(level-1, 0), int(maxDisqualified)))
	return c > cutoff
}

// Multiplier is the factor applied to base scores at the given level.
func Multiplier(level int) float64 {
	return float64(level)
}

// Award returns the points a hand with the given base score earns at level,
// rounded up.
func Award(base, level int) int {
	return int(math.Ceil(float64(base) * Multiplier(level)))
}

// DropInterval is the time a falling card waits between steps. It shrinks
// by an eighth of the base-min span per level and never goes below min.
// Jokers fall twice as fast.
func DropInterval(level int, wildcard bool, base, minimum time.Duration) time.Duration {
	step := (base - minimum) / 8
	d := base - time.Duration(max(level-1, 0))*step
	if wildcard {
		d /= 2
	}
	return max(d, minimum)
}

// InvalidHandPolicy decides what happens to the cards of a hand that is
// detected but no longer counts at the current level.
type InvalidHandPolicy int

const (
	// Keep leaves the cards on the board.
	Keep InvalidHandPolicy = iota
	// Clear removes the cards without awarding points.
	Clear
)

func (p InvalidHandPolicy) String() string {
	switch p {
	case Keep:
		return "keep"
	case Clear:
		return "clear"
	}
	return fmt.Sprintf("InvalidHandPolicy(%d)", int(p))
}

// ParseInvalidHandPolicy accepts "keep" or "clear", case insensitive.
func ParseInvalidHandPolicy(s string) (InvalidHandPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keep":
		return Keep, nil
	case "clear":
		return Clear, nil
	}
	return Keep, fmt.Errorf("unknown invalid hand policy %q", s)
}
