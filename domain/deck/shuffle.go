package deck

import (
	"crypto/cipher"
	"encoding/binary"
	"math"

	"go.dedis.ch/kyber/v4/suites"
)

// Shuffler permutes n elements through swap. *math/rand.Rand satisfies it,
// which is how tests get a reproducible supply.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

var suite suites.Suite = suites.MustFind("Ed25519")

// streamShuffler runs Fisher-Yates with indices drawn from the suite's
// random stream.
type streamShuffler struct {
	stream cipher.Stream
}

func newStreamShuffler() *streamShuffler {
	return &streamShuffler{stream: suite.RandomStream()}
}

func (s *streamShuffler) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.intn(i + 1)
		swap(i, j)
	}
}

// intn returns a uniform value in [0, n) by rejection sampling 64-bit draws.
func (s *streamShuffler) intn(n int) int {
	bound := uint64(n)
	limit := math.MaxUint64 - math.MaxUint64%bound
	var buf [8]byte
	for {
		clear(buf[:])
		s.stream.XORKeyStream(buf[:], buf[:])
		v := binary.LittleEndian.Uint64(buf[:])
		if v < limit {
			return int(v % bound)
		}
	}
}
