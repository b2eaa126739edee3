package player

import (
	"math/rand/v2"
	"sync"

	"github.com/roach88/rps/internal/rps"
)

// Chooser picks one hand from a non-empty set.
type Chooser interface {
	Choose(hands []rps.Hand) rps.Hand
}

// AIPlayer is the automated opponent. Its choice never depends on history.
type AIPlayer struct {
	hands   []rps.Hand
	chooser Chooser
}

// NewAIPlayer creates an opponent drawing from hands with the given chooser.
// A nil chooser selects uniformly at random.
func NewAIPlayer(hands []rps.Hand, chooser Chooser) *AIPlayer {
	if chooser == nil {
		chooser = NewRandomChooser(0)
	}
	return &AIPlayer{hands: hands, chooser: chooser}
}

// NextHand returns the opponent's hand for the next turn.
func (p *AIPlayer) NextHand() rps.Hand {
	return p.chooser.Choose(p.hands)
}

// RandomChooser selects uniformly at random.
type RandomChooser struct {
	rng *rand.Rand
}

// NewRandomChooser returns a uniform chooser. A zero seed uses the
// runtime's random source; any other seed gives a reproducible sequence.
func NewRandomChooser(seed uint64) *RandomChooser {
	if seed == 0 {
		return &RandomChooser{}
	}
	return &RandomChooser{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Choose returns a uniformly random element of hands.
func (c *RandomChooser) Choose(hands []rps.Hand) rps.Hand {
	if c.rng == nil {
		return hands[rand.IntN(len(hands))]
	}
	return hands[c.rng.IntN(len(hands))]
}

// FixedChooser returns predetermined hands in order, for tests and
// scripted sessions.
//
// Panics once all hands have been consumed.
type FixedChooser struct {
	mu    sync.Mutex
	hands []rps.Hand
	idx   int
}

// NewFixedChooser creates a chooser that returns hands in order.
func NewFixedChooser(hands ...rps.Hand) *FixedChooser {
	return &FixedChooser{hands: hands}
}

// Choose returns the next scripted hand, ignoring the offered set.
func (c *FixedChooser) Choose([]rps.Hand) rps.Hand {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.idx >= len(c.hands) {
		panic("FixedChooser: all hands exhausted")
	}
	h := c.hands[c.idx]
	c.idx++
	return h
}

// Remaining returns how many scripted hands are left.
func (c *FixedChooser) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.hands) - c.idx
}
