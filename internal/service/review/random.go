package review

import "math/rand"

// Chooser supplies the randomness used when assembling a card: picking the
// right answer, picking a recording from a bundle and shuffling the choice
// list. It exists as an interface so tests can make selection deterministic.
type Chooser interface {
	// Intn returns a uniform random int in [0, n). n must be positive.
	Intn(n int) int

	// Shuffle pseudo-randomizes the order of n elements through swap.
	Shuffle(n int, swap func(i, j int))
}

// mathChooser is the default Chooser backed by math/rand's shared source,
// which is safe for concurrent use.
type mathChooser struct{}

func (mathChooser) Intn(n int) int { return rand.Intn(n) }

func (mathChooser) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// NewChooser returns the default random Chooser.
func NewChooser() Chooser {
	return mathChooser{}
}
