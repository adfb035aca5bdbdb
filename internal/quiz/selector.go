package quiz

import (
	"math/rand/v2"

	"github.com/samber/lo"
)

// Rand is the source of randomness for question selection
type Rand interface {
	IntN(n int) int
}

type defaultRand struct{}

func (defaultRand) IntN(n int) int {
	return rand.IntN(n)
}

// PickNext returns an index chosen uniformly among the indices of [0, size)
// that are not in used. The boolean is false once every index is used.
func PickNext(size int, used IndexSet, rng Rand) (int, bool) {
	if size <= 0 {
		return NoQuestion, false
	}
	if rng == nil {
		rng = defaultRand{}
	}

	eligible := lo.Filter(lo.Range(size), func(i int, _ int) bool {
		return !used.Has(i)
	})
	if len(eligible) == 0 {
		return NoQuestion, false
	}

	return eligible[rng.IntN(len(eligible))], true
}
