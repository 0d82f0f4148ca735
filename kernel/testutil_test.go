package kernel

import "golang.org/x/exp/rand"

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
