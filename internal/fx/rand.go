package fx

import (
	"math/rand/v2"
	"time"
)

// Rand is the randomness source used for every generated parameter.
// Float64 must return a value in [0, 1).
type Rand interface {
	Float64() float64
}

// NewRand returns a PCG-backed Rand seeded with seed.
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func defaultRand() Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}

// between returns a uniform value in [lo, hi).
func between(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
