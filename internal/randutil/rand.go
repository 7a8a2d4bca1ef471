package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG state words are derived from the one seed so a game can be replayed
// from the seed printed in its summary.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seed returns seed unchanged when it is non-zero, otherwise a seed derived
// from the current time. Zero means "random" on the command line.
func Seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return int64(mix(uint64(time.Now().UnixNano())) >> 1)
}

// Derive returns the i-th child seed of base. Simulated games use it so every
// game gets an independent but reproducible stream.
func Derive(base int64, i int) int64 {
	seed := int64(mix(uint64(base)+uint64(i)*goldenRatio64) >> 1)
	if seed == 0 {
		return 1
	}
	return seed
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
