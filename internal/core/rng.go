package core

import (
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Range returns a float in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	return lo + r.r.Float64()*(hi-lo)
}

// InRing returns a point around the origin whose distance lies in
// [inner, outer).
func (r *RNG) InRing(inner, outer float64) cp.Vector {
	angle := r.Range(-math.Pi, math.Pi)
	return cp.ForAngle(angle).Mult(r.Range(inner, outer))
}
