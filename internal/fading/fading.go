// Package fading samples a per-instant attenuation multiplier from a class
// tag and K-factor (spec.md §4.4).
package fading

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/banshee-data/radiosim/internal/world"
)

// Model is a seedable, per-stream fading sampler. It owns its RNG; no
// process-global RNG is used, and a Model is not safe for concurrent use —
// callers that fan out per-query sampling (as PropagationFacade's caller
// does, one sample per time instant) should construct one Model per stream
// (spec.md §9).
type Model struct {
	rnd *rand.Rand
}

// New returns a Model seeded deterministically from seed.
func New(seed int64) *Model {
	return &Model{rnd: rand.New(rand.NewSource(seed))}
}

// Sample draws one attenuation multiplier for the given class and K-factor.
//   - class == OutOfRange: 0 (no signal).
//   - K == +Inf: deterministic LOS, 1.
//   - K == 0: Rayleigh (no dominant path).
//   - otherwise: Rician envelope with the given K.
func (m *Model) Sample(class world.ClassTag, k float64) float64 {
	if class == world.OutOfRange {
		return 0
	}
	if math.IsInf(k, 1) {
		return 1
	}
	if k == 0 {
		r := distuv.Rayleigh{Sigma: 1 / math.Sqrt2, Src: m.rnd}
		return r.Rand()
	}

	// Rician envelope: sqrt((s+X)^2 + Y^2) with X,Y ~ N(0,sigma^2),
	// s = sqrt(K/(K+1)), sigma^2 = 1/(2(K+1)), normalized to unit mean power.
	sigma := math.Sqrt(1 / (2 * (k + 1)))
	s := math.Sqrt(k / (k + 1))
	nx := distuv.Normal{Mu: 0, Sigma: sigma, Src: m.rnd}
	ny := distuv.Normal{Mu: 0, Sigma: sigma, Src: m.rnd}
	x := nx.Rand()
	y := ny.Rand()
	return math.Hypot(s+x, y)
}

// SampleSeries draws n successive samples for the same (class,k), used by
// PropagationFacade to build a sampled attenuation function over a time
// interval (spec.md §6).
func (m *Model) SampleSeries(class world.ClassTag, k float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = m.Sample(class, k)
	}
	return out
}
