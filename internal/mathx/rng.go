package mathx

import (
	"hash/fnv"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// RNG is a per-entity or per-system seeded Gaussian noise source. Design
// note open question #4 requires noise generators to be seeded per-entity
// or per-system rather than drawn from an implicit global generator, so
// that a run with a fixed thread count and fixed seed reproduces bit-for-bit
// regardless of which worker happened to execute which system.
type RNG struct {
	r *rand.Rand
}

// NewRNG constructs a deterministic generator from seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Gaussian returns a zero-mean Gaussian sample with the given standard
// deviation.
func (g *RNG) Gaussian(sigma float64) float64 {
	return g.r.NormFloat64() * sigma
}

// GaussianVec3 returns an iid-per-axis zero-mean Gaussian vector.
func (g *RNG) GaussianVec3(sigma float64) mgl64.Vec3 {
	return mgl64.Vec3{g.Gaussian(sigma), g.Gaussian(sigma), g.Gaussian(sigma)}
}

// EntitySeed derives a stable per-entity seed from a run-wide base seed, a
// system name, and an entity index, so that re-running the same scenario
// with the same thread count reproduces the same noise stream per entity
// per system regardless of scheduling order.
func EntitySeed(baseSeed int64, systemName string, entityIndex uint32) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(systemName))
	sum := h.Sum64()
	return int64(sum) ^ baseSeed ^ int64(entityIndex)*2654435761
}
