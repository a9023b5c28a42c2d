package amorph

import (
	"math"
	"math/rand"
)

// Selector proposes candidate positions for one species at a time and
// picks the best constraint-satisfying one by a greedy best-of-N search:
// each accepted candidate is scored by its minimum plain (non-periodic)
// distance to the placed set divided by the temperature, and the highest
// score wins. A worse candidate is never preferred over a better one, so
// despite the annealing-flavored temperature parameter this is not a
// Metropolis acceptance rule.
//
// The scoring distance is intentionally non-periodic while the
// constraint check is periodic; the mismatch is inherited behavior that
// callers rely on, not an oversight to fix here.
type Selector struct {
	checker     *ConstraintChecker
	rng         *rand.Rand
	maxAttempts int
	temperature float64
}

// NewSelector creates a selector drawing candidates from rng.
func NewSelector(checker *ConstraintChecker, rng *rand.Rand, maxAttempts int, temperature float64) *Selector {
	return &Selector{
		checker:     checker,
		rng:         rng,
		maxAttempts: maxAttempts,
		temperature: temperature,
	}
}

// Select returns a position for the given species. The fallback flag is
// true when no candidate satisfied the separation constraint within the
// attempt budget and an unconstrained uniform position was returned
// instead; the caller must surface that, the position carries no
// separation guarantee.
func (s *Selector) Select(sp Species, placed []Particle, box Box) (pos Vec3, fallback bool) {
	if len(placed) == 0 {
		return s.randomAnywhere(box), false
	}

	var best Vec3
	maxScore := math.Inf(-1)
	found := false

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		candidate := s.randomInterior(box)
		if !s.checker.Allowed(candidate, sp, placed, box) {
			continue
		}
		score := s.minPlainDistance(candidate, placed) / s.temperature
		if score > maxScore {
			best = candidate
			maxScore = score
			found = true
		}
	}

	if !found {
		return s.randomAnywhere(box), true
	}
	return best, false
}

// randomAnywhere draws a uniform position in [0, extent) per axis.
func (s *Selector) randomAnywhere(box Box) Vec3 {
	var v Vec3
	for i := 0; i < 3; i++ {
		v[i] = s.rng.Float64() * box[i]
	}
	return v
}

// randomInterior draws a uniform position biased away from the box
// edges: [0.5, extent-0.5) for axes longer than 1 Angstrom, to reduce
// boundary artifacts under periodic wrap.
func (s *Selector) randomInterior(box Box) Vec3 {
	var v Vec3
	for i := 0; i < 3; i++ {
		if box[i] > 1 {
			v[i] = s.rng.Float64()*(box[i]-1) + 0.5
		} else {
			v[i] = s.rng.Float64() * box[i]
		}
	}
	return v
}

func (s *Selector) minPlainDistance(candidate Vec3, placed []Particle) float64 {
	min := math.Inf(1)
	for _, p := range placed {
		if d := Distance(candidate, p.Position); d < min {
			min = d
		}
	}
	return min
}
