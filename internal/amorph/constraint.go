package amorph

// ConstraintChecker decides whether a candidate position keeps the
// minimum pairwise separation to every already-placed particle. The
// minimum allowed separation for a pair is minFactor times the sum of
// the two covalent radii, measured as the minimum-image distance.
type ConstraintChecker struct {
	minFactor float64
}

// NewConstraintChecker creates a checker with the given separation factor.
func NewConstraintChecker(minFactor float64) *ConstraintChecker {
	return &ConstraintChecker{minFactor: minFactor}
}

// Allowed reports whether the candidate position for the given species
// satisfies the separation rule against all placed particles. An empty
// placed set always allows the candidate. The scan short-circuits on the
// first violation; the result does not depend on scan order.
func (c *ConstraintChecker) Allowed(candidate Vec3, sp Species, placed []Particle, box Box) bool {
	for _, p := range placed {
		minAllowed := MinBondLength(sp, p.Species) * c.minFactor
		if MinimumImageDistance(candidate, p.Position, box) < minAllowed {
			return false
		}
	}
	return true
}
