package amorph

import (
	"fmt"
	"math"
)

// Unit conversion constants. Densities are given in g/cm^3 while masses
// are in amu and cell extents in Angstrom; the conversion is applied
// exactly once, here.
const (
	gramsPerAMU     = 1.66053906660e-24
	cm3PerCubicAngs = 1e-24
)

// PlanCounts converts a target mass density into integer atom counts per
// species. Each species gets its own candidate formula-unit count derived
// from the cell volume, the target density and that species' mass
// contribution to one formula unit; the final count is the ratio weight
// times that candidate, rounded. Counts are therefore not forced onto one
// shared formula-unit count across species.
//
// The species slice must be index-aligned with the stoichiometry.
func PlanCounts(species []Species, stoich Stoichiometry, box Box, targetDensity float64) ([]int, error) {
	if len(species) != len(stoich) {
		return nil, fmt.Errorf("species/stoichiometry length mismatch: %d vs %d", len(species), len(stoich))
	}

	volume := box.Volume()
	if volume <= 0 || !isFinite(volume) {
		return nil, fmt.Errorf("%w: box volume %v", ErrNonFiniteResult, volume)
	}
	volumeCm3 := volume * cm3PerCubicAngs
	cellMassG := targetDensity * volumeCm3
	if !isFinite(cellMassG) {
		return nil, fmt.Errorf("%w: cell mass %v g", ErrNonFiniteResult, cellMassG)
	}

	counts := make([]int, len(stoich))
	for i, c := range stoich {
		unitMassG := species[i].Mass * gramsPerAMU * float64(c.Weight)
		formulaUnits := cellMassG / unitMassG
		if !isFinite(formulaUnits) {
			return nil, fmt.Errorf("%w: formula units for %s", ErrNonFiniteResult, c.Symbol)
		}

		atoms := float64(c.Weight) * formulaUnits
		if math.IsNaN(atoms) {
			return nil, fmt.Errorf("%w: count for %s is NaN", ErrInvalidCount, c.Symbol)
		}
		n := int(math.Round(atoms))
		if n < 0 {
			return nil, fmt.Errorf("%w: count for %s is %d", ErrInvalidCount, c.Symbol, n)
		}
		counts[i] = n
	}
	return counts, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
