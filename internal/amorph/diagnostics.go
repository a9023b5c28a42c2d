package amorph

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// NeighborStats summarizes the per-particle nearest-neighbor
// minimum-image distances of a finished structure.
type NeighborStats struct {
	Min    float64 `json:"min"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Diagnostics is a post-build quality report. Violations counts particle
// pairs closer than minFactor times their combined bond length; fallback
// placements make this non-zero by design.
type Diagnostics struct {
	Particles       int           `json:"particles"`
	NearestNeighbor NeighborStats `json:"nearest_neighbor"`
	Violations      int           `json:"violations"`
	PackingFraction float64       `json:"packing_fraction"`
}

// Analyze computes the diagnostics of a build result. The O(n^2) pair
// scan is fine at the cell sizes this generator targets.
func Analyze(result *BuildResult, minFactor float64) Diagnostics {
	diag := Diagnostics{Particles: len(result.Particles)}

	sphereVolume := 0.0
	for _, p := range result.Particles {
		r := p.Species.Radius
		sphereVolume += 4.0 / 3.0 * math.Pi * r * r * r
	}
	if v := result.Box.Volume(); v > 0 {
		diag.PackingFraction = sphereVolume / v
	}

	if len(result.Particles) < 2 {
		return diag
	}

	nearest := make([]float64, len(result.Particles))
	for i := range nearest {
		nearest[i] = math.Inf(1)
	}
	for i, a := range result.Particles {
		for j := i + 1; j < len(result.Particles); j++ {
			b := result.Particles[j]
			d := MinimumImageDistance(a.Position, b.Position, result.Box)
			if d < nearest[i] {
				nearest[i] = d
			}
			if d < nearest[j] {
				nearest[j] = d
			}
			if d < MinBondLength(a.Species, b.Species)*minFactor {
				diag.Violations++
			}
		}
	}

	diag.NearestNeighbor = NeighborStats{
		Min:    floats.Min(nearest),
		Mean:   stat.Mean(nearest, nil),
		StdDev: stat.StdDev(nearest, nil),
	}
	return diag
}
