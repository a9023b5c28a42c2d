package amorph

// Vec3 is a position or displacement in 3-dimensional space, in Angstrom.
type Vec3 [3]float64

// Box is a periodic rectangular simulation cell described by its per-axis
// extents in Angstrom. The cell spans [0, extent) along each axis.
type Box [3]float64

// Volume returns the cell volume in cubic Angstrom.
func (b Box) Volume() float64 {
	return b[0] * b[1] * b[2]
}

// Species is an atomic species resolved against a PropertyTable.
// The numeric attributes are fixed once looked up.
type Species struct {
	Symbol string  `json:"symbol"`
	Number int     `json:"number"`
	Radius float64 `json:"radius"` // covalent radius, Angstrom
	Mass   float64 `json:"mass"`   // atomic mass, amu
}

// Component is one species entry of a stoichiometry with its integer
// ratio weight (e.g. Si:1, O:2 for silica).
type Component struct {
	Symbol string `json:"symbol"`
	Weight int    `json:"weight"`
}

// Stoichiometry is an ordered list of components. Order matters for
// reproducibility: species are planned and placed in this order.
type Stoichiometry []Component

// TotalWeight returns the sum of all ratio weights, i.e. the number of
// atoms in one formula unit.
func (s Stoichiometry) TotalWeight() int {
	total := 0
	for _, c := range s {
		total += c.Weight
	}
	return total
}

// Particle is one placed atom: a resolved species and its position
// inside the box.
type Particle struct {
	Species  Species `json:"species"`
	Position Vec3    `json:"position"`
}

// SpeciesCount pairs a species symbol with its planned atom count.
type SpeciesCount struct {
	Symbol string `json:"symbol"`
	Count  int    `json:"count"`
}

// BuildResult is the outcome of one structure build: the full particle
// list, the cell it lives in, the planned per-species counts, how many
// particles had to be placed without a constraint guarantee, and the
// realized density computed from the placed masses.
type BuildResult struct {
	Particles     []Particle     `json:"particles"`
	Box           Box            `json:"box"`
	PlannedCounts []SpeciesCount `json:"planned_counts"`
	Fallbacks     int            `json:"fallbacks"`
	Density       float64        `json:"density"`       // amu/A^3
	DensityGCm3   float64        `json:"density_g_cm3"` // g/cm^3
}

// TotalMass returns the summed atomic mass of all placed particles in amu.
func (r *BuildResult) TotalMass() float64 {
	total := 0.0
	for _, p := range r.Particles {
		total += p.Species.Mass
	}
	return total
}
