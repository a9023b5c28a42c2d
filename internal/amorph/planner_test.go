package amorph

import (
	"errors"
	"math"
	"testing"
)

// densityForAtoms returns the g/cm^3 density that puts exactly n atoms of
// the species into the box.
func densityForAtoms(sp Species, n int, box Box) float64 {
	massG := sp.Mass * gramsPerAMU * float64(n)
	return massG / (box.Volume() * cm3PerCubicAngs)
}

func TestPlanCounts_SingleSpecies(t *testing.T) {
	table := NewPropertyTable()
	si, _ := table.Lookup("Si")
	box := Box{10, 10, 10}

	tests := []struct {
		name  string
		atoms int
	}{
		{name: "one atom", atoms: 1},
		{name: "ten atoms", atoms: 10},
		{name: "many atoms", atoms: 137},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stoich := Stoichiometry{{Symbol: "Si", Weight: 1}}
			density := densityForAtoms(si, tt.atoms, box)
			counts, err := PlanCounts([]Species{si}, stoich, box, density)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if len(counts) != 1 || counts[0] != tt.atoms {
				t.Errorf("Expected counts [%d], got %v", tt.atoms, counts)
			}
		})
	}
}

func TestPlanCounts_StoichiometryRatio(t *testing.T) {
	table := NewPropertyTable()
	si, _ := table.Lookup("Si")
	o, _ := table.Lookup("O")
	stoich := Stoichiometry{{Symbol: "Si", Weight: 1}, {Symbol: "O", Weight: 2}}
	box := Box{20, 20, 20}

	counts, err := PlanCounts([]Species{si, o}, stoich, box, 2.2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("Expected 2 counts, got %v", counts)
	}

	// Each species derives its own formula-unit count, so the realized
	// ratio only approximates 1:2 up to rounding.
	ratio := float64(counts[1]) / float64(counts[0])
	if math.Abs(ratio-2.0) > 0.2 {
		t.Errorf("Expected O:Si ratio near 2, got %v (counts %v)", ratio, counts)
	}
	for i, c := range counts {
		if c <= 0 {
			t.Errorf("Expected positive count for species %d, got %d", i, c)
		}
	}
}

func TestPlanCounts_Errors(t *testing.T) {
	table := NewPropertyTable()
	si, _ := table.Lookup("Si")

	tests := []struct {
		name    string
		species []Species
		stoich  Stoichiometry
		box     Box
		density float64
		wantErr error
	}{
		{
			name:    "zero-volume box",
			species: []Species{si},
			stoich:  Stoichiometry{{Symbol: "Si", Weight: 1}},
			box:     Box{0, 10, 10},
			density: 1.0,
			wantErr: ErrNonFiniteResult,
		},
		{
			name:    "zero mass species",
			species: []Species{{Symbol: "Si", Mass: 0}},
			stoich:  Stoichiometry{{Symbol: "Si", Weight: 1}},
			box:     Box{10, 10, 10},
			density: 1.0,
			wantErr: ErrNonFiniteResult,
		},
		{
			name:    "non-finite density",
			species: []Species{si},
			stoich:  Stoichiometry{{Symbol: "Si", Weight: 1}},
			box:     Box{10, 10, 10},
			density: math.Inf(1),
			wantErr: ErrNonFiniteResult,
		},
		{
			name:    "negative density",
			species: []Species{si},
			stoich:  Stoichiometry{{Symbol: "Si", Weight: 1}},
			box:     Box{10, 10, 10},
			density: -1.0,
			wantErr: ErrInvalidCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlanCounts(tt.species, tt.stoich, tt.box, tt.density)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
