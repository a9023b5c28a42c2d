package amorph

import "testing"

func TestConstraintChecker_Allowed(t *testing.T) {
	table := NewPropertyTable()
	si, _ := table.Lookup("Si")
	o, _ := table.Lookup("O")
	box := Box{10, 10, 10}
	checker := NewConstraintChecker(1.1)

	siPair := MinBondLength(si, si) * 1.1  // 2.442
	siOPair := MinBondLength(si, o) * 1.1  // 1.947

	tests := []struct {
		name      string
		candidate Vec3
		species   Species
		placed    []Particle
		want      bool
	}{
		{
			name:      "empty placed set always allowed",
			candidate: Vec3{5, 5, 5},
			species:   si,
			placed:    nil,
			want:      true,
		},
		{
			name:      "far from single particle",
			candidate: Vec3{5, 5, 5},
			species:   si,
			placed:    []Particle{{Species: si, Position: Vec3{1, 1, 1}}},
			want:      true,
		},
		{
			name:      "too close to single particle",
			candidate: Vec3{1.5, 1, 1},
			species:   si,
			placed:    []Particle{{Species: si, Position: Vec3{1, 1, 1}}},
			want:      false,
		},
		{
			name:      "just inside the allowed separation",
			candidate: Vec3{1 + 2.45, 1, 1},
			species:   si,
			placed:    []Particle{{Species: si, Position: Vec3{1, 1, 1}}},
			want:      true,
		},
		{
			name:      "just below the allowed separation",
			candidate: Vec3{1 + 2.43, 1, 1},
			species:   si,
			placed:    []Particle{{Species: si, Position: Vec3{1, 1, 1}}},
			want:      false,
		},
		{
			name:      "violation only through periodic image",
			candidate: Vec3{9.8, 5, 5},
			species:   si,
			placed:    []Particle{{Species: si, Position: Vec3{0.2, 5, 5}}},
			want:      false,
		},
		{
			name:      "pair limit depends on both radii",
			candidate: Vec3{1 + (siPair+siOPair)/2, 1, 1},
			species:   o,
			placed:    []Particle{{Species: si, Position: Vec3{1, 1, 1}}},
			want:      true,
		},
		{
			name:      "one violating particle among many",
			candidate: Vec3{5, 5, 5},
			species:   si,
			placed: []Particle{
				{Species: si, Position: Vec3{1, 1, 1}},
				{Species: o, Position: Vec3{9, 9, 9}},
				{Species: si, Position: Vec3{5.5, 5, 5}},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checker.Allowed(tt.candidate, tt.species, tt.placed, box)
			if got != tt.want {
				t.Errorf("Expected Allowed=%v, got %v", tt.want, got)
			}
		})
	}
}

func TestConstraintChecker_Monotonic(t *testing.T) {
	// Growing the placed set can only turn an allowed candidate into a
	// disallowed one, never the reverse.
	table := NewPropertyTable()
	si, _ := table.Lookup("Si")
	box := Box{10, 10, 10}
	checker := NewConstraintChecker(1.1)

	candidate := Vec3{5, 5, 5}
	additions := []Particle{
		{Species: si, Position: Vec3{1, 1, 1}},
		{Species: si, Position: Vec3{9, 9, 9}},
		{Species: si, Position: Vec3{5, 1, 9}},
		{Species: si, Position: Vec3{5.8, 5, 5}}, // this one violates
		{Species: si, Position: Vec3{2, 8, 2}},
	}

	var placed []Particle
	wasAllowed := checker.Allowed(candidate, si, placed, box)
	if !wasAllowed {
		t.Fatal("Expected empty placed set to allow any candidate")
	}
	for _, p := range additions {
		placed = append(placed, p)
		allowed := checker.Allowed(candidate, si, placed, box)
		if allowed && !wasAllowed {
			t.Fatalf("Expected disallowed candidate to stay disallowed after adding %v", p.Position)
		}
		wasAllowed = allowed
	}
	if wasAllowed {
		t.Error("Expected candidate to end up disallowed")
	}
}
