package amorph

import (
	"math"
	"math/rand"
	"testing"
)

func TestMinimumImageDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		box  Box
		want float64
	}{
		{
			name: "no wrap needed",
			a:    Vec3{1, 1, 1},
			b:    Vec3{2, 1, 1},
			box:  Box{10, 10, 10},
			want: 1.0,
		},
		{
			name: "wrap across one axis",
			a:    Vec3{0.5, 0, 0},
			b:    Vec3{9.5, 0, 0},
			box:  Box{10, 10, 10},
			want: 1.0,
		},
		{
			name: "wrap across all axes",
			a:    Vec3{0.5, 0.5, 0.5},
			b:    Vec3{9.5, 9.5, 9.5},
			box:  Box{10, 10, 10},
			want: math.Sqrt(3),
		},
		{
			name: "anisotropic box",
			a:    Vec3{0.5, 0.5, 0},
			b:    Vec3{9.5, 4.5, 0},
			box:  Box{10, 5, 20},
			want: math.Sqrt(1 + 1),
		},
		{
			name: "identical points",
			a:    Vec3{3, 4, 5},
			b:    Vec3{3, 4, 5},
			box:  Box{10, 10, 10},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinimumImageDistance(tt.a, tt.b, tt.box)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Expected distance %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMinimumImageDistance_SymmetryAndBound(t *testing.T) {
	// For any pair of points the minimum-image distance is symmetric and
	// never exceeds the plain Euclidean distance.
	rng := rand.New(rand.NewSource(7))
	box := Box{8, 12, 5}

	for i := 0; i < 200; i++ {
		var a, b Vec3
		for k := 0; k < 3; k++ {
			// Points deliberately allowed outside [0, extent).
			a[k] = (rng.Float64() - 0.5) * 3 * box[k]
			b[k] = (rng.Float64() - 0.5) * 3 * box[k]
		}

		ab := MinimumImageDistance(a, b, box)
		ba := MinimumImageDistance(b, a, box)
		if ab != ba {
			t.Fatalf("Expected symmetric distance, got %v vs %v for %v %v", ab, ba, a, b)
		}
		if plain := Distance(a, b); ab > plain+1e-12 {
			t.Fatalf("Expected minimum-image distance <= Euclidean, got %v > %v for %v %v", ab, plain, a, b)
		}
	}
}

func TestBoxVolume(t *testing.T) {
	if got := (Box{10, 10, 10}).Volume(); got != 1000 {
		t.Errorf("Expected volume 1000, got %v", got)
	}
	if got := (Box{2, 3, 4}).Volume(); got != 24 {
		t.Errorf("Expected volume 24, got %v", got)
	}
	if got := (Box{0, 3, 4}).Volume(); got != 0 {
		t.Errorf("Expected volume 0, got %v", got)
	}
}
