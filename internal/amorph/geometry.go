package amorph

import "math"

// Distance returns the plain Euclidean distance between two points,
// ignoring periodic boundary conditions.
func Distance(a, b Vec3) float64 {
	sum := 0.0
	for i := 0; i < 3; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// MinimumImageDistance returns the shortest distance between two points
// in a periodic box: any per-axis separation larger than half the box
// extent is replaced by its wrapped-around counterpart. Valid for any
// real coordinates, inside the cell or not.
func MinimumImageDistance(a, b Vec3, box Box) float64 {
	sum := 0.0
	for i := 0; i < 3; i++ {
		d := math.Abs(a[i] - b[i])
		if d > 0.5*box[i] {
			d = box[i] - d
		}
		sum += d * d
	}
	return math.Sqrt(sum)
}
