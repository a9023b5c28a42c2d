package chemio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/stefanbringuier/genamorph/internal/amorph"
)

// WriteCFG writes an AtomEye extended CFG file. Positions are stored as
// fractional coordinates of the cell; particles are grouped by species,
// each group preceded by its mass and symbol lines.
func WriteCFG(w io.Writer, result *amorph.BuildResult) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Number of particles = %d\n", len(result.Particles))
	fmt.Fprintf(bw, "A = 1.0 Angstrom (basic length-scale)\n")
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := 0.0
			if i == j {
				v = result.Box[i]
			}
			fmt.Fprintf(bw, "H0(%d,%d) = %.6f A\n", i+1, j+1, v)
		}
	}
	fmt.Fprintf(bw, ".NO_VELOCITY.\n")
	fmt.Fprintf(bw, "entry_count = 3\n")

	order, groups := speciesOrder(result)
	for _, sp := range order {
		fmt.Fprintf(bw, "%.6f\n", sp.Mass)
		fmt.Fprintf(bw, "%s\n", sp.Symbol)
		for _, idx := range groups[sp.Symbol] {
			p := result.Particles[idx]
			fmt.Fprintf(bw, "%.8f %.8f %.8f\n",
				fractional(p.Position[0], result.Box[0]),
				fractional(p.Position[1], result.Box[1]),
				fractional(p.Position[2], result.Box[2]))
		}
	}
	return bw.Flush()
}

// fractional maps a coordinate into [0,1) cell units.
func fractional(x, extent float64) float64 {
	if extent == 0 {
		return 0
	}
	f := x / extent
	for f < 0 {
		f++
	}
	for f >= 1 {
		f--
	}
	return f
}
