package chemio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/stefanbringuier/genamorph/internal/amorph"
)

// WriteLAMMPS writes a LAMMPS data file (atom_style atomic). Species are
// mapped to numeric atom types in first-seen order; the mapping is
// recorded as a comment on each Masses line.
func WriteLAMMPS(w io.Writer, result *amorph.BuildResult) error {
	bw := bufio.NewWriter(w)

	order, _ := speciesOrder(result)
	types := make(map[string]int, len(order))
	for i, sp := range order {
		types[sp.Symbol] = i + 1
	}

	fmt.Fprintf(bw, "# amorphous structure, %d atoms\n\n", len(result.Particles))
	fmt.Fprintf(bw, "%d atoms\n", len(result.Particles))
	fmt.Fprintf(bw, "%d atom types\n\n", len(order))
	fmt.Fprintf(bw, "0.0 %.6f xlo xhi\n", result.Box[0])
	fmt.Fprintf(bw, "0.0 %.6f ylo yhi\n", result.Box[1])
	fmt.Fprintf(bw, "0.0 %.6f zlo zhi\n\n", result.Box[2])

	fmt.Fprintf(bw, "Masses\n\n")
	for _, sp := range order {
		fmt.Fprintf(bw, "%d %.6f # %s\n", types[sp.Symbol], sp.Mass, sp.Symbol)
	}

	fmt.Fprintf(bw, "\nAtoms # atomic\n\n")
	for i, p := range result.Particles {
		fmt.Fprintf(bw, "%d %d %.8f %.8f %.8f\n",
			i+1, types[p.Species.Symbol], p.Position[0], p.Position[1], p.Position[2])
	}
	return bw.Flush()
}
