package chemio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/stefanbringuier/genamorph/internal/amorph"
)

// WriteXYZ writes an extended XYZ file: atom count, a comment line with
// the lattice and column layout, then one "Symbol x y z" line per atom
// in placement order.
func WriteXYZ(w io.Writer, result *amorph.BuildResult) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%d\n", len(result.Particles))
	fmt.Fprintf(bw,
		"Lattice=\"%.6f 0.0 0.0 0.0 %.6f 0.0 0.0 0.0 %.6f\" Properties=species:S:1:pos:R:3 pbc=\"T T T\"\n",
		result.Box[0], result.Box[1], result.Box[2])

	for _, p := range result.Particles {
		fmt.Fprintf(bw, "%-2s %14.8f %14.8f %14.8f\n",
			p.Species.Symbol, p.Position[0], p.Position[1], p.Position[2])
	}
	return bw.Flush()
}
