// Package chemio serializes built structures into common atomistic
// simulation file formats.
package chemio

import (
	"errors"
	"fmt"
	"io"

	"github.com/stefanbringuier/genamorph/internal/amorph"
)

// Format identifies an output file format.
type Format string

const (
	FormatCFG    Format = "cfg"    // AtomEye extended CFG
	FormatXYZ    Format = "xyz"    // extended XYZ with lattice metadata
	FormatLAMMPS Format = "lammps" // LAMMPS data file, atomic style
)

// ErrUnknownFormat is returned for format names Write does not support.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatCFG, FormatXYZ, FormatLAMMPS}
}

// Write serializes the result to w in the given format.
func Write(w io.Writer, result *amorph.BuildResult, format Format) error {
	switch format {
	case FormatCFG:
		return WriteCFG(w, result)
	case FormatXYZ:
		return WriteXYZ(w, result)
	case FormatLAMMPS:
		return WriteLAMMPS(w, result)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// speciesOrder returns the distinct species of the result in first-seen
// order, with the particle indices per species.
func speciesOrder(result *amorph.BuildResult) ([]amorph.Species, map[string][]int) {
	var order []amorph.Species
	groups := make(map[string][]int)
	for i, p := range result.Particles {
		if _, seen := groups[p.Species.Symbol]; !seen {
			order = append(order, p.Species)
		}
		groups[p.Species.Symbol] = append(groups[p.Species.Symbol], i)
	}
	return order, groups
}
