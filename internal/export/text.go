// Package export renders solved packings to text, PDF and XLSX. The core
// solver performs no formatting; everything user-facing lives here.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/piwi3910/cubefit/internal/engine"
	"github.com/piwi3910/cubefit/internal/model"
)

// SolutionText renders a solution as stacked z-layers side by side: one row
// per x, one column block per layer, piece-kind letters per cell.
//
//	CDDD  CDAA
//	CCFD  CCAA
//	EFFF  ECAB
//	EEEB  EBBB
func SolutionText(sol engine.Solution) string {
	var b strings.Builder
	for x := 0; x < sol.Box.X; x++ {
		for z := 0; z < sol.Box.Z; z++ {
			if z > 0 {
				b.WriteString("  ")
			}
			for y := 0; y < sol.Box.Y; y++ {
				b.WriteString(sol.Owner(model.Position{X: x, Y: y, Z: z}).String())
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteSolution writes a numbered solution block with its placement list
// and layer diagram.
func WriteSolution(w io.Writer, num int, sol engine.Solution) error {
	if _, err := fmt.Fprintf(w, "Solution %d (%s): %d pieces\n", num, sol.ID, len(sol.Placements)); err != nil {
		return err
	}
	for _, pl := range sol.Placements {
		if _, err := fmt.Fprintf(w, "  %s at (%d, %d, %d)\n",
			pl.Piece.Kind, pl.At.X, pl.At.Y, pl.At.Z); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, SolutionText(sol))
	return err
}
