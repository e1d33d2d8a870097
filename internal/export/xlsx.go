package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/cubefit/internal/engine"
)

// ExportXLSX writes an Excel workbook with one sheet per solution. Each
// sheet lists the placements in order: piece kind, cell count, anchor, and
// the absolute cells the piece covers.
func ExportXLSX(path string, solutions []engine.Solution) error {
	if len(solutions) == 0 {
		return fmt.Errorf("no solutions to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sol := range solutions {
		sheet := fmt.Sprintf("Solution %d", i+1)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return err
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return err
			}
		}
		if err := writeSolutionSheet(f, sheet, sol); err != nil {
			return fmt.Errorf("failed to write sheet %q: %w", sheet, err)
		}
	}

	return f.SaveAs(path)
}

func writeSolutionSheet(f *excelize.File, sheet string, sol engine.Solution) error {
	headers := []string{"Piece", "Cells", "Anchor X", "Anchor Y", "Anchor Z", "Covered cells"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for row, pl := range sol.Placements {
		var covered []string
		for _, pt := range pl.Piece.Points {
			c := pl.At.Cell(pt)
			covered = append(covered, fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z))
		}
		values := []interface{}{
			pl.Piece.Kind.String(),
			len(pl.Piece.Points),
			pl.At.X,
			pl.At.Y,
			pl.At.Z,
			strings.Join(covered, " "),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
