package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/cubefit/internal/engine"
	"github.com/piwi3910/cubefit/internal/model"
)

// kindColor represents an RGB color for a placed piece.
type kindColor struct {
	R, G, B int
}

// kindColors is the palette cycled through in placement order.
var kindColors = []kindColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	layerGap     = 10.0
	qrSize       = 30.0
	maxCellSize  = 18.0
)

// qrPayload is the data encoded into each solution page's QR code.
type qrPayload struct {
	ID         string        `json:"id"`
	Box        model.Size    `json:"box"`
	Placements []qrPlacement `json:"placements"`
}

type qrPlacement struct {
	Kind string         `json:"kind"`
	At   model.Position `json:"at"`
}

// ExportPDF generates a PDF with one page per solution: the box drawn as a
// row of z-layer diagrams with color-coded pieces, the placement list, and
// a QR code encoding the placements, followed by a summary page.
func ExportPDF(path string, puzzleName string, solutions []engine.Solution) error {
	if len(solutions) == 0 {
		return fmt.Errorf("no solutions to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, sol := range solutions {
		pdf.AddPage()
		if err := renderSolutionPage(pdf, puzzleName, i+1, sol); err != nil {
			return err
		}
	}

	pdf.AddPage()
	renderSummaryPage(pdf, puzzleName, solutions)

	return pdf.OutputFileAndClose(path)
}

// renderSolutionPage draws one solution on the current page.
func renderSolutionPage(pdf *fpdf.Fpdf, puzzleName string, num int, sol engine.Solution) error {
	colors := colorsByKind(sol)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s - solution %d (%s)", puzzleName, num, sol.ID)
	pdf.CellFormat(pageWidth-2*marginLeft, headerHeight, title, "", 0, "L", false, 0, "")

	// Scale the layer diagrams to the available width.
	diagramTop := marginTop + headerHeight + 5.0
	availW := pageWidth - 2*marginLeft - qrSize - layerGap
	cellSize := (availW - float64(sol.Box.Z-1)*layerGap) / float64(sol.Box.Z*sol.Box.Y)
	if cellSize > maxCellSize {
		cellSize = maxCellSize
	}

	for z := 0; z < sol.Box.Z; z++ {
		originX := marginLeft + float64(z)*(float64(sol.Box.Y)*cellSize+layerGap)

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(80, 80, 80)
		pdf.SetXY(originX, diagramTop)
		pdf.CellFormat(float64(sol.Box.Y)*cellSize, 5, fmt.Sprintf("Layer z=%d", z), "", 0, "L", false, 0, "")

		for x := 0; x < sol.Box.X; x++ {
			for y := 0; y < sol.Box.Y; y++ {
				kind := sol.Owner(model.Position{X: x, Y: y, Z: z})
				c := colors[kind]
				cx := originX + float64(y)*cellSize
				cy := diagramTop + 6.0 + float64(x)*cellSize

				pdf.SetFillColor(c.R, c.G, c.B)
				pdf.SetDrawColor(60, 60, 60)
				pdf.SetLineWidth(0.2)
				pdf.Rect(cx, cy, cellSize, cellSize, "FD")

				pdf.SetFont("Helvetica", "B", 10)
				pdf.SetTextColor(255, 255, 255)
				pdf.SetXY(cx, cy)
				pdf.CellFormat(cellSize, cellSize, kind.String(), "", 0, "C", false, 0, "")
			}
		}
	}

	// Placement list under the diagrams.
	listTop := diagramTop + 6.0 + float64(sol.Box.X)*cellSize + 8.0
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for i, pl := range sol.Placements {
		pdf.SetXY(marginLeft, listTop+float64(i)*5.0)
		line := fmt.Sprintf("%d. piece %s (%d cells) at (%d, %d, %d)",
			i+1, pl.Piece.Kind, len(pl.Piece.Points), pl.At.X, pl.At.Y, pl.At.Z)
		pdf.CellFormat(pageWidth-2*marginLeft, 5, line, "", 0, "L", false, 0, "")
	}

	return renderSolutionQR(pdf, sol)
}

// renderSolutionQR places a QR code encoding the placement list as JSON in
// the top-right corner of the page.
func renderSolutionQR(pdf *fpdf.Fpdf, sol engine.Solution) error {
	payload := qrPayload{ID: sol.ID, Box: sol.Box}
	for _, pl := range sol.Placements {
		payload.Placements = append(payload.Placements, qrPlacement{
			Kind: pl.Piece.Kind.String(),
			At:   pl.At,
		})
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal QR payload: %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := "qr_" + sol.ID
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	pdf.ImageOptions(imgName, pageWidth-marginLeft-qrSize, marginTop, qrSize, qrSize, false,
		fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

// renderSummaryPage draws the closing statistics page.
func renderSummaryPage(pdf *fpdf.Fpdf, puzzleName string, solutions []engine.Solution) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-2*marginLeft, headerHeight, "Summary", "", 0, "L", false, 0, "")

	box := solutions[0].Box
	lines := []string{
		fmt.Sprintf("Puzzle: %s", puzzleName),
		fmt.Sprintf("Box: %d x %d x %d (%d cells)", box.X, box.Y, box.Z, box.Volume()),
		fmt.Sprintf("Pieces per solution: %d", len(solutions[0].Placements)),
		fmt.Sprintf("Solutions found: %d", len(solutions)),
	}

	pdf.SetFont("Helvetica", "", 11)
	for i, line := range lines {
		pdf.SetXY(marginLeft, marginTop+headerHeight+8.0+float64(i)*6.0)
		pdf.CellFormat(pageWidth-2*marginLeft, 6, line, "", 0, "L", false, 0, "")
	}
}

// colorsByKind assigns palette colors to kinds in placement order.
func colorsByKind(sol engine.Solution) map[model.PieceKind]kindColor {
	colors := make(map[model.PieceKind]kindColor, len(sol.Placements))
	for i, pl := range sol.Placements {
		colors[pl.Piece.Kind] = kindColors[i%len(kindColors)]
	}
	return colors
}
