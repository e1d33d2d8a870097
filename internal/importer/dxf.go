package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/cubefit/internal/model"
)

// point2 is a 2D vertex of a DXF outline, in drawing units. Pieces are
// assumed to be drawn on a unit grid: one drawing unit per cell.
type point2 struct {
	x, y float64
}

// ImportDXF imports flat pieces from a DXF file. Each closed LWPOLYLINE is
// rasterized onto the unit grid — a cell belongs to the piece when its
// center falls inside the outline — and extruded to a single-layer polycube
// piece. Pieces are labeled A, B, C... in entity order.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines [][]point2
	for _, ent := range entities {
		lw, ok := ent.(*entity.LwPolyline)
		if !ok {
			// Only closed polylines can describe a piece footprint.
			continue
		}
		outline := make([]point2, 0, len(lw.Vertices))
		for _, v := range lw.Vertices {
			outline = append(outline, point2{x: v[0], y: v[1]})
		}
		if len(outline) >= 3 {
			outlines = append(outlines, outline)
		} else {
			result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
		}
	}

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for i, outline := range outlines {
		cells := rasterize(outline)
		if len(cells) == 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Shape %d covers no grid cells, skipped", i+1))
			continue
		}
		kind := model.Kind(byte('A' + len(result.Pieces)))
		result.Pieces = append(result.Pieces, model.NewPiece(kind, cells))
	}

	if len(result.Pieces) == 0 {
		result.Errors = append(result.Errors, "No shapes covered any grid cells")
	}
	return result
}

// rasterize converts a closed outline into the unit grid cells whose
// centers lie inside it. The result is a single-layer cell list (z = 0).
func rasterize(outline []point2) []model.Point {
	minX, minY := outline[0].x, outline[0].y
	maxX, maxY := minX, minY
	for _, p := range outline[1:] {
		if p.x < minX {
			minX = p.x
		}
		if p.y < minY {
			minY = p.y
		}
		if p.x > maxX {
			maxX = p.x
		}
		if p.y > maxY {
			maxY = p.y
		}
	}

	var cells []model.Point
	for cx := int(math.Floor(minX)); float64(cx) < maxX; cx++ {
		for cy := int(math.Floor(minY)); float64(cy) < maxY; cy++ {
			center := point2{x: float64(cx) + 0.5, y: float64(cy) + 0.5}
			if insidePolygon(center, outline) {
				cells = append(cells, model.Point{X: cx, Y: cy, Z: 0})
			}
		}
	}
	return cells
}

// insidePolygon tests a point against a closed polygon with the even-odd
// ray crossing rule.
func insidePolygon(p point2, poly []point2) bool {
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		a, b := poly[i], poly[j]
		if (a.y > p.y) != (b.y > p.y) {
			crossX := a.x + (p.y-a.y)/(b.y-a.y)*(b.x-a.x)
			if p.x < crossX {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
