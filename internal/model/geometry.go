package model

// Point represents an integer 3D coordinate of a single unit cube cell.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Less orders points lexicographically on (X, Y, Z).
func (p Point) Less(q Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.Z < q.Z
}

// Size represents the extent of a bounding box or of the packing box itself.
type Size struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Volume returns the number of cells in a box of this size.
func (s Size) Volume() int {
	return s.X * s.Y * s.Z
}

// Position is the translation applied to a piece's canonical coordinate
// frame when it is placed in the box. Same representation as Point, but a
// position may carry negative components while a normalized piece never does.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Cell returns the absolute cell covered by piece point p placed at pos.
func (pos Position) Cell(p Point) Position {
	return Position{X: pos.X + p.X, Y: pos.Y + p.Y, Z: pos.Z + p.Z}
}
