package model

import "fmt"

// Puzzle ties a box size and an ordered piece catalog together for
// solving and save/load.
type Puzzle struct {
	Name   string  `json:"name"`
	Box    Size    `json:"box"`
	Pieces []Piece `json:"pieces"`
}

// Validate rejects malformed catalogs before any solving happens: the box
// must have positive extents, every piece must be non-empty and free of
// duplicate points, and no two pieces may share a kind label.
func (pz Puzzle) Validate() error {
	if pz.Box.X <= 0 || pz.Box.Y <= 0 || pz.Box.Z <= 0 {
		return fmt.Errorf("box size %dx%dx%d is not positive", pz.Box.X, pz.Box.Y, pz.Box.Z)
	}
	kinds := make(map[PieceKind]bool, len(pz.Pieces))
	for i, p := range pz.Pieces {
		if len(p.Points) == 0 {
			return fmt.Errorf("piece %d (%s) has no cells", i, p.Kind)
		}
		if p.Kind == KindNone {
			return fmt.Errorf("piece %d has no kind label", i)
		}
		if kinds[p.Kind] {
			return fmt.Errorf("duplicate piece kind %s", p.Kind)
		}
		kinds[p.Kind] = true
		for j := 1; j < len(p.Points); j++ {
			// Points are sorted, so duplicates are adjacent.
			if p.Points[j] == p.Points[j-1] {
				return fmt.Errorf("piece %s has duplicate cell (%d,%d,%d)",
					p.Kind, p.Points[j].X, p.Points[j].Y, p.Points[j].Z)
			}
		}
	}
	return nil
}

// CellCount returns the total number of cells across all pieces. A puzzle
// can only have solutions when this equals the box volume.
func (pz Puzzle) CellCount() int {
	total := 0
	for _, p := range pz.Pieces {
		total += len(p.Points)
	}
	return total
}

// pts is a literal shorthand for building catalog entries.
func pts(cells ...[3]int) []Point {
	out := make([]Point, len(cells))
	for i, c := range cells {
		out[i] = Point{X: c[0], Y: c[1], Z: c[2]}
	}
	return out
}

// BuiltinPuzzle returns the reference catalog: six pieces totalling 32
// cells with a single packing of the 4x4x2 box, which the solver reports
// eight times, once per rotation of the box onto itself.
func BuiltinPuzzle() Puzzle {
	return Puzzle{
		Name: "Classic 4x4x2",
		Box:  Size{X: 4, Y: 4, Z: 2},
		Pieces: []Piece{
			NewPiece(Kind('C'), pts([3]int{0, 0, 0}, [3]int{1, 0, 0}, [3]int{1, 1, 0}, [3]int{1, 1, 1})),
			NewPiece(Kind('D'), pts([3]int{0, 0, 0}, [3]int{1, 0, 0}, [3]int{2, 0, 0}, [3]int{0, 0, 1})),
			NewPiece(Kind('B'), pts([3]int{0, 0, 0}, [3]int{1, 0, 0}, [3]int{2, 0, 0}, [3]int{2, 1, 0}, [3]int{2, 1, 1})),
			NewPiece(Kind('F'), pts([3]int{0, 0, 0}, [3]int{2, 0, 0}, [3]int{0, 1, 0}, [3]int{1, 1, 0}, [3]int{2, 1, 0}, [3]int{2, 0, 1})),
			NewPiece(Kind('A'), pts([3]int{0, 0, 0}, [3]int{1, 0, 0}, [3]int{0, 1, 0}, [3]int{0, 0, 1}, [3]int{1, 0, 1}, [3]int{0, 1, 1})),
			NewPiece(Kind('E'), pts([3]int{0, 0, 0}, [3]int{1, 0, 0}, [3]int{2, 0, 0}, [3]int{0, 1, 0}, [3]int{1, 1, 0}, [3]int{2, 1, 0}, [3]int{2, 0, 1})),
		},
	}
}
