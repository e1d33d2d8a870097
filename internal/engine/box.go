// Package engine implements the exact-cover packing search: a dense 3D
// occupancy grid with strict LIFO placement history, and a cell-driven
// backtracking solver that enumerates every complete packing.
package engine

import (
	"fmt"

	"github.com/piwi3910/cubefit/internal/model"
)

// Placement records one placed piece: which orientation, and the anchor
// translation applied to its canonical frame. The Piece pointer refers into
// the catalog's orientation sets; placements never copy point data.
type Placement struct {
	Piece *model.Piece
	At    model.Position
}

// Box is the mutable occupancy index over a fixed-size packing box. Each
// cell holds the kind of the piece covering it, or KindNone. The placement
// history, read bottom to top, reconstructs the occupancy exactly; removal
// is LIFO only, which is all a backtracking search needs.
//
// A Box has exactly one mutator at a time; it is not safe for concurrent
// use.
type Box struct {
	Size   model.Size
	cells  []model.PieceKind
	placed []Placement
}

// NewBox returns an empty box of the given size.
func NewBox(size model.Size) *Box {
	return &Box{
		Size:  size,
		cells: make([]model.PieceKind, size.Volume()),
	}
}

// index flattens a cell into row-major (x, y, z) scan order. z varies
// fastest, matching the order NextEmptyCell scans in.
func (b *Box) index(pos model.Position) int {
	return (pos.X*b.Size.Y+pos.Y)*b.Size.Z + pos.Z
}

// cellAt decodes a flattened scan index back into a cell position.
func (b *Box) cellAt(idx int) model.Position {
	yz := b.Size.Y * b.Size.Z
	return model.Position{
		X: idx / yz,
		Y: (idx % yz) / b.Size.Z,
		Z: idx % b.Size.Z,
	}
}

// IsOutOfBound reports whether any coordinate of pos falls outside the box.
func (b *Box) IsOutOfBound(pos model.Position) bool {
	return pos.X < 0 || pos.X >= b.Size.X ||
		pos.Y < 0 || pos.Y >= b.Size.Y ||
		pos.Z < 0 || pos.Z >= b.Size.Z
}

// IsOccupied reports whether the cell at pos is covered. pos must be in
// bounds.
func (b *Box) IsOccupied(pos model.Position) bool {
	return b.cells[b.index(pos)] != model.KindNone
}

// Owner returns the kind occupying the cell at pos, or KindNone.
func (b *Box) Owner(pos model.Position) model.PieceKind {
	return b.cells[b.index(pos)]
}

// TryPlace attempts to place piece with its canonical frame translated by
// at. The check phase is fully separated from the mutation phase: if any
// covered cell is out of bounds or occupied, the box is untouched and the
// call reports false. Otherwise every covered cell is marked with the
// piece's kind, the placement is pushed onto the history, and the call
// reports true.
func (b *Box) TryPlace(piece *model.Piece, at model.Position) bool {
	for _, pt := range piece.Points {
		cell := at.Cell(pt)
		if b.IsOutOfBound(cell) || b.IsOccupied(cell) {
			return false
		}
	}
	for _, pt := range piece.Points {
		b.cells[b.index(at.Cell(pt))] = piece.Kind
	}
	b.placed = append(b.placed, Placement{Piece: piece, At: at})
	return true
}

// UndoLast removes the most recently placed piece and clears exactly the
// cells it covered. It panics if the history is empty or a covered cell is
// not occupied: either means the history has been corrupted, and continuing
// would operate on a broken grid.
func (b *Box) UndoLast() {
	if len(b.placed) == 0 {
		panic("engine: UndoLast on empty placement history")
	}
	last := b.placed[len(b.placed)-1]
	for _, pt := range last.Piece.Points {
		idx := b.index(last.At.Cell(pt))
		if b.cells[idx] == model.KindNone {
			panic(fmt.Sprintf("engine: placement history corrupted at cell %v", last.At.Cell(pt)))
		}
		b.cells[idx] = model.KindNone
	}
	b.placed = b.placed[:len(b.placed)-1]
}

// WithPlacement places piece at the given anchor, runs fn, and undoes the
// placement on every return path. It reports whether the piece fit; fn only
// runs when it did. This is the scoped form of TryPlace/UndoLast the solver
// uses so a forgotten undo cannot leak state across sibling branches.
func (b *Box) WithPlacement(piece *model.Piece, at model.Position, fn func()) bool {
	if !b.TryPlace(piece, at) {
		return false
	}
	defer b.UndoLast()
	fn()
	return true
}

// NextEmptyCell scans cells in row-major (x, y, z) order starting at the
// flattened index from, inclusive, and returns the index of the first empty
// cell, or -1 if every cell from the cursor to the end is occupied. Passing
// the previous result + 1 resumes the scan instead of restarting it.
func (b *Box) NextEmptyCell(from int) int {
	for i := from; i < len(b.cells); i++ {
		if b.cells[i] == model.KindNone {
			return i
		}
	}
	return -1
}

// Position converts a flattened scan index into a cell position.
func (b *Box) Position(idx int) model.Position {
	return b.cellAt(idx)
}

// Placements returns the placement history in placement order. The slice
// is shared; callers must not modify it.
func (b *Box) Placements() []Placement {
	return b.placed
}

// HasDuplicateKind reports whether two placed pieces share a kind label.
// Post-hoc consistency query over a placement list; it does not gate the
// search.
func (b *Box) HasDuplicateKind() bool {
	seen := make(map[model.PieceKind]bool, len(b.placed))
	for _, pl := range b.placed {
		if seen[pl.Piece.Kind] {
			return true
		}
		seen[pl.Piece.Kind] = true
	}
	return false
}
