package engine

import (
	"github.com/google/uuid"

	"github.com/piwi3910/cubefit/internal/model"
)

// PlacedPiece is the value form of a placement captured in a solution:
// the chosen orientation (deep copy) and its anchor.
type PlacedPiece struct {
	Piece model.Piece    `json:"piece"`
	At    model.Position `json:"at"`
}

// Solution is an immutable snapshot of a completely packed box: the full
// cell-owner array plus the placement history in placement order.
type Solution struct {
	ID         string            `json:"id"`
	Box        model.Size        `json:"box"`
	Cells      []model.PieceKind `json:"cells"`
	Placements []PlacedPiece     `json:"placements"`
}

// Owner returns the kind occupying the given cell of the snapshot.
func (s Solution) Owner(pos model.Position) model.PieceKind {
	return s.Cells[(pos.X*s.Box.Y+pos.Y)*s.Box.Z+pos.Z]
}

// SolutionSink collects solutions in the order the solver discovers them.
// No dedup, no ranking.
type SolutionSink struct {
	solutions []Solution
}

// Record appends a value snapshot of the box's current state. The box is
// still live and will be mutated as the search backtracks, so everything is
// deep-copied here.
func (sk *SolutionSink) Record(b *Box) {
	sol := Solution{
		ID:         uuid.New().String()[:8],
		Box:        b.Size,
		Cells:      append([]model.PieceKind(nil), b.cells...),
		Placements: make([]PlacedPiece, len(b.placed)),
	}
	for i, pl := range b.placed {
		sol.Placements[i] = PlacedPiece{
			Piece: model.Piece{
				Kind:   pl.Piece.Kind,
				Points: append([]model.Point(nil), pl.Piece.Points...),
				Size:   pl.Piece.Size,
			},
			At: pl.At,
		}
	}
	sk.solutions = append(sk.solutions, sol)
}

// Solutions returns the recorded solutions in discovery order.
func (sk *SolutionSink) Solutions() []Solution {
	return sk.solutions
}

// Len returns the number of recorded solutions.
func (sk *SolutionSink) Len() int {
	return len(sk.solutions)
}
