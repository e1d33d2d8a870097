package engine

import (
	"github.com/piwi3910/cubefit/internal/model"
)

// Solver enumerates every exact-fit packing of a set of pieces into a box.
// The search is cell-driven: at each node it finds the earliest empty cell
// in scan order and tries, for every unplaced piece and orientation, the one
// anchor that lands the orientation's first canonical point on that cell.
// Cells before the target are full by construction, so no other anchor can
// cover it — the single-anchor rule is complete, not a heuristic.
type Solver struct {
	box  *Box
	sets []model.OrientationSet
	used []bool
	left int
	sink *SolutionSink

	// Continue, when non-nil, is consulted at every search node. Returning
	// false abandons the remaining search; solutions found so far are kept.
	// Lets callers impose wall-clock or node-count budgets.
	Continue func() bool
}

// NewSolver builds a solver over a fresh box for the given puzzle.
// Orientation sets are generated per piece and pre-filtered to the box
// height.
func NewSolver(pz model.Puzzle) *Solver {
	sets := make([]model.OrientationSet, len(pz.Pieces))
	for i, p := range pz.Pieces {
		sets[i] = model.Orientations(p).FilterMaxHeight(pz.Box.Z)
	}
	return NewSolverWithSets(NewBox(pz.Box), sets)
}

// NewSolverWithSets builds a solver over a caller-supplied box and
// pre-built orientation sets. The solver owns the sets slice for its
// lifetime; placements reference pieces inside it.
func NewSolverWithSets(box *Box, sets []model.OrientationSet) *Solver {
	return &Solver{
		box:  box,
		sets: sets,
		used: make([]bool, len(sets)),
		left: len(sets),
		sink: &SolutionSink{},
	}
}

// Found returns the number of solutions recorded so far. Useful inside a
// Continue predicate to stop after a solution cap.
func (s *Solver) Found() int {
	return s.sink.Len()
}

// Solve runs the search to completion and returns every solution in
// discovery order. Discovery order is deterministic: it depends only on
// piece order, orientation order, and scan order.
func (s *Solver) Solve() []Solution {
	s.search(0)
	return s.sink.Solutions()
}

// search explores the node with the scan cursor at the given flattened
// index. The remaining-piece count strictly decreases along every edge, so
// the search always terminates.
func (s *Solver) search(cursor int) {
	if s.Continue != nil && !s.Continue() {
		return
	}
	if s.left == 0 {
		s.sink.Record(s.box)
		return
	}

	target := s.box.NextEmptyCell(cursor)
	if target < 0 {
		// Box is full but pieces remain: dead end.
		return
	}
	cell := s.box.Position(target)

	for i := range s.sets {
		if s.used[i] {
			continue
		}
		s.used[i] = true
		s.left--
		for j := range s.sets[i].Orientations {
			o := &s.sets[i].Orientations[j]
			// Anchor so the orientation's first (lexicographically
			// smallest) point lands on the target cell.
			first := o.Points[0]
			at := model.Position{
				X: cell.X - first.X,
				Y: cell.Y - first.Y,
				Z: cell.Z - first.Z,
			}
			s.box.WithPlacement(o, at, func() {
				s.search(target + 1)
			})
		}
		s.left++
		s.used[i] = false
	}
}
