package model

// OrientationSet holds the structurally distinct rotations of one piece.
// At most 24 entries; pieces with rotational symmetry yield fewer. Built
// once per piece and read-only afterwards.
type OrientationSet struct {
	Kind         PieceKind
	Orientations []Piece
}

// orientationWalk drives the traversal of the rotation group: four spins
// around an axis for each of the six facings reached by composing the other
// two axes. Each entry lists the elementary rotations applied before the
// next insertion; 24 insertions in total. Duplicates collapse because
// normalization makes equal orientations compare equal.
var orientationWalk = []string{
	"", "x", "x", "x",
	"z", "y", "y", "y",
	"z", "x", "x", "x",
	"z", "y", "y", "y",
	"x", "z", "z", "z",
	"xx", "z", "z", "z",
}

// Orientations enumerates every distinct canonical orientation of p. The
// result order is deterministic: first-seen order along the fixed traversal.
func Orientations(p Piece) OrientationSet {
	set := OrientationSet{Kind: p.Kind}
	seen := make(map[string]bool, 24)
	for _, steps := range orientationWalk {
		for _, axis := range steps {
			switch axis {
			case 'x':
				p = p.RotateX()
			case 'y':
				p = p.RotateY()
			case 'z':
				p = p.RotateZ()
			}
		}
		if k := p.key(); !seen[k] {
			seen[k] = true
			set.Orientations = append(set.Orientations, p)
		}
	}
	return set
}

// FilterMaxHeight drops orientations whose bounding box is taller than maxZ.
// This is purely a search-space reduction: an over-tall orientation could
// never pass the box's bound check anyway.
func (s OrientationSet) FilterMaxHeight(maxZ int) OrientationSet {
	out := OrientationSet{Kind: s.Kind}
	for _, p := range s.Orientations {
		if p.Size.Z <= maxZ {
			out.Orientations = append(out.Orientations, p)
		}
	}
	return out
}

// Len returns the number of distinct orientations.
func (s OrientationSet) Len() int {
	return len(s.Orientations)
}
