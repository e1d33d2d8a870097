package model

import (
	"fmt"
	"sort"
	"strings"
)

// PieceKind identifies a piece and doubles as its one-character display
// label. The zero value marks an empty cell.
type PieceKind byte

const KindNone PieceKind = 0

// Kind returns the PieceKind for a single-character label.
func Kind(label byte) PieceKind {
	return PieceKind(label)
}

func (k PieceKind) String() string {
	if k == KindNone {
		return "."
	}
	return string(rune(k))
}

// MarshalText makes kinds render as their label in JSON puzzles.
func (k PieceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *PieceKind) UnmarshalText(text []byte) error {
	switch {
	case len(text) == 0 || string(text) == ".":
		*k = KindNone
	case len(text) == 1:
		*k = PieceKind(text[0])
	default:
		return fmt.Errorf("piece kind must be a single character, got %q", text)
	}
	return nil
}

// Piece is a rigid set of unit cube cells in canonical form: the points are
// translated so the minimum coordinate on every axis is zero, and sorted in
// lexicographic order. Kind is excluded from equality so rotations of the
// same piece compare structurally.
//
// A Piece is never mutated after construction; rotations return new
// canonical pieces.
type Piece struct {
	Kind   PieceKind `json:"kind"`
	Points []Point   `json:"points"`
	Size   Size      `json:"size"`
}

// NewPiece builds a canonical piece from a literal cell list. The input
// slice is copied, so callers may reuse it.
func NewPiece(kind PieceKind, points []Point) Piece {
	p := Piece{Kind: kind, Points: append([]Point(nil), points...)}
	return p.normalize()
}

// normalize translates the minimum coordinate on each axis to zero,
// recomputes the bounding box, and sorts the points. The receiver's point
// slice is modified in place; callers must own it.
func (p Piece) normalize() Piece {
	if len(p.Points) == 0 {
		p.Size = Size{}
		return p
	}
	min := p.Points[0]
	for _, pt := range p.Points[1:] {
		if pt.X < min.X {
			min.X = pt.X
		}
		if pt.Y < min.Y {
			min.Y = pt.Y
		}
		if pt.Z < min.Z {
			min.Z = pt.Z
		}
	}
	p.Size = Size{}
	for i, pt := range p.Points {
		pt = Point{X: pt.X - min.X, Y: pt.Y - min.Y, Z: pt.Z - min.Z}
		p.Points[i] = pt
		if pt.X+1 > p.Size.X {
			p.Size.X = pt.X + 1
		}
		if pt.Y+1 > p.Size.Y {
			p.Size.Y = pt.Y + 1
		}
		if pt.Z+1 > p.Size.Z {
			p.Size.Z = pt.Z + 1
		}
	}
	sort.Slice(p.Points, func(i, j int) bool { return p.Points[i].Less(p.Points[j]) })
	return p
}

// RotateX returns the piece rotated 90 degrees around the x-axis,
// re-normalized: (x, y, z) -> (x, z, -y).
func (p Piece) RotateX() Piece {
	return p.mapPoints(func(pt Point) Point {
		return Point{X: pt.X, Y: pt.Z, Z: -pt.Y}
	})
}

// RotateY returns the piece rotated 90 degrees around the y-axis,
// re-normalized: (x, y, z) -> (z, y, -x).
func (p Piece) RotateY() Piece {
	return p.mapPoints(func(pt Point) Point {
		return Point{X: pt.Z, Y: pt.Y, Z: -pt.X}
	})
}

// RotateZ returns the piece rotated 90 degrees around the z-axis,
// re-normalized: (x, y, z) -> (y, -x, z).
func (p Piece) RotateZ() Piece {
	return p.mapPoints(func(pt Point) Point {
		return Point{X: pt.Y, Y: -pt.X, Z: pt.Z}
	})
}

func (p Piece) mapPoints(f func(Point) Point) Piece {
	out := Piece{Kind: p.Kind, Points: make([]Point, len(p.Points))}
	for i, pt := range p.Points {
		out.Points[i] = f(pt)
	}
	return out.normalize()
}

// Equal reports structural equality over the sorted point lists. Kind is
// deliberately ignored.
func (p Piece) Equal(q Piece) bool {
	if len(p.Points) != len(q.Points) {
		return false
	}
	for i := range p.Points {
		if p.Points[i] != q.Points[i] {
			return false
		}
	}
	return true
}

// key returns a canonical string form of the point list, used as a dedup
// key when enumerating orientations.
func (p Piece) key() string {
	var b strings.Builder
	for _, pt := range p.Points {
		fmt.Fprintf(&b, "%d,%d,%d;", pt.X, pt.Y, pt.Z)
	}
	return b.String()
}

func (p Piece) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %dx%dx%d [", p.Kind, p.Size.X, p.Size.Y, p.Size.Z)
	for i, pt := range p.Points {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "(%d,%d,%d)", pt.X, pt.Y, pt.Z)
	}
	b.WriteByte(']')
	return b.String()
}
