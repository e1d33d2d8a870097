package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/cubefit/internal/model"
)

func domino(kind byte) model.Piece {
	return model.NewPiece(model.Kind(kind), []model.Point{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0},
	})
}

func snapshotCells(b *Box) []model.PieceKind {
	out := make([]model.PieceKind, 0, b.Size.Volume())
	for x := 0; x < b.Size.X; x++ {
		for y := 0; y < b.Size.Y; y++ {
			for z := 0; z < b.Size.Z; z++ {
				out = append(out, b.Owner(model.Position{X: x, Y: y, Z: z}))
			}
		}
	}
	return out
}

func TestTryPlace_Success(t *testing.T) {
	b := NewBox(model.Size{X: 2, Y: 2, Z: 1})
	p := domino('A')

	require.True(t, b.TryPlace(&p, model.Position{}))
	assert.True(t, b.IsOccupied(model.Position{X: 0, Y: 0, Z: 0}))
	assert.True(t, b.IsOccupied(model.Position{X: 1, Y: 0, Z: 0}))
	assert.False(t, b.IsOccupied(model.Position{X: 0, Y: 1, Z: 0}))
	assert.Equal(t, model.Kind('A'), b.Owner(model.Position{X: 0, Y: 0, Z: 0}))
	assert.Len(t, b.Placements(), 1)
}

func TestTryPlace_OutOfBoundLeavesBoxUntouched(t *testing.T) {
	b := NewBox(model.Size{X: 2, Y: 2, Z: 1})
	p := domino('A')
	before := snapshotCells(b)

	assert.False(t, b.TryPlace(&p, model.Position{X: 1, Y: 0, Z: 0}), "second cell lands at x=2")
	assert.Equal(t, before, snapshotCells(b), "failed placement must have no side effect")
	assert.Empty(t, b.Placements())
}

func TestTryPlace_NegativeAnchorOutOfBound(t *testing.T) {
	b := NewBox(model.Size{X: 2, Y: 2, Z: 1})
	p := domino('A')

	assert.False(t, b.TryPlace(&p, model.Position{X: -1, Y: 0, Z: 0}))
	assert.Empty(t, b.Placements())
}

func TestTryPlace_CollisionLeavesBoxUntouched(t *testing.T) {
	b := NewBox(model.Size{X: 2, Y: 2, Z: 1})
	a, c := domino('A'), domino('C')

	require.True(t, b.TryPlace(&a, model.Position{}))
	before := snapshotCells(b)

	assert.False(t, b.TryPlace(&c, model.Position{}), "overlaps piece A")
	assert.Equal(t, before, snapshotCells(b))
	assert.Len(t, b.Placements(), 1)
}

func TestUndoLast_RestoresExactState(t *testing.T) {
	b := NewBox(model.Size{X: 2, Y: 2, Z: 1})
	a, c := domino('A'), domino('C')

	require.True(t, b.TryPlace(&a, model.Position{}))
	afterA := snapshotCells(b)

	require.True(t, b.TryPlace(&c, model.Position{X: 0, Y: 1, Z: 0}))
	b.UndoLast()
	assert.Equal(t, afterA, snapshotCells(b))
	assert.Len(t, b.Placements(), 1)

	b.UndoLast()
	assert.Equal(t, make([]model.PieceKind, 4), snapshotCells(b))
	assert.Empty(t, b.Placements())
}

func TestUndoLast_PanicsOnEmptyHistory(t *testing.T) {
	b := NewBox(model.Size{X: 1, Y: 1, Z: 1})
	assert.Panics(t, func() { b.UndoLast() })
}

func TestUndoLast_PanicsOnCorruptedHistory(t *testing.T) {
	b := NewBox(model.Size{X: 2, Y: 2, Z: 1})
	p := domino('A')
	require.True(t, b.TryPlace(&p, model.Position{}))

	// Clear a covered cell behind the history's back.
	b.cells[b.index(model.Position{X: 1, Y: 0, Z: 0})] = model.KindNone

	assert.Panics(t, func() { b.UndoLast() })
}

func TestWithPlacement_UndoesAfterCallback(t *testing.T) {
	b := NewBox(model.Size{X: 2, Y: 2, Z: 1})
	p := domino('A')
	empty := snapshotCells(b)

	ran := false
	ok := b.WithPlacement(&p, model.Position{}, func() {
		ran = true
		assert.True(t, b.IsOccupied(model.Position{X: 0, Y: 0, Z: 0}))
	})

	assert.True(t, ok)
	assert.True(t, ran)
	assert.Equal(t, empty, snapshotCells(b), "placement must be undone after the callback")
}

func TestWithPlacement_SkipsCallbackOnFailure(t *testing.T) {
	b := NewBox(model.Size{X: 1, Y: 1, Z: 1})
	p := domino('A')

	ok := b.WithPlacement(&p, model.Position{}, func() {
		t.Fatal("callback must not run for a failed placement")
	})
	assert.False(t, ok)
}

func TestNextEmptyCell_ScanAndResume(t *testing.T) {
	b := NewBox(model.Size{X: 2, Y: 2, Z: 2})

	assert.Equal(t, 0, b.NextEmptyCell(0))

	// Fill the first three cells in scan order: (0,0,0), (0,0,1), (0,1,0).
	single := model.NewPiece(model.Kind('S'), []model.Point{{X: 0, Y: 0, Z: 0}})
	require.True(t, b.TryPlace(&single, model.Position{X: 0, Y: 0, Z: 0}))
	assert.Equal(t, 1, b.NextEmptyCell(0))

	require.True(t, b.TryPlace(&single, model.Position{X: 0, Y: 0, Z: 1}))
	require.True(t, b.TryPlace(&single, model.Position{X: 0, Y: 1, Z: 0}))

	// Resuming past filled cells skips them without rescanning from origin.
	assert.Equal(t, 3, b.NextEmptyCell(1))
	assert.Equal(t, 3, b.NextEmptyCell(3))
	assert.Equal(t, 4, b.NextEmptyCell(4))
}

func TestNextEmptyCell_NoneLeft(t *testing.T) {
	b := NewBox(model.Size{X: 1, Y: 1, Z: 2})
	p := model.NewPiece(model.Kind('A'), []model.Point{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}})
	require.True(t, b.TryPlace(&p, model.Position{}))

	assert.Equal(t, -1, b.NextEmptyCell(0))
	assert.Equal(t, -1, b.NextEmptyCell(2), "cursor past the end finds nothing")
}

func TestIndexPositionRoundTrip(t *testing.T) {
	b := NewBox(model.Size{X: 3, Y: 4, Z: 2})
	for i := 0; i < b.Size.Volume(); i++ {
		pos := b.Position(i)
		assert.False(t, b.IsOutOfBound(pos))
		assert.Equal(t, i, b.index(pos))
	}
	// Scan order is row-major (x, y, z): z varies fastest.
	assert.Equal(t, model.Position{X: 0, Y: 0, Z: 1}, b.Position(1))
	assert.Equal(t, model.Position{X: 0, Y: 1, Z: 0}, b.Position(2))
	assert.Equal(t, model.Position{X: 1, Y: 0, Z: 0}, b.Position(8))
}

func TestHasDuplicateKind(t *testing.T) {
	b := NewBox(model.Size{X: 2, Y: 2, Z: 1})
	a1, a2 := domino('A'), domino('A')

	require.True(t, b.TryPlace(&a1, model.Position{}))
	assert.False(t, b.HasDuplicateKind())

	require.True(t, b.TryPlace(&a2, model.Position{X: 0, Y: 1, Z: 0}))
	assert.True(t, b.HasDuplicateKind())
}
