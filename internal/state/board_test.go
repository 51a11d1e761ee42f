package state

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black = color.NRGBA{A: 0xff}
)

func newTestBoard() *Board {
	return NewBoard(white, Pen{Width: 5, Color: black})
}

func TestAddShapeKeepsCallOrder(t *testing.T) {
	b := newTestBoard()
	g := NewSeededGenerator(1)
	var want []string
	for i := 0; i < 7; i++ {
		s := g.Shape(KindRectangle, 30, 5)
		want = append(want, s.ID)
		b.AddShape(s)
	}
	shapes := b.Shapes()
	require.Len(t, shapes, 7)
	for i, s := range shapes {
		assert.Equal(t, want[i], s.ID)
	}
}

func TestExtendStrokeAppendsToActiveStroke(t *testing.T) {
	b := newTestBoard()
	b.ExtendStroke(Point{1, 1})
	b.ExtendStroke(Point{2, 2})
	b.ExtendStroke(Point{3, 3})

	strokes := b.Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, []Point{{1, 1}, {2, 2}, {3, 3}}, strokes[0].Points)
	assert.Equal(t, float32(5), strokes[0].Width)
	assert.Equal(t, black, strokes[0].Color)
}

func TestResetStrokeStartsFreshStroke(t *testing.T) {
	b := newTestBoard()
	b.ExtendStroke(Point{1, 1})
	b.ExtendStroke(Point{2, 2})
	b.ResetStroke()
	b.ExtendStroke(Point{9, 9})

	strokes := b.Strokes()
	require.Len(t, strokes, 2)
	assert.Equal(t, []Point{{9, 9}}, strokes[1].Points)
	assert.Len(t, strokes[0].Points, 2)
}

func TestBeginStrokeAlwaysStartsNewStroke(t *testing.T) {
	b := newTestBoard()
	b.BeginStroke(Point{1, 1})
	b.BeginStroke(Point{2, 2})
	b.ExtendStroke(Point{3, 3})

	strokes := b.Strokes()
	require.Len(t, strokes, 2)
	assert.Equal(t, []Point{{2, 2}, {3, 3}}, strokes[1].Points)
}

func TestPenAppliesToNewStrokesOnly(t *testing.T) {
	b := newTestBoard()
	b.ExtendStroke(Point{1, 1})
	b.SetPen(Pen{Width: 12, Color: white})
	b.ExtendStroke(Point{2, 2})
	b.ResetStroke()
	b.ExtendStroke(Point{3, 3})

	strokes := b.Strokes()
	require.Len(t, strokes, 2)
	assert.Equal(t, float32(5), strokes[0].Width)
	assert.Equal(t, float32(12), strokes[1].Width)
}

func TestClearEmptiesShapesAndStrokes(t *testing.T) {
	b := newTestBoard()
	g := NewSeededGenerator(2)
	for i := 0; i < 5; i++ {
		b.AddShape(g.Shape(KindPolygon, 50, 8))
	}
	b.ExtendStroke(Point{1, 1})
	b.ResetStroke()
	b.ExtendStroke(Point{5, 5})
	require.Len(t, b.Strokes(), 2)

	b.Clear()
	snap := b.Snapshot()
	assert.Empty(t, snap.Shapes)
	assert.Empty(t, snap.Strokes)

	b.Clear()
	assert.Empty(t, b.Snapshot().Shapes)

	// A drag after clear begins a new stroke.
	b.ExtendStroke(Point{7, 7})
	assert.Equal(t, []Point{{7, 7}}, b.Strokes()[0].Points)
}

func TestClearKeepsBackground(t *testing.T) {
	b := newTestBoard()
	b.SetBackground(black)
	b.Clear()
	assert.Equal(t, black, b.Background())
}

func TestSnapshotIsIndependentOfBoard(t *testing.T) {
	b := newTestBoard()
	b.ExtendStroke(Point{1, 1})
	snap := b.Snapshot()
	b.ExtendStroke(Point{2, 2})
	b.AddShape(Shape{ID: "x", Kind: KindRectangle, Width: 1, Height: 1})

	assert.Len(t, snap.Strokes[0].Points, 1)
	assert.Empty(t, snap.Shapes)
}

func TestOpsEmittedInMutationOrder(t *testing.T) {
	b := newTestBoard()
	var ops []Op
	b.OnOp = func(op Op) { ops = append(ops, op) }

	b.AddShape(Shape{ID: "s1", Kind: KindRectangle, Width: 3, Height: 3})
	b.ExtendStroke(Point{1, 1})
	b.ResetStroke()
	b.ResetStroke() // no active stroke, no op
	b.SetBackground(black)
	b.Clear()

	require.Len(t, ops, 5)
	types := []OpType{OpAddShape, OpStrokePoint, OpStrokeEnd, OpBackground, OpClear}
	for i, op := range ops {
		assert.Equal(t, types[i], op.Type)
		assert.Equal(t, uint64(i+1), op.Lamport)
		assert.NotEmpty(t, op.Site)
	}
	assert.Equal(t, float32(5), ops[1].Pen.Width)
}

func TestApplyReproducesHostBoard(t *testing.T) {
	host := newTestBoard()
	viewer := NewBoard(black, Pen{Width: 1, Color: white})
	host.OnOp = viewer.Apply

	g := NewSeededGenerator(3)
	host.AddShape(g.Shape(KindTriangle, 20, 5))
	host.SetPen(Pen{Width: 9, Color: black})
	host.ExtendStroke(Point{1, 2})
	host.ExtendStroke(Point{3, 4})
	host.ResetStroke()
	host.ExtendStroke(Point{5, 6})
	host.SetBackground(white)
	host.AddShape(g.Shape(KindEllipse, 20, 5))

	hs, vs := host.Snapshot(), viewer.Snapshot()
	assert.Equal(t, hs.Shapes, vs.Shapes)
	assert.Equal(t, hs.Background, vs.Background)
	require.Len(t, vs.Strokes, 2)
	for i := range hs.Strokes {
		assert.Equal(t, hs.Strokes[i].Points, vs.Strokes[i].Points)
		assert.Equal(t, hs.Strokes[i].Width, vs.Strokes[i].Width)
	}

	host.Clear()
	assert.Empty(t, viewer.Snapshot().Shapes)
	assert.Empty(t, viewer.Snapshot().Strokes)
}

func TestApplyIgnoresIncompleteOps(t *testing.T) {
	b := newTestBoard()
	b.Apply(Op{Type: OpAddShape})
	b.Apply(Op{Type: OpStrokePoint})
	b.Apply(Op{Type: OpBackground})
	b.Apply(Op{Type: "rotate"})
	snap := b.Snapshot()
	assert.Empty(t, snap.Shapes)
	assert.Empty(t, snap.Strokes)
	assert.Equal(t, white, snap.Background)
}

func TestApplyAddStrokeEndsActiveStroke(t *testing.T) {
	b := newTestBoard()
	b.ExtendStroke(Point{1, 1})
	b.Apply(Op{Type: OpAddStroke, Stroke: &Stroke{Points: []Point{{2, 2}, {3, 3}}, Width: 4, Color: black}})
	b.ExtendStroke(Point{4, 4})
	b.Apply(Op{Type: OpAddStroke, Stroke: &Stroke{}}) // no points, ignored

	strokes := b.Strokes()
	require.Len(t, strokes, 3)
	assert.Equal(t, []Point{{2, 2}, {3, 3}}, strokes[1].Points)
	assert.Equal(t, float32(4), strokes[1].Width)
	assert.NotEmpty(t, strokes[1].ID)
	assert.Equal(t, []Point{{4, 4}}, strokes[2].Points)
}
