package state

import (
	"image/color"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Snapshot is a copy of the board taken for rendering or export.
type Snapshot struct {
	Shapes     []Shape
	Strokes    []Stroke
	Background color.NRGBA
}

// Board is the ordered store of shapes and freehand strokes.
// Shapes and strokes are append-only until Clear.
type Board struct {
	shapes     []Shape
	strokes    []Stroke
	background color.NRGBA
	pen        Pen
	active     bool // the last stroke still receives points
	mu         sync.RWMutex

	clock *Clock
	// OnOp, when set, receives every mutation after it is applied.
	OnOp func(Op)
}

func NewBoard(background color.NRGBA, pen Pen) *Board {
	return &Board{
		shapes:     make([]Shape, 0),
		strokes:    make([]Stroke, 0),
		background: background,
		pen:        pen,
		clock:      NewClock(),
	}
}

func (b *Board) emit(op Op) {
	if b.OnOp != nil {
		b.OnOp(b.clock.Stamp(op))
	}
}

func (b *Board) AddShape(s Shape) {
	b.mu.Lock()
	b.shapes = append(b.shapes, s)
	b.mu.Unlock()
	b.emit(Op{Type: OpAddShape, Shape: &s})
}

// SetPen changes the width and colour given to strokes started from now on.
func (b *Board) SetPen(p Pen) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pen = p
}

func (b *Board) Pen() Pen {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pen
}

// BeginStroke ends any active stroke and starts a new one at p.
func (b *Board) BeginStroke(p Point) {
	b.ResetStroke()
	b.ExtendStroke(p)
}

// ExtendStroke appends p to the active stroke, or starts a new stroke
// holding only p when none is active.
func (b *Board) ExtendStroke(p Point) {
	b.mu.Lock()
	if !b.active || len(b.strokes) == 0 {
		b.strokes = append(b.strokes, Stroke{
			ID:     uuid.NewString(),
			Points: []Point{p},
			Color:  b.pen.Color,
			Width:  b.pen.Width,
		})
		b.active = true
	} else {
		last := &b.strokes[len(b.strokes)-1]
		last.Points = append(last.Points, p)
	}
	pen := Pen{Width: b.strokes[len(b.strokes)-1].Width, Color: b.strokes[len(b.strokes)-1].Color}
	b.mu.Unlock()
	b.emit(Op{Type: OpStrokePoint, Point: &p, Pen: &pen})
}

// AddStroke appends a finished stroke. Any active stroke ends first.
func (b *Board) AddStroke(st Stroke) {
	b.ResetStroke()
	st.Points = append([]Point(nil), st.Points...)
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	b.mu.Lock()
	b.strokes = append(b.strokes, st)
	b.mu.Unlock()
	b.emit(Op{Type: OpAddStroke, Stroke: &st})
}

// ResetStroke marks no stroke as active. It is a no-op when none is.
func (b *Board) ResetStroke() {
	b.mu.Lock()
	wasActive := b.active
	b.active = false
	b.mu.Unlock()
	if wasActive {
		b.emit(Op{Type: OpStrokeEnd})
	}
}

// Clear empties shapes and strokes in one step.
func (b *Board) Clear() {
	b.mu.Lock()
	n, m := len(b.shapes), len(b.strokes)
	b.shapes = make([]Shape, 0)
	b.strokes = make([]Stroke, 0)
	b.active = false
	b.mu.Unlock()
	log.Printf("[BOARD] Cleared %d shapes and %d strokes", n, m)
	b.emit(Op{Type: OpClear})
}

func (b *Board) SetBackground(c color.NRGBA) {
	b.mu.Lock()
	b.background = c
	b.mu.Unlock()
	b.emit(Op{Type: OpBackground, Color: &c})
}

func (b *Board) Background() color.NRGBA {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.background
}

func (b *Board) Shapes() []Shape {
	b.mu.RLock()
	defer b.mu.RUnlock()
	shapes := make([]Shape, len(b.shapes))
	copy(shapes, b.shapes)
	return shapes
}

func (b *Board) Strokes() []Stroke {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return copyStrokes(b.strokes)
}

func copyStrokes(src []Stroke) []Stroke {
	strokes := make([]Stroke, len(src))
	for i, st := range src {
		st.Points = append([]Point(nil), st.Points...)
		strokes[i] = st
	}
	return strokes
}

func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	shapes := make([]Shape, len(b.shapes))
	copy(shapes, b.shapes)
	return Snapshot{
		Shapes:     shapes,
		Strokes:    copyStrokes(b.strokes),
		Background: b.background,
	}
}

// Apply replays an op produced by another board.
func (b *Board) Apply(op Op) {
	switch op.Type {
	case OpAddShape:
		if op.Shape != nil {
			b.AddShape(*op.Shape)
		}
	case OpStrokePoint:
		if op.Point == nil {
			return
		}
		if op.Pen != nil {
			b.SetPen(*op.Pen)
		}
		b.ExtendStroke(*op.Point)
	case OpStrokeEnd:
		b.ResetStroke()
	case OpAddStroke:
		if op.Stroke != nil && len(op.Stroke.Points) > 0 {
			b.AddStroke(*op.Stroke)
		}
	case OpClear:
		b.Clear()
	case OpBackground:
		if op.Color != nil {
			b.SetBackground(*op.Color)
		}
	default:
		log.Printf("[BOARD] Ignoring unknown op %q from %s", op.Type, op.Site)
	}
}
