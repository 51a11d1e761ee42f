package state

import (
	"image/color"
)

type Point struct{ X, Y float32 }

// Kind tags the shape variant.
type Kind string

const (
	KindTriangle  Kind = "triangle"
	KindRectangle Kind = "rectangle"
	KindEllipse   Kind = "ellipse"
	KindPolygon   Kind = "polygon"
)

// Shape is an immutable descriptor placed on the board.
// Triangles and polygons use Vertices; rectangles and ellipses use
// Width/Height measured from Origin, the top-left corner of the box.
type Shape struct {
	ID       string      `json:"id"`
	Kind     Kind        `json:"kind"`
	Origin   Point       `json:"origin"`
	Vertices []Point     `json:"vertices,omitempty"`
	Width    float64     `json:"width,omitempty"`
	Height   float64     `json:"height,omitempty"`
	Color    color.NRGBA `json:"color"`
}

type Stroke struct {
	ID     string      `json:"id"`
	Points []Point     `json:"points"`
	Color  color.NRGBA `json:"color"`
	Width  float32     `json:"width"`
}

type OpType string

const (
	OpAddShape    OpType = "add_shape"
	OpStrokePoint OpType = "stroke_point"
	OpStrokeEnd   OpType = "stroke_end"
	OpAddStroke   OpType = "add_stroke"
	OpClear       OpType = "clear"
	OpBackground  OpType = "background"
)

// Op records a single board mutation. Stroke points carry the pen in
// effect so a replaying board draws the same line. add_stroke carries a
// finished stroke in one op.
type Op struct {
	Type    OpType       `json:"type"`
	Shape   *Shape       `json:"shape,omitempty"`
	Stroke  *Stroke      `json:"stroke,omitempty"`
	Point   *Point       `json:"point,omitempty"`
	Pen     *Pen         `json:"pen,omitempty"`
	Color   *color.NRGBA `json:"color,omitempty"`
	Lamport uint64       `json:"lamport"`
	Site    string       `json:"site"`
}

// Pen is the width and colour given to new strokes.
type Pen struct {
	Width float32     `json:"width"`
	Color color.NRGBA `json:"color"`
}
