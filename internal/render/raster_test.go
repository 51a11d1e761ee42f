package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"artboard/internal/state"
)

var (
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	red   = color.NRGBA{R: 0xff, A: 0xff}
	blue  = color.NRGBA{B: 0xff, A: 0xff}
	black = color.NRGBA{A: 0xff}
)

func at(img *image.RGBA, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestEmptySnapshotIsBackgroundOnly(t *testing.T) {
	img := Image(state.Snapshot{Background: blue}, 40, 30, 1)
	for y := 0; y < 30; y += 7 {
		for x := 0; x < 40; x += 7 {
			assert.Equal(t, blue, at(img, x, y))
		}
	}
}

func TestRectangleIsFilled(t *testing.T) {
	snap := state.Snapshot{
		Background: white,
		Shapes: []state.Shape{
			{Kind: state.KindRectangle, Origin: state.Point{X: 10, Y: 10}, Width: 20, Height: 10, Color: red},
		},
	}
	img := Image(snap, 50, 50, 1)
	assert.Equal(t, red, at(img, 15, 15))
	assert.Equal(t, red, at(img, 29, 19))
	assert.Equal(t, white, at(img, 5, 5))
	assert.Equal(t, white, at(img, 35, 15))
	assert.Equal(t, white, at(img, 15, 25))
}

func TestEllipseCoversCentreNotCorners(t *testing.T) {
	snap := state.Snapshot{
		Background: white,
		Shapes: []state.Shape{
			{Kind: state.KindEllipse, Origin: state.Point{X: 0, Y: 0}, Width: 40, Height: 40, Color: red},
		},
	}
	img := Image(snap, 40, 40, 1)
	assert.Equal(t, red, at(img, 20, 20))
	assert.Equal(t, white, at(img, 1, 1))
	assert.Equal(t, white, at(img, 38, 38))
}

func TestPolygonIsFilled(t *testing.T) {
	snap := state.Snapshot{
		Background: white,
		Shapes: []state.Shape{{
			Kind:     state.KindTriangle,
			Vertices: []state.Point{{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 0, Y: 40}},
			Color:    red,
		}},
	}
	img := Image(snap, 40, 40, 1)
	assert.Equal(t, red, at(img, 5, 5))
	assert.Equal(t, white, at(img, 35, 35))
}

func TestLaterShapesPaintOver(t *testing.T) {
	snap := state.Snapshot{
		Background: white,
		Shapes: []state.Shape{
			{Kind: state.KindRectangle, Origin: state.Point{X: 0, Y: 0}, Width: 20, Height: 20, Color: red},
			{Kind: state.KindRectangle, Origin: state.Point{X: 10, Y: 10}, Width: 20, Height: 20, Color: blue},
		},
	}
	img := Image(snap, 30, 30, 1)
	assert.Equal(t, red, at(img, 5, 5))
	assert.Equal(t, blue, at(img, 15, 15))
}

func TestStrokesPaintOverShapes(t *testing.T) {
	snap := state.Snapshot{
		Background: white,
		Shapes: []state.Shape{
			{Kind: state.KindRectangle, Origin: state.Point{X: 0, Y: 0}, Width: 40, Height: 40, Color: red},
		},
		Strokes: []state.Stroke{{
			Points: []state.Point{{X: 5, Y: 20}, {X: 20, Y: 20}, {X: 35, Y: 20}},
			Width:  6,
			Color:  black,
		}},
	}
	img := Image(snap, 40, 40, 1)
	assert.Equal(t, black, at(img, 12, 20))
	assert.Equal(t, black, at(img, 20, 20))
	assert.Equal(t, black, at(img, 30, 19))
	assert.Equal(t, red, at(img, 20, 30))
}

func TestSinglePointStrokeDrawsDot(t *testing.T) {
	snap := state.Snapshot{
		Background: white,
		Strokes:    []state.Stroke{{Points: []state.Point{{X: 10, Y: 10}}, Width: 8, Color: black}},
	}
	img := Image(snap, 20, 20, 1)
	assert.Equal(t, black, at(img, 10, 10))
	assert.Equal(t, white, at(img, 1, 1))
}

func TestScaleMapsBoardUnitsToPixels(t *testing.T) {
	snap := state.Snapshot{
		Background: white,
		Shapes: []state.Shape{
			{Kind: state.KindRectangle, Origin: state.Point{X: 10, Y: 10}, Width: 10, Height: 10, Color: red},
		},
	}
	img := Image(snap, 60, 60, 2)
	assert.Equal(t, red, at(img, 30, 30))
	assert.Equal(t, white, at(img, 15, 15))
	assert.Equal(t, white, at(img, 45, 45))
}

func TestShapesOutsideTheImageAreSkipped(t *testing.T) {
	snap := state.Snapshot{
		Background: white,
		Shapes: []state.Shape{
			{Kind: state.KindRectangle, Origin: state.Point{X: 500, Y: 500}, Width: 10, Height: 10, Color: red},
			{Kind: state.KindRectangle, Origin: state.Point{X: -5, Y: -5}, Width: 10, Height: 10, Color: blue},
		},
	}
	img := Image(snap, 20, 20, 1)
	assert.Equal(t, blue, at(img, 2, 2))
	assert.Equal(t, white, at(img, 15, 15))
}

func TestRenderIsIdempotent(t *testing.T) {
	snap := state.Snapshot{
		Background: white,
		Shapes: []state.Shape{
			{Kind: state.KindEllipse, Origin: state.Point{X: 3, Y: 4}, Width: 17, Height: 9, Color: red},
		},
		Strokes: []state.Stroke{{Points: []state.Point{{X: 1, Y: 1}, {X: 20, Y: 15}}, Width: 3, Color: black}},
	}
	a := Image(snap, 30, 30, 1)
	b := Image(snap, 30, 30, 1)
	assert.Equal(t, a.Pix, b.Pix)
}
