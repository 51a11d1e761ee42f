package state

import (
	"image/color"
	"math/rand"

	"github.com/google/uuid"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Placement bounds for shape origins, sized to the visible canvas.
const (
	OriginSpanX = 600
	OriginSpanY = 600
)

// Generator builds randomly parameterised shapes. All randomness comes
// from the injected source so a seeded generator is reproducible.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// NewSeededGenerator is shorthand for a generator over rand.NewSource(seed).
func NewSeededGenerator(seed int64) *Generator {
	return NewGenerator(rand.New(rand.NewSource(seed)))
}

func (g *Generator) coinFlip() bool {
	return g.rng.Intn(2) == 0
}

func (g *Generator) sign() int {
	if g.coinFlip() {
		return -1
	}
	return 1
}

func (g *Generator) id() string {
	return uuid.Must(uuid.NewRandomFromReader(g.rng)).String()
}

func (g *Generator) origin() Point {
	return Point{X: float32(g.rng.Intn(OriginSpanX)), Y: float32(g.rng.Intn(OriginSpanY))}
}

// shapeColor picks a random hue at moderate saturation and value so fills
// stay visible on most backgrounds.
func (g *Generator) shapeColor() color.NRGBA {
	c := colorful.Hsv(g.rng.Float64()*360, 0.5+g.rng.Float64()*0.5, 0.5+g.rng.Float64()*0.5)
	r, gr, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: gr, B: b, A: 0xff}
}

// Shape dispatches on kind. Triangles always have three vertices; polygons
// use the edge count.
func (g *Generator) Shape(kind Kind, scale, edges int) Shape {
	switch kind {
	case KindTriangle:
		return g.Polygon(3, scale)
	case KindRectangle:
		return g.Rectangle(scale)
	case KindEllipse:
		return g.Ellipse(scale)
	default:
		return g.Polygon(edges, scale)
	}
}

// Polygon perturbs a random origin by a signed offset in [0, scale) per
// axis for each vertex.
func (g *Generator) Polygon(sides, scale int) Shape {
	kind := KindPolygon
	if sides == 3 {
		kind = KindTriangle
	}
	o := g.origin()
	vertices := make([]Point, 0, sides)
	for i := 0; i < sides; i++ {
		dx := g.rng.Intn(scale) * g.sign()
		dy := g.rng.Intn(scale) * g.sign()
		vertices = append(vertices, Point{X: o.X + float32(dx), Y: o.Y + float32(dy)})
	}
	return Shape{
		ID:       g.id(),
		Kind:     kind,
		Origin:   o,
		Vertices: vertices,
		Color:    g.shapeColor(),
	}
}

// Rectangle has integral sides in [1, scale]; half the time it is a square.
func (g *Generator) Rectangle(scale int) Shape {
	o := g.origin()
	width := g.rng.Intn(scale) + 1
	height := width
	if !g.coinFlip() {
		height = g.rng.Intn(scale) + 1
	}
	return Shape{
		ID:     g.id(),
		Kind:   KindRectangle,
		Origin: o,
		Width:  float64(width),
		Height: float64(height),
		Color:  g.shapeColor(),
	}
}

// Ellipse has a real-valued bounding box with sides in (0, scale]; half
// the time it is a circle.
func (g *Generator) Ellipse(scale int) Shape {
	o := g.origin()
	s := float64(scale)
	width := s - g.rng.Float64()*s
	height := width
	if !g.coinFlip() {
		height = s - g.rng.Float64()*s
	}
	return Shape{
		ID:     g.id(),
		Kind:   KindEllipse,
		Origin: o,
		Width:  width,
		Height: height,
		Color:  g.shapeColor(),
	}
}

// Background draws uniformly from the 24-bit RGB space.
func (g *Generator) Background() color.NRGBA {
	v := g.rng.Intn(1 << 24)
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
