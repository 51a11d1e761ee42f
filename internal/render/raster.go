// Package render rasterises a board snapshot. The same code paints the
// on-screen canvas and the offscreen buffer used for export.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"artboard/internal/state"
)

// kappa places cubic control points for a quarter ellipse.
const kappa = 0.5522847498307936

// Image renders snap into a new w×h buffer. scale maps board units to pixels.
func Image(snap state.Snapshot, w, h int, scale float32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	Draw(img, snap, scale)
	return img
}

// Draw paints the background, then shapes in insertion order, then strokes.
func Draw(dst draw.Image, snap state.Snapshot, scale float32) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(snap.Background), image.Point{}, draw.Src)

	p := &painter{dst: dst, scale: scale}
	for _, s := range snap.Shapes {
		p.shape(s)
	}
	for _, s := range snap.Strokes {
		p.stroke(s)
	}
}

type painter struct {
	dst   draw.Image
	z     *vector.Rasterizer
	scale float32
	rect  image.Rectangle
}

// begin sizes the rasteriser to the pixels covered by r. It reports false
// when r falls outside the destination.
func (p *painter) begin(r state.Rect) bool {
	px := image.Rect(
		int(math.Floor(float64(r.X*p.scale))),
		int(math.Floor(float64(r.Y*p.scale))),
		int(math.Ceil(float64((r.X+r.Width)*p.scale)))+1,
		int(math.Ceil(float64((r.Y+r.Height)*p.scale)))+1,
	).Intersect(p.dst.Bounds())
	if px.Empty() {
		return false
	}
	p.rect = px
	if p.z == nil {
		p.z = vector.NewRasterizer(px.Dx(), px.Dy())
	} else {
		p.z.Reset(px.Dx(), px.Dy())
	}
	return true
}

func (p *painter) at(x, y float32) (float32, float32) {
	return x*p.scale - float32(p.rect.Min.X), y*p.scale - float32(p.rect.Min.Y)
}

func (p *painter) moveTo(x, y float32) { p.z.MoveTo(p.at(x, y)) }
func (p *painter) lineTo(x, y float32) { p.z.LineTo(p.at(x, y)) }

func (p *painter) cubeTo(bx, by, cx, cy, dx, dy float32) {
	bx, by = p.at(bx, by)
	cx, cy = p.at(cx, cy)
	dx, dy = p.at(dx, dy)
	p.z.CubeTo(bx, by, cx, cy, dx, dy)
}

func (p *painter) fill(c color.Color) {
	p.z.Draw(p.dst, p.rect, image.NewUniform(c), image.Point{})
}

// ellipse traces clockwise (in screen space) so it adds coverage with the
// same sign as the stroke segments in stroke.
func (p *painter) ellipse(cx, cy, rx, ry float32) {
	ox, oy := rx*kappa, ry*kappa
	p.moveTo(cx+rx, cy)
	p.cubeTo(cx+rx, cy-oy, cx+ox, cy-ry, cx, cy-ry)
	p.cubeTo(cx-ox, cy-ry, cx-rx, cy-oy, cx-rx, cy)
	p.cubeTo(cx-rx, cy+oy, cx-ox, cy+ry, cx, cy+ry)
	p.cubeTo(cx+ox, cy+ry, cx+rx, cy+oy, cx+rx, cy)
	p.z.ClosePath()
}

func (p *painter) shape(s state.Shape) {
	if !p.begin(s.Bounds()) {
		return
	}
	switch s.Kind {
	case state.KindRectangle:
		x, y := s.Origin.X, s.Origin.Y
		w, h := float32(s.Width), float32(s.Height)
		p.moveTo(x, y)
		p.lineTo(x+w, y)
		p.lineTo(x+w, y+h)
		p.lineTo(x, y+h)
		p.z.ClosePath()
	case state.KindEllipse:
		rx, ry := float32(s.Width)/2, float32(s.Height)/2
		p.ellipse(s.Origin.X+rx, s.Origin.Y+ry, rx, ry)
	default:
		if len(s.Vertices) < 3 {
			return
		}
		p.moveTo(s.Vertices[0].X, s.Vertices[0].Y)
		for _, v := range s.Vertices[1:] {
			p.lineTo(v.X, v.Y)
		}
		p.z.ClosePath()
	}
	p.fill(s.Color)
}

// stroke draws each segment as a quad with round joins. All sub-paths
// share one winding direction so overlaps do not cancel.
func (p *painter) stroke(s state.Stroke) {
	if len(s.Points) == 0 || !p.begin(s.Bounds()) {
		return
	}
	hw := s.Width / 2
	if hw < 0.5 {
		hw = 0.5
	}
	for i, pt := range s.Points {
		p.ellipse(pt.X, pt.Y, hw, hw)
		if i == 0 {
			continue
		}
		prev := s.Points[i-1]
		dx, dy := pt.X-prev.X, pt.Y-prev.Y
		l := float32(math.Hypot(float64(dx), float64(dy)))
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*hw, dx/l*hw
		p.moveTo(prev.X+nx, prev.Y+ny)
		p.lineTo(pt.X+nx, pt.Y+ny)
		p.lineTo(pt.X-nx, pt.Y-ny)
		p.lineTo(prev.X-nx, prev.Y-ny)
		p.z.ClosePath()
	}
	p.fill(s.Color)
}
