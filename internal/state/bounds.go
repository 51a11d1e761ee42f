package state

// Rect is an axis-aligned box on the board.
type Rect struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

func boundsOf(points []Point, padding float32) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	return Rect{
		X:      minX - padding,
		Y:      minY - padding,
		Width:  maxX - minX + 2*padding,
		Height: maxY - minY + 2*padding,
	}
}

// Bounds is the box the shape covers when filled.
func (s Shape) Bounds() Rect {
	switch s.Kind {
	case KindRectangle, KindEllipse:
		return Rect{X: s.Origin.X, Y: s.Origin.Y, Width: float32(s.Width), Height: float32(s.Height)}
	default:
		return boundsOf(s.Vertices, 0)
	}
}

// Bounds is the box the stroke covers, padded by half the pen width.
func (s Stroke) Bounds() Rect {
	return boundsOf(s.Points, s.Width/2)
}
