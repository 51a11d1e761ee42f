package state

const (
	MinScale = 20
	MaxScale = 100
	MinEdges = 5
	MaxEdges = 20
)

// Settings holds the slider-driven generator parameters.
type Settings struct {
	scale int
	edges int
}

func NewSettings() *Settings {
	return &Settings{scale: MinScale, edges: MinEdges}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *Settings) Scale() int { return s.scale }
func (s *Settings) Edges() int { return s.edges }

// SetScale stores v clamped to [MinScale, MaxScale] and returns the stored value.
func (s *Settings) SetScale(v int) int {
	s.scale = clamp(v, MinScale, MaxScale)
	return s.scale
}

// SetEdges stores v clamped to [MinEdges, MaxEdges] and returns the stored value.
func (s *Settings) SetEdges(v int) int {
	s.edges = clamp(v, MinEdges, MaxEdges)
	return s.edges
}
