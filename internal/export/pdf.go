package export

import (
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"

	"artboard/internal/state"
)

// WritePDF writes snap as a single-page vector document, one point per
// board unit.
func WritePDF(w io.Writer, snap state.Snapshot, page Page) error {
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(page.Width), Ht: float64(page.Height)},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	setFill(p, snap.Background)
	p.Rect(0, 0, float64(page.Width), float64(page.Height), "F")

	for _, s := range snap.Shapes {
		setFill(p, s.Color)
		switch s.Kind {
		case state.KindRectangle:
			p.Rect(float64(s.Origin.X), float64(s.Origin.Y), s.Width, s.Height, "F")
		case state.KindEllipse:
			rx, ry := s.Width/2, s.Height/2
			p.Ellipse(float64(s.Origin.X)+rx, float64(s.Origin.Y)+ry, rx, ry, 0, "F")
		default:
			pts := make([]gofpdf.PointType, 0, len(s.Vertices))
			for _, v := range s.Vertices {
				pts = append(pts, gofpdf.PointType{X: float64(v.X), Y: float64(v.Y)})
			}
			p.Polygon(pts, "F")
		}
	}

	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")
	for _, st := range snap.Strokes {
		if len(st.Points) == 0 {
			continue
		}
		if len(st.Points) == 1 {
			setFill(p, st.Color)
			p.Circle(float64(st.Points[0].X), float64(st.Points[0].Y), float64(st.Width)/2, "F")
			continue
		}
		p.SetDrawColor(int(st.Color.R), int(st.Color.G), int(st.Color.B))
		p.SetLineWidth(float64(st.Width))
		p.MoveTo(float64(st.Points[0].X), float64(st.Points[0].Y))
		for _, pt := range st.Points[1:] {
			p.LineTo(float64(pt.X), float64(pt.Y))
		}
		p.DrawPath("D")
	}
	return p.Output(w)
}

func setFill(p *gofpdf.Fpdf, c color.NRGBA) {
	p.SetFillColor(int(c.R), int(c.G), int(c.B))
}
