package ui

import (
	"image"
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"artboard/internal/export"
	"artboard/internal/render"
	"artboard/internal/state"
)

// BoardWidget is the drawing surface: it shows a state.Board and turns
// drags into freehand strokes.
type BoardWidget struct {
	widget.BaseWidget
	board    *state.Board
	page     export.Page
	format   export.Format
	ReadOnly bool
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(board *state.Board, page export.Page, format export.Format) *BoardWidget {
	b := &BoardWidget{
		board:  board,
		page:   page,
		format: format,
	}
	b.ExtendBaseWidget(b)
	return b
}

func (b *BoardWidget) Board() *state.Board { return b.board }

func (b *BoardWidget) bounds() state.Rect {
	return state.Rect{Width: float32(b.page.Width), Height: float32(b.page.Height)}
}

func (b *BoardWidget) AddShape(s state.Shape) {
	b.board.AddShape(s)
	b.Refresh()
}

func (b *BoardWidget) Clear() {
	b.board.Clear()
	b.Refresh()
}

func (b *BoardWidget) SetBackground(c color.NRGBA) {
	b.board.SetBackground(c)
	b.Refresh()
}

// Apply replays a mirrored op. Call it on the UI thread.
func (b *BoardWidget) Apply(op state.Op) {
	b.board.Apply(op)
	b.Refresh()
}

// SaveTo renders the board offscreen into w and closes it. The format
// follows the file extension. Errors are *export.Error, and a partly
// written file is removed.
func (b *BoardWidget) SaveTo(w fyne.URIWriteCloser) (err error) {
	uri := w.URI()
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = &export.Error{Path: uri.Path(), Err: cerr}
		}
		if err != nil {
			if derr := storage.Delete(uri); derr != nil {
				log.Printf("[EXPORT] Could not remove partial file %s: %v", uri.Path(), derr)
			}
		}
	}()

	f, err := export.FormatFor(uri.Name(), b.format)
	if err != nil {
		return &export.Error{Path: uri.Path(), Err: err}
	}
	snap := b.board.Snapshot()
	if err := export.Write(w, snap, b.page, f); err != nil {
		return &export.Error{Path: uri.Path(), Err: err}
	}
	log.Printf("[EXPORT] Saved %d shapes and %d strokes to %s", len(snap.Shapes), len(snap.Strokes), uri)
	return nil
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if b.ReadOnly {
		return
	}
	p := state.Point{X: e.Position.X, Y: e.Position.Y}
	if !b.bounds().Contains(p) {
		b.endStroke()
		return
	}
	b.board.ExtendStroke(p)
	b.Refresh()
}

// endStroke runs on release and when the pointer leaves the board. A
// read-only board must not split strokes that arrive from the host.
func (b *BoardWidget) endStroke() {
	if !b.ReadOnly {
		b.board.ResetStroke()
	}
}

func (b *BoardWidget) DragEnd() { b.endStroke() }
func (b *BoardWidget) MouseUp(*desktop.MouseEvent) { b.endStroke() }
func (b *BoardWidget) MouseOut() { b.endStroke() }

func (b *BoardWidget) MouseDown(*desktop.MouseEvent) {}
func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.raster = canvas.NewRaster(r.draw)
	return r
}

type boardWidgetRenderer struct {
	board  *BoardWidget
	raster *canvas.Raster
}

// draw paints at the raster's pixel size, scaled from board units.
func (r *boardWidgetRenderer) draw(w, h int) image.Image {
	scale := float32(1)
	if size := r.board.Size(); size.Width > 0 {
		scale = float32(w) / size.Width
	}
	return render.Image(r.board.board.Snapshot(), w, h, scale)
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster}
}

func (r *boardWidgetRenderer) Refresh() {
	canvas.Refresh(r.raster)
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(float32(r.board.page.Width), float32(r.board.page.Height))
}

func (r *boardWidgetRenderer) Destroy() {}

