package ui

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"artboard/internal/config"
	"artboard/internal/export"
	"artboard/internal/state"
)

const welcomeMessage = "Welcome to art!"

// Controller owns the window, the drawing surface and error reporting.
type Controller struct {
	window   fyne.Window
	Board    *BoardWidget
	Settings *state.Settings
	gen      *state.Generator
	cfg      config.Config
	status   *widget.Label
	swatch   *colorSwatch
}

// NewController builds the window. A viewer gets a read-only board and
// only the save action.
func NewController(a fyne.App, cfg config.Config, gen *state.Generator, viewer bool) *Controller {
	background, ink := cfg.Colors()
	settings := state.NewSettings()
	settings.SetScale(cfg.Generator.Scale)
	settings.SetEdges(cfg.Generator.Edges)

	format, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		format = export.PNG
	}
	board := state.NewBoard(background, state.Pen{Width: float32(settings.Edges()), Color: ink})
	page := export.Page{Width: cfg.Canvas.Width, Height: cfg.Canvas.Height}

	c := &Controller{
		window:   a.NewWindow("Art"),
		Board:    NewBoardWidget(board, page, format),
		Settings: settings,
		gen:      gen,
		cfg:      cfg,
		status:   widget.NewLabel("Ready"),
	}
	c.Board.ReadOnly = viewer

	panel := NewControlPanel(c, viewer)
	content := container.NewBorder(nil, c.status, nil, panel, container.NewCenter(c.Board))
	c.window.SetContent(content)
	c.window.Resize(fyne.NewSize(float32(page.Width)+480, float32(page.Height)+80))
	return c
}

func (c *Controller) Window() fyne.Window { return c.window }

// Start shows the one-time welcome message.
func (c *Controller) Start() {
	dialog.ShowInformation("Art", welcomeMessage, c.window)
}

// Run shows the window and blocks until the app quits.
func (c *Controller) Run() {
	c.Start()
	c.window.ShowAndRun()
}

// HandleError reports err to the user. The app stays usable.
func (c *Controller) HandleError(err error) {
	if err == nil {
		return
	}
	log.Printf("[UI] %v", err)
	dialog.ShowError(err, c.window)
	c.SetStatus("Error: " + err.Error())
}

func (c *Controller) SetStatus(text string) {
	c.status.SetText(text)
}

func (c *Controller) AddShape(kind state.Kind) {
	c.Board.AddShape(c.gen.Shape(kind, c.Settings.Scale(), c.Settings.Edges()))
}

func (c *Controller) Clear() {
	c.Board.Clear()
	c.SetStatus("Cleared")
}

// ChangeColor replaces the background with a random colour.
func (c *Controller) ChangeColor() {
	bg := c.gen.Background()
	c.Board.SetBackground(bg)
	if c.swatch != nil {
		c.swatch.SetColor(bg)
	}
	c.SetStatus("Background " + config.Hex(bg))
}

func (c *Controller) SetScale(v int) {
	c.Settings.SetScale(v)
}

// SetEdges also sets the freehand pen width, which follows the edge count.
func (c *Controller) SetEdges(v int) {
	n := c.Settings.SetEdges(v)
	pen := c.Board.Board().Pen()
	pen.Width = float32(n)
	c.Board.Board().SetPen(pen)
}

// SaveImage writes the board to the picked destination and reports any
// failure. The board is left as it was either way.
func (c *Controller) SaveImage(w fyne.URIWriteCloser) {
	name := w.URI().Name()
	if err := c.Board.SaveTo(w); err != nil {
		c.HandleError(err)
		return
	}
	c.SetStatus("Saved " + name)
}
