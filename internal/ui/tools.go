package ui

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"artboard/internal/state"
)

// --- Swatch showing the current background ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func()
	rect     *canvas.Rectangle
}

func newColorSwatch(c color.Color, tapped func()) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	s.rect = canvas.NewRectangle(s.Color)
	s.rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(s.rect, border))
}

func (s *colorSwatch) SetColor(c color.Color) {
	s.Color = c
	if s.rect != nil {
		s.rect.FillColor = c
		s.rect.Refresh()
	}
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped()
	}
}

// --- Sliders ---
func newScaleSlider(c *Controller) fyne.CanvasObject {
	s := widget.NewSlider(state.MinScale, state.MaxScale)
	s.Orientation = widget.Vertical
	s.Step = 1
	s.SetValue(float64(c.Settings.Scale()))
	s.OnChanged = func(v float64) {
		c.SetScale(int(v))
	}
	labels := container.NewVBox(
		widget.NewLabel("Large\nshape"),
		layout.NewSpacer(),
		widget.NewLabel("Medium\nshape"),
		layout.NewSpacer(),
		widget.NewLabel("Small\nshape"),
	)
	return container.NewBorder(nil, nil, nil, labels, s)
}

// newEdgeSlider applies the value only once the drag settles.
func newEdgeSlider(c *Controller) fyne.CanvasObject {
	s := widget.NewSlider(state.MinEdges, state.MaxEdges)
	s.Orientation = widget.Vertical
	s.Step = 1
	s.SetValue(float64(c.Settings.Edges()))
	value := widget.NewLabel("")
	show := func(v float64) { value.SetText("Edges: " + strconv.Itoa(int(v))) }
	show(s.Value)
	s.OnChanged = show
	s.OnChangeEnded = func(v float64) {
		c.SetEdges(int(v))
	}
	return container.NewBorder(nil, value, nil, nil, s)
}

// NewControlPanel lays out the shape buttons and sliders.
func NewControlPanel(c *Controller, viewer bool) fyne.CanvasObject {
	save := widget.NewButton("Save image", c.ShowSaveDialog)
	if viewer {
		return container.NewVBox(widget.NewLabel("Viewing a shared board"), save)
	}

	c.swatch = newColorSwatch(c.Board.Board().Background(), c.ChangeColor)
	buttons := container.NewGridWithColumns(1,
		widget.NewButton("Add triangle", func() { c.AddShape(state.KindTriangle) }),
		widget.NewButton("Add rectangle", func() { c.AddShape(state.KindRectangle) }),
		widget.NewButton("Add ellipse", func() { c.AddShape(state.KindEllipse) }),
		widget.NewButton("Clear image", c.Clear),
		widget.NewButton("Add polygon", func() { c.AddShape(state.KindPolygon) }),
		save,
		widget.NewButton("Change color", c.ChangeColor),
	)
	sliders := container.New(layout.NewGridWrapLayout(fyne.NewSize(110, 450)),
		newScaleSlider(c),
		newEdgeSlider(c),
	)
	return container.NewHBox(
		container.NewVBox(buttons, widget.NewSeparator(), widget.NewLabel("Background:"), c.swatch),
		widget.NewSeparator(),
		sliders,
	)
}
