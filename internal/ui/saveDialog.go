package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

var saveExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".pdf"}

// ShowSaveDialog asks for a destination and writes the board there.
func (c *Controller) ShowSaveDialog() {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			c.HandleError(err)
			return
		}
		if w == nil {
			return // cancelled
		}
		c.SaveImage(w)
	}, c.window)

	d.SetFileName("art." + string(c.Board.format))
	d.SetFilter(storage.NewExtensionFileFilter(saveExtensions))
	if dir := c.cfg.Export.Directory; dir != "" {
		if l, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			d.SetLocation(l)
		}
	}
	d.Show()
}
