package export

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"artboard/internal/render"
	"artboard/internal/state"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// Error reports a failed export. It wraps the underlying cause.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("export failed: %v", e.Err)
	}
	return fmt.Sprintf("export failed: %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	PDF  Format = "pdf"
)

// ParseFormat maps a format name or extension without the dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	case "pdf":
		return PDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFor picks the format from a file name's extension, or def when
// the name has none.
func FormatFor(name string, def Format) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return def, nil
	}
	return ParseFormat(ext)
}

// Page describes the exported canvas in board units.
type Page struct {
	Width  int
	Height int
}

// Write renders snap in the given format to w.
func Write(w io.Writer, snap state.Snapshot, page Page, f Format) error {
	if f == PDF {
		return WritePDF(w, snap, page)
	}
	img := render.Image(snap, page.Width, page.Height, 1)
	return encode(w, img, f)
}

func encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}
