// Package config loads the optional TOML settings file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	colorful "github.com/lucasb-eyer/go-colorful"

	"artboard/internal/export"
	"artboard/internal/state"
)

type Canvas struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
	Ink        string `toml:"ink"`
}

type Generator struct {
	Scale int   `toml:"scale"`
	Edges int   `toml:"edges"`
	Seed  int64 `toml:"seed"` // 0 seeds from the clock
}

type Export struct {
	Format    string `toml:"format"`
	Directory string `toml:"directory"`
}

type Share struct {
	Enabled   bool `toml:"enabled"`
	Port      int  `toml:"port"`
	Advertise bool `toml:"advertise"`
}

type Config struct {
	Canvas    Canvas    `toml:"canvas"`
	Generator Generator `toml:"generator"`
	Export    Export    `toml:"export"`
	Share     Share     `toml:"share"`
}

func Default() Config {
	return Config{
		Canvas:    Canvas{Width: 700, Height: 700, Background: "#ffffff", Ink: "#000000"},
		Generator: Generator{Scale: state.MinScale, Edges: state.MinEdges},
		Export:    Export{Format: string(export.PNG)},
		Share:     Share{Port: 8888, Advertise: true},
	}
}

// DefaultPath is artboard/config.toml under the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "artboard", "config.toml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that cannot be clamped and clamps the rest.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height)
	}
	if _, err := ParseColor(c.Canvas.Background); err != nil {
		return fmt.Errorf("canvas.background: %w", err)
	}
	if _, err := ParseColor(c.Canvas.Ink); err != nil {
		return fmt.Errorf("canvas.ink: %w", err)
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		return fmt.Errorf("export.format: %w", err)
	}
	if c.Share.Port <= 0 || c.Share.Port > 65535 {
		return fmt.Errorf("share.port %d out of range", c.Share.Port)
	}
	s := state.NewSettings()
	c.Generator.Scale = s.SetScale(c.Generator.Scale)
	c.Generator.Edges = s.SetEdges(c.Generator.Edges)
	return nil
}

// ParseColor accepts "#rrggbb" or "#rgb".
func ParseColor(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Hex formats c as "#rrggbb".
func Hex(c color.NRGBA) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}

// Colors returns the effective background and ink colours. Validate must
// have succeeded.
func (c Config) Colors() (background, ink color.NRGBA) {
	background, _ = ParseColor(c.Canvas.Background)
	ink, _ = ParseColor(c.Canvas.Ink)
	return background, ink
}
