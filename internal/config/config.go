// Package config provides YAML-based configuration loading for glyphball.
// Physics constants are fixed and deliberately absent from the file format.
package config

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/glyphball/internal/core"
)

// Config is the top-level configuration file.
type Config struct {
	Runtime RuntimeConfig `yaml:"runtime"`
	Render  RenderConfig  `yaml:"render"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// RuntimeConfig controls the frame loop.
type RuntimeConfig struct {
	TickRate int   `yaml:"tick_rate"` // Frames per second
	Seed     int64 `yaml:"seed"`      // 0 = time based
}

// RenderConfig controls the look of the widget.
type RenderConfig struct {
	Palette     []string `yaml:"palette"`      // Color names, cycled over cells
	Ball        string   `yaml:"ball"`         // Ball glyph
	FlatBall    string   `yaml:"flat_ball"`    // Ball glyph while flattened
	BallColor   string   `yaml:"ball_color"`   // Color name
	PaddleColor string   `yaml:"paddle_color"` // Color name
	ShowHUD     bool     `yaml:"show_hud"`     // Counters in the top border
	ShowHelp    bool     `yaml:"show_help"`    // Key help below the playfield
}

// ServerConfig controls `glyphball serve`.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"` // Empty = ~/.glyphball/host_key
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// StorageConfig controls the session summary database.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LogConfig controls the root logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Empty = stderr
}

// Validate checks values that would otherwise fail at runtime.
func (c Config) Validate() error {
	if c.Runtime.TickRate < 1 || c.Runtime.TickRate > 240 {
		return fmt.Errorf("config: tick_rate %d out of range 1..240", c.Runtime.TickRate)
	}
	if _, err := c.Render.PaletteColors(); err != nil {
		return err
	}
	for _, name := range []string{c.Render.BallColor, c.Render.PaddleColor} {
		if name == "" {
			continue
		}
		if _, ok := core.ParseColor(name); !ok {
			return fmt.Errorf("config: unknown color %q", name)
		}
	}
	for _, g := range []string{c.Render.Ball, c.Render.FlatBall} {
		if g != "" && utf8.RuneCountInString(g) != 1 {
			return fmt.Errorf("config: glyph %q must be a single character", g)
		}
	}
	return nil
}

// PaletteColors resolves the palette names. An empty palette yields nil.
func (r RenderConfig) PaletteColors() ([]core.Color, error) {
	if len(r.Palette) == 0 {
		return nil, nil
	}
	colors := make([]core.Color, 0, len(r.Palette))
	for _, name := range r.Palette {
		c, ok := core.ParseColor(name)
		if !ok {
			return nil, fmt.Errorf("config: unknown palette color %q", name)
		}
		colors = append(colors, c)
	}
	return colors, nil
}

// Color resolves a color name, falling back to def when empty or unknown.
func Color(name string, def core.Color) core.Color {
	if c, ok := core.ParseColor(name); ok {
		return c
	}
	return def
}

// Glyph returns the first rune of s, or def when s is empty.
func Glyph(s string, def rune) rune {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return def
	}
	return r
}
