package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/glyphball/internal/core"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded default = %+v\nwant %+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded default invalid: %v", err)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Runtime.TickRate != 60 || cfg.Server.IdleTimeout != 30*time.Minute {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".glyphball")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("runtime:\n  tick_rate: 30\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Runtime.TickRate != 30 {
		t.Errorf("tick_rate = %d, want 30", cfg.Runtime.TickRate)
	}
}

func TestLoadCustomPartial(t *testing.T) {
	path := writeConfig(t, `
runtime:
  tick_rate: 120
render:
  palette: [red, blue]
server:
  idle_timeout: 5m
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Runtime.TickRate != 120 {
		t.Errorf("tick_rate = %d, want 120", cfg.Runtime.TickRate)
	}
	if cfg.Server.IdleTimeout != 5*time.Minute {
		t.Errorf("idle_timeout = %v, want 5m", cfg.Server.IdleTimeout)
	}
	if cfg.Server.Address != ":23234" {
		t.Errorf("address = %q, default should survive", cfg.Server.Address)
	}

	colors, err := cfg.Render.PaletteColors()
	if err != nil {
		t.Fatalf("PaletteColors() failed: %v", err)
	}
	if !reflect.DeepEqual(colors, []core.Color{core.ColorRed, core.ColorBlue}) {
		t.Errorf("palette = %v", colors)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "runtime: [", "cannot parse"},
		{"tick rate", "runtime:\n  tick_rate: 0\n", "tick_rate"},
		{"palette", "render:\n  palette: [mauve]\n", "palette color"},
		{"ball color", "render:\n  ball_color: mauve\n", "unknown color"},
		{"glyph", "render:\n  ball: \"oo\"\n", "single character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want %q", err, tt.want)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing explicit config should fail")
	}
}

func TestGlyphAndColor(t *testing.T) {
	if got := Glyph("◆x", '●'); got != '◆' {
		t.Errorf("Glyph = %q", got)
	}
	if got := Glyph("", '●'); got != '●' {
		t.Errorf("Glyph(empty) = %q", got)
	}
	if got := Color("cyan", core.ColorWhite); got != core.ColorCyan {
		t.Errorf("Color(cyan) = %v", got)
	}
	if got := Color("", core.ColorWhite); got != core.ColorWhite {
		t.Errorf("Color(empty) = %v", got)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/.glyphball/x.db")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, ".glyphball/x.db") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got, _ := ExpandHome("/tmp/x"); got != "/tmp/x" {
		t.Errorf("absolute path changed: %q", got)
	}
}
