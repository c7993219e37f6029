package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/glyphball.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches defaults/glyphball.yaml.
func Default() Config {
	return Config{
		Runtime: RuntimeConfig{
			TickRate: 60,
		},
		Render: RenderConfig{
			Palette: []string{
				"bright_red", "orange", "bright_yellow", "bright_green",
				"bright_cyan", "bright_blue", "bright_magenta",
			},
			Ball:        "●",
			FlatBall:    "▬",
			BallColor:   "bright_white",
			PaddleColor: "bright_white",
			ShowHUD:     true,
			ShowHelp:    true,
		},
		Server: ServerConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    "~/.glyphball/sessions.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
