// glyphball renders the glyph widget in the terminal: a letter built from
// cells falls into place, floats, and turns into a breakout game on start.
//
// Usage:
//
//	glyphball                  - Play the pointer-driven widget
//	glyphball play [widget]    - Play a widget (glyphball, glyphball_attract)
//	glyphball menu             - Pick widgets and stats interactively
//	glyphball serve            - Start SSH server for remote viewing
//	glyphball simulate         - Run the simulation headless
//	glyphball stats            - Show recorded session summaries
//	glyphball mask             - Print the glyph mask and fall order
//	glyphball list             - List available widgets
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.glyphball/config.yaml, ./configs/glyphball.yaml)
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default: ~/.glyphball/sessions.db)
//	--log-level <level> - debug, info, warn, error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/glyphball/internal/config"
	"github.com/vovakirdan/glyphball/internal/core"
	"github.com/vovakirdan/glyphball/internal/storage"
	"github.com/vovakirdan/glyphball/internal/widgets/glyphball"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagNoDB     bool
	flagLogLevel string
	flagLogFile  string

	// Resolved in PersistentPreRunE
	appConfig config.Config
	logger    *log.Logger
	logCloser io.Closer
)

func main() {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "glyphball",
	Short: "Glyphball - a falling glyph that turns into breakout",
	Long: `Glyphball draws a letter made of cells that falls into place and floats.
Start it and the letter becomes the brick field of a small breakout game
that regenerates whenever it is cleared.

Available commands:
  play      - Play a widget directly (default)
  menu      - Interactive widget picker
  serve     - Start SSH server
  simulate  - Run the simulation without a terminal UI
  stats     - View recorded session summaries
  mask      - Print the glyph mask
  list      - Show all available widgets

Examples:
  glyphball
  glyphball play glyphball_attract
  glyphball serve --ssh :2222
  glyphball simulate --frames 36000 --seed 7`,
	SilenceUsage: true,
	Run:          runPlay,
}

func init() {
	rootCmd.PersistentPreRunE = setup

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "", "Path to session database (default from config)")
	pf.BoolVar(&flagNoDB, "no-db", false, "Do not record session summaries")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(maskCmd)
	rootCmd.AddCommand(listCmd)
}

// setup loads the config, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Runtime.TickRate = flagFPS
	}
	if flags.Changed("seed") {
		cfg.Runtime.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.Storage.Path = flagDBPath
	}
	if flagNoDB {
		cfg.Storage.Enabled = false
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = flagLogFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	appConfig = cfg

	logger, logCloser, err = newLogger(cfg.Log, usesTerminal(cmd))
	if err != nil {
		return err
	}

	glyphball.Configure(widgetOptions(cfg.Render))
	return nil
}

// usesTerminal reports whether the command takes over the terminal, in which
// case logs must not go to stderr.
func usesTerminal(cmd *cobra.Command) bool {
	return cmd == rootCmd || cmd == playCmd || cmd == menuCmd ||
		(cmd == statsCmd && !flagPlain)
}

// newLogger builds the root logger. Without a log file, TUI commands log
// nowhere.
func newLogger(cfg config.LogConfig, tui bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}

	var w io.Writer = os.Stderr
	var closer io.Closer
	switch {
	case cfg.File != "":
		path, err := config.ExpandHome(cfg.File)
		if err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	case tui:
		w = io.Discard
	}

	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	log.SetDefault(l)
	return l, closer, nil
}

// widgetOptions converts render settings to widget options.
func widgetOptions(r config.RenderConfig) glyphball.Options {
	def := glyphball.DefaultOptions()
	palette, _ := r.PaletteColors() // Validated in setup
	return glyphball.Options{
		Palette:     palette,
		BallRune:    config.Glyph(r.Ball, def.BallRune),
		FlatRune:    config.Glyph(r.FlatBall, def.FlatRune),
		BallColor:   config.Color(r.BallColor, def.BallColor),
		PaddleColor: config.Color(r.PaddleColor, def.PaddleColor),
		ShowHUD:     r.ShowHUD,
	}
}

// runtimeConfig returns the runtime config for a screen of the given size.
func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: appConfig.Runtime.TickRate,
		Seed:     appConfig.Runtime.Seed,
	}
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	if logCloser != nil {
		logCloser.Close()
	}
	os.Exit(1)
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// openStore opens the session database, or returns nil when storage is
// disabled or unavailable.
func openStore() *storage.Store {
	if !appConfig.Storage.Enabled {
		return nil
	}
	store, err := storage.Open(appConfig.Storage.Path)
	if err != nil {
		logger.Warn("could not open session database", "error", err)
		return nil
	}
	return store
}
