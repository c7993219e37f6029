package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/glyphball/internal/platform/tui"
	"github.com/vovakirdan/glyphball/internal/registry"
)

const defaultWidget = "glyphball"

var playCmd = &cobra.Command{
	Use:   "play [widget]",
	Short: "Play a widget",
	Long: `Mount a widget in the terminal.

The glyph falls into place cell by cell and then floats. Click or press
space once it floats to start the game; the pointer moves the paddle.

Controls:
  Mouse        - Move paddle
  Click/Space  - Start
  R            - Restart
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

Examples:
  glyphball play
  glyphball play glyphball_attract
  glyphball play --seed 42 --fps 30`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	widgetID := defaultWidget
	if len(args) > 0 {
		widgetID = args[0]
	}

	if !registry.Exists(widgetID) {
		fmt.Fprintf(os.Stderr, "Error: unknown widget %q\n", widgetID)
		fmt.Fprintln(os.Stderr, "Run 'glyphball list' to see available widgets.")
		os.Exit(1)
	}

	w, err := registry.Create(widgetID)
	if err != nil {
		fail("creating widget: %v", err)
	}

	store := openStore()
	opts := tui.Options{
		Store:    store,
		Logger:   logger,
		User:     localUser(),
		ShowHelp: appConfig.Render.ShowHelp,
	}

	runErr := tui.Run(w, runtimeConfig(terminalSize()), opts)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fail("running widget: %v", runErr)
	}
}

// localUser names local sessions in the database.
func localUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
