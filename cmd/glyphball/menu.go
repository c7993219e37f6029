package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/glyphball/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the widget picker",
	Long: `Pick a widget or the session stats from an interactive menu.
Esc inside a widget returns to the menu.`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	opts := tui.Options{
		Store:    store,
		Logger:   logger,
		User:     localUser(),
		ShowHelp: appConfig.Render.ShowHelp,
	}

	runErr := tui.RunSession(runtimeConfig(terminalSize()), opts)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fail("running menu: %v", runErr)
	}
}
