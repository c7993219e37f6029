package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/glyphball/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available widgets",
	Long:  `Shows a list of all widgets registered in glyphball.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	widgets := registry.List()

	if len(widgets) == 0 {
		fmt.Println("No widgets available.")
		return
	}

	fmt.Println("Available widgets:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, w := range widgets {
		maxIDLen = max(maxIDLen, len(w.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, w := range widgets {
		fmt.Printf("  %-*s  %s\n", maxIDLen, w.ID, w.Title)
	}

	fmt.Println()
	fmt.Println("Run 'glyphball play <id>' to mount a widget.")
}
