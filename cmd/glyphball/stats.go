package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/glyphball/internal/platform/tui"
	"github.com/vovakirdan/glyphball/internal/registry"
	"github.com/vovakirdan/glyphball/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagClear bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [widget]",
	Short: "Show recorded session summaries",
	Long: `Display recorded sessions, best first by cleared cells.

Without --plain the interactive stats screen opens; tab switches widgets.
With --plain the top sessions and totals of one widget are printed.

Examples:
  glyphball stats
  glyphball stats --plain
  glyphball stats glyphball_attract --plain --limit 5
  glyphball stats glyphball --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain text table instead of the interactive screen")
	statsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of sessions to print with --plain")
	statsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded sessions of the widget")
}

func runStats(_ *cobra.Command, args []string) {
	widgetID := defaultWidget
	if len(args) > 0 {
		widgetID = args[0]
	}
	if !registry.Exists(widgetID) {
		fail("unknown widget %q", widgetID)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	switch {
	case flagClear:
		if store == nil {
			fail("session storage is disabled or unavailable")
		}
		if err := store.ClearSessions(widgetID); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared sessions of %s.\n", widgetID)

	case flagPlain:
		if store == nil {
			fail("session storage is disabled or unavailable")
		}
		printStats(store, widgetID)

	default:
		w, h := terminalSize()
		if err := tui.RunStats(store, w, h); err != nil {
			fail("running stats: %v", err)
		}
	}
}

// printStats prints the top sessions and totals of a widget.
func printStats(store *storage.Store, widgetID string) {
	sessions, err := store.TopSessions(widgetID, flagLimit)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Sessions - %s\n\n", widgetTitle(widgetID))
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'glyphball play %s' to record one.\n", widgetID)
		return
	}

	rows := make([][]string, 0, len(sessions)+2)
	rows = append(rows, tui.StatsColumns)
	dashes := make([]string, len(tui.StatsColumns))
	for i, c := range tui.StatsColumns {
		dashes[i] = strings.Repeat("-", len(c))
	}
	rows = append(rows, dashes)
	for i, s := range sessions {
		rows = append(rows, tui.StatsRow(i+1, s))
	}
	printTable(rows)

	totals, n, err := store.Totals(widgetID)
	if err != nil {
		fail("%v", err)
	}
	fmt.Println()
	fmt.Printf("Totals over %d sessions: %d cleared, %d regenerations, %d paddle hits, %d frames\n",
		n, totals.CellsCleared, totals.Regenerations, totals.PaddleHits, totals.Frames)
}

// printTable prints rows with left-aligned columns.
func printTable(rows [][]string) {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], len(cell))
		}
	}
	for _, row := range rows {
		var b strings.Builder
		b.WriteString(" ")
		for i, cell := range row {
			fmt.Fprintf(&b, " %-*s", widths[i], cell)
		}
		fmt.Println(strings.TrimRight(b.String(), " "))
	}
}
