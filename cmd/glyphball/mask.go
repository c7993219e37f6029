package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/glyphball/internal/entrance"
	"github.com/vovakirdan/glyphball/internal/glyph"
)

var flagOrder bool

var maskCmd = &cobra.Command{
	Use:   "mask",
	Short: "Print the glyph mask",
	Long: `Print the cell grid with glyph cells marked. With --order each glyph cell
shows its position in the fall order, followed by its entrance delay.`,
	Args: cobra.NoArgs,
	Run:  runMask,
}

func init() {
	maskCmd.Flags().BoolVar(&flagOrder, "order", false, "Show fall order indices")
}

func runMask(_ *cobra.Command, _ []string) {
	index := make(map[glyph.Cell]int, glyph.Count())
	for i, c := range glyph.FallOrder() {
		index[c] = i
	}

	for row := range glyph.Rows {
		for col := range glyph.Cols {
			i, ok := index[glyph.Cell{Row: row, Col: col}]
			switch {
			case !ok && flagOrder:
				fmt.Print("  .")
			case !ok:
				fmt.Print(".")
			case flagOrder:
				fmt.Printf("%3d", i)
			default:
				fmt.Print("#")
			}
		}
		fmt.Println()
	}

	fmt.Println()
	fmt.Printf("%d glyph cells, %dx%d grid\n", glyph.Count(), glyph.Cols, glyph.Rows)
	if flagOrder {
		last := glyph.Count() - 1
		fmt.Printf("Delays: cell 0 at %v, cell %d at %v\n", entrance.Delay(0), last, entrance.Delay(last))
		fmt.Printf("Entrance settles after %v\n", entrance.New().Total())
	}
}
