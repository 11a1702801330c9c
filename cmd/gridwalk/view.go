package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridwalk/internal/platform/tui"
	"github.com/vovakirdan/gridwalk/internal/raster"
)

var viewCmd = &cobra.Command{
	Use:   "view <raster.asc>",
	Short: "Render a raster as a terminal heatmap",
	Long: `Render a result raster (or any .asc/.yaml mask) as a colored
terminal heatmap. Visit counts map onto a cold-to-hot ramp scaled to
the raster maximum.

Example:
  gridwalk view walk.asc`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func runView(_ *cobra.Command, args []string) error {
	mask, err := raster.LoadMask(args[0])
	if err != nil {
		return err
	}

	// Each cell renders two characters wide.
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && mask.Grid.W*2 > width {
			fmt.Fprintf(os.Stderr, "warning: raster is %d cells wide, terminal fits %d; lines will wrap\n",
				mask.Grid.W, width/2)
		}
	}

	fmt.Print(tui.Heatmap(mask.Grid, nil))
	if legend := tui.Legend(mask.Grid.Max()); legend != "" {
		fmt.Println(legend)
	}
	return nil
}
