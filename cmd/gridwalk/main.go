// gridwalk simulates random walkers over a 2D raster and writes a
// derived raster summarizing where they went.
//
// Usage:
//
//	gridwalk run --input mask.asc --output walk.asc   - Run a simulation
//	gridwalk view walk.asc                            - Render a result as a terminal heatmap
//	gridwalk watch --input mask.yaml                  - Animate a walker live
//	gridwalk runs                                     - Show recorded run history
//	gridwalk serve                                    - Start SSH server streaming animations
//
// Global flags:
//
//	--seed <value>  - RNG seed for reproducible walks (0 = time-based)
//	--db <path>     - Run history database (default: ~/.gridwalk/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridwalk",
	Short: "Random walks over 2D rasters",
	Long: `gridwalk performs random walks inside a 2D raster and returns the
resulting walk as a raster.

Walkers move between neighboring cells (4 or 8 directions), never leave
the walkable area, and either accumulate visit counts (revisit policy)
or leave start/end markers while refusing to re-enter cells (avoid
policy).

Examples:
  gridwalk run --width 200 --height 200 --steps 100000 --output walk.asc
  gridwalk run --input lake.asc --policy avoid --walkers 8 --seed 42 --output out.asc
  gridwalk view out.asc
  gridwalk watch --input island.yaml --directions 8
  gridwalk runs
  gridwalk serve --ssh :23235 --input island.yaml`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gridwalk/runs.db", "Path to run history database")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}
