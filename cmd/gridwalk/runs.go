package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridwalk/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [run-id]",
	Short: "Show recorded run history",
	Long: `Show the most recent recorded runs, newest first. With a run ID,
show the per-walker diagnostics of that run instead.

Examples:
  gridwalk runs
  gridwalk runs --limit 25
  gridwalk runs 12
  gridwalk runs --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete all recorded runs")
}

func runRuns(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagRunsClear {
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Println("Run history cleared.")
		return nil
	}

	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad run ID %q: %w", args[0], err)
		}
		return printWalkers(store, id)
	}
	return printRuns(store)
}

func printRuns(store *storage.Store) error {
	records, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No runs recorded yet. Run one:")
		fmt.Println("  gridwalk run --width 50 --height 50 --steps 10000")
		return nil
	}

	fmt.Printf("%-5s %-17s %-9s %-8s %-4s %-8s %-11s %-8s %s\n",
		"ID", "WHEN", "GRID", "POLICY", "DIR", "WALKERS", "STEPS", "TRAPPED", "OUTPUT")
	for _, rec := range records {
		when := "-"
		if !rec.CreatedAt.IsZero() {
			when = rec.CreatedAt.Format("2006-01-02 15:04")
		}
		fmt.Printf("%-5d %-17s %-9s %-8s %-4d %-8d %-11d %-8d %s\n",
			rec.ID,
			when,
			fmt.Sprintf("%dx%d", rec.GridW, rec.GridH),
			rec.Policy,
			rec.Directions,
			rec.Walkers,
			rec.TotalSteps,
			rec.Trapped,
			rec.OutputPath,
		)
	}
	return nil
}

func printWalkers(store *storage.Store, runID int64) error {
	records, err := store.RunWalkers(runID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Printf("No walkers recorded for run %d.\n", runID)
		return nil
	}

	fmt.Printf("%-7s %-17s %-11s %-10s %s\n", "WALKER", "REASON", "STEPS", "START", "END")
	for _, rec := range records {
		fmt.Printf("%-7d %-17s %-11d %-10s %s\n",
			rec.Walker,
			rec.Reason,
			rec.Steps,
			fmt.Sprintf("%d,%d", rec.StartRow, rec.StartCol),
			fmt.Sprintf("%d,%d", rec.EndRow, rec.EndCol),
		)
	}
	return nil
}
