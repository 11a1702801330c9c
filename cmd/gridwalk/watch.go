package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridwalk/internal/config"
	"github.com/vovakirdan/gridwalk/internal/platform/tui"
)

var (
	flagWatchInput      string
	flagWatchConfig     string
	flagWatchWidth      int
	flagWatchHeight     int
	flagWatchSteps      int
	flagWatchDirections int
	flagWatchPolicy     string
	flagWatchStart      string
	flagWatchFPS        int
	flagWatchBatch      int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Animate a walker live in the terminal",
	Long: `Watch a single walker move step by step, with a live heatmap and
progress bar. Press p to pause, r to restart with a new seed, q to quit.

Examples:
  gridwalk watch --width 30 --height 20 --steps 5000
  gridwalk watch --input island.yaml --policy avoid --batch 5`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagWatchInput, "input", "", "Input mask (.asc or .yaml)")
	watchCmd.Flags().StringVar(&flagWatchConfig, "config", "", "Path to custom run config YAML")
	watchCmd.Flags().IntVar(&flagWatchWidth, "width", 0, "Grid width when no input mask is given")
	watchCmd.Flags().IntVar(&flagWatchHeight, "height", 0, "Grid height when no input mask is given")
	watchCmd.Flags().IntVar(&flagWatchSteps, "steps", 0, "Step budget")
	watchCmd.Flags().IntVar(&flagWatchDirections, "directions", 0, "Directions per step: 4 or 8")
	watchCmd.Flags().StringVar(&flagWatchPolicy, "policy", "", "Movement policy: revisit or avoid")
	watchCmd.Flags().StringVar(&flagWatchStart, "start", "", "Start cell as row,col")
	watchCmd.Flags().IntVar(&flagWatchFPS, "fps", 30, "Animation ticks per second")
	watchCmd.Flags().IntVar(&flagWatchBatch, "batch", 1, "Walk steps per tick")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagWatchConfig)
	if err != nil {
		return err
	}
	applyWalkOverrides(cmd, &cfg, flagWatchSteps, flagWatchDirections, flagWatchPolicy, 0, 0)
	if err := cfg.Validate(); err != nil {
		return err
	}

	mask, err := loadMaskOrBlank(flagWatchInput, flagWatchWidth, flagWatchHeight)
	if err != nil {
		return err
	}

	params := cfg.Params()
	params.Seed = resolveSeed()
	params.Start = mask.Start
	if flagWatchStart != "" {
		start, err := parseStart(flagWatchStart)
		if err != nil {
			return err
		}
		params.Start = start
	}

	model, err := tui.NewWatchModel(tui.WatchConfig{
		Mask:   mask.Grid,
		Params: params,
		Title:  "gridwalk watch",
		FPS:    flagWatchFPS,
		Batch:  flagWatchBatch,
	})
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("cannot run animation: %w", err)
	}
	if m, ok := final.(tui.WatchModel); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
