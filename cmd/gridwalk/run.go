package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridwalk/internal/config"
	"github.com/vovakirdan/gridwalk/internal/raster"
	"github.com/vovakirdan/gridwalk/internal/storage"
	"github.com/vovakirdan/gridwalk/internal/walk"
)

var (
	flagRunInput      string
	flagRunOutput     string
	flagRunConfig     string
	flagRunWidth      int
	flagRunHeight     int
	flagRunSteps      int
	flagRunDirections int
	flagRunPolicy     string
	flagRunWalkers    int
	flagRunParallel   int
	flagRunStart      string
	flagRunNoSave     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a walk simulation",
	Long: `Run one or more random walkers over a raster and write the result.

The walkable area comes from --input (.asc grid with no-data cells, or
a .yaml glyph mask), or from --width/--height for an open grid. The
start cell comes from --start, from the mask's 'S' glyph, or is drawn
at random per walker.

Policies:
  revisit - walkers may re-enter cells; output accumulates visit counts
  avoid   - walkers never re-enter cells; output marks start/end cells

Examples:
  gridwalk run --width 100 --height 100 --steps 50000 --output walk.asc
  gridwalk run --input lake.asc --policy avoid --walkers 8 --output out.asc
  gridwalk run --input island.yaml --directions 8 --seed 42 --output out.asc`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagRunInput, "input", "", "Input mask (.asc or .yaml)")
	runCmd.Flags().StringVar(&flagRunOutput, "output", "walk.asc", "Output raster path (.asc)")
	runCmd.Flags().StringVar(&flagRunConfig, "config", "", "Path to custom run config YAML")
	runCmd.Flags().IntVar(&flagRunWidth, "width", 0, "Grid width when no input mask is given")
	runCmd.Flags().IntVar(&flagRunHeight, "height", 0, "Grid height when no input mask is given")
	runCmd.Flags().IntVar(&flagRunSteps, "steps", 0, "Step budget per walker")
	runCmd.Flags().IntVar(&flagRunDirections, "directions", 0, "Directions per step: 4 or 8")
	runCmd.Flags().StringVar(&flagRunPolicy, "policy", "", "Movement policy: revisit or avoid")
	runCmd.Flags().IntVar(&flagRunWalkers, "walkers", 0, "Number of independent walkers")
	runCmd.Flags().IntVar(&flagRunParallel, "parallel", 0, "Max concurrent walkers (<=1 sequential)")
	runCmd.Flags().StringVar(&flagRunStart, "start", "", "Start cell as row,col (default: mask marker or random)")
	runCmd.Flags().BoolVar(&flagRunNoSave, "no-save", false, "Skip recording the run in the history database")
}

func runRun(cmd *cobra.Command, _ []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gridwalk",
	})

	cfg, err := config.Load(flagRunConfig)
	if err != nil {
		return err
	}
	applyWalkOverrides(cmd, &cfg, flagRunSteps, flagRunDirections, flagRunPolicy, flagRunWalkers, flagRunParallel)
	if err := cfg.Validate(); err != nil {
		return err
	}

	mask, err := loadMaskOrBlank(flagRunInput, flagRunWidth, flagRunHeight)
	if err != nil {
		return err
	}

	params := cfg.Params()
	params.Seed = resolveSeed()
	params.Start = mask.Start
	if flagRunStart != "" {
		start, err := parseStart(flagRunStart)
		if err != nil {
			return err
		}
		params.Start = start
	}

	runner, err := walk.NewRunner(mask.Grid, params)
	if err != nil {
		return err
	}

	logger.Info("starting walk",
		"grid", fmt.Sprintf("%dx%d", mask.Grid.W, mask.Grid.H),
		"walkers", params.Walkers,
		"steps", params.Steps,
		"directions", int(params.Connectivity),
		"policy", params.Policy.String(),
		"seed", params.Seed,
	)

	result, err := runner.Run(context.Background())
	if err != nil {
		return err
	}

	for _, rep := range result.Reports {
		logger.Debug("walker finished",
			"walker", rep.Walker,
			"reason", rep.Reason.String(),
			"steps", rep.Steps,
			"start", fmt.Sprintf("%d,%d", rep.Start.Row, rep.Start.Col),
			"end", fmt.Sprintf("%d,%d", rep.End.Row, rep.End.Col),
		)
	}
	logger.Info("walk complete",
		"total_steps", result.TotalSteps(),
		"trapped", result.TrappedCount(),
	)

	meta := mask.Meta
	if cfg.Output.NoData != 0 {
		meta.NoData = cfg.Output.NoData
	}
	if err := raster.WriteASCFile(flagRunOutput, result.Output, meta); err != nil {
		return err
	}
	logger.Info("output written", "path", flagRunOutput)

	if !flagRunNoSave {
		saveRun(logger, params, mask, result)
	}
	return nil
}

// saveRun records the run in the history database. Failures are
// warnings: the simulation result is already on disk.
func saveRun(logger *log.Logger, params walk.Params, mask *raster.Mask, result *walk.Result) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history database", "error", err)
		return
	}
	defer store.Close()

	rec := storage.RunRecord{
		Steps:      params.Steps,
		Directions: int(params.Connectivity),
		Policy:     params.Policy.String(),
		Walkers:    params.Walkers,
		Seed:       int64(params.Seed),
		GridW:      mask.Grid.W,
		GridH:      mask.Grid.H,
		TotalSteps: result.TotalSteps(),
		Trapped:    result.TrappedCount(),
		OutputPath: flagRunOutput,
	}
	id, err := store.SaveRun(rec, result.Reports)
	if err != nil {
		logger.Warn("could not record run", "error", err)
		return
	}
	logger.Debug("run recorded", "id", id)
}
