package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridwalk/internal/config"
	"github.com/vovakirdan/gridwalk/internal/platform/tui"
)

var (
	flagServeAddress     string
	flagServeHostKey     string
	flagServeInput       string
	flagServeConfig      string
	flagServeWidth       int
	flagServeHeight      int
	flagServeSteps       int
	flagServeDirections  int
	flagServePolicy      string
	flagServeIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve walk animations over SSH",
	Long: `Start an SSH server. Every connecting client gets a live walker
animation over the configured mask, each session with its own seed.

Try it:
  gridwalk serve --input island.yaml
  ssh -p 23235 localhost`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddress, "ssh", ":23235", "SSH listen address")
	serveCmd.Flags().StringVar(&flagServeHostKey, "host-key", "", "Host key path (default: ~/.gridwalk/host_key)")
	serveCmd.Flags().StringVar(&flagServeInput, "input", "", "Input mask (.asc or .yaml)")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom run config YAML")
	serveCmd.Flags().IntVar(&flagServeWidth, "width", 30, "Grid width when no input mask is given")
	serveCmd.Flags().IntVar(&flagServeHeight, "height", 20, "Grid height when no input mask is given")
	serveCmd.Flags().IntVar(&flagServeSteps, "steps", 0, "Step budget per session")
	serveCmd.Flags().IntVar(&flagServeDirections, "directions", 0, "Directions per step: 4 or 8")
	serveCmd.Flags().StringVar(&flagServePolicy, "policy", "", "Movement policy: revisit or avoid")
	serveCmd.Flags().DurationVar(&flagServeIdleTimeout, "idle-timeout", 30*time.Minute, "Close idle sessions after this long")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagServeConfig)
	if err != nil {
		return err
	}
	applyWalkOverrides(cmd, &cfg, flagServeSteps, flagServeDirections, flagServePolicy, 0, 0)
	if err := cfg.Validate(); err != nil {
		return err
	}

	mask, err := loadMaskOrBlank(flagServeInput, flagServeWidth, flagServeHeight)
	if err != nil {
		return err
	}

	params := cfg.Params()
	params.Start = mask.Start

	srvCfg := tui.DefaultSSHServerConfig()
	srvCfg.Address = flagServeAddress
	srvCfg.HostKeyPath = flagServeHostKey
	srvCfg.Mask = mask.Grid
	srvCfg.Params = params
	srvCfg.Title = "gridwalk"
	srvCfg.IdleTimeout = flagServeIdleTimeout

	server, err := tui.NewSSHServer(srvCfg)
	if err != nil {
		return err
	}
	return server.ListenAndServe()
}
