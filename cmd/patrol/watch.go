package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/guard-patrol/internal/platform/tui"
	"github.com/vovakirdan/guard-patrol/internal/registry"
	"github.com/vovakirdan/guard-patrol/internal/scenario"
)

var (
	// Watch command flags
	flagFollow  bool
	flagSpeed   int
	flagNoLoops bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <scenario>",
	Short: "Animate a patrol in the terminal",
	Long: `Animates the guard's patrol over a scenario, cell by cell.

The loop search runs in the background; once the guard leaves the grid
every loop placement is marked with 'O'. With --follow the scenario file
is reloaded whenever it changes on disk.

Controls:
  Space/P       - Pause or resume
  Right/L/N     - Step one cell
  +/-           - Faster / slower
  R             - Restart the animation
  O             - Toggle loop markers
  ?             - Full help
  Q             - Quit

Examples:
  patrol watch input.txt
  patrol watch reference --speed 10
  patrol watch input.txt --follow`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&flagFollow, "follow", "f", false, "Reload the scenario file when it changes")
	watchCmd.Flags().IntVar(&flagSpeed, "speed", 0, "Animation speed in cells per second (default from config)")
	watchCmd.Flags().BoolVar(&flagNoLoops, "no-loops", false, "Start with loop markers hidden")
	watchCmd.Flags().StringVarP(&flagStrategy, "strategy", "s", "", "Search strategy (default from config)")
}

func runWatch(cmd *cobra.Command, args []string) {
	sc, err := scenario.Resolve(args[0], appCfg.Scenarios.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	m, err := sc.Map()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	name := appCfg.Search.Strategy
	if flagStrategy != "" {
		name = flagStrategy
	}
	// The viewer owns the terminal, so the search runs without a logger.
	strategy, err := registry.Create(name, registry.Options{Workers: appCfg.Search.Workers})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tickRate := appCfg.Viewer.TickRate
	if flagSpeed > 0 {
		tickRate = flagSpeed
	}

	width, height := terminalSize()
	opts := tui.ViewerOptions{
		Name:      sc.Name,
		TickRate:  tickRate,
		ShowLoops: appCfg.Viewer.ShowLoops && !flagNoLoops,
		Strategy:  strategy,
		Width:     width,
		Height:    height,
	}

	if flagFollow {
		if sc.FilePath == "" {
			fmt.Fprintln(os.Stderr, "Error: --follow needs a scenario file")
			os.Exit(1)
		}
		fw, err := tui.WatchScenario(sc.FilePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer fw.Close()
		opts.Follow = fw
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := tui.RunViewer(ctx, m, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
