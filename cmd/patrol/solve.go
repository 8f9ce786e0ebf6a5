package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
	"github.com/vovakirdan/guard-patrol/internal/registry"
	"github.com/vovakirdan/guard-patrol/internal/scenario"
	"github.com/vovakirdan/guard-patrol/internal/search"
	"github.com/vovakirdan/guard-patrol/internal/storage"
)

var (
	// Solve command flags
	flagStrategy string
	flagWorkers  int
	flagDraw     bool
	flagNoSave   bool
	flagCached   bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <scenario>",
	Short: "Solve a scenario",
	Long: `Solves a scenario given as a file path or a library ID.

Prints the number of distinct cells the guard visits before leaving the
grid, and the number of single-obstacle placements that would trap it in
a loop. Results are recorded in the run history unless --no-save is set.

Examples:
  patrol solve input.txt
  patrol solve reference --strategy sequential
  patrol solve input.txt --draw
  patrol solve input.txt --cached`,
	Args: cobra.ExactArgs(1),
	Run:  runSolve,
}

func init() {
	solveCmd.Flags().StringVarP(&flagStrategy, "strategy", "s", "", "Search strategy (default from config)")
	solveCmd.Flags().IntVarP(&flagWorkers, "workers", "w", -1, "Worker count for parallel search (0 = one per CPU, default from config)")
	solveCmd.Flags().BoolVar(&flagDraw, "draw", false, "Print the grid with the patrol and loop placements marked")
	solveCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run in the history")
	solveCmd.Flags().BoolVar(&flagCached, "cached", false, "Reuse the latest recorded result for the same grid if there is one")
}

// solveRequest is one solve invocation with flags and config merged.
type solveRequest struct {
	Strategy string
	Workers  int
	Logger   *log.Logger
}

// solveResult is the outcome of solving one scenario.
type solveResult struct {
	Map     patrol.Map
	Report  patrol.Report
	Workers int
}

func runSolve(cmd *cobra.Command, args []string) {
	sc, err := scenario.Resolve(args[0], appCfg.Scenarios.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var store *storage.Store
	if appCfg.Storage.Save || flagCached {
		store, err = storage.Open(appCfg.Storage.Path)
		if err != nil {
			logger.Warn("could not open run database", "path", appCfg.Storage.Path, "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	if flagCached && store != nil {
		if run, err := store.LatestByHash(sc.Hash()); err != nil {
			logger.Warn("could not look up cached run", "error", err)
		} else if run != nil {
			logger.Info("using recorded run", "id", run.ID, "at", run.CreatedAt.Format(time.RFC3339))
			printCounts(os.Stdout, run.Visited, run.Loops)
			return
		}
	}

	req := solveRequest{
		Strategy: appCfg.Search.Strategy,
		Workers:  appCfg.Search.Workers,
		Logger:   logger,
	}
	if flagStrategy != "" {
		req.Strategy = flagStrategy
	}
	if flagWorkers >= 0 {
		req.Workers = flagWorkers
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	res, err := solveScenario(ctx, sc, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagDraw {
		fmt.Println(patrol.RenderASCII(res.Map, patrol.Visited(res.Map), res.Report.Loops))
	}
	printCounts(os.Stdout, res.Report.Visited, res.Report.LoopObstacles)

	if err := checkExpected(sc, res.Report); err != nil {
		logger.Warn("result differs from expected", "scenario", sc.ID, "error", err)
	}

	if store != nil && appCfg.Storage.Save && !flagNoSave {
		run, err := store.SaveRun(newRun(sc, res))
		if err != nil {
			logger.Warn("could not record run", "error", err)
			return
		}
		logger.Debug("run recorded", "id", run.ID)
	}
}

// solveScenario parses the scenario grid and runs the full solve with the
// requested strategy.
func solveScenario(ctx context.Context, sc scenario.Scenario, req solveRequest) (solveResult, error) {
	m, err := sc.Map()
	if err != nil {
		return solveResult{}, err
	}

	strategy, err := registry.Create(req.Strategy, registry.Options{
		Workers: req.Workers,
		Logger:  req.Logger,
	})
	if err != nil {
		return solveResult{}, err
	}

	workers := 1
	if w, ok := strategy.(interface{ Workers() int }); ok {
		workers = w.Workers()
	}

	report, err := search.Solve(ctx, m, strategy, req.Logger)
	if err != nil {
		return solveResult{}, err
	}
	return solveResult{Map: m, Report: report, Workers: workers}, nil
}

// checkExpected compares a report with the scenario's known answers.
func checkExpected(sc scenario.Scenario, report patrol.Report) error {
	if sc.Expected == nil {
		return nil
	}
	if report.Visited != sc.Expected.Visited || report.LoopObstacles != sc.Expected.Loops {
		return fmt.Errorf("got %d visited / %d loops, want %d / %d",
			report.Visited, report.LoopObstacles, sc.Expected.Visited, sc.Expected.Loops)
	}
	return nil
}

// newRun builds the history record for a solved scenario.
func newRun(sc scenario.Scenario, res solveResult) storage.Run {
	id := sc.ID
	if id == "" {
		id = sc.FilePath
	}
	return storage.Run{
		ScenarioID: id,
		GridHash:   sc.Hash(),
		Width:      res.Map.Bounds.Width,
		Height:     res.Map.Bounds.Height,
		Visited:    res.Report.Visited,
		Loops:      res.Report.LoopObstacles,
		Strategy:   res.Report.Strategy,
		Workers:    res.Workers,
		Duration:   res.Report.Elapsed,
	}
}

func printCounts(w io.Writer, visited, loops int) {
	fmt.Fprintf(w, "visited: %d\n", visited)
	fmt.Fprintf(w, "loops: %d\n", loops)
}
