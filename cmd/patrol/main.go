// patrol simulates a guard patrolling a grid, counts the cells it covers
// and finds every single-obstacle placement that traps it in a loop.
//
// Usage:
//
//	patrol solve <scenario>     - Print visited cells and loop placements
//	patrol list [dir]           - List scenarios in the library
//	patrol history [scenario]   - Show recorded solve runs
//	patrol watch <scenario>     - Animate the patrol in the terminal
//	patrol serve                - Start SSH server with the viewer
//	patrol strategies           - List candidate search strategies
//
// Global flags:
//
//	--config <path>       - Config file (default: search order in internal/config)
//	--db <path>           - Run history database (default from config)
//	--scenario-dir <dir>  - Scenario library (default from config)
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/guard-patrol/internal/config"
)

var (
	// Global flags
	flagConfig      string
	flagDBPath      string
	flagScenarioDir string
	flagLogLevel    string

	// Set by the root command before any subcommand runs.
	appCfg config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "patrol",
	Short: "Guard patrol simulator with loop detection",
	Long: `patrol reads a grid with obstacles ('#') and a guard ('^', '>', 'v', '<'),
walks the guard until it leaves the grid, and reports how many distinct
cells it visited and how many single-obstacle placements would trap it
in an endless loop.

Available commands:
  solve       - Solve a scenario file or library ID
  list        - Show scenarios in the library
  history     - View recorded runs
  watch       - Animate a patrol in the terminal
  serve       - Start SSH server for remote viewing
  strategies  - Show candidate search strategies

Examples:
  patrol solve input.txt
  patrol solve reference --draw
  patrol watch input.txt --follow
  patrol history reference
  patrol serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagScenarioDir, "scenario-dir", "", "Scenario library directory (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(strategiesCmd)
}

// setup loads the configuration, applies global flag overrides and builds
// the logger.
func setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagScenarioDir != "" {
		cfg.Scenarios.Dir = flagScenarioDir
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	level, err := cfg.Log.ParseLevel()
	if err != nil {
		return err
	}

	appCfg = cfg
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "patrol",
		Level:           level,
	})
	return nil
}
