package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/guard-patrol/internal/platform/tui"
	"github.com/vovakirdan/guard-patrol/internal/storage"
)

var (
	// History command flags
	flagHistoryLimit int
	flagHistoryPlain bool
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [scenario]",
	Short: "View recorded runs",
	Long: `Shows recorded solve runs, newest first.

On a terminal this opens the interactive history viewer with one tab
per scenario. Use --plain (or pipe the output) for a text listing.

Examples:
  patrol history
  patrol history reference
  patrol history reference --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Number of runs to list in plain mode")
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print a text listing instead of the interactive view")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the recorded runs of the given scenario")
}

func runHistory(_ *cobra.Command, args []string) {
	var scenarioID string
	if len(args) == 1 {
		scenarioID = args[0]
	}

	store, err := storage.Open(appCfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryClear {
		if scenarioID == "" {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a scenario ID")
			os.Exit(1)
		}
		if err := store.ClearRuns(scenarioID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared runs for %s.\n", scenarioID)
		return
	}

	if !flagHistoryPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := terminalSize()
		if err := tui.RunHistory(store, scenarioID, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := printHistory(store, scenarioID, flagHistoryLimit); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHistory(store *storage.Store, scenarioID string, limit int) error {
	var (
		runs []storage.Run
		err  error
	)
	if scenarioID == "" {
		runs, err = store.RecentRuns(limit)
	} else {
		runs, err = store.RunsForScenario(scenarioID, limit)
	}
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	headers := []string{"When", "Scenario", "Grid", "Visited", "Loops", "Strategy", "Time"}
	rows := tui.RunRows(runs)

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = fmt.Sprintf("%-*s", widths[i], c)
		}
		fmt.Println("  " + strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	printRow(headers)
	for _, row := range rows {
		printRow(row)
	}
	return nil
}

// terminalSize returns the size of stdout, falling back to 80x24.
func terminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80, 24
	}
	return width, height
}
