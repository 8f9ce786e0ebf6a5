package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/guard-patrol/internal/scenario"
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List scenarios in the library",
	Long: `Shows every scenario file (.yaml, .yml, .txt) under the scenario
directory, with its grid size and known answers.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runList,
}

func runList(_ *cobra.Command, args []string) {
	dir := appCfg.Scenarios.Dir
	if len(args) == 1 {
		dir = args[0]
	}

	scenarios, err := scenario.NewLoader(dir).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scenarios: %v\n", err)
		os.Exit(1)
	}

	if len(scenarios) == 0 {
		fmt.Printf("No scenarios found in %s.\n", dir)
		return
	}

	fmt.Printf("Scenarios in %s:\n", dir)
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, sc := range scenarios {
		maxIDLen = max(maxIDLen, len(sc.ID))
	}

	fmt.Printf("  %-*s  %-7s  %-9s  %s\n", maxIDLen, "ID", "Size", "Expected", "Name")
	fmt.Printf("  %-*s  %-7s  %-9s  %s\n", maxIDLen, "--", "----", "--------", "----")

	for _, sc := range scenarios {
		size := "invalid"
		if m, err := sc.Map(); err == nil {
			size = fmt.Sprintf("%dx%d", m.Bounds.Width, m.Bounds.Height)
		}
		expected := "-"
		if sc.Expected != nil {
			expected = fmt.Sprintf("%d/%d", sc.Expected.Visited, sc.Expected.Loops)
		}
		fmt.Printf("  %-*s  %-7s  %-9s  %s\n", maxIDLen, sc.ID, size, expected, sc.Name)
	}

	fmt.Println()
	fmt.Println("Run 'patrol solve <id>' to solve a scenario.")
}
