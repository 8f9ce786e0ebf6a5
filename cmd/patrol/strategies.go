package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/guard-patrol/internal/registry"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List candidate search strategies",
	Long:  `Shows the strategies that can run the loop-placement search.`,
	Run:   runStrategies,
}

func runStrategies(_ *cobra.Command, _ []string) {
	strategies := registry.List()

	fmt.Println("Search strategies:")
	fmt.Println()

	maxNameLen := 4 // "Name" header
	for _, s := range strategies {
		maxNameLen = max(maxNameLen, len(s.Name))
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")
	for _, s := range strategies {
		marker := ""
		if s.Name == appCfg.Search.Strategy {
			marker = " (default)"
		}
		fmt.Printf("  %-*s  %s%s\n", maxNameLen, s.Name, s.Description, marker)
	}
}
