package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-orbit/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all shader programs",
	Long:  `Shows a list of all shader programs registered with the renderer.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	programs := registry.List()

	if len(programs) == 0 {
		fmt.Println("No shader programs available.")
		return
	}

	fmt.Println("Available shaders:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range programs {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, p := range programs {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Title)
	}

	fmt.Println()
	fmt.Println("Run 'orbit run --shader <id>' to render with a shader.")
}
