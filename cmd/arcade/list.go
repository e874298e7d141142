package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyarcade/tui-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games registered in the arcade.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-18s  %s\n", maxIDLen, "ID", "Title", "Ranking")
	fmt.Printf("  %-*s  %-18s  %s\n", maxIDLen, "--", "-----", "-------")

	for _, g := range games {
		ranking := "highest score"
		switch {
		case g.LowerIsBetter:
			ranking = "fewest moves"
		case g.Versus:
			ranking = "not ranked (local 2P)"
		}
		fmt.Printf("  %-*s  %-18s  %s\n", maxIDLen, g.ID, g.Title, ranking)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
