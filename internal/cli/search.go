package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ikb-gg/ikb-go/internal/plugin"
)

var searchView string

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search game data for a sport and date",
	Long: `Search NBA or NFL game data from the IKB API.

The query is free text: the first YYYY-MM-DD date is used as-is, and
sport keywords (nfl, football, nba, basketball) select the sport.
Missing values fall back to the configured filters, then to NBA and
today's UTC date.

Examples:
  ikb search "nba games on 2024-03-01"
  ikb search "nfl scores 2024-10-13" --view teams
  ikb search "top performers last night" --view players`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchView, "view", "", "response view: game, teams, or players")
}

func runSearch(cmd *cobra.Command, args []string) error {
	result, err := plugin.Execute(cmd.Context(), deps, args[0], searchView)
	if err != nil {
		exitWithError("%v", err)
	}

	fmt.Println(result.Title)
	if result.Snippet == "" {
		fmt.Println("\nNo games found.")
	} else {
		fmt.Println()
		fmt.Println(result.Snippet)
	}

	if verbose {
		fmt.Println()
		fmt.Printf("URL:    %s\n", result.URL)
		fmt.Printf("Source: %s\n", result.Source)
		fmt.Printf("View:   %s\n", result.Metadata.View)
	}

	return nil
}
