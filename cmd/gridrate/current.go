package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var (
	currentLimit int
	currentAsOf  int
)

// currentCmd prints the career-weighted leaderboard across all seasons.
var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show career-weighted rankings across all stored seasons",
	Long: `Score every stored season against its own qualification pool, fold the
per-season ratings into time-weighted career ratings that favor recent
form, and print the resulting leaderboard.`,
	Args: cobra.NoArgs,
	RunE: runCurrent,
}

func init() {
	currentCmd.Flags().IntVar(&currentLimit, "limit", 0, "maximum entries to show (0 uses the service ceiling)")
	currentCmd.Flags().IntVar(&currentAsOf, "as-of", 0, "reference season for recency weighting (0 uses the latest stored season)")
}

func runCurrent(cmd *cobra.Command, args []string) error {
	svc, err := startService(cmd.Context())
	if err != nil {
		return err
	}
	defer svc.Stop()

	entries, err := svc.CurrentRankings(cmd.Context(), currentAsOf, currentLimit)
	if err != nil {
		return fmt.Errorf("career rankings: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stdout, "(no qualified players)")
		return nil
	}

	t := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	t.Header("RANK", "PLAYER", "WEIGHTED", "RECENT", "MEAN", "SEASONS", "ARCHETYPE")
	for _, e := range entries {
		t.Append(
			fmt.Sprintf("%d", e.Rank),
			e.PlayerName,
			fmt.Sprintf("%.1f", e.WeightedRating),
			fmt.Sprintf("%.1f", e.RecentRating),
			fmt.Sprintf("%.1f", e.CareerMean),
			fmt.Sprintf("%d", e.Seasons),
			e.Archetype,
		)
	}
	t.Render()
	return nil
}
