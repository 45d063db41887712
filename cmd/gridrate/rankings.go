package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var (
	rankingsSeason int
	rankingsLimit  int
)

// rankingsCmd prints the composite rating leaderboard for one season.
var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Show the composite rating leaderboard for a season",
	Args:  cobra.NoArgs,
	RunE:  runRankings,
}

func init() {
	rankingsCmd.Flags().IntVar(&rankingsSeason, "season", 0, "season to rank (required)")
	rankingsCmd.Flags().IntVar(&rankingsLimit, "limit", 0, "maximum entries to show (0 uses the service ceiling)")
	_ = rankingsCmd.MarkFlagRequired("season")
}

func runRankings(cmd *cobra.Command, args []string) error {
	svc, err := startService(cmd.Context())
	if err != nil {
		return err
	}
	defer svc.Stop()

	entries, diag, err := svc.Rankings(cmd.Context(), rankingsSeason, preset, table, rankingsLimit)
	if err != nil {
		return fmt.Errorf("score season %d: %w", rankingsSeason, err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stdout, "(no qualified players)")
		return nil
	}

	t := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	t.Header("RANK", "PLAYER", "SEASON", "OVERALL", "ARCHETYPE")
	for _, e := range entries {
		t.Append(
			fmt.Sprintf("%d", e.Rank),
			e.PlayerName,
			fmt.Sprintf("%d", e.Season),
			fmt.Sprintf("%.1f", e.Overall),
			e.Archetype,
		)
	}
	t.Render()

	fmt.Fprintf(os.Stdout, "\npool %d, scored %d, dropped %d, duplicates %d, fallbacks %d\n",
		diag.PoolSize, diag.RowsScored, diag.RowsDropped, diag.DuplicatesDropped, diag.FeatureFallbacks)
	return nil
}
