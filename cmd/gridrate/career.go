package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var careerAsOf int

// careerCmd prints one player's career rating and its season breakdown.
var careerCmd = &cobra.Command{
	Use:   "career <player-id>",
	Short: "Show one player's career rating and season breakdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runCareer,
}

func init() {
	careerCmd.Flags().IntVar(&careerAsOf, "as-of", 0, "reference season for recency weighting (0 uses the player's latest season)")
}

func runCareer(cmd *cobra.Command, args []string) error {
	svc, err := startService(cmd.Context())
	if err != nil {
		return err
	}
	defer svc.Stop()

	entry, seasons, err := svc.Career(cmd.Context(), args[0], careerAsOf)
	if err != nil {
		return fmt.Errorf("career for %s: %w", args[0], err)
	}

	fmt.Fprintf(os.Stdout, "\n%s (%s)\n", entry.PlayerName, entry.PlayerID)
	fmt.Fprintf(os.Stdout, "  weighted rating : %.1f\n", entry.WeightedRating)
	fmt.Fprintf(os.Stdout, "  recent form     : %.1f\n", entry.RecentRating)
	fmt.Fprintf(os.Stdout, "  career mean     : %.1f\n", entry.CareerMean)
	fmt.Fprintf(os.Stdout, "  seasons         : %d (%d-%d)\n", entry.Seasons, entry.FirstSeason, entry.LastSeason)
	fmt.Fprintf(os.Stdout, "  archetype       : %s\n\n", entry.Archetype)

	t := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	t.Header("SEASON", "RANK", "OVERALL", "ARCHETYPE")
	for _, s := range seasons {
		t.Append(
			fmt.Sprintf("%d", s.Season),
			fmt.Sprintf("%d", s.Rank),
			fmt.Sprintf("%.1f", s.Overall),
			s.Archetype,
		)
	}
	t.Render()
	return nil
}
