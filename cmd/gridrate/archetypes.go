package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var archetypesSeason int

// archetypesCmd prints the archetype distribution for one season.
var archetypesCmd = &cobra.Command{
	Use:   "archetypes",
	Short: "Show the playstyle archetype distribution for a season",
	Args:  cobra.NoArgs,
	RunE:  runArchetypes,
}

func init() {
	archetypesCmd.Flags().IntVar(&archetypesSeason, "season", 0, "season to classify (required)")
	_ = archetypesCmd.MarkFlagRequired("season")
}

func runArchetypes(cmd *cobra.Command, args []string) error {
	svc, err := startService(cmd.Context())
	if err != nil {
		return err
	}
	defer svc.Stop()

	dist, err := svc.Archetypes(cmd.Context(), archetypesSeason, preset, table)
	if err != nil {
		return fmt.Errorf("classify season %d: %w", archetypesSeason, err)
	}

	labels := make([]string, 0, len(dist))
	for label := range dist {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if dist[labels[i]] != dist[labels[j]] {
			return dist[labels[i]] > dist[labels[j]]
		}
		return labels[i] < labels[j]
	})

	t := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	t.Header("ARCHETYPE", "PLAYERS")
	for _, label := range labels {
		t.Append(label, fmt.Sprintf("%d", dist[label]))
	}
	t.Render()
	return nil
}
