package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridrate/gridrate/internal/adapters/repository"
)

// importCmd loads season rows from a CSV export into the local database.
var importCmd = &cobra.Command{
	Use:   "import <stats.csv>",
	Short: "Import quarterback season statistics from a CSV file",
	Long: `Read a CSV export of per-season quarterback statistics and upsert the
rows into the local database. Malformed rows are skipped and counted;
re-importing a (player, season) pair keeps whichever row has more
attempts.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	store, err := repository.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	res, err := repository.ImportCSV(cmd.Context(), store, f)
	if err != nil {
		return fmt.Errorf("import csv: %w", err)
	}

	fmt.Fprintf(os.Stdout, "imported %d rows (%d skipped) into %s\n", res.Loaded, res.Skipped, dbPath)
	return nil
}
