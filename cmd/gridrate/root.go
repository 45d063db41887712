package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	service "github.com/gridrate/gridrate/internal/app"
	"github.com/gridrate/gridrate/internal/engine"
	"github.com/gridrate/gridrate/pkg/logger"
)

var (
	dbPath      string
	preset      string
	table       string
	logLevel    string
	minAttempts int
)

var rootCmd = &cobra.Command{
	Use:   "gridrate",
	Short: "Quarterback composite rating tool",
	Long: `Load quarterback season statistics into a local SQLite database and
compute composite ratings, career aggregates and playstyle archetypes
against season qualification pools.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		if err := logger.SetLevelString(logLevel); err != nil {
			return fmt.Errorf("set log level: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "gridrate.db", "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "weighting preset (balanced, classic)")
	rootCmd.PersistentFlags().StringVar(&table, "table", "", "archetype table (six-trait, five-trait)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&minAttempts, "min-attempts", 0, "minimum pass attempts to qualify for a pool (0 uses the service default)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(rankingsCmd)
	rootCmd.AddCommand(currentCmd)
	rootCmd.AddCommand(careerCmd)
	rootCmd.AddCommand(archetypesCmd)
}

// startService opens the store at dbPath and starts a rating service over
// it. The caller owns the returned service and must Stop it.
func startService(ctx context.Context) (*service.Service, error) {
	opts := []service.Option{
		service.WithDBPath(dbPath),
		service.WithPreset(preset),
		service.WithArchetypeTable(table),
	}
	if minAttempts > 0 {
		opts = append(opts, service.WithThresholds(engine.Thresholds{
			Default:    minAttempts,
			InProgress: minAttempts,
		}))
	}
	svc := service.New(opts...)
	if err := svc.Start(ctx); err != nil {
		return nil, fmt.Errorf("start service: %w", err)
	}
	return svc, nil
}
