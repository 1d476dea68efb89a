package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/content-pipeline/internal/config"
	"github.com/jonathan/content-pipeline/internal/db"
	"github.com/jonathan/content-pipeline/internal/observability"
)

var pendingCommand = &cobra.Command{
	Use:   "pending",
	Short: "List calendar entries still awaiting content generation",
	RunE:  listPendingCmd,
}

var pendingDatabaseURL string

func init() {
	pendingCommand.Flags().StringVar(&pendingDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(pendingCommand)
}

func listPendingCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := config.Config{DatabaseURL: pendingDatabaseURL}
	cfg.ApplyEnv()
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required (DATABASE_URL env var or --db-url flag)")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	entries, err := database.FetchPending(ctx)
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintEntries(entries)
	return nil
}
