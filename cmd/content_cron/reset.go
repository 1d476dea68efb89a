package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/content-pipeline/internal/config"
	"github.com/jonathan/content-pipeline/internal/db"
)

var resetCommand = &cobra.Command{
	Use:   "reset",
	Short: "Flip calendar entries back to pending for a test run",
	Long: `Sets content=false and status=scheduled so the next run reprocesses the
entries. Limit the reset to one calendar with --calendar.`,
	RunE: resetEntriesCmd,
}

var (
	resetDatabaseURL string
	resetCalendarID  string
)

func init() {
	resetCommand.Flags().StringVar(&resetDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	resetCommand.Flags().StringVar(&resetCalendarID, "calendar", "", "Only reset entries of this calendar id")

	rootCmd.AddCommand(resetCommand)
}

func resetEntriesCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := config.Config{DatabaseURL: resetDatabaseURL}
	cfg.ApplyEnv()
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required (DATABASE_URL env var or --db-url flag)")
	}

	calendarID := uuid.Nil
	if resetCalendarID != "" {
		parsed, err := uuid.Parse(resetCalendarID)
		if err != nil {
			return fmt.Errorf("invalid calendar id: %w", err)
		}
		calendarID = parsed
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	count, err := database.ResetEntries(ctx, calendarID)
	if err != nil {
		return err
	}

	fmt.Printf("Reset %d entries to pending\n", count)
	return nil
}
