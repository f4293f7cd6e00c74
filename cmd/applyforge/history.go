package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/applyforge/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved generation settings snapshots",
	Long:  "List the settings snapshots saved by previous generation runs, most recent first. Requires a PostgreSQL database.",
	RunE:  runHistory,
}

var (
	historyDatabaseURL string
	historyLimit       int
	historyID          string
	historyClear       bool
)

func init() {
	historyCmd.Flags().StringVar(&historyDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of snapshots to list")
	historyCmd.Flags().StringVar(&historyID, "id", "", "Print one snapshot as JSON instead of listing")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete all saved snapshots")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	databaseURL := historyDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	ctx := context.Background()

	db, err := store.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure database schema: %w", err)
	}

	if historyClear {
		if err := db.ClearAll(ctx); err != nil {
			return fmt.Errorf("failed to clear snapshots: %w", err)
		}
		_, _ = fmt.Fprintln(os.Stdout, "Cleared all saved snapshots")
		return nil
	}

	if historyID != "" {
		id, err := uuid.Parse(historyID)
		if err != nil {
			return fmt.Errorf("invalid snapshot id: %w", err)
		}
		snapshot, err := db.GetSetting(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get snapshot: %w", err)
		}
		if snapshot == nil {
			return fmt.Errorf("snapshot not found: %s", id)
		}
		jsonBytes, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = fmt.Fprintln(os.Stdout, string(jsonBytes))
		return nil
	}

	snapshots, err := db.ListRecent(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}
	if len(snapshots) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "No saved snapshots")
		return nil
	}

	for _, s := range snapshots {
		_, _ = fmt.Fprintf(os.Stdout, "%s  %s  %-24s %s (%d jobs)\n",
			s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.StyleName, s.Name, len(s.JobsData))
	}

	return nil
}
