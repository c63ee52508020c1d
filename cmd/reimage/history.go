package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/reimage/internal/config"
	"github.com/nao1215/reimage/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past pipeline runs",
		Long: `History lists past analyze, generate, and batch runs recorded in the
local history database, newest first.

This command is fully local and needs no API key.

Examples:
  # Show the last 20 runs
  reimage history

  # Show the last 5 runs
  reimage history --limit 5`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show (0 for all)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	db, err := database.Open(config.XDGDataDir(), database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		// No database means no runs yet, which is not an error.
		fmt.Fprintln(cmd.OutOrStdout(), "No run history yet.")
		return nil //nolint:nilerr // Missing history is an empty listing
	}
	defer db.Close()

	records, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No run history yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tCOMMAND\tIMAGE\tSTATUS\tDURATION\tDETAIL")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.CreatedAt.Format(time.DateTime),
			r.Command,
			r.Image,
			r.Status,
			r.Duration.Round(time.Millisecond),
			r.Detail,
		)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("render history: %w", err)
	}

	return nil
}
