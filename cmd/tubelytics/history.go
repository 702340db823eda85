// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tubelytics/internal/history"
	"github.com/pdiddy/tubelytics/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the searches recorded by the server",
	Long: `History prints the most recent searches from the SQLite history database,
newest first. Use --export for a YAML dump or --clear to empty the history.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "number of searches to show (default history.max_entries)")
	historyCmd.Flags().Bool("export", false, "write the history as YAML")
	historyCmd.Flags().Bool("clear", false, "delete all recorded searches")
	historyCmd.Flags().String("db", "", "history database (default from history.db_path)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	hc := cfg.History
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		hc.DBPath = db
	}
	store, err := history.NewStore(hc)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if wipe, _ := cmd.Flags().GetBool("clear"); wipe {
		n, err := store.Clear(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %d search(es).\n", n)
		return nil
	}
	if export, _ := cmd.Flags().GetBool("export"); export {
		return store.ExportYAML(ctx, out)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	return printHistory(out, entries)
}

func printHistory(w io.Writer, entries []types.HistoryEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No searches recorded.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tQUERY\tITEMS\tFK GRADE\tREADING EASE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%.2f\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Query, e.ItemCount,
			e.AvgFleschKincaidGrade, e.AvgFleschReadingEase)
	}
	return tw.Flush()
}
