// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tubelytics/internal/render"
	"github.com/pdiddy/tubelytics/internal/searchui"
	"github.com/pdiddy/tubelytics/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Render search results from a running tubelytics server",
	Long: `Search reads a query, requests GET /tubelytics/search from the server and
writes the rendered results markup. On failure the error is logged once and
nothing is written.

With --interactive each line of stdin is a new query, fired as soon as it is
read, the way keystrokes trigger searches in a browser. Overlapping searches
follow --policy; the final content of the results container is written at EOF.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("server", "", "base URL of the tubelytics API (default from ui.server_url)")
	searchCmd.Flags().String("out", "", "write results markup to this file instead of stdout")
	searchCmd.Flags().String("policy", "", "overlap policy: last-resolved, last-invoked, ignore-pending, cancel-previous")
	searchCmd.Flags().Bool("visible-errors", false, "render an error block into the results on failure")
	searchCmd.Flags().Bool("interactive", false, "read one query per line from stdin")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ui := cfg.UI
	if v, _ := cmd.Flags().GetString("server"); v != "" {
		ui.ServerURL = v
	}
	if v, _ := cmd.Flags().GetString("policy"); v != "" {
		ui.Policy = types.OverlapPolicy(v)
	}
	if cmd.Flags().Changed("visible-errors") {
		ui.VisibleErrors, _ = cmd.Flags().GetBool("visible-errors")
	}
	interactive, _ := cmd.Flags().GetBool("interactive")
	outPath, _ := cmd.Flags().GetString("out")

	var (
		text      = &searchui.TextInput{}
		container = searchui.NewMemoryContainer("")
	)
	s, err := newSearchUI(ui, text, container)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if interactive {
		if err := runInteractive(ctx, s, text, cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
			return err
		}
	} else {
		text.Set(strings.Join(args, " "))
		if outcome := s.Search(ctx); outcome != searchui.Rendered && !ui.VisibleErrors {
			return fmt.Errorf("search %s", outcome)
		}
	}

	return writeOutput(outPath, cmd.OutOrStdout(), string(container.HTML()))
}

func newSearchUI(ui types.UIConfig, input searchui.Input, container *searchui.MemoryContainer) (*searchui.SearchUI, error) {
	renderer, err := render.New(render.Options{})
	if err != nil {
		return nil, err
	}
	var reporter searchui.FailureReporter = searchui.LogReporter{Logger: logger.Named("searchui")}
	if ui.VisibleErrors {
		reporter = searchui.VisibleReporter{Next: reporter, Renderer: renderer, Container: container}
	}
	return searchui.New(searchui.Config{
		Input:     input,
		Container: container,
		Fetcher:   searchui.NewHTTPFetcher(ui.ServerURL, nil),
		Renderer:  renderer,
		Reporter:  reporter,
		Policy:    ui.Policy,
	})
}

// runInteractive triggers one search per input line and waits for all of
// them at EOF.
func runInteractive(ctx context.Context, s *searchui.SearchUI, text *searchui.TextInput, in io.Reader, status io.Writer) error {
	type pending struct {
		query   string
		outcome <-chan searchui.Outcome
	}
	var all []pending

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		q := scanner.Text()
		text.Set(q)
		all = append(all, pending{query: q, outcome: s.Trigger(ctx)})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading queries: %w", err)
	}

	for _, p := range all {
		fmt.Fprintf(status, "%-10s %q\n", <-p.outcome, p.query)
	}
	return nil
}

func writeOutput(path string, stdout io.Writer, content string) error {
	if path == "" {
		_, err := io.WriteString(stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
