package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/alert-digest/internal/index"
	"github.com/pdiddy/alert-digest/internal/pipeline"
	"github.com/pdiddy/alert-digest/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [terms...]",
	Short: "Full-text search over the article history",
	Long: `Search queries the history index built after each run. Matches are
ranked by relevance and shown with a highlighted summary fragment.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 0, "maximum number of matches (default 20)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more search terms")
	}
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := index.Open(filepath.Join(outputDir(cmd), pipeline.IndexDir), types.IndexConfig{})
	if err != nil {
		return err
	}
	defer store.Close()

	matches, err := store.Search(strings.Join(args, " "), limit)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Println("No matches.")
		return nil
	}

	for _, m := range matches {
		r := m.Record
		fmt.Fprintf(os.Stdout, "%s  %s\n", r.PubDate, r.Title)
		fmt.Fprintf(os.Stdout, "  %s\n", r.Link)
		if m.Snippet != "" {
			fmt.Fprintf(os.Stdout, "  %s\n", m.Snippet)
		}
		fmt.Fprintln(os.Stdout)
	}
	fmt.Fprintf(os.Stdout, "%d match(es)\n", len(matches))
	return nil
}
