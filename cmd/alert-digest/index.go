package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/alert-digest/internal/history"
	"github.com/pdiddy/alert-digest/internal/index"
	"github.com/pdiddy/alert-digest/internal/pipeline"
	"github.com/pdiddy/alert-digest/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the history search index",
	Long: `Index rebuilds the full-text search index from the persisted history.
The index is derived data; run this after restoring or hand-editing the
history file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir := outputDir(cmd)

		records, err := history.Load(filepath.Join(outDir, pipeline.HistoryFile))
		if err != nil {
			return err
		}

		store, err := index.Open(filepath.Join(outDir, pipeline.IndexDir), types.IndexConfig{})
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Rebuild(records); err != nil {
			return err
		}
		fmt.Printf("Indexed %d article(s).\n", len(records))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
