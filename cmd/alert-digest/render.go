package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/alert-digest/internal/pipeline"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Regenerate all digest documents from the persisted history",
	Long: `Render rebuilds every per-day document, latest.md, and the full-history
document strictly from the persisted history. It performs no network access
and works with zero configured feeds, so rendering can be re-run or fixed
without touching collected data.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := pipeline.Config{OutDir: outputDir(cmd)}
		deps := pipeline.Deps{
			Log: newLogger(cmd),
			Out: os.Stdout,
		}
		return pipeline.Render(cfg, deps)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
