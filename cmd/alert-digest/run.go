package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/alert-digest/internal/collect"
	"github.com/pdiddy/alert-digest/internal/pipeline"
	"github.com/pdiddy/alert-digest/internal/summarize"
	"github.com/pdiddy/alert-digest/pkg/types"
)

const defaultFetchTimeout = 20 * time.Second

// exitConfigError is the exit status for configuration errors, distinct
// from the generic failure status.
const exitConfigError = 2

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Collect new feed items and regenerate all digest documents",
	Long: `Run reads every configured feed, summarizes items not seen before,
merges them into the article history, and regenerates the per-day, latest,
and full-history documents from the merged history.

Feeds come from --feeds (comma- or newline-separated), the ALERT_DIGEST_FEEDS
environment variable, the config file, or a --sources-file YAML list. Zero
configured feeds is a configuration error.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("feeds", "", "feed URLs, comma- or newline-separated")
	runCmd.Flags().String("sources-file", "", "YAML file listing feed sources")
	runCmd.Flags().Int("sentences", 0, "bullet sentences per summary (default 4)")
	runCmd.Flags().Int("max-per-feed", 0, "cap on entries read per feed (default 20)")
	runCmd.Flags().Duration("timeout", 0, "HTTP timeout for feed and article fetches (default 20s)")
	runCmd.Flags().Bool("force-all", false, "ignore the identity set and reprocess every item")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	feeds, err := resolveFeeds(cmd)
	if err != nil {
		return err
	}

	sentences, _ := cmd.Flags().GetInt("sentences")
	if sentences == 0 {
		sentences = viper.GetInt("sentences")
	}
	maxPerFeed, _ := cmd.Flags().GetInt("max-per-feed")
	if maxPerFeed == 0 {
		maxPerFeed = viper.GetInt("max_per_feed")
	}
	timeout := resolveTimeout(cmd)
	forceAll, _ := cmd.Flags().GetBool("force-all")
	if !forceAll {
		forceAll = viper.GetBool("force_all")
	}

	cfg := pipeline.Config{
		Collect: types.CollectConfig{
			HTTPConfig: types.HTTPConfig{Timeout: timeout},
			Feeds:      feeds,
			MaxPerFeed: maxPerFeed,
			Sentences:  sentences,
			ForceAll:   forceAll,
		},
		OutDir: outputDir(cmd),
	}

	deps := pipeline.Deps{
		Collector: collect.NewClient(cfg.Collect.HTTPConfig),
		Summarize: summarize.Bullets,
		Log:       newLogger(cmd),
		Out:       os.Stdout,
	}

	if err := pipeline.Run(cmd.Context(), cfg, deps); err != nil {
		if errors.Is(err, pipeline.ErrNoFeeds) {
			fmt.Fprintln(os.Stderr, "Error: no feed sources configured; set --feeds, ALERT_DIGEST_FEEDS, or --sources-file")
			os.Exit(exitConfigError)
		}
		return err
	}
	return nil
}

// resolveTimeout reads the fetch timeout from the flag or environment.
// Environment values accept both duration syntax ("20s") and bare seconds
// ("20").
func resolveTimeout(cmd *cobra.Command) time.Duration {
	if d, _ := cmd.Flags().GetDuration("timeout"); d > 0 {
		return d
	}
	raw := viper.GetString("timeout")
	if raw == "" {
		return defaultFetchTimeout
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return defaultFetchTimeout
}

// resolveFeeds combines the flag/environment feed list with an optional
// YAML sources file.
func resolveFeeds(cmd *cobra.Command) ([]string, error) {
	feeds := collect.SplitFeedList(stringSetting(cmd, "feeds", "feeds"))

	sourcesFile := stringSetting(cmd, "sources-file", "sources_file")
	if sourcesFile != "" {
		sources, err := collect.LoadSources(sourcesFile)
		if err != nil {
			return nil, err
		}
		for _, s := range sources {
			feeds = append(feeds, s.URL)
		}
	}
	return feeds, nil
}
