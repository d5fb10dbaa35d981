// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the alert-digest CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/alert-digest/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

const defaultOutputDir = "output"

// rootCmd is the base command for the alert-digest CLI.
var rootCmd = &cobra.Command{
	Use:   "alert-digest",
	Short: "Summarize alert feeds into daily markdown digests",
	Long: `alert-digest reads syndication feeds (Google-Alerts-style RSS), skips
items it has already processed, extracts and summarizes article bodies, and
maintains a merged article history from which it regenerates per-day, latest,
and full-history markdown documents.

The history is the system of record: every document is rebuilt from it on
each run, so an empty or failed collection never erases previous output.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./alert-digest.yaml or ~/.config/alert-digest/config.yaml)")
	rootCmd.PersistentFlags().String("output-dir", "", "root directory for persisted state and rendered documents (default \"output\")")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default \"info\")")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("alert-digest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "alert-digest"))
		}
	}

	viper.SetEnvPrefix("ALERT_DIGEST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// stringSetting resolves a setting from its flag, falling back to viper
// (environment or config file).
func stringSetting(cmd *cobra.Command, flag, key string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	return viper.GetString(key)
}

func outputDir(cmd *cobra.Command) string {
	if dir := stringSetting(cmd, "output-dir", "output_dir"); dir != "" {
		return dir
	}
	return defaultOutputDir
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	return logging.New(os.Stderr, stringSetting(cmd, "log-level", "log_level"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
