package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CollectConfig holds settings for the collection stage.
type CollectConfig struct {
	HTTPConfig `yaml:",inline"`

	// Feeds lists the feed URLs to read. Empty outside replay mode is a
	// configuration error.
	Feeds []string `json:"feeds" yaml:"feeds"`

	// MaxPerFeed caps the number of entries read per feed per run (default 20).
	MaxPerFeed int `json:"max_per_feed" yaml:"max_per_feed"`

	// Sentences is the number of bullet sentences requested per summary (default 4).
	Sentences int `json:"sentences" yaml:"sentences"`

	// ForceAll ignores the identity set so every candidate is treated as
	// new; merge-by-id absorbs the re-processed duplicates.
	ForceAll bool `json:"force_all" yaml:"force_all"`
}

// IndexConfig holds settings for the history search index.
type IndexConfig struct {
	// MaxResults is the default maximum number of search matches (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
